package productControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dzstore/storefront-api/cache"
	"github.com/dzstore/storefront-api/logger"
	"github.com/dzstore/storefront-api/models"
)

type BrandData struct {
	Title      string `json:"title" binding:"required"`
	CategoryID string `json:"category_id" binding:"required"`
}

// BrandWithCount is the admin listing row: a brand plus how many products
// reference it.
type BrandWithCount struct {
	models.Brand
	ProductCount int64 `json:"product_count"`
}

// GET /brands
func GetBrands(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var brands []models.Brand
		if err := db.Preload("Category").Order("title asc").Find(&brands).Error; err != nil {
			logger.Log.Error("fetch brands failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch brands"})
			return
		}
		rows := make([]BrandWithCount, 0, len(brands))
		for _, b := range brands {
			var count int64
			if err := db.Model(&models.Product{}).Where("brand_id = ?", b.ID).Count(&count).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch brands"})
				return
			}
			rows = append(rows, BrandWithCount{Brand: b, ProductCount: count})
		}
		c.JSON(http.StatusOK, rows)
	}
}

// GET /brands/:id
func GetBrandByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var brand models.Brand
		if err := db.Preload("Category").First(&brand, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch brand"})
			return
		}
		c.JSON(http.StatusOK, brand)
	}
}

// GET /categories/:id/brands
func GetBrandsByCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var brands []models.Brand
		if err := db.Where("category_id = ?", c.Param("id")).
			Order("title asc").Find(&brands).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch brands"})
			return
		}
		c.JSON(http.StatusOK, brands)
	}
}

// POST /admin/brands
func CreateBrand(db *gorm.DB, rev cache.Revalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var data BrandData
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		brand := models.Brand{Title: data.Title, CategoryID: data.CategoryID}
		if err := db.Create(&brand).Error; err != nil {
			logger.Log.Error("create brand failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create brand"})
			return
		}
		rev.Revalidate("/products-management")
		c.JSON(http.StatusCreated, brand)
	}
}

// PUT /admin/brands/:id
func UpdateBrand(db *gorm.DB, rev cache.Revalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var data BrandData
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		var brand models.Brand
		if err := db.First(&brand, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch brand"})
			return
		}
		if err := db.Model(&brand).Updates(map[string]interface{}{
			"title":       data.Title,
			"category_id": data.CategoryID,
		}).Error; err != nil {
			logger.Log.Error("update brand failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update brand"})
			return
		}
		rev.Revalidate("/products-management")
		c.JSON(http.StatusOK, brand)
	}
}

// DELETE /admin/brands/:id
func DeleteBrand(db *gorm.DB, rev cache.Revalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Delete(&models.Brand{}, "id = ?", c.Param("id")).Error; err != nil {
			logger.Log.Error("delete brand failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete brand"})
			return
		}
		rev.Revalidate("/products-management")
		c.JSON(http.StatusOK, gin.H{"message": "Brand deleted"})
	}
}
