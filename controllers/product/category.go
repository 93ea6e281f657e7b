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

type CategoryData struct {
	Name             string  `json:"name" binding:"required"`
	Slug             string  `json:"slug" binding:"required"`
	Image            string  `json:"image"`
	ParentCategoryID *string `json:"parent_category_id"`
}

// GetCategoryTree returns root categories with two levels of subcategories,
// the shape the storefront navigation renders.
func GetCategoryTree(db *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	if err := db.
		Where("parent_category_id IS NULL").
		Preload("Subcategories.Subcategories").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GET /categories
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := GetCategoryTree(db)
		if err != nil {
			logger.Log.Error("fetch categories failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// GET /categories/:id
func GetCategoryByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.Preload("Subcategories").First(&category, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// POST /admin/categories
func CreateCategory(db *gorm.DB, rev cache.Revalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var data CategoryData
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		category := models.Category{
			Name:             data.Name,
			Slug:             data.Slug,
			Image:            data.Image,
			ParentCategoryID: data.ParentCategoryID,
		}
		if err := db.Create(&category).Error; err != nil {
			logger.Log.Error("create category failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}
		rev.Revalidate("/products-management")
		c.JSON(http.StatusCreated, category)
	}
}

// PUT /admin/categories/:id
func UpdateCategory(db *gorm.DB, rev cache.Revalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var data CategoryData
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		var category models.Category
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
			return
		}
		updates := map[string]interface{}{
			"name":               data.Name,
			"slug":               data.Slug,
			"image":              data.Image,
			"parent_category_id": data.ParentCategoryID,
		}
		if err := db.Model(&category).Updates(updates).Error; err != nil {
			logger.Log.Error("update category failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
			return
		}
		rev.Revalidate("/products-management")
		c.JSON(http.StatusOK, category)
	}
}

// DELETE /admin/categories/:id
func DeleteCategory(db *gorm.DB, rev cache.Revalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Delete(&models.Category{}, "id = ?", c.Param("id")).Error; err != nil {
			logger.Log.Error("delete category failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
			return
		}
		rev.Revalidate("/products-management")
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
	}
}
