package adminController

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

type WilayaData struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price"`
}

// WilayaWithCount is the admin listing row: a zone plus how many orders
// shipped to it.
type WilayaWithCount struct {
	models.Wilaya
	OrderCount int64 `json:"order_count"`
}

// GET /admin/wilayas
func GetWilayasAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rows []WilayaWithCount
		err := db.Model(&models.Wilaya{}).
			Select("wilayas.*, count(orders.id) as order_count").
			Joins("left join orders on orders.wilaya_id = wilayas.id").
			Group("wilayas.id").
			Order("wilayas.name asc").
			Find(&rows).Error
		if err != nil {
			logger.Log.Error("fetch wilayas failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wilayas"})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// GET /admin/wilayas/:id
func GetWilayaByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var wilaya models.Wilaya
		if err := db.First(&wilaya, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Wilaya not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wilaya"})
			return
		}
		c.JSON(http.StatusOK, wilaya)
	}
}

// POST /admin/wilayas
func CreateWilaya(db *gorm.DB, rev cache.Revalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var data WilayaData
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		wilaya := models.Wilaya{Name: data.Name, Price: data.Price}
		if err := db.Create(&wilaya).Error; err != nil {
			logger.Log.Error("create wilaya failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create wilaya"})
			return
		}
		rev.Revalidate("/products-management")
		c.JSON(http.StatusCreated, wilaya)
	}
}

// PUT /admin/wilayas/:id
func UpdateWilaya(db *gorm.DB, rev cache.Revalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var data WilayaData
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		var wilaya models.Wilaya
		if err := db.First(&wilaya, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Wilaya not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wilaya"})
			return
		}
		if err := db.Model(&wilaya).Updates(map[string]interface{}{
			"name":  data.Name,
			"price": data.Price,
		}).Error; err != nil {
			logger.Log.Error("update wilaya failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wilaya"})
			return
		}
		rev.Revalidate("/products-management")
		c.JSON(http.StatusOK, wilaya)
	}
}

// DELETE /admin/wilayas/:id
func DeleteWilaya(db *gorm.DB, rev cache.Revalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Delete(&models.Wilaya{}, "id = ?", c.Param("id")).Error; err != nil {
			logger.Log.Error("delete wilaya failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete wilaya"})
			return
		}
		rev.Revalidate("/products-management")
		c.JSON(http.StatusOK, gin.H{"message": "Wilaya deleted"})
	}
}
