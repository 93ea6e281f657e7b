package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dzstore/storefront-api/cache"
	"github.com/dzstore/storefront-api/logger"
	"github.com/dzstore/storefront-api/models"
)

// GET /trending
func GetTrendingProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var trending []models.Trending
		if err := db.
			Preload("Product.Category").
			Preload("Product.Brand").
			Preload("Product.Variants.Stock").
			Find(&trending).Error; err != nil {
			logger.Log.Error("fetch trending failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trending products"})
			return
		}
		c.JSON(http.StatusOK, trending)
	}
}

// GET /admin/trending/available — products not yet pinned as trending.
func GetAvailableProductsForTrending(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.
			Where("id NOT IN (?)", db.Model(&models.Trending{}).Select("prod_id")).
			Order("name asc").
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch available products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// POST /admin/trending
func AddTrending(db *gorm.DB, rev cache.Revalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ProdID string `json:"prod_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		trending := models.Trending{ProdID: req.ProdID}
		if err := db.Create(&trending).Error; err != nil {
			logger.Log.Error("add trending failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add trending product"})
			return
		}
		rev.Revalidate("/products-management")
		c.JSON(http.StatusCreated, trending)
	}
}

// DELETE /admin/trending/:id
func RemoveTrending(db *gorm.DB, rev cache.Revalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Delete(&models.Trending{}, "id = ?", c.Param("id")).Error; err != nil {
			logger.Log.Error("remove trending failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove trending product"})
			return
		}
		rev.Revalidate("/products-management")
		c.JSON(http.StatusOK, gin.H{"message": "Trending product removed"})
	}
}
