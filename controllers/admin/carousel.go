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

type CarouselSlideData struct {
	ImageURL  string  `json:"image_url" binding:"required"`
	Title     *string `json:"title"`
	LinkURL   *string `json:"link_url"`
	SortOrder int     `json:"sort_order"`
}

// GET /carousel
func GetCarouselSlides(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var slides []models.CarouselSlide
		if err := db.Order("sort_order asc").Find(&slides).Error; err != nil {
			logger.Log.Error("fetch carousel failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch carousel slides"})
			return
		}
		c.JSON(http.StatusOK, slides)
	}
}

// POST /admin/carousel
func CreateCarouselSlide(db *gorm.DB, rev cache.Revalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var data CarouselSlideData
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		slide := models.CarouselSlide{
			ImageURL:  data.ImageURL,
			Title:     data.Title,
			LinkURL:   data.LinkURL,
			SortOrder: data.SortOrder,
		}
		if err := db.Create(&slide).Error; err != nil {
			logger.Log.Error("create carousel slide failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create carousel slide"})
			return
		}
		rev.Revalidate("/products-management")
		c.JSON(http.StatusCreated, slide)
	}
}

// PUT /admin/carousel/:id
func UpdateCarouselSlide(db *gorm.DB, rev cache.Revalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var data CarouselSlideData
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		var slide models.CarouselSlide
		if err := db.First(&slide, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Carousel slide not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch carousel slide"})
			return
		}
		if err := db.Model(&slide).Updates(map[string]interface{}{
			"image_url":  data.ImageURL,
			"title":      data.Title,
			"link_url":   data.LinkURL,
			"sort_order": data.SortOrder,
		}).Error; err != nil {
			logger.Log.Error("update carousel slide failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update carousel slide"})
			return
		}
		rev.Revalidate("/products-management")
		c.JSON(http.StatusOK, slide)
	}
}

// DELETE /admin/carousel/:id
func DeleteCarouselSlide(db *gorm.DB, rev cache.Revalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Delete(&models.CarouselSlide{}, "id = ?", c.Param("id")).Error; err != nil {
			logger.Log.Error("delete carousel slide failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete carousel slide"})
			return
		}
		rev.Revalidate("/products-management")
		c.JSON(http.StatusOK, gin.H{"message": "Carousel slide deleted"})
	}
}
