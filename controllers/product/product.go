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

type ProductData struct {
	Name        string   `json:"name" binding:"required"`
	Slug        string   `json:"slug" binding:"required"`
	Image       string   `json:"image" binding:"required"`
	Description string   `json:"description"`
	Weight      *float64 `json:"weight"`
	Dimension   *float64 `json:"dimension"`
	LowStock    *int     `json:"low_stock"`
	CategoryID  string   `json:"category_id" binding:"required"`
	BrandID     string   `json:"brand_id" binding:"required"`
}

type ProductUpdate struct {
	Name        *string  `json:"name"`
	Slug        *string  `json:"slug"`
	Image       *string  `json:"image"`
	Description *string  `json:"description"`
	Weight      *float64 `json:"weight"`
	Dimension   *float64 `json:"dimension"`
	LowStock    *int     `json:"low_stock"`
	CategoryID  *string  `json:"category_id"`
	BrandID     *string  `json:"brand_id"`
}

func preloadProduct(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("Brand").
		Preload("Variants.Stock").
		Preload("Images")
}

// GET /products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := preloadProduct(db).Order("name asc").Find(&products).Error; err != nil {
			logger.Log.Error("fetch products failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := preloadProduct(db).First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// GET /products/slug/:slug
func GetProductBySlug(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := preloadProduct(db).First(&product, "slug = ?", c.Param("slug")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// POST /admin/products
func CreateProduct(db *gorm.DB, rev cache.Revalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var data ProductData
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		product := models.Product{
			Name:        data.Name,
			Slug:        data.Slug,
			Image:       data.Image,
			Description: data.Description,
			Weight:      data.Weight,
			Dimension:   data.Dimension,
			CategoryID:  data.CategoryID,
			BrandID:     data.BrandID,
		}
		if data.LowStock != nil {
			product.LowStock = *data.LowStock
		} else {
			product.LowStock = 5
		}
		if err := db.Create(&product).Error; err != nil {
			logger.Log.Error("create product failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		rev.Revalidate("/products-management")
		c.JSON(http.StatusCreated, product)
	}
}

// PUT /admin/products/:id
func UpdateProduct(db *gorm.DB, rev cache.Revalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var data ProductUpdate
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		updates := map[string]interface{}{}
		if data.Name != nil {
			updates["name"] = *data.Name
		}
		if data.Slug != nil {
			updates["slug"] = *data.Slug
		}
		if data.Image != nil {
			updates["image"] = *data.Image
		}
		if data.Description != nil {
			updates["description"] = *data.Description
		}
		if data.Weight != nil {
			updates["weight"] = *data.Weight
		}
		if data.Dimension != nil {
			updates["dimension"] = *data.Dimension
		}
		if data.LowStock != nil {
			updates["low_stock"] = *data.LowStock
		}
		if data.CategoryID != nil {
			updates["category_id"] = *data.CategoryID
		}
		if data.BrandID != nil {
			updates["brand_id"] = *data.BrandID
		}
		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				logger.Log.Error("update product failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
				return
			}
		}
		rev.Revalidate("/products-management")
		c.JSON(http.StatusOK, product)
	}
}

// DELETE /admin/products/:id
func DeleteProduct(db *gorm.DB, rev cache.Revalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Delete(&models.Product{}, "id = ?", c.Param("id")).Error; err != nil {
			logger.Log.Error("delete product failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		rev.Revalidate("/products-management")
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}

// POST /admin/products/:id/images
func AddProductImage(db *gorm.DB, rev cache.Revalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ImageURL  string `json:"image_url" binding:"required"`
			SortOrder int    `json:"sort_order"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		image := models.ProductImage{
			ProductID: c.Param("id"),
			ImageURL:  req.ImageURL,
			SortOrder: req.SortOrder,
		}
		if err := db.Create(&image).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add product image"})
			return
		}
		rev.Revalidate("/products-management")
		c.JSON(http.StatusCreated, image)
	}
}

// DELETE /admin/products/images/:image_id
func DeleteProductImage(db *gorm.DB, rev cache.Revalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Delete(&models.ProductImage{}, "id = ?", c.Param("image_id")).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product image"})
			return
		}
		rev.Revalidate("/products-management")
		c.JSON(http.StatusOK, gin.H{"message": "Product image deleted"})
	}
}
