package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminController "github.com/dzstore/storefront-api/controllers/admin"
	productControllers "github.com/dzstore/storefront-api/controllers/product"
)

// SetupStorefrontRoutes registers the public catalog reads.
func SetupStorefrontRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/products", productControllers.GetProducts(db))
	r.GET("/products/:id", productControllers.GetProductByID(db))
	r.GET("/products/slug/:slug", productControllers.GetProductBySlug(db))

	r.GET("/categories", productControllers.GetCategories(db))
	r.GET("/categories/:id", productControllers.GetCategoryByID(db))
	r.GET("/categories/:id/brands", productControllers.GetBrandsByCategory(db))

	r.GET("/brands", productControllers.GetBrands(db))
	r.GET("/brands/:id", productControllers.GetBrandByID(db))

	r.GET("/trending", adminController.GetTrendingProducts(db))
	r.GET("/carousel", adminController.GetCarouselSlides(db))
}
