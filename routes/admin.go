package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminController "github.com/dzstore/storefront-api/controllers/admin"
	orderControllers "github.com/dzstore/storefront-api/controllers/order"
	productControllers "github.com/dzstore/storefront-api/controllers/product"
	stockControllers "github.com/dzstore/storefront-api/controllers/stock"

	"github.com/dzstore/storefront-api/cache"
	"github.com/dzstore/storefront-api/middleware"
)

// SetupAdminRoutes registers the back-office endpoints, all behind the
// admin API key.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, rev cache.Revalidator, feed *orderControllers.Feed) {
	admin := r.Group("/admin")
	admin.Use(middleware.ValidateAPIKey)
	{
		products := admin.Group("/products")
		{
			products.POST("/", productControllers.CreateProduct(db, rev))
			products.PUT("/:id", productControllers.UpdateProduct(db, rev))
			products.DELETE("/:id", productControllers.DeleteProduct(db, rev))
			products.POST("/:id/images", productControllers.AddProductImage(db, rev))
			products.DELETE("/images/:image_id", productControllers.DeleteProductImage(db, rev))
		}

		categories := admin.Group("/categories")
		{
			categories.POST("/", productControllers.CreateCategory(db, rev))
			categories.PUT("/:id", productControllers.UpdateCategory(db, rev))
			categories.DELETE("/:id", productControllers.DeleteCategory(db, rev))
		}

		brands := admin.Group("/brands")
		{
			brands.POST("/", productControllers.CreateBrand(db, rev))
			brands.PUT("/:id", productControllers.UpdateBrand(db, rev))
			brands.DELETE("/:id", productControllers.DeleteBrand(db, rev))
		}

		stock := admin.Group("/stock")
		{
			stock.GET("/", stockControllers.GetStockHandler(db))
			stock.GET("/export", stockControllers.ExportStockToExcel(db))
			stock.PUT("/bulk", stockControllers.BulkUpdateStockHandler(db, rev))
			stock.GET("/:variant_id", stockControllers.GetVariantHandler(db))
			stock.POST("/", stockControllers.CreateVariantHandler(db, rev))
			stock.PUT("/:variant_id", stockControllers.UpdateVariantHandler(db, rev))
			stock.PUT("/:variant_id/qty", stockControllers.UpdateStockQuantityHandler(db, rev))
			stock.DELETE("/:variant_id", stockControllers.DeleteVariantHandler(db, rev))
		}

		orders := admin.Group("/orders")
		{
			orders.GET("/", orderControllers.GetAllOrdersHandler(db))
			orders.GET("/ws", feed.Handler())
			orders.PUT("/:order_id/status", orderControllers.UpdateOrderStatusHandler(db, rev))
		}

		wilayas := admin.Group("/wilayas")
		{
			wilayas.GET("/", adminController.GetWilayasAdmin(db))
			wilayas.GET("/:id", adminController.GetWilayaByID(db))
			wilayas.POST("/", adminController.CreateWilaya(db, rev))
			wilayas.PUT("/:id", adminController.UpdateWilaya(db, rev))
			wilayas.DELETE("/:id", adminController.DeleteWilaya(db, rev))
		}

		trending := admin.Group("/trending")
		{
			trending.GET("/available", adminController.GetAvailableProductsForTrending(db))
			trending.POST("/", adminController.AddTrending(db, rev))
			trending.DELETE("/:id", adminController.RemoveTrending(db, rev))
		}

		carousel := admin.Group("/carousel")
		{
			carousel.POST("/", adminController.CreateCarouselSlide(db, rev))
			carousel.PUT("/:id", adminController.UpdateCarouselSlide(db, rev))
			carousel.DELETE("/:id", adminController.DeleteCarouselSlide(db, rev))
		}
	}
}
