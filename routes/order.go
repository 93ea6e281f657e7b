package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/dzstore/storefront-api/controllers/order"

	"github.com/dzstore/storefront-api/cache"
)

// SetupOrderRoutes registers checkout and order-history endpoints. Checkout
// is open to guests, so no auth middleware here.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, rev cache.Revalidator, feed *orderControllers.Feed) {
	orders := r.Group("/orders")
	{
		orders.POST("/", orderControllers.CreateOrderHandler(db, feed, rev))
		orders.GET("/history", orderControllers.GetUserOrdersHandler(db))
	}

	r.GET("/wilayas", orderControllers.GetWilayasHandler(db))
}
