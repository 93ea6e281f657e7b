package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/dzstore/storefront-api/controllers/cart"

	"github.com/dzstore/storefront-api/middleware"
	"github.com/dzstore/storefront-api/store"
)

// SetupUserRoutes registers the JWT-protected persisted cart endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))
			cartGroup.POST("/items", cartControllers.AddCartItem(db))
			cartGroup.PUT("/items/:variant_id/increase", cartControllers.IncreaseCartItem(db))
			cartGroup.PUT("/items/:variant_id/decrease", cartControllers.DecreaseCartItem(db))
			cartGroup.DELETE("/items/:variant_id", cartControllers.DeleteCartItem(db))
			cartGroup.DELETE("/", cartControllers.ClearUserCart(db))
		}
	}
}

// SetupGuestRoutes registers the in-memory session cart endpoints.
func SetupGuestRoutes(r *gin.Engine, db *gorm.DB, sessions *store.Manager) {
	guestGroup := r.Group("/guest/cart")
	{
		guestGroup.GET("/", cartControllers.GetGuestCart(sessions))
		guestGroup.POST("/items", cartControllers.AddGuestCartItem(db, sessions))
		guestGroup.PUT("/items/:line_id/increase", cartControllers.IncreaseGuestCartItem(sessions))
		guestGroup.PUT("/items/:line_id/decrease", cartControllers.DecreaseGuestCartItem(sessions))
		guestGroup.DELETE("/items/:line_id", cartControllers.RemoveGuestCartItem(sessions))
		guestGroup.DELETE("/", cartControllers.ClearGuestCart(sessions))
	}
}
