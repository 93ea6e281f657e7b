package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/dzstore/storefront-api/controllers/order"

	"github.com/dzstore/storefront-api/cache"
	"github.com/dzstore/storefront-api/store"
)

// Setup wires every route group: public storefront reads, the user cart
// (JWT-protected), guest carts, orders, and the admin back-office
// (API-key-protected).
func Setup(r *gin.Engine, db *gorm.DB, rev cache.Revalidator, sessions *store.Manager, feed *orderControllers.Feed) {
	SetupStorefrontRoutes(r, db)
	SetupUserRoutes(r, db)
	SetupGuestRoutes(r, db, sessions)
	SetupOrderRoutes(r, db, rev, feed)
	SetupAdminRoutes(r, db, rev, feed)
}
