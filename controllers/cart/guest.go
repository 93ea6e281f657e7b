package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dzstore/storefront-api/models"
	"github.com/dzstore/storefront-api/store"
)

// Guest carts never touch the database: each session gets an in-memory
// mirror from the store manager, discarded when the guest checks out or the
// process restarts.

func guestSession(c *gin.Context) (string, bool) {
	id := c.Query("session_id")
	return id, id != ""
}

// GET /guest/cart
func GetGuestCart(sessions *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := guestSession(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
			return
		}
		cs := sessions.Get(sid)
		c.JSON(http.StatusOK, gin.H{"items": cs.Items(), "total": cs.Total()})
	}
}

// POST /guest/cart/items
func AddGuestCartItem(db *gorm.DB, sessions *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := guestSession(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
			return
		}
		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		// Validate the variant against the catalog and take the display
		// snapshot from there rather than trusting the client.
		var variant models.ProductVariant
		err := db.Preload("Product").Preload("Stock").
			First(&variant, "id = ?", input.ProdVariantID).Error
		if err != nil {
			status := http.StatusInternalServerError
			msg := "Failed to validate variant"
			if errors.Is(err, gorm.ErrRecordNotFound) {
				status = http.StatusBadRequest
				msg = "Variant does not exist"
			}
			c.JSON(status, gin.H{"error": msg})
			return
		}

		cs := sessions.Get(sid)
		for _, line := range cs.Items() {
			if line.ProdVariantID == variant.ID {
				cs.IncreaseItemQuantity(line.ID)
				c.JSON(http.StatusOK, gin.H{"items": cs.Items()})
				return
			}
		}

		qty := input.Quantity
		if qty <= 0 {
			qty = 1
		}
		stockQty := 0
		if variant.Stock != nil {
			stockQty = variant.Stock.Qty
		}
		cs.AddToCart(store.CartLine{
			ID:            variant.ID,
			ProdVariantID: variant.ID,
			Title:         variant.Product.Name,
			Image:         variant.Product.Image,
			Quantity:      qty,
			Price:         variant.Price,
			Size:          variant.Size,
			Color:         variant.Color,
			Unit:          variant.Unit,
			StockQty:      stockQty,
		})
		c.JSON(http.StatusCreated, gin.H{"items": cs.Items()})
	}
}

// PUT /guest/cart/items/:line_id/increase
func IncreaseGuestCartItem(sessions *store.Manager) gin.HandlerFunc {
	return guestLineHandler(sessions, (*store.CartStore).IncreaseItemQuantity)
}

// PUT /guest/cart/items/:line_id/decrease
func DecreaseGuestCartItem(sessions *store.Manager) gin.HandlerFunc {
	return guestLineHandler(sessions, (*store.CartStore).DecreaseItemQuantity)
}

// DELETE /guest/cart/items/:line_id
func RemoveGuestCartItem(sessions *store.Manager) gin.HandlerFunc {
	return guestLineHandler(sessions, (*store.CartStore).RemoveFromCart)
}

func guestLineHandler(sessions *store.Manager, apply func(*store.CartStore, string)) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := guestSession(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
			return
		}
		cs := sessions.Get(sid)
		apply(cs, c.Param("line_id"))
		c.JSON(http.StatusOK, gin.H{"items": cs.Items()})
	}
}

// DELETE /guest/cart
func ClearGuestCart(sessions *store.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := guestSession(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
			return
		}
		sessions.Drop(sid)
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
