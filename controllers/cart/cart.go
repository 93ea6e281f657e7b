package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dzstore/storefront-api/logger"
	"github.com/dzstore/storefront-api/models"
)

var (
	ErrMissingCartID    = errors.New("cart id is required")
	ErrMissingVariantID = errors.New("variant id is required")
)

// CartItemInput is the fully-formed line descriptor the UI sends: the
// variant reference plus the display fields to snapshot.
type CartItemInput struct {
	ProdVariantID string  `json:"prod_variant_id" binding:"required"`
	Quantity      int     `json:"quantity"`
	Title         string  `json:"title"`
	Image         string  `json:"image"`
	Price         float64 `json:"price"`
	Size          *string `json:"size"`
	Color         *string `json:"color"`
	Unit          *string `json:"unit"`
}

// GetCartWithItems returns the user's cart with items, variants, products and
// stock joined, creating the cart row on first access. The user_id unique
// index guarantees fetch-or-create never duplicates. An empty userID means
// the caller is anonymous: no persisted cart, state lives client-side only.
func GetCartWithItems(db *gorm.DB, userID string) (*models.Cart, error) {
	if userID == "" {
		return nil, nil
	}
	var cart models.Cart
	if err := db.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error; err != nil {
		return nil, err
	}
	if err := db.
		Preload("Items.ProductVariant.Product").
		Preload("Items.ProductVariant.Stock").
		First(&cart, "id = ?", cart.ID).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart inserts a line for the given variant, or, when the (cart,
// variant) pair already has a row, increments its quantity and refreshes the
// display snapshot. The pair-unique index backs this up at the store layer.
func AddToCart(db *gorm.DB, cartID string, input CartItemInput) (*models.CartItem, error) {
	if cartID == "" {
		return nil, ErrMissingCartID
	}
	if input.ProdVariantID == "" {
		return nil, ErrMissingVariantID
	}
	qty := input.Quantity
	if qty <= 0 {
		qty = 1
	}

	var item models.CartItem
	err := db.Where("cart_id = ? AND prod_variant_id = ?", cartID, input.ProdVariantID).
		First(&item).Error
	switch {
	case err == nil:
		item.Quantity += qty
		item.Title = input.Title
		item.Image = input.Image
		item.Price = input.Price
		item.Size = input.Size
		item.Color = input.Color
		item.Unit = input.Unit
		item.AddedAt = time.Now()
		if err := db.Save(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{
			CartID:        cartID,
			ProdVariantID: input.ProdVariantID,
			Quantity:      qty,
			Title:         input.Title,
			Image:         input.Image,
			Price:         input.Price,
			Size:          input.Size,
			Color:         input.Color,
			Unit:          input.Unit,
			AddedAt:       time.Now(),
		}
		if err := db.Create(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil
	default:
		return nil, err
	}
}

// IncreaseItemQuantity bumps the quantity of the line addressed by the
// (variant, cart) pair by one.
func IncreaseItemQuantity(db *gorm.DB, variantID, cartID string) error {
	if variantID == "" {
		return ErrMissingVariantID
	}
	if cartID == "" {
		return ErrMissingCartID
	}
	return db.Model(&models.CartItem{}).
		Where("prod_variant_id = ? AND cart_id = ?", variantID, cartID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", 1)).Error
}

// DecreaseItemQuantity lowers the pair's quantity by one and deletes the row
// once it reaches zero, so a zero-quantity line never persists.
func DecreaseItemQuantity(db *gorm.DB, variantID, cartID string) error {
	if variantID == "" {
		return ErrMissingVariantID
	}
	if cartID == "" {
		return ErrMissingCartID
	}
	res := db.Model(&models.CartItem{}).
		Where("prod_variant_id = ? AND cart_id = ?", variantID, cartID).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}

	var item models.CartItem
	err := db.Where("prod_variant_id = ? AND cart_id = ?", variantID, cartID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if item.Quantity <= 0 {
		return RemoveCartItem(db, variantID, cartID)
	}
	return nil
}

// RemoveCartItem deletes the line addressed by the (variant, cart) pair.
func RemoveCartItem(db *gorm.DB, variantID, cartID string) error {
	if variantID == "" {
		return ErrMissingVariantID
	}
	if cartID == "" {
		return ErrMissingCartID
	}
	return db.Where("prod_variant_id = ? AND cart_id = ?", variantID, cartID).
		Delete(&models.CartItem{}).Error
}

// ClearCart deletes every line of the cart. Used by the explicit empty-cart
// action; order placement clears the cart inside its own transaction.
func ClearCart(db *gorm.DB, cartID string) error {
	if cartID == "" {
		return ErrMissingCartID
	}
	return db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}

// -------- Handlers --------

func userID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// GET /user/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		cart, err := GetCartWithItems(db, uid)
		if err != nil {
			logger.Log.Error("fetch cart failed", zap.String("user_id", uid), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// POST /user/cart/items
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		cart, err := GetCartWithItems(db, uid)
		if err != nil {
			logger.Log.Error("fetch cart failed", zap.String("user_id", uid), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		item, err := AddToCart(db, cart.ID, input)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, ErrMissingCartID) || errors.Is(err, ErrMissingVariantID) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func quantityHandler(db *gorm.DB, apply func(*gorm.DB, string, string) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var cart models.Cart
		if err := db.Where("user_id = ?", uid).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User cart not found"})
			return
		}
		if err := apply(db, c.Param("variant_id"), cart.ID); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, ErrMissingCartID) || errors.Is(err, ErrMissingVariantID) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
	}
}

// PUT /user/cart/items/:variant_id/increase
func IncreaseCartItem(db *gorm.DB) gin.HandlerFunc {
	return quantityHandler(db, IncreaseItemQuantity)
}

// PUT /user/cart/items/:variant_id/decrease
func DecreaseCartItem(db *gorm.DB) gin.HandlerFunc {
	return quantityHandler(db, DecreaseItemQuantity)
}

// DELETE /user/cart/items/:variant_id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return quantityHandler(db, RemoveCartItem)
}

// DELETE /user/cart
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var cart models.Cart
		if err := db.Where("user_id = ?", uid).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User cart not found"})
			return
		}
		if err := ClearCart(db, cart.ID); err != nil {
			logger.Log.Error("clear cart failed", zap.String("cart_id", cart.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
