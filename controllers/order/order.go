package orderControllers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dzstore/storefront-api/cache"
	"github.com/dzstore/storefront-api/logger"
	"github.com/dzstore/storefront-api/models"
)

var (
	ErrEmptyOrder        = errors.New("order has no items")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// OrderLineInput snapshots one purchased line: the variant, how many, and the
// price the customer saw. Decoupled from the live variant price on purpose.
type OrderLineInput struct {
	ProdVariantID   string  `json:"prod_variant_id" binding:"required"`
	Quantity        int     `json:"quantity" binding:"required,min=1"`
	PriceAtPurchase float64 `json:"price_at_purchase"`
}

type CreateOrderData struct {
	Name       string           `json:"name" binding:"required"`
	Email      string           `json:"email"`
	Phone      string           `json:"phone" binding:"required"`
	WilayaID   string           `json:"wilaya_id" binding:"required"`
	CustomerID string           `json:"customer_id"` // empty for guest checkout
	Items      []OrderLineInput `json:"items" binding:"required"`
	Total      float64          `json:"total"`
}

// CreateOrder runs the one multi-step transaction of the system: insert the
// order with its line snapshots, decrement each variant's stock, and empty
// the customer's persisted cart. Everything commits or nothing does.
//
// The stock decrement is conditional on qty >= requested, so two orders
// racing for the same variant cannot oversell it; the loser's transaction
// rolls back with ErrInsufficientStock.
func CreateOrder(db *gorm.DB, data CreateOrderData) (*models.Order, error) {
	if len(data.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, line := range data.Items {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("invalid quantity %d for variant %s", line.Quantity, line.ProdVariantID)
		}
	}

	items := make([]models.OrderItem, 0, len(data.Items))
	for _, line := range data.Items {
		items = append(items, models.OrderItem{
			ProdVariantID:   line.ProdVariantID,
			Quantity:        line.Quantity,
			PriceAtPurchase: line.PriceAtPurchase,
		})
	}

	order := models.Order{
		Name:     data.Name,
		Email:    data.Email,
		Phone:    data.Phone,
		Total:    int(math.Round(data.Total)),
		Status:   models.OrderStatusPending,
		WilayaID: data.WilayaID,
		Items:    items,
	}
	if data.CustomerID != "" {
		cid := data.CustomerID
		order.CustomerID = &cid
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, line := range data.Items {
			res := tx.Model(&models.Stock{}).
				Where("prod_variant_id = ? AND qty >= ?", line.ProdVariantID, line.Quantity).
				UpdateColumn("qty", gorm.Expr("qty - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w for variant %s", ErrInsufficientStock, line.ProdVariantID)
			}
		}

		// Guests have no persisted cart; skip the lookup entirely.
		if data.CustomerID != "" {
			var cart models.Cart
			err := tx.Where("user_id = ?", data.CustomerID).First(&cart).Error
			switch {
			case err == nil:
				if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
					return err
				}
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := db.Preload("Items").Preload("Wilaya").First(&order, "id = ?", order.ID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// GetWilayas returns every delivery zone, ordered by name.
func GetWilayas(db *gorm.DB) ([]models.Wilaya, error) {
	var wilayas []models.Wilaya
	if err := db.Order("name asc").Find(&wilayas).Error; err != nil {
		return nil, err
	}
	return wilayas, nil
}

// GetUserOrders fetches a customer's order history by id, falling back to
// email for guests. Both empty means nothing to look up.
func GetUserOrders(db *gorm.DB, userID, email string) ([]models.Order, error) {
	if userID == "" && email == "" {
		return []models.Order{}, nil
	}
	q := db.Preload("Items").Preload("Wilaya").Order("created_at DESC")
	if userID != "" {
		q = q.Where("customer_id = ?", userID)
	} else {
		q = q.Where("email = ?", email)
	}
	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus applies an admin transition after validating it against
// the status machine. Cancelling does not restock: stock corrections after a
// cancellation are an explicit admin action on the stock screen.
func UpdateOrderStatus(db *gorm.DB, orderID string, next models.OrderStatus) (*models.Order, error) {
	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
	}
	if err := db.Model(&order).Update("status", next).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func parseOrderStatus(status string) (models.OrderStatus, error) {
	switch models.OrderStatus(strings.ToUpper(status)) {
	case models.OrderStatusPending:
		return models.OrderStatusPending, nil
	case models.OrderStatusProcessing:
		return models.OrderStatusProcessing, nil
	case models.OrderStatusShipped:
		return models.OrderStatusShipped, nil
	case models.OrderStatusCancelled:
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// -------- Handlers --------

// POST /orders
func CreateOrderHandler(db *gorm.DB, feed *Feed, rev cache.Revalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var data CreateOrderData
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		order, err := CreateOrder(db, data)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, ErrEmptyOrder) || errors.Is(err, ErrInsufficientStock) {
				status = http.StatusBadRequest
			}
			logger.Log.Error("create order failed", zap.Error(err))
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		feed.Broadcast(*order)
		rev.Revalidate("/checkout")
		c.JSON(http.StatusCreated, order)
	}
}

// GET /wilayas
func GetWilayasHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		wilayas, err := GetWilayas(db)
		if err != nil {
			logger.Log.Error("fetch wilayas failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wilayas"})
			return
		}
		c.JSON(http.StatusOK, wilayas)
	}
}

// GET /orders/history?user_id=&email=
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := GetUserOrders(db, c.Query("user_id"), c.Query("email"))
		if err != nil {
			logger.Log.Error("fetch user orders failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Items").
			Preload("Wilaya").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PUT /admin/orders/:order_id/status
func UpdateOrderStatusHandler(db *gorm.DB, rev cache.Revalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("order_id")
		var req struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		next, err := parseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		order, err := UpdateOrderStatus(db, orderID, next)
		if err != nil {
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			case errors.Is(err, ErrInvalidTransition):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			}
			return
		}
		rev.Revalidate("/orders")
		c.JSON(http.StatusOK, order)
	}
}
