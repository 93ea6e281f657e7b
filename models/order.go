package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"    // set at creation
	OrderStatusProcessing OrderStatus = "PROCESSING" // confirmed by admin
	OrderStatusShipped    OrderStatus = "SHIPPED"    // terminal
	OrderStatusCancelled  OrderStatus = "CANCELLED"  // terminal, reachable from any non-terminal state
)

// CanTransitionTo reports whether the admin status update s -> next is legal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusProcessing || next == OrderStatusCancelled
	case OrderStatusProcessing:
		return next == OrderStatusShipped || next == OrderStatusCancelled
	default:
		return false
	}
}

// Order is immutable after creation except for Status. Total and line prices
// are snapshots so historical orders survive catalog edits.
type Order struct {
	ID         string      `gorm:"primaryKey" json:"id"`
	Name       string      `gorm:"not null" json:"name"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	Total      int         `gorm:"not null" json:"total"`
	Status     OrderStatus `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	WilayaID   string      `gorm:"index" json:"wilaya_id"`
	Wilaya     Wilaya      `gorm:"foreignKey:WilayaID" json:"wilaya"`
	CustomerID *string     `gorm:"index" json:"customer_id"` // nil for guest orders
	Items      []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time   `json:"created_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

type OrderItem struct {
	ID              string  `gorm:"primaryKey" json:"id"`
	OrderID         string  `gorm:"index" json:"order_id"`
	ProdVariantID   string  `gorm:"index" json:"prod_variant_id"`
	Quantity        int     `gorm:"not null" json:"quantity"`
	PriceAtPurchase float64 `gorm:"not null" json:"price_at_purchase"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == "" {
		oi.ID = uuid.NewString()
	}
	return nil
}
