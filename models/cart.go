package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Cart struct {
	ID        string     `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"uniqueIndex" json:"user_id"` // one cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CartItem links a cart to a variant. The (cart_id, prod_variant_id) pair is
// unique so quantity operations can address the pair instead of a row id.
type CartItem struct {
	ID             string         `gorm:"primaryKey" json:"id"`
	CartID         string         `gorm:"index:idx_cart_variant,unique" json:"cart_id"`
	ProdVariantID  string         `gorm:"index:idx_cart_variant,unique" json:"prod_variant_id"`
	ProductVariant ProductVariant `gorm:"foreignKey:ProdVariantID" json:"product_variant"`
	Quantity       int            `gorm:"not null" json:"quantity"`

	// Display fields snapshotted at add time so the cart renders without
	// joining the catalog.
	Title   string    `json:"title"`
	Image   string    `json:"image"`
	Price   float64   `json:"price"`
	Size    *string   `json:"size"`
	Color   *string   `json:"color"`
	Unit    *string   `json:"unit"`
	AddedAt time.Time `json:"added_at"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == "" {
		ci.ID = uuid.NewString()
	}
	return nil
}
