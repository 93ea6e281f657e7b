package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductVariant is a purchasable SKU of a product. Price and stock live
// here, not on the product.
type ProductVariant struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	ProdID         string    `gorm:"index" json:"prod_id"`
	Product        Product   `gorm:"foreignKey:ProdID" json:"product"`
	Price          float64   `gorm:"not null" json:"price"`
	CompareAtPrice *float64  `json:"compare_at_price"`
	Color          *string   `json:"color"`
	Size           *string   `json:"size"`
	Unit           *string   `json:"unit"`
	Stock          *Stock    `gorm:"foreignKey:ProdVariantID;constraint:OnDelete:CASCADE" json:"stock"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (v *ProductVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// Stock holds the on-hand quantity for one variant. Rows are created on
// demand, so a variant without a stock row means "never stocked".
type Stock struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	ProdVariantID string    `gorm:"uniqueIndex" json:"prod_variant_id"`
	Qty           int       `json:"qty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (s *Stock) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
