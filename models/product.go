package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID          string           `gorm:"primaryKey" json:"id"`
	Name        string           `gorm:"not null" json:"name"`
	Slug        string           `gorm:"uniqueIndex" json:"slug"`
	Image       string           `gorm:"not null" json:"image"`
	Description string           `json:"description"`
	Weight      *float64         `json:"weight"`
	Dimension   *float64         `json:"dimension"`
	LowStock    int              `gorm:"default:5" json:"low_stock"` // threshold for low-stock warnings
	CategoryID  string           `gorm:"index" json:"category_id"`
	Category    Category         `gorm:"foreignKey:CategoryID" json:"category"`
	BrandID     string           `gorm:"index" json:"brand_id"`
	Brand       Brand            `gorm:"foreignKey:BrandID" json:"brand"`
	Variants    []ProductVariant `gorm:"foreignKey:ProdID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	Images      []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type ProductImage struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ProductID string    `gorm:"index" json:"product_id"`
	ImageURL  string    `gorm:"not null" json:"image_url"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

func (pi *ProductImage) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == "" {
		pi.ID = uuid.NewString()
	}
	return nil
}
