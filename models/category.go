package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID               string     `gorm:"primaryKey" json:"id"`
	Name             string     `gorm:"not null" json:"name"`
	Slug             string     `gorm:"uniqueIndex" json:"slug"`
	Image            string     `json:"image"`
	ParentCategoryID *string    `gorm:"index" json:"parent_category_id"`
	Subcategories    []Category `gorm:"foreignKey:ParentCategoryID" json:"subcategories,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type Brand struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	CategoryID string    `gorm:"index" json:"category_id"`
	Category   Category  `gorm:"foreignKey:CategoryID" json:"category"`
	Products   []Product `gorm:"foreignKey:BrandID" json:"products,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (b *Brand) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
