package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Trending pins a product to the storefront's trending section.
type Trending struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ProdID    string    `gorm:"uniqueIndex" json:"prod_id"`
	Product   Product   `gorm:"foreignKey:ProdID" json:"product"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *Trending) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

type CarouselSlide struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ImageURL  string    `gorm:"not null" json:"image_url"`
	Title     *string   `json:"title"`
	LinkURL   *string   `json:"link_url"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *CarouselSlide) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
