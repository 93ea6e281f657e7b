package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Wilaya is a delivery zone with a flat delivery fee. Reference data,
// maintained by admins.
type Wilaya struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Price     float64   `gorm:"not null" json:"price"`
	Orders    []Order   `gorm:"foreignKey:WilayaID" json:"orders,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (w *Wilaya) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
