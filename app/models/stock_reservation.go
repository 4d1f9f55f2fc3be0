package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockReservation holds stock aside for a cart while the shopper is
// still deciding. Expired rows are ignored by availability checks and
// purged together with their cart.
type StockReservation struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	CartID    string `gorm:"size:36;index;not null"`
	ProductID string `gorm:"size:36;index;not null"`
	Qty       int    `gorm:"not null"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (sr *StockReservation) BeforeCreate(tx *gorm.DB) (err error) {
	if sr.ID == "" {
		sr.ID = uuid.New().String()
	}
	return
}
