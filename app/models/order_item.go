package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	ID        string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	OrderID   string          `gorm:"size:36;index;not null"`
	ProductID string          `gorm:"size:36;index;not null"`
	Product   *Product        `gorm:"foreignKey:ProductID"`
	Name      string          `gorm:"size:255;not null"`
	Qty       int             `gorm:"not null"`
	BasePrice decimal.Decimal `gorm:"type:decimal(16,2)"`
	SubTotal  decimal.Decimal `gorm:"type:decimal(16,2)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}
