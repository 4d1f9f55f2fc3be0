package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID             string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name           string          `gorm:"size:255;not null"`
	Slug           string          `gorm:"size:255;not null;uniqueIndex"`
	Description    string          `gorm:"type:text"`
	Sku            string          `gorm:"size:100;uniqueIndex"`
	Price          decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	Stock          int             `gorm:"not null"`
	Weight         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(16,2);default:0.00"`
	CategoryID     *string         `gorm:"size:36;index"`
	Category       *Category       `gorm:"foreignKey:CategoryID"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}
