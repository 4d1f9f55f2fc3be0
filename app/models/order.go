package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID              string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Code            string `gorm:"size:50;not null;uniqueIndex"`
	UserID          string `gorm:"size:36;index;not null"`
	User            *User  `gorm:"foreignKey:UserID"`
	OrderItems      []OrderItem
	Status          string          `gorm:"size:20;default:'pending';not null"`
	BaseTotalPrice  decimal.Decimal `gorm:"type:decimal(16,2)"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(16,2)"`
	ShippingCost    decimal.Decimal `gorm:"type:decimal(16,2)"`
	GrandTotal      decimal.Decimal `gorm:"type:decimal(16,2)"`
	ShippingAddress string          `gorm:"type:text"`
	PaymentToken    string          `gorm:"size:255"`
	PaidAt          *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}
