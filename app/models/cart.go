package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cart is owned by exactly one of UserID or SessionID. A guest cart has
// SessionID set and UserID null; merge-on-login either promotes the row
// in place or folds its items into the user's existing cart.
type Cart struct {
	ID             string  `gorm:"size:36;not null;uniqueIndex;primary_key"`
	UserID         *string `gorm:"size:36;index"`
	User           *User   `gorm:"foreignKey:UserID"`
	SessionID      *string `gorm:"size:64;index"`
	CartItems      []CartItem
	BaseTotalPrice decimal.Decimal `gorm:"type:decimal(16,2)"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(16,2)"`
	TaxPercent     decimal.Decimal `gorm:"type:decimal(10,2)"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(16,2)"`
	GrandTotal     decimal.Decimal `gorm:"type:decimal(16,2)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (c *Cart) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

func (c *Cart) IsGuest() bool {
	return c.UserID == nil && c.SessionID != nil
}
