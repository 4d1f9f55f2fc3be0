package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WishlistItem struct {
	ID        string   `gorm:"size:36;not null;uniqueIndex;primary_key"`
	UserID    string   `gorm:"size:36;index:idx_wishlist_user_product,unique;not null"`
	ProductID string   `gorm:"size:36;index:idx_wishlist_user_product,unique;not null"`
	Product   *Product `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time
}

func (w *WishlistItem) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return
}
