package repositories

import (
	"context"

	"github.com/yogaprasetya/go-storefront/app/models"
	"gorm.io/gorm"
)

type WishlistRepository struct {
	DB *gorm.DB
}

type WishlistRepositoryImpl interface {
	Add(ctx context.Context, item *models.WishlistItem) error
	Remove(ctx context.Context, userID, productID string) error
	GetByUserID(ctx context.Context, userID string) ([]models.WishlistItem, error)
	CountByUserID(ctx context.Context, userID string) (int, error)
}

func NewWishlistRepository(db *gorm.DB) WishlistRepositoryImpl {
	return &WishlistRepository{db}
}

func (r *WishlistRepository) Add(ctx context.Context, item *models.WishlistItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *WishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{}).Error
}

func (r *WishlistRepository) GetByUserID(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *WishlistRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return int(count), err
}
