package repositories

import (
	"context"
	"time"

	"github.com/yogaprasetya/go-storefront/app/models"
	"gorm.io/gorm"
)

type StockReservationRepository struct {
	DB *gorm.DB
}

type StockReservationRepositoryImpl interface {
	Create(ctx context.Context, reservation *models.StockReservation) error
	DeleteByCartAndProduct(ctx context.Context, cartID, productID string) error
	DeleteByCartIDs(ctx context.Context, cartIDs []string) error
	SumActiveByProduct(ctx context.Context, productID, excludeCartID string) (int, error)
}

func NewStockReservationRepository(db *gorm.DB) StockReservationRepositoryImpl {
	return &StockReservationRepository{db}
}

func (r *StockReservationRepository) Create(ctx context.Context, reservation *models.StockReservation) error {
	return r.DB.WithContext(ctx).Create(reservation).Error
}

func (r *StockReservationRepository) DeleteByCartAndProduct(ctx context.Context, cartID, productID string) error {
	return r.DB.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.StockReservation{}).Error
}

func (r *StockReservationRepository) DeleteByCartIDs(ctx context.Context, cartIDs []string) error {
	return r.DB.WithContext(ctx).
		Where("cart_id IN ?", cartIDs).
		Delete(&models.StockReservation{}).Error
}

// SumActiveByProduct totals the unexpired reservations held by other
// carts, so availability checks can subtract them from raw stock.
func (r *StockReservationRepository) SumActiveByProduct(ctx context.Context, productID, excludeCartID string) (int, error) {
	var total int64
	err := r.DB.WithContext(ctx).
		Model(&models.StockReservation{}).
		Select("COALESCE(SUM(qty), 0)").
		Where("product_id = ? AND cart_id <> ? AND expires_at > ?", productID, excludeCartID, time.Now()).
		Scan(&total).Error
	return int(total), err
}
