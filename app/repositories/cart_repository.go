package repositories

import (
	"context"
	"time"

	"github.com/yogaprasetya/go-storefront/app/models"
	"gorm.io/gorm"
)

type CartRepository struct {
	DB *gorm.DB
}

type CartRepositoryImpl interface {
	Create(ctx context.Context, cart *models.Cart) error
	GetByID(ctx context.Context, id string) (*models.Cart, error)
	GetCartWithItems(ctx context.Context, cartID string) (*models.Cart, error)
	FindByUserID(ctx context.Context, userID string) (*models.Cart, error)
	FindGuestCart(ctx context.Context, sessionID string) (*models.Cart, error)
	GetOrCreateByUserID(ctx context.Context, userID string) (*models.Cart, error)
	GetOrCreateGuestCart(ctx context.Context, sessionID string) (*models.Cart, error)
	PromoteToUser(ctx context.Context, cartID, userID string) error
	DeleteCart(ctx context.Context, cartID string) error
	UpdateCartSummary(ctx context.Context, cartID string) error
	GetCartItemCount(ctx context.Context, cartID string) (int, error)
	FindExpiredGuestCartIDs(ctx context.Context, cutoff time.Time) ([]string, error)
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}

func NewCartRepository(db *gorm.DB) CartRepositoryImpl {
	return &CartRepository{db}
}

func (r *CartRepository) Create(ctx context.Context, cart *models.Cart) error {
	return r.DB.WithContext(ctx).Create(cart).Error
}

func (r *CartRepository) GetByID(ctx context.Context, id string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepository) GetCartWithItems(ctx context.Context, cartID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).
		Preload("CartItems.Product").
		Preload("CartItems").
		Where("id = ?", cartID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepository) FindByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindGuestCart only matches carts that still have a null owner; a cart
// already promoted to a user is never returned as a guest cart.
func (r *CartRepository) FindGuestCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).
		Where("session_id = ? AND user_id IS NULL", sessionID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepository) GetOrCreateByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Attrs(models.Cart{UserID: &userID}).
		FirstOrCreate(&cart, models.Cart{UserID: &userID}).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepository) GetOrCreateGuestCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).
		Where("session_id = ? AND user_id IS NULL", sessionID).
		Attrs(models.Cart{SessionID: &sessionID}).
		FirstOrCreate(&cart, models.Cart{SessionID: &sessionID}).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// PromoteToUser rewrites the ownership columns in place: the guest cart
// row becomes the user's cart, no new row is created.
func (r *CartRepository) PromoteToUser(ctx context.Context, cartID, userID string) error {
	return r.DB.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", cartID).
		Updates(map[string]interface{}{
			"user_id":    userID,
			"session_id": nil,
			"updated_at": time.Now(),
		}).Error
}

func (r *CartRepository) DeleteCart(ctx context.Context, cartID string) error {
	return r.DB.WithContext(ctx).Where("id = ?", cartID).Delete(&models.Cart{}).Error
}

func (r *CartRepository) UpdateCartSummary(ctx context.Context, cartID string) error {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Find(&items).Error; err != nil {
		return err
	}

	var cart models.Cart
	for _, item := range items {
		cart.BaseTotalPrice = cart.BaseTotalPrice.Add(item.BaseTotal)
		cart.TaxAmount = cart.TaxAmount.Add(item.TaxAmount)
		cart.GrandTotal = cart.GrandTotal.Add(item.GrandTotal)
	}
	if len(items) > 0 {
		cart.TaxPercent = items[0].TaxPercent
	}

	return r.DB.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", cartID).
		Updates(map[string]interface{}{
			"base_total_price": cart.BaseTotalPrice,
			"tax_amount":       cart.TaxAmount,
			"tax_percent":      cart.TaxPercent,
			"grand_total":      cart.GrandTotal,
			"updated_at":       time.Now(),
		}).Error
}

func (r *CartRepository) GetCartItemCount(ctx context.Context, cartID string) (int, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Table("cart_items").
		Where("cart_id = ?", cartID).
		Count(&count).Error
	return int(count), err
}

func (r *CartRepository) FindExpiredGuestCartIDs(ctx context.Context, cutoff time.Time) ([]string, error) {
	var ids []string
	err := r.DB.WithContext(ctx).
		Model(&models.Cart{}).
		Where("user_id IS NULL AND updated_at < ?", cutoff).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *CartRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	tx := r.DB.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Cart{})
	return tx.RowsAffected, tx.Error
}
