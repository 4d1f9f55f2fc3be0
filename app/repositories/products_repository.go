package repositories

import (
	"context"

	"github.com/yogaprasetya/go-storefront/app/models"
	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

type ProductRepositoryImpl interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetPaginated(ctx context.Context, offset, limit int, categorySlug string) ([]models.Product, int64, error)
	DecrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) error
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &ProductRepository{db}
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.DB.WithContext(ctx).
		Preload("Category").
		Where("slug = ?", slug).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) GetPaginated(ctx context.Context, offset, limit int, categorySlug string) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := r.DB.WithContext(ctx).Model(&models.Product{})
	if categorySlug != "" {
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", categorySlug)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Category").
		Order("products.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// DecrementStock runs inside the caller's checkout transaction and
// fails when stock would go negative.
func (r *ProductRepository) DecrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) error {
	result := tx.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
