package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/yogaprasetya/go-storefront/app/configs"
	"github.com/yogaprasetya/go-storefront/app/models"
	"github.com/yogaprasetya/go-storefront/app/models/migrations"
	"github.com/yogaprasetya/go-storefront/app/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

func testCartConfig() configs.CartConfig {
	return configs.CartConfig{
		TaxRate:                  decimal.NewFromInt(10),
		BaseShippingRate:         decimal.NewFromInt(10000),
		WeightShippingMultiplier: decimal.NewFromInt(2500),
		MaxQuantityPerItem:       99,
		GuestCartExpiration:      72 * time.Hour,
		MergeCartOnLogin:         true,
		ReserveStockOnAdd:        false,
		StockReservationTime:     30 * time.Minute,
		MaxWishlistItems:         50,
	}
}

func newTestCartService(t *testing.T, db *gorm.DB, config configs.CartConfig) *CartService {
	t.Helper()
	return NewCartService(
		repositories.NewCartRepository(db),
		repositories.NewCartItemRepository(db),
		repositories.NewProductRepository(db),
		repositories.NewStockReservationRepository(db),
		config,
	)
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:     uuid.NewString(),
		Name:   name,
		Slug:   name + "-" + uuid.NewString()[:6],
		Sku:    uuid.NewString()[:8],
		Price:  decimal.NewFromInt(price),
		Stock:  stock,
		Weight: decimal.NewFromInt(1),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:        uuid.NewString(),
		FirstName: "Test",
		LastName:  "User",
		Email:     uuid.NewString()[:8] + "@example.com",
		Password:  "irrelevant",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedGuestCart(t *testing.T, db *gorm.DB, sessionID string) *models.Cart {
	t.Helper()
	cart := &models.Cart{
		ID:        uuid.NewString(),
		SessionID: &sessionID,
	}
	require.NoError(t, db.Create(cart).Error)
	return cart
}

func seedUserCart(t *testing.T, db *gorm.DB, userID string) *models.Cart {
	t.Helper()
	cart := &models.Cart{
		ID:     uuid.NewString(),
		UserID: &userID,
	}
	require.NoError(t, db.Create(cart).Error)
	return cart
}

func seedCartItem(t *testing.T, db *gorm.DB, cartID string, product *models.Product, qty int) *models.CartItem {
	t.Helper()
	qtyDec := decimal.NewFromInt(int64(qty))
	item := &models.CartItem{
		ID:         uuid.NewString(),
		CartID:     cartID,
		ProductID:  product.ID,
		Qty:        qty,
		BasePrice:  product.Price,
		BaseTotal:  product.Price.Mul(qtyDec),
		TaxPercent: decimal.NewFromInt(10),
		SubTotal:   product.Price.Mul(qtyDec),
	}
	item.TaxAmount = item.SubTotal.Div(decimal.NewFromInt(10))
	item.GrandTotal = item.SubTotal.Add(item.TaxAmount)
	require.NoError(t, db.Create(item).Error)
	return item
}
