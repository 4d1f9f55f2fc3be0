package configs

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoadCartConfigDefaults(t *testing.T) {
	config := LoadCartConfig()

	assert.Equal(t, 99, config.MaxQuantityPerItem)
	assert.Equal(t, 72*time.Hour, config.GuestCartExpiration)
	assert.True(t, config.MergeCartOnLogin)
	assert.False(t, config.ReserveStockOnAdd)
	assert.Equal(t, 30*time.Minute, config.StockReservationTime)
	assert.Equal(t, 50, config.MaxWishlistItems)
	assert.True(t, config.TaxRate.Equal(decimal.NewFromInt(11)))
}

func TestLoadCartConfigEnvOverrides(t *testing.T) {
	t.Setenv("MAX_QUANTITY_PER_ITEM", "10")
	t.Setenv("GUEST_CART_EXPIRATION", "48")
	t.Setenv("MERGE_CART_ON_LOGIN", "false")
	t.Setenv("RESERVE_STOCK_ON_ADD", "true")
	t.Setenv("TAX_RATE", "7.5")

	config := LoadCartConfig()

	assert.Equal(t, 10, config.MaxQuantityPerItem)
	assert.Equal(t, 48*time.Hour, config.GuestCartExpiration)
	assert.False(t, config.MergeCartOnLogin)
	assert.True(t, config.ReserveStockOnAdd)
	assert.True(t, config.TaxRate.Equal(decimal.NewFromFloat(7.5)))
}

func TestLoadCartConfigIgnoresUnparsableValues(t *testing.T) {
	t.Setenv("MAX_QUANTITY_PER_ITEM", "lots")
	t.Setenv("MERGE_CART_ON_LOGIN", "maybe")
	t.Setenv("TAX_RATE", "eleven")

	config := LoadCartConfig()

	assert.Equal(t, 99, config.MaxQuantityPerItem)
	assert.True(t, config.MergeCartOnLogin)
	assert.True(t, config.TaxRate.Equal(decimal.NewFromInt(11)))
}
