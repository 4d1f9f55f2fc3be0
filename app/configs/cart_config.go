package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// CartConfig holds the storefront options that are overridable from the
// environment. Every field falls back to its default when the variable
// is unset or unparsable.
type CartConfig struct {
	TaxRate                  decimal.Decimal
	BaseShippingRate         decimal.Decimal
	WeightShippingMultiplier decimal.Decimal
	MaxQuantityPerItem       int
	GuestCartExpiration      time.Duration
	MergeCartOnLogin         bool
	ReserveStockOnAdd        bool
	StockReservationTime     time.Duration
	MaxWishlistItems         int
}

const (
	defaultTaxRate                  = "11"
	defaultBaseShippingRate         = "10000"
	defaultWeightShippingMultiplier = "2500"
	defaultMaxQuantityPerItem       = 99
	defaultGuestCartExpirationHours = 72
	defaultStockReservationMinutes  = 30
	defaultMaxWishlistItems         = 50
)

func LoadCartConfig() CartConfig {
	return CartConfig{
		TaxRate:                  envDecimal("TAX_RATE", defaultTaxRate),
		BaseShippingRate:         envDecimal("BASE_SHIPPING_RATE", defaultBaseShippingRate),
		WeightShippingMultiplier: envDecimal("WEIGHT_SHIPPING_MULTIPLIER", defaultWeightShippingMultiplier),
		MaxQuantityPerItem:       envInt("MAX_QUANTITY_PER_ITEM", defaultMaxQuantityPerItem),
		GuestCartExpiration:      time.Duration(envInt("GUEST_CART_EXPIRATION", defaultGuestCartExpirationHours)) * time.Hour,
		MergeCartOnLogin:         envBool("MERGE_CART_ON_LOGIN", true),
		ReserveStockOnAdd:        envBool("RESERVE_STOCK_ON_ADD", false),
		StockReservationTime:     time.Duration(envInt("STOCK_RESERVATION_TIME", defaultStockReservationMinutes)) * time.Minute,
		MaxWishlistItems:         envInt("MAX_WISHLIST_ITEMS", defaultMaxWishlistItems),
	}
}

func envDecimal(key, fallback string) decimal.Decimal {
	raw := os.Getenv(key)
	if raw == "" {
		raw = fallback
	}
	val, err := decimal.NewFromString(raw)
	if err != nil {
		log.Printf("LoadCartConfig: invalid %s=%q, using default %s: %v", key, raw, fallback, err)
		val, _ = decimal.NewFromString(fallback)
	}
	return val
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("LoadCartConfig: invalid %s=%q, using default %d: %v", key, raw, fallback, err)
		return fallback
	}
	return val
}

func envBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("LoadCartConfig: invalid %s=%q, using default %t: %v", key, raw, fallback, err)
		return fallback
	}
	return val
}
