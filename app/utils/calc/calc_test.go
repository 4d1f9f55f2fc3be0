package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateTax(t *testing.T) {
	tax := CalculateTax(decimal.NewFromInt(100000), decimal.NewFromInt(11))
	assert.True(t, tax.Equal(decimal.NewFromInt(11000)), "got %s", tax)
}

func TestCalculateShippingCost(t *testing.T) {
	cost := CalculateShippingCost(
		decimal.NewFromInt(10000),
		decimal.NewFromInt(2500),
		decimal.NewFromFloat(3.5),
	)
	assert.True(t, cost.Equal(decimal.NewFromInt(18750)), "got %s", cost)
}

func TestCalculateShippingCostZeroWeight(t *testing.T) {
	cost := CalculateShippingCost(
		decimal.NewFromInt(10000),
		decimal.NewFromInt(2500),
		decimal.Zero,
	)
	assert.True(t, cost.Equal(decimal.NewFromInt(10000)), "flat rate applies with no weight")
}

func TestCalculateGrandTotal(t *testing.T) {
	total := CalculateGrandTotal(
		decimal.NewFromInt(100000),
		decimal.NewFromInt(11000),
		decimal.NewFromInt(18750),
	)
	assert.True(t, total.Equal(decimal.NewFromInt(129750)), "got %s", total)
}
