package calc

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

func CalculateTax(baseTotal, taxRate decimal.Decimal) decimal.Decimal {
	return baseTotal.Mul(taxRate).Div(hundred)
}

// CalculateShippingCost applies the flat base rate plus a per-weight
// multiplier. Weight is whatever unit the catalog stores (kg here).
func CalculateShippingCost(baseRate, weightMultiplier, totalWeight decimal.Decimal) decimal.Decimal {
	return baseRate.Add(weightMultiplier.Mul(totalWeight))
}

func CalculateGrandTotal(baseTotal, taxAmount, shippingCost decimal.Decimal) decimal.Decimal {
	return baseTotal.Add(taxAmount).Add(shippingCost)
}
