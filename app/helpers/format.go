package helpers

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var idr = accounting.Accounting{Symbol: "Rp ", Precision: 0, Thousand: "."}

func FormatPrice(amount interface{}) string {
	switch v := amount.(type) {
	case decimal.Decimal:
		return idr.FormatMoneyDecimal(v)
	case float64:
		return idr.FormatMoney(v)
	case int:
		return idr.FormatMoney(v)
	case int64:
		return idr.FormatMoney(v)
	case string:
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return idr.FormatMoney(0)
		}
		return idr.FormatMoneyDecimal(parsed)
	default:
		return idr.FormatMoney(0)
	}
}
