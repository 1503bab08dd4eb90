package models

import "github.com/shopspring/decimal"

// MaxMoney is the largest value a NUMERIC(10,2) column holds.
var MaxMoney = decimal.RequireFromString("99999999.99")

var hundred = decimal.NewFromInt(100)

// FormatMoney renders an amount the way records are serialized: two decimals.
func FormatMoney(d decimal.Decimal) string { return d.StringFixed(2) }

// SpentPercentage is spent/total*100, or 0 when total is zero.
func SpentPercentage(spent, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return spent.Div(total).Mul(hundred).InexactFloat64()
}
