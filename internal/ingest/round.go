package ingest

import "github.com/shopspring/decimal"

// ToPercent turns a fraction (0.15234) into a percentage rounded to places
// decimals (15.23). The shift is done in decimal so 0.29 stays 29, not
// 28.999999999999996.
func ToPercent(fraction float64, places int32) float64 {
	return decimal.NewFromFloat(fraction).Shift(2).Round(places).InexactFloat64()
}

// ratioPercent returns 100 × num / den rounded to places decimals.
func ratioPercent(num, den decimal.Decimal, places int32) float64 {
	return num.Div(den).Shift(2).Round(places).InexactFloat64()
}
