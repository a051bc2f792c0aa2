package utils

import (
	"github.com/shopspring/decimal"
)

// FormatMoney rounds to two decimals for display. Callers keep unrounded values.
func FormatMoney(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// FormatEuro renders "1234.50 €".
func FormatEuro(amount float64) string {
	return FormatMoney(amount) + " €"
}

// FormatPercent renders one decimal place, e.g. "12.5".
func FormatPercent(p float64) string {
	return decimal.NewFromFloat(p).StringFixed(1)
}
