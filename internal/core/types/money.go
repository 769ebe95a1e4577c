// Package types provides monetary helpers on top of shopspring/decimal.
package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
type Money = decimal.Decimal

// PriceScale is the number of fractional digits stored for prices and percentages.
const PriceScale int32 = 2

// RoundPrice rounds half away from zero to PriceScale digits.
func RoundPrice(m Money) Money {
	return m.Round(PriceScale)
}

// TotalDigits counts the significant digits of the value as written:
// integer digits (a lone leading zero excluded) plus fractional digits
// without trailing zeros. 100.50 -> 4, 0.5 -> 1.
func TotalDigits(m Money) int {
	s := m.Abs().String()
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(frac)
	if intPart != "0" {
		n += len(intPart)
	}
	return n
}

// IntegerDigits counts the digits before the point, a lone zero excluded.
// 12345678.90 -> 8, 0.5 -> 0.
func IntegerDigits(m Money) int {
	intPart, _, _ := strings.Cut(m.Abs().String(), ".")
	if intPart == "0" {
		return 0
	}
	return len(intPart)
}

// DecimalPlaces returns the number of fractional digits after trimming trailing zeros.
func DecimalPlaces(m Money) int {
	_, frac, _ := strings.Cut(m.String(), ".")
	return len(frac)
}
