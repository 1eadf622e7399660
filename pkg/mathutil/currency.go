// Package mathutil provides common mathematical utility functions for money.
package mathutil

import (
	"github.com/iwvelando/loan-amortizer/pkg/constants"
	"github.com/shopspring/decimal"
)

// Cent is the smallest currency unit.
var Cent = decimal.New(1, -constants.CurrencyPlaces)

// Round rounds a value to cents using round-half-even. Every monetary amount
// in a schedule passes through here.
func Round(val decimal.Decimal) decimal.Decimal {
	return val.RoundBank(constants.CurrencyPlaces)
}

// RoundFloat converts a float to decimal and rounds it to cents.
func RoundFloat(val float64) decimal.Decimal {
	return Round(decimal.NewFromFloat(val))
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance decimal.Decimal) bool {
	return val1.Sub(val2).Abs().LessThanOrEqual(tolerance)
}

// Min returns the smaller of two values
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Sum adds all values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// PercentToFraction converts a percentage such as 6.5 into 0.065.
func PercentToFraction(percent decimal.Decimal) float64 {
	return percent.InexactFloat64() / constants.PercentageMultiplier
}
