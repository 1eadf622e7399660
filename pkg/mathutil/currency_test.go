package mathutil

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Half rounds to even down", "1.225", "1.22"},
		{"Half rounds to even up", "1.235", "1.24"},
		{"Round down below midpoint", "1.234", "1.23"},
		{"Round up above midpoint", "1.236", "1.24"},
		{"No rounding needed", "1.23", "1.23"},
		{"Large number", "12345.678", "12345.68"},
		{"Negative half to even", "-1.225", "-1.22"},
		{"Zero", "0", "0"},
		{"Very small positive", "0.001", "0"},
		{"Exactly one cent", "0.01", "0.01"},
		{"Nearly two cents", "0.019", "0.02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(decimal.RequireFromString(tt.input))
			if !result.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("Round(%s) = %s, expected %s", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRoundFloat(t *testing.T) {
	result := RoundFloat(1580.170630)
	if !result.Equal(decimal.RequireFromString("1580.17")) {
		t.Errorf("RoundFloat() = %s, expected 1580.17", result)
	}
}

func TestWithinTolerance(t *testing.T) {
	a := decimal.RequireFromString("100.00")
	b := decimal.RequireFromString("100.01")
	if !WithinTolerance(a, b, Cent) {
		t.Errorf("expected %s and %s to be within one cent", a, b)
	}
	if WithinTolerance(a, decimal.RequireFromString("100.02"), Cent) {
		t.Errorf("expected 100.00 and 100.02 to differ by more than one cent")
	}
}

func TestMin(t *testing.T) {
	a := decimal.NewFromInt(5)
	b := decimal.NewFromInt(7)
	if !Min(a, b).Equal(a) || !Min(b, a).Equal(a) {
		t.Errorf("Min() did not return the smaller value")
	}
}

func TestSum(t *testing.T) {
	total := Sum(decimal.RequireFromString("0.10"), decimal.RequireFromString("0.20"), decimal.RequireFromString("0.30"))
	if !total.Equal(decimal.RequireFromString("0.60")) {
		t.Errorf("Sum() = %s, expected 0.60", total)
	}
	if !Sum().IsZero() {
		t.Errorf("Sum() of nothing should be zero")
	}
}

func TestPercentToFraction(t *testing.T) {
	got := PercentToFraction(decimal.RequireFromString("6.5"))
	if math.Abs(got-0.065) > 1e-12 {
		t.Errorf("PercentToFraction(6.5) = %v, expected 0.065", got)
	}
}
