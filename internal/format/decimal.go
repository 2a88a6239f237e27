package format

import (
	"github.com/shopspring/decimal"

	"github.com/agbru/fraccalc/internal/fraction"
)

// Decimal renders f with exactly places digits after the decimal point,
// rounding half away from zero.
func Decimal(f fraction.Fraction, places int) string {
	if places < 0 {
		places = 0
	}
	num := decimal.NewFromInt(f.Num())
	den := decimal.NewFromInt(f.Den())
	return num.DivRound(den, int32(places)).StringFixed(int32(places))
}
