package formatter

import (
	"github.com/shopspring/decimal"
)

// MinorUnitExponent is the number of decimal places in one major unit.
const MinorUnitExponent = 2

// Money renders minor units as a dollar string, e.g. 2050 -> "$20.50".
func Money(minor int64) string {
	d := Decimal(minor)
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(MinorUnitExponent)
	}
	return "$" + d.StringFixed(MinorUnitExponent)
}

// Decimal converts minor units to a major-unit decimal.
func Decimal(minor int64) decimal.Decimal {
	return decimal.New(minor, -MinorUnitExponent)
}
