// Package money converts between the decimal currency amounts that cross the
// HTTP boundary and the integer centavos used everywhere inside the ledger.
// No floating point is involved at any step.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNotRepresentable = errors.New("amount has more than two decimal places")

// ToCents parses a decimal currency string (e.g. "150.50") into centavos.
func ToCents(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return decimalToCents(d)
}

// FromCents renders centavos as a decimal string with two places ("150.50").
func FromCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

func decimalToCents(d decimal.Decimal) (int64, error) {
	scaled := d.Shift(2)
	if !scaled.IsInteger() {
		return 0, ErrNotRepresentable
	}
	return scaled.IntPart(), nil
}

// DecimalToCents converts an already-parsed decimal to centavos.
func DecimalToCents(d decimal.Decimal) (int64, error) {
	return decimalToCents(d)
}
