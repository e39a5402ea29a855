// Package money represents prices and payment amounts as exact decimals.
package money

import (
	"regexp"
	"strings"

	"github.com/juju/errors"
	"github.com/shopspring/decimal"
)

// amountPattern accepts whole amounts or amounts with one or two decimals.
var amountPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// Amount is a decimal that encodes as a bare JSON number.
type Amount struct {
	decimal.Decimal
}

// Zero is the zero Amount.
var Zero = Amount{decimal.Zero}

// New returns the Amount for a float literal. Use Parse for user input.
func New(f float64) Amount { return Amount{decimal.NewFromFloat(f)} }

// Cents returns the Amount for an integral number of cents.
func Cents(c int64) Amount { return Amount{decimal.New(c, -2)} }

// Parse reads a user-entered amount with at most two decimals.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if !amountPattern.MatchString(s) {
		return Zero, errors.NotValidf("amount %q", s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, errors.Annotatef(err, "parsing amount %q", s)
	}
	return Amount{d}, nil
}

// ValidAmount reports whether s is a well-formed amount.
func ValidAmount(s string) bool { return amountPattern.MatchString(strings.TrimSpace(s)) }

// Add returns a + b.
func (a Amount) Add(b Amount) Amount { return Amount{a.Decimal.Add(b.Decimal)} }

// Mul returns a * n.
func (a Amount) Mul(n int) Amount { return Amount{a.Decimal.Mul(decimal.NewFromInt(int64(n)))} }

// Sum adds amounts.
func Sum(amounts ...Amount) Amount {
	total := Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Positive reports whether a > 0.
func (a Amount) Positive() bool { return a.Decimal.IsPositive() }

// Negative reports whether a < 0.
func (a Amount) Negative() bool { return a.Decimal.IsNegative() }

// String renders a with two decimals.
func (a Amount) String() string { return a.StringFixed(2) }

// MarshalJSON encodes a as a JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// UnmarshalJSON accepts JSON numbers and numeric strings.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = Zero
		return nil
	}
	return a.Decimal.UnmarshalJSON(data)
}
