// Package money provides the currency-qualified amount type and the decimal
// arithmetic helpers used by the validator. All arithmetic uses
// shopspring/decimal with round-half-away-from-zero semantics, matching the
// EN 16931 rounding convention.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rezonia/facturx/internal/codes"
)

// Tolerance for cross-field consistency checks: 0.01 minor currency unit.
var Tolerance = decimal.New(1, -2)

// ValueError reports a rejected value at construction time.
type ValueError struct {
	Value   string
	Message string
}

func (e *ValueError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid value %q: %s", e.Value, e.Message)
	}
	return fmt.Sprintf("invalid value: %s", e.Message)
}

// NewValueError creates a new value error.
func NewValueError(value, message string) *ValueError {
	return &ValueError{Value: value, Message: message}
}

// Money is an amount in an ISO 4217 currency. The zero value is "no amount";
// use IsZeroValue to distinguish it from an actual zero amount.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// New creates a monetary amount with at most 2 fraction digits, the
// precision EN 16931 allows for document and line totals.
func New(amount string, currency string) (Money, error) {
	return newMoney(amount, currency, 2)
}

// NewPrice creates a monetary amount with at most 4 fraction digits, the
// precision allowed for unit prices.
func NewPrice(amount string, currency string) (Money, error) {
	return newMoney(amount, currency, 4)
}

func newMoney(amount, currency string, maxPlaces int32) (Money, error) {
	if !codes.ValidCurrency(currency) {
		return Money{}, NewValueError(currency, "not an ISO 4217 currency code")
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, NewValueError(amount, "not a decimal amount")
	}
	if FractionDigits(d) > maxPlaces {
		return Money{}, NewValueError(amount,
			fmt.Sprintf("more than %d fraction digits", maxPlaces))
	}
	return Money{Amount: d, Currency: currency}, nil
}

// MustNew is New that panics on error, for statically known amounts.
func MustNew(amount, currency string) Money {
	m, err := New(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// FromDecimal wraps an already validated decimal in the given currency.
func FromDecimal(d decimal.Decimal, currency string) Money {
	return Money{Amount: d, Currency: currency}
}

// Equal compares by value. The scale of the amounts is ignored:
// 100 EUR equals 100.00 EUR.
func (m Money) Equal(o Money) bool {
	return m.Currency == o.Currency && m.Amount.Equal(o.Amount)
}

// IsZeroValue reports whether m is the zero Money (no currency set).
func (m Money) IsZeroValue() bool {
	return m.Currency == ""
}

func (m Money) String() string {
	return m.Amount.StringFixed(2) + " " + m.Currency
}

// FractionDigits returns the number of digits after the decimal point in the
// representation d was constructed with.
func FractionDigits(d decimal.Decimal) int32 {
	if d.Exponent() >= 0 {
		return 0
	}
	return -d.Exponent()
}

// Round rounds half away from zero to the given number of places.
func Round(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}

// WithinTolerance reports whether a and b differ by at most Tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Tolerance)
}

// Sum sums a slice of decimals.
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := decimal.Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// ApplyRate computes amount * (ratePercent/100), rounded to 2 places.
func ApplyRate(amount, ratePercent decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	return amount.Mul(ratePercent).Div(hundred).Round(2)
}
