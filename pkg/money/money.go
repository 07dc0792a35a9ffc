package money

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// ErrOverdrawn is returned when a draw exceeds the remaining balance.
var ErrOverdrawn = errors.New("draw exceeds balance")

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// Currency is an ISO 4217 code.
type Currency struct {
	code string
}

// NewCurrency validates code as three uppercase letters.
func NewCurrency(code string) (Currency, error) {
	if !currencyCodeRe.MatchString(code) {
		return Currency{}, fmt.Errorf("currency %q: want three uppercase letters", code)
	}
	return Currency{code: code}, nil
}

// MustCurrency is NewCurrency for package-level values.
func MustCurrency(code string) Currency {
	c, err := NewCurrency(code)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Currency) Code() string   { return c.code }
func (c Currency) String() string { return c.code }

// IDR is the settlement currency for every product priced by this service.
var IDR = MustCurrency("IDR")

// Money is an amount of whole or fractional currency units. The zero value
// has no currency and is never produced by this package.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

func New(amount decimal.Decimal, currency Currency) Money {
	return Money{amount: amount, currency: currency}
}

// Zero returns an empty balance in currency.
func Zero(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() Currency      { return m.currency }
func (m Money) IsPositive() bool        { return m.amount.IsPositive() }

// Covers reports whether amount can be drawn from m without going below zero.
func (m Money) Covers(amount decimal.Decimal) bool {
	return m.amount.GreaterThanOrEqual(amount)
}

// Draw returns the balance left after taking amount from m. A draw larger
// than the balance fails with ErrOverdrawn rather than going negative.
func (m Money) Draw(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("negative draw %s", amount)
	}
	if !m.Covers(amount) {
		return Money{}, fmt.Errorf("%w: %s from %s", ErrOverdrawn, amount.StringFixed(0), m)
	}
	return Money{amount: m.amount.Sub(amount), currency: m.currency}, nil
}

// Equal compares amount and currency.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String renders whole units, for example "1500000 IDR".
func (m Money) String() string {
	return m.amount.StringFixed(0) + " " + m.currency.Code()
}
