package stockfolio

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in a single display currency.
//
// The engine computes in raw decimals; Money exists at the reporting edge so
// values render with the right symbol and fraction digits.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M builds a Money from a decimal amount and an ISO 4217 currency code.
func M(value decimal.Decimal, currency string) Money {
	return Money{value: value, cur: currency}
}

// Currency returns the money's currency code.
func (m Money) Currency() string { return m.cur }

// Amount returns the raw decimal amount.
func (m Money) Amount() decimal.Decimal { return m.value }

func (m Money) IsZero() bool       { return m.value.IsZero() }
func (m Money) Equal(n Money) bool { return m.value.Equal(n.value) && m.cur == n.cur }

// String formats the value using the currency's display convention.
func (m Money) String() string {
	// The money.Money constructor is the only way to get a never-nil currency.
	cur := *money.New(0, m.cur).Currency()
	minor := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}
