package kernel

import (
	"encoding/json"

	"localeats/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a non-negative amount in the platform currency. The zero value
// is a valid amount of zero.
type Money struct {
	amount decimal.Decimal
}

var ZeroMoney = Money{}

// NewMoney rejects negative amounts with a ValueIsOutOfRangeError.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, nil)
	}
	return Money{amount: amount}, nil
}

// MoneyFromFloat converts a JSON number. The decimal keeps the shortest
// representation of the float, so 7.25 stays 7.25.
func MoneyFromFloat(amount float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount))
}

// MoneyFromString parses a decimal literal such as "12.50".
func MoneyFromString(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// MustMoney panics on malformed input. Intended for literals.
func MustMoney(amount string) Money {
	m, err := MoneyFromString(amount)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Times multiplies by an item quantity.
func (m Money) Times(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

// Share returns the given fraction of m, for example 0.1 for ten percent.
func (m Money) Share(fraction decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(fraction)}
}

// Equal compares numerically, so 2.5 equals 2.50.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Float64 is for read models and metrics; domain arithmetic stays in
// decimal.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String renders the amount with two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.amount)
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	parsed, err := NewMoney(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
