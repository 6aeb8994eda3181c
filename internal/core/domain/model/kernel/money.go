package kernel

import (
	"fmt"

	"pressing/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places an amount may carry. Amounts
// are stored as numeric(14,2), so MaxMoney is the largest storable value.
const MoneyScale = 2

var MaxMoney = decimal.RequireFromString("999999999999.99")

// Money is a non-negative amount in the pressing's currency with at most
// MoneyScale decimals. The zero value is a valid zero amount.
type Money struct {
	amount decimal.Decimal
}

func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is negative", amount))
	}
	if !amount.Equal(amount.Truncate(MoneyScale)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s has more than %d decimal places", amount, MoneyScale))
	}
	if amount.GreaterThan(MaxMoney) {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount, 0, MaxMoney)
	}
	return Money{amount: amount}, nil
}

func ParseMoney(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(amount)
}

func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

func (m Money) Times(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Storable reports whether m fits the stored amount range. Sums and products
// of valid amounts may not.
func (m Money) Storable() bool {
	return !m.amount.GreaterThan(MaxMoney)
}

func (m Money) String() string {
	return m.amount.String()
}
