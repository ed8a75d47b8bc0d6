// internal/domain/money.go
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal" // For precise monetary calculations

	"wallet-ledger/internal/util"
)

// MoneyScale is the number of fractional digits every amount carries.
const MoneyScale = 2

// maxMoney is the exclusive magnitude bound: at most 10 integer digits.
var maxMoney = decimal.New(1, 10)

// Money is a fixed-point decimal amount with exactly two fractional digits.
// The zero value is 0.00.
type Money struct {
	amount decimal.Decimal
}

// NewMoney validates d against the scale and magnitude limits.
// Trailing zeros beyond two places are accepted ("1.500" is 1.50).
func NewMoney(d decimal.Decimal) (Money, error) {
	rounded := d.Round(MoneyScale)
	if !rounded.Equal(d) {
		return Money{}, fmt.Errorf("%w: more than %d decimal places", util.ErrInvalidAmount, MoneyScale)
	}
	if rounded.Abs().GreaterThanOrEqual(maxMoney) {
		return Money{}, fmt.Errorf("%w: exceeds %s", util.ErrInvalidAmount, maxMoney.String())
	}
	return Money{amount: rounded}, nil
}

// ParseMoney parses a decimal string such as "100.50".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q is not a number", util.ErrInvalidAmount, s)
	}
	return NewMoney(d)
}

// ParseAmount parses a transactional amount, which must be strictly positive.
func ParseAmount(s string) (Money, error) {
	m, err := ParseMoney(s)
	if err != nil {
		return Money{}, err
	}
	if !m.IsPositive() {
		return Money{}, fmt.Errorf("%w: must be greater than zero", util.ErrInvalidAmount)
	}
	return m, nil
}

// MustMoney is ParseMoney that panics. Intended for constants and tests.
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal { return m.amount }

// Add returns m + other, failing if the result leaves the supported range.
func (m Money) Add(other Money) (Money, error) {
	return NewMoney(m.amount.Add(other.amount))
}

// Sub returns m - other, failing if the result leaves the supported range.
func (m Money) Sub(other Money) (Money, error) {
	return NewMoney(m.amount.Sub(other.amount))
}

func (m Money) Cmp(other Money) int { return m.amount.Cmp(other.amount) }
func (m Money) Equal(other Money) bool { return m.amount.Equal(other.amount) }
func (m Money) LessThan(other Money) bool { return m.amount.LessThan(other.amount) }
func (m Money) GreaterThan(other Money) bool { return m.amount.GreaterThan(other.amount) }
func (m Money) IsPositive() bool { return m.amount.IsPositive() }
func (m Money) IsNegative() bool { return m.amount.IsNegative() }
func (m Money) IsZero() bool { return m.amount.IsZero() }
func (m Money) String() string { return m.amount.StringFixed(MoneyScale) }
func (m Money) Value() (driver.Value, error) { return m.String(), nil }
func (m Money) MarshalJSON() ([]byte, error) { return json.Marshal(m.String()) }

// UnmarshalJSON accepts both a JSON number (100.5) and a numeric string ("100.50").
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == "" {
		return fmt.Errorf("%w: amount is required", util.ErrInvalidAmount)
	}
	raw = strings.Trim(raw, `"`)
	parsed, err := ParseMoney(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Scan implements sql.Scanner for NUMERIC columns.
func (m *Money) Scan(src interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(src); err != nil {
		return fmt.Errorf("scan money: %w", err)
	}
	parsed, err := NewMoney(d)
	if err != nil {
		return fmt.Errorf("scan money: %w", err)
	}
	*m = parsed
	return nil
}
