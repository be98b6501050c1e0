package types

import (
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
)

// Amount is a fixed-point currency value held as an integer count of minor
// units (paise/cents). It marshals to a decimal string on the wire so amounts
// never travel as floating point.
type Amount struct {
	d decimal.Decimal
}

var (
	ErrAmountNotInteger = errors.New("amount must be an integer number of minor units")
	ErrAmountNegative   = errors.New("amount must not be negative")
)

func NewAmount(minorUnits int64) Amount {
	return Amount{d: decimal.NewFromInt(minorUnits)}
}

// ParseAmount parses a decimal string of minor units ("1000000").
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	if !d.IsInteger() {
		return Amount{}, ErrAmountNotInteger
	}
	if d.IsNegative() {
		return Amount{}, ErrAmountNegative
	}
	return Amount{d: d}, nil
}

func (a Amount) Add(b Amount) Amount { return Amount{d: a.d.Add(b.d)} }

func (a Amount) Sub(b Amount) Amount { return Amount{d: a.d.Sub(b.d)} }

// Cmp returns -1, 0 or 1 comparing a to b.
func (a Amount) Cmp(b Amount) int { return a.d.Cmp(b.d) }

func (a Amount) IsZero() bool { return a.d.IsZero() }

// String renders the amount as a minor-unit integer string.
func (a Amount) String() string { return a.d.String() }

// Major renders the amount in major currency units with two decimal places
// ("1000000" minor units -> "10000.00").
func (a Amount) Major() string { return a.d.Shift(-2).StringFixed(2) }

// PercentOf returns a/total*100 rendered to two decimal places, or "0.00"
// when total is zero.
func (a Amount) PercentOf(total Amount) string {
	if total.d.IsZero() {
		return "0.00"
	}
	return a.d.Mul(decimal.NewFromInt(100)).Div(total.d).StringFixed(2)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.d.String())
}

// UnmarshalJSON accepts either a decimal string or a bare JSON number, both
// restricted to non-negative integers.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// bare number
		s = string(data)
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
