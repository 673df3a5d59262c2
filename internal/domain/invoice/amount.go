package invoice

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxDisplayPrecision caps the number of fractional digits shown for any currency.
const MaxDisplayPrecision = 8

// UnpaidThreshold is the smallest amount treated as "something was paid".
var UnpaidThreshold = Amount{d: decimal.New(1, -9)}

// Amount is a decimal quantity in the invoice currency.
type Amount struct {
	d decimal.Decimal
}

var Zero = Amount{}

func NewAmount(raw string) (Amount, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Amount{}, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	return Amount{d: d}, nil
}

// MustAmount is NewAmount for constants and tests.
func MustAmount(raw string) Amount {
	a, err := NewAmount(raw)
	if err != nil {
		panic(err)
	}
	return a
}

func AmountFromDecimal(d decimal.Decimal) Amount { return Amount{d: d} }

func (a Amount) Decimal() decimal.Decimal { return a.d }

func (a Amount) Cmp(b Amount) int { return a.d.Cmp(b.d) }

func (a Amount) LessThan(b Amount) bool { return a.d.LessThan(b.d) }

func (a Amount) GreaterThan(b Amount) bool { return a.d.GreaterThan(b.d) }

func (a Amount) Equal(b Amount) bool { return a.d.Equal(b.d) }

func (a Amount) IsZero() bool { return a.d.IsZero() }

func (a Amount) String() string { return a.d.String() }

// Fixed renders the amount with exactly places fractional digits, rounding half to even
// and without digit grouping.
func (a Amount) Fixed(places int) string {
	if places < 0 {
		places = 0
	}
	return a.d.StringFixedBank(int32(places))
}

// UnmarshalJSON accepts numbers, quoted numbers, empty strings and null.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) || bytes.Equal(b, []byte(`""`)) {
		*a = Amount{}
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("decode amount: %w", err)
	}
	a.d = d
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return a.d.MarshalJSON()
}
