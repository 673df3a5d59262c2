package invoice

import (
	"encoding/json"
	"strings"
)

const DefaultPrecision = 8

// CryptoCurrency is a payment system the invoice can be settled in.
type CryptoCurrency struct {
	ID               CurrencyID   `json:"cid"`
	Name             string       `json:"name"`
	Code             CurrencyCode `json:"currency"`
	IconURL          string       `json:"icon,omitempty"`
	Precision        int          `json:"precision"`
	OutputPrecision  int          `json:"output_precision"`
	Maintenance      bool         `json:"maintenance"`
	Amount           *Amount      `json:"amount,omitempty"`
	MinAmount        *Amount      `json:"min_sum_in,omitempty"`
	ContractStandard string       `json:"contractStandard,omitempty"`
}

// UnmarshalJSON applies the API defaults: precision 8, output precision equal to precision.
func (c *CryptoCurrency) UnmarshalJSON(b []byte) error {
	type plain CryptoCurrency
	aux := struct {
		*plain
		Precision       *lenientInt `json:"precision"`
		OutputPrecision *lenientInt `json:"output_precision"`
		Maintenance     lenientBool `json:"maintenance"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	c.Precision = DefaultPrecision
	if aux.Precision != nil {
		c.Precision = int(*aux.Precision)
	}
	c.OutputPrecision = c.Precision
	if aux.OutputPrecision != nil {
		c.OutputPrecision = int(*aux.OutputPrecision)
	}
	c.Maintenance = bool(aux.Maintenance)
	return nil
}

// DisplayPrecision is the number of fractional digits used when formatting amounts.
func (c CryptoCurrency) DisplayPrecision() int {
	return min(c.OutputPrecision, MaxDisplayPrecision)
}

// IsAmountValid reports whether the quoted amount satisfies the minimum payable amount.
func (c CryptoCurrency) IsAmountValid() bool {
	return c.MinAmount == nil || c.Amount == nil || !c.Amount.LessThan(*c.MinAmount)
}

func (c CryptoCurrency) IsEnabled() bool {
	return c.IsAmountValid() && !c.Maintenance
}

// FormatAmount renders a fixed-point amount, optionally followed by the currency code.
func (c CryptoCurrency) FormatAmount(a Amount, withCode bool) string {
	var b strings.Builder
	b.WriteString(a.Fixed(c.DisplayPrecision()))
	if withCode {
		b.WriteByte(' ')
		b.WriteString(c.Code.String())
	}
	return b.String()
}

// FormattedAmount is the quoted invoice total in this currency, zero when not quoted.
func (c CryptoCurrency) FormattedAmount() string {
	a := Zero
	if c.Amount != nil {
		a = *c.Amount
	}
	return c.FormatAmount(a, true)
}
