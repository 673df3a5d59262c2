package invoice

import (
	"strings"
	"time"
)

// NewRequest describes an invoice to be created with the shop API key.
type NewRequest struct {
	APIKey            string       `json:"-"`
	Currency          CurrencyID   `json:"currency,omitempty"`
	SourceCurrency    string       `json:"source_currency" binding:"required"`
	SourceAmount      string       `json:"source_amount" binding:"required"`
	AllowedCurrencies []CurrencyID `json:"allowed_psys_cids,omitempty"`
	OrderName         string       `json:"order_name" binding:"required"`
	OrderNumber       string       `json:"order_number" binding:"required"`
	ExpireMin         int          `json:"expire_min,omitempty" binding:"omitempty,min=1"`
}

// MemoKey identifies the request for the remembered-invoice store.
func (r NewRequest) MemoKey() string {
	return strings.TrimSpace(r.OrderNumber)
}

// AllowedCurrenciesParam is the comma separated list expected by the API.
func (r NewRequest) AllowedCurrenciesParam() string {
	ids := make([]string, 0, len(r.AllowedCurrencies))
	for _, id := range r.AllowedCurrencies {
		if t := id.Trimmed(); t != "" {
			ids = append(ids, t.String())
		}
	}
	return strings.Join(ids, ",")
}

// Created is the part of a freshly created invoice needed to start a payment session.
type Created struct {
	ID      ID
	ViewKey ViewKey
	URL     string
}

// Remembered is a previously created invoice that can be reused until it expires.
type Remembered struct {
	Key       string    `json:"key"`
	ID        ID        `json:"invoice_id"`
	ViewKey   ViewKey   `json:"view_key"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (r Remembered) IsValidAt(now time.Time) bool {
	return !r.ID.IsBlank() && !r.ViewKey.IsBlank() && !now.After(r.ExpiresAt)
}
