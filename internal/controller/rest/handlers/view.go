package handlers

import (
	"time"

	"PlisioPay/internal/domain/invoice"
	"PlisioPay/internal/domain/payment"
)

// Action names listed in StepView.Actions.
const (
	ActionSubmitEmail    = "submit_email"
	ActionSelectCurrency = "select_currency"
	ActionChangeCurrency = "change_currency"
)

type StepView struct {
	SessionID         string         `json:"session_id"`
	Kind              payment.Kind   `json:"kind"`
	Loading           bool           `json:"loading,omitempty"`
	Invoice           *InvoiceView   `json:"invoice,omitempty"`
	Shop              *invoice.Shop  `json:"shop,omitempty"`
	Currencies        []CurrencyView `json:"currencies,omitempty"`
	CanChangeCurrency bool           `json:"can_change_currency,omitempty"`
	EmailError        string         `json:"email_error,omitempty"`
	Error             *ErrorView     `json:"error,omitempty"`
	Actions           []string       `json:"actions"`
}

type InvoiceView struct {
	ID                    invoice.ID         `json:"id"`
	URL                   string             `json:"url,omitempty"`
	Status                invoice.Status     `json:"status"`
	StatusCode            invoice.StatusCode `json:"status_code"`
	Currency              CurrencyView       `json:"currency"`
	FullAmount            string             `json:"full_amount"`
	PendingAmount         string             `json:"pending_amount"`
	ReceivedAmount        string             `json:"received_amount"`
	UnpaidAmount          string             `json:"unpaid_amount"`
	UnpaidAmountPlain     string             `json:"unpaid_amount_plain"`
	WalletHash            string             `json:"wallet_hash,omitempty"`
	QRPayload             string             `json:"qr_payload,omitempty"`
	ExpectedConfirmations int                `json:"expected_confirmations"`
	Confirming            bool               `json:"confirming"`
	Indicator             invoice.Indicator  `json:"indicator"`
	Completion            invoice.Completion `json:"completion,omitempty"`
	ExpiresAt             *time.Time         `json:"expires_at,omitempty"`
	ExpiresInSeconds      int64              `json:"expires_in_seconds,omitempty"`
}

type CurrencyView struct {
	ID               invoice.CurrencyID   `json:"id"`
	Code             invoice.CurrencyCode `json:"code"`
	Name             string               `json:"name"`
	IconURL          string               `json:"icon_url,omitempty"`
	ContractStandard string               `json:"contract_standard,omitempty"`
	Enabled          bool                 `json:"enabled"`
	FormattedAmount  string               `json:"formatted_amount,omitempty"`
}

type ErrorView struct {
	Message  string `json:"message"`
	NotFound bool   `json:"not_found,omitempty"`
	// Diagnostics is the raw response of an undecodable reply, verbose mode only.
	Diagnostics string `json:"diagnostics,omitempty"`
}

func newCurrencyView(c invoice.CryptoCurrency) CurrencyView {
	return CurrencyView{
		ID:               c.ID,
		Code:             c.Code,
		Name:             c.Name,
		IconURL:          c.IconURL,
		ContractStandard: c.ContractStandard,
		Enabled:          c.IsEnabled(),
		FormattedAmount:  c.FormattedAmount(),
	}
}

func newInvoiceView(v payment.View, now time.Time) *InvoiceView {
	inv := v.Invoice()
	iv := &InvoiceView{
		ID:                    inv.ID,
		URL:                   inv.URL,
		Status:                inv.Status,
		StatusCode:            inv.StatusCode,
		Currency:              newCurrencyView(v.Currency()),
		FullAmount:            v.FormattedFullAmount(),
		PendingAmount:         v.FormattedPendingAmount(),
		ReceivedAmount:        v.FormattedReceivedAmount(),
		UnpaidAmount:          v.FormattedUnpaidAmount(),
		UnpaidAmountPlain:     v.FormattedUnpaidAmountPlain(),
		WalletHash:            inv.WalletHash,
		QRPayload:             inv.QRPayload(),
		ExpectedConfirmations: inv.ExpectedConfirmations,
		Confirming:            inv.IsConfirming(),
		Indicator:             v.Indicator(),
		ExpiresInSeconds:      int64(inv.ExpiresIn(now) / time.Second),
	}
	if inv.ExpiresAt != nil {
		t := inv.ExpiresAt.Time()
		iv.ExpiresAt = &t
	}
	if inv.Status.IsFinished() {
		iv.Completion = v.Completion()
	}
	return iv
}

func withView(sv StepView, v payment.View, now time.Time) StepView {
	sv.Invoice = newInvoiceView(v, now)
	shop := v.Shop()
	sv.Shop = &shop
	return sv
}

// NewStepView renders a step for the REST host.
func NewStepView(sessionID string, step payment.Step, now time.Time) StepView {
	sv := StepView{SessionID: sessionID, Kind: step.Kind(), Actions: []string{}}

	switch s := step.(type) {
	case payment.Initial:
		sv.Loading = s.Loading
	case payment.Error:
		sv.Error = &ErrorView{
			Message:     s.Message(),
			NotFound:    invoice.IsNotFound(s.Err),
			Diagnostics: s.Diagnostics(),
		}
		if s.Details != nil {
			sv = withView(sv, payment.View{Details: *s.Details}, now)
		}
	case payment.Loading:
		sv = withView(sv, s.View, now)
		sv.Loading = true
	case payment.UserEmail:
		sv = withView(sv, s.View, now)
		sv.EmailError = s.EmailError
		sv.Actions = append(sv.Actions, ActionSubmitEmail)
	case payment.Currency:
		sv = withView(sv, s.View, now)
		sv.Currencies = make([]CurrencyView, 0, len(s.Currencies))
		for _, c := range s.Currencies {
			sv.Currencies = append(sv.Currencies, newCurrencyView(c))
		}
		sv.Actions = append(sv.Actions, ActionSelectCurrency)
	case payment.Payment:
		sv = withView(sv, s.View, now)
		sv.CanChangeCurrency = s.CanChangeCurrency
		if s.CanChangeCurrency {
			sv.Actions = append(sv.Actions, ActionChangeCurrency)
		}
	case payment.Confirmation:
		sv = withView(sv, s.View, now)
	case payment.Completion:
		sv = withView(sv, s.View, now)
	default:
		panic("handlers: unknown step " + string(step.Kind()))
	}
	return sv
}
