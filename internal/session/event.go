package session

import (
	"time"

	"PlisioPay/internal/domain/invoice"
	"PlisioPay/internal/domain/payment"
)

// StepChangedEvent is the envelope type of every published step.
const StepChangedEvent = "payment.step.changed"

// StepEvent is the sink payload describing one published step.
type StepEvent struct {
	SessionID    string             `json:"session_id"`
	Step         payment.Kind       `json:"step"`
	InvoiceID    invoice.ID         `json:"invoice_id,omitempty"`
	Status       invoice.Status     `json:"status,omitempty"`
	StatusCode   invoice.StatusCode `json:"status_code,omitempty"`
	Currency     invoice.CurrencyID `json:"currency,omitempty"`
	UnpaidAmount string             `json:"unpaid_amount,omitempty"`
	Loading      bool               `json:"loading,omitempty"`
	Error        string             `json:"error,omitempty"`
	At           time.Time          `json:"at"`
}

func newStepEvent(sessionID string, step payment.Step, at time.Time) StepEvent {
	ev := StepEvent{
		SessionID: sessionID,
		Step:      step.Kind(),
		At:        at.UTC(),
	}

	var d *invoice.Details
	switch s := step.(type) {
	case payment.Initial:
		ev.Loading = s.Loading
	case payment.Error:
		ev.Error = s.Message()
		d = s.Details
	default:
		if details, ok := payment.DetailsOf(step); ok {
			d = &details
		}
		_, ev.Loading = step.(payment.Loading)
	}

	if d != nil {
		ev.InvoiceID = d.Invoice.ID
		ev.Status = d.Invoice.Status
		ev.StatusCode = d.Invoice.StatusCode
		ev.Currency = d.Invoice.Currency
		ev.UnpaidAmount = d.Invoice.UnpaidAmount.String()
	}
	return ev
}

// sameAs reports whether two events describe the same sheet, ignoring time.
func (e StepEvent) sameAs(o StepEvent) bool {
	e.At, o.At = time.Time{}, time.Time{}
	return e == o
}
