package invoice

import (
	"encoding/json"
	"time"
)

// Completion describes how a finished invoice ended.
type Completion string

const (
	CompletionCompleted          Completion = "completed"
	CompletionPartiallyCompleted Completion = "partially_completed"
	CompletionOverpaid           Completion = "overpaid"
	CompletionExpired            Completion = "expired"
	CompletionError              Completion = "error"
)

// Timestamp is a UTC instant sent by the API as epoch seconds.
type Timestamp int64

func (t Timestamp) Time() time.Time { return time.Unix(int64(t), 0).UTC() }

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var n lenientInt
	if err := n.UnmarshalJSON(b); err != nil {
		return err
	}
	*t = Timestamp(n)
	return nil
}

// Invoice is a snapshot of a Plisio white-label invoice.
// UnpaidAmount is maintained by the server and never recomputed here.
type Invoice struct {
	ID                    ID           `json:"id"`
	ViewKey               ViewKey      `json:"view_key,omitempty"`
	URL                   string       `json:"invoice_url"`
	Status                Status       `json:"status"`
	StatusCode            StatusCode   `json:"status_code"`
	Amount                Amount       `json:"amount"`
	PendingAmount         Amount       `json:"pending_amount"`
	ReceivedAmount        Amount       `json:"received_amount"`
	UnpaidAmount          Amount       `json:"remaining_amount"`
	WalletHash            string       `json:"wallet_hash"`
	Currency              CurrencyID   `json:"psys_cid"`
	CurrencyCode          CurrencyCode `json:"currency"`
	ExpectedConfirmations int          `json:"expected_confirmations"`
	Commission            Amount       `json:"invoice_commission"`
	Sum                   Amount       `json:"invoice_sum"`
	TotalSum              Amount       `json:"invoice_total_sum"`
	CreatedAt             *Timestamp   `json:"created_utc,omitempty"`
	ExpiresAt             *Timestamp   `json:"expire_utc,omitempty"`
	UserEmailSet          bool         `json:"email_already_set"`
	QRURL                 string       `json:"qr_url,omitempty"`
}

func (i *Invoice) UnmarshalJSON(b []byte) error {
	type plain Invoice
	aux := struct {
		*plain
		ExpectedConfirmations lenientInt  `json:"expected_confirmations"`
		UserEmailSet          lenientBool `json:"email_already_set"`
	}{plain: (*plain)(i)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	i.ExpectedConfirmations = int(aux.ExpectedConfirmations)
	i.UserEmailSet = bool(aux.UserEmailSet)
	if i.Status == "" {
		i.Status = StatusUndefined
	}
	return nil
}

func (i Invoice) Completion() Completion {
	switch i.Status.Normalize() {
	case StatusExpired:
		if i.ReceivedAmount.GreaterThan(UnpaidThreshold) && i.ReceivedAmount.LessThan(i.Amount) {
			return CompletionPartiallyCompleted
		}
		return CompletionExpired
	case StatusMismatch:
		return CompletionOverpaid
	case StatusError, StatusCancelled:
		return CompletionError
	default:
		return CompletionCompleted
	}
}

// IsConfirming reports that the full amount has arrived and is waiting for
// blockchain confirmations.
func (i Invoice) IsConfirming() bool {
	status := i.Status.Normalize()
	partial := status == StatusPending && i.StatusCode == StatusCodePartialPayment
	return (partial || status == StatusPendingInternal) && i.UnpaidAmount.LessThan(UnpaidThreshold)
}

func (i Invoice) IsReplacedWithNewInvoice() bool {
	return i.Status.Normalize() == StatusCancelledDuplicate || i.StatusCode == StatusCodeReplacedWithNewInvoice
}

// ExpiresIn returns the time left until expiration, zero when unknown or past.
func (i Invoice) ExpiresIn(now time.Time) time.Duration {
	if i.ExpiresAt == nil {
		return 0
	}
	left := i.ExpiresAt.Time().Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// QRPayload is the text encoded in the payment QR code.
func (i Invoice) QRPayload() string {
	if i.QRURL != "" {
		return i.QRURL
	}
	return i.WalletHash
}
