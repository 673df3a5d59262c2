package payment

import (
	"context"
	"errors"

	"PlisioPay/internal/domain/invoice"
)

type Kind string

const (
	KindInitial      Kind = "initial"
	KindError        Kind = "error"
	KindLoading      Kind = "loading"
	KindUserEmail    Kind = "user_email"
	KindCurrency     Kind = "currency"
	KindPayment      Kind = "payment"
	KindConfirmation Kind = "confirmation"
	KindCompletion   Kind = "completion"
)

// Step is what the payment sheet shows. The set of variants is closed:
// Initial, Error, Loading, UserEmail, Currency, Payment, Confirmation, Completion.
type Step interface {
	Kind() Kind
	isStep()
}

// Default is the step of a session with no invoice.
var Default Step = Initial{}

// Initial is shown before any invoice details are known.
type Initial struct {
	Loading bool
}

// Error is shown when the invoice could not be loaded or updated.
type Error struct {
	Err error
	// Details holds the last known invoice, if any.
	Details     *invoice.Details
	ShowDetails bool
}

// Diagnostics returns the raw response of an undecodable reply when verbose
// error display is on.
func (e Error) Diagnostics() string {
	var textErr *invoice.ResponseTextError
	if !e.ShowDetails || !errors.As(e.Err, &textErr) {
		return ""
	}
	return textErr.ResponseText
}

func (e Error) Message() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// View exposes an invoice snapshot for rendering.
type View struct {
	Details invoice.Details
}

func (v View) Invoice() invoice.Invoice         { return v.Details.Invoice }
func (v View) Currency() invoice.CryptoCurrency { return v.Details.Currency }
func (v View) Shop() invoice.Shop               { return v.Details.Shop }

func (v View) FormattedFullAmount() string {
	return v.Details.Currency.FormatAmount(v.Details.Invoice.Amount, true)
}

func (v View) FormattedPendingAmount() string {
	return v.Details.Currency.FormatAmount(v.Details.Invoice.PendingAmount, true)
}

func (v View) FormattedReceivedAmount() string {
	return v.Details.Currency.FormatAmount(v.Details.Invoice.ReceivedAmount, true)
}

func (v View) FormattedUnpaidAmount() string {
	return v.Details.Currency.FormatAmount(v.Details.Invoice.UnpaidAmount, true)
}

// FormattedUnpaidAmountPlain is the unpaid amount without the currency code, as copied to a wallet.
func (v View) FormattedUnpaidAmountPlain() string {
	return v.Details.Currency.FormatAmount(v.Details.Invoice.UnpaidAmount, false)
}

func (v View) Completion() invoice.Completion { return v.Details.Invoice.Completion() }

func (v View) Indicator() invoice.Indicator { return v.Details.Invoice.Status.Indicator() }

// Loading is shown while the invoice is refreshing or settling.
type Loading struct {
	View
}

// UserEmail asks for the payer's e-mail.
type UserEmail struct {
	View
	// EmailError is the message of the last failed submission.
	EmailError string

	submit func(ctx context.Context, email string)
}

func (s UserEmail) SubmitEmail(ctx context.Context, email string) {
	if s.submit != nil {
		s.submit(ctx, email)
	}
}

// Currency lets the payer pick one of several currencies.
type Currency struct {
	View
	Currencies []invoice.CryptoCurrency

	selectFn func(ctx context.Context, id invoice.CurrencyID)
}

func (s Currency) Select(ctx context.Context, id invoice.CurrencyID) {
	if s.selectFn != nil {
		s.selectFn(ctx, id)
	}
}

// Payment shows the wallet address and amount.
type Payment struct {
	View
	CanChangeCurrency bool

	change func()
}

// ChangeCurrency returns to the Currency step when CanChangeCurrency is set.
func (s Payment) ChangeCurrency() {
	if s.change != nil {
		s.change()
	}
}

// Confirmation is shown while the received funds wait for confirmations.
type Confirmation struct {
	View
}

// Completion is the terminal step.
type Completion struct {
	View
}

func (Initial) Kind() Kind      { return KindInitial }
func (Error) Kind() Kind        { return KindError }
func (Loading) Kind() Kind      { return KindLoading }
func (UserEmail) Kind() Kind    { return KindUserEmail }
func (Currency) Kind() Kind     { return KindCurrency }
func (Payment) Kind() Kind      { return KindPayment }
func (Confirmation) Kind() Kind { return KindConfirmation }
func (Completion) Kind() Kind   { return KindCompletion }

func (Initial) isStep()      {}
func (Error) isStep()        {}
func (Loading) isStep()      {}
func (UserEmail) isStep()    {}
func (Currency) isStep()     {}
func (Payment) isStep()      {}
func (Confirmation) isStep() {}
func (Completion) isStep()   {}

// DetailsOf returns the invoice snapshot carried by a step.
func DetailsOf(s Step) (invoice.Details, bool) {
	switch v := s.(type) {
	case Initial:
		return invoice.Details{}, false
	case Error:
		if v.Details == nil {
			return invoice.Details{}, false
		}
		return *v.Details, true
	case Loading:
		return v.Details, true
	case UserEmail:
		return v.Details, true
	case Currency:
		return v.Details, true
	case Payment:
		return v.Details, true
	case Confirmation:
		return v.Details, true
	case Completion:
		return v.Details, true
	default:
		panic("payment: unknown step " + string(s.Kind()))
	}
}
