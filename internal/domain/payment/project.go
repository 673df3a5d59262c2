package payment

import (
	"context"

	"PlisioPay/internal/domain/invoice"
)

// Commands are the actions embedded into the steps that offer them.
type Commands struct {
	SubmitEmail    func(ctx context.Context, email string)
	SelectCurrency func(ctx context.Context, id invoice.CurrencyID)
	ChangeCurrency func()
}

// Project derives the step shown for a session state. The first matching rule wins.
func Project(s State, showErrorDetails bool, cmds Commands) Step {
	d := s.Details
	switch {
	case d == nil && invoice.IsNotFound(s.Err) && !showErrorDetails:
		return Initial{Loading: false}
	case s.Err != nil:
		return Error{Err: s.Err, Details: d, ShowDetails: showErrorDetails}
	case d == nil:
		return Initial{Loading: s.IsLoading}
	}

	view := View{Details: *d}
	inv := d.Invoice
	status := inv.Status.Normalize()

	switch {
	case s.IsLoading || status == invoice.StatusUndefined || status == invoice.StatusCancelledDuplicate:
		return Loading{View: view}
	case status.IsFinished():
		return Completion{View: view}
	case inv.IsConfirming():
		return Confirmation{View: view}
	case !inv.UserEmailSet:
		return UserEmail{View: view, EmailError: s.EmailError, submit: cmds.SubmitEmail}
	case !s.CurrencySelected && len(d.AvailableCurrencies) > 1:
		return Currency{View: view, Currencies: d.AvailableCurrencies, selectFn: cmds.SelectCurrency}
	default:
		return Payment{View: view, CanChangeCurrency: d.CanChangeCurrency(), change: cmds.ChangeCurrency}
	}
}
