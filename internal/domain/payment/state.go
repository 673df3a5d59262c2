package payment

import "PlisioPay/internal/domain/invoice"

// Target is the invoice a session is looking at.
type Target struct {
	ID      invoice.ID
	ViewKey invoice.ViewKey
}

func (t Target) Trimmed() Target {
	return Target{ID: t.ID.Trimmed(), ViewKey: t.ViewKey.Trimmed()}
}

func (t Target) IsBlank() bool {
	return t.ID.IsBlank() || t.ViewKey.IsBlank()
}

// State is the session snapshot a step is projected from.
// It is copied and replaced as a whole on every transition.
type State struct {
	// Original is the pair passed to LoadInvoice.
	Original *Target
	// Current is the pair being polled. It diverges from Original after a
	// currency switch, an e-mail update or a redirect to a replacement invoice.
	Current *Target

	Details *invoice.Details

	IsLoading        bool
	CurrencySelected bool
	EmailError       string
	Err              error
}

func (s State) withInterim(t Target) State {
	s.Current = &t
	s.IsLoading = s.Details == nil
	s.Err = nil
	return s
}

func (s State) withFetched(d invoice.Details) State {
	s.Details = &d
	s.CurrencySelected = s.CurrencySelected || !d.CanChangeCurrency()
	s.IsLoading = false
	s.Err = nil
	return s
}

func (s State) withFailure(err error) State {
	s.IsLoading = false
	s.Err = err
	return s
}

func ptr[T any](v T) *T { return &v }
