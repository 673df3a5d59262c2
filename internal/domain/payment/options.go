package payment

import (
	"context"
	"log/slog"
	"time"
)

// DefaultPollInterval is the pause between two fetches of an invoice in progress.
const DefaultPollInterval = 10 * time.Second

// Gauge tracks running poll loops.
type Gauge interface {
	Inc()
	Dec()
}

type nopGauge struct{}

func (nopGauge) Inc() {}
func (nopGauge) Dec() {}

type Option func(*Machine)

// WithShowErrorDetails turns on verbose error display: not-found errors on the
// first load surface as an Error step and raw response text is exposed.
func WithShowErrorDetails(show bool) Option {
	return func(m *Machine) { m.showErrorDetails = show }
}

func WithPollInterval(d time.Duration) Option {
	return func(m *Machine) {
		if d > 0 {
			m.interval = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithContext sets the parent of every poll loop. Its values are visible to the
// InvoiceAPI; cancelling it stops polling.
func WithContext(ctx context.Context) Option {
	return func(m *Machine) { m.baseCtx = ctx }
}

// WithObserver registers a callback invoked synchronously on every published step.
// It runs under the machine lock and must not call back into the machine.
func WithObserver(fn func(Step)) Option {
	return func(m *Machine) { m.observer = fn }
}

func WithInvoiceCreator(c InvoiceCreator) Option {
	return func(m *Machine) { m.creator = c }
}

func WithInvoiceMemo(memo InvoiceMemo) Option {
	return func(m *Machine) { m.memo = memo }
}

func WithPollGauge(g Gauge) Option {
	return func(m *Machine) {
		if g != nil {
			m.gauge = g
		}
	}
}

func withClock(now func() time.Time, after func(time.Duration) <-chan time.Time) Option {
	return func(m *Machine) {
		if now != nil {
			m.now = now
		}
		if after != nil {
			m.after = after
		}
	}
}
