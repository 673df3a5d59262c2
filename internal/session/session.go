package session

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"PlisioPay/internal/domain/payment"
	"PlisioPay/internal/messaging"
	"PlisioPay/pkg/correlation"
	"PlisioPay/pkg/metrics"
)

// Session is one payer's payment sheet.
type Session struct {
	ID        string
	Machine   *payment.Machine
	CreatedAt time.Time

	seen atomic.Int64
	done chan struct{}
}

func newSession(id string, m *payment.Machine, now time.Time) *Session {
	s := &Session{ID: id, Machine: m, CreatedAt: now, done: make(chan struct{})}
	s.touch(now)
	return s
}

func (s *Session) touch(now time.Time) { s.seen.Store(now.UnixNano()) }

func (s *Session) lastSeen() time.Time { return time.Unix(0, s.seen.Load()) }

// close stops the machine and waits for the watcher to drain.
func (s *Session) close() {
	s.Machine.Close()
	<-s.done
}

// watch forwards every distinct step of the machine until the machine is closed.
func (s *Session) watch(ctx context.Context, steps <-chan payment.Step, publisher messaging.Publisher, now func() time.Time) {
	defer close(s.done)

	var last *StepEvent
	for step := range steps {
		ev := newStepEvent(s.ID, step, now())
		if last != nil && last.sameAs(ev) {
			continue
		}
		last = &ev

		metrics.StepTransitions.WithLabelValues(string(ev.Step)).Inc()
		s.publish(ctx, publisher, ev)
	}
}

func (s *Session) publish(ctx context.Context, publisher messaging.Publisher, ev StepEvent) {
	env, err := messaging.NewEnvelope(s.ID, StepChangedEvent, ev)
	if err != nil {
		slog.ErrorContext(ctx, "Step event not encoded", slog.String("error", err.Error()))
		return
	}
	env.CorrelationID = correlation.FromContext(ctx)

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := publisher.Publish(pubCtx, env); err != nil {
		slog.WarnContext(ctx, "Step event publish failed",
			slog.String("step", string(ev.Step)),
			slog.String("error", err.Error()))
	}
}
