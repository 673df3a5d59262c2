package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"PlisioPay/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

const (
	statusOK     = "ok"
	statusFailed = "failed"
)

// Sink is a named publisher.
type Sink struct {
	Name      string
	Publisher Publisher
}

// Fanout publishes every envelope to all sinks concurrently.
// A failing sink does not stop delivery to the others.
type Fanout struct {
	sinks []Sink
}

var _ Publisher = (*Fanout)(nil)

func NewFanout(sinks ...Sink) *Fanout {
	return &Fanout{sinks: sinks}
}

func (f *Fanout) Len() int { return len(f.sinks) }

func (f *Fanout) Publish(ctx context.Context, env Envelope) error {
	if len(f.sinks) == 0 {
		return nil
	}

	errs := make([]error, len(f.sinks))
	var g errgroup.Group
	for i, sink := range f.sinks {
		g.Go(func() error {
			if err := sink.Publisher.Publish(ctx, env); err != nil {
				metrics.StepEventsPublished.WithLabelValues(sink.Name, statusFailed).Inc()
				slog.WarnContext(ctx, "Step event not published",
					slog.String("sink", sink.Name),
					slog.String("event_id", env.EventID),
					slog.String("error", err.Error()))
				errs[i] = fmt.Errorf("%s: %w", sink.Name, err)
				return nil
			}
			metrics.StepEventsPublished.WithLabelValues(sink.Name, statusOK).Inc()
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

func (f *Fanout) Close() error {
	var errs []error
	for _, sink := range f.sinks {
		if err := sink.Publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", sink.Name, err))
		}
	}
	return errors.Join(errs...)
}
