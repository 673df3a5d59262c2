package app

import (
	"context"
	"log/slog"
	"time"
)

const memoPurgeInterval = 10 * time.Minute

type purger interface {
	Purge(ctx context.Context) (int64, error)
}

// runPurger deletes expired remembered invoices until ctx is done.
func runPurger(ctx context.Context, p purger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.Purge(ctx)
			if err != nil {
				slog.WarnContext(ctx, "Purge remembered invoices failed", "error", err)
				continue
			}
			if n > 0 {
				slog.DebugContext(ctx, "Expired remembered invoices purged", "count", n)
			}
		}
	}
}
