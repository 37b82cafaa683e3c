// Package async runs fire-and-forget side effects that must never fail the request that triggered them.
package async

import (
	"context"
	"log/slog"
	"time"
)

// DefaultTimeout bounds a detached operation when the caller does not choose one.
const DefaultTimeout = 10 * time.Second

// Go runs fn in its own goroutine, detached from the cancellation of ctx but bounded by timeout.
// Failures and panics are logged under op and otherwise dropped.
func Go(ctx context.Context, op string, timeout time.Duration, fn func(ctx context.Context) error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	detached := context.WithoutCancel(ctx)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("background operation panicked", "op", op, "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(detached, timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			slog.Warn("background operation failed", "op", op, "error", err)
		}
	}()
}
