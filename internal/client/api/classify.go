package api

import (
	"context"
	"errors"
)

// isCancelled reports whether the failure reflects a deliberate abort by the
// caller rather than a transport problem.
func isCancelled(ctx context.Context, err error) bool {
	if errors.Is(err, context.Canceled) {
		return true
	}
	// The transport may wrap the context error beyond errors.Is reach.
	return ctx.Err() == context.Canceled
}

// isTimeout reports whether the failure is a transport or deadline timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var timeoutErr interface{ Timeout() bool }
	return errors.As(err, &timeoutErr) && timeoutErr.Timeout()
}
