package service

import (
	"context"
	"time"

	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

// LatencyConfig holds the simulated round-trip delays of the mock backend.
type LatencyConfig struct {
	Login time.Duration
	Save  time.Duration
}

// wait sleeps for d unless ctx ends first. Callers apply their mutation only after a nil return.
func wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return cancelled(err)
	}
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return cancelled(ctx.Err())
	case <-timer.C:
		return nil
	}
}

func cancelled(err error) error {
	return appErrors.Wrap(err, "REQUEST_CANCELLED", appErrors.ErrInternal.Status, "request cancelled")
}
