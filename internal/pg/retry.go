package pg

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

const (
	maxRetries    = 3
	retryInterval = time.Millisecond * 200
)

// ErrStorageUnavailable is returned once a storage operation keeps failing
// after the bounded retries are exhausted.
var ErrStorageUnavailable = errors.New("storage unavailable")

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as a business outcome that must abort the transaction
// without being retried or reported as a storage failure.
func Permanent(err error) error {
	return &permanentError{err: err}
}

// WithRetry runs op, retrying transient storage failures with a growing
// interval. Domain errors must not pass through here: callers wrap only the
// persistence sequence, never validation.
func WithRetry(ctx context.Context, op func(ctx context.Context) error) error {
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = op(ctx)
		if err == nil {
			return nil
		}
		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		if attempt < maxRetries {
			zap.L().Warn("storage operation failed, retrying",
				zap.Int("attempt", attempt), zap.Error(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryInterval * time.Duration(attempt)):
			}
		}
	}
	return errors.Join(ErrStorageUnavailable, err)
}
