package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/srgjo27/reservation_engine/internal/core/domain"
)

const (
	defaultStorageTimeout = 2 * time.Second
	defaultRetryDelay     = 150 * time.Millisecond
)

// StoragePolicy bounds every storage call and retries a timed out call once.
type StoragePolicy struct {
	Timeout    time.Duration
	RetryDelay time.Duration
}

func (p StoragePolicy) withDefaults() StoragePolicy {
	if p.Timeout <= 0 {
		p.Timeout = defaultStorageTimeout
	}
	if p.RetryDelay <= 0 {
		p.RetryDelay = defaultRetryDelay
	}
	return p
}

func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, domain.ErrTimeout)
}

func call[T any](ctx context.Context, p StoragePolicy, op func(ctx context.Context) (T, error)) (T, error) {
	p = p.withDefaults()
	res, err := backoff.Retry(ctx, func() (T, error) {
		opCtx, cancel := context.WithTimeout(ctx, p.Timeout)
		defer cancel()

		v, err := op(opCtx)
		if err == nil {
			return v, nil
		}
		if isTimeout(err) {
			return v, fmt.Errorf("%w: %v", domain.ErrTimeout, err)
		}
		return v, backoff.Permanent(err)
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(p.RetryDelay)),
		backoff.WithMaxTries(2),
	)
	if err != nil && isTimeout(err) && !errors.Is(err, domain.ErrTimeout) {
		err = fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	return res, err
}

func exec(ctx context.Context, p StoragePolicy, op func(ctx context.Context) error) error {
	_, err := call(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}
