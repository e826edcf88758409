package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"sentilytics/pkg/logger"
)

type Config struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

func DefaultConfig() Config {
	return Config{
		MaxRetries:      2,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      1.5,
	}
}

// Permanent marks err as not worth retrying. Do returns the wrapped error
// unchanged so callers can still match it with errors.Is.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return backoff.Permanent(err)
}

// Do runs operation until it succeeds, returns a permanent error, the retry
// budget is spent or ctx is done.
func Do(ctx context.Context, log logger.Logger, operationName string, operation func() error, cfg Config) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.InitialInterval
	bo.MaxInterval = cfg.MaxInterval
	if cfg.Multiplier > 0 {
		bo.Multiplier = cfg.Multiplier
	}
	bo.MaxElapsedTime = 0
	bo.Reset()

	retryable := backoff.WithContext(backoff.WithMaxRetries(bo, cfg.MaxRetries), ctx)

	notify := func(err error, t time.Duration) {
		log.Warn(
			"Operation failed, retrying",
			"operation", operationName,
			"error", err,
			"next_attempt_in", t.Round(time.Millisecond).String(),
		)
	}

	return backoff.RetryNotify(operation, retryable, notify)
}
