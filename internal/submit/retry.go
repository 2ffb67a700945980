package submit

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig returns the retry settings used by NewSink.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 500 * time.Millisecond,
		MaxWait:     5 * time.Second,
		Multiplier:  2.0,
	}
}

// RetrySink is a decorator that retries transient failures with
// exponential backoff and jitter.
type RetrySink struct {
	inner  Sink
	config RetryConfig
}

// WithRetry wraps a Sink with retry logic.
func WithRetry(s Sink, cfg RetryConfig) Sink {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetrySink{inner: s, config: cfg}
}

func (r *RetrySink) Send(ctx context.Context, p Payload) (*Receipt, error) {
	var (
		lastReceipt *Receipt
		lastErr     error
	)

	for attempt := range r.config.MaxAttempts {
		receipt, err := r.inner.Send(ctx, p)
		if receipt == nil {
			receipt = &Receipt{}
		}
		receipt.Attempts = attempt + 1
		if err == nil {
			return receipt, nil
		}
		lastReceipt, lastErr = receipt, err

		if !shouldRetry(err) {
			return receipt, err
		}

		// Last attempt: don't sleep.
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return lastReceipt, ctx.Err()
		case <-time.After(r.backoff(attempt)):
		}
	}

	return lastReceipt, lastErr
}

func (r *RetrySink) Name() string {
	return r.inner.Name()
}

// shouldRetry determines if an error is retryable.
func shouldRetry(err error) bool {
	// Context errors are never retried.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Client errors will not change on a resend.
	var derr *DeliveryError
	if errors.As(err, &derr) {
		return derr.Temporary()
	}

	// Unreachable receivers and other errors are treated as transient.
	return true
}

// backoff computes the wait duration for the given attempt.
func (r *RetrySink) backoff(attempt int) time.Duration {
	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
