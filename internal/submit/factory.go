package submit

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/glp360/riskscore/internal/store"
)

// Config holds delivery settings.
type Config struct {
	// WebhookURL receives submissions. Empty disables delivery.
	WebhookURL string

	// Timeout bounds each HTTP attempt.
	Timeout time.Duration

	Retry RetryConfig
}

// NewSink creates the delivery chain for cfg: caller → logging → retry →
// webhook. The retry layer is only added when Retry.MaxAttempts > 1. Without
// a webhook URL the chain ends in a NopSink and nothing is retried.
func NewSink(cfg Config, logger *zap.Logger, repo store.DeliveryRepo) (Sink, error) {
	if cfg.WebhookURL == "" {
		return WithLogging(NopSink{}, logger, repo), nil
	}

	base, err := NewWebhookSink(cfg.WebhookURL, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("initializing webhook sink: %w", err)
	}

	var sink Sink = base
	if cfg.Retry.MaxAttempts > 1 {
		sink = WithRetry(base, cfg.Retry)
	}
	return WithLogging(sink, logger, repo), nil
}
