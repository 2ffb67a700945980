package submit

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/glp360/riskscore/internal/store"
)

// LoggingSink is a decorator that logs every delivery and, when a repo is
// set, records its outcome in the delivery log.
type LoggingSink struct {
	inner  Sink
	logger *zap.Logger
	repo   store.DeliveryRepo
}

// WithLogging wraps a Sink with logging. logger and repo may be nil.
func WithLogging(s Sink, logger *zap.Logger, repo store.DeliveryRepo) Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingSink{inner: s, logger: logger, repo: repo}
}

func (l *LoggingSink) Send(ctx context.Context, p Payload) (*Receipt, error) {
	start := time.Now()
	receipt, err := l.inner.Send(ctx, p)
	latency := time.Since(start)

	rec := store.Delivery{
		SubmissionID: p.SubmissionID,
		Sink:         l.inner.Name(),
		TotalScore:   p.TotalScore,
		Category:     string(p.FinalCategory),
		LatencyMs:    latency.Milliseconds(),
	}
	if receipt != nil {
		rec.StatusCode = receipt.StatusCode
		rec.Attempts = receipt.Attempts
	}

	logFields := []zap.Field{
		zap.String("submission_id", p.SubmissionID),
		zap.String("sink", rec.Sink),
		zap.Int("total_score", p.TotalScore),
		zap.String("category", rec.Category),
		zap.Duration("latency", latency),
		zap.Int("attempts", rec.Attempts),
	}

	switch {
	case err != nil:
		rec.Status = store.StatusFailed
		rec.ErrorMessage = err.Error()
		var derr *DeliveryError
		if errors.As(err, &derr) {
			rec.StatusCode = derr.StatusCode
		}
		l.logger.Warn("submission delivery failed", append(logFields, zap.Error(err))...)
	case receipt != nil && receipt.Skipped:
		rec.Status = store.StatusSkipped
		l.logger.Debug("submission not delivered: no webhook configured", logFields...)
	default:
		rec.Status = store.StatusDelivered
		l.logger.Info("submission delivered", append(logFields, zap.Int("status_code", rec.StatusCode))...)
	}

	if l.repo != nil && p.SubmissionID != "" {
		// Don't fail the delivery if the log write fails.
		if logErr := l.repo.AppendDelivery(context.WithoutCancel(ctx), rec); logErr != nil {
			l.logger.Warn("failed to record delivery", zap.String("submission_id", p.SubmissionID), zap.Error(logErr))
		}
	}

	return receipt, err
}

func (l *LoggingSink) Name() string {
	return l.inner.Name()
}
