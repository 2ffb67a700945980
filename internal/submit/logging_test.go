package submit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/glp360/riskscore/internal/scoring"
	"github.com/glp360/riskscore/internal/store"
)

// memRepo is an in-memory store.DeliveryRepo.
type memRepo struct {
	mu   sync.Mutex
	rows []store.Delivery
	err  error
}

func (m *memRepo) AppendDelivery(_ context.Context, d store.Delivery) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.rows = append(m.rows, d)
	return nil
}

func (m *memRepo) RecentDeliveries(context.Context, store.QueryOpts) ([]store.Delivery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]store.Delivery(nil), m.rows...), nil
}

func (m *memRepo) Stats(context.Context) (store.DeliveryStats, error) {
	return store.DeliveryStats{}, nil
}

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestLogging_RecordsDelivered(t *testing.T) {
	logger, logs := observed()
	repo := &memRepo{}
	s := WithLogging(NewMockSink(MockResponse{StatusCode: 201}), logger, repo)

	_, err := s.Send(context.Background(), Payload{SubmissionID: "s1", TotalScore: 20, FinalCategory: scoring.CategoryTransform})
	require.NoError(t, err)

	require.Len(t, repo.rows, 1)
	row := repo.rows[0]
	assert.Equal(t, "s1", row.SubmissionID)
	assert.Equal(t, store.StatusDelivered, row.Status)
	assert.Equal(t, 201, row.StatusCode)
	assert.Equal(t, "TRANSFORM", row.Category)
	assert.Equal(t, "mock", row.Sink)

	entries := logs.FilterMessage("submission delivered").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "s1", entries[0].ContextMap()["submission_id"])
}

func TestLogging_RecordsFailure(t *testing.T) {
	logger, logs := observed()
	repo := &memRepo{}
	s := WithLogging(NewMockSink(MockResponse{Err: &DeliveryError{StatusCode: 500}}), logger, repo)

	_, err := s.Send(context.Background(), Payload{SubmissionID: "s2"})
	require.Error(t, err)

	require.Len(t, repo.rows, 1)
	assert.Equal(t, store.StatusFailed, repo.rows[0].Status)
	assert.Equal(t, 500, repo.rows[0].StatusCode)
	assert.Contains(t, repo.rows[0].ErrorMessage, "HTTP 500")
	assert.Equal(t, 1, logs.FilterMessage("submission delivery failed").Len())
}

func TestLogging_RecordsSkipped(t *testing.T) {
	repo := &memRepo{}
	s := WithLogging(NopSink{}, nil, repo)

	receipt, err := s.Send(context.Background(), Payload{SubmissionID: "s3"})
	require.NoError(t, err)
	assert.True(t, receipt.Skipped)
	require.Len(t, repo.rows, 1)
	assert.Equal(t, store.StatusSkipped, repo.rows[0].Status)
}

func TestLogging_RepoFailureDoesNotFailDelivery(t *testing.T) {
	logger, logs := observed()
	repo := &memRepo{err: errors.New("disk full")}
	s := WithLogging(NewMockSink(), logger, repo)

	_, err := s.Send(context.Background(), Payload{SubmissionID: "s4"})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("failed to record delivery").Len())
}

func TestLogging_NameDelegates(t *testing.T) {
	s := WithLogging(WithRetry(NewMockSink(), retryConfig()), nil, nil)
	assert.Equal(t, "mock", s.Name())
}
