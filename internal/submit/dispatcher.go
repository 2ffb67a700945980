package submit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultDeliveryTimeout bounds one submission including retries.
const DefaultDeliveryTimeout = time.Minute

// Outcome reports how a dispatched submission ended.
type Outcome struct {
	SubmissionID string
	Receipt      *Receipt
	Err          error
}

// Delivered reports whether the receiver accepted the payload.
func (o Outcome) Delivered() bool {
	return o.Err == nil && (o.Receipt == nil || !o.Receipt.Skipped)
}

// DispatcherOptions configures a Dispatcher.
type DispatcherOptions struct {
	// Timeout bounds a single submission including retries.
	// Default: DefaultDeliveryTimeout.
	Timeout time.Duration

	Logger *zap.Logger

	// OnOutcome, when set, is called from the delivery goroutine once the
	// submission finishes.
	OnOutcome func(Outcome)
}

// Dispatcher sends submissions in the background so that callers never
// wait on, or see the failure of, a delivery.
type Dispatcher struct {
	sink   Sink
	opts   DispatcherOptions
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher that delivers through sink.
func NewDispatcher(sink Sink, opts DispatcherOptions) *Dispatcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultDeliveryTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		sink:   sink,
		opts:   opts,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Submit assigns the payload a submission ID (unless it has one) and starts
// delivering it. It returns as soon as delivery has started; the only
// error is ErrClosed.
func (d *Dispatcher) Submit(p Payload) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return "", ErrClosed
	}

	if p.SubmissionID == "" {
		p.SubmissionID = uuid.NewString()
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now()
	}

	d.wg.Add(1)
	go d.deliver(p)
	return p.SubmissionID, nil
}

func (d *Dispatcher) deliver(p Payload) {
	defer d.wg.Done()

	ctx, cancel := context.WithTimeout(d.ctx, d.opts.Timeout)
	defer cancel()

	receipt, err := d.sink.Send(ctx, p)
	if err != nil {
		d.logger.Debug("submission accepted despite delivery failure",
			zap.String("submission_id", p.SubmissionID), zap.Error(err))
	}
	if d.opts.OnOutcome != nil {
		d.opts.OnOutcome(Outcome{SubmissionID: p.SubmissionID, Receipt: receipt, Err: err})
	}
}

// Close stops accepting submissions and waits for in-flight deliveries.
// If ctx ends first, pending deliveries are cancelled and ctx's error is
// returned once they have stopped.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		<-done
		return ctx.Err()
	}
}
