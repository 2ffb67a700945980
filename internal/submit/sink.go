// Package submit forwards finished results to an external webhook. Delivery
// is best effort: the respondent is never shown a delivery failure.
package submit

import "context"

// Sink is the destination for result submissions.
type Sink interface {
	// Send delivers one payload. A non-nil error means the receiver did not
	// accept it.
	Send(ctx context.Context, p Payload) (*Receipt, error)

	// Name identifies the sink in logs and the delivery log.
	Name() string
}

// Receipt describes a delivery attempt chain.
type Receipt struct {
	StatusCode int
	Attempts   int

	// Skipped is set when nothing was sent because no receiver is configured.
	Skipped bool
}

// NopSink accepts and discards every payload. It stands in when no webhook
// URL is configured.
type NopSink struct{}

func (NopSink) Send(context.Context, Payload) (*Receipt, error) {
	return &Receipt{Skipped: true}, nil
}

func (NopSink) Name() string {
	return "none"
}
