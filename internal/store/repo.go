package store

import (
	"context"
	"time"
)

// DeliveryStatus is the outcome of one submission attempt chain.
type DeliveryStatus string

const (
	StatusDelivered DeliveryStatus = "delivered"
	StatusFailed    DeliveryStatus = "failed"
	StatusSkipped   DeliveryStatus = "skipped" // no webhook configured
)

// QueryOpts configures delivery queries.
type QueryOpts struct {
	Limit  int            // max results (0 = unlimited)
	From   time.Time      // created_at >= From
	To     time.Time      // created_at <= To
	Status DeliveryStatus // empty = any
}

// Delivery is one row of the delivery log.
type Delivery struct {
	SubmissionID string
	Sequence     int64
	CreatedAt    time.Time
	Sink         string
	TotalScore   int
	Category     string
	Status       DeliveryStatus
	StatusCode   int
	Attempts     int
	LatencyMs    int64
	ErrorMessage string
}

// DeliveryStats aggregates the delivery log.
type DeliveryStats struct {
	Total        int
	ByStatus     map[DeliveryStatus]int
	ByCategory   map[string]int
	AvgLatencyMs float64
}

// DeliveryRepo provides append and query access to the delivery log.
type DeliveryRepo interface {
	// AppendDelivery records a delivery outcome. Sequence and CreatedAt are
	// assigned by the repo when zero.
	AppendDelivery(ctx context.Context, d Delivery) error

	// RecentDeliveries returns deliveries newest first.
	RecentDeliveries(ctx context.Context, opts QueryOpts) ([]Delivery, error)

	// Stats aggregates all recorded deliveries.
	Stats(ctx context.Context) (DeliveryStats, error)
}
