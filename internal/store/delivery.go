package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// deliveryRepo implements DeliveryRepo with ent's SQL builder over the
// shared driver.
type deliveryRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

var deliveryColumns = []string{
	colSubmissionID, colSequence, colCreatedAt, colSink, colTotalScore,
	colCategory, colStatus, colStatusCode, colAttempts, colLatencyMs, colErrorMessage,
}

func (r *deliveryRepo) AppendDelivery(ctx context.Context, d Delivery) error {
	if d.SubmissionID == "" {
		return fmt.Errorf("append delivery: empty submission ID")
	}
	if d.Sequence == 0 {
		seqNum, err := r.seq.Next(ctx)
		if err != nil {
			return err
		}
		d.Sequence = seqNum
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}

	query, args := builder().Insert(tableDeliveries).
		Columns(deliveryColumns...).
		Values(
			d.SubmissionID, d.Sequence, d.CreatedAt.UnixMilli(), d.Sink, d.TotalScore,
			d.Category, string(d.Status), d.StatusCode, d.Attempts, d.LatencyMs, d.ErrorMessage,
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save delivery: %w", err)
	}
	return nil
}

func (r *deliveryRepo) RecentDeliveries(ctx context.Context, opts QueryOpts) ([]Delivery, error) {
	sel := builder().Select(deliveryColumns...).
		From(entsql.Table(tableDeliveries)).
		OrderBy(entsql.Desc(colSequence))
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE(colCreatedAt, opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE(colCreatedAt, opts.To.UnixMilli()))
	}
	if opts.Status != "" {
		sel.Where(entsql.EQ(colStatus, string(opts.Status)))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query deliveries: %w", err)
	}
	defer rows.Close()

	var out []Delivery
	for rows.Next() {
		var (
			d         Delivery
			createdAt int64
			status    string
		)
		if err := rows.Scan(
			&d.SubmissionID, &d.Sequence, &createdAt, &d.Sink, &d.TotalScore,
			&d.Category, &status, &d.StatusCode, &d.Attempts, &d.LatencyMs, &d.ErrorMessage,
		); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		d.CreatedAt = time.UnixMilli(createdAt)
		d.Status = DeliveryStatus(status)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deliveries: %w", err)
	}
	return out, nil
}

func (r *deliveryRepo) Stats(ctx context.Context) (DeliveryStats, error) {
	stats := DeliveryStats{
		ByStatus:   make(map[DeliveryStatus]int),
		ByCategory: make(map[string]int),
	}

	byStatus, err := r.countBy(ctx, colStatus)
	if err != nil {
		return stats, err
	}
	for k, n := range byStatus {
		stats.ByStatus[DeliveryStatus(k)] = n
		stats.Total += n
	}

	stats.ByCategory, err = r.countBy(ctx, colCategory)
	if err != nil {
		return stats, err
	}

	query, args := builder().Select(entsql.Avg(colLatencyMs)).
		From(entsql.Table(tableDeliveries)).
		Where(entsql.NEQ(colStatus, string(StatusSkipped))).
		Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return stats, fmt.Errorf("query latency: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		var avg sql.NullFloat64
		if err := rows.Scan(&avg); err != nil {
			return stats, fmt.Errorf("scan latency: %w", err)
		}
		stats.AvgLatencyMs = avg.Float64
	}
	return stats, rows.Err()
}

// countBy returns row counts grouped by column.
func (r *deliveryRepo) countBy(ctx context.Context, column string) (map[string]int, error) {
	query, args := builder().Select(column, entsql.Count("*")).
		From(entsql.Table(tableDeliveries)).
		GroupBy(column).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("count by %s: %w", column, err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			key string
			n   int
		)
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("scan %s count: %w", column, err)
		}
		out[key] = n
	}
	return out, rows.Err()
}
