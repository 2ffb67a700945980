package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const tableDeliveries = "deliveries"

// Column names of the deliveries table.
const (
	colID           = "id"
	colSubmissionID = "submission_id"
	colSequence     = "sequence"
	colCreatedAt    = "created_at"
	colSink         = "sink"
	colTotalScore   = "total_score"
	colCategory     = "category"
	colStatus       = "status"
	colStatusCode   = "status_code"
	colAttempts     = "attempts"
	colLatencyMs    = "latency_ms"
	colErrorMessage = "error_message"
)

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// schemaStatements create the deliveries table and its indexes. The query
// builder only covers DML, so the DDL is written out by hand.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS ` + tableDeliveries + ` (
		` + colID + ` INTEGER PRIMARY KEY AUTOINCREMENT,
		` + colSubmissionID + ` TEXT NOT NULL UNIQUE,
		` + colSequence + ` INTEGER NOT NULL,
		` + colCreatedAt + ` INTEGER NOT NULL,
		` + colSink + ` TEXT NOT NULL DEFAULT '',
		` + colTotalScore + ` INTEGER NOT NULL,
		` + colCategory + ` TEXT NOT NULL,
		` + colStatus + ` TEXT NOT NULL,
		` + colStatusCode + ` INTEGER NOT NULL DEFAULT 0,
		` + colAttempts + ` INTEGER NOT NULL DEFAULT 0,
		` + colLatencyMs + ` INTEGER NOT NULL DEFAULT 0,
		` + colErrorMessage + ` TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS deliveries_created_at ON ` + tableDeliveries + ` (` + colCreatedAt + `)`,
	`CREATE INDEX IF NOT EXISTS deliveries_status ON ` + tableDeliveries + ` (` + colStatus + `)`,
}

// migrate creates the deliveries table and its indexes when missing.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	for _, stmt := range schemaStatements {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return fmt.Errorf("exec %q: %w", stmt, err)
		}
	}
	return nil
}
