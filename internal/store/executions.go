package store

import (
	"context"
	"fmt"
	"time"

	"github.com/afternoon/ontopy/internal/resource"
)

// RecordExecution appends one execution to the log.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are silently ignored.
//
// Implements resource.Recorder.
func (s *Store) RecordExecution(ctx context.Context, e resource.Execution) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO executions
		(id, kind, endpoint, query, rows, error, started_at, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		e.ID,
		e.Kind,
		e.Endpoint,
		e.Query,
		e.Rows,
		e.Err,
		e.StartedAt.UTC().Format(time.RFC3339Nano),
		int64(e.Duration),
	)
	if err != nil {
		return fmt.Errorf("record execution: %w", err)
	}
	return nil
}

// ReadExecutions returns logged executions, newest first.
// An empty kind returns every kind; limit <= 0 returns everything.
//
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) ReadExecutions(ctx context.Context, kind string, limit int) ([]resource.Execution, error) {
	query := `
		SELECT id, kind, endpoint, query, rows, error, started_at, duration_ns
		FROM executions
		WHERE (? = '' OR kind = ?)
		ORDER BY seq DESC
	`
	args := []any{kind, kind}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query executions: %w", err)
	}
	defer rows.Close()

	executions := []resource.Execution{}
	for rows.Next() {
		var (
			e          resource.Execution
			startedAt  string
			durationNS int64
		)
		if err := rows.Scan(&e.ID, &e.Kind, &e.Endpoint, &e.Query, &e.Rows, &e.Err, &startedAt, &durationNS); err != nil {
			return nil, fmt.Errorf("scan execution: %w", err)
		}
		e.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parse started_at %q: %w", startedAt, err)
		}
		e.Duration = time.Duration(durationNS)
		executions = append(executions, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate executions: %w", err)
	}

	return executions, nil
}
