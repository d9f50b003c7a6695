package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ManoelLobo/ecommerce-challenge/internal/orders/oplog"
)

// WorkflowLogRepository is the SQLite implementation of oplog.Recorder.
type WorkflowLogRepository struct {
	db *sql.DB
}

func NewWorkflowLogRepository(d *DB) *WorkflowLogRepository {
	return &WorkflowLogRepository{db: d.db}
}

// Record appends a workflow log entry. Safe to call concurrently.
func (r *WorkflowLogRepository) Record(ctx context.Context, entry *oplog.Entry) error {
	const q = `
		INSERT INTO workflow_log
			(workflow_id, order_id, customer_id, status, detail, trace_id, span_id, created_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.WorkflowID,
		entry.OrderID,
		entry.CustomerID,
		string(entry.Status),
		entry.Detail,
		entry.TraceID,
		entry.SpanID,
		formatTime(entry.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: record workflow log for %q: %w", entry.WorkflowID, err)
	}
	return nil
}

// Entries returns all log entries for one workflow invocation in write order.
// Used by operators to inspect where a request got to.
func (r *WorkflowLogRepository) Entries(ctx context.Context, workflowID string) ([]oplog.Entry, error) {
	const q = `
		SELECT workflow_id, order_id, customer_id, status, detail, trace_id, span_id, created_at
		FROM   workflow_log
		WHERE  workflow_id = ?
		ORDER  BY id`

	return r.query(ctx, q, workflowID)
}

// EntriesByOrder returns the log entries that reference a persisted order.
// Rejected requests never get an order id; query those by workflow id.
func (r *WorkflowLogRepository) EntriesByOrder(ctx context.Context, orderID string) ([]oplog.Entry, error) {
	const q = `
		SELECT workflow_id, order_id, customer_id, status, detail, trace_id, span_id, created_at
		FROM   workflow_log
		WHERE  order_id = ?
		ORDER  BY id`

	return r.query(ctx, q, orderID)
}

func (r *WorkflowLogRepository) query(ctx context.Context, q, arg string) ([]oplog.Entry, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, fmt.Errorf("sqlite: workflow log entries for %q: %w", arg, err)
	}
	defer rows.Close()

	var entries []oplog.Entry
	for rows.Next() {
		var entry oplog.Entry
		var createdAt string
		err := rows.Scan(
			&entry.WorkflowID,
			&entry.OrderID,
			&entry.CustomerID,
			&entry.Status,
			&entry.Detail,
			&entry.TraceID,
			&entry.SpanID,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan workflow log entry: %w", err)
		}
		if entry.CreatedAt, err = parseRFC3339(createdAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate workflow log: %w", err)
	}
	return entries, nil
}
