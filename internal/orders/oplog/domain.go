// Package oplog defines the append-only audit trail of the order workflow.
//
// Every workflow invocation writes one row per state transition. The trail
// has two uses: querying where a given request got to (and why it was
// rejected), and correlating a row with the distributed trace via trace_id.
// Because stock decrement happens after order persistence with no shared
// transaction, the trail is also how an operator spots orders whose stock
// update never landed.
package oplog

import "time"

// Status is the workflow lifecycle state captured by a log entry.
type Status string

const (
	StatusStarted      Status = "STARTED"
	StatusRejected     Status = "REJECTED"
	StatusOrderCreated Status = "ORDER_CREATED"
	StatusStockUpdated Status = "STOCK_UPDATED"
	StatusFailed       Status = "FAILED"
)

// Entry is a single row in the workflow_log table.
type Entry struct {
	// WorkflowID identifies one workflow invocation. Generated per request,
	// so rejected requests (which never get an order id) are still traceable.
	WorkflowID string

	// OrderID is populated once the order has been persisted, empty before.
	OrderID string

	// CustomerID is the customer the request was made for.
	CustomerID string

	// Status is the lifecycle state at the time this row was written.
	Status Status

	// Detail is free text: the rejection message, the collaborator error, etc.
	Detail string

	// TraceID and SpanID come from the OpenTelemetry span active when the
	// entry was written. Empty when no span is active (e.g. in tests).
	TraceID string
	SpanID  string

	CreatedAt time.Time
}
