package oplog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// NewEntry builds a log entry with trace_id/span_id taken from the
// OpenTelemetry span active in ctx. Both are empty strings when no valid
// span is present, which the recorder stores as-is.
func NewEntry(ctx context.Context, workflowID, orderID, customerID string, status Status, detail string) *Entry {
	entry := &Entry{
		WorkflowID: workflowID,
		OrderID:    orderID,
		CustomerID: customerID,
		Status:     status,
		Detail:     detail,
		CreatedAt:  time.Now().UTC(),
	}

	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		entry.TraceID = sc.TraceID().String()
		entry.SpanID = sc.SpanID().String()
	}

	return entry
}
