package oplog

import "context"

// Recorder is the port for persisting workflow log entries. The workflow
// depends on this abstraction, not on SQLite directly, so tests can capture
// entries in memory and the trail can be redirected elsewhere later.
type Recorder interface {
	// Record appends an entry. The log is append-only, never an upsert.
	Record(ctx context.Context, entry *Entry) error
}
