// Package sqlite provides the SQLite-backed repositories for customers,
// products, orders and the workflow log.
//
// WAL mode is enabled on Open so that readers never block writers and vice
// versa — order reads keep working while a create is in flight.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	// Register the pure-Go SQLite driver. modernc.org/sqlite avoids CGO,
	// which keeps Docker (Alpine) builds simple.
	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on startup. Idempotent via IF NOT EXISTS.
const schema = `
CREATE TABLE IF NOT EXISTS customers (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    email       TEXT NOT NULL UNIQUE,
    created_at  TEXT NOT NULL,
    updated_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL UNIQUE,
    -- Decimal price stored as TEXT to keep exact precision; parsed with
    -- shopspring/decimal on read.
    price       TEXT    NOT NULL,
    quantity    INTEGER NOT NULL CHECK (quantity >= 0),
    created_at  TEXT NOT NULL,
    updated_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
    id          TEXT PRIMARY KEY,
    customer_id TEXT NOT NULL REFERENCES customers(id),
    created_at  TEXT NOT NULL,
    updated_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS order_items (
    -- Surrogate key preserves line insertion order on read.
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    order_id    TEXT NOT NULL REFERENCES orders(id),
    product_id  TEXT NOT NULL REFERENCES products(id),
    quantity    INTEGER NOT NULL,
    unit_price  TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id, id);

CREATE TABLE IF NOT EXISTS workflow_log (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,

    -- One workflow invocation writes several rows sharing a workflow_id.
    workflow_id TEXT NOT NULL,

    -- Populated once the order is persisted, '' before.
    order_id    TEXT NOT NULL DEFAULT '',

    customer_id TEXT NOT NULL,
    status      TEXT NOT NULL,
    detail      TEXT NOT NULL DEFAULT '',

    -- W3C identifiers of the active OTel span, for jumping to the trace.
    trace_id    TEXT NOT NULL DEFAULT '',
    span_id     TEXT NOT NULL DEFAULT '',

    created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_workflow_log_workflow_id ON workflow_log(workflow_id, id);
CREATE INDEX IF NOT EXISTS idx_workflow_log_order_id ON workflow_log(order_id);
`

// DB wraps the shared database handle the repositories are built on.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at the given path and applies
// the schema.
//
//	db, err := sqlite.Open("./data/orders.db")
func Open(path string) (*DB, error) {
	// The pure-Go driver takes _pragma query parameters for connection state.
	// WAL enables concurrent readers, foreign_keys enforces integrity, and
	// busy_timeout waits for locks instead of failing immediately.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close releases the database connection. Call it with defer in main().
func (d *DB) Close() error {
	return d.db.Close()
}

// formatTime renders timestamps the way they are stored: RFC3339 TEXT in UTC.
func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.999999999Z")
}

// parseRFC3339 parses the timestamp strings stored in SQLite.
// SQLite has no native datetime type; we store RFC3339 TEXT.
func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse time %q: %w", s, err)
	}
	return t, nil
}
