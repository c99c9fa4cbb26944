// Package exec runs assembled queries against database/sql handles. It
// stays driver-neutral: anything that can run context queries, such as
// *sql.DB or *sql.Tx, qualifies.
package exec

import (
	"context"
	"database/sql"
	"errors"
)

// QueryAble is the interface for query-able *sql.DB, *sql.Tx, etc.
type QueryAble interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ QueryAble = (*sql.DB)(nil)
	_ QueryAble = (*sql.Tx)(nil)
)

// ErrNilDB is reported when a query runs against a nil handle.
var ErrNilDB = errors.New("nil database handle")
