package exec

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	pgquery "github.com/Graphile/graphql-build"
)

// Query builds q, runs it, and scans every row with fn. fn returns a
// fresh destination value and the scan targets into it. Extra columns,
// like the injected cursor column, scan into a blackhole instead of
// failing with a short destination list.
func Query[T any](ctx context.Context, db QueryAble, q *pgquery.QueryBuilder, fn func() (T, []any), opts ...Option) ([]T, error) {
	o := newOptions(opts...)
	if db == nil {
		return nil, ErrNilDB
	}
	query, args, err := q.BuildQuery(o.style)
	if err != nil {
		return nil, err
	}
	o.log(ctx, query, args)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("run query: %w", err)
	}
	defer rows.Close()
	var results []T
	for rows.Next() {
		dest, fields := fn()
		if err := scanRow(rows, fields...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		results = append(results, dest)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return results, nil
}

// JSONRows builds q in JSON row mode and returns each row's object.
func JSONRows(ctx context.Context, db QueryAble, q *pgquery.QueryBuilder, opts ...Option) ([]json.RawMessage, error) {
	o := newOptions(opts...)
	if db == nil {
		return nil, ErrNilDB
	}
	query, args, err := q.BuildQuery(o.style, pgquery.WithJSON())
	if err != nil {
		return nil, err
	}
	o.log(ctx, query, args)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("run query: %w", err)
	}
	defer rows.Close()
	var results []json.RawMessage
	for rows.Next() {
		var object []byte
		if err := rows.Scan(&object); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		results = append(results, json.RawMessage(object))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return results, nil
}

// JSONArray builds q in JSON aggregate mode and returns the single array
// value. An empty result is the JSON array '[]', never null.
func JSONArray(ctx context.Context, db QueryAble, q *pgquery.QueryBuilder, opts ...Option) (json.RawMessage, error) {
	o := newOptions(opts...)
	if db == nil {
		return nil, ErrNilDB
	}
	query, args, err := q.BuildQuery(o.style, pgquery.WithJSONAggregate())
	if err != nil {
		return nil, err
	}
	o.log(ctx, query, args)
	var array []byte
	if err := db.QueryRowContext(ctx, query, args...).Scan(&array); err != nil {
		return nil, fmt.Errorf("scan aggregate: %w", err)
	}
	return json.RawMessage(array), nil
}

// scanRow scans a single row to dest. Unlike rows.Scan(), it drops extra
// columns instead of failing.
func scanRow(rows *sql.Rows, dest ...any) error {
	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	bh := &blackhole{}
	for i := len(dest); i < len(cols); i++ {
		dest = append(dest, bh)
	}
	return rows.Scan(dest...)
}

type blackhole struct{}

func (b *blackhole) Scan(_ any) error { return nil }
