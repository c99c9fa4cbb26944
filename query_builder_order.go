package pgquery

import (
	"github.com/Graphile/graphql-build/internal/util"
	"github.com/qjebbs/go-sqlf/v4"
)

// Ordering is one settled ORDER BY entry. Ascending is the registered
// direction; the flip flag applies only when the clause is emitted.
type Ordering struct {
	Expr      sqlf.Builder
	Ascending bool
}

// OrderBy appends an ordering entry. e.g.:
//
//	b.OrderBy(pgquery.Value(u.Column("created_at")), false)
func (b *QueryBuilder) OrderBy(e Expr, ascending bool) *QueryBuilder {
	if err := b.checkOpen(PhaseOrderBy); err != nil {
		b.pushError(err)
		return b
	}
	b.data.orders = append(b.data.orders, orderEntry{expr: e, ascending: ascending})
	return b
}

// SetOrderIsUnique asserts that the registered ordering is total, i.e. no
// two rows compare equal under it. The builder records the claim without
// validating it; cursor pagination is only stable when it holds.
func (b *QueryBuilder) SetOrderIsUnique() *QueryBuilder {
	if err := b.checkOpen(PhaseOrderIsUnique); err != nil {
		b.pushError(err)
		return b
	}
	b.data.orderIsUnique = true
	return b
}

// Orderings returns the settled order entries, locking the orderBy phase.
func (b *QueryBuilder) Orderings() []Ordering {
	b.Lock(PhaseOrderBy)
	return b.compiled.orders
}

// OrderIsUnique reports whether the ordering was declared total, locking
// the orderIsUnique phase.
func (b *QueryBuilder) OrderIsUnique() bool {
	b.Lock(PhaseOrderIsUnique)
	return b.compiled.orderIsUnique
}

// orderByClause compiles the ORDER BY clause, reversing each direction
// when the query is flipped. Returns nil when no entries registered.
func (b *QueryBuilder) orderByClause() sqlf.Builder {
	if len(b.compiled.orders) == 0 {
		return nil
	}
	builders := util.Map(b.compiled.orders, func(o Ordering) sqlf.Builder {
		dir := "DESC"
		if o.Ascending != b.compiled.flip {
			dir = "ASC"
		}
		return sqlf.F("? "+dir, o.Expr)
	})
	return sqlf.Prefix("ORDER BY", sqlf.Join(", ", builders...))
}
