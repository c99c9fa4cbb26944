package pgquery

import (
	"github.com/qjebbs/go-sqlf/v4"
)

// CursorAlias is the reserved alias under which the cursor expression,
// when one is set, joins the select list at lock time.
const CursorAlias = "__cursor"

// Select appends a projection under the given alias. The alias is
// spliced into the statement verbatim, as the AS name and as the JSON
// object key, never quoted or escaped; it must be a SQL identifier.
// e.g.:
//
//	u := pgquery.NewTable("users", "u")
//	b.Select(pgquery.Value(u.Column("id")), "id")
func (b *QueryBuilder) Select(e Expr, alias string) *QueryBuilder {
	if err := b.checkOpen(PhaseSelect); err != nil {
		b.pushError(err)
		return b
	}
	b.data.selects = append(b.data.selects, selectEntry{expr: e, alias: alias})
	return b
}

// SelectCursor sets the expression that computes each row's cursor value.
// It fills a single slot; setting it again before the phase locks
// replaces the previous expression. When set, the select phase injects it
// under the CursorAlias alias.
func (b *QueryBuilder) SelectCursor(e Expr) *QueryBuilder {
	if err := b.checkOpen(PhaseSelectCursor); err != nil {
		b.pushError(err)
		return b
	}
	b.data.selectCursor = &e
	return b
}

// SetCursorPrefix replaces the cursor prefix expressions. The default is
// a single 'natural' literal.
func (b *QueryBuilder) SetCursorPrefix(exprs ...Expr) *QueryBuilder {
	if err := b.checkOpen(PhaseCursorPrefix); err != nil {
		b.pushError(err)
		return b
	}
	b.data.cursorPrefix = exprs
	return b
}

// CursorPrefix returns the compiled cursor prefix, locking its phase.
func (b *QueryBuilder) CursorPrefix() []sqlf.Builder {
	b.Lock(PhaseCursorPrefix)
	return b.compiled.cursorPrefix
}
