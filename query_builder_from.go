package pgquery

import (
	"fmt"

	"github.com/qjebbs/go-sqlf/v4"
)

// From sets the source relation and its alias. Setting it again before
// the phase locks replaces the previous source. An empty alias gets a
// generated one. e.g.:
//
//	b.From(pgquery.Value(sqlf.F("users")), "u")
func (b *QueryBuilder) From(source Expr, alias string) *QueryBuilder {
	if err := b.checkOpen(PhaseFrom); err != nil {
		b.pushError(err)
		return b
	}
	if alias == "" {
		alias = b.nextAlias()
	}
	b.data.from = &fromEntry{source: source, alias: alias}
	return b
}

// Join appends a complete join fragment, e.g.:
//
//	b.Join(pgquery.Value(sqlf.F("INNER JOIN posts AS p ON (p.author_id = u.id)")))
func (b *QueryBuilder) Join(e Expr) *QueryBuilder {
	if err := b.checkOpen(PhaseJoin); err != nil {
		b.pushError(err)
		return b
	}
	b.data.joins = append(b.data.joins, e)
	return b
}

// TableAlias returns the alias of the source relation as a fragment,
// locking the from phase. Deferred expressions use it to reference the
// row being assembled.
func (b *QueryBuilder) TableAlias() sqlf.Builder {
	b.Lock(PhaseFrom)
	if b.compiled.fromAlias == "" {
		b.pushError(fmt.Errorf("%w: table alias requested", ErrMissingFrom))
		return sqlf.F("")
	}
	return sqlf.F(b.compiled.fromAlias)
}
