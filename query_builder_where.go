package pgquery

import (
	"github.com/qjebbs/go-sqlf/v4"
	"github.com/qjebbs/go-sqlf/v4/util"
)

// Where appends a condition. e.g.:
//
//	b.Where(pgquery.Value(sqlf.F("? > ?", u.Column("age"), 18)))
func (b *QueryBuilder) Where(e Expr) *QueryBuilder {
	if err := b.checkOpen(PhaseWhere); err != nil {
		b.pushError(err)
		return b
	}
	b.data.wheres = append(b.data.wheres, e)
	return b
}

// WhereBound appends a condition to the lower or upper pagination bound.
// Bounds compile separately from plain conditions so cursor predicates
// can keep joining them while where itself is already settled.
func (b *QueryBuilder) WhereBound(e Expr, isLower bool) *QueryBuilder {
	if err := b.checkOpen(PhaseWhereBound); err != nil {
		b.pushError(err)
		return b
	}
	if isLower {
		b.data.lowerBounds = append(b.data.lowerBounds, e)
	} else {
		b.data.upperBounds = append(b.data.upperBounds, e)
	}
	return b
}

// WhereIn appends a condition like `u.id IN (1, 2, 3)`.
func (b *QueryBuilder) WhereIn(column sqlf.Builder, list any) *QueryBuilder {
	return b.Where(Value(sqlf.F(
		"? IN (?)",
		column,
		sqlf.JoinArgs(", ", util.FlattenArgs(list)...),
	)))
}

// whereCondition compiles the full WHERE condition: the optional null
// guard, each condition, then the lower and upper bounds, each conjunct
// parenthesized. The condition is never empty; see andAll.
func (b *QueryBuilder) whereCondition(nullGuard bool) sqlf.Builder {
	conjuncts := make([]sqlf.Builder, 0, len(b.compiled.wheres)+3)
	if nullGuard {
		conjuncts = append(conjuncts, sqlf.F("NOT ("+b.compiled.fromAlias+" IS NULL)"))
	}
	conjuncts = append(conjuncts, b.compiled.wheres...)
	conjuncts = append(conjuncts, b.boundCondition(true), b.boundCondition(false))
	return andAll(conjuncts)
}

// boundCondition compiles one bound list. Empty lists are always-true so
// the clause keeps its shape whether or not cursors applied.
func (b *QueryBuilder) boundCondition(isLower bool) sqlf.Builder {
	list := b.compiled.upperBounds
	if isLower {
		list = b.compiled.lowerBounds
	}
	return andAll(list)
}

// andAll joins conjuncts with AND, parenthesizing each. An empty set
// compiles to an always-true condition, never to an omitted clause.
func andAll(conjuncts []sqlf.Builder) sqlf.Builder {
	if len(conjuncts) == 0 {
		return sqlf.F("1 = 1")
	}
	parts := make([]sqlf.Builder, 0, len(conjuncts))
	for _, c := range conjuncts {
		parts = append(parts, sqlf.F("(?)", c))
	}
	return sqlf.Join(" AND ", parts...)
}
