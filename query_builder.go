package pgquery

import (
	"fmt"

	"github.com/qjebbs/go-sqlf/v4"
)

// QueryBuilder assembles one SELECT query in phases. Mutators stay
// chainable and collect contract violations, which surface from Build.
// A builder is single-use: it serves exactly one logical query, and
// wrappers around subqueries get builders of their own.
type QueryBuilder struct {
	data     draftData
	compiled compiledData

	locks [phaseCount]lockState
	hooks [phaseCount][]func()

	finalized bool
	built     bool

	aliasSeq int // generated identifiers, deterministic per builder

	errors []error

	debug     bool
	debugName string
}

// draftData holds the open, still-mutable inputs of each phase.
type draftData struct {
	cursorPrefix  []Expr
	selects       []selectEntry
	selectCursor  *Expr
	from          *fromEntry
	joins         []Expr
	wheres        []Expr
	lowerBounds   []Expr
	upperBounds   []Expr
	orders        []orderEntry
	orderIsUnique bool
	limit         *int64
	offset        *int64
	flip          bool
	comparator    CursorComparator
}

// compiledData holds the settled outputs of locked phases.
type compiledData struct {
	cursorPrefix  []sqlf.Builder
	selects       []selectField
	selectCursor  sqlf.Builder
	from          sqlf.Builder
	fromAlias     string
	joins         []sqlf.Builder
	wheres        []sqlf.Builder
	lowerBounds   []sqlf.Builder
	upperBounds   []sqlf.Builder
	orders        []Ordering
	orderIsUnique bool
	limit         *int64
	offset        *int64
	flip          bool
	comparator    CursorComparator
}

type selectEntry struct {
	expr  Expr
	alias string
}

type selectField struct {
	expr  sqlf.Builder
	alias string
}

type fromEntry struct {
	source Expr
	alias  string
}

type orderEntry struct {
	expr      Expr
	ascending bool
}

// NewQueryBuilder returns an empty QueryBuilder with the standard phase
// wiring: locking select locks selectCursor first and injects the cursor
// expression into the select list, locking where locks whereBound, and
// locking orderBy locks cursorPrefix.
func NewQueryBuilder() *QueryBuilder {
	b := &QueryBuilder{}
	b.data.cursorPrefix = []Expr{Value(sqlf.F("'natural'"))}
	b.BeforeLock(PhaseOrderBy, func() {
		b.Lock(PhaseCursorPrefix)
	})
	b.BeforeLock(PhaseWhere, func() {
		b.Lock(PhaseWhereBound)
	})
	b.BeforeLock(PhaseSelect, func() {
		b.Lock(PhaseSelectCursor)
		if cur := b.compiled.selectCursor; cur != nil {
			b.Select(Value(cur), CursorAlias)
		}
	})
	return b
}

// compile settles one phase: deferred expressions resolve, in
// registration order, and the result becomes immutable.
func (b *QueryBuilder) compile(p Phase) {
	switch p {
	case PhaseCursorPrefix:
		b.compiled.cursorPrefix = resolveAll(b.data.cursorPrefix)
	case PhaseSelect:
		b.compiled.selects = make([]selectField, 0, len(b.data.selects))
		for _, s := range b.data.selects {
			if r := s.expr.resolve(); r != nil {
				b.compiled.selects = append(b.compiled.selects, selectField{expr: r, alias: s.alias})
			}
		}
	case PhaseSelectCursor:
		if b.data.selectCursor != nil {
			b.compiled.selectCursor = b.data.selectCursor.resolve()
		}
	case PhaseFrom:
		if b.data.from != nil {
			b.compiled.from = b.data.from.source.resolve()
			b.compiled.fromAlias = b.data.from.alias
		}
	case PhaseJoin:
		b.compiled.joins = resolveAll(b.data.joins)
	case PhaseWhere:
		b.compiled.wheres = resolveAll(b.data.wheres)
	case PhaseWhereBound:
		b.compiled.lowerBounds = resolveAll(b.data.lowerBounds)
		b.compiled.upperBounds = resolveAll(b.data.upperBounds)
	case PhaseOrderBy:
		b.compiled.orders = make([]Ordering, 0, len(b.data.orders))
		for _, o := range b.data.orders {
			if r := o.expr.resolve(); r != nil {
				b.compiled.orders = append(b.compiled.orders, Ordering{Expr: r, Ascending: o.ascending})
			}
		}
	case PhaseOrderIsUnique:
		b.compiled.orderIsUnique = b.data.orderIsUnique
	case PhaseLimit:
		b.compiled.limit = b.data.limit
	case PhaseOffset:
		b.compiled.offset = b.data.offset
	case PhaseFlip:
		b.compiled.flip = b.data.flip
	case PhaseCursorComparator:
		b.compiled.comparator = b.data.comparator
	}
}

// Limit sets the limit. It is emitted only when non-negative.
func (b *QueryBuilder) Limit(limit int64) *QueryBuilder {
	if err := b.checkOpen(PhaseLimit); err != nil {
		b.pushError(err)
		return b
	}
	b.data.limit = &limit
	return b
}

// Offset sets the offset. It is emitted only when non-negative.
func (b *QueryBuilder) Offset(offset int64) *QueryBuilder {
	if err := b.checkOpen(PhaseOffset); err != nil {
		b.pushError(err)
		return b
	}
	b.data.offset = &offset
	return b
}

// FinalLimit returns the limit that Build will emit, locking the limit
// phase. ok is false when no emittable limit is set.
func (b *QueryBuilder) FinalLimit() (limit int64, ok bool) {
	b.Lock(PhaseLimit)
	if b.compiled.limit == nil || *b.compiled.limit < 0 {
		return 0, false
	}
	return *b.compiled.limit, true
}

// FinalOffset returns the offset that Build will emit, locking the offset
// phase. ok is false when no emittable offset is set.
func (b *QueryBuilder) FinalOffset() (offset int64, ok bool) {
	b.Lock(PhaseOffset)
	if b.compiled.offset == nil || *b.compiled.offset < 0 {
		return 0, false
	}
	return *b.compiled.offset, true
}

// nextAlias returns the next generated identifier, e.g. "__local_0__".
func (b *QueryBuilder) nextAlias() string {
	alias := fmt.Sprintf("__local_%d__", b.aliasSeq)
	b.aliasSeq++
	return alias
}
