package pgquery

import (
	"fmt"

	"github.com/qjebbs/go-sqlf/v4"
)

// CursorComparator turns a decoded cursor and a direction into a keyset
// condition relative to the registered ordering. isAfter selects rows
// beyond the cursor in that ordering, otherwise rows before it.
type CursorComparator func(cursor any, isAfter bool) sqlf.Builder

// SetCursorComparator registers the comparator and locks its phase, so a
// second registration fails with ErrDoubleLock.
func (b *QueryBuilder) SetCursorComparator(fn CursorComparator) *QueryBuilder {
	if err := b.checkOpen(PhaseCursorComparator); err != nil {
		b.pushError(err)
		return b
	}
	b.data.comparator = fn
	return b.Lock(PhaseCursorComparator)
}

// CursorCondition returns the keyset condition for cursor in the given
// direction, locking the cursorComparator phase. It reports
// ErrMissingCursorComparator when no comparator was registered.
func (b *QueryBuilder) CursorCondition(cursor any, isAfter bool) (sqlf.Builder, error) {
	b.Lock(PhaseCursorComparator)
	if b.compiled.comparator == nil {
		return nil, fmt.Errorf("%w: cursor condition for %v", ErrMissingCursorComparator, cursor)
	}
	return b.compiled.comparator(cursor, isAfter), nil
}

// AddCursorCondition defers the comparator call until whereBound locks,
// then joins the condition to the lower bound for after-cursors and the
// upper bound for before-cursors. Bounds filter rows, so the flip flag
// plays no part here.
func (b *QueryBuilder) AddCursorCondition(cursor any, isAfter bool) *QueryBuilder {
	return b.BeforeLock(PhaseWhereBound, func() {
		cond, err := b.CursorCondition(cursor, isAfter)
		if err != nil {
			b.pushError(err)
			return
		}
		b.WhereBound(Value(cond), isAfter)
	})
}

// Flip reverses the emitted ordering; Build wraps the result so rows
// still return in registered order. Used to page from the end. Once set,
// the flag holds for the builder's lifetime.
func (b *QueryBuilder) Flip() *QueryBuilder {
	if err := b.checkOpen(PhaseFlip); err != nil {
		b.pushError(err)
		return b
	}
	b.data.flip = true
	return b
}

// Flipped reports whether the query is flipped, locking the flip phase.
func (b *QueryBuilder) Flipped() bool {
	b.Lock(PhaseFlip)
	return b.compiled.flip
}
