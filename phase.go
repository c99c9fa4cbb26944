package pgquery

import (
	"fmt"
)

// Phase identifies one independently lockable stage of the query under
// assembly. A phase moves from open to locked exactly once; a locked
// phase rejects further mutation.
type Phase int

// The assembly phases.
const (
	PhaseCursorPrefix Phase = iota
	PhaseSelect
	PhaseSelectCursor
	PhaseFrom
	PhaseJoin
	PhaseWhere
	PhaseWhereBound
	PhaseOrderBy
	PhaseOrderIsUnique
	PhaseLimit
	PhaseOffset
	PhaseFlip
	PhaseCursorComparator

	phaseCount
)

var phaseNames = []string{
	"cursorPrefix",
	"select",
	"selectCursor",
	"from",
	"join",
	"where",
	"whereBound",
	"orderBy",
	"orderIsUnique",
	"limit",
	"offset",
	"flip",
	"cursorComparator",
}

// String implements fmt.Stringer.
func (p Phase) String() string {
	if !p.valid() {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

func (p Phase) valid() bool {
	return p >= 0 && p < phaseCount
}

// lockOrder is the authoritative finalization order. Getters called from
// deferred expressions and hooks rely on earlier phases being settled, so
// this order is part of the contract.
var lockOrder = []Phase{
	PhaseFrom,
	PhaseFlip,
	PhaseJoin,
	PhaseOffset,
	PhaseLimit,
	PhaseOrderBy,
	PhaseOrderIsUnique,
	PhaseCursorComparator,
	PhaseWhere,
	PhaseSelectCursor,
	PhaseSelect,
}

type lockState struct {
	locked bool
	site   string // first lock site, recorded in debug mode
}

// BeforeLock registers fn to run immediately before p locks, while p is
// still open. Hooks run in registration order and may mutate the phase
// they guard, including appending further hooks for it.
func (b *QueryBuilder) BeforeLock(p Phase, fn func()) *QueryBuilder {
	if err := b.checkOpen(p); err != nil {
		b.pushError(err)
		return b
	}
	b.hooks[p] = append(b.hooks[p], fn)
	return b
}

// Lock closes p for further mutation: pending BeforeLock hooks run first,
// then the phase's deferred expressions resolve in registration order.
// Locking a locked phase is a no-op.
func (b *QueryBuilder) Lock(p Phase) *QueryBuilder {
	if err := b.lock(p); err != nil {
		b.pushError(err)
	}
	return b
}

func (b *QueryBuilder) lock(p Phase) error {
	if !p.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownPhase, int(p))
	}
	if b.locks[p].locked {
		return nil
	}
	// Hooks may register more hooks for the same phase; drain until done.
	for len(b.hooks[p]) > 0 {
		fns := b.hooks[p]
		b.hooks[p] = nil
		for _, fn := range fns {
			fn()
		}
	}
	b.locks[p].locked = true
	if b.debug {
		b.locks[p].site = lockSite()
	}
	b.compile(p)
	return nil
}

// checkOpen guards every mutator. A finalized builder reports the phase
// lock, since the finalize walk locked it.
func (b *QueryBuilder) checkOpen(p Phase) error {
	if !p.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownPhase, int(p))
	}
	if b.locks[p].locked {
		if site := b.locks[p].site; site != "" {
			return fmt.Errorf("%w: %s (locked at %s)", ErrDoubleLock, p, site)
		}
		return fmt.Errorf("%w: %s", ErrDoubleLock, p)
	}
	if b.finalized {
		return fmt.Errorf("%w: mutating %s", ErrAlreadyFinalized, p)
	}
	return nil
}

// Finalize locks every phase in the authoritative order and seals the
// builder. Build calls it implicitly; calling it first is harmless since
// locks are idempotent.
func (b *QueryBuilder) Finalize() *QueryBuilder {
	b.finalizeAll()
	return b
}

func (b *QueryBuilder) finalizeAll() {
	for _, p := range lockOrder {
		if err := b.lock(p); err != nil {
			b.pushError(err)
		}
	}
	// The hooks wired in NewQueryBuilder cover the remaining phases, but
	// sweep anyway so nothing stays open.
	for p := Phase(0); p < phaseCount; p++ {
		if err := b.lock(p); err != nil {
			b.pushError(err)
		}
	}
	b.finalized = true
}
