package pgquery

import (
	"errors"
)

// Contract violations reported by the builder. All of them indicate a bug
// in the calling code, so they fail the build instead of being retried.
var (
	// ErrDoubleLock is reported when a phase is mutated after it locked.
	ErrDoubleLock = errors.New("phase already locked")
	// ErrMissingFrom is reported when a query is assembled, or the table
	// alias is requested, without a source relation.
	ErrMissingFrom = errors.New("no from source")
	// ErrMissingCursorComparator is reported when a cursor condition is
	// requested but no comparator was registered.
	ErrMissingCursorComparator = errors.New("no cursor comparator")
	// ErrUnknownPhase is reported for phase values outside the enumeration.
	ErrUnknownPhase = errors.New("unknown phase")
	// ErrAlreadyFinalized is reported when the builder builds twice.
	// Mutating a finalized builder reports ErrDoubleLock instead, since
	// the finalize walk locks every phase.
	ErrAlreadyFinalized = errors.New("builder already finalized")
)

func (b *QueryBuilder) pushError(err error) {
	b.errors = append(b.errors, err)
}

func (b *QueryBuilder) anyError() error {
	if len(b.errors) == 0 {
		return nil
	}
	return errors.Join(b.errors...)
}
