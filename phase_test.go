package pgquery_test

import (
	"errors"
	"strings"
	"testing"

	pgquery "github.com/Graphile/graphql-build"
	"github.com/qjebbs/go-sqlf/v4"
)

func TestLockIsIdempotent(t *testing.T) {
	calls := 0
	q := pgquery.NewQueryBuilder().
		From(pgquery.Value(sqlf.F("users")), "u")
	q.BeforeLock(pgquery.PhaseOrderBy, func() {
		calls++
	})
	q.Lock(pgquery.PhaseOrderBy).
		Lock(pgquery.PhaseOrderBy).
		Lock(pgquery.PhaseOrderBy)
	if calls != 1 {
		t.Fatalf("pre-lock callbacks ran %d times, want 1", calls)
	}
	if _, _, err := q.BuildQuery(sqlf.BindStyleDollar); err != nil {
		t.Fatal(err)
	}
	// The finalize walk reaches orderBy again; still no rerun.
	if calls != 1 {
		t.Fatalf("pre-lock callbacks ran %d times after build, want 1", calls)
	}
}

func TestMutateAfterLock(t *testing.T) {
	q := pgquery.NewQueryBuilder().
		From(pgquery.Value(sqlf.F("users")), "u").
		Lock(pgquery.PhaseWhere).
		Where(pgquery.Value(sqlf.F("1 = 2")))
	_, _, err := q.BuildQuery(sqlf.BindStyleDollar)
	if !errors.Is(err, pgquery.ErrDoubleLock) {
		t.Errorf("got error %v, want ErrDoubleLock", err)
	}
	if err == nil || !strings.Contains(err.Error(), "where") {
		t.Errorf("error %v does not name the phase", err)
	}
}

func TestMutateAfterFinalize(t *testing.T) {
	// The finalize walk locks every phase, so the mutator trips the
	// phase lock, same as mutating after a direct Lock.
	q := pgquery.NewQueryBuilder().
		From(pgquery.Value(sqlf.F("users")), "u").
		Finalize().
		Limit(3)
	_, _, err := q.BuildQuery(sqlf.BindStyleDollar)
	if !errors.Is(err, pgquery.ErrDoubleLock) {
		t.Errorf("got error %v, want ErrDoubleLock", err)
	}
	if err == nil || !strings.Contains(err.Error(), "limit") {
		t.Errorf("error %v does not name the phase", err)
	}
}

func TestUnknownPhase(t *testing.T) {
	q := pgquery.NewQueryBuilder().
		From(pgquery.Value(sqlf.F("users")), "u").
		Lock(pgquery.Phase(99))
	_, _, err := q.BuildQuery(sqlf.BindStyleDollar)
	if !errors.Is(err, pgquery.ErrUnknownPhase) {
		t.Errorf("got error %v, want ErrUnknownPhase", err)
	}
}

func TestBeforeLockMutatesOwnPhase(t *testing.T) {
	u := pgquery.NewTable("users", "u")
	q := pgquery.NewQueryBuilder().
		From(pgquery.Value(sqlf.F("users")), "u").
		Select(pgquery.Value(u.Column("id")), "id")
	q.BeforeLock(pgquery.PhaseSelect, func() {
		q.Select(pgquery.Value(u.Column("name")), "name")
	})
	gotQuery, _, err := q.BuildQuery(sqlf.BindStyleDollar)
	if err != nil {
		t.Fatal(err)
	}
	wantQuery := "SELECT u.id AS id, u.name AS name FROM users AS u WHERE (1 = 1) AND (1 = 1)"
	if wantQuery != gotQuery {
		t.Errorf("got:\n%s\nwant:\n%s", gotQuery, wantQuery)
	}
}

func TestBeforeLockRunsInRegistrationOrder(t *testing.T) {
	var got []string
	q := pgquery.NewQueryBuilder().
		From(pgquery.Value(sqlf.F("users")), "u")
	q.BeforeLock(pgquery.PhaseLimit, func() {
		got = append(got, "first")
		// hooks registered while draining still run before the lock
		q.BeforeLock(pgquery.PhaseLimit, func() {
			got = append(got, "nested")
		})
	})
	q.BeforeLock(pgquery.PhaseLimit, func() {
		got = append(got, "second")
	})
	q.Lock(pgquery.PhaseLimit)
	want := []string{"first", "second", "nested"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestBeforeLockOnLockedPhase(t *testing.T) {
	q := pgquery.NewQueryBuilder().
		From(pgquery.Value(sqlf.F("users")), "u").
		Lock(pgquery.PhaseLimit).
		BeforeLock(pgquery.PhaseLimit, func() {})
	_, _, err := q.BuildQuery(sqlf.BindStyleDollar)
	if !errors.Is(err, pgquery.ErrDoubleLock) {
		t.Errorf("got error %v, want ErrDoubleLock", err)
	}
}

func TestLockingWhereLocksWhereBound(t *testing.T) {
	q := pgquery.NewQueryBuilder().
		From(pgquery.Value(sqlf.F("users")), "u").
		Lock(pgquery.PhaseWhere).
		WhereBound(pgquery.Value(sqlf.F("1 = 1")), true)
	_, _, err := q.BuildQuery(sqlf.BindStyleDollar)
	if !errors.Is(err, pgquery.ErrDoubleLock) {
		t.Errorf("got error %v, want ErrDoubleLock", err)
	}
}

func TestDebugLockSite(t *testing.T) {
	q := pgquery.NewQueryBuilder().Debug("test")
	q.From(pgquery.Value(sqlf.F("users")), "u").
		Lock(pgquery.PhaseLimit).
		Limit(3)
	_, _, err := q.BuildQuery(sqlf.BindStyleDollar)
	if !errors.Is(err, pgquery.ErrDoubleLock) {
		t.Fatalf("got error %v, want ErrDoubleLock", err)
	}
	if !strings.Contains(err.Error(), "locked at") {
		t.Errorf("error %v does not carry the lock site", err)
	}
	if !strings.Contains(err.Error(), "phase_test.go") {
		t.Errorf("error %v does not point at the locking file", err)
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase pgquery.Phase
		want  string
	}{
		{pgquery.PhaseCursorPrefix, "cursorPrefix"},
		{pgquery.PhaseSelect, "select"},
		{pgquery.PhaseSelectCursor, "selectCursor"},
		{pgquery.PhaseFrom, "from"},
		{pgquery.PhaseJoin, "join"},
		{pgquery.PhaseWhere, "where"},
		{pgquery.PhaseWhereBound, "whereBound"},
		{pgquery.PhaseOrderBy, "orderBy"},
		{pgquery.PhaseOrderIsUnique, "orderIsUnique"},
		{pgquery.PhaseLimit, "limit"},
		{pgquery.PhaseOffset, "offset"},
		{pgquery.PhaseFlip, "flip"},
		{pgquery.PhaseCursorComparator, "cursorComparator"},
		{pgquery.Phase(99), "phase(99)"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(tt.phase), got, tt.want)
		}
	}
}
