package pgquery

import (
	"github.com/Graphile/graphql-build/internal/util"
	"github.com/qjebbs/go-sqlf/v4"
)

// Expr is a fragment for one of the builder's phases: either a value known
// at registration time, or a producer deferred until the owning phase
// locks. Deferred producers commonly close over the builder and read
// getters like TableAlias, which the finalization order keeps safe.
type Expr struct {
	value sqlf.Builder
	fn    func() sqlf.Builder
}

// Value returns an Expr wrapping an already-built fragment.
func Value(b sqlf.Builder) Expr {
	return Expr{value: b}
}

// Deferred returns an Expr whose fragment is produced by fn when the
// owning phase locks. fn runs exactly once.
func Deferred(fn func() sqlf.Builder) Expr {
	return Expr{fn: fn}
}

// resolve produces the final fragment. Only called during phase compile,
// so deferred producers run once.
func (e Expr) resolve() sqlf.Builder {
	if e.fn != nil {
		return e.fn()
	}
	return e.value
}

// resolveAll resolves exprs in registration order, dropping nil results.
func resolveAll(exprs []Expr) []sqlf.Builder {
	return util.Filter(
		util.Map(exprs, Expr.resolve),
		func(b sqlf.Builder) bool { return b != nil },
	)
}
