// Package pgquery assembles PostgreSQL SELECT queries in independently
// locked phases. It provides,
//   - a phase lock manager with pre-lock hooks for cross-phase wiring.
//   - deferred expressions, resolved exactly once when their phase locks.
//   - cursor pagination primitives: keyset bounds, order flipping.
//   - JSON row and aggregate shaping for nested result trees.
//
// A builder serves exactly one SELECT and builds once. Subqueries get
// builders of their own; the built fragments embed through go-sqlf.
package pgquery
