package pgquery

import (
	"github.com/Graphile/graphql-build/internal/util"
	"github.com/qjebbs/go-sqlf/v4"
)

// Table is a table name with an optional alias. It is the vocabulary for
// phrasing column references in expressions fed to the builder.
type Table struct {
	Name, Alias string
}

// NewTable returns a new Table.
//
// Table builds only the applied name, since it's most often used to build
// column references, e.g.:
//
//	t := NewTable("users", "u")
//	sqlf.F("?.id", t)  // u.id
//
// To build fragments like `users AS u`, use t.TableAs().
func NewTable(name string, alias ...string) Table {
	aliasName := ""
	if len(alias) > 0 {
		aliasName = alias[0]
	}
	return Table{
		Name:  name,
		Alias: aliasName,
	}
}

var _ sqlf.Builder = Table{}

// Build implements sqlf.Builder.
func (t Table) Build(ctx *sqlf.Context) (query string, err error) {
	return t.AppliedName(), nil
}

// IsZero reports whether the table is zero.
func (t Table) IsZero() bool {
	return t.Name == "" && t.Alias == ""
}

// WithAlias returns a new Table with updated alias.
func (t Table) WithAlias(alias string) Table {
	return Table{
		Name:  t.Name,
		Alias: alias,
	}
}

// AppliedName returns the alias if it is not empty, otherwise the name.
func (t Table) AppliedName() string {
	if t.Alias != "" {
		return t.Alias
	}
	return t.Name
}

// Column returns a column of the table, with the table prefix applied,
// e.g.: "id" -> "u.id".
func (t Table) Column(name string) sqlf.Builder {
	return sqlf.F(t.AppliedName() + "." + name)
}

// Columns returns columns of the table from names.
//
//	t := NewTable("users", "u")
//	t.Columns("id", "name")   // "u.id", "u.name"
func (t Table) Columns(names ...string) []sqlf.Builder {
	return util.Map(names, t.Column)
}

// AllColumns returns all columns of the table, e.g.: "u.*".
func (t Table) AllColumns() sqlf.Builder {
	return sqlf.F(t.AppliedName() + ".*")
}

// TableAs builds fragments like `users AS u`, for join clauses.
func (t Table) TableAs() sqlf.Builder {
	if t.Alias == "" {
		return sqlf.F(t.Name)
	}
	return sqlf.F(t.Name + " AS " + t.Alias)
}
