package pgquery

import (
	"fmt"

	"github.com/Graphile/graphql-build/internal/util"
	"github.com/qjebbs/go-sqlf/v4"
)

// buildOptions adjust the final assembly of a single Build call.
type buildOptions struct {
	asJSON          bool
	asJSONAggregate bool
	onlyJSONField   bool
	nullCase        bool
}

func (o *buildOptions) json() bool {
	return o.asJSON || o.asJSONAggregate
}

// BuildOption adjusts how Build shapes the final query.
type BuildOption func(*buildOptions)

// WithJSON emits each row as a single JSON object column named "object".
func WithJSON() BuildOption {
	return func(o *buildOptions) { o.asJSON = true }
}

// WithJSONAggregate emits the whole result as one JSON array value. An
// empty result builds '[]', never null.
func WithJSONAggregate() BuildOption {
	return func(o *buildOptions) { o.asJSONAggregate = true }
}

// WithOnlyJSONField builds just the JSON row expression, for embedding
// into an outer query's select list.
func WithOnlyJSONField() BuildOption {
	return func(o *buildOptions) { o.onlyJSONField = true }
}

// WithNullCase guards the JSON shape and the WHERE clause for rows that
// may be entirely null, as produced by outer joins.
func WithNullCase() BuildOption {
	return func(o *buildOptions) { o.nullCase = true }
}

func newBuildOptions(opts ...BuildOption) *buildOptions {
	o := new(buildOptions)
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Build finalizes the builder and assembles the query. The builder
// builds once; the returned fragment is settled and may be rendered or
// embedded any number of times.
func (b *QueryBuilder) Build(opts ...BuildOption) (sqlf.Builder, error) {
	if b.built {
		return nil, fmt.Errorf("%w: Build called twice", ErrAlreadyFinalized)
	}
	b.built = true
	b.finalizeAll()
	if b.compiled.from == nil {
		b.pushError(fmt.Errorf("%w: building query", ErrMissingFrom))
	}
	if err := b.anyError(); err != nil {
		return nil, err
	}
	o := newBuildOptions(opts...)
	if o.onlyJSONField {
		return b.jsonRowShape(o.nullCase), nil
	}
	query := b.assemble(o)
	if b.compiled.flip {
		alias := b.nextAlias()
		query = sqlf.F(
			"WITH "+alias+" AS (?) SELECT * FROM "+alias+
				" ORDER BY (row_number() OVER (PARTITION BY 1)) DESC",
			query,
		)
	}
	if o.asJSONAggregate {
		alias := b.nextAlias()
		query = sqlf.F(
			"SELECT coalesce(json_agg("+alias+".object), '[]'::json) FROM (?) AS "+alias,
			query,
		)
	}
	return query, nil
}

// BuildQuery builds the query and returns it with its bind args. In
// debug mode the interpolated query is printed to stdout.
func (b *QueryBuilder) BuildQuery(style sqlf.BindStyle, opts ...BuildOption) (query string, args []any, err error) {
	built, err := b.Build(opts...)
	if err != nil {
		return "", nil, err
	}
	ctx := sqlf.NewContext(style)
	query, err = built.Build(ctx)
	if err != nil {
		return "", nil, err
	}
	args = ctx.Args()
	b.printIfDebug(query, args)
	return query, args, nil
}

// assemble joins the core clauses. WHERE is always emitted; ORDER BY,
// LIMIT and OFFSET only when populated.
func (b *QueryBuilder) assemble(o *buildOptions) sqlf.Builder {
	parts := make([]sqlf.Builder, 0, 8)
	parts = append(parts, b.selectClause(o))
	parts = append(parts, sqlf.F("FROM ? AS "+b.compiled.fromAlias, b.compiled.from))
	if len(b.compiled.joins) > 0 {
		parts = append(parts, sqlf.Join(" ", b.compiled.joins...))
	}
	parts = append(parts, sqlf.Prefix("WHERE", b.whereCondition(o.nullCase)))
	if order := b.orderByClause(); order != nil {
		parts = append(parts, order)
	}
	if l := b.compiled.limit; l != nil && *l >= 0 {
		parts = append(parts, sqlf.F(fmt.Sprintf("LIMIT %d", *l)))
	}
	if ofs := b.compiled.offset; ofs != nil && *ofs >= 0 {
		parts = append(parts, sqlf.F(fmt.Sprintf("OFFSET %d", *ofs)))
	}
	return sqlf.Join(" ", parts...)
}

func (b *QueryBuilder) selectClause(o *buildOptions) sqlf.Builder {
	if o.json() {
		return sqlf.F("SELECT ? AS object", b.jsonRowShape(o.nullCase))
	}
	// SELECT with no fields is legal and keeps the clause shape stable.
	if len(b.compiled.selects) == 0 {
		return sqlf.F("SELECT")
	}
	fields := util.Map(b.compiled.selects, func(s selectField) sqlf.Builder {
		return sqlf.F("? AS "+s.alias, s.expr)
	})
	return sqlf.Prefix("SELECT", sqlf.Join(", ", fields...))
}

// jsonRowShape compiles the row as a JSON object: explicit selections
// become json_build_object pairs keyed by their alias, otherwise the
// whole row goes through to_json. nullCase guards the shape for rows an
// outer join may have nulled out.
func (b *QueryBuilder) jsonRowShape(nullCase bool) sqlf.Builder {
	alias := b.compiled.fromAlias
	var shape sqlf.Builder
	if len(b.compiled.selects) == 0 {
		shape = sqlf.F("to_json(" + alias + ".*)")
	} else {
		pairs := util.Map(b.compiled.selects, func(s selectField) sqlf.Builder {
			return sqlf.F("'"+s.alias+"'::text, ?", s.expr)
		})
		shape = sqlf.F("json_build_object(?)", sqlf.Join(", ", pairs...))
	}
	if nullCase {
		shape = sqlf.F("(CASE WHEN "+alias+" IS NULL THEN NULL ELSE ? END)", shape)
	}
	return shape
}
