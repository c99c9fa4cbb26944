package exec

import (
	"context"
	"log/slog"

	"github.com/qjebbs/go-sqlf/v4"
)

type options struct {
	style  sqlf.BindStyle
	logger *slog.Logger
}

// Option adjusts how queries run.
type Option func(*options)

// WithBindStyle sets the bind arg style. The default is dollar
// placeholders, matching PostgreSQL.
func WithBindStyle(style sqlf.BindStyle) Option {
	return func(o *options) { o.style = style }
}

// WithLogger logs each query at debug level before it runs.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func newOptions(opts ...Option) *options {
	o := &options{style: sqlf.BindStyleDollar}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) log(ctx context.Context, query string, args []any) {
	if o.logger == nil {
		return
	}
	o.logger.DebugContext(ctx, "running query", "query", query, "args", args)
}
