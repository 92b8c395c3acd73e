package log

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

// WithLogger returns a child context carrying logger. Request middleware
// uses this to attach per-request fields such as the request id.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// Ctx returns the logger carried by ctx, falling back to the global
// logger when the context carries none.
func Ctx(ctx context.Context) zerolog.Logger {
	l, ok := ctx.Value(ctxKey{}).(zerolog.Logger)
	if !ok {
		return L()
	}
	return l
}
