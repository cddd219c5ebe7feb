// Package ctxlog carries the run logger through a context.Context, so the
// loaders and the control-file writer log with the attributes of the run
// that called them.
package ctxlog

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// discard serves callers that never installed a logger, such as library
// users decoding a single file.
var discard = slog.New(slog.DiscardHandler)

// Into returns a copy of ctx holding logger. A nil logger leaves ctx as is.
func Into(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, logger)
}

// From returns the logger held by ctx, or one that drops every record.
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}
	return discard
}

// ForFile returns the logger of ctx scoped to one input file.
func ForFile(ctx context.Context, path string) *slog.Logger {
	return From(ctx).With("file", path)
}
