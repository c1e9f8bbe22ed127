package log

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
)

// stackHandler decorates another slog handler: whenever a record carries an
// error attribute whose value is a cockroachdb/errors error, the captured
// stack trace is surfaced as a separate stacktrace attribute so log sinks
// can index it.
type stackHandler struct {
	next slog.Handler
}

// WrapByErrFmtHandler wraps a handler with stacktrace extraction.
func WrapByErrFmtHandler(next slog.Handler) slog.Handler {
	return &stackHandler{next: next}
}

func (h *stackHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.next.Enabled(ctx, l)
}

func (h *stackHandler) Handle(ctx context.Context, r slog.Record) error {
	var st string
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key != ErrAttrKey {
			return true
		}
		if err, ok := attr.Value.Any().(error); ok {
			st = stacktraceOf(err)
		}
		return false
	})
	if st != "" {
		r.AddAttrs(slog.String(StacktraceAttrKey, st))
	}
	return h.next.Handle(ctx, r)
}

func (h *stackHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &stackHandler{next: h.next.WithAttrs(attrs)}
}

func (h *stackHandler) WithGroup(g string) slog.Handler {
	return &stackHandler{next: h.next.WithGroup(g)}
}

// stacktraceOf returns the first safe detail recorded on the error, which is
// where cockroachdb/errors stores the formatted stack.
func stacktraceOf(err error) string {
	if details := errors.GetSafeDetails(err).SafeDetails; len(details) > 0 {
		return details[0]
	}
	return ""
}
