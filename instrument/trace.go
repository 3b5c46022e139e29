package instrument

import (
	"context"

	"github.com/google/uuid"

	"github.com/raymanaeron/liblogger"
)

type spanKey struct{}

// SpanID returns the id of the innermost span carried by ctx
func SpanID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(spanKey{}).(string)
	return id, ok
}

// TraceSpan logs the start and end of fn under a fresh span id. The id is
// stored in the context passed to fn; an enclosing span is reported as parent_id.
func TraceSpan(p Producer, name string, fn func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		id := uuid.NewString()
		kv := []any{"span_id", id}
		if parent, ok := SpanID(ctx); ok {
			kv = append(kv, "parent_id", parent)
		}
		spanCtx := liblogger.FormatContext(kv...)

		_ = p.Output(2, liblogger.LevelDebug, "span start: "+name, spanCtx)
		err := fn(context.WithValue(ctx, spanKey{}, id))
		if err != nil {
			_ = p.Output(2, liblogger.LevelDebug, "span end: "+name,
				liblogger.FormatContext(append(kv, "error", err)...))
			return err
		}
		_ = p.Output(2, liblogger.LevelDebug, "span end: "+name, spanCtx)
		return nil
	}
}
