package reqctx

import "context"

type ctxKey string

const (
	keyRID       ctxKey = "rid"
	keyMessageID ctxKey = "message_id"
)

// WithRID stores the request id used to correlate log lines.
func WithRID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, keyRID, rid)
}

// RID returns the request id if present.
func RID(ctx context.Context) string {
	v, _ := ctx.Value(keyRID).(string)
	return v
}

// WithMessageID stores the message being operated on.
func WithMessageID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, keyMessageID, id)
}

// MessageID returns the message id if present.
func MessageID(ctx context.Context) int64 {
	v, _ := ctx.Value(keyMessageID).(int64)
	return v
}
