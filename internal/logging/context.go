package logging

import "context"

type contextKey string

const ctxKeySessionID contextKey = "session_id"

// ContextWithSessionID adds the page-session id to ctx for logging.
func ContextWithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeySessionID, id)
}

// SessionIDFromContext extracts the page-session id from ctx.
func SessionIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeySessionID).(string); ok {
		return v
	}
	return ""
}
