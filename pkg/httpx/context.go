package httpx

import "context"

type ctxKey string

// CtxKeyUserID holds the authenticated user's id. Set by the authentication
// middleware; consumed by per-user rate limiting.
const CtxKeyUserID ctxKey = "user_id"

// WithUserID returns a context carrying the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxKeyUserID, userID)
}

// UserIDFromContext returns the authenticated user id, or "".
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}
