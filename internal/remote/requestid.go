package remote

import "context"

type requestIDKey struct{}

// WithRequestID returns a context carrying the id of the inbound request, so
// outgoing calls can be correlated with it in logs.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the request id stored in ctx, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
