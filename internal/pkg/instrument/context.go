package instrument

import "context"

type correlationIDKey struct{}

// SetCorrelationID stores the request correlation ID in ctx.
func SetCorrelationID(ctx context.Context, cID string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, cID)
}

// GetCorrelationID returns the correlation ID stored in ctx, or an empty string.
func GetCorrelationID(ctx context.Context) string {
	cID, _ := ctx.Value(correlationIDKey{}).(string)
	return cID
}
