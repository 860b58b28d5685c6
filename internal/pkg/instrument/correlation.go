package instrument

import "context"

type correlationIDKey struct{}

// invalidCorrelationID marks a context value stored under the correlation
// key with the wrong type.
const invalidCorrelationID = "[invalid_correlation_id]"

// SetCorrelationID returns a context carrying id. The ID follows a request
// from the HTTP edge through publishes and consumers so log lines from one
// flow can be stitched together.
func SetCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// GetCorrelationID returns the correlation ID from ctx, or an empty string
// when none was set.
func GetCorrelationID(ctx context.Context) string {
	v := ctx.Value(correlationIDKey{})
	if v == nil {
		return ""
	}

	id, ok := v.(string)
	if !ok {
		return invalidCorrelationID
	}
	return id
}
