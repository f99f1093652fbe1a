package instrument

import "context"

type correlationIDKey struct{}

// invalidCorrelationID marks a context value that exists but is not a string.
const invalidCorrelationID = "[invalid_chain_id]"

// SetCorrelationID stores a correlation ID in the context.
//
// The ID follows the request through handlers, use cases, outbound calls, and
// published messages so logs from one chain can be stitched together.
func SetCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// GetCorrelationID returns the correlation ID stored in the context.
//
// It returns an empty string when no ID is set.
func GetCorrelationID(ctx context.Context) string {
	val := ctx.Value(correlationIDKey{})
	if val == nil {
		return ""
	}

	id, ok := val.(string)
	if !ok {
		return invalidCorrelationID
	}

	return id
}
