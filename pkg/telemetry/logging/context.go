package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// EvaluationIDKey is the context key for decision identifiers.
	EvaluationIDKey contextKey = "evaluation_id"

	// BatchIDKey is the context key for batch evaluation identifiers.
	BatchIDKey contextKey = "batch_id"

	// ProtocolKey is the context key for protocol names.
	ProtocolKey contextKey = "protocol"
)

// WithEvaluationID adds a decision ID to the context.
func WithEvaluationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, EvaluationIDKey, id)
}

// GetEvaluationID retrieves the decision ID from the context.
func GetEvaluationID(ctx context.Context) string {
	if id, ok := ctx.Value(EvaluationIDKey).(string); ok {
		return id
	}
	return ""
}

// WithBatchID adds a batch ID to the context.
func WithBatchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, BatchIDKey, id)
}

// GetBatchID retrieves the batch ID from the context.
func GetBatchID(ctx context.Context) string {
	if id, ok := ctx.Value(BatchIDKey).(string); ok {
		return id
	}
	return ""
}

// WithProtocol adds a protocol name to the context.
func WithProtocol(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, ProtocolKey, name)
}

// GetProtocol retrieves the protocol name from the context.
func GetProtocol(ctx context.Context) string {
	if name, ok := ctx.Value(ProtocolKey).(string); ok {
		return name
	}
	return ""
}

// extractContextFields returns the context's fields as key-value pairs
// suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}

	var fields []any
	if id := GetBatchID(ctx); id != "" {
		fields = append(fields, string(BatchIDKey), id)
	}
	if id := GetEvaluationID(ctx); id != "" {
		fields = append(fields, string(EvaluationIDKey), id)
	}
	if name := GetProtocol(ctx); name != "" {
		fields = append(fields, string(ProtocolKey), name)
	}
	return fields
}
