package botshared

import "context"

// ContextKey represent Key of all context
type ContextKey string

const (
	// ContextKeyThreadID context key, active conversation thread
	ContextKeyThreadID ContextKey = "threadID"

	// ContextKeyClientMessageID context key, client generated id of the outgoing message
	ContextKeyClientMessageID ContextKey = "clientMessageID"

	// ContextKeySkipTracer context key
	ContextKeySkipTracer ContextKey = "skipTracer"
)

// SetToContext will set context with specific key
func SetToContext(ctx context.Context, key ContextKey, value interface{}) context.Context {
	return context.WithValue(ctx, key, value)
}

// GetValueFromContext will get context with specific key
func GetValueFromContext(ctx context.Context, key ContextKey) interface{} {
	return ctx.Value(key)
}

// ThreadIDFromContext return active thread id, empty when not set
func ThreadIDFromContext(ctx context.Context) string {
	id, _ := GetValueFromContext(ctx, ContextKeyThreadID).(string)
	return id
}
