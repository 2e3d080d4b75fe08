package logging

import "context"

type contextKey string

const (
	sourceIDKey contextKey = "source_id"
	threadIDKey contextKey = "thread_id"
)

// WithSourceID adds a transcript source id to the context.
func WithSourceID(ctx context.Context, sourceID string) context.Context {
	return context.WithValue(ctx, sourceIDKey, sourceID)
}

// WithThreadID adds a thread id to the context.
func WithThreadID(ctx context.Context, threadID string) context.Context {
	return context.WithValue(ctx, threadIDKey, threadID)
}

// GetSourceID retrieves the transcript source id from the context.
// Returns empty string if not present.
func GetSourceID(ctx context.Context) string {
	if id, ok := ctx.Value(sourceIDKey).(string); ok {
		return id
	}
	return ""
}

// GetThreadID retrieves the thread id from the context.
// Returns empty string if not present.
func GetThreadID(ctx context.Context) string {
	if id, ok := ctx.Value(threadIDKey).(string); ok {
		return id
	}
	return ""
}
