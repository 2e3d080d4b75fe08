package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts source_id and thread_id from context and adds them
// to log events, so every fetch log line names the transcript it was for.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if sourceID := GetSourceID(ctx); sourceID != "" {
		e.Str("source_id", sourceID)
	}

	if threadID := GetThreadID(ctx); threadID != "" {
		e.Str("thread_id", threadID)
	}
}
