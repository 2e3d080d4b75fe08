package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestContextHook_AddsRefFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Hook(ContextHook{})

	ctx := WithSourceID(context.Background(), "src-1")
	ctx = WithThreadID(ctx, "thr-2")

	logger.Info().Ctx(ctx).Msg("fetch")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log: %v", err)
	}

	if entry["source_id"] != "src-1" {
		t.Errorf("source_id = %v, want src-1", entry["source_id"])
	}
	if entry["thread_id"] != "thr-2" {
		t.Errorf("thread_id = %v, want thr-2", entry["thread_id"])
	}
}

func TestContextHook_NoContextNoFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Hook(ContextHook{})

	logger.Info().Msg("fetch")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log: %v", err)
	}

	if _, ok := entry["source_id"]; ok {
		t.Error("unexpected source_id on event without context")
	}
}
