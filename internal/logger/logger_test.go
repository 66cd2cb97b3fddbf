package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestWithRequestIDAddsAttribute(t *testing.T) {
	var buf bytes.Buffer
	defaultLogger = slog.New(newHandler(&buf, Config{Level: "info", Format: "json"}))
	t.Cleanup(func() { defaultLogger = nil })

	ctx := ContextWithRequestID(context.Background(), "req-42")
	InfoContext(ctx, "task created", "task_id", 7)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v; line=%s", err, buf.String())
	}
	if entry["request_id"] != "req-42" {
		t.Errorf("request_id = %v, want req-42", entry["request_id"])
	}
	if entry["msg"] != "task created" {
		t.Errorf("msg = %v", entry["msg"])
	}
}

func TestGetRequestIDEmpty(t *testing.T) {
	if id := GetRequestID(context.Background()); id != "" {
		t.Errorf("expected empty request id, got %q", id)
	}
}
