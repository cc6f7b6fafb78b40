package logging

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTraceIDFromContext(t *testing.T) {
	if got := TraceIDFromContext(context.Background()); got != nil {
		t.Fatalf("expected nil trace ID, got %v", got)
	}
	ctx := contextWithTraceID(context.Background(), "trace-abc")
	got := TraceIDFromContext(ctx)
	if got == nil || *got != "trace-abc" {
		t.Fatalf("expected trace-abc, got %v", got)
	}
}

func TestContextWithEmptyTraceIDIsNoop(t *testing.T) {
	ctx := context.Background()
	if got := contextWithTraceID(ctx, ""); got != ctx {
		t.Fatal("expected the same context for empty trace ID")
	}
}

func TestLoggerFromContextFallsBackToGlobal(t *testing.T) {
	if LoggerFromContext(context.Background()) != Logger() {
		t.Fatal("expected global logger without request logger")
	}
}

func TestWithLoggerOverridesGlobal(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	ctx := WithLogger(context.Background(), zap.New(core))

	LogDebug(ctx, "debug message")

	if recorded.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", recorded.Len())
	}
	if recorded.All()[0].Level != zapcore.DebugLevel {
		t.Fatalf("unexpected level: %s", recorded.All()[0].Level)
	}
}

func TestLogErrorAppendsErrorField(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)
	ctx := contextWithLogger(context.Background(), zap.New(core))

	LogError(ctx, "failed", errors.New("boom"), zap.String("foo", "bar"))

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["foo"] != "bar" {
		t.Fatalf("expected foo field, got %+v", fields)
	}
	if fields["error"] != "boom" {
		t.Fatalf("expected error field, got %+v", fields)
	}
}

func TestLogErrorWithoutError(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)
	ctx := contextWithLogger(context.Background(), zap.New(core))

	LogError(ctx, "failed", nil)

	if _, ok := recorded.All()[0].ContextMap()["error"]; ok {
		t.Fatal("expected no error field for nil error")
	}
}

func TestLogInfoAndWarn(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx := contextWithLogger(context.Background(), zap.New(core))

	LogInfo(ctx, "info message")
	LogWarn(ctx, "warn message")

	entries := recorded.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Level != zapcore.InfoLevel || entries[1].Level != zapcore.WarnLevel {
		t.Fatalf("unexpected levels: %s, %s", entries[0].Level, entries[1].Level)
	}
}
