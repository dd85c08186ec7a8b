package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestLogContext_AccumulatesFields(t *testing.T) {
	lc := NewLogContext()
	ctx := WithLogContext(context.Background(), lc)

	AddToContext(ctx, zap.String(FieldAppName, "weather"))
	AddToContext(ctx, zap.Int(FieldRecordCount, 3), zap.Bool(FieldSuccess, true))

	fields := GetLogContext(ctx).Fields()
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	if fields[0].Key != FieldAppName || fields[0].String != "weather" {
		t.Fatalf("unexpected first field %+v", fields[0])
	}
}

func TestLogContext_MissingIsSafe(t *testing.T) {
	ctx := context.Background()
	if GetLogContext(ctx) != nil {
		t.Fatal("expected no log context")
	}
	// must not panic
	AddToContext(ctx, zap.String("k", "v"))

	var lc *LogContext
	lc.AddField(zap.String("k", "v"))
	if lc.Fields() != nil {
		t.Fatal("expected nil fields from nil context")
	}
}

func TestCorrelationID(t *testing.T) {
	if got := GetCorrelationID(context.Background()); got != "" {
		t.Fatalf("expected empty correlation id, got %q", got)
	}
	ctx := WithCorrelationID(context.Background(), "pull-1")
	if got := GetCorrelationID(ctx); got != "pull-1" {
		t.Fatalf("expected pull-1, got %q", got)
	}
}

func TestNewLogger_RejectsUnknownLevel(t *testing.T) {
	if _, err := NewLogger("test", "json", "loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	l, err := NewLogger("test", "console", "debug")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Debug("hello", String(FieldAppName, "weather"))
}
