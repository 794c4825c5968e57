package log

import (
	"context"
	"testing"
)

func TestWithFields(t *testing.T) {
	ctx := WithFields(context.Background(), "call_id", "C1")
	ctx = WithFields(ctx, "session_id", "S1")

	got := fieldsFrom(ctx)
	if len(got) != 4 {
		t.Fatalf("expected 4 field entries, got %d", len(got))
	}
	if got[0] != "call_id" || got[3] != "S1" {
		t.Errorf("unexpected fields: %v", got)
	}

	if WithFields(ctx) != ctx {
		t.Errorf("expected WithFields without args to return the same context")
	}
}

func TestWithFields_RepeatedKeyLoggedOnce(t *testing.T) {
	ctx := WithFields(context.Background(), "call_id", "C1", "session_id", "S1")
	ctx = WithFields(ctx, "session_id", "S1", "turn", 2)
	ctx = WithFields(ctx, "call_id", "C2")

	got := fieldsFrom(ctx)
	want := []any{"call_id", "C2", "session_id", "S1", "turn", 2}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	parent := WithFields(context.Background(), "session_id", "S1")
	_ = WithFields(parent, "session_id", "S9")
	if fieldsFrom(parent)[1] != "S1" {
		t.Errorf("expected parent context to keep its value, got %v", fieldsFrom(parent)[1])
	}
}

func TestInit(t *testing.T) {
	for _, cfg := range []ZapConfig{
		{Level: "debug", Mode: ModeDevelopment, Encoding: EncodingConsole, ColorEnabled: true},
		{Level: "info", Mode: ModeProduction, Encoding: EncodingJSON},
		{Level: "not-a-level", Mode: ModeProduction, Encoding: EncodingJSON},
	} {
		l := Init(cfg)
		if l == nil {
			t.Fatalf("Init(%+v) returned nil", cfg)
		}
		l.Infof(WithFields(context.Background(), "k", "v"), "hello %s", "world")
	}
}
