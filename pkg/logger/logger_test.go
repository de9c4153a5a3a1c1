package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Levels(t *testing.T) {
	l, err := New("production", "warn")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if l.SugaredLogger.Desugar().Core().Enabled(zap.InfoLevel) {
		t.Fatalf("info should be disabled at warn level")
	}
	if _, err := New("dev", "loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestWith_CarriesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}
	l.With("run_id", "abc").Info("section done", "section", "race")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["run_id"] != "abc" || fields["section"] != "race" {
		t.Fatalf("unexpected fields %v", fields)
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("ignored")
	l.Sync()
}
