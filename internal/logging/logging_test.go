package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewConfigLevel(t *testing.T) {
	if lvl := NewConfig(false).Level.Level(); lvl != zap.InfoLevel {
		t.Errorf("expected info level, got %s", lvl)
	}
	if lvl := NewConfig(true).Level.Level(); lvl != zap.DebugLevel {
		t.Errorf("expected debug level, got %s", lvl)
	}
}

func TestNew(t *testing.T) {
	logger, err := New("armkin", true)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !logger.Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Error("verbose logger should enable debug")
	}
}

func TestFieldsReachCore(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core).Named("armkin").Sugar()

	logger.Debugw("solved chain", "links", 3)

	entries := logs.FilterMessage("solved chain").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["links"]; got != int64(3) {
		t.Errorf("expected links=3, got %v", got)
	}
	if entries[0].LoggerName != "armkin" {
		t.Errorf("expected logger name armkin, got %s", entries[0].LoggerName)
	}
}

func TestNop(t *testing.T) {
	Nop().Infow("ignored", "k", "v")
}
