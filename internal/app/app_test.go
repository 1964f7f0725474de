package app

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.HTTPAddr == "" {
		t.Error("HTTPAddr should not be empty")
	}
	if cfg.MetricsAddr == "" {
		t.Error("MetricsAddr should not be empty")
	}
	if cfg.PostgresDSN != "" {
		t.Error("PostgresDSN should be empty by default")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	cfg := Config{HTTPAddr: "127.0.0.1:0", MetricsAddr: "127.0.0.1:0"}

	done := make(chan error, 1)
	go func() { done <- Run(ctx, cfg) }()

	// Даём серверам подняться, затем просим остановиться.
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
