package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcherReloadsValidConfig(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := writeConfig(t, "field:\n  maxParticles: 10\n")
	w, err := NewWatcher(path, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(path, []byte("field:\n  maxParticles: 42\n"), 0644))

	select {
	case cfg := <-w.Updates():
		assert.Equal(t, 42, cfg.Field.MaxParticles)
	case <-time.After(5 * time.Second):
		t.Fatal("no config update received")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatcherRejectsInvalidConfig(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := writeConfig(t, "field:\n  maxParticles: 10\n")
	w, err := NewWatcher(path, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(path, []byte("field:\n  damping: 7\n"), 0644))

	select {
	case cfg := <-w.Updates():
		t.Fatalf("invalid config should not be published, got %+v", cfg.Field)
	case <-time.After(500 * time.Millisecond):
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := writeConfig(t, "field:\n  maxParticles: 10\n")
	w, err := NewWatcher(path, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	other := filepath.Join(filepath.Dir(path), "other.yaml")
	require.NoError(t, os.WriteFile(other, []byte("field:\n  maxParticles: 3\n"), 0644))

	select {
	case <-w.Updates():
		t.Fatal("unrelated file triggered a reload")
	case <-time.After(500 * time.Millisecond):
	}

	cancel()
	require.NoError(t, <-done)
}
