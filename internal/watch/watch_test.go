package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/how2use/internal/foundation/errors"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestShouldIgnore(t *testing.T) {
	tests := map[string]bool{
		"YOLO.txt":           false,
		"img/sample.png":     false,
		".hidden":            true,
		"notes.txt~":         true,
		".YOLO.txt.swp":      true,
		"YOLO.txt.swx":       true,
		"#YOLO.txt#":         true,
		"/tmp/dir/Thumbs.db": true,
	}
	for path, want := range tests {
		assert.Equal(t, want, shouldIgnore(path), path)
	}
}

func TestDebouncerCoalescesBursts(t *testing.T) {
	req, trigger, stop := newDebouncer(20 * time.Millisecond)
	defer stop()

	for range 5 {
		trigger()
	}
	select {
	case <-req:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced signal not delivered")
	}
	select {
	case <-req:
		t.Fatal("burst produced more than one signal")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestNewValidation(t *testing.T) {
	noop := func(context.Context) {}
	_, err := New(nil, time.Second, noop, nil)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	_, err = New([]string{"."}, 0, noop, nil)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	_, err = New([]string{"."}, time.Second, nil, nil)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestRunMissingDirectory(t *testing.T) {
	w, err := New([]string{filepath.Join(t.TempDir(), "absent")}, time.Millisecond, func(context.Context) {}, discard())
	require.NoError(t, err)
	err = w.Run(context.Background())
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestRunTriggersRerun(t *testing.T) {
	dir := t.TempDir()
	var runs atomic.Int32
	w, err := New([]string{dir}, 20*time.Millisecond, func(context.Context) { runs.Add(1) }, discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(dir, "YOLO.txt"), []byte(time.Now().String()), 0o600)
		return runs.Load() > 0
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
