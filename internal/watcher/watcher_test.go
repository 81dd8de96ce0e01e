package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startWatcher(t *testing.T, dir string, names []string, fn func()) {
	t.Helper()
	w, err := New(dir, names, fn)
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.Run(ctx, nil)
	}()
	t.Cleanup(func() {
		cancel()
		wg.Wait()
		_ = w.Close()
	})
}

func TestWatcher_DebouncesBurst(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	startWatcher(t, dir, []string{"tasks.json"}, func() { calls.Add(1) })

	for i := range 5 {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "tasks.json"), []byte{byte('0' + i)}, 0o600))
	}

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcher_SeesRenameOver(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "tasks.json")
	require.NoError(t, os.WriteFile(target, []byte("[]"), 0o600))

	var calls atomic.Int32
	startWatcher(t, dir, []string{"tasks.json"}, func() { calls.Add(1) })

	tmp := filepath.Join(dir, "tasks.json.123.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("[1]"), 0o600))
	require.NoError(t, os.Rename(tmp, target))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	startWatcher(t, dir, []string{"tasks.json"}, func() { calls.Add(1) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "activity.jsonl"), []byte("{}\n"), 0o600))

	time.Sleep(150 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"), nil, func() {})
	assert.Error(t, err)
}
