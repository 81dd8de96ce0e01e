package filelock

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWith_RunsFnAndReleases(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lock")

	ran := false
	require.NoError(t, With(path, func() error {
		ran = true
		return nil
	}))
	assert.True(t, ran)

	// The lock must be free again.
	unlock, err := Lock(path)
	require.NoError(t, err)
	require.NoError(t, unlock())
}

func TestWith_PropagatesFnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lock")
	boom := errors.New("boom")

	err := With(path, func() error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestWith_SerializesCriticalSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lock")

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		overlap bool
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = With(path, func() error {
				mu.Lock()
				inside++
				if inside > 1 {
					overlap = true
				}
				mu.Unlock()

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()
	assert.False(t, overlap)
}
