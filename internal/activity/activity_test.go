package activity

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/twiced-technology-gmbh/checklist/internal/kv"
	"github.com/twiced-technology-gmbh/checklist/internal/store"
)

func TestAppendAndRead(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, time.May, 5, 8, 0, 0, 0, time.UTC)

	for i := 1; i <= 3; i++ {
		require.NoError(t, Append(dir, Entry{Timestamp: now, Action: "task-added", TaskID: i}))
	}

	all, err := Read(dir, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 1, all[0].TaskID)

	last, err := Read(dir, 2)
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, 2, last[0].TaskID)
	assert.Equal(t, 3, last[1].TaskID)
}

func TestRead_MissingJournal(t *testing.T) {
	entries, err := Read(t.TempDir(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRead_SkipsGarbageLines(t *testing.T) {
	dir := t.TempDir()
	content := `{"timestamp":"2025-05-05T08:00:00Z","action":"task-added","task_id":1}
not json
{"timestamp":"2025-05-05T08:01:00Z","action":"task-deleted","task_id":1}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), fileMode))

	entries, err := Read(dir, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "task-deleted", entries[1].Action)
}

func TestTruncate_KeepsNewest(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	var b strings.Builder
	for i := range 5 {
		b.WriteString(strings.Repeat("x", i+1))
		b.WriteByte('\n')
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), fileMode))

	require.NoError(t, truncate(path, 2))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "xxxx\nxxxxx\n", string(data))
}

func TestListener_JournalsStoreChanges(t *testing.T) {
	dir := t.TempDir()
	s := store.New(kv.NewMemory())
	s.Subscribe(Listener(dir, zap.NewNop()))

	a, err := s.Add("Buy milk")
	require.NoError(t, err)
	s.Toggle(a.ID)
	_, _ = s.Add("  ")
	s.Delete(a.ID)

	entries, err := Read(dir, 0)
	require.NoError(t, err)

	var actions []string
	for _, e := range entries {
		actions = append(actions, e.Action)
	}
	assert.Equal(t, []string{
		string(store.TaskAdded),
		string(store.TaskToggled),
		string(store.CompletedAll),
		string(store.InputRejected),
		string(store.TaskDeleted),
	}, actions)
	assert.Equal(t, "Buy milk", entries[0].Detail)
	assert.Equal(t, "completed", entries[1].Detail)
	assert.Equal(t, "1/1", entries[2].Detail)
}
