// Package activity keeps an append-only JSONL journal of list changes.
package activity

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/twiced-technology-gmbh/checklist/internal/store"
)

const (
	// FileName is the journal file inside the data dir.
	FileName   = "activity.jsonl"
	fileMode   = 0o600
	maxEntries = 10000 // oldest entries are dropped past this size
)

// Entry is one journal line.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	TaskID    int       `json:"task_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Append writes entry to the journal in dir, trimming it to the most
// recent entries when it grows too large.
func Append(dir string, entry Entry) error {
	path := filepath.Join(dir, FileName)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileMode) //nolint:gosec // path from trusted data dir
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling activity entry: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing activity entry: %w", err)
	}

	// Best-effort; a journal that failed to shrink is still valid.
	_ = truncate(path, maxEntries)
	return nil
}

// Read returns up to limit of the most recent entries, oldest first.
// limit <= 0 returns everything. Lines that do not parse are skipped.
// A missing journal is not an error.
func Read(dir string, limit int) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dir, FileName)) //nolint:gosec // trusted path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		if json.Unmarshal(scanner.Bytes(), &e) != nil {
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading activity log: %w", err)
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

func truncate(path string, keep int) error {
	f, err := os.Open(path) //nolint:gosec // trusted path
	if err != nil {
		return err
	}

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	_ = f.Close()
	if err := scanner.Err(); err != nil {
		return err
	}

	if len(lines) <= keep {
		return nil
	}
	lines = lines[len(lines)-keep:]

	var buf strings.Builder
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(buf.String()), fileMode)
}

// Listener returns a store listener that journals every change into dir.
// Journal failures are logged and never fail the operation.
func Listener(dir string, log *zap.Logger) store.Listener {
	return func(e store.Event) {
		entry, ok := entryFor(e)
		if !ok {
			return
		}
		if err := Append(dir, entry); err != nil {
			log.Warn("writing activity log failed", zap.Error(err))
		}
	}
}

func entryFor(e store.Event) (Entry, bool) {
	entry := Entry{
		Timestamp: time.Now(),
		Action:    string(e.Kind),
		TaskID:    e.Task.ID,
	}
	switch e.Kind {
	case store.TaskAdded, store.TaskEdited, store.TaskDeleted:
		entry.Detail = e.Task.Text
	case store.TaskToggled:
		entry.Detail = "active"
		if e.Task.Completed {
			entry.Detail = "completed"
		}
	case store.CompletedAll:
		entry.Detail = fmt.Sprintf("%d/%d", e.View.Completed, e.View.Total)
	case store.PersistFailed, store.ReloadFailed, store.InputRejected:
		if e.Err != nil {
			entry.Detail = e.Err.Error()
		}
	default:
		return Entry{}, false
	}
	return entry, true
}
