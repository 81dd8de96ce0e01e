package task

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DecodeWarning describes a record that was skipped during lenient decoding.
type DecodeWarning struct {
	Index int // position of the record in the blob
	ID    int
	Err   error
}

// record is the on-disk shape of a task. Older blobs stored the creation
// time under "timestamp"; it is read as a fallback and never written.
type record struct {
	ID        int        `json:"id"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Encode serializes the full task sequence as the persisted JSON blob.
// A nil or empty sequence encodes as an empty array.
func Encode(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("encoding tasks: %w", err)
	}
	return data, nil
}

// Decode parses a persisted blob. A blob that is not a JSON array of
// records fails as a whole. Individual records that cannot be used (empty
// text, non-positive or duplicate ID) are skipped and reported as warnings,
// so one bad record does not discard the rest of the list.
func Decode(data []byte) ([]Task, []DecodeWarning, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil, nil
	}

	var records []record
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, nil, fmt.Errorf("decoding tasks: %w", err)
	}

	tasks := make([]Task, 0, len(records))
	var warnings []DecodeWarning
	seen := make(map[int]bool, len(records))
	for i, r := range records {
		t, err := r.toTask()
		if err == nil && seen[t.ID] {
			err = fmt.Errorf("duplicate id %d", t.ID)
		}
		if err != nil {
			warnings = append(warnings, DecodeWarning{Index: i, ID: r.ID, Err: err})
			continue
		}
		seen[t.ID] = true
		tasks = append(tasks, t)
	}

	return tasks, warnings, nil
}

func (r record) toTask() (Task, error) {
	if r.ID <= 0 {
		return Task{}, fmt.Errorf("invalid id %d", r.ID)
	}
	text := strings.TrimSpace(r.Text)
	if text == "" {
		return Task{}, errors.New("empty text")
	}

	t := Task{ID: r.ID, Text: text, Completed: r.Completed}
	switch {
	case r.CreatedAt != nil:
		t.CreatedAt = *r.CreatedAt
	case r.Timestamp != nil:
		t.CreatedAt = *r.Timestamp
	}
	return t, nil
}
