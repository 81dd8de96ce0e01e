package task

import (
	"strconv"
	"strings"

	"github.com/twiced-technology-gmbh/checklist/internal/clierr"
)

// ErrEmptyText is returned when task text is empty or whitespace-only.
// Match it with errors.Is; clierr.Error compares by code.
var ErrEmptyText = clierr.New(clierr.EmptyText, "task text cannot be empty")

// NormalizeText trims surrounding whitespace and rejects empty results.
func NormalizeText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", clierr.New(clierr.EmptyText, ErrEmptyText.Message)
	}
	return trimmed, nil
}

// ValidateTaskID returns a CLIError for invalid task ID input.
func ValidateTaskID(input string) *clierr.Error {
	return clierr.Newf(clierr.InvalidTaskID, "invalid task ID %q", input).
		WithDetails(map[string]any{"input": input})
}

// NotFound returns a CLIError for an ID that is not in the list.
func NotFound(id int) *clierr.Error {
	return clierr.Newf(clierr.TaskNotFound, "task not found: #%d", id).
		WithDetails(map[string]any{"id": id})
}

// ParseID parses a single positive task ID, accepting an optional leading '#'.
func ParseID(input string) (int, error) {
	s := strings.TrimPrefix(strings.TrimSpace(input), "#")
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, ValidateTaskID(input)
	}
	return id, nil
}

// ParseIDs splits a comma-separated ID string into deduplicated IDs,
// preserving the order in which they were given.
func ParseIDs(arg string) ([]int, error) {
	parts := strings.Split(arg, ",")
	seen := make(map[int]bool, len(parts))
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		id, err := ParseID(p)
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			ids = append(ids, id)
			seen[id] = true
		}
	}
	if len(ids) == 0 {
		return nil, clierr.New(clierr.InvalidTaskID, "no valid task IDs provided")
	}
	return ids, nil
}
