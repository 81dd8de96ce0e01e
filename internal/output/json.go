package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/twiced-technology-gmbh/checklist/internal/task"
	"github.com/twiced-technology-gmbh/checklist/internal/view"
)

// JSON writes data as indented JSON to the given writer.
func JSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorResponse is the JSON envelope for structured error output.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// JSONError writes a structured error to the given writer as JSON.
func JSONError(w io.Writer, code, msg string, details map[string]any) {
	resp := ErrorResponse{Error: msg, Code: code, Details: details}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp) // best-effort; if writer fails, nothing we can do
}

// BatchResult represents the outcome of a single operation within a batch.
type BatchResult struct {
	ID        int    `json:"id"`
	OK        bool   `json:"ok"`
	Completed *bool  `json:"completed,omitempty"`
	Error     string `json:"error,omitempty"`
	Code      string `json:"code,omitempty"`
}

// ListResponse is the JSON shape of a projected list. Tasks is never null.
type ListResponse struct {
	Filter      view.Filter `json:"filter"`
	Tasks       []task.Task `json:"tasks"`
	Stats       view.Stats  `json:"stats"`
	Empty       string      `json:"empty,omitempty"`
	EmptyReason string      `json:"empty_reason,omitempty"`
}

// NewListResponse converts a view into its JSON shape.
func NewListResponse(v view.View) ListResponse {
	tasks := v.Tasks
	if tasks == nil {
		tasks = []task.Task{}
	}
	return ListResponse{
		Filter:      v.Filter,
		Tasks:       tasks,
		Stats:       v.Stats(),
		Empty:       v.Empty.Message(),
		EmptyReason: string(v.Empty),
	}
}
