package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/checklist/internal/activity"
	"github.com/twiced-technology-gmbh/checklist/internal/task"
	"github.com/twiced-technology-gmbh/checklist/internal/view"
)

func sampleView(f view.Filter) view.View {
	at := time.Date(2025, time.March, 4, 12, 0, 0, 0, time.Local)
	return view.Project([]task.Task{
		{ID: 1, Text: "Buy milk", Completed: true, CreatedAt: at},
		{ID: 2, Text: "Walk dog", CreatedAt: at},
	}, f)
}

func TestChoose(t *testing.T) {
	assert.Equal(t, FormatTable, Choose(false, false, false, ""))
	assert.Equal(t, FormatJSON, Choose(true, true, true, ""))
	assert.Equal(t, FormatCompact, Choose(false, true, true, ""))

	assert.Equal(t, FormatJSON, Choose(false, false, false, "json"))
	assert.Equal(t, FormatTable, Choose(false, false, true, "json"), "flags win over env")
	assert.Equal(t, FormatCompact, Choose(false, false, false, " OneLine "))
	assert.Equal(t, FormatTable, Choose(false, false, false, "yaml"), "unknown env value")
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"table", "json", "compact"} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, name, f.String())
	}

	f, err := ParseFormat("oneline")
	require.NoError(t, err)
	assert.Equal(t, FormatCompact, f)

	_, err = ParseFormat("xml")
	assert.ErrorContains(t, err, `unknown output format "xml"`)
}

func TestViewTable(t *testing.T) {
	DisableColor()
	var buf bytes.Buffer

	ViewTable(&buf, sampleView(view.All), "")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, lines[0], "TEXT")
	assert.Contains(t, lines[1], "[x]")
	assert.Contains(t, lines[1], "Buy milk")
	assert.Contains(t, lines[1], "Mar 4, 2025")
	assert.Contains(t, lines[2], "[ ]")
	assert.Contains(t, out, "Total: 2 tasks")
	assert.Contains(t, out, "Completed: 1 task")
}

func TestViewCompact(t *testing.T) {
	var buf bytes.Buffer
	ViewCompact(&buf, sampleView(view.Active))
	assert.Equal(t, "#2 [ ] Walk dog\n", buf.String())
}

func TestStatsCompact(t *testing.T) {
	var buf bytes.Buffer
	StatsCompact(&buf, sampleView(view.All).Stats())
	assert.Equal(t, "total:2 completed:1 active:1 (50%)\n", buf.String())
}

func TestNewListResponse_EmptyIsArray(t *testing.T) {
	v := view.Project(nil, view.Completed)
	v.Tasks = nil

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, NewListResponse(v)))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []any{}, got["tasks"])
	assert.Equal(t, "completed-filter-empty", got["empty_reason"])
	assert.Equal(t, "No completed tasks yet!", got["empty"])
}

func TestJSONError(t *testing.T) {
	var buf bytes.Buffer
	JSONError(&buf, "TASK_NOT_FOUND", "task not found: #9", map[string]any{"id": 9})
	assert.JSONEq(t,
		`{"error":"task not found: #9","code":"TASK_NOT_FOUND","details":{"id":9}}`,
		buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
}

func TestProgressBar(t *testing.T) {
	DisableColor()
	bar := ProgressBar(50, 10)
	assert.Equal(t, 10, strings.Count(bar, "█")+strings.Count(bar, "░"))
	assert.Equal(t, 5, strings.Count(bar, "█"))
}

func TestActivityOutput(t *testing.T) {
	DisableColor()
	entries := []activity.Entry{
		{Timestamp: time.Date(2025, time.March, 4, 12, 0, 0, 0, time.Local), Action: "task-added", TaskID: 3, Detail: "Buy milk"},
		{Timestamp: time.Date(2025, time.March, 4, 12, 5, 0, 0, time.Local), Action: "task-completed-all", Detail: "3/3"},
	}

	var table bytes.Buffer
	ActivityTable(&table, entries)
	lines := strings.Split(strings.TrimSpace(table.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "ACTION")
	assert.Contains(t, lines[1], "#3")
	assert.Contains(t, lines[2], "--")

	var compact bytes.Buffer
	ActivityCompact(&compact, entries)
	assert.Equal(t,
		"2025-03-04 12:00:00 task-added #3 Buy milk\n2025-03-04 12:05:00 task-completed-all 3/3\n",
		compact.String())
}

func TestTaskCompact(t *testing.T) {
	var buf bytes.Buffer
	TaskCompact(&buf, task.Task{ID: 7, Text: "Water plants", Completed: true})
	assert.Equal(t, "#7 [x] Water plants\n", buf.String())
}

func TestTaskDetail(t *testing.T) {
	DisableColor()
	var buf bytes.Buffer
	created := time.Now().Add(-3 * time.Hour)

	TaskDetail(&buf, task.Task{ID: 4, Text: "Call mom", CreatedAt: created}, "2006-01-02")

	out := buf.String()
	assert.Contains(t, out, "Task #4: Call mom")
	assert.Contains(t, out, "active")
	assert.Contains(t, out, created.Format("2006-01-02"))
	assert.Contains(t, out, "3h ago")
}
