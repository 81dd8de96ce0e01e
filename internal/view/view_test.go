package view

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/checklist/internal/task"
)

func fixture() []task.Task {
	at := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	return []task.Task{
		{ID: 1, Text: "one", CreatedAt: at},
		{ID: 2, Text: "two", Completed: true, CreatedAt: at},
		{ID: 3, Text: "three", CreatedAt: at},
		{ID: 4, Text: "four", Completed: true, CreatedAt: at},
	}
}

func TestProject_Filters(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []int
	}{
		{"all keeps order", All, []int{1, 2, 3, 4}},
		{"active", Active, []int{1, 3}},
		{"completed", Completed, []int{2, 4}},
		{"unknown falls back to all", Filter("starred"), []int{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Project(fixture(), tt.filter)
			assert.Equal(t, tt.want, v.IDs())
			assert.Equal(t, 4, v.Total)
			assert.Equal(t, 2, v.Completed)
			assert.Equal(t, NotEmpty, v.Empty)
		})
	}
}

func TestProject_Idempotent(t *testing.T) {
	for _, f := range Filters() {
		once := Project(fixture(), f)
		twice := Project(once.Tasks, f)
		if diff := cmp.Diff(once.Tasks, twice.Tasks); diff != "" {
			t.Fatalf("filter %s not idempotent (-once +twice):\n%s", f, diff)
		}
	}
}

func TestProject_CountsCoverWholeList(t *testing.T) {
	tasks := fixture()
	for i := range len(tasks) + 1 {
		for _, f := range Filters() {
			v := Project(tasks[:i], f)
			assert.LessOrEqual(t, v.Completed, v.Total)
			assert.Equal(t, i, v.Total)
		}
	}
}

func TestProject_EmptyReasons(t *testing.T) {
	assert.Equal(t, NoTasksAtAll, Project(nil, All).Empty)
	assert.Equal(t, NoTasksAtAll, Project(nil, Active).Empty)
	assert.Equal(t, CompletedFilterEmpty, Project(nil, Completed).Empty)

	allDone := []task.Task{{ID: 1, Text: "x", Completed: true}}
	assert.Equal(t, NoTasksAtAll, Project(allDone, Active).Empty)

	none := []task.Task{{ID: 1, Text: "x"}}
	v := Project(none, Completed)
	assert.Equal(t, CompletedFilterEmpty, v.Empty)
	assert.Equal(t, "No completed tasks yet!", v.Empty.Message())
	assert.NotNil(t, v.Tasks)
}

func TestProject_DoesNotAlias(t *testing.T) {
	tasks := fixture()
	v := Project(tasks, All)
	v.Tasks[0].Text = "changed"
	assert.Equal(t, "one", tasks[0].Text)
}

func TestParseFilter(t *testing.T) {
	for in, want := range map[string]Filter{
		"":          All,
		"ALL":       All,
		"active":    Active,
		"todo":      Active,
		"Completed": Completed,
		"done":      Completed,
	} {
		got, err := ParseFilter(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}

	_, err := ParseFilter("someday")
	assert.Error(t, err)
}

func TestFilter_NextCycles(t *testing.T) {
	f := All
	seen := []Filter{f}
	for range 3 {
		f = f.Next()
		seen = append(seen, f)
	}
	assert.Equal(t, []Filter{All, Active, Completed, All}, seen)
	assert.Equal(t, "Completed", Completed.Label())
}

func TestView_AllCompleted(t *testing.T) {
	assert.False(t, Project(nil, All).AllCompleted())
	assert.False(t, Project(fixture(), All).AllCompleted())
	done := []task.Task{{ID: 1, Text: "x", Completed: true}}
	assert.True(t, Project(done, Active).AllCompleted())
}

func TestView_Stats(t *testing.T) {
	assert.Equal(t, Stats{}, Project(nil, All).Stats())

	s := Project(fixture()[:3], Active).Stats()
	assert.Equal(t, Stats{Total: 3, Completed: 1, Active: 2, Percent: 33}, s)
}
