package view

import "github.com/twiced-technology-gmbh/checklist/internal/task"

// EmptyReason tells the presentation layer why a view has no rows.
type EmptyReason string

const (
	// NotEmpty is the reason of a view that has rows.
	NotEmpty EmptyReason = ""
	// CompletedFilterEmpty means the Completed filter matched nothing.
	CompletedFilterEmpty EmptyReason = "completed-filter-empty"
	// NoTasksAtAll covers every other empty view.
	NoTasksAtAll EmptyReason = "no-tasks-at-all"
)

// Message returns the user-facing empty-state text.
func (r EmptyReason) Message() string {
	switch r {
	case CompletedFilterEmpty:
		return "No completed tasks yet!"
	case NoTasksAtAll:
		return "Your list is empty. Add a task to get started!"
	default:
		return ""
	}
}

// View is the projected, render-ready state of the list.
type View struct {
	Filter    Filter      `json:"filter"`
	Tasks     []task.Task `json:"tasks"`
	Total     int         `json:"total"`
	Completed int         `json:"completed"`
	Empty     EmptyReason `json:"empty,omitempty"`
}

// Active returns the number of tasks that are not completed.
func (v View) Active() int {
	return v.Total - v.Completed
}

// AllCompleted reports whether the list is non-empty and fully completed.
func (v View) AllCompleted() bool {
	return v.Total > 0 && v.Completed == v.Total
}

// IDs returns the IDs of the visible tasks in display order.
func (v View) IDs() []int {
	ids := make([]int, len(v.Tasks))
	for i, t := range v.Tasks {
		ids[i] = t.ID
	}
	return ids
}

// Project filters tasks and computes counts. Counts always cover the full,
// unfiltered sequence. The result never aliases the input slice.
func Project(tasks []task.Task, f Filter) View {
	visible := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			visible = append(visible, t)
		}
	}

	v := View{
		Filter:    f,
		Tasks:     visible,
		Total:     len(tasks),
		Completed: task.CountCompleted(tasks),
	}
	if len(visible) == 0 {
		v.Empty = emptyReason(f)
	}
	return v
}

func emptyReason(f Filter) EmptyReason {
	if f == Completed {
		return CompletedFilterEmpty
	}
	return NoTasksAtAll
}

// Stats summarizes the counts of a view.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Active    int `json:"active"`
	Percent   int `json:"percent"`
}

// Stats returns the view's counts. Percent is rounded down and is 0 for an
// empty list.
func (v View) Stats() Stats {
	s := Stats{Total: v.Total, Completed: v.Completed, Active: v.Active()}
	if v.Total > 0 {
		s.Percent = v.Completed * 100 / v.Total //nolint:mnd // percentage
	}
	return s
}
