// Package view projects the task list into a filtered, render-ready view.
package view

import (
	"strings"

	"github.com/twiced-technology-gmbh/checklist/internal/clierr"
	"github.com/twiced-technology-gmbh/checklist/internal/task"
)

// Filter selects which tasks a view shows.
type Filter string

// Known filters. Any other value behaves like All.
const (
	All       Filter = "all"
	Active    Filter = "active"
	Completed Filter = "completed"
)

// Filters returns the known filters in display order.
func Filters() []Filter {
	return []Filter{All, Active, Completed}
}

// ParseFilter converts user input into a Filter. Matching is
// case-insensitive; "done" and "todo" are accepted as aliases.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return All, nil
	case "active", "todo", "open":
		return Active, nil
	case "completed", "done":
		return Completed, nil
	}
	return All, clierr.Newf(clierr.InvalidFilter, "invalid filter %q", s).
		WithDetails(map[string]any{
			"filter":  s,
			"allowed": []Filter{All, Active, Completed},
		})
}

// Matches reports whether t belongs in a view under this filter.
func (f Filter) Matches(t task.Task) bool {
	switch f {
	case Active:
		return !t.Completed
	case Completed:
		return t.Completed
	default:
		return true
	}
}

// Next returns the filter after f in display order, wrapping around.
func (f Filter) Next() Filter {
	switch f {
	case All:
		return Active
	case Active:
		return Completed
	default:
		return All
	}
}

// Label returns the capitalized display name.
func (f Filter) Label() string {
	switch f {
	case Active:
		return "Active"
	case Completed:
		return "Completed"
	default:
		return "All"
	}
}
