package store

import (
	"github.com/twiced-technology-gmbh/checklist/internal/task"
	"github.com/twiced-technology-gmbh/checklist/internal/view"
)

// EventKind names a notification emitted by the store.
type EventKind string

// Event kinds. Values double as activity log actions.
const (
	InputRejected EventKind = "input-rejected"
	TaskAdded     EventKind = "task-added"
	TaskToggled   EventKind = "task-toggled"
	TaskEdited    EventKind = "task-edited"
	TaskDeleted   EventKind = "task-deleted"
	CompletedAll  EventKind = "task-completed-all"
	PersistFailed EventKind = "persist-failed"
	ReloadFailed  EventKind = "reload-failed"
	ViewChanged   EventKind = "view-changed"
)

// Event is delivered to listeners after a store operation. Task is the
// affected task (zero for InputRejected and ViewChanged). View is the
// projection after the operation. Err is set for InputRejected,
// PersistFailed and ReloadFailed.
type Event struct {
	Kind EventKind
	Task task.Task
	View view.View
	Err  error
}

// Listener receives store events synchronously, in emission order.
// Listeners must not call mutating store methods.
type Listener func(Event)
