// Package store owns the task list, persists it after every change and
// notifies listeners so a presentation layer can re-render.
//
// A Store is not safe for concurrent use. It has a single owner (a
// command or the TUI update loop) that runs each operation to completion.
package store

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/twiced-technology-gmbh/checklist/internal/kv"
	"github.com/twiced-technology-gmbh/checklist/internal/task"
	"github.com/twiced-technology-gmbh/checklist/internal/view"
)

// DefaultKey is the storage slot holding the serialized list.
const DefaultKey = "tasks"

// Store is the authoritative, insertion-ordered task list plus the
// current filter.
type Store struct {
	storage   kv.Storage
	key       string
	log       *zap.Logger
	now       func() time.Time
	tasks     []task.Task
	filter    view.Filter
	nextID    int
	listeners []Listener
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock replaces time.Now for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithKey sets the storage slot name.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// New returns a store hydrated from storage. Unreadable or malformed
// content yields an empty list; it is logged, never returned.
func New(storage kv.Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		key:     DefaultKey,
		log:     zap.NewNop(),
		now:     time.Now,
		filter:  view.All,
		nextID:  1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.hydrate()
	return s
}

// Subscribe registers l for all future events.
func (s *Store) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Tasks returns a copy of the full task sequence.
func (s *Store) Tasks() []task.Task {
	return slices.Clone(s.tasks)
}

// Get returns the task with the given ID.
func (s *Store) Get(id int) (task.Task, bool) {
	i := task.IndexOf(s.tasks, id)
	if i < 0 {
		return task.Task{}, false
	}
	return s.tasks[i], true
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Filter returns the current filter.
func (s *Store) Filter() view.Filter {
	return s.filter
}

// View projects the current list under the current filter.
func (s *Store) View() view.View {
	return view.Project(s.tasks, s.filter)
}

// Add appends a new task. Empty or whitespace-only text is rejected with an
// InputRejected event and an error matching task.ErrEmptyText.
func (s *Store) Add(text string) (task.Task, error) {
	normalized, err := task.NormalizeText(text)
	if err != nil {
		s.reject(err)
		return task.Task{}, err
	}

	t := task.Task{
		ID:        s.nextID,
		Text:      normalized,
		CreatedAt: s.now(),
	}
	s.nextID++
	s.tasks = append(s.tasks, t)
	s.log.Debug("task added", zap.Int("id", t.ID))

	s.commit(Event{Kind: TaskAdded, Task: t})
	return t, nil
}

// Toggle flips the completion flag of the task with the given ID and
// returns the new state. ok is false when no such task exists, in which
// case nothing happens.
func (s *Store) Toggle(id int) (completed, ok bool) {
	i := task.IndexOf(s.tasks, id)
	if i < 0 {
		s.log.Debug("toggle ignored: unknown id", zap.Int("id", id))
		return false, false
	}

	t := s.tasks[i].WithCompleted(!s.tasks[i].Completed)
	s.tasks[i] = t
	s.log.Debug("task toggled", zap.Int("id", id), zap.Bool("completed", t.Completed))

	events := []Event{{Kind: TaskToggled, Task: t}}
	if t.Completed && task.CountCompleted(s.tasks) == len(s.tasks) {
		events = append(events, Event{Kind: CompletedAll, Task: t})
	}
	s.commit(events...)
	return t.Completed, true
}

// Edit replaces the text of the task with the given ID. Empty text is
// treated as a cancelled edit: nothing changes, an InputRejected event is
// emitted and an error matching task.ErrEmptyText is returned. ok is false
// when the text was applied to no task.
func (s *Store) Edit(id int, text string) (task.Task, bool, error) {
	i := task.IndexOf(s.tasks, id)
	if i < 0 {
		s.log.Debug("edit ignored: unknown id", zap.Int("id", id))
		return task.Task{}, false, nil
	}

	normalized, err := task.NormalizeText(text)
	if err != nil {
		s.reject(err)
		return s.tasks[i], false, err
	}

	t := s.tasks[i].WithText(normalized)
	s.tasks[i] = t
	s.log.Debug("task edited", zap.Int("id", id))

	s.commit(Event{Kind: TaskEdited, Task: t})
	return t, true, nil
}

// Delete removes the task with the given ID and reports whether it existed.
func (s *Store) Delete(id int) bool {
	i := task.IndexOf(s.tasks, id)
	if i < 0 {
		s.log.Debug("delete ignored: unknown id", zap.Int("id", id))
		return false
	}

	t := s.tasks[i]
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.log.Debug("task deleted", zap.Int("id", id))

	s.commit(Event{Kind: TaskDeleted, Task: t})
	return true
}

// SetFilter changes the current filter. The list is not touched and
// nothing is persisted.
func (s *Store) SetFilter(f view.Filter) {
	s.filter = f
	s.emit(Event{Kind: ViewChanged, View: s.View()})
}

// errMalformed marks a slot whose content could not be decoded.
var errMalformed = errors.New("task list is malformed")

// Reload re-reads the storage slot after another process changed it. The
// in-memory list is replaced only by a successful read: a read error or a
// malformed slot keeps the current list, emits ReloadFailed and is
// returned. An absent slot also keeps the list. IDs handed out by this
// store are never reissued, even if the reloaded list no longer contains
// them.
func (s *Store) Reload() error {
	tasks, found, err := s.load()
	if err != nil {
		s.log.Warn("reloading task list failed, keeping current list",
			zap.String("key", s.key), zap.Error(err))
		s.emit(Event{Kind: ReloadFailed, View: s.View(), Err: err})
		return err
	}
	if found {
		s.replace(tasks)
	} else {
		s.log.Debug("reload found no stored list, keeping current list", zap.String("key", s.key))
	}
	s.emit(Event{Kind: ViewChanged, View: s.View()})
	return nil
}

// hydrate loads the initial list. Any failure starts the store empty.
func (s *Store) hydrate() {
	tasks, _, err := s.load()
	if err != nil {
		msg := "reading task list failed, starting empty"
		if errors.Is(err, errMalformed) {
			msg = "task list is malformed, starting empty"
		}
		s.log.Warn(msg, zap.String("key", s.key), zap.Error(err))
	}
	s.replace(tasks)
}

func (s *Store) replace(tasks []task.Task) {
	s.tasks = tasks
	if next := task.MaxID(s.tasks) + 1; next > s.nextID {
		s.nextID = next
	}
}

// load reads and decodes the slot. found is false when the slot is absent.
func (s *Store) load() (tasks []task.Task, found bool, err error) {
	data, ok, err := s.storage.Get(s.key)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	tasks, warnings, err := task.Decode(data)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %w", errMalformed, err)
	}
	for _, w := range warnings {
		s.log.Warn("skipping unusable task record",
			zap.Int("index", w.Index), zap.Int("id", w.ID), zap.Error(w.Err))
	}
	return tasks, true, nil
}

// commit persists the list and emits events followed by ViewChanged.
// A failed write is reported first as PersistFailed; the in-memory list
// stays authoritative and the next successful write reconciles storage.
func (s *Store) commit(events ...Event) {
	v := s.View()
	if err := s.persist(); err != nil {
		s.log.Warn("persisting task list failed", zap.String("key", s.key), zap.Error(err))
		s.emit(Event{Kind: PersistFailed, View: v, Err: err})
	}
	for _, e := range events {
		e.View = v
		s.emit(e)
	}
	s.emit(Event{Kind: ViewChanged, View: v})
}

func (s *Store) persist() error {
	data, err := task.Encode(s.tasks)
	if err != nil {
		return err
	}
	return s.storage.Set(s.key, data)
}

func (s *Store) reject(err error) {
	s.log.Debug("input rejected", zap.Error(err))
	s.emit(Event{Kind: InputRejected, View: s.View(), Err: err})
}

func (s *Store) emit(e Event) {
	for _, l := range s.listeners {
		l(e)
	}
}

// IsEmptyText reports whether err is an empty-text rejection.
func IsEmptyText(err error) bool {
	return errors.Is(err, task.ErrEmptyText)
}
