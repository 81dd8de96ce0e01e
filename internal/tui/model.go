// Package tui implements the interactive terminal checklist.
package tui

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/checklist/internal/config"
	"github.com/twiced-technology-gmbh/checklist/internal/store"
	"github.com/twiced-technology-gmbh/checklist/internal/task"
	"github.com/twiced-technology-gmbh/checklist/internal/view"
)

// mode is the current screen state.
type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeConfirmDelete
	modeHelp
)

const (
	frameInterval = 120 * time.Millisecond // confetti animation step
	confettiCount = 24
	inputLimit    = 256
	listChrome    = 6 // header, blank, stats, toast, help, spare
)

// Model is the top-level bubbletea model. It owns no task state: every
// change goes through the store, and the store's events drive what is
// shown. Effects are keyed by task ID, never by screen position.
type Model struct {
	store *store.Store
	cfg   *config.Config
	keys  keyMap
	help  help.Model
	input textinput.Model
	mode  mode

	width  int
	height int

	view       view.View
	cursor     int
	selectedID int
	offset     int // first visible row

	editID     int
	deleteID   int
	deleteText string
	submitted  mode // mode that submitted the input being processed

	pending []store.Event

	toast     string
	toastErr  bool
	toastSeq  int
	flashing  bool
	flashSeq  int
	highlight int
	hlSeq     int

	celebrating bool
	celebSeq    int
	frame       int
	confetti    []star

	persistErr error
	helpText   string
	rng        *rand.Rand
}

// star is one confetti particle of the celebration banner.
type star struct {
	col   int
	row   int
	speed int
	color int
}

// New returns a model driving s. It subscribes to s for the model's
// lifetime.
func New(s *store.Store, cfg *config.Config) *Model {
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = inputLimit
	ti.Width = 40 //nolint:mnd // initial width before the first resize

	m := &Model{
		store: s,
		cfg:   cfg,
		keys:  defaultKeyMap(),
		help:  help.New(),
		input: ti,
		view:  s.View(),
		rng:   rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)), //nolint:gosec // cosmetic randomness
	}
	if len(m.view.Tasks) > 0 {
		m.selectedID = m.view.Tasks[0].ID
	}
	s.Subscribe(func(e store.Event) { m.pending = append(m.pending, e) })
	return m
}

// --- Messages ---

// ReloadMsg is sent by the file watcher when the stored list changed on disk.
type ReloadMsg struct{}

type toastExpiredMsg struct{ seq int }

type flashDoneMsg struct{ seq int }

type highlightDoneMsg struct{ seq int }

type celebrationDoneMsg struct{ seq int }

type frameMsg struct{ seq int }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-8, 10) //nolint:mnd // border, padding and prompt
		m.helpText = ""
		m.ensureVisible()
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))
	case ReloadMsg:
		// A failed reload is reported through ReloadFailed.
		_ = m.store.Reload()
	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
			m.toastErr = false
		}
	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flashing = false
		}
	case highlightDoneMsg:
		if msg.seq == m.hlSeq {
			m.highlight = 0
		}
	case celebrationDoneMsg:
		if msg.seq == m.celebSeq {
			m.celebrating = false
			m.confetti = nil
		}
	case frameMsg:
		if msg.seq == m.celebSeq && m.celebrating {
			m.frame++
			cmds = append(cmds, m.frameCmd())
		}
	default:
		if m.mode == modeAdd || m.mode == modeEdit {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, m.drainEvents()...)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	switch m.mode {
	case modeAdd, modeEdit:
		return m.handleInputKey(msg)
	case modeConfirmDelete:
		return m.handleDeleteKey(msg)
	case modeHelp:
		m.mode = modeList
		return nil
	default:
		return m.handleListKey(msg)
	}
}

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.moveCursor(-len(m.view.Tasks))
	case key.Matches(msg, m.keys.Bottom):
		m.moveCursor(len(m.view.Tasks))
	case key.Matches(msg, m.keys.Add):
		return m.startInput(modeAdd, 0, "")
	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selected(); ok {
			return m.startInput(modeEdit, t.ID, t.Text)
		}
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			m.store.Toggle(t.ID)
		}
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			m.deleteID = t.ID
			m.deleteText = t.Text
			m.mode = modeConfirmDelete
		}
	case key.Matches(msg, m.keys.FilterAll):
		m.store.SetFilter(view.All)
	case key.Matches(msg, m.keys.FilterActive):
		m.store.SetFilter(view.Active)
	case key.Matches(msg, m.keys.FilterCompleted):
		m.store.SetFilter(view.Completed)
	case key.Matches(msg, m.keys.NextFilter):
		m.store.SetFilter(m.store.Filter().Next())
	case key.Matches(msg, m.keys.Help):
		m.mode = modeHelp
	}
	return nil
}

func (m *Model) startInput(md mode, id int, text string) tea.Cmd {
	m.mode = md
	m.editID = id
	m.flashing = false
	m.input.SetValue(text)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) stopInput() {
	m.mode = modeList
	m.editID = 0
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.stopInput()
		return nil
	case key.Matches(msg, m.keys.Confirm):
		m.submit()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// submit hands the input text to the store. Add stays open on rejection so
// the user can retry; an empty edit closes the editor unchanged.
func (m *Model) submit() {
	m.submitted = m.mode
	text := m.input.Value()

	switch m.mode {
	case modeAdd:
		if _, err := m.store.Add(text); err == nil {
			m.stopInput()
		}
	case modeEdit:
		id := m.editID
		m.stopInput()
		_, _, _ = m.store.Edit(id, text)
	}
}

func (m *Model) handleDeleteKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Yes):
		m.store.Delete(m.deleteID)
		m.mode = modeList
	case key.Matches(msg, m.keys.No):
		m.mode = modeList
	}
	return nil
}

// drainEvents turns the store events collected during this update into
// state changes and timed effects.
func (m *Model) drainEvents() []tea.Cmd {
	events := m.pending
	m.pending = nil

	if savedChange(events) {
		m.persistErr = nil
	}

	var cmds []tea.Cmd
	for _, e := range events {
		if cmd := m.apply(e); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// savedChange reports whether events contain a mutation that was written
// without a persist failure.
func savedChange(events []store.Event) bool {
	changed := false
	for _, e := range events {
		switch e.Kind {
		case store.PersistFailed:
			return false
		case store.TaskAdded, store.TaskToggled, store.TaskEdited, store.TaskDeleted:
			changed = true
		}
	}
	return changed
}

func (m *Model) apply(e store.Event) tea.Cmd {
	switch e.Kind {
	case store.ViewChanged:
		m.view = e.View
		m.syncCursor()
	case store.TaskAdded:
		m.selectedID = e.Task.ID
		return tea.Batch(m.showToast(fmt.Sprintf("Added #%d", e.Task.ID), false), m.highlightTask(e.Task.ID))
	case store.TaskToggled:
		return m.highlightTask(e.Task.ID)
	case store.TaskEdited:
		return tea.Batch(m.showToast(fmt.Sprintf("Updated #%d", e.Task.ID), false), m.highlightTask(e.Task.ID))
	case store.TaskDeleted:
		return m.showToast(fmt.Sprintf("Deleted #%d: %s", e.Task.ID, e.Task.Text), false)
	case store.CompletedAll:
		return m.celebrate()
	case store.InputRejected:
		if !store.IsEmptyText(e.Err) {
			return tea.Batch(m.showToast(e.Err.Error(), true), m.flash())
		}
		if m.submitted == modeEdit {
			return m.showToast("Edit cancelled: text cannot be empty", false)
		}
		return tea.Batch(m.showToast("Task text cannot be empty", true), m.flash())
	case store.PersistFailed:
		m.persistErr = e.Err
		return m.showToast("Could not save: "+e.Err.Error(), true)
	case store.ReloadFailed:
		return m.showToast("Could not reload: "+e.Err.Error(), true)
	}
	return nil
}

func (m *Model) showToast(text string, isErr bool) tea.Cmd {
	m.toastSeq++
	m.toast = text
	m.toastErr = isErr
	seq := m.toastSeq
	return tea.Tick(m.cfg.ToastDuration(), func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
}

func (m *Model) flash() tea.Cmd {
	m.flashSeq++
	m.flashing = true
	seq := m.flashSeq
	return tea.Tick(m.cfg.ToastDuration(), func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}

func (m *Model) highlightTask(id int) tea.Cmd {
	m.hlSeq++
	m.highlight = id
	seq := m.hlSeq
	return tea.Tick(m.cfg.ToastDuration(), func(time.Time) tea.Msg { return highlightDoneMsg{seq: seq} })
}

func (m *Model) celebrate() tea.Cmd {
	m.celebSeq++
	m.celebrating = true
	m.frame = 0
	m.confetti = m.spawnConfetti()
	seq := m.celebSeq
	done := tea.Tick(m.cfg.CelebrationDuration(), func(time.Time) tea.Msg { return celebrationDoneMsg{seq: seq} })
	return tea.Batch(done, m.frameCmd())
}

func (m *Model) frameCmd() tea.Cmd {
	seq := m.celebSeq
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{seq: seq} })
}

func (m *Model) spawnConfetti() []star {
	width := max(m.width, 40) //nolint:mnd // minimum banner width
	stars := make([]star, confettiCount)
	for i := range stars {
		stars[i] = star{
			col:   m.rng.IntN(width),
			row:   m.rng.IntN(confettiRows),
			speed: 1 + m.rng.IntN(2), //nolint:mnd // one or two rows per frame
			color: m.rng.IntN(len(confettiPalette)),
		}
	}
	return stars
}

// --- Selection ---

func (m *Model) selected() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Tasks) {
		return task.Task{}, false
	}
	return m.view.Tasks[m.cursor], true
}

func (m *Model) moveCursor(delta int) {
	if len(m.view.Tasks) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.view.Tasks)-1)
	m.selectedID = m.view.Tasks[m.cursor].ID
	m.ensureVisible()
}

// syncCursor keeps the selection on the same task across view changes, or
// on the same position when that task left the view.
func (m *Model) syncCursor() {
	if i := task.IndexOf(m.view.Tasks, m.selectedID); i >= 0 {
		m.cursor = i
	} else {
		m.cursor = min(m.cursor, len(m.view.Tasks)-1)
	}
	if m.cursor < 0 {
		m.cursor = 0
		m.selectedID = 0
	} else if len(m.view.Tasks) > 0 {
		m.selectedID = m.view.Tasks[m.cursor].ID
	}
	m.ensureVisible()
}

func (m *Model) listHeight() int {
	if m.height == 0 {
		return max(len(m.view.Tasks), 1)
	}
	h := m.height - listChrome
	if m.mode == modeAdd || m.mode == modeEdit {
		h -= 3 //nolint:mnd // bordered input box
	}
	if m.celebrating {
		h -= bannerHeight
	}
	return max(h, 1)
}

func (m *Model) ensureVisible() {
	h := m.listHeight()
	switch {
	case m.cursor < m.offset:
		m.offset = m.cursor
	case m.cursor >= m.offset+h:
		m.offset = m.cursor - h + 1
	}
	m.offset = max(min(m.offset, len(m.view.Tasks)-h), 0)
}
