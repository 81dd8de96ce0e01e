package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/checklist/internal/config"
	"github.com/twiced-technology-gmbh/checklist/internal/kv"
	"github.com/twiced-technology-gmbh/checklist/internal/store"
	"github.com/twiced-technology-gmbh/checklist/internal/view"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
)

func newTestModel(t *testing.T, storage kv.Storage) (*Model, *store.Store) {
	t.Helper()
	s := store.New(storage)
	m := New(s, config.NewDefault())
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, s
}

func send(m *Model, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func addTask(m *Model, text string) {
	send(m, runes("a"), runes(text), enterKey)
}

func TestAdd_ThroughInput(t *testing.T) {
	m, s := newTestModel(t, kv.NewMemory())

	send(m, runes("a"))
	require.Equal(t, modeAdd, m.mode)
	send(m, runes("Buy milk"), enterKey)

	assert.Equal(t, modeList, m.mode)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, "Buy milk", s.Tasks()[0].Text)
	assert.Equal(t, "Added #1", m.toast)
	assert.Equal(t, 1, m.highlight)
	assert.Equal(t, 1, m.selectedID)
	assert.Contains(t, m.View(), "Buy milk")
	assert.Contains(t, m.View(), "Total: 1 tasks")
}

func TestAdd_EmptyIsRejectedAndStaysOpen(t *testing.T) {
	m, s := newTestModel(t, kv.NewMemory())

	send(m, runes("a"), runes("   "), enterKey)

	assert.Equal(t, modeAdd, m.mode)
	assert.Zero(t, s.Len())
	assert.True(t, m.flashing)
	assert.True(t, m.toastErr)
	assert.Equal(t, "Task text cannot be empty", m.toast)

	send(m, flashDoneMsg{seq: m.flashSeq})
	assert.False(t, m.flashing)

	send(m, escKey)
	assert.Equal(t, modeList, m.mode)
}

func TestToggle_CelebratesAndExpires(t *testing.T) {
	m, _ := newTestModel(t, kv.NewMemory())
	addTask(m, "only one")

	send(m, runes("x"))

	require.True(t, m.celebrating)
	assert.Contains(t, m.View(), celebrateText)
	assert.NotEmpty(t, m.confetti)

	send(m, celebrationDoneMsg{seq: m.celebSeq - 1})
	assert.True(t, m.celebrating, "stale timer must not end a newer celebration")

	send(m, frameMsg{seq: m.celebSeq})
	assert.Equal(t, 1, m.frame)

	send(m, celebrationDoneMsg{seq: m.celebSeq})
	assert.False(t, m.celebrating)
	assert.NotContains(t, m.View(), celebrateText)
}

func TestToggle_NoCelebrationWhileTasksRemain(t *testing.T) {
	m, s := newTestModel(t, kv.NewMemory())
	addTask(m, "one")
	addTask(m, "two")

	send(m, runes("x"))

	assert.False(t, m.celebrating)
	got, _ := s.Get(2)
	assert.True(t, got.Completed, "toggle targets the selected task")
}

func TestEdit_PrefillsAndEmptyCancels(t *testing.T) {
	m, s := newTestModel(t, kv.NewMemory())
	addTask(m, "draft")

	send(m, runes("e"))
	require.Equal(t, modeEdit, m.mode)
	assert.Equal(t, "draft", m.input.Value())

	m.input.SetValue("   ")
	send(m, enterKey)

	assert.Equal(t, modeList, m.mode)
	got, _ := s.Get(1)
	assert.Equal(t, "draft", got.Text)
	assert.Equal(t, "Edit cancelled: text cannot be empty", m.toast)

	send(m, runes("e"))
	m.input.SetValue("final")
	send(m, enterKey)
	got, _ = s.Get(1)
	assert.Equal(t, "final", got.Text)
	assert.Equal(t, "Updated #1", m.toast)
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	m, s := newTestModel(t, kv.NewMemory())
	addTask(m, "keep me")

	send(m, runes("d"))
	require.Equal(t, modeConfirmDelete, m.mode)
	assert.Contains(t, m.View(), "keep me")
	send(m, runes("n"))
	assert.Equal(t, 1, s.Len())

	send(m, runes("d"), runes("y"))
	assert.Zero(t, s.Len())
	assert.Equal(t, modeList, m.mode)
	assert.Contains(t, m.View(), view.NoTasksAtAll.Message())
}

func TestFilters(t *testing.T) {
	m, s := newTestModel(t, kv.NewMemory())
	addTask(m, "open")

	send(m, runes("3"))
	assert.Equal(t, view.Completed, s.Filter())
	assert.Contains(t, m.View(), view.CompletedFilterEmpty.Message())

	send(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, view.All, s.Filter())

	send(m, runes("2"))
	assert.Equal(t, view.Active, s.Filter())
	assert.Len(t, m.view.Tasks, 1)
}

func TestCursor_FollowsTaskAcrossViewChanges(t *testing.T) {
	m, _ := newTestModel(t, kv.NewMemory())
	addTask(m, "one")
	addTask(m, "two")
	addTask(m, "three")
	send(m, runes("2"))

	send(m, runes("g"), runes("j"))
	require.Equal(t, 2, m.selectedID)

	// Completing "two" removes it from the Active view; the cursor stays
	// at the same position, now on "three".
	send(m, runes("x"))
	assert.Equal(t, []int{1, 3}, m.view.IDs())
	assert.Equal(t, 1, m.cursor)
	assert.Equal(t, 3, m.selectedID)
}

func TestReloadMsg_PicksUpExternalChanges(t *testing.T) {
	storage := kv.NewMemory()
	m, _ := newTestModel(t, storage)
	addTask(m, "mine")

	other := store.New(storage)
	_, err := other.Add("theirs")
	require.NoError(t, err)

	send(m, ReloadMsg{})

	assert.Equal(t, 2, m.view.Total)
	assert.Contains(t, m.View(), "theirs")
}

type unreadableStorage struct {
	kv.Storage
	fail *bool
}

func (u unreadableStorage) Get(key string) ([]byte, bool, error) {
	if *u.fail {
		return nil, false, errors.New("device busy")
	}
	return u.Storage.Get(key)
}

func TestReloadMsg_FailedReadKeepsList(t *testing.T) {
	fail := false
	m, s := newTestModel(t, unreadableStorage{Storage: kv.NewMemory(), fail: &fail})
	addTask(m, "one")
	addTask(m, "two")

	fail = true
	send(m, ReloadMsg{})

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 2, m.view.Total)
	assert.Equal(t, "Could not reload: device busy", m.toast)
	assert.True(t, m.toastErr)
}

type brokenStorage struct {
	kv.Storage
	healed *bool
}

func (b brokenStorage) Set(key string, value []byte) error {
	if b.healed != nil && *b.healed {
		return b.Storage.Set(key, value)
	}
	return errors.New("read-only filesystem")
}

func TestPersistFailure_IsShown(t *testing.T) {
	healed := false
	m, s := newTestModel(t, brokenStorage{Storage: kv.NewMemory(), healed: &healed})

	addTask(m, "unsaved")

	assert.Equal(t, 1, s.Len(), "the in-memory list stays authoritative")
	require.Error(t, m.persistErr)
	send(m, toastExpiredMsg{seq: m.toastSeq})
	assert.Contains(t, m.View(), "Not saved: read-only filesystem")

	healed = true
	send(m, runes("x"))
	assert.NoError(t, m.persistErr, "a later successful write clears the warning")
	assert.NotContains(t, m.View(), "Not saved")
}

func TestToast_ExpiresOnlyForLatest(t *testing.T) {
	m, _ := newTestModel(t, kv.NewMemory())
	addTask(m, "one")
	first := m.toastSeq
	addTask(m, "two")

	send(m, toastExpiredMsg{seq: first})
	assert.Equal(t, "Added #2", m.toast)

	send(m, toastExpiredMsg{seq: m.toastSeq})
	assert.Empty(t, m.toast)
}

func TestHelp(t *testing.T) {
	m, _ := newTestModel(t, kv.NewMemory())

	send(m, runes("?"))
	require.Equal(t, modeHelp, m.mode)
	out := m.View()
	assert.Contains(t, out, "toggle")
	assert.Contains(t, out, "Checklist")

	send(m, runes("z"))
	assert.Equal(t, modeList, m.mode)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, kv.NewMemory())

	cmd := m.handleKey(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestScrolling_KeepsCursorVisible(t *testing.T) {
	m, _ := newTestModel(t, kv.NewMemory())
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	for range 12 {
		addTask(m, "task")
	}

	send(m, runes("g"))
	assert.Zero(t, m.offset)
	send(m, runes("G"))
	assert.Equal(t, 11, m.cursor)
	assert.LessOrEqual(t, m.offset, m.cursor)
	assert.Greater(t, m.offset+m.listHeight(), m.cursor)
	assert.Contains(t, m.View(), "more")
}
