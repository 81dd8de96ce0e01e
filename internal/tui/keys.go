package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding the list understands.
type keyMap struct {
	Up              key.Binding
	Down            key.Binding
	Top             key.Binding
	Bottom          key.Binding
	Add             key.Binding
	Edit            key.Binding
	Toggle          key.Binding
	Delete          key.Binding
	FilterAll       key.Binding
	FilterActive    key.Binding
	FilterCompleted key.Binding
	NextFilter      key.Binding
	Help            key.Binding
	Quit            key.Binding

	// Input and dialog bindings.
	Confirm key.Binding
	Cancel  key.Binding
	Yes     key.Binding
	No      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:              key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:            key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Top:             key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
		Bottom:          key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),
		Add:             key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add")),
		Edit:            key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Toggle:          key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space/x", "toggle")),
		Delete:          key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		FilterAll:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		FilterActive:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		FilterCompleted: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		NextFilter:      key.NewBinding(key.WithKeys("tab", "f"), key.WithHelp("tab", "next filter")),
		Help:            key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:            key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Yes:     key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		No:      key.NewBinding(key.WithKeys("n", "N", "esc", "q"), key.WithHelp("n", "no")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.NextFilter, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Add, k.Edit, k.Toggle, k.Delete},
		{k.FilterAll, k.FilterActive, k.FilterCompleted, k.NextFilter},
		{k.Confirm, k.Cancel, k.Help, k.Quit},
	}
}

// inputHelp is shown while the text input has focus.
func (k keyMap) inputHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}
