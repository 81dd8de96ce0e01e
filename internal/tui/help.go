package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// helpMarkdown builds the help page from the key map so the two never
// drift apart.
func (m *Model) helpMarkdown() string {
	var b strings.Builder
	b.WriteString("# Checklist\n\n")
	b.WriteString("Add short tasks, tick them off, and filter the list.\n\n")
	b.WriteString("| Key | Action |\n|-----|--------|\n")
	for _, group := range m.keys.FullHelp() {
		for _, kb := range group {
			h := kb.Help()
			b.WriteString("| `" + h.Key + "` | " + h.Desc + " |\n")
		}
	}
	b.WriteString("\nChanges are saved after every action. Press any key to return.\n")
	return b.String()
}

// renderHelp renders the help page with glamour, falling back to the raw
// markdown when rendering fails.
func (m *Model) renderHelp() string {
	md := m.helpMarkdown()

	style := "dark"
	if lipgloss.ColorProfile() == termenv.Ascii {
		style = "notty"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(m.contentWidth()-4, 20)), //nolint:mnd // margins
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func (m *Model) viewHelp() string {
	if m.helpText == "" {
		m.helpText = m.renderHelp()
	}
	return m.helpText
}
