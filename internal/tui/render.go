package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/checklist/internal/date"
	"github.com/twiced-technology-gmbh/checklist/internal/task"
	"github.com/twiced-technology-gmbh/checklist/internal/view"
)

const (
	confettiRows  = 3
	bannerHeight  = confettiRows + 3 // confetti plus the bordered banner line
	dateColWidth  = 14
	minTextWidth  = 10
	defaultWidth  = 80
	celebrateText = "All tasks completed!"
)

// View implements tea.Model.
func (m *Model) View() string {
	switch m.mode {
	case modeConfirmDelete:
		return m.viewDeleteConfirm()
	case modeHelp:
		return m.viewHelp()
	default:
		return m.viewList()
	}
}

func (m *Model) viewList() string {
	parts := []string{m.renderHeader()}

	if m.celebrating {
		parts = append(parts, m.renderCelebration())
	}

	if len(m.view.Tasks) == 0 {
		parts = append(parts, emptyStyle.Render(m.view.Empty.Message()))
	} else {
		parts = append(parts, m.renderRows())
	}

	parts = append(parts, "", m.renderStats())

	if m.mode == modeAdd || m.mode == modeEdit {
		parts = append(parts, m.renderInput())
	}

	if m.toast != "" {
		style := toastStyle
		if m.toastErr {
			style = errorStyle
		}
		parts = append(parts, style.Render(truncate(m.toast, m.contentWidth())))
	} else if m.persistErr != nil {
		parts = append(parts, errorStyle.Render(truncate("Not saved: "+m.persistErr.Error(), m.contentWidth())))
	}

	if m.mode == modeAdd || m.mode == modeEdit {
		parts = append(parts, m.help.ShortHelpView(m.keys.inputHelp()))
	} else {
		parts = append(parts, m.help.ShortHelpView(m.keys.ShortHelp()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return defaultWidth
	}
	return m.width
}

func (m *Model) renderHeader() string {
	title := titleStyle.Render("Checklist")

	tabs := make([]string, 0, len(view.Filters()))
	for i, f := range view.Filters() {
		label := fmt.Sprintf("%d %s", i+1, f.Label())
		if f == m.view.Filter {
			tabs = append(tabs, activeFilterStyle.Render(label))
		} else {
			tabs = append(tabs, filterStyle.Render(label))
		}
	}
	filters := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	gap := m.contentWidth() - lipgloss.Width(title) - lipgloss.Width(filters)
	if gap < 1 {
		return title + " " + filters
	}
	return title + strings.Repeat(" ", gap) + filters
}

func (m *Model) renderRows() string {
	h := m.listHeight()
	start := min(m.offset, len(m.view.Tasks))
	end := min(start+h, len(m.view.Tasks))

	lines := make([]string, 0, end-start+2) //nolint:mnd // scroll indicators
	if start > 0 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("  ↑ %d more", start)))
	}
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(m.view.Tasks[i], i == m.cursor))
	}
	if end < len(m.view.Tasks) {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("  ↓ %d more", len(m.view.Tasks)-end)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderRow(t task.Task, active bool) string {
	pointer := "  "
	if active {
		pointer = cursorStyle.Render("> ")
	}

	box := "[ ]"
	if t.Completed {
		box = checkStyle.Render("[x]")
	}

	textWidth := max(m.contentWidth()-lipgloss.Width(pointer)-4-dateColWidth, minTextWidth) //nolint:mnd // box and gap
	text := truncate(t.Text, textWidth)
	if t.Completed {
		text = doneTextStyle.Render(text)
	}
	text = padRight(text, textWidth)

	row := pointer + box + " " + text + " " + dimStyle.Render(date.Format(t.CreatedAt, m.cfg.DateFormat()))
	if t.ID == m.highlight {
		row = highlightStyle.Render(row)
	}
	return row
}

func (m *Model) renderStats() string {
	return dimStyle.Render(fmt.Sprintf("Total: %d tasks  Completed: %d tasks", m.view.Total, m.view.Completed))
}

func (m *Model) renderInput() string {
	style := inputStyle
	if m.flashing {
		style = rejectedInputStyle
	}
	label := "New task"
	if m.mode == modeEdit {
		label = fmt.Sprintf("Edit #%d", m.editID)
	}
	return dimStyle.Render(label) + "\n" + style.Render(m.input.View())
}

func (m *Model) renderCelebration() string {
	width := m.contentWidth()
	grid := make([][]string, confettiRows)
	for r := range grid {
		grid[r] = make([]string, width)
		for c := range grid[r] {
			grid[r][c] = " "
		}
	}
	for _, s := range m.confetti {
		row := (s.row + m.frame*s.speed) % confettiRows
		col := s.col % width
		grid[row][col] = lipgloss.NewStyle().Foreground(confettiPalette[s.color]).Render("★")
	}

	lines := make([]string, 0, confettiRows+1)
	for _, r := range grid {
		lines = append(lines, strings.Join(r, ""))
	}
	banner := bannerStyle.Render("★ " + celebrateText + " ★")
	lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Center, banner))
	return strings.Join(lines, "\n")
}

func (m *Model) viewDeleteConfirm() string {
	content := errorStyle.Render("Delete task?") + "\n\n" +
		fmt.Sprintf("  #%d: %s", m.deleteID, m.deleteText) + "\n\n" +
		dimStyle.Render("y:yes  n:no")

	return dialogStyle.Render(content)
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	target := min(maxLen-3, len(runes)) //nolint:mnd // room for "..."
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}

func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}
