package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/twiced-technology-gmbh/checklist/internal/date"
	"github.com/twiced-technology-gmbh/checklist/internal/task"
	"github.com/twiced-technology-gmbh/checklist/internal/view"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	textDone    = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Strikethrough(true)
	boldStyle   = lipgloss.NewStyle().Bold(true)
)

// DisableColor strips all styling from table output.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	doneStyle = lipgloss.NewStyle()
	textDone = lipgloss.NewStyle()
	boldStyle = lipgloss.NewStyle()
}

// ViewTable renders a projected list as a table followed by the counts
// line. Dates use layout.
func ViewTable(w io.Writer, v view.View, layout string) {
	if len(v.Tasks) == 0 {
		fmt.Fprintln(os.Stderr, v.Empty.Message())
		StatsLine(w, v.Stats())
		return
	}

	const pad = 2
	idW, textW := 4, 6
	for _, t := range v.Tasks {
		idW = max(idW, len(strconv.Itoa(t.ID))+pad)
		textW = max(textW, min(lipgloss.Width(t.Text)+pad, 60)) //nolint:mnd // max text column width
	}
	const doneW = 6

	header := fmt.Sprintf("%-*s %-*s %-*s %s", idW, "ID", doneW, "DONE", textW, "TEXT", "CREATED")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, t := range v.Tasks {
		text := truncate(t.Text, textW-pad)
		box := checkbox(t.Completed)
		if t.Completed {
			box = doneStyle.Render(box)
			text = textDone.Render(text)
		}
		row := fmt.Sprintf("%-*d %s %s %s",
			idW, t.ID,
			padRight(box, doneW),
			padRight(text, textW),
			dimStyle.Render(date.Format(t.CreatedAt, layout)))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}

	fmt.Fprintln(w)
	StatsLine(w, v.Stats())
}

// StatsLine prints the "Total / Completed" summary shown under a list.
func StatsLine(w io.Writer, s view.Stats) {
	fmt.Fprintf(w, "%s  %s\n",
		dimStyle.Render(fmt.Sprintf("Total: %d %s", s.Total, plural(s.Total, "task", "tasks"))),
		dimStyle.Render(fmt.Sprintf("Completed: %d %s", s.Completed, plural(s.Completed, "task", "tasks"))))
}

// StatsTable renders the counts as a small dashboard.
func StatsTable(w io.Writer, s view.Stats) {
	fmt.Fprintln(w, boldStyle.Render("Checklist"))
	printField(w, "Total", strconv.Itoa(s.Total))
	printField(w, "Completed", doneStyle.Render(strconv.Itoa(s.Completed)))
	printField(w, "Active", strconv.Itoa(s.Active))
	printField(w, "Progress", ProgressBar(s.Percent, 20)+" "+strconv.Itoa(s.Percent)+"%") //nolint:mnd // bar width
}

// TaskDetail renders a single task with full detail.
func TaskDetail(w io.Writer, t task.Task, layout string) {
	titleLine := fmt.Sprintf("Task #%d: %s", t.ID, t.Text)
	fmt.Fprintln(w, boldStyle.Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", lipgloss.Width(titleLine)))

	status := "active"
	if t.Completed {
		status = doneStyle.Render("completed")
	}
	printField(w, "Status", status)
	printField(w, "Created", date.Format(t.CreatedAt, layout))
	printField(w, "Age", date.Since(time.Now(), t.CreatedAt))
}

// ProgressBar renders percent as a bar of the given width.
func ProgressBar(percent, width int) string {
	percent = min(max(percent, 0), 100) //nolint:mnd // percentage
	filled := percent * width / 100     //nolint:mnd // percentage
	return doneStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled))
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// truncate shortens s to at most width visible cells, adding "..." when cut.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	const ellipsis = "..."
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+len(ellipsis) > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + ellipsis
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}
