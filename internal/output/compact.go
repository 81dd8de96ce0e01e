package output

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/twiced-technology-gmbh/checklist/internal/task"
	"github.com/twiced-technology-gmbh/checklist/internal/view"
)

// ViewCompact renders a projected list one task per line. The empty-state
// message goes to stderr so pipelines see no rows.
func ViewCompact(w io.Writer, v view.View) {
	if len(v.Tasks) == 0 {
		fmt.Fprintln(os.Stderr, v.Empty.Message())
		return
	}
	for _, t := range v.Tasks {
		fmt.Fprintln(w, formatTaskLine(t))
	}
}

// StatsCompact renders the counts on a single line.
func StatsCompact(w io.Writer, s view.Stats) {
	fmt.Fprintf(w, "total:%d completed:%d active:%d (%d%%)\n",
		s.Total, s.Completed, s.Active, s.Percent)
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(t task.Task) string {
	return "#" + strconv.Itoa(t.ID) + " " + checkbox(t.Completed) + " " + t.Text
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// TaskCompact renders a single task on one line.
func TaskCompact(w io.Writer, t task.Task) {
	fmt.Fprintln(w, formatTaskLine(t))
}
