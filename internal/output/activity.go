package output

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/twiced-technology-gmbh/checklist/internal/activity"
)

const activityTimeLayout = "2006-01-02 15:04:05"

// ActivityTable renders journal entries oldest first.
func ActivityTable(w io.Writer, entries []activity.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No activity recorded yet.")
		return
	}

	fmt.Fprintln(w, headerStyle.Render(
		padRight("TIME", 20)+padRight("ACTION", 20)+padRight("TASK", 6)+"DETAIL")) //nolint:mnd // column widths
	for _, e := range entries {
		id := "--"
		if e.TaskID > 0 {
			id = "#" + strconv.Itoa(e.TaskID)
		}
		fmt.Fprintln(w, dimStyle.Render(padRight(e.Timestamp.Local().Format(activityTimeLayout), 20))+ //nolint:mnd // column width
			padRight(e.Action, 20)+padRight(id, 6)+truncate(e.Detail, 50)) //nolint:mnd // column widths
	}
}

// ActivityCompact renders one entry per line.
func ActivityCompact(w io.Writer, entries []activity.Entry) {
	for _, e := range entries {
		line := e.Timestamp.Local().Format(activityTimeLayout) + " " + e.Action
		if e.TaskID > 0 {
			line += " #" + strconv.Itoa(e.TaskID)
		}
		if e.Detail != "" {
			line += " " + e.Detail
		}
		fmt.Fprintln(w, line)
	}
}
