// Package date formats task creation times for display.
package date

import (
	"strconv"
	"time"
)

// DefaultLayout renders dates as "Jan 2, 2006".
const DefaultLayout = "Jan 2, 2006"

// Format renders t in local time using layout. A zero time renders as
// "--" and an empty layout falls back to DefaultLayout.
func Format(t time.Time, layout string) string {
	if t.IsZero() {
		return "--"
	}
	if layout == "" {
		layout = DefaultLayout
	}
	return t.Local().Format(layout)
}

// Since renders the age of t relative to now as a short string such as
// "just now", "5m ago", "3h ago" or "2d ago".
func Since(now, t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return strconv.Itoa(int(d.Minutes())) + "m ago"
	case d < 24*time.Hour: //nolint:mnd // hours per day
		return strconv.Itoa(int(d.Hours())) + "h ago"
	default:
		return strconv.Itoa(int(d.Hours()/24)) + "d ago" //nolint:mnd // hours per day
	}
}
