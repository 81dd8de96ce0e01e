// Package output renders checklist views, task details and command results
// for people (table, compact) and for scripts (JSON).
package output

import (
	"fmt"
	"strings"
)

// EnvOutput names the variable holding the default format for scripts.
const EnvOutput = "CHECKLIST_OUTPUT"

// Format is how a command prints its result.
type Format int

const (
	FormatTable Format = iota
	FormatJSON
	FormatCompact
)

var formatNames = map[string]Format{
	"table":   FormatTable,
	"json":    FormatJSON,
	"compact": FormatCompact,
	"oneline": FormatCompact,
}

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatCompact:
		return "compact"
	default:
		return "table"
	}
}

// ParseFormat maps a format name to a Format. Case and surrounding space are
// ignored; "oneline" is accepted for compact.
func ParseFormat(name string) (Format, error) {
	f, ok := formatNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return FormatTable, fmt.Errorf("unknown output format %q", name)
	}
	return f, nil
}

// Choose picks the format for one command run. An explicit flag wins, with
// json ahead of compact ahead of table. Otherwise envValue decides, and an
// empty or unknown value falls back to table.
func Choose(jsonFlag, compactFlag, tableFlag bool, envValue string) Format {
	switch {
	case jsonFlag:
		return FormatJSON
	case compactFlag:
		return FormatCompact
	case tableFlag:
		return FormatTable
	}
	f, err := ParseFormat(envValue)
	if err != nil {
		return FormatTable
	}
	return f
}
