// Package config handles checklist configuration.
package config

const (
	// DefaultDir is the per-project data directory name.
	DefaultDir = ".checklist"
	// ConfigFileName is the name of the config file within the data directory.
	ConfigFileName = "config.yml"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 2

	// DefaultBackend is the storage backend for new configs.
	DefaultBackend = "file"
	// DefaultKey is the storage slot holding the task list.
	DefaultKey = "tasks"

	// DefaultLogLevel is the zap level used when none is configured.
	DefaultLogLevel = "warn"
	// DefaultLogFile is the log file name inside the data directory.
	DefaultLogFile = "checklist.log"

	// DefaultCelebration is how long the all-done banner stays up.
	DefaultCelebration = "3s"
	// DefaultToast is how long transient TUI messages stay up.
	DefaultToast = "2s"
	// DefaultDateFormat is the Go layout used for creation dates.
	DefaultDateFormat = "Jan 2, 2006"

	// EnvDir overrides the data directory.
	EnvDir = "CHECKLIST_DIR"
	// EnvLogLevel overrides log.level.
	EnvLogLevel = "CHECKLIST_LOG_LEVEL"
)

// LogLevels are the accepted log.level values.
var LogLevels = []string{"debug", "info", "warn", "error"}
