package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/checklist/internal/kv"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("no checklist found (run 'checklist init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents the checklist configuration.
type Config struct {
	Version     int           `yaml:"version"`
	Storage     StorageConfig `yaml:"storage"`
	Log         LogConfig     `yaml:"log"`
	ActivityLog bool          `yaml:"activity_log"`
	TUI         TUIConfig     `yaml:"tui,omitempty"`

	// dir is the absolute path to the data directory (not serialized).
	dir string `yaml:"-"`
}

// StorageConfig selects where the task list is persisted.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	Key     string `yaml:"key"`
}

// LogConfig controls diagnostic logging. An empty File logs to stderr.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// TUIConfig holds TUI-specific display settings.
type TUIConfig struct {
	Celebration string `yaml:"celebration,omitempty"`
	Toast       string `yaml:"toast,omitempty"`
	DateFormat  string `yaml:"date_format,omitempty"`
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Version:     CurrentVersion,
		Storage:     StorageConfig{Backend: DefaultBackend, Key: DefaultKey},
		Log:         LogConfig{Level: DefaultLogLevel, File: DefaultLogFile},
		ActivityLog: true,
		TUI: TUIConfig{
			Celebration: DefaultCelebration,
			Toast:       DefaultToast,
			DateFormat:  DefaultDateFormat,
		},
	}
}

// Dir returns the absolute path to the data directory.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the data directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// LogPath returns the log file path, or "" to log to stderr.
func (c *Config) LogPath() string {
	if c.Log.File == "" {
		return ""
	}
	if filepath.IsAbs(c.Log.File) {
		return c.Log.File
	}
	return filepath.Join(c.dir, c.Log.File)
}

// CelebrationDuration returns how long the all-done banner is shown.
func (c *Config) CelebrationDuration() time.Duration {
	return durationOr(c.TUI.Celebration, DefaultCelebration)
}

// ToastDuration returns how long transient TUI messages are shown.
func (c *Config) ToastDuration() time.Duration {
	return durationOr(c.TUI.Toast, DefaultToast)
}

// DateFormat returns the layout for creation dates.
func (c *Config) DateFormat() string {
	if c.TUI.DateFormat == "" {
		return DefaultDateFormat
	}
	return c.TUI.DateFormat
}

func durationOr(s, fallback string) time.Duration {
	if s == "" {
		s = fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if err := kv.ValidateBackend(c.Storage.Backend); err != nil {
		return fmt.Errorf("%w: storage.backend: %w", ErrInvalid, err)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("%w: storage.key is required", ErrInvalid)
	}
	if !slices.Contains(LogLevels, c.Log.Level) {
		return fmt.Errorf("%w: log.level %q must be one of %v", ErrInvalid, c.Log.Level, LogLevels)
	}
	return c.validateTUI()
}

func (c *Config) validateTUI() error {
	for name, v := range map[string]string{
		"tui.celebration": c.TUI.Celebration,
		"tui.toast":       c.TUI.Toast,
	} {
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: invalid %s %q: %w", ErrInvalid, name, v, err)
		}
		if d < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalid, name)
		}
	}
	return nil
}

// Init creates a data directory with a default config file.
func Init(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg := NewDefault()
	cfg.SetDir(absDir)

	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates a config from the given data directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.dir = absDir

	// Migrate old config versions forward before validating.
	oldVersion := cfg.Version
	if err := migrate(&cfg); err != nil {
		return nil, err
	}

	// Persist migrated config so future loads skip re-migration.
	if cfg.Version != oldVersion {
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("saving migrated config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindDir walks upward from startDir looking for a data directory
// containing config.yml. Returns the absolute path to the data directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the data directory itself.
		if filepath.Base(dir) == DefaultDir {
			if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}
