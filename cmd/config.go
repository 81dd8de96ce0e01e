package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/checklist/internal/clierr"
	"github.com/twiced-technology-gmbh/checklist/internal/config"
	"github.com/twiced-technology-gmbh/checklist/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify configuration",
	Long:  `View the full configuration, get a specific key, or set a writable value.`,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor describes how to get and set a config key.
type configAccessor struct {
	get      func(*config.Config) any
	set      func(*config.Config, string) error
	writable bool
}

func stringAccessor(field func(*config.Config) *string) configAccessor {
	return configAccessor{
		get:      func(c *config.Config) any { return *field(c) },
		set:      func(c *config.Config, v string) error { *field(c) = v; return nil },
		writable: true,
	}
}

func durationAccessor(key string, field func(*config.Config) *string) configAccessor {
	return configAccessor{
		get: func(c *config.Config) any { return *field(c) },
		set: func(c *config.Config, v string) error {
			if _, err := time.ParseDuration(v); err != nil {
				return clierr.Newf(clierr.InvalidInput,
					"invalid %s %q: %v", key, v, err)
			}
			*field(c) = v
			return nil
		},
		writable: true,
	}
}

func configAccessors() map[string]configAccessor {
	return map[string]configAccessor{
		"version": {
			get: func(c *config.Config) any { return c.Version },
		},
		"dir": {
			get: func(c *config.Config) any { return c.Dir() },
		},
		"storage.backend": stringAccessor(func(c *config.Config) *string { return &c.Storage.Backend }),
		"storage.key":     stringAccessor(func(c *config.Config) *string { return &c.Storage.Key }),
		"log.level":       stringAccessor(func(c *config.Config) *string { return &c.Log.Level }),
		"log.file":        stringAccessor(func(c *config.Config) *string { return &c.Log.File }),
		"activity_log": {
			get: func(c *config.Config) any { return c.ActivityLog },
			set: func(c *config.Config, v string) error {
				b, err := strconv.ParseBool(v)
				if err != nil {
					return clierr.Newf(clierr.InvalidInput,
						"invalid activity_log %q: must be true or false", v)
				}
				c.ActivityLog = b
				return nil
			},
			writable: true,
		},
		"tui.celebration": durationAccessor("tui.celebration", func(c *config.Config) *string { return &c.TUI.Celebration }),
		"tui.toast":       durationAccessor("tui.toast", func(c *config.Config) *string { return &c.TUI.Toast }),
		"tui.date_format": stringAccessor(func(c *config.Config) *string { return &c.TUI.DateFormat }),
	}
}

// allConfigKeys returns config keys in display order.
func allConfigKeys() []string {
	return []string{
		"version",
		"dir",
		"storage.backend",
		"storage.key",
		"log.level",
		"log.file",
		"activity_log",
		"tui.celebration",
		"tui.toast",
		"tui.date_format",
	}
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	accessors := configAccessors()

	if outputFormat() == output.FormatJSON {
		m := make(map[string]any, len(accessors))
		for _, key := range allConfigKeys() {
			m[key] = accessors[key].get(cfg)
		}
		return output.JSON(os.Stdout, m)
	}

	for _, key := range allConfigKeys() {
		val := accessors[key].get(cfg)
		fmt.Fprintf(os.Stdout, "%-20s %v\n", key, formatConfigValue(val))
	}
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key := args[0]
	acc, ok := configAccessors()[key]
	if !ok {
		return unknownConfigKey(key)
	}

	val := acc.get(cfg)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, val)
	}

	fmt.Fprintln(os.Stdout, formatConfigValue(val))
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	acc, ok := configAccessors()[key]
	if !ok {
		return unknownConfigKey(key)
	}
	if !acc.writable {
		return clierr.Newf(clierr.InvalidInput, "config key %q is read-only", key)
	}

	if err := acc.set(cfg, value); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			return err
		}
		return clierr.New(clierr.InvalidInput, err.Error())
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"key": key, "value": acc.get(cfg)})
	}

	output.Messagef(os.Stdout, "Set %s = %v", key, formatConfigValue(acc.get(cfg)))
	return nil
}

func unknownConfigKey(key string) error {
	return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key).
		WithDetails(map[string]any{"key": key, "allowed": allConfigKeys()})
}

func formatConfigValue(val any) string {
	switch v := val.(type) {
	case []string:
		return strings.Join(v, ", ")
	case string:
		if v == "" {
			return "--"
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
