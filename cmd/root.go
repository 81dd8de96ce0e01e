// Package cmd implements the checklist CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/checklist/internal/clierr"
	"github.com/twiced-technology-gmbh/checklist/internal/config"
	"github.com/twiced-technology-gmbh/checklist/internal/output"
	"github.com/twiced-technology-gmbh/checklist/internal/task"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagDir     string
	flagNoColor bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "checklist",
	Short: "A small terminal task list",
	Long: `checklist keeps a single list of short tasks you can add, complete, edit
and delete. Run checklist with no arguments to open the TUI, or use the
subcommands from scripts.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to the checklist data directory")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "log at debug level")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	if outputFormat() == output.FormatJSON {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// defaultHomeDir returns the path to ~/.config/checklist.
func defaultHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "checklist"), nil
}

// resolveDir returns the data directory: --dir, then $CHECKLIST_DIR, then a
// .checklist directory found upward from the working directory, then
// ~/.config/checklist.
func resolveDir() (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}
	if env := strings.TrimSpace(os.Getenv(config.EnvDir)); env != "" {
		return env, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	dir, err := config.FindDir(cwd)
	if err == nil {
		return dir, nil
	}

	return defaultHomeDir()
}

// loadConfig finds and loads the config. The home default directory is
// created with defaults on first use.
func loadConfig() (*config.Config, error) {
	dir, err := resolveDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir)
	if err == nil {
		return cfg, nil
	}

	if !errors.Is(err, config.ErrNotFound) {
		return nil, err
	}
	homeDir, homeErr := defaultHomeDir()
	if homeErr != nil || dir != homeDir {
		return nil, clierr.Newf(clierr.InvalidInput,
			"no checklist found in %s; run checklist init", dir).
			WithDetails(map[string]any{"dir": dir})
	}

	return config.Init(homeDir)
}

// outputFormat returns the format chosen by the flags or $CHECKLIST_OUTPUT.
func outputFormat() output.Format {
	return output.Choose(flagJSON, flagCompact, flagTable, os.Getenv(output.EnvOutput))
}

// parseIDs splits a comma-separated ID string into deduplicated int IDs.
func parseIDs(arg string) ([]int, error) {
	return task.ParseIDs(arg)
}

// runBatch executes fn for each ID and collects results. Returns a SilentError
// with exit code 1 if any operation failed (after outputting results).
func runBatch(ids []int, fn func(int) (output.BatchResult, error)) error {
	results := make([]output.BatchResult, 0, len(ids))
	anyFailed := false

	for _, id := range ids {
		res, err := fn(id)
		res.ID = id
		if err != nil {
			anyFailed = true
			res.OK = false
			var cliErr *clierr.Error
			if errors.As(err, &cliErr) {
				res.Error, res.Code = cliErr.Message, cliErr.Code
			} else {
				res.Error = err.Error()
			}
		} else {
			res.OK = true
		}
		results = append(results, res)
	}

	if outputFormat() == output.FormatJSON {
		if err := output.JSON(os.Stdout, results); err != nil {
			return err
		}
	} else {
		var succeeded int
		for _, r := range results {
			if r.OK {
				succeeded++
			} else {
				fmt.Fprintf(os.Stderr, "Error: task #%d: %s\n", r.ID, r.Error)
			}
		}
		output.Messagef(os.Stdout, "Completed %d/%d operations", succeeded, len(ids))
	}

	if anyFailed {
		return &clierr.SilentError{Code: 1}
	}
	return nil
}
