package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/checklist/internal/clierr"
	"github.com/twiced-technology-gmbh/checklist/internal/config"
	"github.com/twiced-technology-gmbh/checklist/internal/output"
	"github.com/twiced-technology-gmbh/checklist/internal/watcher"
)

var flagWatch bool

var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"summary"},
	Short:   "Show task counts",
	Long: `Displays the total number of tasks, how many are completed and how many
remain.

Use --watch to keep the display live-updating. The counts re-render whenever
the stored list changes on disk (e.g., from another terminal). Press Ctrl+C
to stop.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "live-update the counts on changes")
}

func runStats(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := renderStats(cfg); err != nil {
		return err
	}

	if !flagWatch {
		return nil
	}

	return watchStats(cfg)
}

func renderStats(cfg *config.Config) error {
	a, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	stats := a.store.View().Stats()

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, stats)
	case output.FormatCompact:
		output.StatsCompact(os.Stdout, stats)
	default:
		output.StatsTable(os.Stdout, stats)
	}
	return nil
}

func watchStats(cfg *config.Config) error {
	names := watchNames(cfg)
	if len(names) == 0 {
		return clierr.Newf(clierr.InvalidInput,
			"--watch needs a persistent backend; %q keeps nothing on disk", cfg.Storage.Backend)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := watcher.New(cfg.Dir(), names, func() {
		clearScreen()
		if renderErr := renderStats(cfg); renderErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: rendering stats: %v\n", renderErr)
		}
	})
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer w.Close()

	fmt.Fprintln(os.Stderr, "Watching for changes... (Ctrl+C to stop)")

	w.Run(ctx, func(watchErr error) {
		fmt.Fprintf(os.Stderr, "Warning: file watcher: %v\n", watchErr)
	})

	return nil
}

// clearScreen sends ANSI escape codes to clear the terminal and move the
// cursor to the top-left corner.
func clearScreen() {
	fmt.Fprint(os.Stdout, "\033[2J\033[H")
}
