package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/checklist/internal/activity"
	"github.com/twiced-technology-gmbh/checklist/internal/output"
)

const defaultHistoryLimit = 20

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"log"},
	Short:   "Show recent changes",
	Long: `Prints the most recent entries of the activity journal, oldest first.
The journal is only written when activity_log is enabled in the config.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", defaultHistoryLimit, "number of entries to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := activity.Read(cfg.Dir(), limit)
	if err != nil {
		return err
	}

	switch outputFormat() {
	case output.FormatJSON:
		if entries == nil {
			entries = []activity.Entry{}
		}
		return output.JSON(os.Stdout, entries)
	case output.FormatCompact:
		output.ActivityCompact(os.Stdout, entries)
	default:
		output.ActivityTable(os.Stdout, entries)
	}
	return nil
}
