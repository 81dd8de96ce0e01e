package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/checklist/internal/output"
	"github.com/twiced-technology-gmbh/checklist/internal/task"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show task details",
	Long:  `Displays a single task with its status and creation date.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	id, err := task.ParseID(args[0])
	if err != nil {
		return err
	}

	return withApp(false, func(a *app) error {
		t, ok := a.store.Get(id)
		if !ok {
			return task.NotFound(id)
		}

		format := outputFormat()
		if format == output.FormatJSON {
			return output.JSON(os.Stdout, t)
		}
		if format == output.FormatCompact {
			output.TaskCompact(os.Stdout, t)
			return nil
		}

		output.TaskDetail(os.Stdout, t, a.cfg.DateFormat())
		return nil
	})
}
