package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/checklist/internal/clierr"
	"github.com/twiced-technology-gmbh/checklist/internal/output"
	"github.com/twiced-technology-gmbh/checklist/internal/task"
)

var editCmd = &cobra.Command{
	Use:   "edit ID TEXT...",
	Short: "Replace the text of a task",
	Long: `Replaces the text of an existing task. The completion flag and creation
time are kept. Empty text is rejected and leaves the task unchanged.`,
	Args: cobra.MinimumNArgs(2), //nolint:mnd // id and text
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(_ *cobra.Command, args []string) error {
	id, err := task.ParseID(args[0])
	if err != nil {
		return err
	}
	text := strings.Join(args[1:], " ")

	return withApp(true, func(a *app) error {
		before, found := a.store.Get(id)
		if !found {
			return task.NotFound(id)
		}

		if normalized, err := task.NormalizeText(text); err == nil && normalized == before.Text {
			return clierr.Newf(clierr.NoChanges, "task #%d already has this text", id).
				WithDetails(map[string]any{"id": id})
		}

		t, _, err := a.store.Edit(id, text)
		if err != nil {
			return err
		}

		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, t)
		}
		output.Messagef(os.Stdout, "Updated task #%d: %s", t.ID, t.Text)
		return nil
	})
}
