package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/checklist/internal/output"
	"github.com/twiced-technology-gmbh/checklist/internal/store"
	"github.com/twiced-technology-gmbh/checklist/internal/task"
)

var toggleCmd = &cobra.Command{
	Use:     "toggle ID[,ID,...]",
	Aliases: []string{"done", "check"},
	Short:   "Toggle tasks between active and completed",
	Long: `Flips the completion flag of one or more tasks.
Multiple IDs can be provided as a comma-separated list.`,
	Args: cobra.ExactArgs(1),
	RunE: runToggle,
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}

func runToggle(_ *cobra.Command, args []string) error {
	ids, err := parseIDs(args[0])
	if err != nil {
		return err
	}

	return withApp(true, func(a *app) error {
		allDone := false
		a.store.Subscribe(func(e store.Event) {
			if e.Kind == store.CompletedAll {
				allDone = true
			}
		})

		if len(ids) == 1 {
			if err := toggleSingleTask(a, ids[0]); err != nil {
				return err
			}
		} else if err := runBatch(ids, func(id int) (output.BatchResult, error) {
			completed, err := executeToggle(a, id)
			if err != nil {
				return output.BatchResult{}, err
			}
			return output.BatchResult{Completed: &completed}, nil
		}); err != nil {
			return err
		}

		// A later id in the batch may have reopened a task.
		if allDone && a.store.View().AllCompleted() && outputFormat() != output.FormatJSON {
			output.Messagef(os.Stdout, "All tasks completed!")
		}
		return nil
	})
}

func toggleSingleTask(a *app, id int) error {
	if _, err := executeToggle(a, id); err != nil {
		return err
	}
	t, _ := a.store.Get(id)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}

	state := "active"
	if t.Completed {
		state = "completed"
	}
	output.Messagef(os.Stdout, "Marked task #%d %s: %s", t.ID, state, t.Text)
	return nil
}

// executeToggle flips one task and reports its new state.
func executeToggle(a *app, id int) (bool, error) {
	completed, ok := a.store.Toggle(id)
	if !ok {
		return false, task.NotFound(id)
	}
	return completed, nil
}
