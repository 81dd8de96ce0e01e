package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/checklist/internal/clierr"
	"github.com/twiced-technology-gmbh/checklist/internal/output"
	"github.com/twiced-technology-gmbh/checklist/internal/task"
)

// stdinIsTerminal reports whether a confirmation prompt can be shown.
var stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

var deleteCmd = &cobra.Command{
	Use:     "delete ID[,ID,...]",
	Aliases: []string{"rm"},
	Short:   "Delete tasks",
	Long: `Removes tasks from the list. Deleted IDs are never reused.
Multiple IDs can be provided as a comma-separated list (requires --yes).`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args[0])
	if err != nil {
		return err
	}

	yes, _ := cmd.Flags().GetBool("yes")

	// Batch mode requires --yes.
	if len(ids) > 1 && !yes {
		return clierr.New(clierr.ConfirmationReq,
			"batch delete requires --yes")
	}

	return withApp(true, func(a *app) error {
		if len(ids) == 1 {
			return deleteSingleTask(a, ids[0], yes)
		}
		return runBatch(ids, func(id int) (output.BatchResult, error) {
			_, err := executeDelete(a, id)
			return output.BatchResult{}, err
		})
	})
}

// deleteSingleTask handles a single task delete with confirmation and output.
func deleteSingleTask(a *app, id int, yes bool) error {
	t, ok := a.store.Get(id)
	if !ok {
		return task.NotFound(id)
	}

	// Require confirmation in TTY mode unless --yes.
	if !yes {
		if !stdinIsTerminal() {
			return clierr.New(clierr.ConfirmationReq,
				"cannot prompt for confirmation (not a terminal); use --yes")
		}
		fmt.Fprintf(os.Stderr, "Delete task #%d %q? [y/N] ", t.ID, t.Text)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(os.Stderr, "Canceled.")
			return nil
		}
	}

	if _, err := executeDelete(a, id); err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status": "deleted",
			"id":     t.ID,
			"text":   t.Text,
		})
	}

	output.Messagef(os.Stdout, "Deleted task #%d: %s", t.ID, t.Text)
	return nil
}

// executeDelete removes one task and returns what was removed.
func executeDelete(a *app, id int) (task.Task, error) {
	t, ok := a.store.Get(id)
	if !ok || !a.store.Delete(id) {
		return task.Task{}, task.NotFound(id)
	}
	return t, nil
}
