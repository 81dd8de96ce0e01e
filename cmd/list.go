package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/checklist/internal/output"
	"github.com/twiced-technology-gmbh/checklist/internal/view"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `Lists tasks in the order they were added.

--filter selects all (default), active or completed tasks. The totals line
always counts the whole list regardless of the filter.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringP("filter", "f", string(view.All), "filter: all, active or completed")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	raw, _ := cmd.Flags().GetString("filter")
	filter, err := view.ParseFilter(raw)
	if err != nil {
		return err
	}

	return withApp(false, func(a *app) error {
		a.store.SetFilter(filter)
		v := a.store.View()

		switch outputFormat() {
		case output.FormatJSON:
			return output.JSON(os.Stdout, output.NewListResponse(v))
		case output.FormatCompact:
			output.ViewCompact(os.Stdout, v)
		default:
			output.ViewTable(os.Stdout, v, a.cfg.DateFormat())
		}
		return nil
	})
}
