package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twiced-technology-gmbh/checklist/internal/clierr"
	"github.com/twiced-technology-gmbh/checklist/internal/output"
)

var addCmd = &cobra.Command{
	Use:     "add [TEXT...]",
	Aliases: []string{"new", "create"},
	Short:   "Add a task",
	Long: `Appends a new active task to the end of the list.

Text can be given as positional arguments (joined with spaces) or via --text.
Leading and trailing whitespace is trimmed; empty text is rejected.`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().String("text", "", "task text (alternative to positional arguments)")
	addCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "title" {
			name = "text"
		}
		return pflag.NormalizedName(name)
	})
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	text, err := resolveAddText(cmd, args)
	if err != nil {
		return err
	}

	return withApp(true, func(a *app) error {
		t, err := a.store.Add(text)
		if err != nil {
			return err
		}

		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, t)
		}
		output.Messagef(os.Stdout, "Added task #%d: %s", t.ID, t.Text)
		return nil
	})
}

// resolveAddText picks the text from --text or the positional arguments.
func resolveAddText(cmd *cobra.Command, args []string) (string, error) {
	flagText, _ := cmd.Flags().GetString("text")
	posText := strings.Join(args, " ")

	if cmd.Flags().Changed("text") && len(args) > 0 {
		return "", clierr.New(clierr.InvalidInput,
			"provide the text as arguments or via --text, not both")
	}
	if cmd.Flags().Changed("text") {
		return flagText, nil
	}
	return posText, nil
}
