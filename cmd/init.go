package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/checklist/internal/clierr"
	"github.com/twiced-technology-gmbh/checklist/internal/config"
	"github.com/twiced-technology-gmbh/checklist/internal/kv"
	"github.com/twiced-technology-gmbh/checklist/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a checklist in the current directory",
	Long: `Creates a .checklist directory with a default config.yml. Commands run
anywhere below this directory use it instead of the home checklist.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("backend", config.DefaultBackend, "storage backend (file, sqlite, memory)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir := flagDir
	if dir == "" {
		dir = config.DefaultDir
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	// Check if already initialized.
	if _, err := os.Stat(filepath.Join(absDir, config.ConfigFileName)); err == nil {
		return clierr.Newf(clierr.InvalidInput, "checklist already initialized in %s", absDir).
			WithDetails(map[string]any{"dir": absDir})
	}

	backend, _ := cmd.Flags().GetString("backend")
	if err := kv.ValidateBackend(backend); err != nil {
		return err
	}

	cfg, err := config.Init(absDir)
	if err != nil {
		return err
	}
	if backend != cfg.Storage.Backend {
		cfg.Storage.Backend = backend
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{
			"status":  "initialized",
			"dir":     absDir,
			"config":  cfg.ConfigPath(),
			"backend": cfg.Storage.Backend,
		})
	}

	output.Messagef(os.Stdout, "Initialized checklist in %s", absDir)
	output.Messagef(os.Stdout, "  Config:  %s", cfg.ConfigPath())
	output.Messagef(os.Stdout, "  Backend: %s", cfg.Storage.Backend)
	return nil
}
