package cmd

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/twiced-technology-gmbh/checklist/internal/config"
	"github.com/twiced-technology-gmbh/checklist/internal/kv"
	"github.com/twiced-technology-gmbh/checklist/internal/tui"
	"github.com/twiced-technology-gmbh/checklist/internal/watcher"
)

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	model := tui.New(a.store, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		startTUIWatcher(ctx, cfg, a.log, p)
		return nil
	})

	return g.Wait()
}

// watchNames returns the files in the data dir that hold the task list.
func watchNames(cfg *config.Config) []string {
	return kv.Files(cfg.Storage.Backend, cfg.Storage.Key)
}

// startTUIWatcher reloads the model whenever another process rewrites the
// stored list. It returns when ctx is done.
func startTUIWatcher(ctx context.Context, cfg *config.Config, log *zap.Logger, p *tea.Program) {
	names := watchNames(cfg)
	if len(names) == 0 {
		return
	}
	w, err := watcher.New(cfg.Dir(), names, func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		// Non-fatal: the TUI works without live refresh.
		log.Warn("live reload disabled", zap.Error(err))
		return
	}
	defer w.Close()
	w.Run(ctx, func(err error) {
		log.Warn("file watcher error", zap.Error(err))
	})
}
