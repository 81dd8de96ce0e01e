package cmd

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/twiced-technology-gmbh/checklist/internal/activity"
	"github.com/twiced-technology-gmbh/checklist/internal/clierr"
	"github.com/twiced-technology-gmbh/checklist/internal/config"
	"github.com/twiced-technology-gmbh/checklist/internal/filelock"
	"github.com/twiced-technology-gmbh/checklist/internal/kv"
	"github.com/twiced-technology-gmbh/checklist/internal/logging"
	"github.com/twiced-technology-gmbh/checklist/internal/store"
)

// mutateLockName serializes CLI read-modify-write cycles across processes.
// It is separate from the storage lock, which is taken inside each write.
const mutateLockName = ".checklist.lock"

// app bundles the collaborators a command works with.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	storage kv.Storage
	store   *store.Store

	persistErr error
}

// openApp builds the logger, opens the configured storage and hydrates a
// store from it.
func openApp(cfg *config.Config) (*app, error) {
	log, err := logging.New(cfg, flagVerbose)
	if err != nil {
		return nil, err
	}

	storage, err := kv.Open(cfg.Storage.Backend, cfg.Dir())
	if err != nil {
		_ = log.Sync()
		return nil, err
	}

	a := &app{cfg: cfg, log: log, storage: storage}
	a.store = store.New(storage,
		store.WithLogger(log),
		store.WithKey(cfg.Storage.Key),
	)
	a.store.Subscribe(func(e store.Event) {
		if e.Kind == store.PersistFailed && a.persistErr == nil {
			a.persistErr = e.Err
		}
	})
	if cfg.ActivityLog {
		a.store.Subscribe(activity.Listener(cfg.Dir(), log))
	}
	return a, nil
}

// close releases the storage and flushes the logger.
func (a *app) close() {
	if err := a.storage.Close(); err != nil {
		a.log.Warn("closing storage failed", zap.Error(err))
	}
	_ = a.log.Sync()
}

// saveErr reports a failed write. The change was applied in memory but a
// one-shot command exits right after, so it is surfaced as an error.
func (a *app) saveErr() error {
	if a.persistErr == nil {
		return nil
	}
	return clierr.Newf(clierr.StorageError, "could not save task list: %v", a.persistErr).
		WithDetails(map[string]any{"backend": a.cfg.Storage.Backend})
}

// withApp loads the config, opens the app and runs fn. Mutating commands
// hold the mutate lock from hydration until the final write.
func withApp(mutating bool, fn func(*app) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	run := func() error {
		a, err := openApp(cfg)
		if err != nil {
			return err
		}
		defer a.close()

		if err := fn(a); err != nil {
			return err
		}
		return a.saveErr()
	}

	if !mutating {
		return run()
	}
	return filelock.With(filepath.Join(cfg.Dir(), mutateLockName), run)
}
