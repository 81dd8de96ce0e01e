// Package logging builds the zap logger used for diagnostics.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/twiced-technology-gmbh/checklist/internal/config"
)

// Level resolves the effective level: verbose wins, then the environment,
// then the config value.
func Level(cfg *config.Config, verbose bool) (zapcore.Level, error) {
	if verbose {
		return zapcore.DebugLevel, nil
	}
	name := cfg.Log.Level
	if env := strings.TrimSpace(os.Getenv(config.EnvLogLevel)); env != "" {
		name = env
	}
	if name == "" {
		name = config.DefaultLogLevel
	}
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("parsing log level: %w", err)
	}
	return lvl, nil
}

// New returns a JSON logger writing to the configured log file, or to
// stderr when none is configured.
func New(cfg *config.Config, verbose bool) (*zap.Logger, error) {
	lvl, err := Level(cfg, verbose)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.Sampling = nil
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	if path := cfg.LogPath(); path != "" {
		zc.OutputPaths = []string{path}
	}

	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return log, nil
}
