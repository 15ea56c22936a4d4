// Package logger builds the diagnostic logger.
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Options selects where diagnostics go.
type Options struct {
	// Debug enables debug level output.
	Debug bool
	// File receives JSON lines when set. Without it debug output goes to stderr.
	File string
}

// New returns a logger for opts. With neither Debug nor File set diagnostics
// are discarded.
func New(opts Options) (*zap.Logger, error) {
	if opts.File == "" {
		if opts.Debug {
			return zap.NewDevelopment()
		}
		return zap.NewNop(), nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	cfg := zap.NewProductionConfig()
	if opts.Debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	cfg.OutputPaths = []string{opts.File}
	cfg.ErrorOutputPaths = []string{opts.File}
	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log, nil
}
