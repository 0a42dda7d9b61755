// Package logging builds the structured logger used by the xon command.
package logging

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a production zap logger writing JSON to stderr. Debug
// lowers the level so V(1) messages from the loader and query packages are
// emitted.
func NewLogger(debug bool, version string) (logr.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if debug {
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	zl, err := zapCfg.Build()
	if err != nil {
		return logr.Discard(), err
	}
	return FromZap(zl, version), nil
}

// FromZap wraps an existing zap logger, tagging every entry with the build
// version when one is given.
func FromZap(zl *zap.Logger, version string) logr.Logger {
	logger := zapr.NewLogger(zl)
	if version != "" {
		logger = logger.WithValues("version", version)
	}
	return logger
}
