// Package logging builds the zap logger used by makegen.
// Every subsystem logs through a named child logger so console output
// reads "manifest", "recipe", "build" next to each line.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"makegen/internal/config"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot     Category = "boot"     // Config loading, startup
	CategoryManifest Category = "manifest" // Manifest substitution and verification
	CategoryRecipe   Category = "recipe"   // Makefile rendering and writing
	CategoryBuild    Category = "build"    // Pipeline orchestration, lib dir checks
)

// ParseLevel maps a config level string onto a zap level.
// Unknown strings fall back to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// NewConfig turns a LoggingConfig into a zap.Config writing to stderr.
// verbose forces debug level regardless of the configured level.
func NewConfig(cfg config.LoggingConfig, verbose bool) zap.Config {
	var zc zap.Config
	if strings.EqualFold(cfg.Format, "json") {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zc.DisableStacktrace = true
	}

	level := ParseLevel(cfg.Level)
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc
}

// New builds the process logger.
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	logger, err := NewConfig(cfg, verbose).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Get returns a child logger for the category. A nil parent yields a no-op
// logger so library code never has to nil-check.
func Get(parent *zap.Logger, category Category) *zap.Logger {
	if parent == nil {
		return zap.NewNop()
	}
	return parent.Named(string(category))
}
