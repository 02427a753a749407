// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the zap loggers used across promptpro.
//
// The terminal UI owns stdout while it runs, so its logger writes to a file.
// Commands and the site server log to stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/promptvita/promptpro/internal/config"
)

// Sink selects where log output goes.
type Sink int

const (
	// SinkStderr writes to standard error.
	SinkStderr Sink = iota
	// SinkFile writes to LoggingConfig.File or <config dir>/logs/promptpro.log.
	SinkFile
)

// New builds a logger from cfg.
func New(cfg config.LoggingConfig, sink Sink) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	if cfg.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	switch sink {
	case SinkFile:
		path, err := LogFilePath(cfg)
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		zc.OutputPaths = []string{path}
		zc.ErrorOutputPaths = []string{path}
	default:
		zc.OutputPaths = []string{"stderr"}
		zc.ErrorOutputPaths = []string{"stderr"}
	}

	return zc.Build()
}

// LogFilePath resolves the file used by SinkFile.
func LogFilePath(cfg config.LoggingConfig) (string, error) {
	if cfg.File != "" {
		return cfg.File, nil
	}
	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs", "promptpro.log"), nil
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
