// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/promptvita/promptpro/internal/api"
	"github.com/promptvita/promptpro/internal/auth"
	"github.com/promptvita/promptpro/internal/config"
	pperrors "github.com/promptvita/promptpro/internal/errors"
	"github.com/promptvita/promptpro/internal/logging"
	"github.com/promptvita/promptpro/internal/storage"
)

// envMode selects what newEnv wires up.
type envMode int

const (
	// modeCommand logs warnings to stderr and opens the credential store.
	modeCommand envMode = iota
	// modeTUI logs to a file because the screen belongs to the UI.
	modeTUI
	// modeServer logs at the configured level and needs no store.
	modeServer
)

// env holds everything a command needs, built from config and flags.
type env struct {
	cfg     *config.Config
	logger  *zap.Logger
	client  *api.Client
	store   storage.Store
	session *auth.Manager

	out    io.Writer
	errOut io.Writer
}

// newEnv loads config, applies root flags and opens collaborators.
func newEnv(cmd *cobra.Command, opts *rootOptions, mode envMode) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, pperrors.Wrap(pperrors.ErrConfigInvalid, "could not load config",
			"Check ~/.promptpro/config.toml or run `promptpro config show`", err)
	}
	opts.apply(cfg)

	logCfg := cfg.Logging
	sink := logging.SinkStderr
	switch mode {
	case modeTUI:
		sink = logging.SinkFile
	case modeCommand:
		if !opts.verbose {
			logCfg.Level = "warn"
		}
	}
	if opts.verbose {
		logCfg.Level = "debug"
	}
	logger, err := logging.New(logCfg, sink)
	if err != nil {
		return nil, pperrors.ConfigInvalid(err.Error())
	}

	e := &env{
		cfg:    cfg,
		logger: logger,
		client: api.NewClient(cfg.API.BaseURL).
			WithTimeout(cfg.API.Timeout()).
			WithRateLimit(cfg.API.RateLimit, cfg.API.Burst).
			WithLogger(logger.Named("api")).
			WithUserAgent("promptpro/" + Version),
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}

	if mode == modeServer {
		return e, nil
	}

	store, err := storage.Open(cfg.Storage)
	if err != nil {
		_ = logger.Sync()
		return nil, pperrors.Wrap(pperrors.ErrStorageFailed, "could not open session storage", "", err)
	}
	e.store = store
	e.session = auth.NewManager(e.client, store, logger.Named("auth"))
	return e, nil
}

// loadSession adopts stored credentials without a server round trip. An
// expired token is ignored so the request goes out anonymously.
func (e *env) loadSession() bool {
	state, _ := e.session.Reload()
	if state != auth.StateAuthenticated {
		return false
	}
	if auth.TokenExpired(e.session.Token(), time.Now()) {
		e.logger.Debug("stored token expired; continuing anonymously")
		e.client.SetToken("")
		return false
	}
	return true
}

// Close releases the store and flushes logs.
func (e *env) Close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.logger.Warn("close storage", zap.Error(err))
		}
	}
	_ = e.logger.Sync()
}
