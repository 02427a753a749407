// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for promptpro.
//
// Supports TOML, YAML and JSON configuration files, a .env file in the working
// directory, PROMPTPRO_* environment overrides, defaults and validation.
//
// # Key Types
//
//   - Config: main configuration structure
//   - APIConfig: remote optimizer endpoint, timeout and client-side throttling
//   - StorageConfig: where credentials are kept (file or sqlite)
//   - UIConfig: terminal UI defaults (theme, context, split, mouse)
//   - SiteConfig: marketing site listener and canonical URL
//   - LoggingConfig: zap level, format and log file
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (PROMPTPRO_*), including ones set by .env
//   - ~/.promptpro/config.toml
//   - ~/.promptpro/config.yaml
//   - ~/.promptpro/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	client := api.NewClient(cfg.API.BaseURL)
package config
