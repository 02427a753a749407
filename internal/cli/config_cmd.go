// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptvita/promptpro/internal/config"
	pperrors "github.com/promptvita/promptpro/internal/errors"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}
	cmd.AddCommand(newConfigShowCmd(), newConfigPathCmd(), newConfigInitCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  "Prints the configuration after files, .env and PROMPTPRO_* variables are applied.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return pperrors.ConfigInvalid(err.Error())
			}
			data, err := cfg.Marshal(format)
			if err != nil {
				return pperrors.Wrap(pperrors.ErrValidationFailed, "cannot print config", "Use --format toml, yaml or json", err)
			}
			return highlight(cmd.OutOrStdout(), string(data), format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "toml", "Output format: toml, yaml or json")
	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, ext := range []string{"toml", "yaml", "json"} {
				path, err := config.ConfigPath(ext)
				if err != nil {
					return err
				}
				if _, err := os.Stat(path); err == nil {
					fmt.Fprintln(cmd.OutOrStdout(), path)
					return nil
				}
			}
			path, err := config.ConfigPath("toml")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path+dim(" (not created yet)"))
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigPath("toml")
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return pperrors.New(pperrors.ErrConfigWrite, path+" already exists", "Pass --force to overwrite it")
			}
			if err := config.EnsureConfigDir(); err != nil {
				return pperrors.Wrap(pperrors.ErrConfigWrite, "cannot create config directory", "", err)
			}
			written, err := config.Save(config.Default())
			if err != nil {
				return pperrors.Wrap(pperrors.ErrConfigWrite, "cannot write config", "", err)
			}
			printSuccess(cmd.OutOrStdout(), "Wrote %s", written)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
