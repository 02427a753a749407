// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	pperrors "github.com/promptvita/promptpro/internal/errors"
	"github.com/promptvita/promptpro/internal/site"
)

type serveOptions struct {
	addr string
	url  string
}

// NewServeCmd creates the serve command.
func NewServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the marketing site (home, about, pricing)",
		Long: `Serves the server-rendered marketing pages with per-page SEO metadata,
robots.txt and sitemap.xml. Stops gracefully on SIGINT or SIGTERM.`,
		Example: `  promptpro serve
  promptpro serve --addr :9090 --url http://localhost:9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, root, modeServer)
			if err != nil {
				return err
			}
			defer e.Close()

			cfg := e.cfg.Site
			if opts.addr != "" {
				cfg.Addr = opts.addr
			}
			if opts.url != "" {
				cfg.URL = opts.url
			}

			srv, err := site.New(cfg, e.logger.Named("site"))
			if err != nil {
				return pperrors.Wrap(pperrors.ErrServerStartFailed, "could not build the site", "", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := srv.Run(ctx); err != nil {
				return pperrors.Wrap(pperrors.ErrServerStartFailed, "site server failed",
					"Is another process using "+cfg.Addr+"? Try --addr", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (overrides site.addr)")
	cmd.Flags().StringVar(&opts.url, "url", "", "Canonical site URL (overrides site.url)")
	return cmd
}
