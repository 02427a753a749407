// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/promptvita/promptpro/internal/api"
	"github.com/promptvita/promptpro/internal/model"
	"github.com/promptvita/promptpro/internal/quota"
)

type jsonFlag struct {
	json bool
}

// NewQuotaCmd creates the quota command.
func NewQuotaCmd(root *rootOptions) *cobra.Command {
	opts := &jsonFlag{}

	cmd := &cobra.Command{
		Use:   "quota",
		Short: "Show how many free requests are left",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, root, modeCommand)
			if err != nil {
				return err
			}
			defer e.Close()

			e.loadSession()
			resp, err := e.client.CheckRequests(cmd.Context())
			if err != nil {
				return userError(err, e.cfg.API.BaseURL)
			}
			if opts.json {
				return NewJSONResponse("quota", resp).Print(e.out)
			}

			tracker := quota.NewTracker()
			tracker.Update(*resp)
			fmt.Fprintln(e.out, tracker.Label())
			if tracker.Exhausted() {
				fmt.Fprintln(e.out, dim("Run `promptpro login` for unlimited optimizations"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the result as JSON")
	return cmd
}

// NewContextsCmd creates the contexts command.
func NewContextsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "contexts",
		Short: "List optimization contexts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, root, modeCommand)
			if err != nil {
				return err
			}
			defer e.Close()

			var server *api.StrategiesResponse
			if resp, err := e.client.Strategies(cmd.Context()); err != nil {
				e.logger.Debug("server contexts unavailable", zap.Error(err))
			} else {
				server = resp
			}
			printContexts(e.out, server)
			return nil
		},
	}
}

// printContexts lists the local contexts, then any server-only ones.
func printContexts(w io.Writer, server *api.StrategiesResponse) {
	for _, info := range model.Contexts {
		name := info.Name
		if info.ID == model.ContextGeneral {
			name = "General"
		}
		fmt.Fprintf(w, "  %s %s\n", RenderLabel(string(info.ID)), name+dim(" - "+info.Description))
	}
	if server == nil {
		return
	}

	var extra []string
	for _, id := range server.Contexts {
		if !model.IsKnownContext(id) {
			extra = append(extra, id)
		}
	}
	if len(extra) == 0 {
		return
	}
	fmt.Fprintln(w, SectionStyle.Render("Also available on the server"))
	for _, id := range extra {
		fmt.Fprintf(w, "  %s %s\n", RenderLabel(id), model.HumanizeContext(id))
	}
}

// NewHealthCmd creates the health command.
func NewHealthCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, root, modeServer)
			if err != nil {
				return err
			}
			defer e.Close()

			resp, err := e.client.Health(cmd.Context())
			if err != nil {
				return userError(err, e.cfg.API.BaseURL)
			}
			printSuccess(e.out, "%s %s", e.client.BaseURL(), info(resp.Status))
			if resp.Message != "" {
				fmt.Fprintln(e.out, "  "+dim(resp.Message))
			}
			return nil
		},
	}
}
