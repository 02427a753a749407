// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/promptvita/promptpro/internal/api"
	pperrors "github.com/promptvita/promptpro/internal/errors"
	"github.com/promptvita/promptpro/internal/model"
	"github.com/promptvita/promptpro/internal/quota"
	"github.com/promptvita/promptpro/internal/util"
)

// maxInputBytes bounds text read from stdin.
const maxInputBytes = 1 << 20

type optimizeOptions struct {
	json bool
}

// NewOptimizeCmd creates the optimize command.
func NewOptimizeCmd(root *rootOptions) *cobra.Command {
	opts := &optimizeOptions{}

	cmd := &cobra.Command{
		Use:   "optimize [text...]",
		Short: "Optimize a prompt or correct a piece of text",
		Long: `Sends the text to the optimizer and prints the original, the strategy that
was applied and the optimized result.

Text is taken from the arguments, or from stdin when no arguments are given.
The rephrase context corrects spelling, grammar and tone instead of
restructuring the prompt.`,
		Example: `  promptpro optimize "write a business plan for an AI startup"
  promptpro optimize -c rephrase "i recieve ur messege"
  pbpaste | promptpro optimize --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			e, err := newEnv(cmd, root, modeCommand)
			if err != nil {
				return err
			}
			defer e.Close()

			return runOptimize(cmd.Context(), e, text, model.ParseContext(e.cfg.UI.DefaultContext), opts.json)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the result as JSON")
	return cmd
}

// readInput joins args, or reads all of stdin when there are none.
func readInput(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if f, ok := stdin.(*os.File); ok && f == os.Stdin && IsTTY() {
		return "", pperrors.EmptyInput()
	}
	data, err := io.ReadAll(io.LimitReader(stdin, maxInputBytes))
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// runOptimize applies the same submit rules as the UI: blank input is
// refused and an exhausted anonymous quota asks for a login first.
func runOptimize(ctx context.Context, e *env, text string, ctxTag model.Context, asJSON bool) error {
	prompt := util.NormalizeInput(text)
	if prompt == "" {
		return pperrors.EmptyInput()
	}

	if !e.loadSession() {
		tracker := quota.NewTracker()
		if err := tracker.Refresh(ctx, e.client); err != nil {
			e.logger.Debug("quota check failed", zap.Error(err))
		} else if tracker.Exhausted() {
			return pperrors.QuotaExhausted("")
		}
	}

	resp, err := e.client.Optimize(ctx, prompt, ctxTag)
	if err != nil {
		return userError(err, e.cfg.API.BaseURL)
	}

	if asJSON {
		return NewJSONResponse("optimize", resp).Print(e.out)
	}
	printResult(e.out, ctxTag, resp)
	return nil
}

// printResult writes the three result sections in display order.
func printResult(w io.Writer, ctxTag model.Context, resp *api.OptimizeResponse) {
	labels := ctxTag.Labels()
	width := renderWidth()

	fmt.Fprintln(w, SectionStyle.Render(labels.OriginalTitle))
	fmt.Fprintln(w, util.WrapWidth(resp.Original, width))

	fmt.Fprintln(w, SectionStyle.Render(labels.StrategyTitle))
	fmt.Fprint(w, renderMarkdown(resp.Strategy, width))

	fmt.Fprintln(w, SectionStyle.Render(labels.OutputTitle))
	fmt.Fprintln(w, util.WrapWidth(resp.Optimized, width))
}
