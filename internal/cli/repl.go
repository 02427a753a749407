// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/promptvita/promptpro/internal/config"
	"github.com/promptvita/promptpro/internal/model"
)

// historyFileName is kept in the config directory.
const historyFileName = "repl_history"

// =============================================================================
// INPUT HISTORY
// =============================================================================

// lineReader provides line editing and persisted history for the repl.
type lineReader struct {
	line        *liner.State
	historyFile string
}

func newLineReader() *lineReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completeCommand)

	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	r := &lineReader{line: line, historyFile: filepath.Join(dir, historyFileName)}

	if f, err := os.Open(r.historyFile); err == nil {
		_, _ = r.line.ReadHistory(f)
		f.Close()
	}
	return r
}

// ReadLine prompts and records non-empty input in history.
func (r *lineReader) ReadLine(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history with private permissions and restores the terminal.
func (r *lineReader) Close() {
	if err := config.EnsureConfigDir(); err == nil {
		if f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			_, _ = r.line.WriteHistory(f)
			f.Close()
		}
	}
	r.line.Close()
}

// completeCommand completes ":" commands and context names.
func completeCommand(line string) []string {
	var out []string
	if strings.HasPrefix(line, ":ctx ") {
		prefix := strings.TrimPrefix(line, ":ctx ")
		for _, info := range model.Contexts {
			if strings.HasPrefix(string(info.ID), prefix) {
				out = append(out, ":ctx "+string(info.ID))
			}
		}
		return out
	}
	for _, c := range replCommands {
		if strings.HasPrefix(c, line) {
			out = append(out, c)
		}
	}
	return out
}

var replCommands = []string{":ctx ", ":contexts", ":help", ":quit"}

// =============================================================================
// REPL
// =============================================================================

// repl is the line-mode loop state.
type repl struct {
	env     *env
	context model.Context
}

// NewReplCmd creates the repl command.
func NewReplCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Optimize prompts line by line",
		Long: `Starts a line-mode session. Each line is optimized with the current context.

Commands:
  :ctx <name>   switch context (tab completes names)
  :contexts     list contexts
  :help         show this help
  :quit         exit (also ctrl+d)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := RequiresTTY("repl"); err != nil {
				return err
			}
			e, err := newEnv(cmd, root, modeCommand)
			if err != nil {
				return err
			}
			defer e.Close()

			r := &repl{env: e, context: model.ParseContext(e.cfg.UI.DefaultContext)}
			return r.run(cmd)
		},
	}
}

func (r *repl) run(cmd *cobra.Command) error {
	lines := newLineReader()
	defer lines.Close()

	out := r.env.out
	fmt.Fprintln(out, TitleStyle.Render("PromptPro")+" "+dim("type :help for commands, ctrl+d to exit"))

	for {
		input, err := lines.ReadLine(PromptStyle.Render(r.prompt()))
		if err != nil {
			if !errors.Is(err, liner.ErrPromptAborted) && !errors.Is(err, io.EOF) {
				return err
			}
			fmt.Fprintln(out)
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, ":") {
			if quit := r.handleCommand(input); quit {
				return nil
			}
			continue
		}

		if err := runOptimize(cmd.Context(), r.env, input, r.context, false); err != nil {
			printError(r.env.errOut, err)
		}
		fmt.Fprintln(out)
	}
}

func (r *repl) prompt() string {
	return fmt.Sprintf("promptpro [%s]> ", r.context)
}

// handleCommand runs a ":" command and reports whether to exit.
func (r *repl) handleCommand(input string) bool {
	out := r.env.out
	fields := strings.Fields(input)

	switch fields[0] {
	case ":quit", ":q", ":exit":
		return true

	case ":ctx", ":context":
		if len(fields) < 2 {
			fmt.Fprintf(out, "context: %s (%s)\n", r.context, r.context.DisplayName())
			return false
		}
		name := strings.Join(fields[1:], "_")
		if !model.IsKnownContext(strings.ToLower(name)) {
			printWarning(out, "unknown context %q; try :contexts", name)
			return false
		}
		r.context = model.ParseContext(name)
		printSuccess(out, "context set to %s", r.context.DisplayName())

	case ":contexts":
		printContexts(out, nil)

	case ":help":
		fmt.Fprintln(out, "  :ctx <name>   switch context")
		fmt.Fprintln(out, "  :contexts     list contexts")
		fmt.Fprintln(out, "  :quit         exit")

	default:
		printWarning(out, "unknown command %s; try :help", fields[0])
	}
	return false
}
