// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/promptvita/promptpro/internal/config"
	"github.com/promptvita/promptpro/internal/model"
	"github.com/promptvita/promptpro/internal/storage"
	"github.com/promptvita/promptpro/internal/ui/optimizer"
	"github.com/promptvita/promptpro/internal/ui/styles"
)

// Version information, overridden at build time with -ldflags.
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	apiURL  string
	storage string
	theme   string
	context string
	noMouse bool
	verbose bool
}

// apply overrides cfg with flags the user set.
func (o *rootOptions) apply(cfg *config.Config) {
	if o.apiURL != "" {
		cfg.API.BaseURL = o.apiURL
	}
	if o.storage != "" {
		cfg.Storage.Backend = o.storage
	}
	if o.theme != "" {
		cfg.UI.Theme = o.theme
	}
	if o.context != "" {
		cfg.UI.DefaultContext = string(model.ParseContext(o.context))
	}
	if o.noMouse {
		cfg.UI.Mouse = false
	}
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "promptpro",
		Short: "Turn messy prompts into powerful AI instructions",
		Long: `PromptPro rewrites rough prompts into clear, structured instructions and
corrects spelling, grammar and tone in everyday text.

Run without a subcommand for the full-screen optimizer. Anonymous use is
limited to a few free requests; log in for unlimited optimizations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.apiURL, "api-url", "", "Backend origin (overrides api.base_url)")
	flags.StringVar(&opts.storage, "storage", "", "Session storage backend: file or sqlite")
	flags.StringVar(&opts.theme, "theme", "", "Color theme: auto, dark or light")
	flags.StringVarP(&opts.context, "context", "c", "", "Optimization context, e.g. business or rephrase")
	flags.BoolVar(&opts.noMouse, "no-mouse", false, "Disable mouse support in the full-screen UI")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output")

	rootCmd.AddCommand(NewOptimizeCmd(opts))
	rootCmd.AddCommand(NewReplCmd(opts))
	rootCmd.AddCommand(NewLoginCmd(opts))
	rootCmd.AddCommand(NewSignupCmd(opts))
	rootCmd.AddCommand(NewLogoutCmd(opts))
	rootCmd.AddCommand(NewWhoamiCmd(opts))
	rootCmd.AddCommand(NewQuotaCmd(opts))
	rootCmd.AddCommand(NewContextsCmd(opts))
	rootCmd.AddCommand(NewHealthCmd(opts))
	rootCmd.AddCommand(NewServeCmd(opts))
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "promptpro %s (%s, built %s, %s/%s)\n",
				Version, GitCommit, BuildDate, runtime.GOOS, runtime.GOARCH)
		},
	}
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		return GetExitCode(err)
	}
	return ExitSuccess
}

// =============================================================================
// FULL-SCREEN UI
// =============================================================================

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	if err := RequiresTTY("the full-screen optimizer"); err != nil {
		return err
	}

	e, err := newEnv(cmd, opts, modeTUI)
	if err != nil {
		return err
	}
	defer e.Close()

	cfg := e.cfg
	m := optimizer.New(optimizer.Deps{
		Optimizer: e.client,
		Quota:     e.client,
		Session:   e.session,
		Logger:    e.logger.Named("ui"),
	}, optimizer.Options{
		Theme:          styles.NewTheme(cfg.UI.Theme),
		Context:        model.ParseContext(cfg.UI.DefaultContext),
		SplitPercent:   cfg.UI.SplitPercent,
		RenderMarkdown: cfg.UI.RenderMarkdown,
		Mouse:          cfg.UI.Mouse,
	})

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(cmd.Context())}
	if cfg.UI.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, programOpts...)

	if cfg.Storage.Watch {
		w, err := storage.NewWatcher(e.store.Path(), storage.DefaultDebounce, func() {
			p.Send(optimizer.CredentialsChangedMsg{})
		}, e.logger.Named("watch"))
		if err == nil {
			if err = w.Start(); err != nil {
				_ = w.Close()
			}
		}
		if err != nil {
			e.logger.Warn("credential watcher disabled", zap.Error(err))
		} else {
			defer w.Close()
		}
	}

	e.logger.Info("ui started", zap.String("api", cfg.API.BaseURL), zap.String("version", Version))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}
