// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package optimizer

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/promptvita/promptpro/internal/api"
	"github.com/promptvita/promptpro/internal/auth"
	"github.com/promptvita/promptpro/internal/layout"
	"github.com/promptvita/promptpro/internal/model"
	"github.com/promptvita/promptpro/internal/quota"
	"github.com/promptvita/promptpro/internal/ui/components"
	"github.com/promptvita/promptpro/internal/ui/styles"
)

// DefaultRequestTimeout bounds each network command.
const DefaultRequestTimeout = 60 * time.Second

// dividerWidth is the column count of the split handle.
const dividerWidth = 1

// Optimizer is the subset of *api.Client used to optimize text.
type Optimizer interface {
	Optimize(ctx context.Context, prompt string, ctxTag model.Context) (*api.OptimizeResponse, error)
}

// Deps are the collaborators of the model. Session and Quota may be nil, in
// which case the model runs anonymous with no quota display.
type Deps struct {
	Optimizer Optimizer
	Quota     quota.Checker
	Session   *auth.Manager
	Clipboard Clipboard
	Logger    *zap.Logger
}

// Options are the presentation settings.
type Options struct {
	Theme          *styles.Theme
	Context        model.Context
	SplitPercent   float64
	RenderMarkdown bool
	Mouse          bool
	RequestTimeout time.Duration
}

// =============================================================================
// OPTIMIZER MODEL
// =============================================================================

// Model is the Bubble Tea model for the optimizer screen.
type Model struct {
	// Collaborators
	optimizer Optimizer
	checker   quota.Checker
	session   *auth.Manager
	clipboard Clipboard
	logger    *zap.Logger

	// Styling
	theme *styles.Theme
	keys  KeyMap
	help  help.Model

	// Dimensions
	width  int
	height int

	// State
	input     textarea.Model
	context   model.Context
	conv      *model.Conversation
	loading   bool
	restoring bool
	split     *layout.Split
	quota     *quota.Tracker

	// Widgets
	spinner  spinner.Model
	toasts   *components.ToastManager
	ticking  bool
	flash    components.CopyFlash
	modal    *components.AuthModal
	showHelp bool

	// Markdown
	renderMarkdown bool
	markdown       components.MarkdownRenderer
	markdownWidth  int

	mouse   bool
	timeout time.Duration
}

// New creates the model.
func New(deps Deps, opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme(styles.ModeAuto)
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clip := deps.Clipboard
	if clip == nil {
		clip = SystemClipboard{}
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	ctxTag := opts.Context
	if !model.IsKnownContext(string(ctxTag)) {
		ctxTag = model.ContextGeneral
	}
	percent := opts.SplitPercent
	if percent == 0 {
		percent = layout.DefaultPercent
	}

	keys := DefaultKeyMap()

	input := textarea.New()
	input.Placeholder = ctxTag.Labels().Placeholder
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.Prompt = ""
	input.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))
	input.Focus()

	spin := spinner.New()
	spin.Spinner = styles.DotsSpinner.Bubbles()
	spin.Style = theme.Spinner

	return Model{
		optimizer:      deps.Optimizer,
		checker:        deps.Quota,
		session:        deps.Session,
		clipboard:      clip,
		logger:         logger,
		theme:          theme,
		keys:           keys,
		help:           help.New(),
		input:          input,
		context:        ctxTag,
		conv:           model.NewConversation(),
		split:          layout.NewSplit(percent),
		quota:          quota.NewTracker(),
		spinner:        spin,
		toasts:         components.NewToastManager(),
		modal:          components.NewAuthModal(),
		renderMarkdown: opts.RenderMarkdown,
		mouse:          opts.Mouse,
		timeout:        timeout,
		restoring:      deps.Session != nil,
	}
}

// Init starts session restoration, or goes straight to the quota check when
// there is no session manager.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.session != nil {
		cmds = append(cmds, m.restoreCmd(), m.spinner.Tick)
	} else {
		cmds = append(cmds, m.checkQuotaCmd())
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Context returns the selected context.
func (m Model) Context() model.Context { return m.context }

// Loading reports whether an optimize request is in flight.
func (m Model) Loading() bool { return m.loading }

// Restoring reports whether the stored session is still being verified.
func (m Model) Restoring() bool { return m.restoring }

// Conversation returns the session history.
func (m Model) Conversation() *model.Conversation { return m.conv }

// Split returns the layout controller.
func (m Model) Split() *layout.Split { return m.split }

// Quota returns the quota tracker.
func (m Model) Quota() *quota.Tracker { return m.quota }

// Toasts returns the toast manager.
func (m Model) Toasts() *components.ToastManager { return m.toasts }

// Modal returns the auth dialog.
func (m Model) Modal() *components.AuthModal { return m.modal }

// Flash returns the copy button flash state.
func (m Model) Flash() components.CopyFlash { return m.flash }

// InputValue returns the raw input text.
func (m Model) InputValue() string { return m.input.Value() }

// SetInput replaces the input text.
func (m *Model) SetInput(s string) { m.input.SetValue(s) }

// =============================================================================
// COMMANDS
// =============================================================================

func (m Model) restoreCmd() tea.Cmd {
	session, timeout := m.session, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return restoreDoneMsg{result: session.Restore(ctx)}
	}
}

func (m Model) checkQuotaCmd() tea.Cmd {
	if m.checker == nil {
		return nil
	}
	checker, timeout := m.checker, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		resp, err := checker.CheckRequests(ctx)
		return quotaMsg{resp: resp, err: err}
	}
}

func (m Model) optimizeCmd(prompt string, ctxTag model.Context) tea.Cmd {
	optimizer, timeout := m.optimizer, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		resp, err := optimizer.Optimize(ctx, prompt, ctxTag)
		return optimizeDoneMsg{resp: resp, err: err}
	}
}

func (m Model) loginCmd(form auth.LoginForm) tea.Cmd {
	session, timeout := m.session, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		user, err := session.Login(ctx, form)
		return authDoneMsg{mode: auth.ModeLogin, user: user, err: err}
	}
}

func (m Model) signupCmd(form auth.SignupForm) tea.Cmd {
	session, timeout := m.session, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		user, err := session.Signup(ctx, form)
		return authDoneMsg{mode: auth.ModeSignup, user: user, err: err}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	session, timeout := m.session, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return logoutDoneMsg{err: session.Logout(ctx)}
	}
}

func (m Model) copyCmd(text string, target components.CopyTarget) tea.Cmd {
	clip := m.clipboard
	return func() tea.Msg {
		return copyDoneMsg{target: target, err: clip.WriteAll(text)}
	}
}
