// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package optimizer

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/promptvita/promptpro/internal/api"
	"github.com/promptvita/promptpro/internal/auth"
	"github.com/promptvita/promptpro/internal/layout"
	"github.com/promptvita/promptpro/internal/model"
	"github.com/promptvita/promptpro/internal/ui/components"
	"github.com/promptvita/promptpro/internal/util"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case restoreDoneMsg:
		return m.handleRestore(msg)

	case quotaMsg:
		if msg.err != nil {
			m.logger.Warn("quota check failed", zap.Error(msg.err))
			return m, nil
		}
		m.quota.Update(*msg.resp)
		return m, nil

	case optimizeDoneMsg:
		return m.handleOptimizeDone(msg)

	case components.AuthSubmitMsg:
		return m.handleAuthSubmit(msg)

	case components.AuthCloseMsg:
		cmd := m.input.Focus()
		return m, cmd

	case authDoneMsg:
		return m.handleAuthDone(msg)

	case logoutDoneMsg:
		if msg.err != nil {
			m.logger.Warn("logout left stale credentials", zap.Error(msg.err))
		}
		m.quota.SetAuthenticated(false)
		return m, m.checkQuotaCmd()

	case CredentialsChangedMsg:
		return m.handleCredentialsChanged()

	case copyDoneMsg:
		return m.handleCopyDone(msg)

	case components.ToastTickMsg:
		if m.toasts.Tick() {
			return m, components.ToastTickCmd()
		}
		m.ticking = false
		return m, nil

	case components.FlashExpiredMsg:
		m.flash.Expire(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.restoring {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other textarea internals.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// RESIZE
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	m.resizeInput()
	return m, nil
}

// resizeInput fits the textarea to the left pane.
func (m *Model) resizeInput() {
	left, _ := m.paneWidths()
	w := left - paneChrome
	if w < 10 {
		w = 10
	}
	m.input.SetWidth(w)

	h := m.bodyHeight() - leftPaneFixedRows
	if h < 3 {
		h = 3
	}
	if h > 12 {
		h = 12
	}
	m.input.SetHeight(h)

	m.resizeMarkdown()
}

// resizeMarkdown rebuilds the glamour renderer when the right pane width
// changes.
func (m *Model) resizeMarkdown() {
	if !m.renderMarkdown {
		return
	}
	_, right := m.paneWidths()
	w := right - paneChrome
	if w == m.markdownWidth {
		return
	}
	r, err := components.NewMarkdownRenderer(m.theme.GlamourStyle(), w)
	if err != nil {
		m.logger.Warn("markdown renderer unavailable", zap.Error(err))
		m.renderMarkdown = false
		m.markdown = nil
		return
	}
	m.markdown = r
	m.markdownWidth = w
}

// =============================================================================
// KEYBOARD
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.modal.IsOpen() {
		return m, m.modal.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.NextContext):
		m.setContext(m.context.Next())
		return m, nil

	case key.Matches(msg, m.keys.PrevContext):
		m.setContext(m.context.Prev())
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		return m.copyLatest(components.CopyButton)

	case key.Matches(msg, m.keys.Reoptimize):
		m.reoptimize()
		return m, nil

	case key.Matches(msg, m.keys.Auth):
		return m.toggleAuth()

	case key.Matches(msg, m.keys.ShrinkLeft):
		m.split.Nudge(-layout.NudgeStep)
		m.resizeInput()
		return m, nil

	case key.Matches(msg, m.keys.GrowLeft):
		m.split.Nudge(layout.NudgeStep)
		m.resizeInput()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}

	// The input is read-only while a request is in flight.
	if m.loading {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) setContext(c model.Context) {
	m.context = c
	m.input.Placeholder = c.Labels().Placeholder
}

// reoptimize clears the input and the whole history so the empty state
// shows again.
func (m *Model) reoptimize() {
	m.input.Reset()
	m.conv.Clear()
}

func (m Model) toggleAuth() (tea.Model, tea.Cmd) {
	if m.session == nil {
		return m, nil
	}
	if m.session.IsAuthenticated() {
		return m, m.logoutCmd()
	}
	m.input.Blur()
	return m, m.modal.Open(auth.ModeLogin)
}

// =============================================================================
// SUBMIT FLOW
// =============================================================================

// submit sends the input for optimization. It is ignored for blank input
// and while a request is in flight. An anonymous user with no free requests
// left gets the login dialog instead.
func (m Model) submit() (tea.Model, tea.Cmd) {
	prompt := util.NormalizeInput(m.input.Value())
	if prompt == "" || m.loading || m.optimizer == nil {
		return m, nil
	}

	if !m.isAuthenticated() && m.quota.Exhausted() {
		return m.openLogin()
	}

	m.conv.AddUserMessage(prompt, m.context)
	m.loading = true
	m.logger.Debug("optimize submitted", zap.String("context", m.context.String()), zap.Int("chars", len(prompt)))
	return m, tea.Batch(m.optimizeCmd(prompt, m.context), m.spinner.Tick)
}

func (m Model) handleOptimizeDone(msg optimizeDoneMsg) (tea.Model, tea.Cmd) {
	m.loading = false

	if msg.err == nil {
		m.conv.AddResult(msg.resp.Original, msg.resp.Strategy, msg.resp.Optimized)
		m.quota.Decrement()
		return m, nil
	}

	m.logger.Info("optimize failed", zap.Error(msg.err))

	if errors.Is(msg.err, api.ErrRequiresLogin) {
		m.conv.AddError(api.ServerMessage(msg.err), true)
		m.quota.MarkExhausted()
		return m.openLogin()
	}

	m.conv.AddError(model.GenericErrorText, false)
	return m, nil
}

func (m Model) openLogin() (tea.Model, tea.Cmd) {
	if m.session == nil {
		return m, nil
	}
	m.input.Blur()
	return m, m.modal.Open(auth.ModeLogin)
}

func (m Model) isAuthenticated() bool {
	return m.session != nil && m.session.IsAuthenticated()
}

// =============================================================================
// SESSION
// =============================================================================

func (m Model) handleRestore(msg restoreDoneMsg) (tea.Model, tea.Cmd) {
	m.restoring = false
	res := msg.result

	if res.Err != nil {
		m.logger.Info("stored session discarded", zap.Error(res.Err))
	}
	if res.State == auth.StateAuthenticated {
		m.quota.SetAuthenticated(true)
	}
	if res.QuotaCheck {
		return m, m.checkQuotaCmd()
	}
	return m, nil
}

func (m Model) handleAuthSubmit(msg components.AuthSubmitMsg) (tea.Model, tea.Cmd) {
	if m.session == nil {
		return m, nil
	}
	m.modal.SetLoading(true)
	if msg.Mode == auth.ModeSignup {
		return m, m.signupCmd(msg.Signup)
	}
	return m, m.loginCmd(msg.Login)
}

func (m Model) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		var fieldErrs auth.FieldErrors
		if !errors.As(msg.err, &fieldErrs) {
			fallback := auth.LoginFailedText
			if msg.mode == auth.ModeSignup {
				fallback = auth.SignupFailedText
			}
			fieldErrs = auth.FieldErrors{auth.FieldGeneral: fallback}
		}
		m.modal.SetErrors(fieldErrs)
		return m, nil
	}

	m.modal.Close()
	m.quota.SetAuthenticated(true)
	cmd := m.input.Focus()
	return m, cmd
}

// handleCredentialsChanged picks up a login or logout made by another
// process sharing the credential store.
func (m Model) handleCredentialsChanged() (tea.Model, tea.Cmd) {
	if m.session == nil {
		return m, nil
	}
	state, changed := m.session.Reload()
	if !changed {
		return m, nil
	}

	if state == auth.StateAuthenticated {
		m.quota.SetAuthenticated(true)
		if m.modal.IsOpen() {
			m.modal.Close()
			cmd := m.input.Focus()
			return m, cmd
		}
		return m, nil
	}

	m.quota.SetAuthenticated(false)
	return m, m.checkQuotaCmd()
}

// =============================================================================
// COPY
// =============================================================================

// copyLatest copies the optimized text of the latest successful result.
// There is nothing to copy after an error or before the first result.
func (m Model) copyLatest(target components.CopyTarget) (tea.Model, tea.Cmd) {
	text := m.conv.LatestOptimized()
	if text == "" {
		return m, nil
	}
	return m, m.copyCmd(text, target)
}

func (m Model) handleCopyDone(msg copyDoneMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if msg.err != nil {
		m.logger.Info("clipboard write failed", zap.Error(msg.err))
		m.toasts.Error(components.CopyFailedText)
	} else {
		m.toasts.Success(components.CopiedText)
		cmds = append(cmds, m.flash.Start(msg.target))
	}

	if !m.ticking {
		m.ticking = true
		cmds = append(cmds, components.ToastTickCmd())
	}
	return m, tea.Batch(cmds...)
}

// =============================================================================
// MOUSE
// =============================================================================

// handleMouse drags the divider. Only a press on the divider column starts a
// drag; a click on the copy icon in the output header copies.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.mouse || m.modal.IsOpen() {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if m.onDivider(msg.X, msg.Y) {
			m.split.Begin()
			return m, nil
		}
		if m.onCopyIcon(msg.X, msg.Y) {
			return m.copyLatest(components.CopyIcon)
		}

	case tea.MouseActionMotion:
		if m.split.Move(float64(msg.X), 0, float64(m.width-dividerWidth)) {
			m.resizeInput()
		}

	case tea.MouseActionRelease:
		if m.split.Dragging() {
			m.split.End()
		}
	}
	return m, nil
}

// onDivider reports whether the cell is on the divider, allowing one column
// of slack on each side.
func (m Model) onDivider(x, y int) bool {
	if y < bodyTop || y >= bodyTop+m.bodyHeight() {
		return false
	}
	col := m.split.DividerColumn(m.width, dividerWidth)
	return x >= col-1 && x <= col+1
}

// onCopyIcon reports whether the cell is on the "[copy]" icon in the
// output header.
func (m Model) onCopyIcon(x, y int) bool {
	if _, ok := m.conv.LatestResult(); !ok || m.loading {
		return false
	}
	if y != bodyTop+1 {
		return false
	}
	left, _ := m.paneWidths()
	start := left + dividerWidth + copyIconOffset(m.context)
	return x >= start && x < start+len("[copy]")
}
