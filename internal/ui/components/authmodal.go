// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/promptvita/promptpro/internal/auth"
	"github.com/promptvita/promptpro/internal/ui/styles"
)

// =============================================================================
// MODAL COPY
// =============================================================================

type modalCopy struct {
	Title      string
	Subtitle   string
	Submit     string
	Submitting string
	SwitchText string
	SwitchLink string
}

var (
	loginCopy = modalCopy{
		Title:      "Welcome Back",
		Subtitle:   "Sign in to your PromptPro account",
		Submit:     "Sign In",
		Submitting: "Signing In...",
		SwitchText: "Don't have an account?",
		SwitchLink: "Sign up",
	}
	signupCopy = modalCopy{
		Title:      "Create Account",
		Subtitle:   "Join PromptPro and start optimizing your prompts",
		Submit:     "Create Account",
		Submitting: "Creating Account...",
		SwitchText: "Already have an account?",
		SwitchLink: "Sign in",
	}
)

// =============================================================================
// KEYS
// =============================================================================

// AuthModalKeyMap binds the modal's own keys.
type AuthModalKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Switch key.Binding
	Close  key.Binding
}

// DefaultAuthModalKeyMap returns the modal bindings.
func DefaultAuthModalKeyMap() AuthModalKeyMap {
	return AuthModalKeyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Switch: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "switch form")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// =============================================================================
// MESSAGES
// =============================================================================

// AuthSubmitMsg asks the owner to run login or signup with the form values.
type AuthSubmitMsg struct {
	Mode   auth.Mode
	Login  auth.LoginForm
	Signup auth.SignupForm
}

// AuthCloseMsg reports that the user dismissed the modal.
type AuthCloseMsg struct{}

// =============================================================================
// AUTH MODAL
// =============================================================================

type formField struct {
	field auth.Field
	label string
	input textinput.Model
}

// AuthModal is the login/signup dialog. The owner forwards key messages to
// Update while the modal is open, and reports request outcomes through
// SetLoading and SetErrors.
type AuthModal struct {
	state   auth.Modal
	keys    AuthModalKeyMap
	login   []formField
	signup  []formField
	focus   int
	errors  auth.FieldErrors
	loading bool
}

// NewAuthModal creates a closed modal.
func NewAuthModal() *AuthModal {
	return &AuthModal{
		keys: DefaultAuthModalKeyMap(),
		login: []formField{
			newFormField(auth.FieldEmail, "Email", "Enter your email", false),
			newFormField(auth.FieldPassword, "Password", "Enter your password", true),
		},
		signup: []formField{
			newFormField(auth.FieldName, "Full Name", "Enter your full name", false),
			newFormField(auth.FieldEmail, "Email", "Enter your email", false),
			newFormField(auth.FieldPassword, "Password", "Create a password", true),
			newFormField(auth.FieldConfirm, "Confirm Password", "Confirm your password", true),
		},
	}
}

func newFormField(field auth.Field, label, placeholder string, secret bool) formField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40
	ti.Prompt = "> "
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return formField{field: field, label: label, input: ti}
}

// Open shows the modal in mode with empty fields.
func (m *AuthModal) Open(mode auth.Mode) tea.Cmd {
	m.state.Open(mode)
	m.reset()
	return m.focusField(0)
}

// Close hides the modal. The next Open starts on the login form.
func (m *AuthModal) Close() {
	m.state.Close()
	m.reset()
}

// IsOpen reports whether the modal is visible.
func (m *AuthModal) IsOpen() bool { return m.state.IsOpen() }

// Mode returns the visible form.
func (m *AuthModal) Mode() auth.Mode { return m.state.Mode() }

// Loading reports whether a request is in flight.
func (m *AuthModal) Loading() bool { return m.loading }

// Errors returns the field errors being shown.
func (m *AuthModal) Errors() auth.FieldErrors { return m.errors }

// SetLoading toggles the in-flight state. Inputs ignore keys while loading.
func (m *AuthModal) SetLoading(loading bool) { m.loading = loading }

// SetErrors shows errs under their fields and clears loading.
func (m *AuthModal) SetErrors(errs auth.FieldErrors) {
	m.errors = errs
	m.loading = false
}

// Switch toggles between login and signup and clears errors.
func (m *AuthModal) Switch() tea.Cmd {
	m.state.Switch()
	m.errors = nil
	return m.focusField(0)
}

// SetValue fills a field of the visible form.
func (m *AuthModal) SetValue(field auth.Field, value string) {
	for i := range m.fields() {
		if m.fields()[i].field == field {
			m.fields()[i].input.SetValue(value)
		}
	}
}

// Value returns a field of the visible form.
func (m *AuthModal) Value(field auth.Field) string {
	for _, f := range m.fields() {
		if f.field == field {
			return f.input.Value()
		}
	}
	return ""
}

// Focused returns the field with keyboard focus.
func (m *AuthModal) Focused() auth.Field {
	fields := m.fields()
	if m.focus < 0 || m.focus >= len(fields) {
		return ""
	}
	return fields[m.focus].field
}

func (m *AuthModal) fields() []formField {
	if m.state.Mode() == auth.ModeSignup {
		return m.signup
	}
	return m.login
}

func (m *AuthModal) reset() {
	for _, set := range [][]formField{m.login, m.signup} {
		for i := range set {
			set[i].input.Reset()
			set[i].input.Blur()
		}
	}
	m.errors = nil
	m.loading = false
	m.focus = 0
}

func (m *AuthModal) focusField(i int) tea.Cmd {
	fields := m.fields()
	n := len(fields)
	m.focus = ((i % n) + n) % n
	for j := range fields {
		fields[j].input.Blur()
	}
	return fields[m.focus].input.Focus()
}

// Update handles a key message while the modal is open.
func (m *AuthModal) Update(msg tea.Msg) tea.Cmd {
	if !m.state.IsOpen() {
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Close):
		m.Close()
		return func() tea.Msg { return AuthCloseMsg{} }
	case m.loading:
		return nil
	case key.Matches(keyMsg, m.keys.Switch):
		return m.Switch()
	case key.Matches(keyMsg, m.keys.Next):
		return m.focusField(m.focus + 1)
	case key.Matches(keyMsg, m.keys.Prev):
		return m.focusField(m.focus - 1)
	case key.Matches(keyMsg, m.keys.Submit):
		submit := m.submission()
		return func() tea.Msg { return submit }
	}

	fields := m.fields()
	var cmd tea.Cmd
	fields[m.focus].input, cmd = fields[m.focus].input.Update(msg)
	// Editing a field clears its error, as the web form does.
	if m.errors != nil {
		delete(m.errors, fields[m.focus].field)
	}
	return cmd
}

func (m *AuthModal) submission() AuthSubmitMsg {
	if m.state.Mode() == auth.ModeSignup {
		return AuthSubmitMsg{
			Mode: auth.ModeSignup,
			Signup: auth.SignupForm{
				Name:            m.Value(auth.FieldName),
				Email:           m.Value(auth.FieldEmail),
				Password:        m.Value(auth.FieldPassword),
				ConfirmPassword: m.Value(auth.FieldConfirm),
			},
		}
	}
	return AuthSubmitMsg{
		Mode: auth.ModeLogin,
		Login: auth.LoginForm{
			Email:    m.Value(auth.FieldEmail),
			Password: m.Value(auth.FieldPassword),
		},
	}
}

// =============================================================================
// RENDERING
// =============================================================================

// View renders the modal box.
func (m *AuthModal) View(theme *styles.Theme) string {
	if !m.state.IsOpen() {
		return ""
	}

	c := loginCopy
	if m.state.Mode() == auth.ModeSignup {
		c = signupCopy
	}

	var b strings.Builder
	b.WriteString(theme.ModalTitle.Render(c.Title))
	b.WriteString("\n")
	b.WriteString(theme.ModalSubtitle.Render(c.Subtitle))
	b.WriteString("\n\n")

	if msg := m.errors.Get(auth.FieldGeneral); msg != "" {
		b.WriteString(theme.FormError.Render(msg))
		b.WriteString("\n\n")
	}

	for _, f := range m.fields() {
		b.WriteString(theme.FieldLabel.Render(f.label))
		b.WriteString("\n")
		b.WriteString(f.input.View())
		b.WriteString("\n")
		if msg := m.errors.Get(f.field); msg != "" {
			b.WriteString(theme.FieldError.Render(msg))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.loading {
		b.WriteString(theme.ButtonDisabled.Render(c.Submitting))
	} else {
		b.WriteString(theme.Button.Render(c.Submit))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.ModalSubtitle.Render(c.SwitchText+" ") + theme.ModalLink.Render(c.SwitchLink) +
		theme.ShortcutDesc.Render(" (ctrl+t)"))
	b.WriteString("\n")
	b.WriteString(theme.ShortcutDesc.Render("esc to close"))

	return theme.Modal.Render(b.String())
}
