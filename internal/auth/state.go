// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

// State is the session lifecycle state.
type State int

const (
	StateAnonymous State = iota
	StateVerifying
	StateAuthenticated
	StateInvalid
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateVerifying:
		return "verifying"
	case StateAuthenticated:
		return "authenticated"
	case StateInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// =============================================================================
// MODAL MODE
// =============================================================================

// Mode selects which form the auth modal shows.
type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	if m == ModeSignup {
		return "signup"
	}
	return "login"
}

// Modal is the open/closed state of the auth dialog.
type Modal struct {
	open bool
	mode Mode
}

// Open shows the dialog in mode.
func (m *Modal) Open(mode Mode) {
	m.open = true
	m.mode = mode
}

// Close hides the dialog and resets it to the login form.
func (m *Modal) Close() {
	m.open = false
	m.mode = ModeLogin
}

// Switch toggles between login and signup.
func (m *Modal) Switch() {
	if m.mode == ModeLogin {
		m.mode = ModeSignup
	} else {
		m.mode = ModeLogin
	}
}

// IsOpen reports whether the dialog is visible.
func (m Modal) IsOpen() bool { return m.open }

// Mode returns the current form.
func (m Modal) Mode() Mode { return m.mode }
