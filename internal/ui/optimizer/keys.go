// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package optimizer

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/promptvita/promptpro/internal/ui/components"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the optimizer.
type KeyMap struct {
	Submit      key.Binding
	Newline     key.Binding
	NextContext key.Binding
	PrevContext key.Binding
	Copy        key.Binding
	Reoptimize  key.Binding
	Auth        key.Binding
	ShrinkLeft  key.Binding
	GrowLeft    key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "optimize"),
		),
		Newline: key.NewBinding(
			key.WithKeys("alt+enter", "ctrl+j"),
			key.WithHelp("alt+enter", "newline"),
		),
		NextContext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "context"),
		),
		PrevContext: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous context"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy"),
		),
		Reoptimize: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "re-optimize"),
		),
		Auth: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "login/logout"),
		),
		ShrinkLeft: key.NewBinding(
			key.WithKeys("ctrl+left"),
			key.WithHelp("ctrl+←", "narrow input"),
		),
		GrowLeft: key.NewBinding(
			key.WithKeys("ctrl+right"),
			key.WithHelp("ctrl+→", "widen input"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextContext, k.Copy, k.Reoptimize, k.Auth, k.Help, k.Quit}
}

// FullHelp returns every binding, grouped for the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Newline, k.NextContext, k.PrevContext},
		{k.Copy, k.Reoptimize, k.Auth},
		{k.ShrinkLeft, k.GrowLeft, k.Help, k.Quit},
	}
}

// Shortcuts converts the short help into status bar hints.
func (k KeyMap) Shortcuts() []components.Shortcut {
	bindings := k.ShortHelp()
	out := make([]components.Shortcut, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, components.Shortcut{Key: h.Key, Desc: h.Desc})
	}
	return out
}
