// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/promptvita/promptpro/internal/ui/styles"
	"github.com/promptvita/promptpro/internal/util"
)

// BrandName is shown at the left of the navigation bar.
const BrandName = "PromptPro"

// =============================================================================
// NAVIGATION BAR
// =============================================================================

// NavState is what the navigation bar needs to know about the session.
type NavState struct {
	// UserName is set when signed in.
	UserName string
	// Verifying is set while a stored session is being checked.
	Verifying bool
}

// RenderNavbar renders the top bar: brand, links and the login control.
// Library and Pricing are informational in the terminal and render dimmed.
func RenderNavbar(theme *styles.Theme, width int, st NavState) string {
	left := theme.Brand.Render("⚡ " + BrandName)

	links := []string{
		theme.NavActive.Render("Home"),
		theme.NavDisabled.Render("Library"),
		theme.NavDisabled.Render("Pricing"),
	}

	var session string
	switch {
	case st.Verifying:
		session = theme.NavDisabled.Render("Checking session...")
	case st.UserName != "":
		session = theme.NavUser.Render("Hi, "+util.TruncateWidth(st.UserName, 24)) +
			" " + theme.NavLink.Render("Logout (ctrl+l)")
	default:
		session = theme.NavLink.Render("Login (ctrl+l)")
	}

	right := strings.Join(links, "") + " " + session
	return fillBar(theme.Navbar, width, left, right)
}

// =============================================================================
// STATUS BAR
// =============================================================================

// Shortcut is one key hint.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusState is the status bar content.
type StatusState struct {
	Context    string
	QuotaLabel string
	// QuotaLow renders the quota in the warning style.
	QuotaLow  bool
	Shortcuts []Shortcut
}

// RenderStatusBar renders the bottom bar. Shortcuts are dropped from the
// right when the bar is too narrow.
func RenderStatusBar(theme *styles.Theme, width int, st StatusState) string {
	parts := []string{theme.ContextPicker.Render(st.Context)}
	if st.QuotaLabel != "" {
		quota := theme.Quota
		if st.QuotaLow {
			quota = theme.QuotaWarning
		}
		parts = append(parts, quota.Render(st.QuotaLabel))
	}
	left := strings.Join(parts, theme.ShortcutDesc.Render(" | "))

	budget := width - lipgloss.Width(left) - 4
	var hints []string
	used := 0
	for _, sc := range st.Shortcuts {
		hint := theme.ShortcutKey.Render(sc.Key) + " " + theme.ShortcutDesc.Render(sc.Desc)
		w := lipgloss.Width(hint) + 2
		if width > 0 && used+w > budget {
			break
		}
		hints = append(hints, hint)
		used += w
	}

	return fillBar(theme.StatusBar, width, left, strings.Join(hints, "  "))
}

// fillBar places left and right at the edges of a full-width bar.
func fillBar(style lipgloss.Style, width int, left, right string) string {
	inner := width - style.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if width <= 0 || gap < 1 {
		return style.Render(left + " " + right)
	}
	return style.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
