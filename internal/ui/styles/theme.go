// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme modes accepted by NewTheme.
const (
	ModeAuto  = "auto"
	ModeDark  = "dark"
	ModeLight = "light"
)

// ModalWidth is the auth modal width including padding, excluding border.
const ModalWidth = 58

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// NAVIGATION BAR STYLES
	// ==========================================================================

	Navbar      lipgloss.Style
	Brand       lipgloss.Style
	NavLink     lipgloss.Style
	NavActive   lipgloss.Style
	NavDisabled lipgloss.Style
	NavUser     lipgloss.Style

	// ==========================================================================
	// PANE STYLES
	// ==========================================================================

	Headline      lipgloss.Style
	PaneFocused   lipgloss.Style
	PaneBlurred   lipgloss.Style
	PaneTitle     lipgloss.Style
	SectionTitle  lipgloss.Style
	SectionBody   lipgloss.Style
	OptimizedBox  lipgloss.Style
	ErrorMessage  lipgloss.Style
	EmptyTitle    lipgloss.Style
	EmptyBody     lipgloss.Style
	ContextPicker lipgloss.Style
	Timestamp     lipgloss.Style

	// ==========================================================================
	// DIVIDER STYLES
	// ==========================================================================

	Divider       lipgloss.Style
	DividerActive lipgloss.Style

	// ==========================================================================
	// BUTTON STYLES
	// ==========================================================================

	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonSuccess  lipgloss.Style
	IconButton     lipgloss.Style

	// ==========================================================================
	// TOAST STYLES
	// ==========================================================================

	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style

	// ==========================================================================
	// AUTH MODAL STYLES
	// ==========================================================================

	Modal         lipgloss.Style
	ModalTitle    lipgloss.Style
	ModalSubtitle lipgloss.Style
	FieldLabel    lipgloss.Style
	FieldError    lipgloss.Style
	FormError     lipgloss.Style
	ModalLink     lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	Quota        lipgloss.Style
	QuotaWarning lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	Spinner      lipgloss.Style
}

// NewTheme creates a theme for mode ("auto", "dark" or "light"). Auto asks
// the terminal for its background.
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(mode) {
	case ModeDark:
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	case ModeLight:
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	default:
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Navigation bar
	t.Navbar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.Brand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo)

	t.NavLink = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.NavActive = t.NavLink.
		Foreground(Indigo).
		Underline(true)

	t.NavDisabled = t.NavLink.
		Foreground(TextMuted)

	t.NavUser = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	// Panes
	t.Headline = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary).
		Padding(0, 1)

	t.PaneFocused = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Indigo).
		Padding(0, 1)

	t.PaneBlurred = t.PaneFocused.
		BorderForeground(Overlay)

	t.PaneTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo)

	t.SectionTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)

	t.SectionBody = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.OptimizedBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderTop(false).
		BorderRight(false).
		BorderBottom(false).
		BorderForeground(Emerald).
		PaddingLeft(1).
		Foreground(TextPrimary)

	t.ErrorMessage = lipgloss.NewStyle().
		Foreground(Rose)

	t.EmptyTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)

	t.EmptyBody = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.ContextPicker = lipgloss.NewStyle().
		Foreground(Violet).
		Bold(true)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Divider
	t.Divider = lipgloss.NewStyle().
		Foreground(OverlayDim)

	t.DividerActive = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true)

	// Buttons
	t.Button = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(IndigoDeep).
		Bold(true).
		Padding(0, 2)

	t.ButtonDisabled = t.Button.
		Background(OverlayDim).
		Foreground(TextMuted)

	t.ButtonSuccess = t.Button.
		Background(EmeraldDeep)

	t.IconButton = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	// Toasts
	t.ToastSuccess = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(EmeraldDeep).
		Bold(true).
		Padding(0, 2)

	t.ToastError = t.ToastSuccess.
		Background(RoseDeep)

	// Auth modal
	t.Modal = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Indigo).
		Padding(1, 3).
		Width(ModalWidth)

	t.ModalTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.ModalSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.FieldLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.FieldError = lipgloss.NewStyle().
		Foreground(Rose)

	t.FormError = lipgloss.NewStyle().
		Foreground(Rose).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Rose).
		Padding(0, 1)

	t.ModalLink = lipgloss.NewStyle().
		Foreground(Indigo).
		Underline(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.Quota = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.QuotaWarning = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Indigo)
}

// Pane returns the border style for a pane.
func (t *Theme) Pane(focused bool) lipgloss.Style {
	if focused {
		return t.PaneFocused
	}
	return t.PaneBlurred
}

// GlamourStyle names the glamour standard style matching the background.
func (t *Theme) GlamourStyle() string {
	if t.IsDark {
		return ModeDark
	}
	return ModeLight
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns, panes stack vertically
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
