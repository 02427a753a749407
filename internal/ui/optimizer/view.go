// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package optimizer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/promptvita/promptpro/internal/model"
	"github.com/promptvita/promptpro/internal/ui/components"
	"github.com/promptvita/promptpro/internal/ui/styles"
	"github.com/promptvita/promptpro/internal/util"
)

// Screen geometry. The navigation bar is row 0 and the panes start below it.
const (
	bodyTop = 1
	// paneChrome is border plus padding on both sides of a pane.
	paneChrome = 4
	// leftPaneFixedRows is everything in the left pane except the textarea.
	leftPaneFixedRows = 9
)

// paneWidths splits the terminal width around the divider.
func (m Model) paneWidths() (left, right int) {
	return m.split.Widths(m.width, dividerWidth)
}

// bodyHeight is the height of the pane row.
func (m Model) bodyHeight() int {
	h := m.height - bodyTop - 1 - m.footerHeight()
	if h < 5 {
		return 5
	}
	return h
}

// footerHeight is the status bar, or the full help when it is open.
func (m Model) footerHeight() int {
	if m.showHelp {
		return lipgloss.Height(m.help.FullHelpView(m.keys.FullHelp()))
	}
	return 1
}

// copyIconOffset is the column of "[copy]" within the right pane.
func copyIconOffset(c model.Context) int {
	// border + padding, title, one space
	return 2 + lipgloss.Width(c.Labels().OutputTitle) + 1
}

// View renders the model.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sections := []string{
		components.RenderNavbar(m.theme, m.width, m.navState()),
		m.renderBody(),
		m.renderToastRow(),
		m.renderFooter(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) navState() components.NavState {
	st := components.NavState{Verifying: m.restoring}
	if m.session != nil {
		if u, ok := m.session.User(); ok && m.session.IsAuthenticated() {
			st.UserName = u.Name
		}
	}
	return st
}

func (m Model) renderBody() string {
	bh := m.bodyHeight()

	if m.modal.IsOpen() {
		return lipgloss.Place(m.width, bh, lipgloss.Center, lipgloss.Center, m.modal.View(m.theme))
	}

	lw, rw := m.paneWidths()
	left := m.theme.Pane(true).
		Width(max(lw-2, 1)).
		Height(max(bh-2, 1)).
		Render(m.renderInputPane(lw - paneChrome))

	right := m.theme.Pane(false).
		Width(max(rw-2, 1)).
		Height(max(bh-2, 1)).
		Render(m.renderResultPane(rw - paneChrome))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, m.renderDivider(bh), right)
}

func (m Model) renderInputPane(width int) string {
	labels := m.context.Labels()
	var b strings.Builder

	if m.theme.GetLayoutMode() != styles.LayoutNarrow {
		b.WriteString(m.theme.Headline.Render(util.WrapWidth(labels.Headline, max(width-2, 10))))
		b.WriteString("\n\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	b.WriteString(m.theme.SectionTitle.Render("Context: "))
	b.WriteString(m.theme.ContextPicker.Render("‹ " + m.context.DisplayName() + " ›"))
	b.WriteString(m.theme.ShortcutDesc.Render("  tab"))
	b.WriteString("\n\n")

	button := m.theme.Button
	if m.loading || util.NormalizeInput(m.input.Value()) == "" {
		button = m.theme.ButtonDisabled
	}
	label := labels.ButtonLabel(m.loading)
	if m.loading {
		label = m.spinner.View() + " " + label
	}
	b.WriteString(button.Render(label))

	return b.String()
}

func (m Model) renderResultPane(width int) string {
	pane := components.ResultPane{
		Labels:  m.context.Labels(),
		Latest:  m.conv.Latest(),
		Width:   width,
		Loading: m.loading,
		Spinner: m.spinner.View(),
		Flash:   m.flash,
	}
	if m.renderMarkdown {
		pane.Markdown = m.markdown
	}
	return pane.View(m.theme)
}

func (m Model) renderDivider(height int) string {
	style, glyph := m.theme.Divider, "│"
	if m.split.Dragging() {
		style, glyph = m.theme.DividerActive, "┃"
	}
	lines := make([]string, height)
	for i := range lines {
		lines[i] = glyph
	}
	// Grip in the middle, like the three-line handle on the web.
	if height >= 5 {
		mid := height / 2
		lines[mid-1], lines[mid], lines[mid+1] = "╏", "╏", "╏"
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) renderToastRow() string {
	if t, ok := m.toasts.Current(); ok {
		return components.PlaceToast(m.theme, t, m.width)
	}
	return ""
}

func (m Model) renderFooter() string {
	if m.showHelp {
		return m.help.FullHelpView(m.keys.FullHelp())
	}

	snap := m.quota.Snapshot()
	return components.RenderStatusBar(m.theme, m.width, components.StatusState{
		Context:    m.context.DisplayName(),
		QuotaLabel: m.quota.Label(),
		QuotaLow:   snap.Known && !snap.Unlimited && !snap.Authenticated && snap.Remaining <= 1,
		Shortcuts:  m.keys.Shortcuts(),
	})
}
