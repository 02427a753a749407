// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/promptvita/promptpro/internal/model"
	"github.com/promptvita/promptpro/internal/ui/styles"
	"github.com/promptvita/promptpro/internal/util"
)

// MarkdownRenderer renders markdown to terminal text. *glamour.TermRenderer
// satisfies it.
type MarkdownRenderer interface {
	Render(in string) (string, error)
}

// NewMarkdownRenderer builds a glamour renderer for style ("dark" or
// "light") wrapping at width.
func NewMarkdownRenderer(style string, width int) (*glamour.TermRenderer, error) {
	if width < 20 {
		width = 20
	}
	return glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
}

// ResultPane is the right-hand output panel.
type ResultPane struct {
	Labels  model.Labels
	Latest  model.Message
	Width   int
	Loading bool
	Spinner string
	Flash   CopyFlash
	// Markdown renders the strategy section when set.
	Markdown MarkdownRenderer
}

// View renders the pane body without its border.
func (p ResultPane) View(theme *styles.Theme) string {
	width := p.Width
	if width < 10 {
		width = 10
	}

	var b strings.Builder

	res, ok := p.Latest.(*model.AssistantResult)
	header := theme.PaneTitle.Render(p.Labels.OutputTitle)
	if ok {
		icon := theme.IconButton
		if p.Flash.Active(CopyIcon) {
			icon = theme.ButtonSuccess
		}
		header += " " + icon.Render("[copy]")
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	switch {
	case p.Loading:
		b.WriteString(theme.Spinner.Render(p.Spinner) + " " + theme.EmptyBody.Render(p.Labels.Submitting))
	case ok:
		p.writeResult(&b, theme, res, width)
	default:
		p.writeEmpty(&b, theme, width)
	}

	return b.String()
}

func (p ResultPane) writeResult(b *strings.Builder, theme *styles.Theme, res *model.AssistantResult, width int) {
	section := func(title, body string) {
		b.WriteString(theme.SectionTitle.Render(title))
		b.WriteString("\n")
		b.WriteString(body)
		b.WriteString("\n\n")
	}

	section(p.Labels.OriginalTitle, theme.SectionBody.Render(util.WrapWidth(res.Original, width)))
	section(p.Labels.StrategyTitle, p.renderStrategy(theme, res.Strategy, width))
	section(p.Labels.OutputTitle, theme.OptimizedBox.Render(util.WrapWidth(res.Optimized, width-2)))

	copyStyle := theme.Button
	if p.Flash.Active(CopyButton) {
		copyStyle = theme.ButtonSuccess
	}
	b.WriteString(copyStyle.Render(p.Labels.CopyButton) + theme.ShortcutDesc.Render(" ctrl+y"))
	b.WriteString("  ")
	b.WriteString(theme.IconButton.Render("Re-optimize >") + theme.ShortcutDesc.Render(" ctrl+r"))
}

func (p ResultPane) renderStrategy(theme *styles.Theme, strategy string, width int) string {
	if p.Markdown != nil {
		if out, err := p.Markdown.Render(strategy); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	return theme.SectionBody.Render(util.WrapWidth(strategy, width))
}

func (p ResultPane) writeEmpty(b *strings.Builder, theme *styles.Theme, width int) {
	b.WriteString(theme.EmptyTitle.Render("✨ " + p.Labels.EmptyTitle))
	b.WriteString("\n")
	b.WriteString(theme.EmptyBody.Render(util.WrapWidth(p.Labels.EmptyBody, width)))

	if e, ok := p.Latest.(*model.AssistantError); ok {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorMessage.Render(util.WrapWidth(styles.StatusIndicators.Error+" "+e.Content, width)))
		if e.RequiresLogin {
			b.WriteString("\n")
			b.WriteString(theme.ShortcutDesc.Render("Press ctrl+l to log in"))
		}
	}
}
