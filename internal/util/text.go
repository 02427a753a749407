// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// NormalizeInput converts user text to NFC and trims surrounding whitespace.
// Composed and decomposed forms of the same text produce the same prompt.
func NormalizeInput(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// TruncateWidth truncates s to maxWidth terminal columns, appending "..."
// when something was cut and there is room for it. Wide (CJK) runes count
// as two columns.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// WrapWidth word-wraps s so that no line exceeds width columns. Existing
// newlines are kept. Words longer than width are hard-split.
func WrapWidth(s string, width int) string {
	if width <= 0 {
		return s
	}

	var out strings.Builder
	for i, para := range strings.Split(s, "\n") {
		if i > 0 {
			out.WriteByte('\n')
		}
		lineWidth := 0
		for _, word := range strings.Fields(para) {
			for runewidth.StringWidth(word) > width {
				if lineWidth > 0 {
					out.WriteByte('\n')
					lineWidth = 0
				}
				head := runewidth.Truncate(word, width, "")
				if head == "" {
					head = string([]rune(word)[:1])
				}
				out.WriteString(head)
				out.WriteByte('\n')
				word = word[len(head):]
			}
			w := runewidth.StringWidth(word)
			if w == 0 {
				continue
			}
			if lineWidth > 0 && lineWidth+1+w > width {
				out.WriteByte('\n')
				lineWidth = 0
			}
			if lineWidth > 0 {
				out.WriteByte(' ')
				lineWidth++
			}
			out.WriteString(word)
			lineWidth += w
		}
	}
	return out.String()
}
