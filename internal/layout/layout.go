// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package layout implements the draggable divider between the input and
// output panes.
package layout

import "math"

const (
	// MinPercent and MaxPercent bound the left pane.
	MinPercent = 20.0
	MaxPercent = 80.0

	// DefaultPercent is the initial split.
	DefaultPercent = 50.0

	// NudgeStep is the keyboard resize increment.
	NudgeStep = 5.0
)

// Split is the divider state machine: idle until Begin, dragging until End.
// The zero value is not ready for use; call NewSplit.
type Split struct {
	percent  float64
	dragging bool
}

// NewSplit returns an idle split at percent, clamped. Zero selects the
// default.
func NewSplit(percent float64) *Split {
	if percent == 0 {
		percent = DefaultPercent
	}
	return &Split{percent: Clamp(percent)}
}

// Clamp limits p to [MinPercent, MaxPercent].
func Clamp(p float64) float64 {
	if math.IsNaN(p) {
		return DefaultPercent
	}
	return math.Max(MinPercent, math.Min(MaxPercent, p))
}

// Percent returns the left pane width in percent.
func (s *Split) Percent() float64 { return s.percent }

// Dragging reports whether a drag is in progress.
func (s *Split) Dragging() bool { return s.dragging }

// Begin starts a drag.
func (s *Split) Begin() { s.dragging = true }

// End finishes a drag.
func (s *Split) End() { s.dragging = false }

// Move updates the split from a pointer position during a drag. It returns
// false, leaving the split unchanged, when idle or when width is not
// positive.
func (s *Split) Move(pointerX, containerLeft, containerWidth float64) bool {
	if !s.dragging || containerWidth <= 0 {
		return false
	}
	s.percent = Clamp((pointerX - containerLeft) / containerWidth * 100)
	return true
}

// Nudge moves the divider by delta percentage points.
func (s *Split) Nudge(delta float64) {
	s.percent = Clamp(s.percent + delta)
}

// Widths splits total columns into left and right pane widths, reserving
// divider columns between them. Both panes get at least one column when
// there is room.
func (s *Split) Widths(total, divider int) (left, right int) {
	avail := total - divider
	if avail <= 0 {
		return 0, 0
	}
	left = int(math.Round(float64(avail) * s.percent / 100))
	if avail >= 2 {
		left = max(1, min(left, avail-1))
	}
	return left, avail - left
}

// DividerColumn returns the zero-based column of the divider for a given
// total width.
func (s *Split) DividerColumn(total, divider int) int {
	left, _ := s.Widths(total, divider)
	return left
}
