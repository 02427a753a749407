// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSplit(t *testing.T) {
	assert.Equal(t, DefaultPercent, NewSplit(0).Percent())
	assert.Equal(t, 35.0, NewSplit(35).Percent())
	assert.Equal(t, MaxPercent, NewSplit(95).Percent())
	assert.False(t, NewSplit(0).Dragging())
}

func TestMove_ClampsWhileDragging(t *testing.T) {
	s := NewSplit(50)
	s.Begin()

	assert.True(t, s.Move(10, 0, 100))
	assert.Equal(t, 20.0, s.Percent(), "10% clamps to the minimum")

	s.Move(95, 0, 100)
	assert.Equal(t, 80.0, s.Percent())

	s.Move(160, 100, 200)
	assert.Equal(t, 30.0, s.Percent(), "container offset is subtracted")

	s.End()
	assert.False(t, s.Dragging())
}

func TestMove_IgnoredWhenIdleOrZeroWidth(t *testing.T) {
	s := NewSplit(50)
	assert.False(t, s.Move(30, 0, 100))
	assert.Equal(t, 50.0, s.Percent())

	s.Begin()
	assert.False(t, s.Move(30, 0, 0))
	assert.False(t, s.Move(30, 0, -5))
	assert.Equal(t, 50.0, s.Percent())
}

func TestNudge(t *testing.T) {
	s := NewSplit(50)
	s.Nudge(-NudgeStep)
	assert.Equal(t, 45.0, s.Percent())

	for i := 0; i < 10; i++ {
		s.Nudge(-NudgeStep)
	}
	assert.Equal(t, MinPercent, s.Percent())

	for i := 0; i < 20; i++ {
		s.Nudge(NudgeStep)
	}
	assert.Equal(t, MaxPercent, s.Percent())
}

func TestClamp_NaN(t *testing.T) {
	assert.Equal(t, DefaultPercent, Clamp(math.NaN()))
}

func TestWidths(t *testing.T) {
	tests := []struct {
		percent        float64
		total, divider int
		wantL, wantR   int
	}{
		{50, 101, 1, 50, 50},
		{20, 101, 1, 20, 80},
		{80, 81, 1, 64, 16},
		{50, 1, 1, 0, 0},
		{50, 3, 1, 1, 1},
	}
	for _, tt := range tests {
		s := NewSplit(tt.percent)
		l, r := s.Widths(tt.total, tt.divider)
		assert.Equal(t, tt.wantL, l, "left for %v/%d", tt.percent, tt.total)
		assert.Equal(t, tt.wantR, r, "right for %v/%d", tt.percent, tt.total)
		if tt.total > tt.divider {
			assert.Equal(t, tt.total-tt.divider, l+r)
		}
	}
	assert.Equal(t, 50, NewSplit(50).DividerColumn(101, 1))
}
