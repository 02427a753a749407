// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FlashDuration is how long a copy button keeps its success style.
const FlashDuration = time.Second

// CopyTarget names the control that triggered a copy.
type CopyTarget int

const (
	CopyNone CopyTarget = iota
	// CopyIcon is the small icon in the output header.
	CopyIcon
	// CopyButton is the main action button under the result.
	CopyButton
)

// CopyFlash tracks which copy control is showing success. A newer flash
// supersedes an older one, and a stale expiry is ignored.
type CopyFlash struct {
	target CopyTarget
	seq    int
}

// FlashExpiredMsg ends the flash started with the same sequence number.
type FlashExpiredMsg struct {
	Seq int
}

// Start lights target and returns the command that clears it after
// FlashDuration.
func (f *CopyFlash) Start(target CopyTarget) tea.Cmd {
	f.seq++
	f.target = target
	seq := f.seq
	return tea.Tick(FlashDuration, func(time.Time) tea.Msg {
		return FlashExpiredMsg{Seq: seq}
	})
}

// Expire handles msg. It reports whether the flash was cleared.
func (f *CopyFlash) Expire(msg FlashExpiredMsg) bool {
	if msg.Seq != f.seq || f.target == CopyNone {
		return false
	}
	f.target = CopyNone
	return true
}

// Active reports whether target is flashing.
func (f CopyFlash) Active(target CopyTarget) bool {
	return target != CopyNone && f.target == target
}
