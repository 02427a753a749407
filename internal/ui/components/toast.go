// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/promptvita/promptpro/internal/ui/styles"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind represents the type of toast notification.
type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
)

// Toast durations.
const (
	SuccessToastDuration = 2 * time.Second
	ErrorToastDuration   = 3 * time.Second
	ToastTickInterval    = 100 * time.Millisecond
)

// Copy feedback text.
const (
	CopiedText     = "Copied to clipboard!"
	CopyFailedText = "Failed to copy. Please try again."
)

// Toast is a transient notification.
type Toast struct {
	ID        int
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

// ExpiredAt reports whether the toast should be gone at now.
func (t Toast) ExpiredAt(now time.Time) bool {
	return now.Sub(t.CreatedAt) >= t.Duration
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager holds the active toasts. Only one toast is shown at a time,
// so a new toast replaces the current one.
type ToastManager struct {
	mu     sync.Mutex
	toast  *Toast
	nextID int
	now    func() time.Time
}

// NewToastManager creates an empty manager.
func NewToastManager() *ToastManager {
	return &ToastManager{now: time.Now}
}

// WithClock replaces the time source, for tests.
func (m *ToastManager) WithClock(now func() time.Time) *ToastManager {
	m.now = now
	return m
}

// Show replaces the current toast and returns its ID.
func (m *ToastManager) Show(message string, kind ToastKind) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	d := SuccessToastDuration
	if kind == ToastError {
		d = ErrorToastDuration
	}
	m.nextID++
	m.toast = &Toast{
		ID:        m.nextID,
		Message:   message,
		Kind:      kind,
		CreatedAt: m.now(),
		Duration:  d,
	}
	return m.nextID
}

// Success shows a success toast.
func (m *ToastManager) Success(message string) int {
	return m.Show(message, ToastSuccess)
}

// Error shows an error toast.
func (m *ToastManager) Error(message string) int {
	return m.Show(message, ToastError)
}

// Tick drops the toast once it has expired and reports whether one is still
// visible.
func (m *ToastManager) Tick() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.toast != nil && m.toast.ExpiredAt(m.now()) {
		m.toast = nil
	}
	return m.toast != nil
}

// Current returns the visible toast.
func (m *ToastManager) Current() (Toast, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.toast == nil {
		return Toast{}, false
	}
	return *m.toast, true
}

// Clear removes the visible toast.
func (m *ToastManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toast = nil
}

// =============================================================================
// TOAST MESSAGES
// =============================================================================

// ToastTickMsg is sent periodically while a toast is visible.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd returns a command that ticks toasts every 100ms.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(ToastTickInterval, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// TOAST RENDERING
// =============================================================================

// RenderToast renders t with its status indicator.
func RenderToast(theme *styles.Theme, t Toast) string {
	if t.Kind == ToastError {
		return theme.ToastError.Render(styles.StatusIndicators.Error + " " + t.Message)
	}
	return theme.ToastSuccess.Render(styles.StatusIndicators.Success + " " + t.Message)
}

// PlaceToast right-aligns the rendered toast within width.
func PlaceToast(theme *styles.Theme, t Toast, width int) string {
	rendered := RenderToast(theme, t)
	if width <= 0 {
		return rendered
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, rendered)
}
