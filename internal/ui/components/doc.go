// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the promptpro TUI:
// toasts, the copy flash, the navigation and status bars, the auth modal and
// the result pane.
//
// Components are plain values owned by the optimizer model. Those with
// timers expose tea.Cmd constructors and the messages they deliver.
package components
