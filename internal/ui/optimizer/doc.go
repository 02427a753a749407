// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package optimizer is the Bubble Tea application: an input pane on the left,
// the latest optimization on the right, and a draggable divider between them.
//
// The model owns the conversation, the loading flag, the context selector and
// the split. Network calls run as commands and report back as messages, so
// Update is the only place state changes.
package optimizer
