// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across promptpro.
//
// # Key Functions
//
// Text:
//   - NormalizeInput: NFC normalization and trimming of user text
//   - TruncateWidth: display-width aware truncation with ellipsis
//   - WrapWidth: word wrapping by display width
//
// Files:
//   - AtomicWriteFile: crash-safe file writes with fsync and rename
//
// # Usage
//
//	prompt := util.NormalizeInput(raw)
//	label := util.TruncateWidth(user.Name, 16)
//	err := util.AtomicWriteFile(path, data, 0600)
package util
