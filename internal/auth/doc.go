// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth owns the login session: restoring a stored token at startup,
// login, signup and logout, and the form validation shared by the TUI modal
// and the CLI prompts.
//
// # Session States
//
//	Anonymous -> Verifying -> Authenticated
//	                       -> Invalid -> Anonymous
//
// Whenever a session ends up Anonymous the caller is told to fetch the
// anonymous quota exactly once (RestoreResult.QuotaCheck).
package auth
