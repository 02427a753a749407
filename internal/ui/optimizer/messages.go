// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package optimizer

import (
	"github.com/promptvita/promptpro/internal/api"
	"github.com/promptvita/promptpro/internal/auth"
	"github.com/promptvita/promptpro/internal/ui/components"
)

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// restoreDoneMsg ends startup session restoration.
type restoreDoneMsg struct {
	result auth.RestoreResult
}

// quotaMsg carries a check-requests response.
type quotaMsg struct {
	resp *api.QuotaResponse
	err  error
}

// authDoneMsg ends a login or signup attempt.
type authDoneMsg struct {
	mode auth.Mode
	user *api.User
	err  error
}

// logoutDoneMsg ends a logout.
type logoutDoneMsg struct {
	err error
}

// CredentialsChangedMsg is sent by the credential store watcher when
// another process logged in or out.
type CredentialsChangedMsg struct{}

// =============================================================================
// OPTIMIZE MESSAGES
// =============================================================================

// optimizeDoneMsg carries the outcome of one optimize request.
type optimizeDoneMsg struct {
	resp *api.OptimizeResponse
	err  error
}

// =============================================================================
// COPY MESSAGES
// =============================================================================

// copyDoneMsg reports a clipboard write.
type copyDoneMsg struct {
	target components.CopyTarget
	err    error
}
