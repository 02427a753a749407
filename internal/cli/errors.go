// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/promptvita/promptpro/internal/api"
	"github.com/promptvita/promptpro/internal/auth"
	pperrors "github.com/promptvita/promptpro/internal/errors"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitUsageError   = 2
	ExitConfigError  = 3
	ExitAuthError    = 4
	ExitNetworkError = 5
)

// GetExitCode maps err to a process exit code.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var pe *pperrors.PromptProError
	if !errors.As(err, &pe) {
		return ExitGeneralError
	}
	switch pe.Code {
	case pperrors.ErrValidationFailed, pperrors.ErrEmptyInput, pperrors.ErrNotInteractive:
		return ExitUsageError
	case pperrors.ErrConfigInvalid, pperrors.ErrConfigWrite:
		return ExitConfigError
	case pperrors.ErrNotLoggedIn, pperrors.ErrQuotaExhausted:
		return ExitAuthError
	case pperrors.ErrAPIUnreachable:
		return ExitNetworkError
	default:
		return ExitGeneralError
	}
}

// =============================================================================
// ERROR TRANSLATION
// =============================================================================

// userError turns a backend or session error into a typed error with a hint.
// Errors that are already typed pass through.
func userError(err error, baseURL string) error {
	if err == nil {
		return nil
	}

	var pe *pperrors.PromptProError
	if errors.As(err, &pe) {
		return err
	}

	var fieldErrs auth.FieldErrors
	if errors.As(err, &fieldErrs) {
		return pperrors.ValidationFailed(fieldErrs.Error())
	}

	switch {
	case errors.Is(err, api.ErrUnreachable):
		return pperrors.APIUnreachable(baseURL, err)
	case errors.Is(err, api.ErrRequiresLogin):
		return pperrors.QuotaExhausted(api.ServerMessage(err))
	case errors.Is(err, api.ErrUnauthorized):
		return pperrors.Wrap(pperrors.ErrNotLoggedIn, "session rejected by the server",
			"Run `promptpro login` again", err)
	}

	msg := api.ServerMessage(err)
	if msg == "" {
		msg = "request failed"
	}
	return pperrors.Wrap(pperrors.ErrAPIFailed, msg, "", err)
}

// printError writes err with its hint, if any.
func printError(w io.Writer, err error) {
	var pe *pperrors.PromptProError
	if errors.As(err, &pe) {
		fmt.Fprintf(w, "%s %s\n", errorIcon, pe.Message)
		if hint := pe.GetHint(); hint != "" {
			fmt.Fprintf(w, "  %s\n", dim(hint))
		}
		return
	}
	fmt.Fprintf(w, "%s %s\n", errorIcon, err.Error())
}

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", successIcon, fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", warningIcon, fmt.Sprintf(format, args...))
}
