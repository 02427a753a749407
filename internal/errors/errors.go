// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package errors provides typed, user-facing errors for promptpro.
//
// Every error carries a stable code, a short message, and an optional hint
// telling the user what to do next. The CLI prints the hint under the error.
package errors

import "fmt"

// ErrorCode identifies the type of error.
type ErrorCode string

const (
	ErrConfigInvalid     ErrorCode = "CONFIG_INVALID"
	ErrConfigWrite       ErrorCode = "CONFIG_WRITE"
	ErrAPIUnreachable    ErrorCode = "API_UNREACHABLE"
	ErrAPIFailed         ErrorCode = "API_FAILED"
	ErrNotLoggedIn       ErrorCode = "NOT_LOGGED_IN"
	ErrQuotaExhausted    ErrorCode = "QUOTA_EXHAUSTED"
	ErrValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrEmptyInput        ErrorCode = "EMPTY_INPUT"
	ErrStorageFailed     ErrorCode = "STORAGE_FAILED"
	ErrClipboardFailed   ErrorCode = "CLIPBOARD_FAILED"
	ErrNotInteractive    ErrorCode = "NOT_INTERACTIVE"
	ErrServerStartFailed ErrorCode = "SERVER_START_FAILED"
)

// PromptProError represents a typed error with a user-friendly hint.
type PromptProError struct {
	Code    ErrorCode
	Message string
	Hint    string
	Cause   error
}

func (e *PromptProError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PromptProError) Unwrap() error {
	return e.Cause
}

// GetHint returns the hint. The CLI looks for this method when printing errors.
func (e *PromptProError) GetHint() string {
	return e.Hint
}

// New creates a new PromptProError.
func New(code ErrorCode, message, hint string) *PromptProError {
	return &PromptProError{
		Code:    code,
		Message: message,
		Hint:    hint,
	}
}

// Wrap creates a new PromptProError wrapping an existing error.
func Wrap(code ErrorCode, message, hint string, cause error) *PromptProError {
	return &PromptProError{
		Code:    code,
		Message: message,
		Hint:    hint,
		Cause:   cause,
	}
}

// ConfigInvalid returns an error for a config that failed validation.
func ConfigInvalid(reason string) *PromptProError {
	return &PromptProError{
		Code:    ErrConfigInvalid,
		Message: fmt.Sprintf("invalid config: %s", reason),
		Hint:    "Check ~/.promptpro/config.toml or run `promptpro config show`",
	}
}

// APIUnreachable returns an error for network failures talking to the API.
func APIUnreachable(baseURL string, cause error) *PromptProError {
	return &PromptProError{
		Code:    ErrAPIUnreachable,
		Message: fmt.Sprintf("cannot reach %s", baseURL),
		Hint:    "Check your connection or set PROMPTPRO_API_URL",
		Cause:   cause,
	}
}

// NotLoggedIn returns an error for commands that need a session.
func NotLoggedIn() *PromptProError {
	return &PromptProError{
		Code:    ErrNotLoggedIn,
		Message: "not logged in",
		Hint:    "Run `promptpro login` or `promptpro signup`",
	}
}

// QuotaExhausted returns an error when the anonymous quota is used up.
func QuotaExhausted(message string) *PromptProError {
	if message == "" {
		message = "free request limit reached"
	}
	return &PromptProError{
		Code:    ErrQuotaExhausted,
		Message: message,
		Hint:    "Run `promptpro login` to keep optimizing",
	}
}

// ValidationFailed returns an error listing form field problems.
func ValidationFailed(details string) *PromptProError {
	return &PromptProError{
		Code:    ErrValidationFailed,
		Message: details,
	}
}

// EmptyInput returns an error for a blank prompt.
func EmptyInput() *PromptProError {
	return &PromptProError{
		Code:    ErrEmptyInput,
		Message: "nothing to optimize",
		Hint:    "Pass text as arguments or pipe it on stdin",
	}
}
