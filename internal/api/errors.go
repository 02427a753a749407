// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error variables for the status classes the backend returns.
var (
	// ErrUnauthorized indicates a missing, invalid or expired token, or bad
	// credentials on login.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRequiresLogin indicates the anonymous free quota is used up.
	ErrRequiresLogin = errors.New("login required")

	// ErrForbidden indicates a 403 that is not a quota refusal.
	ErrForbidden = errors.New("forbidden")

	// ErrBadRequest indicates the server rejected the input (400, 409, 422).
	ErrBadRequest = errors.New("bad request")

	// ErrNotFound indicates the endpoint does not exist on this server.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates too many requests were made.
	ErrRateLimited = errors.New("rate limited")

	// ErrServer indicates a 5xx response.
	ErrServer = errors.New("server error")
)

// APIError is a non-2xx response. Message is the server-provided text, if
// any, suitable for showing to the user.
type APIError struct {
	Status        int
	Message       string
	RequiresLogin bool

	kind error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error (HTTP %d)", e.Status)
}

// Unwrap returns the sentinel for the status class so that errors.Is works.
func (e *APIError) Unwrap() error {
	return e.kind
}

// ServerMessage returns the message carried by err when it is an *APIError,
// or "" otherwise.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// handleErrorResponse converts an error status and body into an *APIError.
func handleErrorResponse(statusCode int, body []byte) error {
	apiErr := &APIError{Status: statusCode}

	var payload errorResponse
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Message = payload.Error
		if apiErr.Message == "" {
			apiErr.Message = payload.Message
		}
		apiErr.RequiresLogin = payload.RequiresLogin
	} else if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "<") {
		apiErr.Message = text
	}

	switch {
	case statusCode == http.StatusUnauthorized:
		apiErr.kind = ErrUnauthorized
	case statusCode == http.StatusForbidden && apiErr.RequiresLogin:
		apiErr.kind = ErrRequiresLogin
	case statusCode == http.StatusForbidden:
		apiErr.kind = ErrForbidden
	case statusCode == http.StatusNotFound:
		apiErr.kind = ErrNotFound
	case statusCode == http.StatusTooManyRequests:
		apiErr.kind = ErrRateLimited
	case statusCode >= 500:
		apiErr.kind = ErrServer
	default:
		apiErr.kind = ErrBadRequest
	}
	return apiErr
}

// isRetryable reports whether a GET should be attempted again after err.
func isRetryable(err error) bool {
	return errors.Is(err, ErrServer) || errors.Is(err, ErrRateLimited)
}
