// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the HTTP client for the PromptVita backend.
//
// The backend exposes a small JSON API under /api: prompt optimization,
// anonymous quota checks and token-based accounts. This package wraps those
// endpoints with typed requests and responses and maps error statuses onto
// sentinel errors.
//
// # Key Types
//
//   - Client: configured with NewClient and the With* builders
//   - APIError: non-2xx response with the server's message
//   - User, OptimizeResponse, QuotaResponse: wire types
//
// # Usage
//
//	client := api.NewClient("https://www.promptvita.com").
//	    WithTimeout(30 * time.Second).
//	    WithLogger(logger)
//	resp, err := client.Optimize(ctx, "write a poem", model.ContextGeneral)
//	if errors.Is(err, api.ErrRequiresLogin) {
//	    // anonymous quota exhausted
//	}
//
// Only idempotent GET requests are retried. An optimize call is sent once so
// that a retry can never consume two units of quota.
package api
