// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"time"

	"github.com/promptvita/promptpro/internal/model"
)

// User is the public account record returned by the backend.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at,omitempty"`
	IsActive  bool   `json:"is_active"`
}

// Created parses CreatedAt. The backend sends ISO-8601 without a zone.
func (u User) Created() (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, u.CreatedAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// OptimizeRequest is the body of POST /api/optimize.
type OptimizeRequest struct {
	Prompt  string        `json:"prompt"`
	Context model.Context `json:"context"`
}

// OptimizeResponse is a successful optimization.
type OptimizeResponse struct {
	Original  string `json:"original"`
	Optimized string `json:"optimized"`
	Strategy  string `json:"strategy"`
	Context   string `json:"context,omitempty"`
}

// QuotaResponse is the body of GET /api/check-requests.
type QuotaResponse struct {
	RemainingRequests int  `json:"remaining_requests"`
	TotalLimit        int  `json:"total_limit"`
	IsAuthenticated   bool `json:"is_authenticated"`
	Unlimited         bool `json:"unlimited"`
	RequiresLogin     bool `json:"requires_login"`
}

// SignupRequest is the body of POST /api/signup.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
	Token   string `json:"token"`
}

// VerifyResponse is the body of a successful POST /api/verify-token.
type VerifyResponse struct {
	Valid bool `json:"valid"`
	User  User `json:"user"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// StrategiesResponse lists the server's contexts and the strategy
// descriptions it draws from.
type StrategiesResponse struct {
	Contexts   []string `json:"contexts"`
	Strategies []string `json:"strategies"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

type profileResponse struct {
	User User `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse covers both error shapes the backend uses.
type errorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	RequiresLogin bool   `json:"requires_login"`
}
