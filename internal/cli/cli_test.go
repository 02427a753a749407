// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptvita/promptpro/internal/api"
	"github.com/promptvita/promptpro/internal/auth"
	"github.com/promptvita/promptpro/internal/config"
	pperrors "github.com/promptvita/promptpro/internal/errors"
	"github.com/promptvita/promptpro/internal/model"
)

// =============================================================================
// TEST BACKEND
// =============================================================================

type backend struct {
	mu sync.Mutex

	remaining      int
	optimizeStatus int
	optimizeBody   any

	optimizeCalls int
	lastOptimize  api.OptimizeRequest
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	reply := func(status int, body any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
	authed := r.Header.Get("Authorization") == "Bearer tok-ada"

	switch r.URL.Path {
	case "/api/optimize":
		b.optimizeCalls++
		_ = json.NewDecoder(r.Body).Decode(&b.lastOptimize)
		reply(b.optimizeStatus, b.optimizeBody)
	case "/api/check-requests":
		if authed {
			reply(http.StatusOK, api.QuotaResponse{IsAuthenticated: true, Unlimited: true})
			return
		}
		reply(http.StatusOK, api.QuotaResponse{RemainingRequests: b.remaining, TotalLimit: 5, RequiresLogin: b.remaining == 0})
	case "/api/auth/login":
		var req api.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret1" {
			reply(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
			return
		}
		reply(http.StatusOK, api.AuthResponse{
			Message: "Login successful",
			Token:   "tok-ada",
			User:    api.User{ID: 7, Name: "Ada", Email: req.Email, CreatedAt: "2024-03-01T10:00:00"},
		})
	case "/api/auth/verify-token":
		reply(http.StatusOK, api.VerifyResponse{Valid: true, User: api.User{ID: 7, Name: "Ada", Email: "ada@example.com", CreatedAt: "2024-03-01T10:00:00"}})
	case "/api/auth/logout":
		reply(http.StatusOK, map[string]string{"message": "Logout successful"})
	case "/api/health":
		reply(http.StatusOK, api.HealthResponse{Status: "healthy", Message: "PromptPro API is running"})
	case "/api/strategies":
		reply(http.StatusOK, api.StrategiesResponse{Contexts: []string{"general", "business", "cursor_code_optimizer"}})
	default:
		reply(http.StatusNotFound, map[string]string{"error": "Endpoint not found"})
	}
}

func (b *backend) calls() (int, api.OptimizeRequest) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.optimizeCalls, b.lastOptimize
}

// setup isolates the config directory and starts a backend.
func setup(t *testing.T) (*backend, string) {
	t.Helper()
	t.Setenv(config.EnvPrefix+"HOME", t.TempDir())
	t.Setenv(config.EnvPrefix+"API_RATE_LIMIT", "0")

	b := &backend{
		remaining:      3,
		optimizeStatus: http.StatusOK,
		optimizeBody: api.OptimizeResponse{
			Original:  "write a plan",
			Strategy:  "Added **structure** and a clear goal.",
			Optimized: "Write a one-page business plan with goals, market and budget.",
		},
	}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	return b, srv.URL
}

// run executes the root command with args and stdin.
func run(t *testing.T, url, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	if url != "" {
		args = append(args, "--api-url", url)
	}
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func code(err error) pperrors.ErrorCode {
	var pe *pperrors.PromptProError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// =============================================================================
// OPTIMIZE
// =============================================================================

func TestOptimize_Args(t *testing.T) {
	b, url := setup(t)

	out, _, err := run(t, url, "", "optimize", "write", "a", "plan", "-c", "business")
	require.NoError(t, err)

	assert.Contains(t, out, "Original Prompt")
	assert.Contains(t, out, "Strategy Applied")
	assert.Contains(t, out, "Optimized Prompt")
	assert.Contains(t, out, "goals, market and budget")
	assert.Less(t, strings.Index(out, "Original Prompt"), strings.Index(out, "Strategy Applied"))

	calls, req := b.calls()
	assert.Equal(t, 1, calls)
	assert.Equal(t, "write a plan", req.Prompt)
	assert.Equal(t, model.ContextBusiness, req.Context)
}

func TestOptimize_RephraseLabels(t *testing.T) {
	_, url := setup(t)

	out, _, err := run(t, url, "", "optimize", "-c", "rephrase", "i recieve ur messege")
	require.NoError(t, err)
	assert.Contains(t, out, "Original Text")
	assert.Contains(t, out, "Correction Strategy")
	assert.Contains(t, out, "Corrected Text")
}

func TestOptimize_Stdin(t *testing.T) {
	b, url := setup(t)

	_, _, err := run(t, url, "  fix this\n\n", "optimize")
	require.NoError(t, err)
	_, req := b.calls()
	assert.Equal(t, "fix this", req.Prompt)
}

func TestOptimize_JSON(t *testing.T) {
	_, url := setup(t)

	out, _, err := run(t, url, "", "optimize", "--json", "plan")
	require.NoError(t, err)

	var resp struct {
		Success bool                 `json:"success"`
		Command string               `json:"command"`
		Data    api.OptimizeResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "optimize", resp.Command)
	assert.Equal(t, "write a plan", resp.Data.Original)
}

func TestOptimize_BlankInput(t *testing.T) {
	b, url := setup(t)

	_, _, err := run(t, url, "   \n\t", "optimize")
	require.Error(t, err)
	assert.Equal(t, pperrors.ErrEmptyInput, code(err))
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	calls, _ := b.calls()
	assert.Zero(t, calls)
}

func TestOptimize_ExhaustedQuotaSkipsRequest(t *testing.T) {
	b, url := setup(t)
	b.remaining = 0

	_, _, err := run(t, url, "", "optimize", "plan")
	require.Error(t, err)
	assert.Equal(t, pperrors.ErrQuotaExhausted, code(err))
	assert.Equal(t, ExitAuthError, GetExitCode(err))

	calls, _ := b.calls()
	assert.Zero(t, calls)
}

func TestOptimize_ServerRefusal(t *testing.T) {
	b, url := setup(t)
	b.optimizeStatus = http.StatusForbidden
	b.optimizeBody = map[string]any{"error": "Free limit reached. Please log in.", "requires_login": true}

	_, _, err := run(t, url, "", "optimize", "plan")
	require.Error(t, err)
	assert.Equal(t, pperrors.ErrQuotaExhausted, code(err))
	assert.Contains(t, err.Error(), "Free limit reached")
}

// =============================================================================
// SESSION COMMANDS
// =============================================================================

func TestLoginWhoamiLogout(t *testing.T) {
	b, url := setup(t)

	out, _, err := run(t, url, "secret1\n", "login", "--email", "ada@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Ada <ada@example.com>")

	out, _, err = run(t, url, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "March 1, 2024")

	out, _, err = run(t, url, "", "quota")
	require.NoError(t, err)
	assert.Contains(t, out, "Unlimited")

	_, _, err = run(t, url, "", "optimize", "plan")
	require.NoError(t, err)
	calls, _ := b.calls()
	assert.Equal(t, 1, calls)

	out, _, err = run(t, url, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")

	out, _, err = run(t, url, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "anonymous")

	out, _, err = run(t, url, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")
}

func TestLogin_PromptsForEmail(t *testing.T) {
	_, url := setup(t)

	out, prompts, err := run(t, url, "ada@example.com\nsecret1\n", "login")
	require.NoError(t, err)
	assert.Contains(t, prompts, "Email:")
	assert.Contains(t, prompts, "Password:")
	assert.Contains(t, out, "Logged in as Ada")
}

func TestLogin_Rejected(t *testing.T) {
	_, url := setup(t)

	_, _, err := run(t, url, "wrong-password\n", "login", "--email", "ada@example.com")
	require.Error(t, err)
	assert.Equal(t, pperrors.ErrValidationFailed, code(err))
	assert.Equal(t, "Invalid email or password", err.Error())
}

func TestLogin_ValidationHappensBeforeNetwork(t *testing.T) {
	t.Setenv(config.EnvPrefix+"HOME", t.TempDir())

	_, _, err := run(t, "http://127.0.0.1:1", "x\n", "login", "--email", "not-an-email")
	require.Error(t, err)
	assert.Equal(t, pperrors.ErrValidationFailed, code(err))
	assert.Contains(t, err.Error(), "Please enter a valid email")
}

func TestSignup_PasswordMismatch(t *testing.T) {
	t.Setenv(config.EnvPrefix+"HOME", t.TempDir())

	_, _, err := run(t, "", "secret1\nsecret2\n", "signup", "--name", "Ada", "--email", "ada@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Passwords do not match")
}

func TestWhoami_JSONAnonymous(t *testing.T) {
	_, url := setup(t)

	out, _, err := run(t, url, "", "whoami", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"authenticated": false`)
}

// =============================================================================
// INFO COMMANDS
// =============================================================================

func TestQuota_Anonymous(t *testing.T) {
	_, url := setup(t)

	out, _, err := run(t, url, "", "quota")
	require.NoError(t, err)
	assert.Contains(t, out, "3 of 5 free requests left")
}

func TestContexts_IncludesServerOnly(t *testing.T) {
	_, url := setup(t)

	out, _, err := run(t, url, "", "contexts")
	require.NoError(t, err)
	assert.Contains(t, out, "business")
	assert.Contains(t, out, "Rephrase & Grammar")
	assert.Contains(t, out, "Also available on the server")
	assert.Contains(t, out, "Cursor Code Optimizer")
}

func TestHealth(t *testing.T) {
	_, url := setup(t)

	out, _, err := run(t, url, "", "health")
	require.NoError(t, err)
	assert.Contains(t, out, "healthy")
	assert.Contains(t, out, url)
}

func TestHealth_Unreachable(t *testing.T) {
	t.Setenv(config.EnvPrefix+"HOME", t.TempDir())

	_, _, err := run(t, "http://127.0.0.1:1", "", "health")
	require.Error(t, err)
	assert.Equal(t, pperrors.ErrAPIUnreachable, code(err))
	assert.Equal(t, ExitNetworkError, GetExitCode(err))
}

// =============================================================================
// CONFIG AND VERSION
// =============================================================================

func TestConfigInitPathShow(t *testing.T) {
	t.Setenv(config.EnvPrefix+"HOME", t.TempDir())

	out, _, err := run(t, "", "", "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, "not created yet")

	out, _, err = run(t, "", "", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "config.toml")

	out, _, err = run(t, "", "", "config", "path")
	require.NoError(t, err)
	assert.NotContains(t, out, "not created yet")

	_, _, err = run(t, "", "", "config", "init")
	require.Error(t, err)
	assert.Equal(t, pperrors.ErrConfigWrite, code(err))

	out, _, err = run(t, "", "", "config", "show", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"base_url"`)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "promptpro "+Version))
}

// =============================================================================
// HELPERS
// =============================================================================

func TestUserError(t *testing.T) {
	base := "http://example.test"
	tests := []struct {
		name string
		err  error
		want pperrors.ErrorCode
	}{
		{"unreachable", fmt.Errorf("%w: dial tcp", api.ErrUnreachable), pperrors.ErrAPIUnreachable},
		{"field errors", auth.FieldErrors{auth.FieldEmail: "Email is required"}, pperrors.ErrValidationFailed},
		{"typed passes through", pperrors.NotLoggedIn(), pperrors.ErrNotLoggedIn},
		{"other", errors.New("boom"), pperrors.ErrAPIFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, code(userError(tt.err, base)))
		})
	}
	assert.NoError(t, userError(nil, base))
}

func TestPrintError_WithHint(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, pperrors.NotLoggedIn())
	assert.Contains(t, buf.String(), "✗ not logged in")
	assert.Contains(t, buf.String(), "promptpro login")
}

func TestCompleteCommand(t *testing.T) {
	assert.Equal(t, []string{":quit"}, completeCommand(":q"))
	assert.Equal(t, []string{":ctx image_generation"}, completeCommand(":ctx im"))
	assert.Empty(t, completeCommand("hello"))
}

func TestReplCommands(t *testing.T) {
	var out bytes.Buffer
	r := &repl{env: &env{out: &out, errOut: &out}, context: model.ContextGeneral}

	assert.False(t, r.handleCommand(":ctx business"))
	assert.Equal(t, model.ContextBusiness, r.context)
	assert.Equal(t, "promptpro [business]> ", r.prompt())

	assert.False(t, r.handleCommand(":ctx image generation"))
	assert.Equal(t, model.ContextImageGeneration, r.context)

	assert.False(t, r.handleCommand(":ctx poetry"))
	assert.Equal(t, model.ContextImageGeneration, r.context)
	assert.Contains(t, out.String(), `unknown context "poetry"`)

	assert.True(t, r.handleCommand(":quit"))
}
