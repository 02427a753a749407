// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/promptvita/promptpro/internal/api"
	"github.com/promptvita/promptpro/internal/storage"
)

// ErrTokenExpired is reported when the stored token's exp claim has passed.
var ErrTokenExpired = errors.New("stored token has expired")

// Backend is the subset of *api.Client the manager needs.
type Backend interface {
	VerifyToken(ctx context.Context, token string) (*api.VerifyResponse, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Signup(ctx context.Context, req api.SignupRequest) (*api.AuthResponse, error)
	Logout(ctx context.Context) (string, error)
	SetToken(token string)
}

// RestoreResult describes how startup session restoration ended.
type RestoreResult struct {
	State State
	User  *api.User

	// QuotaCheck is set when the session is anonymous and the anonymous
	// quota should be fetched. It is never set for an authenticated session.
	QuotaCheck bool

	// Err is the reason a stored token was discarded, if any.
	Err error
}

// =============================================================================
// AUTH MANAGER
// =============================================================================

// Manager tracks the login session. It is safe for concurrent use; network
// calls are made without holding the lock.
type Manager struct {
	mu sync.RWMutex

	backend Backend
	store   storage.Store
	logger  *zap.Logger
	now     func() time.Time

	state State
	token string
	user  *api.User
}

// NewManager creates a manager in the Anonymous state.
func NewManager(backend Backend, store storage.Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		backend: backend,
		store:   store,
		logger:  logger,
		now:     time.Now,
		state:   StateAnonymous,
	}
}

// State returns the current session state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// IsAuthenticated reports whether a verified user is logged in.
func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

// User returns a copy of the logged-in user.
func (m *Manager) User() (api.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return api.User{}, false
	}
	return *m.user, true
}

// Token returns the current bearer token, or "".
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// =============================================================================
// SESSION RESTORE
// =============================================================================

// Restore verifies a previously stored token. Without a stored token the
// session stays anonymous. Any verification failure, including an
// unreachable server, discards the token.
func (m *Manager) Restore(ctx context.Context) RestoreResult {
	creds, err := storage.LoadCredentials(m.store)
	if err != nil {
		m.logger.Warn("discarding unreadable credentials", zap.Error(err))
		return m.invalidate(err)
	}
	if creds == nil {
		m.setState(StateAnonymous)
		return RestoreResult{State: StateAnonymous, QuotaCheck: true}
	}

	m.setState(StateVerifying)

	if TokenExpired(creds.Token, m.now()) {
		return m.invalidate(ErrTokenExpired)
	}

	resp, err := m.backend.VerifyToken(ctx, creds.Token)
	if err != nil {
		return m.invalidate(err)
	}

	user := resp.User
	m.establish(creds.Token, user)
	m.logger.Info("session restored", zap.Int64("user_id", user.ID))
	return RestoreResult{State: StateAuthenticated, User: &user}
}

// invalidate moves through Invalid to Anonymous and clears everything.
func (m *Manager) invalidate(cause error) RestoreResult {
	m.setState(StateInvalid)
	m.logger.Info("stored session invalid", zap.Error(cause))
	m.clearLocal()
	return RestoreResult{State: StateAnonymous, QuotaCheck: true, Err: cause}
}

// TokenExpired peeks at the exp claim without verifying the signature. A
// token that cannot be parsed, or has no exp, is left for the server to
// judge.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}

// =============================================================================
// LOGIN / SIGNUP / LOGOUT
// =============================================================================

// Login validates f and exchanges it for a session. Validation and server
// failures are returned as FieldErrors.
func (m *Manager) Login(ctx context.Context, f LoginForm) (*api.User, error) {
	if errs := ValidateLogin(f); errs != nil {
		return nil, errs
	}

	resp, err := m.backend.Login(ctx, api.LoginRequest{
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
	})
	if err != nil {
		m.logger.Info("login rejected", zap.Error(err))
		return nil, generalError(err, LoginFailedText)
	}

	m.establish(resp.Token, resp.User)
	m.logger.Info("logged in", zap.Int64("user_id", resp.User.ID))
	user := resp.User
	return &user, nil
}

// Signup validates f, creates the account and logs it in.
func (m *Manager) Signup(ctx context.Context, f SignupForm) (*api.User, error) {
	if errs := ValidateSignup(f); errs != nil {
		return nil, errs
	}

	resp, err := m.backend.Signup(ctx, api.SignupRequest{
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
	})
	if err != nil {
		m.logger.Info("signup rejected", zap.Error(err))
		return nil, generalError(err, SignupFailedText)
	}

	m.establish(resp.Token, resp.User)
	m.logger.Info("signed up", zap.Int64("user_id", resp.User.ID))
	user := resp.User
	return &user, nil
}

// Logout ends the session. The server call is best effort; local state is
// always cleared. The caller should re-query the anonymous quota.
func (m *Manager) Logout(ctx context.Context) error {
	if m.Token() != "" {
		if _, err := m.backend.Logout(ctx); err != nil {
			m.logger.Debug("server logout failed", zap.Error(err))
		}
	}
	err := m.clearLocal()
	m.logger.Info("logged out")
	return err
}

// Reload re-reads the credential store after another process changed it.
// It reports whether the session changed.
func (m *Manager) Reload() (State, bool) {
	creds, err := storage.LoadCredentials(m.store)
	if err != nil {
		m.logger.Warn("reload credentials", zap.Error(err))
		return m.State(), false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case creds == nil && m.token == "":
		return m.state, false
	case creds == nil:
		m.token = ""
		m.user = nil
		m.state = StateAnonymous
		m.backend.SetToken("")
		return m.state, true
	case creds.Token == m.token:
		return m.state, false
	default:
		user := creds.User
		m.token = creds.Token
		m.user = &user
		m.state = StateAuthenticated
		m.backend.SetToken(creds.Token)
		return m.state, true
	}
}

// establish records a verified session in memory and in the store.
func (m *Manager) establish(token string, user api.User) {
	m.mu.Lock()
	m.token = token
	m.user = &user
	m.state = StateAuthenticated
	m.mu.Unlock()

	m.backend.SetToken(token)
	if err := storage.SaveCredentials(m.store, storage.Credentials{Token: token, User: user}); err != nil {
		m.logger.Warn("failed to persist credentials", zap.Error(err))
	}
}

// clearLocal drops the session from memory and from the store.
func (m *Manager) clearLocal() error {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.state = StateAnonymous
	m.mu.Unlock()

	m.backend.SetToken("")
	if err := storage.ClearCredentials(m.store); err != nil {
		m.logger.Warn("failed to clear credentials", zap.Error(err))
		return err
	}
	return nil
}

func generalError(err error, fallback string) FieldErrors {
	msg := api.ServerMessage(err)
	if msg == "" {
		msg = fallback
	}
	return FieldErrors{FieldGeneral: msg}
}
