// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package quota tracks the anonymous free-request allowance. The numbers are
// a client-side estimate refreshed from the server; the server always has
// the final say when it refuses a request.
package quota

import (
	"context"
	"fmt"
	"sync"

	"github.com/promptvita/promptpro/internal/api"
)

// Checker fetches the authoritative quota.
type Checker interface {
	CheckRequests(ctx context.Context) (*api.QuotaResponse, error)
}

// Snapshot is a point-in-time copy of the tracker.
type Snapshot struct {
	Remaining     int
	Total         int
	Authenticated bool
	Unlimited     bool
	Known         bool
}

// Tracker holds the current quota estimate. It is safe for concurrent use.
type Tracker struct {
	mu sync.RWMutex
	s  Snapshot
}

// NewTracker returns a tracker with nothing known yet.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Refresh replaces the estimate with the server's numbers.
func (t *Tracker) Refresh(ctx context.Context, c Checker) error {
	resp, err := c.CheckRequests(ctx)
	if err != nil {
		return err
	}
	t.Update(*resp)
	return nil
}

// Update applies a check-requests response.
func (t *Tracker) Update(resp api.QuotaResponse) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.s = Snapshot{
		Remaining:     resp.RemainingRequests,
		Total:         resp.TotalLimit,
		Authenticated: resp.IsAuthenticated,
		Unlimited:     resp.Unlimited,
		Known:         true,
	}
	if resp.RequiresLogin && !resp.IsAuthenticated {
		t.s.Remaining = 0
	}
}

// Decrement optimistically consumes one anonymous request. It does nothing
// for authenticated or unlimited sessions, or before the first refresh.
func (t *Tracker) Decrement() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.s.Known || t.s.Authenticated || t.s.Unlimited {
		return
	}
	if t.s.Remaining > 0 {
		t.s.Remaining--
	}
}

// MarkExhausted records a server refusal.
func (t *Tracker) MarkExhausted() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.s.Remaining = 0
	t.s.Known = true
	t.s.Authenticated = false
	t.s.Unlimited = false
}

// SetAuthenticated switches the estimate to a logged-in session, or back to
// unknown on logout until the next refresh.
func (t *Tracker) SetAuthenticated(authenticated bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if authenticated {
		t.s = Snapshot{Authenticated: true, Unlimited: true, Known: true}
		return
	}
	t.s = Snapshot{}
}

// Exhausted reports whether an anonymous user has no free requests left.
func (t *Tracker) Exhausted() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.s.Known && !t.s.Authenticated && !t.s.Unlimited && t.s.Remaining <= 0
}

// Snapshot returns a copy of the estimate.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.s
}

// Label is the short status line text, or "" before the first refresh.
func (t *Tracker) Label() string {
	s := t.Snapshot()
	switch {
	case !s.Known:
		return ""
	case s.Authenticated || s.Unlimited:
		return "Unlimited"
	case s.Remaining <= 0:
		return "No free requests left - log in to continue"
	default:
		return fmt.Sprintf("%d of %d free requests left", s.Remaining, s.Total)
	}
}
