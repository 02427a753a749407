// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// GenericErrorText is shown when an optimize call fails without a usable
// server message.
const GenericErrorText = "Sorry, I encountered an error while optimizing your prompt. Please try again."

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "PromptPro"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE VARIANTS
// =============================================================================

// Message is one turn of a session. The set of implementations is closed:
// *UserMessage, *AssistantResult and *AssistantError. Render code switches on
// the concrete type.
type Message interface {
	MessageID() string
	Role() Role
	Time() time.Time
	isMessage()
}

// UserMessage is text submitted for optimization.
type UserMessage struct {
	ID        string
	Content   string
	Context   Context
	Timestamp time.Time
}

// AssistantResult is a successful optimization.
type AssistantResult struct {
	ID        string
	Original  string
	Strategy  string
	Optimized string
	Timestamp time.Time
}

// AssistantError is a failed optimization with the text to display.
type AssistantError struct {
	ID        string
	Content   string
	Timestamp time.Time
	// RequiresLogin is set when the server refused for quota reasons.
	RequiresLogin bool
}

func (m *UserMessage) MessageID() string     { return m.ID }
func (m *AssistantResult) MessageID() string { return m.ID }
func (m *AssistantError) MessageID() string  { return m.ID }

func (m *UserMessage) Role() Role     { return RoleUser }
func (m *AssistantResult) Role() Role { return RoleAssistant }
func (m *AssistantError) Role() Role  { return RoleAssistant }

func (m *UserMessage) Time() time.Time     { return m.Timestamp }
func (m *AssistantResult) Time() time.Time { return m.Timestamp }
func (m *AssistantError) Time() time.Time  { return m.Timestamp }

func (*UserMessage) isMessage()     {}
func (*AssistantResult) isMessage() {}
func (*AssistantError) isMessage()  {}

// NewUserMessage creates a user message with a fresh ID.
func NewUserMessage(content string, ctx Context) *UserMessage {
	return &UserMessage{
		ID:        uuid.NewString(),
		Content:   content,
		Context:   ctx,
		Timestamp: time.Now(),
	}
}

// NewAssistantResult creates a successful assistant message.
func NewAssistantResult(original, strategy, optimized string) *AssistantResult {
	return &AssistantResult{
		ID:        uuid.NewString(),
		Original:  original,
		Strategy:  strategy,
		Optimized: optimized,
		Timestamp: time.Now(),
	}
}

// NewAssistantError creates an error assistant message. An empty content
// falls back to GenericErrorText.
func NewAssistantError(content string, requiresLogin bool) *AssistantError {
	if content == "" {
		content = GenericErrorText
	}
	return &AssistantError{
		ID:            uuid.NewString(),
		Content:       content,
		Timestamp:     time.Now(),
		RequiresLogin: requiresLogin,
	}
}

// FormatTime returns the local wall-clock time used next to messages.
func FormatTime(m Message) string {
	return m.Time().Format("3:04:05 PM")
}
