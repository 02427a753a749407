// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// MaxMessages bounds the in-memory history. Only the latest message is ever
// displayed, so older turns are pruned first.
const MaxMessages = 200

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is the ordered, memory-only list of turns for one session.
// It is owned by the UI goroutine and is not safe for concurrent use.
type Conversation struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	messages []Message
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		messages:  make([]Message, 0, 8),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddMessage appends msg.
func (c *Conversation) AddMessage(msg Message) {
	c.messages = append(c.messages, msg)
	c.UpdatedAt = time.Now()
	if len(c.messages) > MaxMessages {
		c.messages = append([]Message(nil), c.messages[len(c.messages)-MaxMessages:]...)
	}
}

// AddUserMessage creates and appends a user message.
func (c *Conversation) AddUserMessage(content string, ctx Context) *UserMessage {
	msg := NewUserMessage(content, ctx)
	c.AddMessage(msg)
	return msg
}

// AddResult creates and appends a successful assistant message.
func (c *Conversation) AddResult(original, strategy, optimized string) *AssistantResult {
	msg := NewAssistantResult(original, strategy, optimized)
	c.AddMessage(msg)
	return msg
}

// AddError creates and appends an error assistant message.
func (c *Conversation) AddError(content string, requiresLogin bool) *AssistantError {
	msg := NewAssistantError(content, requiresLogin)
	c.AddMessage(msg)
	return msg
}

// Latest returns the most recent message, or nil if empty.
func (c *Conversation) Latest() Message {
	if len(c.messages) == 0 {
		return nil
	}
	return c.messages[len(c.messages)-1]
}

// LatestResult returns the latest message when it is a successful result.
func (c *Conversation) LatestResult() (*AssistantResult, bool) {
	res, ok := c.Latest().(*AssistantResult)
	return res, ok
}

// LatestOptimized returns the optimized text of the latest message, or ""
// when the latest message is not a successful result.
func (c *Conversation) LatestOptimized() string {
	if res, ok := c.LatestResult(); ok {
		return res.Optimized
	}
	return ""
}

// Clear removes every message.
func (c *Conversation) Clear() {
	c.messages = nil
	c.UpdatedAt = time.Now()
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// IsEmpty reports whether there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.messages) == 0
}

// Messages returns a copy of the history, oldest first.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}
