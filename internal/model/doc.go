// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for optimization sessions.
//
// # Key Types
//
//   - Context: category tag sent with every optimize request
//   - Message: sealed variant of UserMessage, AssistantResult, AssistantError
//   - Conversation: ordered, append-only list of messages for one session
//   - Labels: UI strings that change with the selected context
//
// # Usage
//
//	conv := model.NewConversation()
//	conv.AddUserMessage("write a haiku about go")
//	conv.AddResult(resp.Original, resp.Strategy, resp.Optimized)
//
//	switch m := conv.Latest().(type) {
//	case *model.AssistantResult:
//	    render(m.Optimized)
//	case *model.AssistantError:
//	    renderError(m.Content)
//	}
package model
