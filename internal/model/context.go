// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// =============================================================================
// CONTEXT TYPE
// =============================================================================

// Context is the category tag that biases the optimizer.
type Context string

const (
	ContextGeneral         Context = "general"
	ContextBusiness        Context = "business"
	ContextRephrase        Context = "rephrase"
	ContextTechnical       Context = "technical"
	ContextAcademic        Context = "academic"
	ContextMarketing       Context = "marketing"
	ContextImageGeneration Context = "image_generation"
	ContextVideoGeneration Context = "video_generation"
)

// ContextInfo describes a selectable context.
type ContextInfo struct {
	ID          Context `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
}

// Contexts lists every context in selector order.
var Contexts = []ContextInfo{
	{ContextGeneral, "Select context", "General-purpose prompt optimization"},
	{ContextBusiness, "Business", "Plans, proposals and professional communication"},
	{ContextRephrase, "Rephrase & Grammar", "Spelling, grammar and tone correction"},
	{ContextTechnical, "Technical", "Engineering, code and system design prompts"},
	{ContextAcademic, "Academic", "Research questions and scholarly writing"},
	{ContextMarketing, "Marketing", "Copy, campaigns and audience targeting"},
	{ContextImageGeneration, "Image Generation", "Prompts for text-to-image models"},
	{ContextVideoGeneration, "Video Generation", "Prompts for text-to-video models"},
}

// ParseContext returns the context named s. Unknown values become general,
// which is also what the optimizer does server-side.
func ParseContext(s string) Context {
	c := Context(strings.ToLower(strings.TrimSpace(s)))
	if IsKnownContext(string(c)) {
		return c
	}
	return ContextGeneral
}

// IsKnownContext reports whether s names one of Contexts.
func IsKnownContext(s string) bool {
	for _, info := range Contexts {
		if string(info.ID) == s {
			return true
		}
	}
	return false
}

// String returns the wire value.
func (c Context) String() string {
	return string(c)
}

// DisplayName returns the selector label.
func (c Context) DisplayName() string {
	for _, info := range Contexts {
		if info.ID == c {
			return info.Name
		}
	}
	return HumanizeContext(string(c))
}

// Next returns the context after c in selector order, wrapping around.
func (c Context) Next() Context {
	for i, info := range Contexts {
		if info.ID == c {
			return Contexts[(i+1)%len(Contexts)].ID
		}
	}
	return ContextGeneral
}

// Prev returns the context before c in selector order, wrapping around.
func (c Context) Prev() Context {
	for i, info := range Contexts {
		if info.ID == c {
			return Contexts[(i+len(Contexts)-1)%len(Contexts)].ID
		}
	}
	return ContextGeneral
}

var titleCaser = cases.Title(language.English)

// HumanizeContext turns a server-side identifier such as
// "cursor_code_optimizer" into "Cursor Code Optimizer".
func HumanizeContext(id string) string {
	return titleCaser.String(strings.ReplaceAll(id, "_", " "))
}

// =============================================================================
// CONTEXT-DEPENDENT LABELS
// =============================================================================

// Labels holds every UI string that differs between prompt optimization and
// text correction.
type Labels struct {
	Headline      string
	Placeholder   string
	Submit        string
	Submitting    string
	OutputTitle   string
	OriginalTitle string
	StrategyTitle string
	CopyButton    string
	CopyHint      string
	EmptyTitle    string
	EmptyBody     string
}

var (
	promptLabels = Labels{
		Headline:      "Turn messy prompts into powerful AI instructions.",
		Placeholder:   "e.g., Write a business plan for an AI startup in fintech.",
		Submit:        "Optimize Prompt",
		Submitting:    "Optimizing...",
		OutputTitle:   "Optimized Prompt",
		OriginalTitle: "Original Prompt",
		StrategyTitle: "Strategy Applied",
		CopyButton:    "Copy Optimized",
		CopyHint:      "Copy optimized prompt",
		EmptyTitle:    "No prompt optimized yet",
		EmptyBody:     "Enter a prompt on the left to see the optimization here.",
	}

	correctionLabels = Labels{
		Headline:      "Turn messy text into polished, professional writing.",
		Placeholder:   "e.g., i recieve ur messege and will definately respond",
		Submit:        "Correct Text",
		Submitting:    "Correcting...",
		OutputTitle:   "Corrected Text",
		OriginalTitle: "Original Text",
		StrategyTitle: "Correction Strategy",
		CopyButton:    "Copy Corrected Text",
		CopyHint:      "Copy corrected text",
		EmptyTitle:    "No text corrected yet",
		EmptyBody:     "Enter text on the left to see the corrections here.",
	}
)

// Labels returns the UI strings for c. Only rephrase switches to the
// correction wording.
func (c Context) Labels() Labels {
	if c == ContextRephrase {
		return correctionLabels
	}
	return promptLabels
}

// ButtonLabel returns the submit button text for the loading state.
func (l Labels) ButtonLabel(loading bool) string {
	if loading {
		return l.Submitting
	}
	return l.Submit
}
