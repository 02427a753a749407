// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package site

// NavLink is a navigation bar entry.
type NavLink struct {
	Label string
	Href  string
	Key   string
}

// navLinks is the top navigation. Library has no page yet and renders as
// plain text.
var navLinks = []NavLink{
	{"Home", "/", "home"},
	{"About", "/about", "about"},
	{"Library", "", "library"},
	{"Pricing", "/pricing", "pricing"},
}

// Feature is an about page card.
type Feature struct {
	Icon  string
	Title string
	Body  string
}

var aboutFeatures = []Feature{
	{"🎯", "Smart Optimization", "Our advanced AI analyzes your prompts and applies proven optimization strategies to improve clarity, specificity, and effectiveness."},
	{"🚀", "Multiple Contexts", "Optimize prompts for various use cases including business, technical, academic, marketing, and creative applications."},
	{"✨", "Instant Results", "Get optimized prompts in seconds with detailed explanations of the applied strategies and improvements made."},
	{"📝", "Grammar Correction", "Beyond prompt optimization, we also offer text correction and grammar improvement for professional communication."},
	{"💾", "Save & Organize", "Build your personal library of optimized prompts for easy access and reuse across different projects."},
	{"🔄", "Iterative Improvement", "Continuously refine your prompts with our re-optimization feature to achieve the best possible results."},
}

// Stat is an about page figure.
type Stat struct {
	Number string
	Label  string
}

var aboutStats = []Stat{
	{"100+", "Prompts Optimized"},
	{"95%", "Improvement Rate"},
	{"10+", "Happy Users"},
	{"24/7", "Available"},
}

const missionText = "At PromptPro, we believe that effective communication with AI starts with well-crafted prompts. " +
	"Our mission is to democratize prompt engineering by making it accessible to everyone, regardless " +
	"of their technical background. We're committed to helping users unlock the full potential of AI " +
	"through better prompts."
