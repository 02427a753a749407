// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package seo

// HomeMeta is the landing page metadata.
func HomeMeta(s Site) Meta {
	return Meta{
		Title:       "AI Prompt Optimizer & Grammar Checker",
		Description: "Transform messy prompts into powerful AI instructions. Free AI-powered prompt optimization, grammar correction, and professional text enhancement. Multiple contexts available.",
		Keywords:    "prompt optimizer, AI prompts, ChatGPT prompts, prompt engineering, grammar checker, text correction, AI writing assistant, prompt enhancer",
		Canonical:   s.Abs("/"),
	}
}

// AboutMeta is the about page metadata.
func AboutMeta(s Site) Meta {
	return Meta{
		Title:       "About " + s.Name,
		Description: "Learn about " + s.Name + "'s mission to democratize prompt engineering and help users create better AI prompts",
		Canonical:   s.Abs("/about"),
	}
}

// PricingMeta is the pricing page metadata.
func PricingMeta(s Site) Meta {
	return Meta{
		Title:       "Pricing Plans - Affordable AI Prompt Optimization",
		Description: "Choose the perfect " + s.Name + " plan for your needs. Free plan available! Pro at $5/month, Enterprise at $9/month. AI-powered prompt optimization for everyone.",
		Keywords:    "promptvita pricing, prompt optimization pricing, AI writing tool cost, prompt engineering plans, affordable AI tools, prompt optimizer subscription",
		Canonical:   s.Abs("/pricing"),
	}
}

// NotFoundMeta is the 404 page metadata. It is never indexed.
func NotFoundMeta(s Site) Meta {
	return Meta{
		Title:       "Page Not Found",
		Description: "The page you are looking for was not found.",
		Canonical:   s.Abs("/404"),
		NoIndex:     true,
	}
}
