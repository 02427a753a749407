// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package site

import (
	"fmt"
	"math"
)

// Billing is the pricing toggle.
type Billing string

const (
	Monthly Billing = "monthly"
	Yearly  Billing = "yearly"
)

// ParseBilling maps a query value onto a Billing. Anything unknown is
// monthly.
func ParseBilling(s string) Billing {
	if Billing(s) == Yearly {
		return Yearly
	}
	return Monthly
}

// Period is the price suffix word.
func (b Billing) Period() string {
	if b == Yearly {
		return "year"
	}
	return "month"
}

// Plan is one pricing tier.
type Plan struct {
	Name        string
	Monthly     int
	Yearly      int
	Description string
	Features    []string
	Popular     bool
	CTA         string
}

// Price returns the amount for b.
func (p Plan) Price(b Billing) int {
	if b == Yearly {
		return p.Yearly
	}
	return p.Monthly
}

// PriceText is "Free" for a zero price, otherwise "$N".
func (p Plan) PriceText(b Billing) string {
	price := p.Price(b)
	if price == 0 {
		return "Free"
	}
	return fmt.Sprintf("$%d", price)
}

// Savings is the rounded yearly discount in percent. It is zero for monthly
// billing and for free plans.
func (p Plan) Savings(b Billing) int {
	if b != Yearly || p.Monthly <= 0 {
		return 0
	}
	monthlyCost := float64(p.Monthly * 12)
	return int(math.Round((monthlyCost - float64(p.Yearly)) / monthlyCost * 100))
}

// Plans returns the three tiers in display order.
func Plans() []Plan {
	return []Plan{
		{
			Name:        "Free",
			Description: "Perfect for getting started with prompt optimization",
			Features: []string{
				"10 prompt optimizations per day",
				"Basic optimization strategies",
				"Standard response time",
				"Community support",
				"Basic grammar correction",
			},
			CTA: "Get Started Free",
		},
		{
			Name:        "Pro",
			Monthly:     5,
			Yearly:      60,
			Description: "Ideal for professionals and content creators",
			Features: []string{
				"Unlimited prompt optimizations",
				"Advanced optimization strategies",
				"Priority response time",
				"Email support",
				"Advanced grammar & style correction",
				"Save to personal library",
				"Export optimized prompts",
				"Custom context options",
			},
			Popular: true,
			CTA:     "Start Pro Trial",
		},
		{
			Name:        "Enterprise",
			Monthly:     9,
			Yearly:      99,
			Description: "Built for teams and organizations",
			Features: []string{
				"Everything in Pro",
				"Team collaboration tools",
				"Shared prompt libraries",
				"Advanced analytics",
				"Priority support",
				"Custom integrations",
				"SSO authentication",
				"Dedicated account manager",
				"Custom training sessions",
			},
			CTA: "Contact Sales",
		},
	}
}

// FAQ is a question and its answer.
type FAQ struct {
	Question string
	Answer   string
}

// PricingFAQ lists the pricing page questions.
func PricingFAQ() []FAQ {
	return []FAQ{
		{"What counts as a prompt optimization?", "Each time you submit a prompt for optimization, it counts as one optimization. This includes both text correction and prompt enhancement."},
		{"Can I change plans anytime?", "Yes, you can upgrade or downgrade your plan at any time. Changes will be reflected in your next billing cycle."},
		{"Is there a free trial for Pro?", "Yes, we offer a 7-day free trial for the Pro plan. No credit card required to start your trial."},
		{"What payment methods do you accept?", "We accept all major credit cards, PayPal, and bank transfers for Enterprise plans."},
	}
}
