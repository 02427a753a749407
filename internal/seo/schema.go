// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package seo

import (
	"encoding/json"
	"fmt"
	"html/template"
)

const schemaContext = "https://schema.org"

// =============================================================================
// SCHEMA.ORG TYPES
// =============================================================================

// Offer is a schema.org Offer.
type Offer struct {
	Type             string             `json:"@type"`
	Name             string             `json:"name,omitempty"`
	Description      string             `json:"description,omitempty"`
	Price            string             `json:"price"`
	PriceCurrency    string             `json:"priceCurrency"`
	BillingIncrement string             `json:"billingIncrement,omitempty"`
	EligibleQuantity *QuantitativeValue `json:"eligibleQuantity,omitempty"`
}

// QuantitativeValue holds either a number or the string "unlimited".
type QuantitativeValue struct {
	Type     string `json:"@type"`
	Value    any    `json:"value"`
	UnitText string `json:"unitText"`
}

// Organization is a schema.org Organization.
type Organization struct {
	Type         string   `json:"@type"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	URL          string   `json:"url"`
	Logo         string   `json:"logo,omitempty"`
	FoundingDate string   `json:"foundingDate,omitempty"`
	SameAs       []string `json:"sameAs,omitempty"`
	KnowsAbout   []string `json:"knowsAbout,omitempty"`
}

// Brand is a schema.org Brand.
type Brand struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// WebApplication describes the optimizer itself.
type WebApplication struct {
	Context             string       `json:"@context"`
	Type                string       `json:"@type"`
	Name                string       `json:"name"`
	Description         string       `json:"description"`
	URL                 string       `json:"url"`
	ApplicationCategory string       `json:"applicationCategory"`
	OperatingSystem     string       `json:"operatingSystem"`
	BrowserRequirements string       `json:"browserRequirements"`
	Offers              Offer        `json:"offers"`
	Creator             Organization `json:"creator"`
	FeatureList         []string     `json:"featureList"`
	Screenshot          string       `json:"screenshot"`
}

// AboutPage describes the about page.
type AboutPage struct {
	Context     string       `json:"@context"`
	Type        string       `json:"@type"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	URL         string       `json:"url"`
	MainEntity  Organization `json:"mainEntity"`
}

// Product describes the paid plans.
type Product struct {
	Context     string  `json:"@context"`
	Type        string  `json:"@type"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	Brand       Brand   `json:"brand"`
	Offers      []Offer `json:"offers"`
}

// =============================================================================
// PAGE SCHEMAS
// =============================================================================

// HomePageSchema is the landing page JSON-LD.
func HomePageSchema(s Site) WebApplication {
	return WebApplication{
		Context:             schemaContext,
		Type:                "WebApplication",
		Name:                s.Name,
		Description:         "AI-powered prompt optimization tool that transforms messy prompts into powerful AI instructions",
		URL:                 s.URL,
		ApplicationCategory: "ProductivityApplication",
		OperatingSystem:     "Any",
		BrowserRequirements: "Requires JavaScript",
		Offers: Offer{
			Type:          "Offer",
			Price:         "0",
			PriceCurrency: "USD",
			Description:   "Free plan available",
		},
		Creator: Organization{
			Type: "Organization",
			Name: s.Name,
			URL:  s.URL,
			Logo: s.URL + "/logo.png",
		},
		FeatureList: []string{
			"AI-powered prompt optimization",
			"Grammar and text correction",
			"Multiple context options",
			"Professional text enhancement",
			"Real-time optimization",
			"Copy and save functionality",
		},
		Screenshot: s.URL + "/screenshot.png",
	}
}

// AboutPageSchema is the about page JSON-LD.
func AboutPageSchema(s Site) AboutPage {
	return AboutPage{
		Context:     schemaContext,
		Type:        "AboutPage",
		Name:        "About " + s.Name,
		Description: "Learn about " + s.Name + "'s mission to democratize prompt engineering and help users create better AI prompts",
		URL:         s.URL + "/about",
		MainEntity: Organization{
			Type:         "Organization",
			Name:         s.Name,
			Description:  "AI-powered prompt optimization platform",
			URL:          s.URL,
			FoundingDate: "2024",
			SameAs: []string{
				"https://twitter.com/promptvita",
				"https://linkedin.com/company/promptvita",
			},
			KnowsAbout: []string{
				"Prompt Engineering",
				"AI Optimization",
				"Natural Language Processing",
				"Text Enhancement",
				"Grammar Correction",
			},
		},
	}
}

// PricingPageSchema is the pricing page JSON-LD with one offer per plan.
func PricingPageSchema(s Site) Product {
	offer := func(name, desc, price string, value any, unit string) Offer {
		return Offer{
			Type:             "Offer",
			Name:             name,
			Description:      desc,
			Price:            price,
			PriceCurrency:    "USD",
			BillingIncrement: "P1M",
			EligibleQuantity: &QuantitativeValue{Type: "QuantitativeValue", Value: value, UnitText: unit},
		}
	}

	return Product{
		Context:     schemaContext,
		Type:        "Product",
		Name:        s.Name,
		Description: "AI-powered prompt optimization tool with flexible pricing plans",
		URL:         s.URL + "/pricing",
		Brand:       Brand{Type: "Brand", Name: s.Name},
		Offers: []Offer{
			offer("Free Plan", "Perfect for getting started with prompt optimization", "0", 10, "optimizations per day"),
			offer("Pro Plan", "Ideal for professionals and content creators", "5", "unlimited", "optimizations"),
			offer("Enterprise Plan", "Built for teams and organizations", "9", "unlimited", "optimizations"),
		},
	}
}

// JSONLD renders v as a single ld+json script element. encoding/json
// escapes '<' and '>' so the payload cannot close the script early.
func JSONLD(v any) (template.HTML, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal structured data: %w", err)
	}
	return template.HTML(`<script type="application/ld+json">` + string(data) + `</script>`), nil
}
