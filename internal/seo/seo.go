// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package seo resolves per-page metadata against site defaults and renders
// the resulting head tags and JSON-LD blocks.
package seo

import (
	"html/template"
	"strings"
)

// Site defaults.
const (
	DefaultSiteURL     = "https://www.promptvita.com"
	DefaultSiteName    = "PromptVita"
	DefaultTitle       = "PromptVita - Transform Messy Prompts into Powerful AI Instructions"
	DefaultDescription = "Turn your messy prompts into powerful AI instructions with PromptVita. AI-powered prompt optimization, grammar correction, and professional text enhancement. Try free!"
	DefaultKeywords    = "prompt optimization, AI prompts, prompt engineering, text correction, grammar checker, AI writing, prompt enhancer, ChatGPT prompts"
	DefaultOGType      = "website"
	DefaultTwitterCard = "summary_large_image"

	robotsIndex   = "index, follow"
	robotsNoIndex = "noindex, nofollow"
)

// Site carries the values every page falls back to.
type Site struct {
	URL  string
	Name string
}

// DefaultSite is the production site.
func DefaultSite() Site {
	return Site{URL: DefaultSiteURL, Name: DefaultSiteName}
}

// NewSite normalizes url and name, substituting defaults for empty values.
func NewSite(url, name string) Site {
	s := Site{URL: strings.TrimRight(strings.TrimSpace(url), "/"), Name: strings.TrimSpace(name)}
	if s.URL == "" {
		s.URL = DefaultSiteURL
	}
	if s.Name == "" {
		s.Name = DefaultSiteName
	}
	return s
}

// Abs joins path onto the site URL.
func (s Site) Abs(path string) string {
	if path == "" || path == "/" {
		return s.URL + "/"
	}
	return s.URL + "/" + strings.TrimLeft(path, "/")
}

// Meta is what a page declares about itself. Empty fields take the site
// defaults.
type Meta struct {
	Title       string
	Description string
	Keywords    string
	Canonical   string
	OGImage     string
	OGType      string
	TwitterCard string
	NoIndex     bool
}

// =============================================================================
// HEAD TAGS
// =============================================================================

// TagKind distinguishes the three element shapes a head can hold.
type TagKind int

const (
	// MetaName is <meta name="..." content="...">.
	MetaName TagKind = iota
	// MetaProperty is <meta property="..." content="...">.
	MetaProperty
	// LinkRel is <link rel="..." href="...">.
	LinkRel
)

// Tag is one head element.
type Tag struct {
	Kind  TagKind
	Key   string
	Value string
}

// Head is the resolved document head. Each (kind, key) appears once.
type Head struct {
	Title string
	Tags  []Tag
}

// Resolve applies the site defaults to m.
func (s Site) Resolve(m Meta) Head {
	title := s.defaultTitle()
	if m.Title != "" {
		title = m.Title + " | " + s.Name
	}
	description := firstNonEmpty(m.Description, DefaultDescription)
	keywords := firstNonEmpty(m.Keywords, DefaultKeywords)
	canonical := firstNonEmpty(m.Canonical, s.URL)
	image := firstNonEmpty(m.OGImage, s.URL+"/og-image.png")
	ogType := firstNonEmpty(m.OGType, DefaultOGType)
	card := firstNonEmpty(m.TwitterCard, DefaultTwitterCard)

	robots := robotsIndex
	if m.NoIndex {
		robots = robotsNoIndex
	}

	h := Head{Title: title}
	h.set(MetaName, "description", description)
	h.set(MetaName, "keywords", keywords)
	h.set(LinkRel, "canonical", canonical)
	h.set(MetaName, "robots", robots)

	h.set(MetaProperty, "og:title", title)
	h.set(MetaProperty, "og:description", description)
	h.set(MetaProperty, "og:url", canonical)
	h.set(MetaProperty, "og:image", image)
	h.set(MetaProperty, "og:type", ogType)

	h.set(MetaName, "twitter:title", title)
	h.set(MetaName, "twitter:description", description)
	h.set(MetaName, "twitter:image", image)
	h.set(MetaName, "twitter:card", card)
	return h
}

func (s Site) defaultTitle() string {
	if s.Name == DefaultSiteName {
		return DefaultTitle
	}
	return s.Name + " - Transform Messy Prompts into Powerful AI Instructions"
}

// set replaces an existing tag with the same kind and key, or appends.
func (h *Head) set(kind TagKind, key, value string) {
	for i := range h.Tags {
		if h.Tags[i].Kind == kind && h.Tags[i].Key == key {
			h.Tags[i].Value = value
			return
		}
	}
	h.Tags = append(h.Tags, Tag{Kind: kind, Key: key, Value: value})
}

// Get returns the value of a tag.
func (h Head) Get(kind TagKind, key string) (string, bool) {
	for _, t := range h.Tags {
		if t.Kind == kind && t.Key == key {
			return t.Value, true
		}
	}
	return "", false
}

var headTemplate = template.Must(template.New("head").Parse(
	`<title>{{.Title}}</title>` +
		`{{range .Tags}}` +
		"\n" +
		`{{if eq .Kind 0}}<meta name="{{.Key}}" content="{{.Value}}">` +
		`{{else if eq .Kind 1}}<meta property="{{.Key}}" content="{{.Value}}">` +
		`{{else}}<link rel="{{.Key}}" href="{{.Value}}">{{end}}` +
		`{{end}}`))

// HTML renders the title and tags, escaped.
func (h Head) HTML() (template.HTML, error) {
	var b strings.Builder
	if err := headTemplate.Execute(&b, h); err != nil {
		return "", err
	}
	return template.HTML(b.String()), nil
}

func firstNonEmpty(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
