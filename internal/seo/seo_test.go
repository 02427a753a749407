// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package seo

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Defaults(t *testing.T) {
	h := DefaultSite().Resolve(Meta{})

	assert.Equal(t, DefaultTitle, h.Title)
	get := func(kind TagKind, key string) string {
		v, ok := h.Get(kind, key)
		require.True(t, ok, key)
		return v
	}

	assert.Equal(t, DefaultDescription, get(MetaName, "description"))
	assert.Equal(t, DefaultKeywords, get(MetaName, "keywords"))
	assert.Equal(t, DefaultSiteURL, get(LinkRel, "canonical"))
	assert.Equal(t, "index, follow", get(MetaName, "robots"))
	assert.Equal(t, DefaultSiteURL+"/og-image.png", get(MetaProperty, "og:image"))
	assert.Equal(t, "website", get(MetaProperty, "og:type"))
	assert.Equal(t, "summary_large_image", get(MetaName, "twitter:card"))
	assert.Equal(t, DefaultTitle, get(MetaName, "twitter:title"))
}

func TestResolve_PageOverrides(t *testing.T) {
	site := DefaultSite()
	h := site.Resolve(NotFoundMeta(site))

	assert.Equal(t, "Page Not Found | PromptVita", h.Title)
	robots, _ := h.Get(MetaName, "robots")
	assert.Equal(t, "noindex, nofollow", robots)
	url, _ := h.Get(MetaProperty, "og:url")
	assert.Equal(t, "https://www.promptvita.com/404", url)
}

func TestResolve_EachTagOnce(t *testing.T) {
	h := DefaultSite().Resolve(HomeMeta(DefaultSite()))

	seen := map[string]bool{}
	for _, tag := range h.Tags {
		key := string(rune('0'+tag.Kind)) + tag.Key
		assert.False(t, seen[key], "duplicate tag %s", tag.Key)
		seen[key] = true
	}
	assert.Len(t, h.Tags, 13)
}

func TestHead_HTMLEscapes(t *testing.T) {
	site := DefaultSite()
	out, err := site.Resolve(HomeMeta(site)).HTML()
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "<title>AI Prompt Optimizer &amp; Grammar Checker | PromptVita</title>")
	assert.Contains(t, html, `<link rel="canonical" href="https://www.promptvita.com/">`)
	assert.Contains(t, html, `<meta property="og:type" content="website">`)
	assert.Equal(t, 1, strings.Count(html, `name="description"`))
}

func TestNewSite(t *testing.T) {
	s := NewSite(" http://localhost:8080/ ", "")
	assert.Equal(t, "http://localhost:8080", s.URL)
	assert.Equal(t, DefaultSiteName, s.Name)
	assert.Equal(t, "http://localhost:8080/pricing", s.Abs("pricing"))
	assert.Equal(t, "http://localhost:8080/", s.Abs("/"))

	custom := NewSite("", "Acme")
	assert.Equal(t, "About Acme | Acme", custom.Resolve(AboutMeta(custom)).Title)
	assert.True(t, strings.HasPrefix(custom.Resolve(Meta{}).Title, "Acme - "))
}

func TestSchemas(t *testing.T) {
	site := DefaultSite()

	home, err := json.Marshal(HomePageSchema(site))
	require.NoError(t, err)
	var homeDoc map[string]any
	require.NoError(t, json.Unmarshal(home, &homeDoc))
	assert.Equal(t, "https://schema.org", homeDoc["@context"])
	assert.Equal(t, "WebApplication", homeDoc["@type"])
	assert.Len(t, homeDoc["featureList"], 6)

	about := AboutPageSchema(site)
	assert.Equal(t, "2024", about.MainEntity.FoundingDate)
	assert.Len(t, about.MainEntity.KnowsAbout, 5)

	pricing := PricingPageSchema(site)
	require.Len(t, pricing.Offers, 3)
	assert.Equal(t, "0", pricing.Offers[0].Price)
	assert.Equal(t, 10, pricing.Offers[0].EligibleQuantity.Value)
	assert.Equal(t, "unlimited", pricing.Offers[2].EligibleQuantity.Value)
	assert.Equal(t, "P1M", pricing.Offers[1].BillingIncrement)
}

func TestJSONLD(t *testing.T) {
	out, err := JSONLD(map[string]string{"name": "</script><b>"})
	require.NoError(t, err)

	html := string(out)
	assert.True(t, strings.HasPrefix(html, `<script type="application/ld+json">`))
	assert.Equal(t, 1, strings.Count(html, "</script>"), "payload cannot close the element")
	assert.Contains(t, html, `</script>`)
}
