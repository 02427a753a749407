// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package site

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptvita/promptpro/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(config.Default().Site, nil)
	require.NoError(t, err)
	return s
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

// =============================================================================
// PRICING MODEL
// =============================================================================

func TestPlan_Savings(t *testing.T) {
	plans := Plans()
	require.Len(t, plans, 3)

	free, pro, enterprise := plans[0], plans[1], plans[2]
	assert.Equal(t, 0, free.Savings(Yearly))
	assert.Equal(t, 0, pro.Savings(Yearly))
	assert.Equal(t, 8, enterprise.Savings(Yearly))
	assert.Equal(t, 0, enterprise.Savings(Monthly))
}

func TestPlan_PriceText(t *testing.T) {
	plans := Plans()
	assert.Equal(t, "Free", plans[0].PriceText(Yearly))
	assert.Equal(t, "$5", plans[1].PriceText(Monthly))
	assert.Equal(t, "$60", plans[1].PriceText(Yearly))
	assert.Equal(t, "$99", plans[2].PriceText(Yearly))
	assert.True(t, plans[1].Popular)
}

func TestParseBilling(t *testing.T) {
	assert.Equal(t, Yearly, ParseBilling("yearly"))
	assert.Equal(t, Monthly, ParseBilling("monthly"))
	assert.Equal(t, Monthly, ParseBilling("weekly"))
	assert.Equal(t, Monthly, ParseBilling(""))
	assert.Equal(t, "year", Yearly.Period())
}

// =============================================================================
// PAGES
// =============================================================================

func TestHome(t *testing.T) {
	rec := get(t, newTestServer(t), "/")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "<title>AI Prompt Optimizer &amp; Grammar Checker | PromptVita</title>")
	assert.Contains(t, body, `<meta name="robots" content="index, follow">`)
	assert.Contains(t, body, `<script type="application/ld+json">`)
	assert.Contains(t, body, `"@type":"WebApplication"`)
	assert.Contains(t, body, "Rephrase &amp; Grammar")
	assert.Contains(t, body, "Turn messy prompts into powerful AI instructions.")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestAbout(t *testing.T) {
	rec := get(t, newTestServer(t), "/about")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "About PromptPro")
	assert.Contains(t, body, "Our Mission")
	assert.Contains(t, body, "Iterative Improvement")
	assert.Contains(t, body, "24/7")
	assert.Contains(t, body, `"@type":"AboutPage"`)
	assert.Contains(t, body, `href="/about" class="active"`)
}

func TestPricing_Monthly(t *testing.T) {
	rec := get(t, newTestServer(t), "/pricing?billing=bogus")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Simple, Transparent Pricing")
	assert.Contains(t, body, `<span class="price">$5</span><span class="price-period">/month</span>`)
	assert.Contains(t, body, `<span class="price">Free</span>`)
	assert.NotContains(t, body, `class="savings"`)
	assert.Contains(t, body, "Most Popular")
	assert.Equal(t, 4, strings.Count(body, "<details"))
	assert.Contains(t, body, `"@type":"Product"`)
}

func TestPricing_Yearly(t *testing.T) {
	rec := get(t, newTestServer(t), "/pricing?billing=yearly")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `<span class="price">$99</span><span class="price-period">/year</span>`)
	assert.Contains(t, body, `<div class="savings">Save 8%</div>`)
	assert.Equal(t, 1, strings.Count(body, `class="savings"`), "Pro saves 0% and shows nothing")
	assert.Contains(t, body, `href="/pricing?billing=yearly" class="active"`)
}

func TestNotFound(t *testing.T) {
	rec := get(t, newTestServer(t), "/does-not-exist")
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "404 - Page Not Found")
	assert.Contains(t, body, `<meta name="robots" content="noindex, nofollow">`)
	assert.Contains(t, body, "Go back home")
	assert.NotContains(t, body, "application/ld+json")
}

func TestRobotsAndSitemap(t *testing.T) {
	s := newTestServer(t)

	robots := get(t, s, "/robots.txt")
	assert.Equal(t, http.StatusOK, robots.Code)
	assert.Contains(t, robots.Body.String(), "Sitemap: https://www.promptvita.com/sitemap.xml")

	sitemap := get(t, s, "/sitemap.xml")
	assert.Equal(t, http.StatusOK, sitemap.Code)
	assert.Contains(t, sitemap.Header().Get("Content-Type"), "application/xml")
	assert.Contains(t, sitemap.Body.String(), "<loc>https://www.promptvita.com/pricing</loc>")
}

func TestHealthz(t *testing.T) {
	rec := get(t, newTestServer(t), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestStatic(t *testing.T) {
	rec := get(t, newTestServer(t), "/static/style.css")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".pricing-card")
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "abc")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCustomSiteURL(t *testing.T) {
	cfg := config.Default().Site
	cfg.URL = "http://localhost:8080"
	s, err := New(cfg, nil)
	require.NoError(t, err)

	body := get(t, s, "/about").Body.String()
	assert.Contains(t, body, `<link rel="canonical" href="http://localhost:8080/about">`)
}

// =============================================================================
// LIFECYCLE
// =============================================================================

func TestServe_GracefulShutdown(t *testing.T) {
	s := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/healthz"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
