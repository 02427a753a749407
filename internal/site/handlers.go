// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package site

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/promptvita/promptpro/internal/model"
	"github.com/promptvita/promptpro/internal/seo"
)

// pageData is what layout.html renders.
type pageData struct {
	Brand  string
	Active string
	Head   template.HTML
	JSONLD template.HTML
	Nav    []NavLink
	Data   any
}

type planView struct {
	Plan
	Amount      string
	Period      string
	SavePercent int
}

// render executes page into a buffer first so that a template error never
// leaves a half-written 200 response.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, meta seo.Meta, schema any, data any) {
	head, err := s.site.Resolve(meta).HTML()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var ld template.HTML
	if schema != nil {
		if ld, err = seo.JSONLD(schema); err != nil {
			s.fail(w, r, err)
			return
		}
	}

	var buf bytes.Buffer
	err = s.pages[page].ExecuteTemplate(&buf, "layout", pageData{
		Brand:  s.site.Name,
		Active: page,
		Head:   head,
		JSONLD: ld,
		Nav:    navLinks,
		Data:   data,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("render failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, pageHome, seo.HomeMeta(s.site), seo.HomePageSchema(s.site), struct {
		Headline string
		Contexts []model.ContextInfo
	}{
		Headline: model.ContextGeneral.Labels().Headline,
		Contexts: model.Contexts[1:],
	})
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, pageAbout, seo.AboutMeta(s.site), seo.AboutPageSchema(s.site), struct {
		Features []Feature
		Stats    []Stat
		Mission  string
	}{aboutFeatures, aboutStats, missionText})
}

func (s *Server) handlePricing(w http.ResponseWriter, r *http.Request) {
	billing := ParseBilling(r.URL.Query().Get("billing"))

	plans := Plans()
	views := make([]planView, 0, len(plans))
	for _, p := range plans {
		v := planView{Plan: p, Amount: p.PriceText(billing), SavePercent: p.Savings(billing)}
		if p.Price(billing) > 0 {
			v.Period = billing.Period()
		}
		views = append(views, v)
	}

	s.render(w, r, http.StatusOK, pagePricing, seo.PricingMeta(s.site), seo.PricingPageSchema(s.site), struct {
		Billing string
		Plans   []planView
		FAQ     []FAQ
	}{string(billing), views, PricingFAQ()})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, pageNotFound, seo.NotFoundMeta(s.site), nil, nil)
}

func (s *Server) handleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\nDisallow: /404\n\nSitemap: %s\n", s.site.Abs("/sitemap.xml"))
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	set := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{s.site.Abs("/"), "weekly", "1.0"},
			{s.site.Abs("/about"), "monthly", "0.8"},
			{s.site.Abs("/pricing"), "monthly", "0.8"},
		},
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(out)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"message": s.site.Name + " site is running",
	})
}
