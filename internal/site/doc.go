// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package site serves the PromptVita marketing pages: home, about, pricing
// and a 404 page, each with resolved SEO head tags and JSON-LD, plus
// robots.txt, sitemap.xml and a health probe.
//
// Pages are rendered from embedded html/template files. The router is chi
// with request IDs, real-IP extraction, panic recovery, security headers
// and zap request logging.
package site
