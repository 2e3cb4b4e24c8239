/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	htmltemplate "html/template"
	"net/http"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/template"

	"github.com/humaidq/hepaguard/theme"
)

// CSRFInjector automatically injects CSRF token into template data for all routes
func CSRFInjector() flamego.Handler {
	return func(x csrf.CSRF, data template.Data) {
		data["csrf_token"] = x.Token()
	}
}

// ThemeInjector exposes the dashboard theme tokens to every template.
func ThemeInjector(th theme.Theme) flamego.Handler {
	glass := htmltemplate.CSS(th.InlineGlassStyle()) //nolint:gosec // theme tokens are compiled in

	return func(data template.Data) {
		data["Theme"] = th
		data["GlassStyle"] = glass
	}
}

// NoCacheHeaders disables caching for all page responses and blocks indexing.
func NoCacheHeaders() flamego.Handler {
	return func(c flamego.Context) {
		header := c.ResponseWriter().Header()
		header.Set("X-Robots-Tag", "noindex, nofollow, noarchive, nosnippet")

		if c.Request().Method == http.MethodGet || c.Request().Method == http.MethodHead {
			header.Set("Cache-Control", "no-store, max-age=0")
			header.Set("Pragma", "no-cache")
			header.Set("Expires", "0")
		}

		c.Next()
	}
}
