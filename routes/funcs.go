/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"fmt"
	htmltemplate "html/template"
	"math"
	"strconv"
	"time"
)

// TemplateFuncs returns the helpers available to every page template.
func TemplateFuncs() htmltemplate.FuncMap {
	return htmltemplate.FuncMap{
		"pct":      formatPercent,
		"optFloat": formatOptionalFloat,
		"optInt":   formatOptionalInt,
		"optStr":   formatOptionalString,
		"fmtFloat": formatFloat,
		"fmtTime":  formatTime,
		"deref":    derefFloat,
	}
}

func formatPercent(p float64) string {
	if math.IsNaN(p) {
		return "n/a"
	}

	return fmt.Sprintf("%.1f%%", p*100)
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptionalFloat(v *float64) string {
	if v == nil {
		return "-"
	}

	return formatFloat(*v)
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return "-"
	}

	return strconv.Itoa(*v)
}

func formatOptionalString(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}

	return *v
}

func derefFloat(v *float64) float64 {
	if v == nil {
		return 0
	}

	return *v
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04 UTC")
}
