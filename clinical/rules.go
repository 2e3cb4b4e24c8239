/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package clinical flags abnormal liver biomarkers against fixed reference
// ranges. The warnings are advisory hints, not a diagnosis.
package clinical

import (
	"math"
	"strings"
)

// Measurements maps a clinical test name to its measured value. Names are
// matched case- and spacing-insensitively. Values may be numbers, numeric
// text, or anything else; non-numeric values are ignored.
type Measurements map[string]any

// Warning is a human-readable description of one abnormal finding.
type Warning string

// rule is a single check in the evaluation order.
type rule struct {
	Name    string
	Keys    []string
	Message Warning

	// test receives the coerced values of Keys, in order. ok is false when
	// the check cannot be evaluated for these values.
	test func(values []float64) (fired bool, ok bool)
}

// Finding is the outcome of one rule for one measurement set.
type Finding struct {
	Rule      string
	Evaluable bool
	Fired     bool
	Warning   Warning
}

var (
	bilirubinMax = mustRange(TotalBilirubin).High
	altMax       = mustRange(AlamineAminotransferase).High
	albuminMin   = mustRange(Albumin).Low
)

// maxASTALTRatio is the De Ritis ratio above which alcoholic liver disease
// or advanced fibrosis is suggested.
const maxASTALTRatio = 2

// rules is evaluated in order; the output order of Evaluate follows it.
var rules = []rule{
	{
		Name:    "bilirubin",
		Keys:    []string{TotalBilirubin},
		Message: "High Bilirubin (>1.2) - Jaundice indicated.",
		test: func(v []float64) (bool, bool) {
			return v[0] > bilirubinMax, true
		},
	},
	{
		Name:    "alt",
		Keys:    []string{AlamineAminotransferase},
		Message: "High ALT - Sign of liver cell damage.",
		test: func(v []float64) (bool, bool) {
			return v[0] > altMax, true
		},
	},
	{
		Name:    "albumin",
		Keys:    []string{Albumin},
		Message: "Low Albumin - Possible chronic liver disease.",
		test: func(v []float64) (bool, bool) {
			return v[0] < albuminMin, true
		},
	},
	{
		Name:    "ast_alt_ratio",
		Keys:    []string{AspartateAminotransferase, AlamineAminotransferase},
		Message: "AST/ALT ratio > 2 - suggests alcoholic liver disease or advanced fibrosis.",
		test: func(v []float64) (bool, bool) {
			ast, alt := v[0], v[1]
			if alt == 0 {
				return false, false
			}

			return ast/alt > maxASTALTRatio, true
		},
	},
}

// Rules returns the rule names in evaluation order.
func Rules() []string {
	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r.Name)
	}

	return names
}

// NormalizeKey produces the canonical lookup key for a test name: surrounding
// whitespace trimmed, lower-cased, spaces replaced with underscores.
func NormalizeKey(k string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(k)), " ", "_")
}

// normalize copies m into a table keyed by canonical name. When two keys
// collide, whichever the map iteration visits last wins.
func normalize(m Measurements) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[NormalizeKey(k)] = v
	}

	return out
}

func (r rule) evaluate(table map[string]any) Finding {
	f := Finding{Rule: r.Name}

	values := make([]float64, 0, len(r.Keys))
	for _, key := range r.Keys {
		raw, ok := table[key]
		if !ok {
			return f
		}

		v, ok := Coerce(raw)
		if !ok || math.IsNaN(v) {
			return f
		}

		values = append(values, v)
	}

	fired, ok := r.test(values)
	if !ok {
		return f
	}

	f.Evaluable = true
	if fired {
		f.Fired = true
		f.Warning = r.Message
	}

	return f
}

// EvaluateDetailed runs every rule and reports each outcome, including rules
// that could not be evaluated.
func EvaluateDetailed(m Measurements) []Finding {
	table := normalize(m)

	findings := make([]Finding, 0, len(rules))
	for _, r := range rules {
		findings = append(findings, r.evaluate(table))
	}

	return findings
}

// Evaluate returns the warnings for out-of-range findings in m, in fixed rule
// order. Missing or non-numeric values skip the affected rule silently, so
// Evaluate never fails. The input is not modified.
func Evaluate(m Measurements) []Warning {
	warnings := []Warning{}

	for _, f := range EvaluateDetailed(m) {
		if f.Fired {
			warnings = append(warnings, f.Warning)
		}
	}

	return warnings
}

// Strings converts warnings to plain strings for storage and display.
func Strings(ws []Warning) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = string(w)
	}

	return out
}
