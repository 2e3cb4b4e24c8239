/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package clinical

// Canonical biomarker keys, as produced by NormalizeKey.
const (
	TotalBilirubin            = "total_bilirubin"
	DirectBilirubin           = "direct_bilirubin"
	AlkalinePhosphotase       = "alkaline_phosphotase"
	AlamineAminotransferase   = "alamine_aminotransferase"
	AspartateAminotransferase = "aspartate_aminotransferase"
	Albumin                   = "albumin"
)

// ReferenceRange is the clinically accepted interval for a biomarker.
type ReferenceRange struct {
	Low  float64
	High float64
	Unit string
}

// Contains reports whether v lies inside the closed interval.
func (r ReferenceRange) Contains(v float64) bool {
	return v >= r.Low && v <= r.High
}

// referenceRanges is built once at package init and never written again.
var referenceRanges = map[string]ReferenceRange{
	TotalBilirubin:            {Low: 0.1, High: 1.2, Unit: "mg/dL"},
	DirectBilirubin:           {Low: 0.1, High: 0.3, Unit: "mg/dL"},
	AlkalinePhosphotase:       {Low: 44, High: 147, Unit: "U/L"},
	AlamineAminotransferase:   {Low: 7, High: 56, Unit: "U/L"},
	AspartateAminotransferase: {Low: 10, High: 40, Unit: "U/L"},
	Albumin:                   {Low: 3.5, High: 5.5, Unit: "g/dL"},
}

// rangeOrder is the display order used by the dashboard and CLI.
var rangeOrder = []string{
	TotalBilirubin,
	DirectBilirubin,
	AlkalinePhosphotase,
	AlamineAminotransferase,
	AspartateAminotransferase,
	Albumin,
}

// Range returns the reference range for a test name. The name is normalized
// first, so "Total Bilirubin" and "total_bilirubin" resolve the same entry.
func Range(name string) (ReferenceRange, bool) {
	r, ok := referenceRanges[NormalizeKey(name)]
	return r, ok
}

// ReferenceRanges returns a copy of the reference table.
func ReferenceRanges() map[string]ReferenceRange {
	out := make(map[string]ReferenceRange, len(referenceRanges))
	for k, v := range referenceRanges {
		out[k] = v
	}

	return out
}

// RangeNames returns the canonical names of all reference ranges in display order.
func RangeNames() []string {
	out := make([]string, len(rangeOrder))
	copy(out, rangeOrder)

	return out
}

// mustRange is used by the rule table, whose keys are compile-time constants.
func mustRange(name string) ReferenceRange {
	r, ok := referenceRanges[name]
	if !ok {
		panic("clinical: no reference range for " + name)
	}

	return r
}
