/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/humaidq/hepaguard/clinical"
	"github.com/humaidq/hepaguard/db"
	"github.com/humaidq/hepaguard/model"
)

// PatientForm is the New Prediction form.
type PatientForm struct {
	Name                      string
	Age                       int
	Gender                    string
	TotalBilirubin            float64
	DirectBilirubin           float64
	AlkalinePhosphotase       float64
	AlamineAminotransferase   float64
	AspartateAminotransferase float64
	TotalProteins             float64
	Albumin                   float64
	AGRatio                   float64
}

// DefaultPatientForm returns the values the form opens with.
func DefaultPatientForm() PatientForm {
	return PatientForm{
		Age:                       45,
		Gender:                    "Male",
		TotalBilirubin:            0.9,
		DirectBilirubin:           0.2,
		AlkalinePhosphotase:       200,
		AlamineAminotransferase:   25,
		AspartateAminotransferase: 30,
		TotalProteins:             6.5,
		Albumin:                   3.3,
		AGRatio:                   0.9,
	}
}

// FormField describes one numeric input and its accepted range.
type FormField struct {
	Name  string
	Label string
	Min   float64
	Max   float64
	Step  string
	value func(*PatientForm) *float64
}

// BiomarkerFields lists the biomarker inputs in form order.
var BiomarkerFields = []FormField{
	{Name: "tb", Label: "Total Bilirubin", Min: 0.1, Max: 50, Step: "0.1", value: func(f *PatientForm) *float64 { return &f.TotalBilirubin }},
	{Name: "db", Label: "Direct Bilirubin", Min: 0.1, Max: 20, Step: "0.1", value: func(f *PatientForm) *float64 { return &f.DirectBilirubin }},
	{Name: "alp", Label: "Alkaline Phosphotase", Min: 10, Max: 2000, Step: "1", value: func(f *PatientForm) *float64 { return &f.AlkalinePhosphotase }},
	{Name: "alt", Label: "Alamine Aminotransferase", Min: 10, Max: 2000, Step: "1", value: func(f *PatientForm) *float64 { return &f.AlamineAminotransferase }},
	{Name: "ast", Label: "Aspartate Aminotransferase", Min: 10, Max: 2000, Step: "1", value: func(f *PatientForm) *float64 { return &f.AspartateAminotransferase }},
	{Name: "prot", Label: "Total Proteins", Min: 1, Max: 10, Step: "0.1", value: func(f *PatientForm) *float64 { return &f.TotalProteins }},
	{Name: "alb", Label: "Albumin", Min: 1, Max: 6, Step: "0.1", value: func(f *PatientForm) *float64 { return &f.Albumin }},
	{Name: "ag", Label: "A/G Ratio", Min: 0.1, Max: 3, Step: "0.01", value: func(f *PatientForm) *float64 { return &f.AGRatio }},
}

const (
	minAge = 1
	maxAge = 100
)

// FormInput pairs a field with its current value for templates.
type FormInput struct {
	FormField
	Value float64
}

// Inputs returns the biomarker fields with the form's values.
func (f PatientForm) Inputs() []FormInput {
	out := make([]FormInput, 0, len(BiomarkerFields))
	for _, field := range BiomarkerFields {
		out = append(out, FormInput{FormField: field, Value: *field.value(&f)})
	}

	return out
}

// ParsePatientForm reads the form values. Blank biomarker inputs keep their
// defaults.
func ParsePatientForm(values url.Values) (PatientForm, error) {
	f := DefaultPatientForm()
	f.Name = strings.TrimSpace(values.Get("name"))

	if raw := strings.TrimSpace(values.Get("age")); raw != "" {
		age, err := strconv.Atoi(raw)
		if err != nil {
			return f, fmt.Errorf("%w: Age", errInvalidNumber)
		}

		if age < minAge || age > maxAge {
			return f, fmt.Errorf("%w: Age must be between %d and %d", errValueOutOfRange, minAge, maxAge)
		}

		f.Age = age
	}

	if raw := strings.TrimSpace(values.Get("gender")); raw != "" {
		switch strings.ToLower(raw) {
		case "male":
			f.Gender = "Male"
		case "female":
			f.Gender = "Female"
		default:
			return f, errInvalidGender
		}
	}

	for _, field := range BiomarkerFields {
		raw := strings.TrimSpace(values.Get(field.Name))
		if raw == "" {
			continue
		}

		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return f, fmt.Errorf("%w: %s", errInvalidNumber, field.Label)
		}

		if v < field.Min || v > field.Max {
			return f, fmt.Errorf("%w: %s must be between %g and %g", errValueOutOfRange, field.Label, field.Min, field.Max)
		}

		*field.value(&f) = v
	}

	return f, nil
}

// Measurements returns the form values keyed by dataset column name.
func (f PatientForm) Measurements() clinical.Measurements {
	return clinical.Measurements{
		"age":                              f.Age,
		"gender":                           f.Gender,
		clinical.TotalBilirubin:            f.TotalBilirubin,
		clinical.DirectBilirubin:           f.DirectBilirubin,
		clinical.AlkalinePhosphotase:       f.AlkalinePhosphotase,
		clinical.AlamineAminotransferase:   f.AlamineAminotransferase,
		clinical.AspartateAminotransferase: f.AspartateAminotransferase,
		"total_protiens":                   f.TotalProteins,
		clinical.Albumin:                   f.Albumin,
		"albumin_and_globulin_ratio":       f.AGRatio,
	}
}

// CreateInput converts the form and its assessment into a database record.
// pred may be nil when the model is unavailable.
func (f PatientForm) CreateInput(pred *model.Prediction, warnings []string) db.CreatePatientInput {
	fp := func(v float64) *float64 { return &v }
	age := f.Age
	gender := f.Gender

	input := db.CreatePatientInput{
		Name:   f.Name,
		Age:    &age,
		Gender: &gender,
		Biomarkers: db.Biomarkers{
			TotalBilirubin:            fp(f.TotalBilirubin),
			DirectBilirubin:           fp(f.DirectBilirubin),
			AlkalinePhosphotase:       fp(f.AlkalinePhosphotase),
			AlamineAminotransferase:   fp(f.AlamineAminotransferase),
			AspartateAminotransferase: fp(f.AspartateAminotransferase),
			TotalProteins:             fp(f.TotalProteins),
			Albumin:                   fp(f.Albumin),
			AGRatio:                   fp(f.AGRatio),
		},
		Warnings: warnings,
	}

	if pred != nil {
		risk := pred.Risk
		input.DiseaseProb = fp(pred.Probability)
		input.RiskLabel = &risk
	}

	return input
}
