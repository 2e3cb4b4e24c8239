// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/humaidq/hepaguard/clinical"
	"github.com/humaidq/hepaguard/dataset"
	"github.com/humaidq/hepaguard/model"
)

func TestParsePatientForm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		values  url.Values
		want    func(PatientForm) PatientForm
		wantErr error
	}{
		{
			name:   "empty keeps defaults",
			values: url.Values{},
			want:   func(f PatientForm) PatientForm { return f },
		},
		{
			name: "overrides",
			values: url.Values{
				"name":   {"  Jane  "},
				"age":    {"62"},
				"gender": {"female"},
				"tb":     {"3.4"},
				"alt":    {"150"},
				"ag":     {""},
			},
			want: func(f PatientForm) PatientForm {
				f.Name = "Jane"
				f.Age = 62
				f.Gender = "Female"
				f.TotalBilirubin = 3.4
				f.AlamineAminotransferase = 150

				return f
			},
		},
		{name: "age not a number", values: url.Values{"age": {"old"}}, wantErr: errInvalidNumber},
		{name: "age too high", values: url.Values{"age": {"101"}}, wantErr: errValueOutOfRange},
		{name: "age too low", values: url.Values{"age": {"0"}}, wantErr: errValueOutOfRange},
		{name: "unknown gender", values: url.Values{"gender": {"other"}}, wantErr: errInvalidGender},
		{name: "bilirubin not a number", values: url.Values{"tb": {"abc"}}, wantErr: errInvalidNumber},
		{name: "bilirubin too high", values: url.Values{"tb": {"50.1"}}, wantErr: errValueOutOfRange},
		{name: "albumin too low", values: url.Values{"alb": {"0.5"}}, wantErr: errValueOutOfRange},
		{name: "bilirubin nan", values: url.Values{"tb": {"NaN"}}, wantErr: errInvalidNumber},
		{name: "albumin lower-case nan", values: url.Values{"alb": {"nan"}}, wantErr: errInvalidNumber},
		{name: "alt infinite", values: url.Values{"alt": {"+Inf"}}, wantErr: errInvalidNumber},
		{name: "bounds inclusive", values: url.Values{"alp": {"2000"}, "ag": {"0.1"}}, want: func(f PatientForm) PatientForm {
			f.AlkalinePhosphotase = 2000
			f.AGRatio = 0.1

			return f
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParsePatientForm(tt.values)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := tt.want(DefaultPatientForm())
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("form mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPatientFormInputsFollowFieldOrder(t *testing.T) {
	t.Parallel()

	inputs := DefaultPatientForm().Inputs()

	var names []string
	for _, in := range inputs {
		names = append(names, in.Name)
	}

	want := []string{"tb", "db", "alp", "alt", "ast", "prot", "alb", "ag"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("input order mismatch (-want +got):\n%s", diff)
	}

	if inputs[2].Value != 200 {
		t.Fatalf("expected default alkaline phosphotase 200, got %v", inputs[2].Value)
	}
}

func TestPatientFormMeasurementsDriveRules(t *testing.T) {
	t.Parallel()

	f := DefaultPatientForm()
	f.TotalBilirubin = 2.0
	f.AlamineAminotransferase = 60
	f.AspartateAminotransferase = 130
	f.Albumin = 3.0

	got := clinical.Strings(clinical.Evaluate(f.Measurements()))
	want := []string{
		"High Bilirubin (>1.2) - Jaundice indicated.",
		"High ALT - Sign of liver cell damage.",
		"Low Albumin - Possible chronic liver disease.",
		"AST/ALT ratio > 2 - suggests alcoholic liver disease or advanced fibrosis.",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("warnings mismatch (-want +got):\n%s", diff)
	}

	defaults := clinical.Strings(clinical.Evaluate(DefaultPatientForm().Measurements()))
	if diff := cmp.Diff([]string{"Low Albumin - Possible chronic liver disease."}, defaults); diff != "" {
		t.Fatalf("default warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestPatientFormCreateInput(t *testing.T) {
	t.Parallel()

	f := DefaultPatientForm()
	f.Name = "Jane"

	withoutPred := f.CreateInput(nil, nil)
	if withoutPred.DiseaseProb != nil || withoutPred.RiskLabel != nil {
		t.Fatalf("expected no prediction fields, got %#v", withoutPred)
	}

	if withoutPred.Age == nil || *withoutPred.Age != 45 || *withoutPred.Gender != "Male" {
		t.Fatalf("unexpected demographics: %#v", withoutPred)
	}

	pred := &model.Prediction{Probability: 0.72, Class: dataset.LabelLiverDisease, Risk: model.RiskHigh}
	warnings := []string{"High ALT - Sign of liver cell damage."}

	input := f.CreateInput(pred, warnings)
	if input.DiseaseProb == nil || *input.DiseaseProb != 0.72 {
		t.Fatalf("unexpected disease probability: %v", input.DiseaseProb)
	}

	if input.RiskLabel == nil || *input.RiskLabel != model.RiskHigh {
		t.Fatalf("unexpected risk label: %v", input.RiskLabel)
	}

	if input.TotalProteins == nil || *input.TotalProteins != 6.5 || *input.AGRatio != 0.9 {
		t.Fatalf("unexpected biomarkers: %#v", input.Biomarkers)
	}

	if diff := cmp.Diff(warnings, input.Warnings); diff != "" {
		t.Fatalf("warnings mismatch (-want +got):\n%s", diff)
	}
}
