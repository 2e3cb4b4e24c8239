/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	"fmt"
	htmltemplate "html/template"
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/hepaguard/charts"
	"github.com/humaidq/hepaguard/clinical"
	"github.com/humaidq/hepaguard/model"
)

// Genders offered by the form.
var Genders = []string{"Male", "Female"}

// PredictForm renders the New Prediction form
func PredictForm(t template.Template, data template.Data, e *Engine) {
	data["IsPredict"] = true
	data["Form"] = DefaultPatientForm()
	data["Genders"] = Genders

	if !e.Ready() {
		data["ModelError"] = e.ErrorMessage()
	}

	t.HTML(http.StatusOK, "predict")
}

// assess runs the rule evaluator and, when the model is ready, the
// classifier. Warnings are returned even if the model is unavailable.
func assess(e *Engine, form PatientForm) (*model.Prediction, []string, error) {
	m := form.Measurements()
	warnings := clinical.Strings(clinical.Evaluate(m))

	if !e.Ready() {
		return nil, warnings, errModelUnavailable
	}

	pred, err := e.Pipeline.PredictMeasurements(m)
	if err != nil {
		return nil, warnings, fmt.Errorf("failed to predict: %w", err)
	}

	return &pred, warnings, nil
}

// Predict analyses the submitted biomarkers and renders the result
func Predict(c flamego.Context, s session.Session, t template.Template, data template.Data, e *Engine) {
	if err := c.Request().ParseForm(); err != nil {
		logger.Warn("Failed to parse prediction form", "error", err)
		SetErrorFlash(s, "Failed to parse form")
		c.Redirect("/", http.StatusSeeOther)

		return
	}

	form, err := ParsePatientForm(c.Request().Form)
	if err != nil {
		SetErrorFlash(s, "Invalid input: "+err.Error())
		c.Redirect("/", http.StatusSeeOther)

		return
	}

	pred, warnings, err := assess(e, form)
	if err != nil {
		if errors.Is(err, errModelUnavailable) {
			SetErrorFlash(s, e.ErrorMessage())
		} else {
			logger.Error("Prediction failed", "error", err)
			SetErrorFlash(s, "Failed to analyse patient")
		}

		c.Redirect("/", http.StatusSeeOther)

		return
	}

	gauge, err := charts.RiskGauge(pred.Probability)
	if err != nil {
		logger.Error("Failed to render risk gauge", "error", err)
	} else {
		data["Gauge"] = htmltemplate.HTML(gauge) //nolint:gosec // rendered by go-echarts from numeric input
	}

	data["IsPredict"] = true
	data["Form"] = form
	data["Prediction"] = pred
	data["HighRisk"] = pred.Risk == model.RiskHigh
	data["Warnings"] = warnings

	logger.Info("Prediction made", "probability", fmt.Sprintf("%.3f", pred.Probability), "risk", pred.Risk, "warnings", len(warnings))

	t.HTML(http.StatusOK, "result")
}
