/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	htmltemplate "html/template"
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/hepaguard/charts"
	"github.com/humaidq/hepaguard/clinical"
	"github.com/humaidq/hepaguard/db"
	"github.com/humaidq/hepaguard/model"
)

const patientListLimit = 200

// SavePatient stores the submitted patient with its assessment
func SavePatient(c flamego.Context, s session.Session, e *Engine) {
	ctx := c.Request().Context()

	if err := c.Request().ParseForm(); err != nil {
		logger.Warn("Failed to parse patient form", "error", err)
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

	if form.Name == "" {
		SetErrorFlash(s, "Patient name is required to save a record")
		c.Redirect("/", http.StatusSeeOther)

		return
	}

	pred, warnings, err := assess(e, form)
	if err != nil && !errors.Is(err, errModelUnavailable) {
		logger.Error("Prediction failed while saving", "error", err)
		SetErrorFlash(s, "Failed to analyse patient")
		c.Redirect("/", http.StatusSeeOther)

		return
	}

	id, err := db.CreatePatient(ctx, form.CreateInput(pred, warnings))
	if err != nil {
		logger.Error("Failed to save patient", "error", err)
		SetErrorFlash(s, "Failed to save patient record")
		c.Redirect("/", http.StatusSeeOther)

		return
	}

	if pred == nil {
		SetWarningFlash(s, "Patient record saved without a risk score")
	} else {
		SetSuccessFlash(s, "Patient record saved")
	}

	c.Redirect("/patients/"+id, http.StatusSeeOther)
}

// ListPatients displays saved patient records
func ListPatients(c flamego.Context, t template.Template, data template.Data) {
	ctx := c.Request().Context()
	data["IsPatients"] = true

	patients, err := db.ListPatients(ctx, patientListLimit)
	if err != nil {
		logger.Error("Failed to list patients", "error", err)
		data["Error"] = "Failed to load patient records"
	} else {
		data["Patients"] = patients
	}

	counts, err := db.CountPatientsByRisk(ctx)
	if err != nil {
		logger.Error("Failed to count patients", "error", err)
	} else {
		data["HighRiskCount"] = counts[model.RiskHigh]
		data["LowRiskCount"] = counts[model.RiskLow]
	}

	t.HTML(http.StatusOK, "patients")
}

// ViewPatient displays a saved patient with freshly evaluated warnings
func ViewPatient(c flamego.Context, s session.Session, t template.Template, data template.Data) {
	ctx := c.Request().Context()
	id := c.Param("id")

	p, err := db.GetPatient(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrPatientNotFound) {
			SetErrorFlash(s, "Patient not found")
		} else {
			logger.Error("Failed to load patient", "id", id, "error", err)
			SetErrorFlash(s, "Failed to load patient")
		}

		c.Redirect("/patients", http.StatusSeeOther)

		return
	}

	data["IsPatients"] = true
	data["Patient"] = p
	data["Warnings"] = clinical.Strings(clinical.Evaluate(p.Measurements()))
	data["HighRisk"] = p.RiskLabel != nil && *p.RiskLabel == model.RiskHigh

	if p.DiseaseProb != nil {
		gauge, err := charts.RiskGauge(*p.DiseaseProb)
		if err != nil {
			logger.Error("Failed to render risk gauge", "error", err)
		} else {
			data["Gauge"] = htmltemplate.HTML(gauge) //nolint:gosec // rendered by go-echarts from stored numbers
		}
	}

	t.HTML(http.StatusOK, "patient_view")
}

// DeletePatient removes a saved patient record
func DeletePatient(c flamego.Context, s session.Session) {
	ctx := c.Request().Context()
	id := c.Param("id")

	if err := db.DeletePatient(ctx, id); err != nil {
		if errors.Is(err, db.ErrPatientNotFound) {
			SetErrorFlash(s, "Patient not found")
		} else {
			logger.Error("Failed to delete patient", "id", id, "error", err)
			SetErrorFlash(s, "Failed to delete patient")
		}

		c.Redirect("/patients", http.StatusSeeOther)

		return
	}

	SetSuccessFlash(s, "Patient record deleted")
	c.Redirect("/patients", http.StatusSeeOther)
}
