/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	htmltemplate "html/template"
	"net/http"

	"github.com/flamego/template"

	"github.com/humaidq/hepaguard/charts"
)

// Analytics renders the held-out evaluation of the classifier
func Analytics(t template.Template, data template.Data, e *Engine) {
	data["IsAnalytics"] = true

	if !e.Ready() || e.Evaluation == nil {
		data["ModelError"] = e.ErrorMessage()
		t.HTML(http.StatusOK, "analytics")

		return
	}

	ev := e.Evaluation

	cm, err := charts.ConfusionMatrix(ev.Confusion)
	if err != nil {
		logger.Error("Failed to render confusion matrix", "error", err)
	} else {
		data["ConfusionChart"] = htmltemplate.HTML(cm) //nolint:gosec // rendered by go-echarts
	}

	roc, err := charts.ROCCurve(ev.FPR, ev.TPR, ev.AUC)
	if err != nil {
		logger.Error("Failed to render ROC curve", "error", err)
	} else {
		data["ROCChart"] = htmltemplate.HTML(roc) //nolint:gosec // rendered by go-echarts
	}

	data["Evaluation"] = ev
	data["Features"] = e.Pipeline.Features

	t.HTML(http.StatusOK, "analytics")
}
