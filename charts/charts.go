/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package charts renders the dashboard and pipeline visualisations with
// go-echarts.
package charts

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/humaidq/hepaguard/model"
	"github.com/humaidq/hepaguard/theme"
)

// GaugeColourThreshold is the probability above which the gauge bar turns
// the primary warning colour.
const GaugeColourThreshold = 0.5

type renderable interface {
	Render(w io.Writer) error
}

// renderString renders a chart into a standalone HTML document.
func renderString(c renderable) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// GaugeColour returns the bar colour for a probability.
func GaugeColour(prob float64) string {
	if prob > GaugeColourThreshold {
		return theme.Default.Colors.Primary
	}

	return theme.Default.Colors.Accent
}

// RiskGauge renders the disease probability as a 0-100 gauge.
func RiskGauge(prob float64) (string, error) {
	gauge := charts.NewGauge()
	gauge.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:   "100%",
			Height:  "320px",
			ChartID: "risk_gauge",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Liver Disease Probability",
		}),
	)

	gauge.AddSeries("Probability", []opts.GaugeData{
		{Name: "%", Value: math.Round(prob*1000) / 10},
	}, charts.WithItemStyleOpts(opts.ItemStyle{
		Color: GaugeColour(prob),
	}))

	return renderString(gauge)
}

// ConfusionMatrix renders a 2x2 heatmap with predicted classes on the x axis
// and actual classes on the y axis.
func ConfusionMatrix(cm model.ConfusionMatrix) (string, error) {
	classes := []string{model.ClassNames[0], model.ClassNames[1]}

	data := make([]opts.HeatMapData, 0, 4)
	maxCount := 0

	for actual := 0; actual < 2; actual++ {
		for predicted := 0; predicted < 2; predicted++ {
			n := cm[actual][predicted]
			if n > maxCount {
				maxCount = n
			}

			data = append(data, opts.HeatMapData{Value: [3]interface{}{predicted, actual, n}})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:   "100%",
			Height:  "360px",
			ChartID: "confusion_matrix",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Confusion Matrix",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Predicted",
			Type: "category",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Actual",
			Type: "category",
			Data: classes,
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxCount),
			InRange: &opts.VisualMapInRange{
				Color: []string{"#eff3ff", "#08519c"},
			},
		}),
	)

	hm.SetXAxis(classes).
		AddSeries("Count", data, charts.WithLabelOpts(opts.Label{
			Show: opts.Bool(true),
		}))

	return renderString(hm)
}

// ROCCurve renders the ROC curve against the random-guess diagonal.
func ROCCurve(fpr, tpr []float64, auc float64) (string, error) {
	name := "AUC = n/a"
	if !math.IsNaN(auc) {
		name = fmt.Sprintf("AUC = %.2f", auc)
	}

	curve := make([]opts.LineData, 0, len(fpr))
	for i := range fpr {
		if i >= len(tpr) {
			break
		}

		curve = append(curve, opts.LineData{Value: []float64{fpr[i], tpr[i]}})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:   "100%",
			Height:  "360px",
			ChartID: "roc_curve",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "ROC Curve",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "False Positive Rate",
			Type: "value",
			Min:  0,
			Max:  1,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "True Positive Rate",
			Type: "value",
			Min:  0,
			Max:  1,
		}),
	)

	line.AddSeries(name, curve, charts.WithItemStyleOpts(opts.ItemStyle{
		Color: theme.Default.Colors.Primary,
	})).
		AddSeries("Random", []opts.LineData{
			{Value: []float64{0, 0}},
			{Value: []float64{1, 1}},
		}, charts.WithLineStyleOpts(opts.LineStyle{
			Type: "dashed",
		}))

	return renderString(line)
}
