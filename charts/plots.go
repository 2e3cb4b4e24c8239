/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package charts

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/stat"

	"github.com/humaidq/hepaguard/clinical"
	"github.com/humaidq/hepaguard/dataset"
	"github.com/humaidq/hepaguard/logging"
	"github.com/humaidq/hepaguard/theme"
)

var logger = logging.Logger(logging.SourceCharts)

// Output file names written by GeneratePlots.
const (
	HeatmapFile  = "correlation_heatmap.html"
	PairplotFile = "pairplot_distribution.html"
)

// maxPairVars bounds the pair grid when no clinical columns are present.
const maxPairVars = 6

// PreferredPairVars are the clinical columns plotted against each other when
// the frame has them.
var PreferredPairVars = []string{
	clinical.TotalBilirubin,
	clinical.DirectBilirubin,
	clinical.AlkalinePhosphotase,
	clinical.AlamineAminotransferase,
	clinical.AspartateAminotransferase,
	clinical.Albumin,
}

// Correlation returns the Pearson correlation matrix of the frame's columns.
// Each pair uses the rows where both values are present; pairs without
// variance are NaN.
func Correlation(frame *dataset.Frame) [][]float64 {
	n := len(frame.Columns)
	out := make([][]float64, n)

	for i := range out {
		out[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			x, y := pairedColumns(frame, i, j)

			r := math.NaN()
			if len(x) > 1 {
				r = stat.Correlation(x, y, nil)
			}

			out[i][j] = r
			out[j][i] = r
		}
	}

	return out
}

func pairedColumns(frame *dataset.Frame, i, j int) ([]float64, []float64) {
	x := make([]float64, 0, len(frame.Rows))
	y := make([]float64, 0, len(frame.Rows))

	for _, row := range frame.Rows {
		if math.IsNaN(row[i]) || math.IsNaN(row[j]) {
			continue
		}

		x = append(x, row[i])
		y = append(y, row[j])
	}

	return x, y
}

// CorrelationHeatmap builds the annotated feature correlation chart.
func CorrelationHeatmap(frame *dataset.Frame) *charts.HeatMap {
	corr := Correlation(frame)

	data := make([]opts.HeatMapData, 0, len(corr)*len(corr))
	for i := range corr {
		for j := range corr[i] {
			var v interface{} = "-"
			if !math.IsNaN(corr[i][j]) {
				v = math.Round(corr[i][j]*100) / 100
			}

			data = append(data, opts.HeatMapData{Value: [3]interface{}{i, j, v}})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Feature Correlation Matrix",
			Width:     "1100px",
			Height:    "900px",
			ChartID:   "correlation_heatmap",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Feature Correlation Matrix",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "category",
			AxisLabel: &opts.AxisLabel{
				Rotate: 35,
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "category",
			Data: frame.Columns,
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        -1,
			Max:        1,
			InRange: &opts.VisualMapInRange{
				Color: []string{"#3b4cc0", "#f7f7f7", "#b40426"},
			},
		}),
	)

	hm.SetXAxis(frame.Columns).
		AddSeries("Correlation", data, charts.WithLabelOpts(opts.Label{
			Show: opts.Bool(true),
		}))

	return hm
}

// PairVars returns the columns for the pair grid: the preferred clinical
// columns present in the frame, or the first six columns otherwise.
func PairVars(frame *dataset.Frame) []string {
	var vars []string

	for _, name := range PreferredPairVars {
		if frame.HasColumn(name) {
			vars = append(vars, name)
		}
	}

	if len(vars) > 0 {
		return vars
	}

	if len(frame.Columns) > maxPairVars {
		return append([]string(nil), frame.Columns[:maxPairVars]...)
	}

	return append([]string(nil), frame.Columns...)
}

// PairScatter builds one scatter chart per pair of vars, coloured by label
// when the frame is labelled. Unknown vars are skipped.
func PairScatter(frame *dataset.Frame, vars []string) []*charts.Scatter {
	idx := make([]int, 0, len(vars))
	names := make([]string, 0, len(vars))

	for _, v := range vars {
		if i := frame.Index(v); i >= 0 {
			idx = append(idx, i)
			names = append(names, v)
		}
	}

	var out []*charts.Scatter

	for a := 0; a < len(idx); a++ {
		for b := a + 1; b < len(idx); b++ {
			out = append(out, pairChart(frame, idx[a], idx[b], names[a], names[b]))
		}
	}

	return out
}

func pairChart(frame *dataset.Frame, xi, yi int, xName, yName string) *charts.Scatter {
	groups := map[dataset.Label][]opts.ScatterData{}

	for r, row := range frame.Rows {
		if math.IsNaN(row[xi]) || math.IsNaN(row[yi]) {
			continue
		}

		label := dataset.LabelMissing
		if frame.HasLabels {
			label = frame.Labels[r]
		}

		groups[label] = append(groups[label], opts.ScatterData{
			Value:      []float64{row[xi], row[yi]},
			SymbolSize: 6,
		})
	}

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:   "420px",
			Height:  "360px",
			ChartID: fmt.Sprintf("pair_%s_%s", xName, yName),
		}),
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("%s vs %s", yName, xName),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(frame.HasLabels),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:  xName,
			Type:  "value",
			Scale: opts.Bool(true),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  yName,
			Type:  "value",
			Scale: opts.Bool(true),
		}),
	)

	series := []struct {
		label  dataset.Label
		name   string
		colour string
	}{
		{label: dataset.LabelLiverDisease, name: string(dataset.LabelLiverDisease), colour: theme.Default.Colors.Primary},
		{label: dataset.LabelHealthy, name: string(dataset.LabelHealthy), colour: theme.Default.Colors.Accent},
		{label: dataset.LabelMissing, name: "unlabelled", colour: theme.Default.Colors.Text},
	}

	for _, s := range series {
		if len(groups[s.label]) == 0 {
			continue
		}

		sc.AddSeries(s.name, groups[s.label], charts.WithItemStyleOpts(opts.ItemStyle{
			Color: s.colour,
		}))
	}

	return sc
}

// PlotPaths lists the files written by GeneratePlots.
type PlotPaths struct {
	Heatmap  string
	Pairplot string
}

// GeneratePlots writes the correlation heatmap and pair grid into outputDir,
// creating it if needed.
func GeneratePlots(frame *dataset.Frame, outputDir string) (PlotPaths, error) {
	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return PlotPaths{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := PlotPaths{
		Heatmap:  filepath.Join(outputDir, HeatmapFile),
		Pairplot: filepath.Join(outputDir, PairplotFile),
	}

	logger.Info("Generating heatmap", "path", paths.Heatmap)

	if err := writeChart(paths.Heatmap, CorrelationHeatmap(frame)); err != nil {
		return PlotPaths{}, err
	}

	logger.Info("Generating pairplot", "path", paths.Pairplot)

	page := components.NewPage()
	page.PageTitle = "Biomarker Pair Distribution"
	page.SetLayout(components.PageFlexLayout)

	for _, sc := range PairScatter(frame, PairVars(frame)) {
		page.AddCharts(sc)
	}

	if err := writeChart(paths.Pairplot, page); err != nil {
		return PlotPaths{}, err
	}

	logger.Info("Plots saved", "dir", outputDir)

	return paths, nil
}

func writeChart(path string, c renderable) error {
	f, err := os.Create(path) //nolint:gosec // path is built from the configured output directory
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := c.Render(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to render %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	return nil
}
