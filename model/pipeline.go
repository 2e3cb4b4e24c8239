/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package model trains and applies the liver disease classifier.
package model

import (
	"fmt"
	"math"
	"strings"

	"github.com/humaidq/hepaguard/clinical"
	"github.com/humaidq/hepaguard/dataset"
	"github.com/humaidq/hepaguard/logging"
)

var logger = logging.Logger(logging.SourceModel)

// HighRiskThreshold is the probability above which a patient is labelled
// high risk.
const HighRiskThreshold = 0.6

// Risk labels shown on the dashboard and stored with saved patients.
const (
	RiskHigh = "High Risk"
	RiskLow  = "Low Risk"
)

// RiskLabel maps a disease probability to a risk label.
func RiskLabel(p float64) string {
	if p > HighRiskThreshold {
		return RiskHigh
	}

	return RiskLow
}

// featureAliases maps short form keys to dataset column names.
var featureAliases = map[string]string{
	"tb":             clinical.TotalBilirubin,
	"db":             clinical.DirectBilirubin,
	"alp":            clinical.AlkalinePhosphotase,
	"alt":            clinical.AlamineAminotransferase,
	"ast":            clinical.AspartateAminotransferase,
	"alb":            clinical.Albumin,
	"prot":           "total_protiens",
	"total_proteins": "total_protiens",
	"ag":             "albumin_and_globulin_ratio",
	"ag_ratio":       "albumin_and_globulin_ratio",
}

// TrainOptions configures Train.
type TrainOptions struct {
	TestSize float64
	Seed     int64
	// Balance oversamples the training split with SMOTE.
	Balance    bool
	Neighbours int
	Classifier *LogisticRegression
}

// DefaultTrainOptions returns an 80/20 split with seed 42 and SMOTE.
func DefaultTrainOptions() TrainOptions {
	return TrainOptions{
		TestSize:   0.2,
		Seed:       42,
		Balance:    true,
		Neighbours: DefaultNeighbours,
	}
}

// Prediction is the classifier output for a single patient.
type Prediction struct {
	Probability float64
	Class       dataset.Label
	Risk        string
}

// Pipeline bundles the fitted scaler and classifier with the feature order
// they were trained on.
type Pipeline struct {
	Features   []string
	Scaler     *StandardScaler
	Classifier *LogisticRegression
}

// Train fits a pipeline on frame and evaluates it on a held-out split. The
// frame is not modified.
func Train(frame *dataset.Frame, opts TrainOptions) (*Pipeline, *Evaluation, error) {
	if !frame.HasLabels {
		return nil, nil, ErrNoLabels
	}

	work := frame.Clone()
	work.FillMeans()

	X := make([][]float64, 0, work.Len())
	y := make([]float64, 0, work.Len())

	for i, row := range work.Rows {
		label, ok := work.Labels[i].Binary()
		if !ok || hasNaN(row) {
			continue
		}

		X = append(X, row)
		y = append(y, label)
	}

	if len(X) == 0 {
		return nil, nil, ErrEmptyDataset
	}

	if opts.TestSize == 0 {
		opts.TestSize = 0.2
	}

	split, err := StratifiedSplit(X, y, opts.TestSize, opts.Seed)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to split dataset: %w", err)
	}

	if len(split.TestX) == 0 {
		return nil, nil, ErrEmptyDataset
	}

	trainX, trainY := split.TrainX, split.TrainY
	if opts.Balance {
		trainX, trainY, err = SMOTE{K: opts.Neighbours, Seed: opts.Seed}.Resample(trainX, trainY)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to balance training split: %w", err)
		}
	}

	trainM, err := toDense(trainX)
	if err != nil {
		return nil, nil, err
	}

	scaler := &StandardScaler{}

	scaledTrain, err := scaler.FitTransform(trainM)
	if err != nil {
		return nil, nil, err
	}

	clf := opts.Classifier
	if clf == nil {
		clf = NewLogisticRegression()
	}

	if err := clf.Fit(scaledTrain, trainY); err != nil {
		return nil, nil, fmt.Errorf("failed to fit classifier: %w", err)
	}

	p := &Pipeline{
		Features:   work.Features(),
		Scaler:     scaler,
		Classifier: clf,
	}

	probs, err := p.probabilities(split.TestX)
	if err != nil {
		return nil, nil, err
	}

	ev, err := Score(split.TestY, threshold(probs, 0.5), probs)
	if err != nil {
		return nil, nil, err
	}

	ev.TrainSize = len(trainX)

	logger.Info("Trained classifier",
		"train_rows", ev.TrainSize,
		"test_rows", ev.TestSize,
		"accuracy", fmt.Sprintf("%.3f", ev.Accuracy),
		"auc", fmt.Sprintf("%.3f", ev.AUC))

	return p, ev, nil
}

func hasNaN(row []float64) bool {
	for _, v := range row {
		if math.IsNaN(v) {
			return true
		}
	}

	return false
}

func (p *Pipeline) probabilities(rows [][]float64) ([]float64, error) {
	m, err := toDense(rows)
	if err != nil {
		return nil, err
	}

	scaled, err := p.Scaler.Transform(m)
	if err != nil {
		return nil, err
	}

	return p.Classifier.PredictProba(scaled)
}

// Predict classifies one feature vector in Features order.
func (p *Pipeline) Predict(features []float64) (Prediction, error) {
	if p == nil || p.Scaler == nil || p.Classifier == nil {
		return Prediction{}, ErrNotFitted
	}

	if len(features) != len(p.Features) {
		return Prediction{}, ErrDimensionMismatch
	}

	probs, err := p.probabilities([][]float64{features})
	if err != nil {
		return Prediction{}, err
	}

	pred := Prediction{
		Probability: probs[0],
		Class:       dataset.LabelHealthy,
		Risk:        RiskLabel(probs[0]),
	}

	if probs[0] >= 0.5 {
		pred.Class = dataset.LabelLiverDisease
	}

	return pred, nil
}

// Vector builds a feature vector from named measurements. Keys are
// normalized and short aliases such as "ag_ratio" are accepted. Missing or
// non-numeric features take the training mean.
func (p *Pipeline) Vector(m clinical.Measurements) ([]float64, error) {
	if p == nil || p.Scaler == nil {
		return nil, ErrNotFitted
	}

	named := make(map[string]float64, len(m))

	for k, v := range m {
		key := clinical.NormalizeKey(k)
		if alias, ok := featureAliases[key]; ok {
			key = alias
		}

		if key == dataset.ColumnGender {
			if s, ok := v.(string); ok {
				named[key] = dataset.ParseGender(s)
				continue
			}
		}

		if f, ok := clinical.Coerce(v); ok && !math.IsNaN(f) {
			named[key] = f
		}
	}

	out := make([]float64, len(p.Features))
	for i, name := range p.Features {
		if v, ok := named[name]; ok {
			out[i] = v
		} else {
			out[i] = p.Scaler.Mean[i]
		}
	}

	return out, nil
}

// PredictMeasurements classifies a patient described by named measurements.
func (p *Pipeline) PredictMeasurements(m clinical.Measurements) (Prediction, error) {
	vec, err := p.Vector(m)
	if err != nil {
		return Prediction{}, err
	}

	return p.Predict(vec)
}

// String summarises the pipeline for logs and the CLI.
func (p *Pipeline) String() string {
	return fmt.Sprintf("logistic regression on %d features (%s)", len(p.Features), strings.Join(p.Features, ", "))
}
