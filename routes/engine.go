/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	"fmt"

	"github.com/humaidq/hepaguard/dataset"
	"github.com/humaidq/hepaguard/model"
)

// Engine holds the classifier shared by the dashboard handlers. It is
// read-only once built. When training failed, Pipeline is nil and Err
// explains why.
type Engine struct {
	Pipeline   *model.Pipeline
	Evaluation *model.Evaluation
	DataFile   string
	Err        error
}

// TrainEngine loads the dataset at dataFile and trains the classifier. A
// failure is recorded on the returned Engine rather than returned, so the
// dashboard can still start and show the problem.
func TrainEngine(dataFile string, opts model.TrainOptions) *Engine {
	e := &Engine{DataFile: dataFile}

	frame, err := dataset.Load(dataFile, dataset.LoadOptions{})
	if err != nil {
		e.Err = err
		logger.Error("Failed to load dataset", "path", dataFile, "error", err)

		return e
	}

	e.Pipeline, e.Evaluation, err = model.Train(frame, opts)
	if err != nil {
		e.Err = err
		logger.Error("Failed to train classifier", "error", err)
	}

	return e
}

// Ready reports whether predictions can be made.
func (e *Engine) Ready() bool {
	return e != nil && e.Pipeline != nil
}

// ErrorMessage returns the banner text shown when the model is unavailable.
func (e *Engine) ErrorMessage() string {
	if e.Ready() {
		return ""
	}

	if e == nil || e.Err == nil {
		return "The prediction model is not available."
	}

	if errors.Is(e.Err, dataset.ErrDataFileNotFound) {
		return fmt.Sprintf("Dataset not found. Please ensure '%s' exists.", e.DataFile)
	}

	return fmt.Sprintf("The prediction model could not be trained: %v", e.Err)
}
