// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/humaidq/hepaguard/dataset"
	"github.com/humaidq/hepaguard/model"
)

func TestTrainEngineMissingDataset(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.csv")
	e := TrainEngine(path, model.DefaultTrainOptions())

	if e.Ready() {
		t.Fatalf("expected engine without dataset to be unavailable")
	}

	if !errors.Is(e.Err, dataset.ErrDataFileNotFound) {
		t.Fatalf("expected ErrDataFileNotFound, got %v", e.Err)
	}

	want := "Dataset not found. Please ensure '" + path + "' exists."
	if got := e.ErrorMessage(); got != want {
		t.Fatalf("ErrorMessage() = %q, want %q", got, want)
	}
}

func TestEngineErrorMessage(t *testing.T) {
	t.Parallel()

	var nilEngine *Engine
	if nilEngine.Ready() {
		t.Fatalf("nil engine must not be ready")
	}

	if got := nilEngine.ErrorMessage(); got != "The prediction model is not available." {
		t.Fatalf("unexpected nil engine message %q", got)
	}

	failed := &Engine{Err: model.ErrEmptyDataset}
	if got := failed.ErrorMessage(); !strings.HasPrefix(got, "The prediction model could not be trained") {
		t.Fatalf("unexpected training failure message %q", got)
	}

	if got := testEngine.ErrorMessage(); got != "" {
		t.Fatalf("expected no message for a ready engine, got %q", got)
	}
}

func TestTrainEngineEvaluatesHeldOutSplit(t *testing.T) {
	t.Parallel()

	if testEngine.Evaluation == nil {
		t.Fatalf("expected evaluation for trained engine")
	}

	ev := testEngine.Evaluation
	if ev.TestSize != 14 {
		t.Fatalf("expected 14 held-out rows, got %d", ev.TestSize)
	}

	if ev.Accuracy < 0.9 {
		t.Fatalf("expected separable data to score well, got accuracy %.2f", ev.Accuracy)
	}

	if len(testEngine.Pipeline.Features) != 10 {
		t.Fatalf("expected 10 features, got %v", testEngine.Pipeline.Features)
	}
}
