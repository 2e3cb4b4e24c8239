/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package model

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// Class names used in reports, indexed by binary label.
var ClassNames = [2]string{"healthy", "liver_disease"}

// ConfusionMatrix counts predictions indexed as [actual][predicted].
type ConfusionMatrix [2][2]int

// ClassReport holds per-class precision, recall and F1.
type ClassReport struct {
	Class     string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Evaluation summarises classifier performance on a held-out set.
type Evaluation struct {
	Accuracy  float64
	Confusion ConfusionMatrix
	Report    []ClassReport
	FPR       []float64
	TPR       []float64
	AUC       float64
	TrainSize int
	TestSize  int
}

// Score computes metrics from true labels, predicted labels and predicted
// probabilities of class 1. AUC is NaN when yTrue holds a single class.
func Score(yTrue, yPred, yProb []float64) (*Evaluation, error) {
	if len(yTrue) != len(yPred) || len(yTrue) != len(yProb) {
		return nil, ErrDimensionMismatch
	}

	if len(yTrue) == 0 {
		return nil, ErrEmptyDataset
	}

	ev := &Evaluation{TestSize: len(yTrue)}

	correct := 0
	for i := range yTrue {
		actual, predicted := classIndex(yTrue[i]), classIndex(yPred[i])
		ev.Confusion[actual][predicted]++

		if actual == predicted {
			correct++
		}
	}

	ev.Accuracy = float64(correct) / float64(len(yTrue))
	ev.Report = classReport(ev.Confusion)
	ev.FPR, ev.TPR, ev.AUC = rocCurve(yTrue, yProb)

	return ev, nil
}

func classIndex(v float64) int {
	if v >= 0.5 {
		return 1
	}

	return 0
}

func classReport(cm ConfusionMatrix) []ClassReport {
	out := make([]ClassReport, 0, 2)

	for c := 0; c < 2; c++ {
		tp := cm[c][c]
		predicted := cm[0][c] + cm[1][c]
		support := cm[c][0] + cm[c][1]

		precision := safeDiv(float64(tp), float64(predicted))
		recall := safeDiv(float64(tp), float64(support))

		out = append(out, ClassReport{
			Class:     ClassNames[c],
			Precision: precision,
			Recall:    recall,
			F1:        safeDiv(2*precision*recall, precision+recall),
			Support:   support,
		})
	}

	return out
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}

	return a / b
}

// rocCurve returns the ROC curve and its area. stat.ROC needs scores in
// ascending order with the labels permuted alongside.
func rocCurve(yTrue, yProb []float64) ([]float64, []float64, float64) {
	scores := append([]float64(nil), yProb...)
	classes := make([]bool, len(yTrue))

	positives := 0
	for i, v := range yTrue {
		classes[i] = v >= 0.5
		if classes[i] {
			positives++
		}
	}

	if positives == 0 || positives == len(yTrue) {
		return nil, nil, math.NaN()
	}

	stat.SortWeightedLabeled(scores, classes, nil)
	tpr, fpr, _ := stat.ROC(nil, scores, classes, nil)

	return fpr, tpr, integrate.Trapezoidal(fpr, tpr)
}

// WriteReport prints a classification report in the familiar tabular form.
func (e *Evaluation) WriteReport(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	if _, err := fmt.Fprintln(tw, "\tprecision\trecall\tf1-score\tsupport\t"); err != nil {
		return err
	}

	for _, r := range e.Report {
		if _, err := fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%d\t\n", r.Class, r.Precision, r.Recall, r.F1, r.Support); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(tw, "accuracy\t\t\t%.2f\t%d\t\n", e.Accuracy, e.TestSize); err != nil {
		return err
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if !math.IsNaN(e.AUC) {
		if _, err := fmt.Fprintf(w, "\nROC AUC: %.3f\n", e.AUC); err != nil {
			return err
		}
	}

	return nil
}
