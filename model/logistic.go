/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package model

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Default hyperparameters for LogisticRegression.
const (
	DefaultLearningRate = 0.1
	DefaultEpochs       = 2000
	DefaultL2           = 1e-3
)

// LogisticRegression is a binary classifier trained with batch gradient
// descent on the L2-regularised log loss.
type LogisticRegression struct {
	LearningRate float64
	Epochs       int
	L2           float64

	weights *mat.VecDense
	bias    float64
}

// NewLogisticRegression returns a classifier with default hyperparameters.
func NewLogisticRegression() *LogisticRegression {
	return &LogisticRegression{
		LearningRate: DefaultLearningRate,
		Epochs:       DefaultEpochs,
		L2:           DefaultL2,
	}
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// Fit trains on X with binary targets y (0 or 1).
func (m *LogisticRegression) Fit(X mat.Matrix, y []float64) error {
	r, c := X.Dims()
	if r == 0 {
		return ErrEmptyDataset
	}

	if len(y) != r {
		return ErrDimensionMismatch
	}

	lr := m.LearningRate
	if lr <= 0 {
		lr = DefaultLearningRate
	}

	epochs := m.Epochs
	if epochs <= 0 {
		epochs = DefaultEpochs
	}

	w := mat.NewVecDense(c, nil)
	z := mat.NewVecDense(r, nil)
	residual := mat.NewVecDense(r, nil)
	grad := mat.NewVecDense(c, nil)
	bias := 0.0
	n := float64(r)

	for epoch := 0; epoch < epochs; epoch++ {
		z.MulVec(X, w)

		for i := 0; i < r; i++ {
			residual.SetVec(i, sigmoid(z.AtVec(i)+bias)-y[i])
		}

		grad.MulVec(X.T(), residual)
		grad.ScaleVec(1/n, grad)
		grad.AddScaledVec(grad, m.L2, w)

		w.AddScaledVec(w, -lr, grad)
		bias -= lr * mat.Sum(residual) / n
	}

	m.weights = w
	m.bias = bias

	return nil
}

// Weights returns a copy of the fitted coefficients and the intercept.
func (m *LogisticRegression) Weights() ([]float64, float64, error) {
	if m.weights == nil {
		return nil, 0, ErrNotFitted
	}

	out := make([]float64, m.weights.Len())
	for i := range out {
		out[i] = m.weights.AtVec(i)
	}

	return out, m.bias, nil
}

// PredictProba returns the probability of class 1 for each row of X.
func (m *LogisticRegression) PredictProba(X mat.Matrix) ([]float64, error) {
	if m.weights == nil {
		return nil, ErrNotFitted
	}

	r, c := X.Dims()
	if c != m.weights.Len() {
		return nil, ErrDimensionMismatch
	}

	z := mat.NewVecDense(r, nil)
	z.MulVec(X, m.weights)

	out := make([]float64, r)
	for i := range out {
		out[i] = sigmoid(z.AtVec(i) + m.bias)
	}

	return out, nil
}

// Predict returns the class (0 or 1) for each row of X at threshold 0.5.
func (m *LogisticRegression) Predict(X mat.Matrix) ([]float64, error) {
	probs, err := m.PredictProba(X)
	if err != nil {
		return nil, err
	}

	return threshold(probs, 0.5), nil
}

func threshold(probs []float64, cutoff float64) []float64 {
	out := make([]float64, len(probs))
	for i, p := range probs {
		if p >= cutoff {
			out[i] = 1
		}
	}

	return out
}
