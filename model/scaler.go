/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package model

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// StandardScaler centres each feature on its mean and scales it to unit
// population variance. Constant features are only centred.
type StandardScaler struct {
	Mean  []float64
	Scale []float64
}

// Fit learns per-column mean and standard deviation.
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 {
		return ErrEmptyDataset
	}

	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)

		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 {
			std = 1
		}

		s.Mean[j] = mean
		s.Scale[j] = std
	}

	return nil
}

// Transform returns a scaled copy of X.
func (s *StandardScaler) Transform(X mat.Matrix) (*mat.Dense, error) {
	if s.Mean == nil {
		return nil, ErrNotFitted
	}

	r, c := X.Dims()
	if c != len(s.Mean) {
		return nil, ErrDimensionMismatch
	}

	out := mat.NewDense(r, c, nil)
	out.Apply(func(_, j int, v float64) float64 {
		return (v - s.Mean[j]) / s.Scale[j]
	}, X)

	return out, nil
}

// FitTransform fits the scaler on X and returns the scaled copy.
func (s *StandardScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}

	return s.Transform(X)
}
