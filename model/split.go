/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package model

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Split is a train/test partition of a labelled sample.
type Split struct {
	TrainX [][]float64
	TrainY []float64
	TestX  [][]float64
	TestY  []float64
}

// StratifiedSplit partitions X and y so that each class keeps its proportion
// in the test set. The result is deterministic for a given seed.
func StratifiedSplit(X [][]float64, y []float64, testSize float64, seed int64) (Split, error) {
	if testSize <= 0 || testSize >= 1 {
		return Split{}, ErrInvalidTestSize
	}

	if len(X) != len(y) {
		return Split{}, ErrDimensionMismatch
	}

	if len(X) == 0 {
		return Split{}, ErrEmptyDataset
	}

	groups := make(map[float64][]int)
	for i, label := range y {
		groups[label] = append(groups[label], i)
	}

	classes := make([]float64, 0, len(groups))
	for label := range groups {
		classes = append(classes, label)
	}
	sort.Float64s(classes)

	rng := rand.New(rand.NewSource(seed))

	var split Split

	for _, label := range classes {
		idx := groups[label]
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

		nTest := int(math.Round(float64(len(idx)) * testSize))
		if nTest == 0 && len(idx) > 1 {
			nTest = 1
		}

		for k, i := range idx {
			row := append([]float64(nil), X[i]...)
			if k < nTest {
				split.TestX = append(split.TestX, row)
				split.TestY = append(split.TestY, y[i])
			} else {
				split.TrainX = append(split.TrainX, row)
				split.TrainY = append(split.TrainY, y[i])
			}
		}
	}

	return split, nil
}

// toDense copies rows into a dense matrix.
func toDense(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}

	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)

	for _, row := range rows {
		if len(row) != cols {
			return nil, ErrDimensionMismatch
		}

		data = append(data, row...)
	}

	return mat.NewDense(len(rows), cols, data), nil
}
