/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package model

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// DefaultNeighbours is the number of nearest minority neighbours SMOTE
// interpolates toward.
const DefaultNeighbours = 5

// SMOTE oversamples the minority class of a binary sample by interpolating
// between a minority point and one of its nearest minority neighbours.
type SMOTE struct {
	K    int
	Seed int64
}

// Resample returns X and y with synthetic minority rows appended until both
// classes have the same count. The inputs are not modified.
func (s SMOTE) Resample(X [][]float64, y []float64) ([][]float64, []float64, error) {
	if len(X) != len(y) {
		return nil, nil, ErrDimensionMismatch
	}

	if len(X) == 0 {
		return nil, nil, ErrEmptyDataset
	}

	byClass := make(map[float64][]int)
	for i, label := range y {
		byClass[label] = append(byClass[label], i)
	}

	if len(byClass) != 2 {
		return nil, nil, ErrSingleClass
	}

	labels := make([]float64, 0, 2)
	for label := range byClass {
		labels = append(labels, label)
	}
	sort.Float64s(labels)

	minorityLabel, majorityLabel := labels[0], labels[1]
	if len(byClass[minorityLabel]) > len(byClass[majorityLabel]) {
		minorityLabel, majorityLabel = majorityLabel, minorityLabel
	}

	outX := make([][]float64, 0, 2*len(byClass[majorityLabel]))
	for _, row := range X {
		outX = append(outX, append([]float64(nil), row...))
	}

	outY := append([]float64(nil), y...)

	need := len(byClass[majorityLabel]) - len(byClass[minorityLabel])
	if need == 0 {
		return outX, outY, nil
	}

	minority := make([][]float64, 0, len(byClass[minorityLabel]))
	for _, i := range byClass[minorityLabel] {
		minority = append(minority, X[i])
	}

	k := s.K
	if k <= 0 {
		k = DefaultNeighbours
	}

	if k > len(minority)-1 {
		k = len(minority) - 1
	}

	if k < 1 {
		return nil, nil, ErrTooFewMinority
	}

	neighbours := nearestNeighbours(minority, k)
	rng := rand.New(rand.NewSource(s.Seed))
	diff := make([]float64, len(minority[0]))

	for n := 0; n < need; n++ {
		i := rng.Intn(len(minority))
		nn := minority[neighbours[i][rng.Intn(k)]]

		floats.SubTo(diff, nn, minority[i])

		synthetic := make([]float64, len(diff))
		floats.AddScaledTo(synthetic, minority[i], rng.Float64(), diff)

		outX = append(outX, synthetic)
		outY = append(outY, minorityLabel)
	}

	return outX, outY, nil
}

// nearestNeighbours returns, for each point, the indices of its k nearest
// other points by Euclidean distance.
func nearestNeighbours(points [][]float64, k int) [][]int {
	out := make([][]int, len(points))

	for i, p := range points {
		type candidate struct {
			idx  int
			dist float64
		}

		candidates := make([]candidate, 0, len(points)-1)
		for j, q := range points {
			if i == j {
				continue
			}

			candidates = append(candidates, candidate{idx: j, dist: floats.Distance(p, q, 2)})
		}

		sort.SliceStable(candidates, func(a, b int) bool {
			return candidates[a].dist < candidates[b].dist
		})

		out[i] = make([]int, k)
		for n := 0; n < k; n++ {
			out[i][n] = candidates[n].idx
		}
	}

	return out
}
