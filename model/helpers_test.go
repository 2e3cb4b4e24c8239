// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"testing"

	"github.com/humaidq/hepaguard/dataset"
)

// syntheticFrame builds a separable sample: disease rows have high
// bilirubin and ALT, healthy rows have low values.
func syntheticFrame(t *testing.T, disease, healthy int) *dataset.Frame {
	t.Helper()

	f := &dataset.Frame{
		Columns:   []string{"age", "total_bilirubin", "alamine_aminotransferase", "albumin_and_globulin_ratio"},
		HasLabels: true,
	}

	for i := 0; i < disease; i++ {
		f.Rows = append(f.Rows, []float64{
			float64(40 + i%30),
			3 + float64(i)*0.1,
			80 + float64(i),
			0.6 + float64(i%5)*0.02,
		})
		f.Labels = append(f.Labels, dataset.LabelLiverDisease)
	}

	for i := 0; i < healthy; i++ {
		f.Rows = append(f.Rows, []float64{
			float64(35 + i%30),
			0.5 + float64(i)*0.01,
			20 + float64(i)*0.5,
			1.1 + float64(i%5)*0.02,
		})
		f.Labels = append(f.Labels, dataset.LabelHealthy)
	}

	return f
}

func countLabel(y []float64, label float64) int {
	n := 0

	for _, v := range y {
		if v == label {
			n++
		}
	}

	return n
}
