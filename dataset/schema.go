/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package dataset

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"
)

const previewRows = 5

// Kind returns the logical type of a column for schema output.
func (f *Frame) Kind(name string) string {
	switch name {
	case ColumnDataset:
		return "label"
	case ColumnGender:
		return "int64"
	default:
		return "float64"
	}
}

// WriteSchema prints the column names and kinds followed by the first rows.
func (f *Frame) WriteSchema(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Columns and dtypes:"); err != nil {
		return err
	}

	columns := append([]string{}, f.Columns...)
	if f.HasLabels {
		columns = append(columns, ColumnDataset)
	}

	for _, c := range columns {
		if _, err := fmt.Fprintf(w, " - %s: %s\n", c, f.Kind(c)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\nTop %d rows:\n", previewRows); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, strings.Join(columns, "\t")); err != nil {
		return err
	}

	for i := 0; i < len(f.Rows) && i < previewRows; i++ {
		cells := make([]string, 0, len(columns))
		for _, v := range f.Rows[i] {
			cells = append(cells, formatCell(v))
		}

		if f.HasLabels {
			cells = append(cells, string(f.Labels[i]))
		}

		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}
