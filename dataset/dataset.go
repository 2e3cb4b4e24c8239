/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package dataset loads the liver patient CSV into a numeric frame.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/humaidq/hepaguard/clinical"
	"github.com/humaidq/hepaguard/logging"
)

var logger = logging.Logger(logging.SourceDataset)

// Well-known column names after normalization.
const (
	ColumnDataset = "dataset"
	ColumnGender  = "gender"
	ColumnAge     = "age"
)

// Label is the diagnosis class of a row.
type Label string

const (
	LabelMissing      Label = ""
	LabelLiverDisease Label = "liver_disease"
	LabelHealthy      Label = "healthy"
)

// RequiredColumns must be present for the dataset to be usable for training.
var RequiredColumns = []string{
	ColumnDataset,
	ColumnGender,
	clinical.TotalBilirubin,
	clinical.AlamineAminotransferase,
	clinical.Albumin,
}

// Binary returns 1 for liver disease and 0 for healthy.
func (l Label) Binary() (float64, bool) {
	switch l {
	case LabelLiverDisease:
		return 1, true
	case LabelHealthy:
		return 0, true
	default:
		return 0, false
	}
}

// ParseLabel maps the raw dataset column to a Label.
func ParseLabel(raw string) Label {
	switch strings.TrimSpace(raw) {
	case "1", "1.0", "Liver Disease", "liver_disease":
		return LabelLiverDisease
	case "2", "2.0", "Healthy", "healthy":
		return LabelHealthy
	default:
		return LabelMissing
	}
}

// ParseGender maps the raw gender column to 1 (male) or 0.
func ParseGender(raw string) float64 {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "male", "m", "1", "true":
		return 1
	default:
		return 0
	}
}

// LoadOptions controls how a CSV file is loaded.
type LoadOptions struct {
	// DropNA removes rows with a missing numeric value or label.
	DropNA bool
}

// Frame is a numeric view of the dataset. Missing numeric cells are NaN.
// The dataset column is held separately in Labels.
type Frame struct {
	Columns   []string
	Rows      [][]float64
	Labels    []Label
	HasLabels bool
}

// Load reads the CSV at path.
func Load(path string, opts LoadOptions) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDataFileNotFound, path)
		}

		return nil, fmt.Errorf("failed to open data file: %w", err)
	}

	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("Failed to close data file", "path", path, "error", err)
		}
	}()

	frame, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	logger.Debug("Loaded dataset", "path", path, "rows", frame.Len(), "columns", len(frame.Columns))

	return frame, nil
}

// Read parses CSV data from r.
func Read(r io.Reader, opts LoadOptions) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}

		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	frame := &Frame{}
	labelIdx := -1
	sourceIdx := make([]int, 0, len(header))

	for i, name := range header {
		key := clinical.NormalizeKey(name)
		if key == ColumnDataset {
			labelIdx = i
			frame.HasLabels = true

			continue
		}

		frame.Columns = append(frame.Columns, key)
		sourceIdx = append(sourceIdx, i)
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		row := make([]float64, len(frame.Columns))
		for j, src := range sourceIdx {
			cell := ""
			if src < len(record) {
				cell = record[src]
			}

			if frame.Columns[j] == ColumnGender {
				row[j] = ParseGender(cell)
				continue
			}

			row[j] = parseCell(cell)
		}

		label := LabelMissing
		if labelIdx >= 0 && labelIdx < len(record) {
			label = ParseLabel(record[labelIdx])
		}

		frame.Rows = append(frame.Rows, row)
		frame.Labels = append(frame.Labels, label)
	}

	if opts.DropNA {
		frame.DropNA()
	}

	return frame, nil
}

func parseCell(cell string) float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return math.NaN()
	}

	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}

	return v
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.Rows)
}

// Features returns the numeric column names. The dataset label is never
// among them.
func (f *Frame) Features() []string {
	return append([]string(nil), f.Columns...)
}

// Index returns the position of a column, or -1.
func (f *Frame) Index(name string) int {
	name = clinical.NormalizeKey(name)
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}

	return -1
}

// HasColumn reports whether the frame has the named column. The dataset
// column counts when labels were loaded.
func (f *Frame) HasColumn(name string) bool {
	if clinical.NormalizeKey(name) == ColumnDataset {
		return f.HasLabels
	}

	return f.Index(name) >= 0
}

// Column returns a copy of a numeric column.
func (f *Frame) Column(name string) ([]float64, bool) {
	idx := f.Index(name)
	if idx < 0 {
		return nil, false
	}

	out := make([]float64, len(f.Rows))
	for i, row := range f.Rows {
		out[i] = row[idx]
	}

	return out, true
}

// DropNA removes rows with a NaN cell, or a missing label when the frame
// has labels.
func (f *Frame) DropNA() {
	f.filter(func(row []float64, label Label) bool {
		if f.HasLabels && label == LabelMissing {
			return false
		}

		for _, v := range row {
			if math.IsNaN(v) {
				return false
			}
		}

		return true
	})
}

// DropDuplicates removes rows identical to an earlier row, label included.
func (f *Frame) DropDuplicates() {
	seen := make(map[string]struct{}, len(f.Rows))

	f.filter(func(row []float64, label Label) bool {
		var b strings.Builder
		for _, v := range row {
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
			b.WriteByte(',')
		}
		b.WriteString(string(label))

		key := b.String()
		if _, ok := seen[key]; ok {
			return false
		}

		seen[key] = struct{}{}

		return true
	})
}

func (f *Frame) filter(keep func([]float64, Label) bool) {
	rows := f.Rows[:0]
	labels := f.Labels[:0]

	for i, row := range f.Rows {
		if keep(row, f.Labels[i]) {
			rows = append(rows, row)
			labels = append(labels, f.Labels[i])
		}
	}

	f.Rows = rows
	f.Labels = labels
}

// FillMeans replaces NaN cells with the mean of their column. Columns with
// no observed values are left untouched.
func (f *Frame) FillMeans() {
	for j := range f.Columns {
		observed := make([]float64, 0, len(f.Rows))
		for _, row := range f.Rows {
			if !math.IsNaN(row[j]) {
				observed = append(observed, row[j])
			}
		}

		if len(observed) == 0 || len(observed) == len(f.Rows) {
			continue
		}

		mean := stat.Mean(observed, nil)
		for _, row := range f.Rows {
			if math.IsNaN(row[j]) {
				row[j] = mean
			}
		}
	}
}

// RequireColumns reports ErrMissingColumns listing every absent column.
func (f *Frame) RequireColumns(names ...string) error {
	var missing []string

	for _, name := range names {
		if !f.HasColumn(name) {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	return nil
}

// NonNegative reports ErrNegativeValues if the column holds a value below
// zero. Missing values are ignored.
func (f *Frame) NonNegative(name string) error {
	col, ok := f.Column(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, name)
	}

	for i, v := range col {
		if !math.IsNaN(v) && v < 0 {
			return fmt.Errorf("%w: %s at row %d", ErrNegativeValues, name, i)
		}
	}

	return nil
}

// Counts returns the number of rows per label.
func (f *Frame) Counts() map[Label]int {
	counts := make(map[Label]int)
	for _, l := range f.Labels {
		counts[l]++
	}

	return counts
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	out := &Frame{
		Columns:   append([]string(nil), f.Columns...),
		Rows:      make([][]float64, len(f.Rows)),
		Labels:    append([]Label(nil), f.Labels...),
		HasLabels: f.HasLabels,
	}

	for i, row := range f.Rows {
		out.Rows[i] = append([]float64(nil), row...)
	}

	return out
}
