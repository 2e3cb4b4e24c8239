/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package model

import "errors"

var (
	ErrNotFitted         = errors.New("model is not fitted")
	ErrEmptyDataset      = errors.New("dataset has no usable rows")
	ErrNoLabels          = errors.New("dataset has no label column")
	ErrSingleClass       = errors.New("dataset contains a single class")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrTooFewMinority    = errors.New("too few minority samples to oversample")
	ErrInvalidTestSize   = errors.New("test size must be between 0 and 1")
)
