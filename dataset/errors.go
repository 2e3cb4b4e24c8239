/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package dataset

import "errors"

var (
	ErrDataFileNotFound = errors.New("data file not found")
	ErrEmptyFile        = errors.New("data file has no header row")
	ErrMissingColumns   = errors.New("missing required columns")
	ErrNegativeValues   = errors.New("negative values found")
	ErrUnknownColumn    = errors.New("unknown column")
)
