/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import "errors"

var (
	errModelUnavailable = errors.New("model unavailable")
	errInvalidNumber    = errors.New("invalid number")
	errValueOutOfRange  = errors.New("value out of range")
	errInvalidGender    = errors.New("gender must be Male or Female")
)
