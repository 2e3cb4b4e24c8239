/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import "errors"

var (
	ErrDatabaseConnectionNotInitialized = errors.New("database connection not initialized")
	ErrDatabasePathNotSet               = errors.New("database path is not set")
	ErrPatientNotFound                  = errors.New("patient not found")
	ErrPatientNameRequired              = errors.New("patient name is required")
)
