/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import "errors"

var (
	errMigrationNameRequired = errors.New("migration name is required")
	errCSRFSecretRequired    = errors.New("CSRF_SECRET is required in production")
	errInvalidRuntimeEnv     = errors.New(runtimeEnvVar + " must be one of: development, dev, production, prod")
	errInvalidMeasurement    = errors.New("measurements must be given as key=value")
	errNoMeasurements        = errors.New("at least one key=value measurement is required")
)
