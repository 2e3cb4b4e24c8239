/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variables recognised by every command.
const (
	EnvDataDir   = "DATA_DIR"
	EnvDataFile  = "DATA_FILE"
	EnvOutputDir = "OUTPUT_DIR"
	EnvDBPath    = "DB_PATH"
)

// DefaultDataFileName is the liver patient dataset expected under the data directory.
const DefaultDataFileName = "indian_liver_patient.csv"

// Paths holds the file locations used by the application.
type Paths struct {
	DataDir   string
	DataFile  string
	OutputDir string
	DBPath    string
}

// LoadDotEnv reads a .env file from the working directory if one exists.
// Values already present in the environment are not overwritten.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}

	return godotenv.Load()
}

// Load resolves paths from the environment, falling back to defaults
// relative to the working directory.
func Load() Paths {
	dataDir := getEnvOrDefault(EnvDataDir, "data")

	return Paths{
		DataDir:   dataDir,
		DataFile:  getEnvOrDefault(EnvDataFile, filepath.Join(dataDir, DefaultDataFileName)),
		OutputDir: getEnvOrDefault(EnvOutputDir, "outputs"),
		DBPath:    getEnvOrDefault(EnvDBPath, filepath.Join("db", "app.db")),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}
