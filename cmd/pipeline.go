/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/hepaguard/charts"
	"github.com/humaidq/hepaguard/clinical"
	"github.com/humaidq/hepaguard/config"
	"github.com/humaidq/hepaguard/dataset"
)

var dataFileFlag = &cli.StringFlag{
	Name:    "data-file",
	Sources: cli.EnvVars(config.EnvDataFile),
	Usage:   "liver patient dataset (default data/indian_liver_patient.csv)",
}

var CmdPipeline = &cli.Command{
	Name:  "pipeline",
	Usage: "Load the dataset, print its schema and write exploratory plots",
	Flags: []cli.Flag{
		dataFileFlag,
		&cli.StringFlag{
			Name:    "output-dir",
			Sources: cli.EnvVars(config.EnvOutputDir),
			Usage:   "directory for generated plots (default outputs)",
		},
	},
	Action: runPipeline,
}

func resolveDataFile(cmd *cli.Command) string {
	if p := cmd.String("data-file"); p != "" {
		return p
	}

	return config.Load().DataFile
}

func runPipeline(_ context.Context, cmd *cli.Command) error {
	outputDir := cmd.String("output-dir")
	if outputDir == "" {
		outputDir = config.Load().OutputDir
	}

	return pipeline(os.Stdout, resolveDataFile(cmd), outputDir)
}

func pipeline(w io.Writer, dataFile, outputDir string) error {
	frame, err := dataset.Load(dataFile, dataset.LoadOptions{})
	if err != nil {
		return err
	}

	if err := frame.RequireColumns(dataset.RequiredColumns...); err != nil {
		return err
	}

	if err := frame.NonNegative(clinical.TotalBilirubin); err != nil {
		appLogger.Warn("Dataset failed validation", "error", err)
	}

	if _, err := fmt.Fprintf(w, "Loaded %d rows from %s\n\n", frame.Len(), dataFile); err != nil {
		return err
	}

	if err := frame.WriteSchema(w); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}

	counts := frame.Counts()
	if _, err := fmt.Fprintf(w, "\nLiver disease: %d, healthy: %d, unlabelled: %d\n",
		counts[dataset.LabelLiverDisease], counts[dataset.LabelHealthy], counts[dataset.LabelMissing]); err != nil {
		return err
	}

	paths, err := charts.GeneratePlots(frame, outputDir)
	if err != nil {
		return fmt.Errorf("failed to generate plots: %w", err)
	}

	_, err = fmt.Fprintf(w, "Wrote %s\nWrote %s\n", paths.Heatmap, paths.Pairplot)

	return err
}
