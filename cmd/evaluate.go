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
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/hepaguard/clinical"
)

var CmdEvaluate = &cli.Command{
	Name:      "evaluate",
	Usage:     "Run the clinical rules against measurements",
	ArgsUsage: "key=value ...",
	Action:    runEvaluate,
}

// parseMeasurements reads key=value arguments. Values are kept as text and
// coerced by the evaluator; a repeated key keeps the last value.
func parseMeasurements(args []string) (clinical.Measurements, error) {
	if len(args) == 0 {
		return nil, errNoMeasurements
	}

	m := clinical.Measurements{}

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%w: %q", errInvalidMeasurement, arg)
		}

		m[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return m, nil
}

func runEvaluate(_ context.Context, cmd *cli.Command) error {
	m, err := parseMeasurements(cmd.Args().Slice())
	if err != nil {
		return err
	}

	return writeWarnings(os.Stdout, clinical.Evaluate(m))
}

func writeWarnings(w io.Writer, warnings []clinical.Warning) error {
	if len(warnings) == 0 {
		_, err := fmt.Fprintln(w, "No clinical warnings")
		return err
	}

	for _, warning := range warnings {
		if _, err := fmt.Fprintln(w, warning); err != nil {
			return err
		}
	}

	return nil
}
