/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/hepaguard/theme"
)

var CmdTheme = &cli.Command{
	Name:  "theme",
	Usage: "Print the dashboard theme tokens",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "format",
			Value: "yaml",
			Usage: "output format: yaml or json",
		},
	},
	Action: func(_ context.Context, cmd *cli.Command) error {
		return theme.Default.Encode(os.Stdout, cmd.String("format"))
	},
}
