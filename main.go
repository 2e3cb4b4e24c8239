/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/hepaguard/cmd"
	"github.com/humaidq/hepaguard/config"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}

	app := &cli.Command{
		Name:  "hepaguard",
		Usage: "HepaGuard - Liver Disease Risk Assessment",
		Commands: []*cli.Command{
			cmd.CmdStart,
			cmd.CmdMigrate,
			cmd.CmdInitDB,
			cmd.CmdPipeline,
			cmd.CmdTrain,
			cmd.CmdEvaluate,
			cmd.CmdTheme,
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
