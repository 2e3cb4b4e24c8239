/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/hepaguard/db"
)

var CmdInitDB = &cli.Command{
	Name:  "init-db",
	Usage: "Create the database schema and insert a sample patient",
	Flags: []cli.Flag{
		dbPathFlag,
		&cli.BoolFlag{
			Name:  "no-sample",
			Usage: "only create the schema",
		},
	},
	Action: initDB,
}

func initDB(ctx context.Context, cmd *cli.Command) error {
	path := resolveDBPath(cmd)

	if err := db.Init(ctx, path); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.SyncSchema(ctx); err != nil {
		return fmt.Errorf("failed to sync schema: %w", err)
	}

	fmt.Printf("Database ready at %s\n", path)

	if cmd.Bool("no-sample") {
		return nil
	}

	id, err := db.CreatePatient(ctx, db.SamplePatient())
	if err != nil {
		return fmt.Errorf("failed to insert sample patient: %w", err)
	}

	fmt.Printf("Inserted sample patient %s\n", id)

	return nil
}
