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

	"github.com/humaidq/hepaguard/dataset"
	"github.com/humaidq/hepaguard/model"
)

var CmdTrain = &cli.Command{
	Name:  "train",
	Usage: "Train the classifier and print its held-out evaluation",
	Flags: []cli.Flag{
		dataFileFlag,
		&cli.FloatFlag{
			Name:  "test-size",
			Value: 0.2,
			Usage: "fraction of each class held out for evaluation",
		},
		&cli.Int64Flag{
			Name:  "seed",
			Value: 42,
			Usage: "random seed for the split and oversampling",
		},
		&cli.BoolFlag{
			Name:  "no-smote",
			Usage: "train on the imbalanced split without oversampling",
		},
	},
	Action: runTrain,
}

func runTrain(_ context.Context, cmd *cli.Command) error {
	opts := model.DefaultTrainOptions()
	opts.TestSize = cmd.Float("test-size")
	opts.Seed = cmd.Int64("seed")
	opts.Balance = !cmd.Bool("no-smote")

	return train(os.Stdout, resolveDataFile(cmd), opts)
}

func train(w io.Writer, dataFile string, opts model.TrainOptions) error {
	frame, err := dataset.Load(dataFile, dataset.LoadOptions{})
	if err != nil {
		return err
	}

	p, ev, err := model.Train(frame, opts)
	if err != nil {
		return fmt.Errorf("failed to train classifier: %w", err)
	}

	if _, err := fmt.Fprintf(w, "Model: %s\nTrain rows: %d, test rows: %d\nAccuracy: %.3f\n\n",
		p, ev.TrainSize, ev.TestSize, ev.Accuracy); err != nil {
		return err
	}

	return ev.WriteReport(w)
}
