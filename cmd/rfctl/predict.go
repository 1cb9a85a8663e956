package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wlattner/binaryforest/dataset"
	"github.com/wlattner/binaryforest/forest"
	"github.com/wlattner/binaryforest/internal/ingest"
	"github.com/wlattner/binaryforest/internal/report"
)

// newPredictCommand fits a forest on labeled training data and scores
// unlabeled rows in one invocation. The teacher persisted a fitted
// model with encoding/gob between separate fit/predict runs; model
// persistence is out of scope here, so predict folds fitting and
// scoring into a single process instead.
func newPredictCommand() *cobra.Command {
	var (
		trainFile       string
		dataFile        string
		outFile         string
		categoricalCols string
		numTrees        int
		maxDepth        int
		minSamplesSplit int
		maxFeatures     int
		seed            int64
		numWorkers      int
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Fit a forest on labeled training data and predict classes for unlabeled rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			categorical, err := ingest.ParseCategoricalIndices(categoricalCols)
			if err != nil {
				return err
			}

			trainF, err := os.Open(trainFile)
			if err != nil {
				return fmt.Errorf("rfctl: opening %s: %w", trainFile, err)
			}
			defer trainF.Close()

			x, y, names, err := ingest.ReadTrainingCSV(trainF, categorical)
			if err != nil {
				return err
			}

			ds, err := dataset.New(x, y, names, categorical)
			if err != nil {
				return err
			}

			resolvedMaxFeatures := resolveMaxFeatures(maxFeatures, ds.NumFeatures())
			rf, err := forest.New(numTrees, maxDepth, minSamplesSplit, resolvedMaxFeatures, seed)
			if err != nil {
				return err
			}
			if numWorkers > 0 {
				rf.NumWorkers = numWorkers
			}

			logger.WithField("num_trees", numTrees).Info("fitting forest for prediction")
			if err := rf.Fit(ds); err != nil {
				return err
			}

			predF, err := os.Open(dataFile)
			if err != nil {
				return fmt.Errorf("rfctl: opening %s: %w", dataFile, err)
			}
			defer predF.Close()

			rows, _, err := ingest.ReadFeatureCSV(predF)
			if err != nil {
				return err
			}
			pred := rf.PredictMatrix(rows)

			out := os.Stdout
			if outFile != "" {
				w, err := os.Create(outFile)
				if err != nil {
					return fmt.Errorf("rfctl: creating %s: %w", outFile, err)
				}
				defer w.Close()
				out = w
			}
			return report.WritePredictionsCSV(out, pred)
		},
	}

	cmd.Flags().StringVar(&trainFile, "train-data", "", "labeled CSV used to fit the forest before predicting")
	cmd.Flags().StringVar(&dataFile, "data", "", "feature-only CSV (no target column) to predict")
	cmd.Flags().StringVar(&outFile, "out", "", "output CSV file for predictions, defaults to stdout")
	cmd.Flags().StringVar(&categoricalCols, "categorical", "", "comma-separated 0-based categorical feature column indices")
	cmd.Flags().IntVar(&numTrees, "trees", 10, "number of trees")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 10, "max tree depth")
	cmd.Flags().IntVar(&minSamplesSplit, "min-samples-split", 2, "min samples required to split a node")
	cmd.Flags().IntVar(&maxFeatures, "max-features", -1, "max features considered per split, -1 defaults to sqrt(F)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "PRNG seed")
	cmd.Flags().IntVar(&numWorkers, "workers", 0, "parallel fit workers, 0 defaults to GOMAXPROCS")
	_ = cmd.MarkFlagRequired("train-data")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}
