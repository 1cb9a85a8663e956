package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/davecheney/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wlattner/binaryforest/dataset"
	"github.com/wlattner/binaryforest/forest"
	"github.com/wlattner/binaryforest/internal/ingest"
	"github.com/wlattner/binaryforest/internal/report"
	"github.com/wlattner/binaryforest/metrics"
)

func newFitCommand() *cobra.Command {
	var (
		dataFile        string
		categoricalCols string
		numTrees        int
		maxDepth        int
		minSamplesSplit int
		maxFeatures     int
		seed            int64
		numWorkers      int
		runProfile      bool
		runsDir         string
	)

	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Train a random forest on a labeled CSV dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			categorical, err := ingest.ParseCategoricalIndices(categoricalCols)
			if err != nil {
				return err
			}

			f, err := os.Open(dataFile)
			if err != nil {
				return fmt.Errorf("rfctl: opening %s: %w", dataFile, err)
			}
			defer f.Close()

			x, y, names, err := ingest.ReadTrainingCSV(f, categorical)
			if err != nil {
				return err
			}

			ds, err := dataset.New(x, y, names, categorical)
			if err != nil {
				return err
			}

			if runProfile {
				defer profile.Start(profile.CPUProfile).Stop()
			}

			resolvedMaxFeatures := resolveMaxFeatures(maxFeatures, ds.NumFeatures())
			rf, err := forest.New(numTrees, maxDepth, minSamplesSplit, resolvedMaxFeatures, seed)
			if err != nil {
				return err
			}
			if numWorkers > 0 {
				rf.NumWorkers = numWorkers
			}

			logger.WithFields(logrus.Fields{
				"num_trees":    numTrees,
				"num_samples":  ds.NumSamples(),
				"num_features": ds.NumFeatures(),
			}).Info("fitting forest")

			start := time.Now()
			if err := rf.Fit(ds); err != nil {
				return err
			}
			elapsed := time.Since(start)

			logger.WithFields(logrus.Fields{
				"elapsed":      elapsed,
				"oob_accuracy": rf.OOBAccuracy,
			}).Info("fit complete")

			trainAcc, err := rf.Score(ds)
			if err != nil {
				return err
			}

			pred := make([]int, ds.NumSamples())
			for i := 0; i < ds.NumSamples(); i++ {
				pred[i] = rf.Predict(ds.Row(i))
			}
			precision, _ := metrics.Precision(pred, ds.Labels())
			recall, _ := metrics.Recall(pred, ds.Labels())
			f1, _ := metrics.F1(pred, ds.Labels())
			confusion, _ := metrics.Confusion(pred, ds.Labels())

			rep := report.FitReport{
				NumTrees:        numTrees,
				MaxDepth:        maxDepth,
				MinSamplesSplit: minSamplesSplit,
				MaxFeatures:     resolvedMaxFeatures,
				Seed:            seed,
				NumSamples:      ds.NumSamples(),
				NumFeatures:     ds.NumFeatures(),
				FitDuration:     elapsed.String(),
				TrainAccuracy:   trainAcc,
				OOBAccuracy:     rf.OOBAccuracy,
				Precision:       precision,
				Recall:          recall,
				F1:              f1,
				Confusion:       confusion,
			}

			dir, err := newRunDir(runsDir)
			if err != nil {
				return err
			}
			logger.WithField("dir", dir).Info("writing run artifacts")

			jf, err := os.Create(filepath.Join(dir, "report.json"))
			if err != nil {
				return fmt.Errorf("rfctl: creating report.json: %w", err)
			}
			defer jf.Close()
			if err := report.WriteJSON(jf, rep); err != nil {
				return err
			}

			report.WriteFitSummaryTable(os.Stdout, rep)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "", "CSV file with training data (header row, last column is the binary target)")
	cmd.Flags().StringVar(&categoricalCols, "categorical", "", "comma-separated 0-based categorical feature column indices")
	cmd.Flags().IntVar(&numTrees, "trees", 10, "number of trees")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 10, "max tree depth")
	cmd.Flags().IntVar(&minSamplesSplit, "min-samples-split", 2, "min samples required to split a node")
	cmd.Flags().IntVar(&maxFeatures, "max-features", -1, "max features considered per split, -1 defaults to sqrt(F)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "PRNG seed")
	cmd.Flags().IntVar(&numWorkers, "workers", 0, "parallel fit workers, 0 defaults to GOMAXPROCS")
	cmd.Flags().BoolVar(&runProfile, "profile", false, "enable CPU profiling for the duration of the fit")
	cmd.Flags().StringVar(&runsDir, "runs-dir", "runs", "parent directory for per-run artifact directories")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}
