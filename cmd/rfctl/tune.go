package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wlattner/binaryforest/dataset"
	"github.com/wlattner/binaryforest/internal/ingest"
	"github.com/wlattner/binaryforest/internal/report"
	"github.com/wlattner/binaryforest/tuning"
)

func newTuneCommand() *cobra.Command {
	var (
		dataFile        string
		categoricalCols string
		treesGrid       string
		maxDepthGrid    string
		minSplitGrid    string
		maxFeaturesGrid string
		folds           int
		seed            int64
		metric          string
	)

	cmd := &cobra.Command{
		Use:   "tune",
		Short: "K-fold grid search over forest hyperparameters",
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

			var grid tuning.ParameterGrid
			if grid.NumTrees, err = parseIntList(treesGrid); err != nil {
				return err
			}
			if grid.MaxDepth, err = parseIntList(maxDepthGrid); err != nil {
				return err
			}
			if grid.MinSamplesSplit, err = parseIntList(minSplitGrid); err != nil {
				return err
			}
			if grid.MaxFeatures, err = parseIntList(maxFeaturesGrid); err != nil {
				return err
			}

			logger.WithFields(logrus.Fields{"folds": folds, "metric": metric}).Info("starting grid search")
			result, err := tuning.Tune(ds, grid, folds, seed, metric)
			if err != nil {
				return err
			}
			logger.WithFields(logrus.Fields{
				"mean_score": result.MeanScore,
				"std_score":  result.StdScore,
			}).Info("grid search complete")

			return report.WriteJSON(os.Stdout, report.TuningReport{
				NumTrees:        result.NumTrees,
				MaxDepth:        result.MaxDepth,
				MinSamplesSplit: result.MinSamplesSplit,
				MaxFeatures:     result.MaxFeatures,
				MeanScore:       result.MeanScore,
				StdScore:        result.StdScore,
				Metric:          result.Metric,
			})
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "", "CSV file with training data")
	cmd.Flags().StringVar(&categoricalCols, "categorical", "", "comma-separated 0-based categorical feature column indices")
	cmd.Flags().StringVar(&treesGrid, "trees", "10", "comma-separated candidate tree counts")
	cmd.Flags().StringVar(&maxDepthGrid, "max-depth", "10", fmt.Sprintf("comma-separated candidate max depths, %d means unlimited", tuning.UnlimitedDepth))
	cmd.Flags().StringVar(&minSplitGrid, "min-samples-split", "2", "comma-separated candidate min-samples-split values")
	cmd.Flags().StringVar(&maxFeaturesGrid, "max-features", "1", "comma-separated candidate max-features values")
	cmd.Flags().IntVar(&folds, "folds", 5, "number of cross-validation folds")
	cmd.Flags().Int64Var(&seed, "seed", 1, "PRNG seed")
	cmd.Flags().StringVar(&metric, "metric", tuning.MetricAccuracy, "scoring metric: accuracy, f1, precision, recall")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}
