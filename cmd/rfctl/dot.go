package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wlattner/binaryforest/dataset"
	"github.com/wlattner/binaryforest/forest"
	"github.com/wlattner/binaryforest/internal/ingest"
)

func newDotCommand() *cobra.Command {
	var (
		dataFile        string
		categoricalCols string
		numTrees        int
		maxDepth        int
		minSamplesSplit int
		maxFeatures     int
		seed            int64
		treeIndex       int
		outFile         string
	)

	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Fit a forest and emit one tree's structure as a DOT graph",
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

			resolvedMaxFeatures := resolveMaxFeatures(maxFeatures, ds.NumFeatures())
			rf, err := forest.New(numTrees, maxDepth, minSamplesSplit, resolvedMaxFeatures, seed)
			if err != nil {
				return err
			}
			if err := rf.Fit(ds); err != nil {
				return err
			}

			if treeIndex < 0 || treeIndex >= len(rf.Trees) {
				return fmt.Errorf("rfctl: tree index %d out of range [0,%d)", treeIndex, len(rf.Trees))
			}

			dot := rf.Trees[treeIndex].DOT(ds)

			out := os.Stdout
			if outFile != "" {
				w, err := os.Create(outFile)
				if err != nil {
					return fmt.Errorf("rfctl: creating %s: %w", outFile, err)
				}
				defer w.Close()
				out = w
			}
			_, err = fmt.Fprintln(out, dot)
			return err
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "", "CSV file with training data")
	cmd.Flags().StringVar(&categoricalCols, "categorical", "", "comma-separated 0-based categorical feature column indices")
	cmd.Flags().IntVar(&numTrees, "trees", 10, "number of trees")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 10, "max tree depth")
	cmd.Flags().IntVar(&minSamplesSplit, "min-samples-split", 2, "min samples required to split a node")
	cmd.Flags().IntVar(&maxFeatures, "max-features", -1, "max features considered per split, -1 defaults to sqrt(F)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "PRNG seed")
	cmd.Flags().IntVar(&treeIndex, "tree", 0, "index of the tree to emit")
	cmd.Flags().StringVar(&outFile, "out", "", "output .dot file, defaults to stdout")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}
