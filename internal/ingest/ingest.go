// Package ingest binds the core engine's dataset-agnostic contract to
// CSV files: a header row followed by data rows, with numeric and
// categorical columns alike stored as reals (categorical values are
// floored to whole numbers downstream, at split time). Empty lines
// are skipped. This mirrors the shape of the teacher's own parse.go,
// adjusted so the last column is the target rather than the first.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadTrainingCSV reads a header row naming every column, then data
// rows where the last column is the binary ("0"/"1") target and the
// remaining columns are features. categorical is not used here: every
// feature column, categorical or not, is parsed as a real, and the
// returned values carry no categorical marking (dataset.New takes the
// categorical indices).
func ReadTrainingCSV(r io.Reader, categorical []int) (x [][]float64, y []int, featureNames []string, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("ingest: reading header: %w", err)
	}
	if len(header) < 2 {
		return nil, nil, nil, fmt.Errorf("ingest: expected a header with at least one feature column and a target column, got %d", len(header))
	}
	featureNames = header[:len(header)-1]

	for {
		row, rerr := reader.Read()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return nil, nil, nil, fmt.Errorf("ingest: reading row: %w", rerr)
		}
		if len(row) == 0 {
			continue
		}
		if len(row) != len(header) {
			return nil, nil, nil, fmt.Errorf("ingest: row has %d columns, header has %d", len(row), len(header))
		}

		xi, perr := parseFeatureRow(row[:len(row)-1])
		if perr != nil {
			return nil, nil, nil, perr
		}
		x = append(x, xi)

		label, lerr := strconv.Atoi(strings.TrimSpace(row[len(row)-1]))
		if lerr != nil || (label != 0 && label != 1) {
			return nil, nil, nil, fmt.Errorf("ingest: target value %q is not 0 or 1", row[len(row)-1])
		}
		y = append(y, label)
	}

	return x, y, featureNames, nil
}

// ReadFeatureCSV reads a header row plus feature-only rows (no target
// column), as used by the predict subcommand on unlabeled data.
func ReadFeatureCSV(r io.Reader) (x [][]float64, featureNames []string, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	featureNames, err = reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("ingest: reading header: %w", err)
	}

	for {
		row, rerr := reader.Read()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return nil, nil, fmt.Errorf("ingest: reading row: %w", rerr)
		}
		if len(row) == 0 {
			continue
		}
		xi, perr := parseFeatureRow(row)
		if perr != nil {
			return nil, nil, perr
		}
		x = append(x, xi)
	}

	return x, featureNames, nil
}

func parseFeatureRow(cols []string) ([]float64, error) {
	xi := make([]float64, len(cols))
	for i, v := range cols {
		fv, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("ingest: parsing feature column %d value %q: %w", i, v, err)
		}
		xi[i] = fv
	}
	return xi, nil
}

// ParseCategoricalIndices parses a comma-separated list of 0-based
// feature column indices, e.g. "0,3,5", as supplied on the command
// line. An empty string yields no categorical columns.
func ParseCategoricalIndices(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("ingest: invalid categorical column index %q", part)
		}
		out = append(out, idx)
	}
	return out, nil
}
