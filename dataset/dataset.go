// Package dataset implements the immutable feature matrix + label vector
// contract consumed by tree and forest. It mirrors the shape of the
// teacher's [][]float64/[]string pair, but backs the matrix with
// gonum/mat so row access and subsetting stay cheap and typed.
package dataset

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Dataset is an immutable N x F feature matrix with an integer binary
// label per row, an optional feature-name vector, and the set of
// feature indices treated as categorical. A Dataset never mutates after
// New/Subset return it.
type Dataset struct {
	x            *mat.Dense
	y            []int
	featureNames []string
	categorical  map[int]struct{}
}

// New validates and constructs a Dataset. Labels must be binary (0/1),
// rows must all have length len(X[0]), and featureNames (if provided)
// must have one entry per column. categorical holds the indices of
// columns whose values are floored to whole numbers at split time
// (negative fractions round toward minus infinity, not toward zero).
func New(x [][]float64, y []int, featureNames []string, categorical []int) (*Dataset, error) {
	n := len(x)
	if n == 0 {
		return nil, fmt.Errorf("dataset: no rows")
	}
	if len(y) != n {
		return nil, fmt.Errorf("dataset: label count %d does not match row count %d", len(y), n)
	}

	f := len(x[0])
	flat := make([]float64, 0, n*f)
	for i, row := range x {
		if len(row) != f {
			return nil, fmt.Errorf("dataset: row %d has %d columns, expected %d", i, len(row), f)
		}
		flat = append(flat, row...)
	}

	for i, label := range y {
		if label != 0 && label != 1 {
			return nil, fmt.Errorf("dataset: label at row %d is %d, must be 0 or 1", i, label)
		}
	}

	if featureNames != nil && len(featureNames) != f {
		return nil, fmt.Errorf("dataset: %d feature names provided, expected %d", len(featureNames), f)
	}

	catSet := make(map[int]struct{}, len(categorical))
	for _, c := range categorical {
		if c < 0 || c >= f {
			return nil, fmt.Errorf("dataset: categorical index %d out of range [0,%d)", c, f)
		}
		catSet[c] = struct{}{}
	}

	names := featureNames
	if names != nil {
		names = append([]string(nil), featureNames...)
	}

	return &Dataset{
		x:            mat.NewDense(n, f, flat),
		y:            append([]int(nil), y...),
		featureNames: names,
		categorical:  catSet,
	}, nil
}

// NumSamples returns N, the number of rows.
func (d *Dataset) NumSamples() int { return d.x.RawMatrix().Rows }

// NumFeatures returns F, the number of columns.
func (d *Dataset) NumFeatures() int { return d.x.RawMatrix().Cols }

// Row returns a copy of the feature vector for row i.
func (d *Dataset) Row(i int) []float64 {
	row := make([]float64, d.NumFeatures())
	mat.Row(row, i, d.x)
	return row
}

// Value returns the raw value at row i, attribute a.
func (d *Dataset) Value(i, a int) float64 {
	return d.x.At(i, a)
}

// Label returns the binary label for row i.
func (d *Dataset) Label(i int) int { return d.y[i] }

// Labels returns a copy of the full label vector.
func (d *Dataset) Labels() []int {
	return append([]int(nil), d.y...)
}

// FeatureNames returns a copy of the feature-name vector, or nil if none
// was provided at construction.
func (d *Dataset) FeatureNames() []string {
	if d.featureNames == nil {
		return nil
	}
	return append([]string(nil), d.featureNames...)
}

// FeatureName returns the name of attribute a, or "Feat <a>" if no
// names were supplied.
func (d *Dataset) FeatureName(a int) string {
	if d.featureNames == nil || a < 0 || a >= len(d.featureNames) {
		return fmt.Sprintf("Feat %d", a)
	}
	return d.featureNames[a]
}

// IsCategorical reports whether attribute a is a categorical column.
func (d *Dataset) IsCategorical(a int) bool {
	_, ok := d.categorical[a]
	return ok
}

// Categorical returns a copy of the categorical-attribute index set.
func (d *Dataset) Categorical() map[int]struct{} {
	out := make(map[int]struct{}, len(d.categorical))
	for k := range d.categorical {
		out[k] = struct{}{}
	}
	return out
}

// Subset builds a new logical Dataset whose rows are d's rows reordered
// (and possibly repeated, as with a bootstrap draw) according to idx.
// The returned Dataset shares no mutable state with d.
func (d *Dataset) Subset(idx []int) *Dataset {
	f := d.NumFeatures()
	flat := make([]float64, len(idx)*f)
	y := make([]int, len(idx))

	for i, src := range idx {
		copy(flat[i*f:(i+1)*f], d.Row(src))
		y[i] = d.y[src]
	}

	return &Dataset{
		x:            mat.NewDense(len(idx), f, flat),
		y:            y,
		featureNames: d.FeatureNames(),
		categorical:  d.Categorical(),
	}
}
