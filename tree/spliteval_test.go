package tree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wlattner/binaryforest/dataset"
)

func allRows(ds *dataset.Dataset) []int {
	rows := make([]int, ds.NumSamples())
	for i := range rows {
		rows[i] = i
	}
	return rows
}

func TestEntropyEmptyIsZero(t *testing.T) {
	ds, err := dataset.New([][]float64{{0}}, []int{0}, nil, nil)
	require.NoError(t, err)
	e := NewSplitEvaluator(ds)
	assert.Equal(t, 0.0, e.Entropy(nil))
}

func TestEntropyBalancedIsNearOne(t *testing.T) {
	x := make([][]float64, 0)
	y := make([]int, 0)
	for i := 0; i < 50; i++ {
		x = append(x, []float64{float64(i)})
		y = append(y, 0)
		x = append(x, []float64{float64(i)})
		y = append(y, 1)
	}
	ds, err := dataset.New(x, y, nil, nil)
	require.NoError(t, err)
	e := NewSplitEvaluator(ds)
	h := e.Entropy(allRows(ds))
	assert.InDelta(t, 1.0, h, 0.01)
	assert.LessOrEqual(t, h, 1.0+1e-9)
}

// grounded on the teacher's tree/split_test.go sweep fixture, adapted
// to gain-ratio scoring instead of gini-impurity-reduction scoring.
func TestNumericSplitFindsMidpoint(t *testing.T) {
	xi := []float64{0.089, 0.098, 0.157, 0.177, 0.470, 0.562, 0.606, 0.646, 0.802, 0.924}
	y := []int{0, 0, 0, 0, 0, 1, 1, 1, 1, 0}

	x := make([][]float64, len(xi))
	for i, v := range xi {
		x[i] = []float64{v}
	}
	ds, err := dataset.New(x, y, nil, nil)
	require.NoError(t, err)

	e := NewSplitEvaluator(ds)
	rows := allRows(ds)
	h := e.Entropy(rows)
	igr := e.ComputeIGR(0, rows, h)

	assert.Greater(t, igr, 0.0)
	wantThreshold := (xi[4] + xi[5]) / 2.0
	assert.InDelta(t, wantThreshold, e.GetSplitThreshold(0), 1e-9)
}

func TestNumericSplitConstantFeatureReturnsZero(t *testing.T) {
	x := make([][]float64, 10)
	y := make([]int, 10)
	for i := range x {
		x[i] = []float64{1.1}
		y[i] = i % 2
	}
	ds, err := dataset.New(x, y, nil, nil)
	require.NoError(t, err)

	e := NewSplitEvaluator(ds)
	rows := allRows(ds)
	igr := e.ComputeIGR(0, rows, e.Entropy(rows))
	assert.Equal(t, 0.0, igr)
}

func TestCategoricalSplitGroupsByPurity(t *testing.T) {
	// categories 0,1 -> label 0; categories 2,3 -> label 1.
	var x [][]float64
	var y []int
	for _, c := range []int{0, 1, 2, 3} {
		for i := 0; i < 5; i++ {
			x = append(x, []float64{float64(c)})
			if c < 2 {
				y = append(y, 0)
			} else {
				y = append(y, 1)
			}
		}
	}
	ds, err := dataset.New(x, y, nil, []int{0})
	require.NoError(t, err)

	e := NewSplitEvaluator(ds)
	rows := allRows(ds)
	h := e.Entropy(rows)
	igr := e.ComputeIGR(0, rows, h)
	require.Greater(t, igr, 0.0)

	left := e.GetCategoricalSplit(0)
	_, has0 := left[0]
	_, has1 := left[1]
	_, has2 := left[2]
	_, has3 := left[3]

	sameSide := has0 == has1 && has2 == has3 && has0 != has2
	assert.True(t, sameSide, "expected {0,1} and {2,3} to land on opposite sides, got %v", left)
}

func TestMostCommonTiesTowardZero(t *testing.T) {
	ds, err := dataset.New([][]float64{{0}, {0}}, []int{0, 1}, nil, nil)
	require.NoError(t, err)
	e := NewSplitEvaluator(ds)
	assert.Equal(t, 0, e.MostCommon(allRows(ds)))
}

func TestSplitUsesMemoisedNumericThreshold(t *testing.T) {
	x := [][]float64{{1}, {2}, {3}, {4}}
	y := []int{0, 0, 1, 1}
	ds, err := dataset.New(x, y, nil, nil)
	require.NoError(t, err)

	e := NewSplitEvaluator(ds)
	rows := allRows(ds)
	e.ComputeIGR(0, rows, e.Entropy(rows))
	left, right := e.Split(0, rows)

	assert.ElementsMatch(t, []int{0, 1}, left)
	assert.ElementsMatch(t, []int{2, 3}, right)
}

func TestLog2OfZeroIsZero(t *testing.T) {
	assert.Equal(t, 0.0, log2(0))
	assert.True(t, math.Log2(0.5) == log2(0.5))
}
