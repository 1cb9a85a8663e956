package tree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wlattner/binaryforest/dataset"
)

func TestFitTrivialSeparability(t *testing.T) {
	x := [][]float64{
		{0, 1}, {0, 2}, {0, 3},
		{1, 4}, {1, 5}, {1, 6},
	}
	y := []int{0, 0, 0, 1, 1, 1}
	ds, err := dataset.New(x, y, nil, nil)
	require.NoError(t, err)

	tr := NewDecisionTree(3, 2, 2, rand.New(rand.NewSource(42)))
	require.NoError(t, tr.Fit(ds))

	split, ok := tr.Root.(*NumericSplitNode)
	require.True(t, ok, "expected root to be a numeric split, got %T", tr.Root)
	assert.Equal(t, 0, split.Attribute)
	assert.InDelta(t, 0.5, split.Threshold, 1e-9)

	for i := 0; i < ds.NumSamples(); i++ {
		assert.Equal(t, y[i], tr.Predict(ds.Row(i)))
	}
}

func TestFitConstantFeatureTerminatesAsLeaf(t *testing.T) {
	x := [][]float64{{1}, {1}, {1}, {1}, {1}, {1}}
	y := []int{0, 0, 0, 1, 1, 1}
	ds, err := dataset.New(x, y, nil, nil)
	require.NoError(t, err)

	tr := NewDecisionTree(5, 2, 1, rand.New(rand.NewSource(1)))
	require.NoError(t, tr.Fit(ds))

	_, ok := tr.Root.(*LeafNode)
	assert.True(t, ok, "expected a leaf when no split improves purity")
}

func TestFitCategoricalGrouping(t *testing.T) {
	var x [][]float64
	var y []int
	for _, c := range []int{0, 1, 2, 3} {
		for i := 0; i < 4; i++ {
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

	tr := NewDecisionTree(2, 2, 1, rand.New(rand.NewSource(7)))
	require.NoError(t, tr.Fit(ds))

	for i := 0; i < ds.NumSamples(); i++ {
		assert.Equal(t, y[i], tr.Predict(ds.Row(i)))
	}
}

func TestDepthNeverExceedsMaxDepth(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	n := 200
	var x [][]float64
	var y []int
	for i := 0; i < n; i++ {
		x = append(x, []float64{rng.Float64(), rng.Float64(), rng.Float64()})
		if rng.Float64() < 0.5 {
			y = append(y, 0)
		} else {
			y = append(y, 1)
		}
	}
	ds, err := dataset.New(x, y, nil, nil)
	require.NoError(t, err)

	tr := NewDecisionTree(3, 2, 3, rand.New(rand.NewSource(9)))
	require.NoError(t, tr.Fit(ds))
	assert.LessOrEqual(t, tr.Depth(), 3)
}

func TestAttributeUsedAtMostOncePerPath(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	n := 100
	var x [][]float64
	var y []int
	for i := 0; i < n; i++ {
		x = append(x, []float64{rng.Float64(), rng.Float64()})
		if x[i][0]+x[i][1] > 1 {
			y = append(y, 1)
		} else {
			y = append(y, 0)
		}
	}
	ds, err := dataset.New(x, y, nil, nil)
	require.NoError(t, err)

	tr := NewDecisionTree(10, 2, 2, rand.New(rand.NewSource(13)))
	require.NoError(t, tr.Fit(ds))

	var walk func(n Node, used map[int]bool)
	walk = func(n Node, used map[int]bool) {
		switch node := n.(type) {
		case *NumericSplitNode:
			require.False(t, used[node.Attribute], "attribute %d reused on a path", node.Attribute)
			next := make(map[int]bool, len(used)+1)
			for k := range used {
				next[k] = true
			}
			next[node.Attribute] = true
			walk(node.Left, next)
			walk(node.Right, next)
		case *CategoricalSplitNode:
			require.False(t, used[node.Attribute], "attribute %d reused on a path", node.Attribute)
			next := make(map[int]bool, len(used)+1)
			for k := range used {
				next[k] = true
			}
			next[node.Attribute] = true
			walk(node.Left, next)
			walk(node.Right, next)
		}
	}
	walk(tr.Root, map[int]bool{})
}

func TestFitRejectsEmptyDataset(t *testing.T) {
	tr := NewDecisionTree(3, 2, 1, rand.New(rand.NewSource(1)))
	err := tr.Fit(nil)
	assert.Error(t, err)
}

func TestDOTProducesGraphvizHeader(t *testing.T) {
	x := [][]float64{{0}, {0}, {1}, {1}}
	y := []int{0, 0, 1, 1}
	ds, err := dataset.New(x, y, []string{"f0"}, nil)
	require.NoError(t, err)

	tr := NewDecisionTree(2, 2, 1, rand.New(rand.NewSource(1)))
	require.NoError(t, tr.Fit(ds))

	out := tr.DOT(ds)
	assert.Contains(t, out, "digraph")
}
