package forest

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wlattner/binaryforest/dataset"
)

func trivialDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	x := [][]float64{
		{0, 1}, {0, 2}, {0, 3},
		{1, 4}, {1, 5}, {1, 6},
	}
	y := []int{0, 0, 0, 1, 1, 1}
	ds, err := dataset.New(x, y, nil, nil)
	require.NoError(t, err)
	return ds
}

func TestFitTrivialSeparabilityAccuracyOne(t *testing.T) {
	ds := trivialDataset(t)
	rf, err := New(3, 3, 2, 2, 42)
	require.NoError(t, err)
	require.NoError(t, rf.Fit(ds))

	score, err := rf.Score(ds)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestFitIsDeterministicUnderSeed(t *testing.T) {
	ds := trivialDataset(t)

	rf1, _ := New(10, 4, 2, 2, 123)
	rf2, _ := New(10, 4, 2, 2, 123)
	require.NoError(t, rf1.Fit(ds))
	require.NoError(t, rf2.Fit(ds))

	for i := 0; i < ds.NumSamples(); i++ {
		row := ds.Row(i)
		assert.Equal(t, rf1.Predict(row), rf2.Predict(row))
		assert.Equal(t, rf1.PredictProbability(row), rf2.PredictProbability(row))
	}
}

func TestFitDeterministicAcrossWorkerCounts(t *testing.T) {
	ds := trivialDataset(t)

	rf1, _ := New(12, 4, 2, 2, 99)
	rf1.NumWorkers = 1
	rf2, _ := New(12, 4, 2, 2, 99)
	rf2.NumWorkers = 4

	require.NoError(t, rf1.Fit(ds))
	require.NoError(t, rf2.Fit(ds))

	for i := 0; i < ds.NumSamples(); i++ {
		row := ds.Row(i)
		assert.Equal(t, rf1.Predict(row), rf2.Predict(row))
	}
}

func TestAccuracyIdentity(t *testing.T) {
	ds := trivialDataset(t)
	rf, _ := New(5, 3, 2, 2, 7)
	require.NoError(t, rf.Fit(ds))

	pred := rf.PredictMatrix(rowsOf(ds))
	// hand-compute accuracy and compare to Score
	correct := 0
	for i, p := range pred {
		if p == ds.Label(i) {
			correct++
		}
	}
	want := float64(correct) / float64(ds.NumSamples())

	got, err := rf.Score(ds)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func rowsOf(ds *dataset.Dataset) [][]float64 {
	out := make([][]float64, ds.NumSamples())
	for i := range out {
		out[i] = ds.Row(i)
	}
	return out
}

func TestProbabilitySmoothingSingleTree(t *testing.T) {
	ds := trivialDataset(t)
	rf, _ := New(1, 3, 2, 2, 42)
	require.NoError(t, rf.Fit(ds))

	p1 := rf.PredictProbability(ds.Row(5)) // label 1 region
	p0 := rf.PredictProbability(ds.Row(0)) // label 0 region

	if rf.Trees[0].Predict(ds.Row(5)) == 1 {
		assert.InDelta(t, 2.0/3.0, p1, 1e-9)
	} else {
		assert.InDelta(t, 1.0/3.0, p1, 1e-9)
	}
	if rf.Trees[0].Predict(ds.Row(0)) == 0 {
		assert.InDelta(t, 1.0/3.0, p0, 1e-9)
	} else {
		assert.InDelta(t, 2.0/3.0, p0, 1e-9)
	}
}

func TestProbabilityBounds(t *testing.T) {
	ds := trivialDataset(t)
	rf, _ := New(9, 3, 2, 2, 5)
	require.NoError(t, rf.Fit(ds))

	for i := 0; i < ds.NumSamples(); i++ {
		p := rf.PredictProbability(ds.Row(i))
		assert.GreaterOrEqual(t, p, 1.0/11.0)
		assert.LessOrEqual(t, p, 10.0/11.0)
	}
}

func TestVoteTieBreaksTowardOne(t *testing.T) {
	assert.Equal(t, 1, vote([2]int{1, 1}))
	assert.Equal(t, 0, vote([2]int{2, 1}))
	assert.Equal(t, 1, vote([2]int{1, 2}))
}

func TestBootstrapSampleReproducibleAcrossRuns(t *testing.T) {
	idx1, inBag1 := bootstrapSample(100, rand.New(rand.NewSource(7)))
	idx2, inBag2 := bootstrapSample(100, rand.New(rand.NewSource(7)))

	assert.Equal(t, idx1, idx2)
	assert.Equal(t, inBag1, inBag2)
}

func TestNewRejectsInvalidHyperparameters(t *testing.T) {
	_, err := New(0, 3, 2, 1, 1)
	assert.Error(t, err)
	_, err = New(3, 0, 2, 1, 1)
	assert.Error(t, err)
	_, err = New(3, 3, 1, 1, 1)
	assert.Error(t, err)
	_, err = New(3, 3, 2, 0, 1)
	assert.Error(t, err)
}

func TestFitRejectsMaxFeaturesExceedingDataset(t *testing.T) {
	ds := trivialDataset(t)
	rf, err := New(3, 3, 2, 5, 1)
	require.NoError(t, err)
	assert.Error(t, rf.Fit(ds))
}
