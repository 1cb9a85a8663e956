// Package forest implements a bootstrap-aggregated ensemble of binary
// decision trees: bootstrap sampling, data-parallel tree fitting with
// seeded, per-tree PRNGs, majority-vote prediction, Laplace-smoothed
// probability, and accuracy scoring. The parallel-fit worker pool
// follows the channel-based design the teacher used for its own
// Classifier.Fit.
package forest

import (
	"fmt"
	"math/rand"
	"runtime"

	"github.com/wlattner/binaryforest/dataset"
	"github.com/wlattner/binaryforest/metrics"
	"github.com/wlattner/binaryforest/tree"
)

// RandomForest is an ensemble of binary decision trees. Hyperparameters
// are fixed at construction; Trees is populated by Fit and is read-only
// afterward. |Trees| == NumTrees after a successful Fit.
type RandomForest struct {
	Trees           []*tree.DecisionTree
	NumTrees        int
	MaxDepth        int
	MinSamplesSplit int
	MaxFeatures     int
	Seed            int64
	NumWorkers      int

	// OOBAccuracy is the out-of-bag accuracy computed during Fit: the
	// forest-level accuracy when each row is scored only by the trees
	// whose bootstrap draw excluded it. This is additive telemetry, not
	// part of the core predict/score contract.
	OOBAccuracy float64
}

// New validates hyperparameters and returns an unfit RandomForest. T
// (numTrees) must be >= 1, maxDepth >= 1, minSamplesSplit >= 2,
// maxFeatures >= 1; maxFeatures is further checked against the
// dataset's feature count at Fit time.
func New(numTrees, maxDepth, minSamplesSplit, maxFeatures int, seed int64) (*RandomForest, error) {
	if numTrees < 1 {
		return nil, fmt.Errorf("forest: numTrees must be >= 1, got %d", numTrees)
	}
	if maxDepth < 1 {
		return nil, fmt.Errorf("forest: maxDepth must be >= 1, got %d", maxDepth)
	}
	if minSamplesSplit < 2 {
		return nil, fmt.Errorf("forest: minSamplesSplit must be >= 2, got %d", minSamplesSplit)
	}
	if maxFeatures < 1 {
		return nil, fmt.Errorf("forest: maxFeatures must be >= 1, got %d", maxFeatures)
	}

	return &RandomForest{
		NumTrees:        numTrees,
		MaxDepth:        maxDepth,
		MinSamplesSplit: minSamplesSplit,
		MaxFeatures:     maxFeatures,
		Seed:            seed,
		NumWorkers:      runtime.GOMAXPROCS(0),
	}, nil
}

type fitJob struct {
	index int
	seed  int64
}

type fitResult struct {
	index int
	tree  *tree.DecisionTree
	oob   oobVotes
}

// oobVotes accumulates class votes for the rows one tree left out of
// its bootstrap draw.
type oobVotes struct {
	row   []int
	class []int
}

// Fit clears any previously trained trees and grows NumTrees new ones
// in parallel, each from an independent bootstrap sample drawn with its
// own deterministically-derived PRNG. Tree ordering in f.Trees matches
// the i=0..T-1 enumeration regardless of scheduling, so downstream
// ordinal indexing (voting ties, "tree #k") stays reproducible for a
// given seed and worker count.
func (f *RandomForest) Fit(ds *dataset.Dataset) error {
	if ds == nil || ds.NumSamples() == 0 {
		return fmt.Errorf("forest: cannot fit an empty dataset")
	}
	if f.MaxFeatures > ds.NumFeatures() {
		return fmt.Errorf("forest: maxFeatures %d exceeds dataset feature count %d", f.MaxFeatures, ds.NumFeatures())
	}

	f.Trees = make([]*tree.DecisionTree, f.NumTrees)

	master := rand.New(rand.NewSource(f.Seed))
	childSeeds := make([]int64, f.NumTrees)
	for i := range childSeeds {
		childSeeds[i] = master.Int63()
	}

	nWorkers := f.NumWorkers
	if nWorkers < 1 {
		nWorkers = 1
	}

	jobs := make(chan fitJob)
	results := make(chan fitResult)

	for w := 0; w < nWorkers; w++ {
		go func() {
			for job := range jobs {
				results <- f.fitOne(ds, job)
			}
		}()
	}

	go func() {
		for i := 0; i < f.NumTrees; i++ {
			jobs <- fitJob{index: i, seed: childSeeds[i]}
		}
		close(jobs)
	}()

	classVotes := make([][2]int, ds.NumSamples())
	for i := 0; i < f.NumTrees; i++ {
		res := <-results
		f.Trees[res.index] = res.tree
		for j, row := range res.oob.row {
			classVotes[row][res.oob.class[j]]++
		}
	}

	f.OOBAccuracy = computeOOBAccuracy(classVotes, ds)
	return nil
}

func (f *RandomForest) fitOne(ds *dataset.Dataset, job fitJob) fitResult {
	rng := rand.New(rand.NewSource(job.seed))

	idx, inBag := bootstrapSample(ds.NumSamples(), rng)
	sample := ds.Subset(idx)

	t := tree.NewDecisionTree(f.MaxDepth, f.MinSamplesSplit, f.MaxFeatures, rng)
	// bootstrap draws are never empty, so Fit cannot fail here.
	_ = t.Fit(sample)

	var oob oobVotes
	for row, in := range inBag {
		if in {
			continue
		}
		oob.row = append(oob.row, row)
		oob.class = append(oob.class, t.Predict(ds.Row(row)))
	}

	return fitResult{index: job.index, tree: t, oob: oob}
}

// bootstrapSample draws n indices with replacement and reports which
// source rows were never drawn (out-of-bag).
func bootstrapSample(n int, rng *rand.Rand) (idx []int, inBag []bool) {
	idx = make([]int, n)
	inBag = make([]bool, n)
	for i := range idx {
		draw := rng.Intn(n)
		idx[i] = draw
		inBag[draw] = true
	}
	return idx, inBag
}

func computeOOBAccuracy(classVotes [][2]int, ds *dataset.Dataset) float64 {
	var correct, scored int
	for row, votes := range classVotes {
		if votes[0] == 0 && votes[1] == 0 {
			continue // every tree had this row in-bag
		}
		scored++
		pred := vote(votes)
		if pred == ds.Label(row) {
			correct++
		}
	}
	if scored == 0 {
		return 0
	}
	return float64(correct) / float64(scored)
}

// vote applies the forest's documented tie-break rule: class 1 wins
// ties, otherwise the class with more votes wins.
func vote(votes [2]int) int {
	if votes[0] > votes[1] {
		return 0
	}
	return 1
}

// Predict returns the ensemble's majority-vote class for a single
// feature vector. Ties favor class 1 (votes[0] > votes[1] -> 0, else
// 1); this is the documented convention, asserted by forest tests.
func (f *RandomForest) Predict(row []float64) int {
	var votes [2]int
	for _, t := range f.Trees {
		votes[t.Predict(row)]++
	}
	return vote(votes)
}

// PredictMatrix applies Predict row-wise.
func (f *RandomForest) PredictMatrix(x [][]float64) []int {
	out := make([]int, len(x))
	for i, row := range x {
		out[i] = f.Predict(row)
	}
	return out
}

// PredictProbability returns the Laplace-smoothed probability of class
// 1 for row: (positiveVotes + 1) / (NumTrees + 2), which keeps the
// result strictly within (0, 1) regardless of vote unanimity.
func (f *RandomForest) PredictProbability(row []float64) float64 {
	positive := 0
	for _, t := range f.Trees {
		if t.Predict(row) == 1 {
			positive++
		}
	}
	return float64(positive+1) / float64(f.NumTrees+2)
}

// Score returns the fraction of ds correctly predicted.
func (f *RandomForest) Score(ds *dataset.Dataset) (float64, error) {
	n := ds.NumSamples()
	pred := make([]int, n)
	for i := 0; i < n; i++ {
		pred[i] = f.Predict(ds.Row(i))
	}
	return metrics.Accuracy(pred, ds.Labels())
}
