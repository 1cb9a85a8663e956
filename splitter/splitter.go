// Package splitter implements deterministic, seeded dataset partitioning:
// a shuffled train/test split for simple holdout evaluation and a K-fold
// partition, the latter used by tuning.Tune.
package splitter

import (
	"fmt"
	"math/rand"

	"github.com/wlattner/binaryforest/dataset"
)

// Fold is one K-fold partition: Validation is one block, Train is the
// union of the remaining K-1 blocks.
type Fold struct {
	Train      *dataset.Dataset
	Validation *dataset.Dataset
}

// TrainTestSplit shuffles [0, N) with a seeded PRNG and takes the first
// N - floor(N*testFraction) indices as train, the remainder as test.
// testFraction must be in (0, 1).
func TrainTestSplit(ds *dataset.Dataset, testFraction float64, seed int64) (train, test *dataset.Dataset, err error) {
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("splitter: testFraction must be in (0,1), got %f", testFraction)
	}

	n := ds.NumSamples()
	idx := shuffledIndices(n, seed)

	nTest := int(float64(n) * testFraction)
	nTrain := n - nTest

	train = ds.Subset(idx[:nTrain])
	test = ds.Subset(idx[nTrain:])
	return train, test, nil
}

// KFoldSplit partitions ds into K contiguous blocks of a seeded
// shuffle, with sizes ceil(N/K) or floor(N/K) (the first N mod K folds
// get the larger size), and returns the K (train, validation) pairs.
// K must satisfy 2 <= K <= N.
func KFoldSplit(ds *dataset.Dataset, k int, seed int64) ([]Fold, error) {
	n := ds.NumSamples()
	if k < 2 || k > n {
		return nil, fmt.Errorf("splitter: k must satisfy 2 <= k <= n (n=%d), got %d", n, k)
	}

	idx := shuffledIndices(n, seed)
	blocks := partitionIndices(idx, k)

	folds := make([]Fold, k)
	for j := 0; j < k; j++ {
		var trainIdx []int
		for i, block := range blocks {
			if i == j {
				continue
			}
			trainIdx = append(trainIdx, block...)
		}
		folds[j] = Fold{
			Train:      ds.Subset(trainIdx),
			Validation: ds.Subset(blocks[j]),
		}
	}
	return folds, nil
}

// partitionIndices slices idx into k contiguous blocks; the first
// len(idx) mod k blocks get one extra element.
func partitionIndices(idx []int, k int) [][]int {
	n := len(idx)
	base := n / k
	extra := n % k

	blocks := make([][]int, k)
	pos := 0
	for i := 0; i < k; i++ {
		size := base
		if i < extra {
			size++
		}
		blocks[i] = idx[pos : pos+size]
		pos += size
	}
	return blocks
}

func shuffledIndices(n int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	rng.Shuffle(n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
	return idx
}
