package tree

import (
	"math"
	"sort"

	"github.com/wlattner/binaryforest/dataset"
)

// laplaceAlpha is the additive smoothing constant used everywhere this
// package computes a class probability from a count, so entropy never
// degenerates at a pure node and gainRatio stays well defined.
const laplaceAlpha = 1.0

// entropyStopThreshold is the minimum-entropy stopping rule from
// buildTree: a node whose entropy falls below this is emitted as a leaf
// without attempting a split. It is arbitrary and may be tuned.
const entropyStopThreshold = 0.01

// SplitEvaluator is tree-local scratch space: it computes information
// gain ratio for candidate splits over a fixed Dataset and memoises the
// winning split descriptor per attribute so the caller can retrieve it
// without recomputing. An evaluator is scoped to a single tree build,
// is not safe for concurrent use, and must not be shared across trees.
type SplitEvaluator struct {
	ds         *dataset.Dataset
	thresholds map[int]float64
	catSplits  map[int]map[int]struct{}
}

// NewSplitEvaluator returns an evaluator over ds.
func NewSplitEvaluator(ds *dataset.Dataset) *SplitEvaluator {
	return &SplitEvaluator{
		ds:         ds,
		thresholds: make(map[int]float64),
		catSplits:  make(map[int]map[int]struct{}),
	}
}

// Entropy returns the Laplace-smoothed Shannon entropy (base 2, alpha=1)
// of the label distribution over R. Entropy of an empty R is 0.
func (e *SplitEvaluator) Entropy(rows []int) float64 {
	if len(rows) == 0 {
		return 0
	}
	counts := e.classCounts(rows)
	return laplaceEntropy(counts, len(rows))
}

func (e *SplitEvaluator) classCounts(rows []int) [2]int {
	var c [2]int
	for _, r := range rows {
		c[e.ds.Label(r)]++
	}
	return c
}

// laplaceEntropy computes the alpha=1, k=2 Laplace-smoothed entropy for
// the given class counts observed over total rows.
func laplaceEntropy(counts [2]int, total int) float64 {
	const k = 2.0
	denom := float64(total) + laplaceAlpha*k
	p0 := (float64(counts[0]) + laplaceAlpha) / denom
	p1 := (float64(counts[1]) + laplaceAlpha) / denom
	return -(p0*log2(p0) + p1*log2(p1))
}

func log2(p float64) float64 {
	if p <= 0 {
		return 0
	}
	return math.Log2(p)
}

// MostCommon returns the majority class over R, breaking ties toward
// class 0.
func (e *SplitEvaluator) MostCommon(rows []int) int {
	counts := e.classCounts(rows)
	if counts[1] > counts[0] {
		return 1
	}
	return 0
}

// IsCategorical reports whether attribute a is a categorical column.
func (e *SplitEvaluator) IsCategorical(a int) bool {
	return e.ds.IsCategorical(a)
}

// GetSplitThreshold returns the memoised numeric threshold for
// attribute a, as set by the most recent ComputeIGR call for a.
func (e *SplitEvaluator) GetSplitThreshold(a int) float64 {
	return e.thresholds[a]
}

// GetCategoricalSplit returns a copy of the memoised left-side category
// set for attribute a, as set by the most recent ComputeIGR call for a.
func (e *SplitEvaluator) GetCategoricalSplit(a int) map[int]struct{} {
	src := e.catSplits[a]
	out := make(map[int]struct{}, len(src))
	for k := range src {
		out[k] = struct{}{}
	}
	return out
}

// ComputeIGR returns the information gain ratio for the best binary
// split of attribute a over R, given the parent entropy H, and
// memoises the winning split descriptor so Split(a, R) can retrieve it.
// A return of 0 means no informative split exists for a.
func (e *SplitEvaluator) ComputeIGR(a int, rows []int, parentEntropy float64) float64 {
	if e.ds.IsCategorical(a) {
		return e.computeCategoricalIGR(a, rows, parentEntropy)
	}
	return e.computeNumericIGR(a, rows, parentEntropy)
}

func (e *SplitEvaluator) computeNumericIGR(a int, rows []int, parentEntropy float64) float64 {
	n := len(rows)
	ordered := append([]int(nil), rows...)
	sort.Slice(ordered, func(i, j int) bool {
		return e.ds.Value(ordered[i], a) < e.ds.Value(ordered[j], a)
	})

	var leftCounts, rightCounts [2]int
	rightCounts = e.classCounts(ordered)
	leftSize, rightSize := 0, n

	var bestGain, bestThreshold float64
	found := false

	for i := 0; i < n-1; i++ {
		class := e.ds.Label(ordered[i])
		leftCounts[class]++
		rightCounts[class]--
		leftSize++
		rightSize--

		vi := e.ds.Value(ordered[i], a)
		vNext := e.ds.Value(ordered[i+1], a)
		if vi == vNext {
			continue
		}

		threshold := (vi + vNext) / 2.0

		leftEntropy := laplaceEntropy(leftCounts, leftSize)
		rightEntropy := laplaceEntropy(rightCounts, rightSize)
		weighted := (float64(leftSize)/float64(n))*leftEntropy + (float64(rightSize)/float64(n))*rightEntropy
		infoGain := parentEntropy - weighted
		gainRatio := gainRatioFromWeights(infoGain, float64(leftSize)/float64(n), float64(rightSize)/float64(n))

		if gainRatio > bestGain {
			bestGain = gainRatio
			bestThreshold = threshold
			found = true
		}
	}

	if !found {
		return 0
	}

	e.thresholds[a] = bestThreshold
	delete(e.catSplits, a)
	return bestGain
}

func gainRatioFromWeights(infoGain, wLeft, wRight float64) float64 {
	splitInfo := 0.0
	if wLeft > 0 {
		splitInfo -= wLeft * log2(wLeft)
	}
	if wRight > 0 {
		splitInfo -= wRight * log2(wRight)
	}
	if splitInfo == 0 {
		return 0
	}
	return infoGain / splitInfo
}

// computeCategoricalIGR ranks the categories present in R by purity
// (maxClassCount/total, ascending, ties broken by category id) and
// evaluates each non-trivial prefix of that order as a left/right
// split, retaining the prefix with maximum gain ratio.
func (e *SplitEvaluator) computeCategoricalIGR(a int, rows []int, parentEntropy float64) float64 {
	n := len(rows)
	catCounts := make(map[int][2]int)
	for _, r := range rows {
		cat := int(math.Floor(e.ds.Value(r, a)))
		c := catCounts[cat]
		c[e.ds.Label(r)]++
		catCounts[cat] = c
	}

	if len(catCounts) < 2 {
		return 0
	}

	cats := make([]int, 0, len(catCounts))
	for c := range catCounts {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		pi := purity(catCounts[cats[i]])
		pj := purity(catCounts[cats[j]])
		if pi != pj {
			return pi < pj
		}
		return cats[i] < cats[j]
	})

	var leftCounts, rightCounts [2]int
	rightCounts = e.classCounts(rows)
	leftSize, rightSize := 0, n

	var bestGain float64
	bestPrefix := 0

	for prefix := 1; prefix < len(cats); prefix++ {
		c := catCounts[cats[prefix-1]]
		leftCounts[0] += c[0]
		leftCounts[1] += c[1]
		rightCounts[0] -= c[0]
		rightCounts[1] -= c[1]
		leftSize += c[0] + c[1]
		rightSize -= c[0] + c[1]

		leftEntropy := laplaceEntropy(leftCounts, leftSize)
		rightEntropy := laplaceEntropy(rightCounts, rightSize)
		weighted := (float64(leftSize)/float64(n))*leftEntropy + (float64(rightSize)/float64(n))*rightEntropy
		infoGain := parentEntropy - weighted
		gainRatio := gainRatioFromWeights(infoGain, float64(leftSize)/float64(n), float64(rightSize)/float64(n))

		if gainRatio > bestGain {
			bestGain = gainRatio
			bestPrefix = prefix
		}
	}

	if bestPrefix == 0 {
		return 0
	}

	left := make(map[int]struct{}, bestPrefix)
	for _, c := range cats[:bestPrefix] {
		left[c] = struct{}{}
	}
	e.catSplits[a] = left
	delete(e.thresholds, a)
	return bestGain
}

func purity(counts [2]int) float64 {
	total := counts[0] + counts[1]
	if total == 0 {
		return 0
	}
	max := counts[0]
	if counts[1] > max {
		max = counts[1]
	}
	return float64(max) / float64(total)
}

// Split partitions R into left/right rows using the descriptor
// memoised by the most recent ComputeIGR call for attribute a.
func (e *SplitEvaluator) Split(a int, rows []int) (left, right []int) {
	if e.ds.IsCategorical(a) {
		cats := e.catSplits[a]
		for _, r := range rows {
			v := int(math.Floor(e.ds.Value(r, a)))
			if _, ok := cats[v]; ok {
				left = append(left, r)
			} else {
				right = append(right, r)
			}
		}
		return left, right
	}

	t := e.thresholds[a]
	for _, r := range rows {
		if e.ds.Value(r, a) <= t {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	return left, right
}
