// Package tree implements a single binary decision tree for binary
// classification over mixed numeric/categorical tabular data, following
// the recursive induction and split-selection design used by the
// forest package that embeds it. The split-scoring machinery lives in
// SplitEvaluator (spliteval.go) and DOT serialisation in dot.go; this
// file owns recursion and prediction.
package tree

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/wlattner/binaryforest/dataset"
)

// DecisionTree is a binary classification tree. Hyperparameters are
// fixed at construction; the tree is built once by Fit and is read-only
// afterward. Each tree owns a private PRNG, used only for candidate
// feature sampling, so concurrent trees never share mutable state.
type DecisionTree struct {
	Root            Node
	MaxDepth        int
	MinSamplesSplit int
	MaxFeatures     int
	rng             *rand.Rand
}

// NewDecisionTree returns a tree configured with the given
// hyperparameters and PRNG. rng must not be shared with any other tree
// being built concurrently.
func NewDecisionTree(maxDepth, minSamplesSplit, maxFeatures int, rng *rand.Rand) *DecisionTree {
	return &DecisionTree{
		MaxDepth:        maxDepth,
		MinSamplesSplit: minSamplesSplit,
		MaxFeatures:     maxFeatures,
		rng:             rng,
	}
}

// Fit constructs the tree from ds via recursive induction (buildTree).
func (t *DecisionTree) Fit(ds *dataset.Dataset) error {
	if ds == nil || ds.NumSamples() == 0 {
		return fmt.Errorf("tree: cannot fit an empty dataset")
	}

	eval := NewSplitEvaluator(ds)

	rows := make([]int, ds.NumSamples())
	for i := range rows {
		rows[i] = i
	}

	attrs := make([]int, ds.NumFeatures())
	for i := range attrs {
		attrs[i] = i
	}

	t.Root = t.buildTree(eval, rows, attrs, 0)
	return nil
}

// buildTree is the core recursion (spec.md §4.3): compute entropy,
// apply the stopping rule, otherwise select the best candidate
// attribute by gain ratio, split, and recurse. Each attribute is used
// at most once along any root-to-leaf path.
func (t *DecisionTree) buildTree(eval *SplitEvaluator, rows, attrs []int, depth int) Node {
	h := eval.Entropy(rows)

	if len(attrs) == 0 || h < entropyStopThreshold || depth >= t.MaxDepth || len(rows) < t.MinSamplesSplit {
		return &LeafNode{Class: eval.MostCommon(rows), NSamples: len(rows)}
	}

	candidates := attrs
	if len(attrs) > t.MaxFeatures {
		candidates = fisherYatesSample(attrs, t.MaxFeatures, t.rng)
	}

	bestAttr := -1
	bestIGR := 0.0
	for _, a := range candidates {
		igr := eval.ComputeIGR(a, rows, h)
		if igr > bestIGR {
			bestIGR = igr
			bestAttr = a
		}
	}

	if bestAttr < 0 || bestIGR <= 0 {
		return &LeafNode{Class: eval.MostCommon(rows), NSamples: len(rows)}
	}

	// recompute the winning attribute's descriptor over these rows before
	// splitting; descriptors are memoised per attribute, so this
	// re-derives the same descriptor the loop above stored for bestAttr.
	eval.ComputeIGR(bestAttr, rows, h)

	left, right := eval.Split(bestAttr, rows)
	if len(left) == 0 || len(right) == 0 {
		return &LeafNode{Class: eval.MostCommon(rows), NSamples: len(rows)}
	}

	remaining := removeAttr(attrs, bestAttr)

	leftNode := t.buildTree(eval, left, remaining, depth+1)
	rightNode := t.buildTree(eval, right, remaining, depth+1)

	// collapse identical sibling leaves: an optional local optimisation,
	// observationally equivalent to leaving them unmerged.
	if lf, ok := leftNode.(*LeafNode); ok {
		if rf, ok := rightNode.(*LeafNode); ok && lf.Class == rf.Class {
			return &LeafNode{Class: lf.Class, NSamples: len(rows)}
		}
	}

	if eval.IsCategorical(bestAttr) {
		return &CategoricalSplitNode{
			Attribute:  bestAttr,
			Categories: eval.GetCategoricalSplit(bestAttr),
			Left:       leftNode,
			Right:      rightNode,
			NSamples:   len(rows),
		}
	}

	return &NumericSplitNode{
		Attribute: bestAttr,
		Threshold: eval.GetSplitThreshold(bestAttr),
		Left:      leftNode,
		Right:     rightNode,
		NSamples:  len(rows),
	}
}

// removeAttr returns a copy of attrs without a, preserving relative order.
func removeAttr(attrs []int, a int) []int {
	out := make([]int, 0, len(attrs)-1)
	for _, v := range attrs {
		if v != a {
			out = append(out, v)
		}
	}
	return out
}

// fisherYatesSample draws a k-sized sample of attrs using the partial
// Fisher-Yates shuffle (Algorithm P, Knuth TAOCP Vol. 2, p. 145), the
// same scheme the teacher used for per-split feature sampling.
func fisherYatesSample(attrs []int, k int, rng *rand.Rand) []int {
	buf := append([]int(nil), attrs...)
	n := len(buf)
	for i := 0; i < k && i < n-1; i++ {
		j := i + rng.Intn(n-i)
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf[:k]
}

// Predict descends from the root and returns the predicted class for a
// single feature vector.
func (t *DecisionTree) Predict(row []float64) int {
	n := t.Root
	for {
		switch node := n.(type) {
		case *LeafNode:
			return node.Class
		case *NumericSplitNode:
			if row[node.Attribute] <= node.Threshold {
				n = node.Left
			} else {
				n = node.Right
			}
		case *CategoricalSplitNode:
			v := int(math.Floor(row[node.Attribute]))
			if _, ok := node.Categories[v]; ok {
				n = node.Left
			} else {
				n = node.Right
			}
		default:
			panic("tree: unknown node type")
		}
	}
}

// Depth returns the number of edges on the longest root-to-leaf path.
func (t *DecisionTree) Depth() int {
	return depth(t.Root)
}

func depth(n Node) int {
	switch node := n.(type) {
	case *LeafNode:
		return 0
	case *NumericSplitNode:
		return 1 + maxInt(depth(node.Left), depth(node.Right))
	case *CategoricalSplitNode:
		return 1 + maxInt(depth(node.Left), depth(node.Right))
	}
	return 0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
