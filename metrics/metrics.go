// Package metrics computes binary classification metrics over
// prediction/ground-truth label pairs: accuracy, precision, recall, F1
// and the confusion matrix, with class 1 as positive.
package metrics

import "fmt"

// ConfusionMatrix holds the four binary outcome counts with class 1 as
// positive.
type ConfusionMatrix struct {
	TP, FP, TN, FN int
}

// N is the total number of predictions the matrix was built from.
func (c ConfusionMatrix) N() int {
	return c.TP + c.FP + c.TN + c.FN
}

// Confusion builds a ConfusionMatrix from equal-length prediction and
// ground-truth vectors. A length mismatch is a caller error and fails
// fast.
func Confusion(yPred, yTrue []int) (ConfusionMatrix, error) {
	if len(yPred) != len(yTrue) {
		return ConfusionMatrix{}, fmt.Errorf("metrics: prediction length %d does not match ground truth length %d", len(yPred), len(yTrue))
	}

	var c ConfusionMatrix
	for i := range yPred {
		switch {
		case yTrue[i] == 1 && yPred[i] == 1:
			c.TP++
		case yTrue[i] == 0 && yPred[i] == 1:
			c.FP++
		case yTrue[i] == 0 && yPred[i] == 0:
			c.TN++
		case yTrue[i] == 1 && yPred[i] == 0:
			c.FN++
		}
	}
	return c, nil
}

// Accuracy returns (TP+TN)/N.
func Accuracy(yPred, yTrue []int) (float64, error) {
	c, err := Confusion(yPred, yTrue)
	if err != nil {
		return 0, err
	}
	if c.N() == 0 {
		return 0, nil
	}
	return float64(c.TP+c.TN) / float64(c.N()), nil
}

// Precision returns TP/(TP+FP), or 0 when the denominator is 0.
func Precision(yPred, yTrue []int) (float64, error) {
	c, err := Confusion(yPred, yTrue)
	if err != nil {
		return 0, err
	}
	return c.Precision(), nil
}

// Recall returns TP/(TP+FN), or 0 when the denominator is 0.
func Recall(yPred, yTrue []int) (float64, error) {
	c, err := Confusion(yPred, yTrue)
	if err != nil {
		return 0, err
	}
	return c.Recall(), nil
}

// F1 returns 2*P*R/(P+R), or 0 when P+R = 0.
func F1(yPred, yTrue []int) (float64, error) {
	c, err := Confusion(yPred, yTrue)
	if err != nil {
		return 0, err
	}
	return c.F1(), nil
}

func (c ConfusionMatrix) Precision() float64 {
	if c.TP+c.FP == 0 {
		return 0
	}
	return float64(c.TP) / float64(c.TP+c.FP)
}

func (c ConfusionMatrix) Recall() float64 {
	if c.TP+c.FN == 0 {
		return 0
	}
	return float64(c.TP) / float64(c.TP+c.FN)
}

func (c ConfusionMatrix) F1() float64 {
	p, r := c.Precision(), c.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

func (c ConfusionMatrix) Accuracy() float64 {
	if c.N() == 0 {
		return 0
	}
	return float64(c.TP+c.TN) / float64(c.N())
}
