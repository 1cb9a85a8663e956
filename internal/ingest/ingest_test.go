package ingest

import (
	"strings"
	"testing"
)

func TestReadTrainingCSVLastColumnIsTarget(t *testing.T) {
	r := strings.NewReader(trivialTrainingCSV)

	x, y, names, err := ReadTrainingCSV(r, nil)
	if err != nil {
		t.Error("unexpected error parsing training data:", err)
		return
	}

	if names[0] != "f0" || names[1] != "f1" {
		t.Error("expected feature names f0, f1, got:", names)
	}

	if len(x) != 6 {
		t.Error("expected 6 rows, got:", len(x))
	}

	if len(x[0]) != 2 {
		t.Error("expected 2 feature columns, got:", len(x[0]))
	}

	if y[3] != 1 {
		t.Error("expected 4th row's target to be 1, got:", y[3])
	}
}

func TestReadTrainingCSVRejectsNonBinaryTarget(t *testing.T) {
	r := strings.NewReader("f0,f1,y\n1,2,7\n")
	_, _, _, err := ReadTrainingCSV(r, nil)
	if err == nil {
		t.Error("expected error for non-binary target value")
	}
}

func TestReadTrainingCSVSkipsEmptyLines(t *testing.T) {
	r := strings.NewReader("f0,f1,y\n1,2,0\n\n3,4,1\n")
	x, y, _, err := ReadTrainingCSV(r, nil)
	if err != nil {
		t.Error("unexpected error:", err)
		return
	}
	if len(x) != 2 {
		t.Error("expected empty line to be skipped, got rows:", len(x))
	}
	if y[1] != 1 {
		t.Error("expected second row target 1, got:", y[1])
	}
}

func TestReadFeatureCSVHasNoTargetColumn(t *testing.T) {
	r := strings.NewReader("f0,f1\n1,2\n3,4\n")
	x, names, err := ReadFeatureCSV(r)
	if err != nil {
		t.Error("unexpected error:", err)
		return
	}
	if len(names) != 2 {
		t.Error("expected 2 feature names, got:", len(names))
	}
	if len(x) != 2 || len(x[0]) != 2 {
		t.Error("expected 2 rows of 2 columns, got:", x)
	}
}

func TestParseCategoricalIndices(t *testing.T) {
	idx, err := ParseCategoricalIndices("0, 2,5")
	if err != nil {
		t.Error("unexpected error:", err)
		return
	}
	if len(idx) != 3 || idx[0] != 0 || idx[1] != 2 || idx[2] != 5 {
		t.Error("unexpected parsed indices:", idx)
	}

	empty, err := ParseCategoricalIndices("")
	if err != nil {
		t.Error("unexpected error:", err)
	}
	if empty != nil {
		t.Error("expected nil for empty categorical spec, got:", empty)
	}

	_, err = ParseCategoricalIndices("a,b")
	if err == nil {
		t.Error("expected error for non-numeric categorical index")
	}
}

var trivialTrainingCSV = `f0,f1,y
0,1,0
0,2,0
0,3,0
1,4,1
1,5,1
1,6,1
`
