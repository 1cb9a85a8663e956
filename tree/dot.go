package tree

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/wlattner/binaryforest/dataset"
)

// classZeroColor and classOneColor, the leaf fill colors, mirror the
// red/blue-by-predicted-class convention common to rendered decision
// trees; they carry no algorithmic meaning.
const (
	classZeroColor = "#a6cee3"
	classOneColor  = "#fb9a99"
)

// DOT renders the tree as a Graphviz DOT directed graph: leaves are
// filled by predicted class and show the training sample count;
// internal nodes show the feature name, split condition and sample
// count; edges are labelled "True" (left) and "False" (right). The
// format is stable for downstream graph-rendering tools and carries no
// part of the learning contract itself.
func (t *DecisionTree) DOT(ds *dataset.Dataset) string {
	gv := graphviz.New()
	graph, err := gv.Graph()
	if err != nil {
		return ""
	}

	id := 0
	var walk func(n Node) *cgraph.Node
	walk = func(n Node) *cgraph.Node {
		name := fmt.Sprintf("n%d", id)
		id++

		switch node := n.(type) {
		case *LeafNode:
			color := classZeroColor
			if node.Class == 1 {
				color = classOneColor
			}
			gn, _ := graph.CreateNode(name)
			gn.Set("label", fmt.Sprintf("class %d\\nsamples = %d", node.Class, node.NSamples))
			gn.Set("style", "filled")
			gn.Set("fillcolor", color)
			return gn
		case *NumericSplitNode:
			gn, _ := graph.CreateNode(name)
			gn.Set("label", fmt.Sprintf("%s <= %.3f\\nsamples = %d", ds.FeatureName(node.Attribute), node.Threshold, node.NSamples))
			left := walk(node.Left)
			right := walk(node.Right)
			addEdge(graph, gn, left, "True")
			addEdge(graph, gn, right, "False")
			return gn
		case *CategoricalSplitNode:
			gn, _ := graph.CreateNode(name)
			gn.Set("label", fmt.Sprintf("%s in %s\\nsamples = %d", ds.FeatureName(node.Attribute), categorySetString(node.Categories), node.NSamples))
			left := walk(node.Left)
			right := walk(node.Right)
			addEdge(graph, gn, left, "True")
			addEdge(graph, gn, right, "False")
			return gn
		}
		return nil
	}

	if t.Root != nil {
		walk(t.Root)
	}

	return graph.String()
}

func addEdge(graph *cgraph.Graph, from, to *cgraph.Node, label string) {
	e, err := graph.CreateEdge("", from, to)
	if err != nil {
		return
	}
	e.Set("label", label)
}

func categorySetString(cats map[int]struct{}) string {
	ids := make([]int, 0, len(cats))
	for c := range cats {
		ids = append(ids, c)
	}
	sort.Ints(ids)

	parts := make([]string, len(ids))
	for i, c := range ids {
		parts[i] = strconv.Itoa(c)
	}
	return "{" + strings.Join(parts, ",") + "}"
}
