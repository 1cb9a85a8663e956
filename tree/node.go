package tree

// Node is a tagged sum of the two node shapes a decision tree can have:
// a Leaf carries a predicted class and no split descriptor, an internal node carries
// exactly one of a numeric threshold or a categorical split set. The
// two split flavours are non-representable at the same time because
// they are distinct concrete types rather than optional fields on one
// struct.
type Node interface {
	Samples() int
	isNode()
}

// LeafNode predicts Class for every row that reaches it.
type LeafNode struct {
	Class    int
	NSamples int
}

func (l *LeafNode) Samples() int { return l.NSamples }
func (l *LeafNode) isNode()      {}

// NumericSplitNode routes row to Left when row[Attribute] <= Threshold,
// Right otherwise.
type NumericSplitNode struct {
	Attribute int
	Threshold float64
	Left      Node
	Right     Node
	NSamples  int
}

func (n *NumericSplitNode) Samples() int { return n.NSamples }
func (n *NumericSplitNode) isNode()      {}

// CategoricalSplitNode routes row to Left when the floored value of
// row[Attribute] (math.Floor, so -1.5 maps to -2, not to -1) is a
// member of Categories, Right otherwise.
type CategoricalSplitNode struct {
	Attribute  int
	Categories map[int]struct{}
	Left       Node
	Right      Node
	NSamples   int
}

func (n *CategoricalSplitNode) Samples() int { return n.NSamples }
func (n *CategoricalSplitNode) isNode()      {}
