package liquify

// NodeKind identifies the concrete node variant. The values are part of the
// serialized format.
type NodeKind uint32

const (
	KindInvalid NodeKind = iota
	KindMoveTo
	KindLineTo
	KindCurveTo
	KindClosePath
)

func (k NodeKind) String() string {
	switch k {
	case KindMoveTo:
		return "move_to"
	case KindLineTo:
		return "line_to"
	case KindCurveTo:
		return "curve_to"
	case KindClosePath:
		return "close_path"
	}
	return "invalid"
}

// NodeType controls how the smoothing solver and control point drags treat
// the tangents at a node.
type NodeType uint32

const (
	// Cusp leaves both tangents independent.
	Cusp NodeType = iota
	// Smooth keeps the tangents collinear.
	Smooth
	// Symmetrical keeps the tangents collinear and of equal length.
	Symmetrical
	// Autosmooth lets the smoothing solver place the control points.
	Autosmooth

	nodeTypeCount
)

// Next returns the node type that follows t in the cycle.
func (t NodeType) Next() NodeType {
	return (t + 1) % nodeTypeCount
}

func (t NodeType) String() string {
	switch t {
	case Cusp:
		return "cusp"
	case Smooth:
		return "smooth"
	case Symmetrical:
		return "symmetrical"
	case Autosmooth:
		return "autosmooth"
	}
	return "unknown"
}

// NodeHeader holds the state shared by every node. Selected and Hovered
// hold the id of the selected or hovered editor layer, 0 for none.
type NodeHeader struct {
	NodeType NodeType
	Selected int
	Hovered  int
}

// Node is one element of a path: *MoveTo, *LineTo, *CurveTo or *ClosePath.
// Nodes are referenced by pointer so editor state can hold on to them
// across mutations of the surrounding path.
type Node interface {
	Kind() NodeKind
	Header() *NodeHeader
	// WarpRef returns the node's warp, or nil for ClosePath.
	WarpRef() *Warp
	Clone() Node
	isNode()
}

// MoveTo starts a path.
type MoveTo struct {
	NodeHeader
	Warp
}

// LineTo ends a straight segment.
type LineTo struct {
	NodeHeader
	Warp
}

// CurveTo ends a cubic bezier segment with control points Ctrl1 and Ctrl2.
type CurveTo struct {
	NodeHeader
	Warp
	Ctrl1, Ctrl2 Point
}

// ClosePath closes a path. The editor never creates one but decoded
// parameters may contain it.
type ClosePath struct {
	NodeHeader
}

func newHeader() NodeHeader { return NodeHeader{NodeType: Autosmooth} }

// NewMoveTo returns a MoveTo at p with a default warp.
func NewMoveTo(p Point) *MoveTo { return &MoveTo{NodeHeader: newHeader(), Warp: NewWarp(p)} }

// NewLineTo returns a LineTo at p with a default warp.
func NewLineTo(p Point) *LineTo { return &LineTo{NodeHeader: newHeader(), Warp: NewWarp(p)} }

// NewCurveTo returns a CurveTo ending at p with the given control points.
func NewCurveTo(ctrl1, ctrl2, p Point) *CurveTo {
	return &CurveTo{NodeHeader: newHeader(), Warp: NewWarp(p), Ctrl1: ctrl1, Ctrl2: ctrl2}
}

func (*MoveTo) Kind() NodeKind    { return KindMoveTo }
func (*LineTo) Kind() NodeKind    { return KindLineTo }
func (*CurveTo) Kind() NodeKind   { return KindCurveTo }
func (*ClosePath) Kind() NodeKind { return KindClosePath }

func (n *MoveTo) Header() *NodeHeader    { return &n.NodeHeader }
func (n *LineTo) Header() *NodeHeader    { return &n.NodeHeader }
func (n *CurveTo) Header() *NodeHeader   { return &n.NodeHeader }
func (n *ClosePath) Header() *NodeHeader { return &n.NodeHeader }

func (n *MoveTo) WarpRef() *Warp  { return &n.Warp }
func (n *LineTo) WarpRef() *Warp  { return &n.Warp }
func (n *CurveTo) WarpRef() *Warp { return &n.Warp }
func (*ClosePath) WarpRef() *Warp { return nil }

func (n *MoveTo) Clone() Node    { c := *n; return &c }
func (n *LineTo) Clone() Node    { c := *n; return &c }
func (n *CurveTo) Clone() Node   { c := *n; return &c }
func (n *ClosePath) Clone() Node { c := *n; return &c }

func (*MoveTo) isNode()    {}
func (*LineTo) isNode()    {}
func (*CurveTo) isNode()   {}
func (*ClosePath) isNode() {}

// Path is an ordered node sequence starting with a MoveTo.
type Path []Node

// Paths is the full parameter set. Order is z-order only.
type Paths []Path

// Clone returns a deep copy of p.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	c := make(Path, len(p))
	for i, n := range p {
		c[i] = n.Clone()
	}
	return c
}

// Clone returns a deep copy that shares no node with ps.
func (ps Paths) Clone() Paths {
	if ps == nil {
		return nil
	}
	c := make(Paths, len(ps))
	for i, p := range ps {
		c[i] = p.Clone()
	}
	return c
}

// Find returns the path and node index holding n, or (-1, -1).
func (ps Paths) Find(n Node) (path, index int) {
	for i, p := range ps {
		for j, m := range p {
			if m == n {
				return i, j
			}
		}
	}
	return -1, -1
}

// Prev returns the node before n in its path, or nil.
func (ps Paths) Prev(n Node) Node {
	i, j := ps.Find(n)
	if i < 0 || j == 0 {
		return nil
	}
	return ps[i][j-1]
}

// Next returns the node after n in its path, or nil.
func (ps Paths) Next(n Node) Node {
	i, j := ps.Find(n)
	if i < 0 || j+1 >= len(ps[i]) {
		return nil
	}
	return ps[i][j+1]
}

// Warps returns the number of nodes carrying a warp.
func (ps Paths) Warps() int {
	n := 0
	for _, p := range ps {
		for _, node := range p {
			if node.WarpRef() != nil {
				n++
			}
		}
	}
	return n
}

// WalkPoints calls fn for every coordinate stored in ps: control points of
// curves first, then point, strength and radius of each warp.
func (ps Paths) WalkPoints(fn func(*Point)) {
	for _, p := range ps {
		for _, n := range p {
			if c, ok := n.(*CurveTo); ok {
				fn(&c.Ctrl1)
				fn(&c.Ctrl2)
			}
			if w := n.WarpRef(); w != nil {
				fn(&w.Point)
				fn(&w.Strength)
				fn(&w.Radius)
			}
		}
	}
}
