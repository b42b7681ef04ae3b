package liquify

// segmentEquation selects the linear equation used for the first control
// point of one segment. The names read as "start end": a straight end is a
// natural spline boundary, a smooth end is curvature continuous with the
// neighbouring segment and a keep end holds the user's control point.
type segmentEquation int

const (
	eqStraightSmooth   segmentEquation = 1
	eqSmoothSmooth     segmentEquation = 2
	eqSmoothStraight   segmentEquation = 3
	eqKeepSmooth       segmentEquation = 4
	eqKeepKeep         segmentEquation = 5
	eqSmoothKeep       segmentEquation = 6
	eqKeepStraight     segmentEquation = 7
	eqStraightStraight segmentEquation = 8
	eqStraightKeep     segmentEquation = 9
)

// solveControlPoints computes bezier control points for the n-1 segments
// through knots k. c1 and c2 hold one entry per segment; entries for keep
// ends are read, everything else is overwritten. The tridiagonal system is
// solved with the Thomas algorithm.
//
//	             2P1[i] + P1[i+1] =  K[i] + 2K[i+1]   (1)
//	P1[i-1] +    4P1[i] + P1[i+1] = 4K[i] + 2K[i+1]   (2)
//	2P1[i-1] +   7P1[i]           = 8K[i] +  K[i+1]   (3)
//	              P1[i]           = C1[i]             (4, 5, 7)
//	P1[i-1] +    4P1[i]           = 4K[i] +  C2[i]    (6)
//	             3P1[i]           = 2K[i] +  K[i+1]   (8)
//	             2P1[i]           =  K[i] +  C2[i]    (9)
func solveControlPoints(k, c1, c2 []Point, eq []segmentEquation) {
	n := len(k) - 1
	if n < 1 {
		return
	}
	a := make([]float64, n)
	b := make([]float64, n)
	c := make([]float64, n)
	d := make([]Point, n)

	for i := range n {
		switch eq[i] {
		case eqStraightSmooth:
			a[i], b[i], c[i], d[i] = 0, 2, 1, k[i].Add(k[i+1].Mul(2))
		case eqSmoothSmooth:
			a[i], b[i], c[i], d[i] = 1, 4, 1, k[i].Mul(4).Add(k[i+1].Mul(2))
		case eqSmoothStraight:
			a[i], b[i], c[i], d[i] = 2, 7, 0, k[i].Mul(8).Add(k[i+1])
		case eqKeepSmooth, eqKeepKeep, eqKeepStraight:
			a[i], b[i], c[i], d[i] = 0, 1, 0, c1[i]
		case eqSmoothKeep:
			a[i], b[i], c[i], d[i] = 1, 4, 0, k[i].Mul(4).Add(c2[i])
		case eqStraightStraight:
			a[i], b[i], c[i], d[i] = 0, 3, 0, k[i].Mul(2).Add(k[i+1])
		case eqStraightKeep:
			a[i], b[i], c[i], d[i] = 0, 2, 0, k[i].Add(c2[i])
		default:
			panic("liquify: invalid segment equation")
		}
	}

	for i := 1; i < n; i++ {
		m := a[i] / b[i-1]
		b[i] -= m * c[i-1]
		d[i] = d[i].Sub(d[i-1].Mul(m))
	}
	c1[n-1] = d[n-1].Div(b[n-1])
	for i := n - 2; i >= 0; i-- {
		c1[i] = d[i].Sub(c1[i+1].Mul(c[i])).Div(b[i])
	}

	for i := range n {
		switch eq[i] {
		case eqKeepKeep, eqSmoothKeep, eqStraightKeep:
		case eqSmoothStraight, eqKeepStraight, eqStraightStraight:
			c2[i] = c1[i].Add(k[i+1]).Div(2)
		default:
			if i+1 < n {
				c2[i] = k[i+1].Mul(2).Sub(c1[i+1])
			}
		}
	}
}

// SmoothPaths places the control points of every curve segment adjacent to
// an autosmooth node. Control points the user placed on other nodes are
// left untouched.
func SmoothPaths(paths Paths) {
	for _, p := range paths {
		SmoothPath(p)
	}
}

// SmoothPath smooths a single path. See SmoothPaths.
func SmoothPath(p Path) {
	n := len(p)
	if n < 2 {
		return
	}
	k := make([]Point, n)
	c1 := make([]Point, n)
	c2 := make([]Point, n)
	eq := make([]segmentEquation, n)

	for i, node := range p {
		k[i] = nodePoint(p, i)
		if c, ok := node.(*CurveTo); ok && i > 0 {
			c1[i-1] = c.Ctrl1
			c2[i-1] = c.Ctrl2
		}
		eq[i] = chooseEquation(p, i)
	}

	solveControlPoints(k, c1, c2, eq)

	for i := 1; i < n; i++ {
		if c, ok := p[i].(*CurveTo); ok {
			c.Ctrl1 = c1[i-1]
			c.Ctrl2 = c2[i-1]
		}
	}
}

// nodePoint returns the knot of node i. A ClosePath returns to the start.
func nodePoint(p Path, i int) Point {
	if w := p[i].WarpRef(); w != nil {
		return w.Point
	}
	return p[0].WarpRef().Point
}

// chooseEquation picks the equation for the segment that starts at node i.
func chooseEquation(p Path, i int) segmentEquation {
	var prev, next, nextNext Node
	if i > 0 {
		prev = p[i-1]
	}
	if i+1 < len(p) {
		next = p[i+1]
	}
	if i+2 < len(p) {
		nextNext = p[i+2]
	}

	auto := p[i].Header().NodeType == Autosmooth
	nextAuto := next != nil && next.Header().NodeType == Autosmooth
	first := prev == nil || p[i].Kind() != KindCurveTo
	last := nextNext == nil || nextNext.Kind() != KindCurveTo
	line := next != nil && next.Kind() == KindLineTo

	switch {
	case line, !auto && !nextAuto:
		return eqKeepKeep
	case first && last && !auto && nextAuto:
		return eqKeepStraight
	case first && last && auto && nextAuto:
		return eqStraightStraight
	case first && last && auto && !nextAuto:
		return eqStraightKeep
	case first && auto:
		return eqStraightSmooth
	case last && auto && nextAuto:
		return eqSmoothStraight
	case last && !auto && nextAuto:
		return eqKeepStraight
	case auto && !nextAuto:
		return eqSmoothKeep
	case !auto && nextAuto:
		return eqKeepSmooth
	}
	return eqSmoothSmooth
}
