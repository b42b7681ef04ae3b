package liquify

const (
	// InterpolationPoints is the number of samples used to measure a curve
	// segment's arc length.
	InterpolationPoints = 100

	// StampRelocation is the fraction of the effective radius between
	// consecutive stamps along a path. The strength vector of every
	// interpolated stamp is scaled by the same fraction.
	StampRelocation = 0.1
)

// InterpolatePaths expands every path into its stamp sequence.
func InterpolatePaths(paths Paths) []Warp {
	var out []Warp
	for _, p := range paths {
		out = appendPathWarps(out, p)
	}
	return out
}

// InterpolatePath expands one path into warps spaced by StampRelocation of
// their radius along the path. A path holding a lone MoveTo yields its warp
// unchanged.
func InterpolatePath(p Path) []Warp {
	return appendPathWarps(nil, p)
}

func appendPathWarps(out []Warp, p Path) []Warp {
	for i, node := range p {
		w := node.WarpRef()
		if w == nil {
			continue
		}
		if i == 0 && len(p) == 1 {
			return append(out, *w)
		}
		if i+1 >= len(p) {
			break
		}
		next := p[i+1]
		nw := next.WarpRef()
		if nw == nil {
			continue
		}
		switch n := next.(type) {
		case *LineTo:
			out = appendLineWarps(out, *w, *nw)
		case *CurveTo:
			out = appendCurveWarps(out, *w, *nw, CubicBez{w.Point, n.Ctrl1, n.Ctrl2, n.Point})
		}
	}
	return out
}

func appendLineWarps(out []Warp, w1, w2 Warp) []Warp {
	total := w1.Point.Distance(w2.Point)
	for arc := 0.0; arc < total; {
		t := arc / total
		w := relocate(MixWarps(w1, w2, w1.Point.Lerp(w2.Point, t), t))
		out = append(out, w)
		step := w.EffectiveRadius() * StampRelocation
		if step <= 0 {
			break
		}
		arc += step
	}
	return out
}

func appendCurveWarps(out []Warp, w1, w2 Warp, c CubicBez) []Warp {
	pl := newPolyline(c.Flatten(InterpolationPoints))
	total := pl.length()
	var cur arcCursor
	for arc := 0.0; arc < total; {
		t := arc / total
		w := relocate(MixWarps(w1, w2, pl.pointAt(arc, &cur), t))
		out = append(out, w)
		step := w.EffectiveRadius() * StampRelocation
		if step <= 0 {
			break
		}
		arc += step
	}
	return out
}

func relocate(w Warp) Warp {
	w.Strength = w.Point.Lerp(w.Strength, StampRelocation)
	return w
}
