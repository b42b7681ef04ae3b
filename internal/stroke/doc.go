// Package stroke expands stroked paths into outlines that are filled with
// the nonzero rule.
//
// The outline of an open subpath is built from two offset paths half the
// stroke width to either side of the centerline:
//  1. the forward offset, in path order
//  2. the end cap
//  3. the backward offset, reversed
//  4. the start cap, closing the loop
//
// A closed subpath has no caps and becomes two loops instead, so the ring
// between them winds once and the hole does not wind at all.
//
// # Usage
//
//	e := stroke.NewExpander(stroke.Style{Width: 4, Cap: stroke.CapRound, Join: stroke.JoinRound})
//	outline := e.Expand([]stroke.PathElement{
//	    stroke.MoveTo{Point: stroke.Point{X: 0, Y: 0}},
//	    stroke.LineTo{Point: stroke.Point{X: 100, Y: 0}},
//	    stroke.LineTo{Point: stroke.Point{X: 100, Y: 100}},
//	})
package stroke
