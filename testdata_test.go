package liquify

// samplePaths returns a collection touching every node kind and header
// field.
func samplePaths() Paths {
	m := NewMoveTo(Pt(10, 20))
	m.Radius = Pt(40, 20)
	m.Strength = Pt(10, 35)
	m.Selected = 12
	m.Hovered = 5

	l := NewLineTo(Pt(80, 20))
	l.Radius = Pt(80, 45)
	l.Strength = Pt(95, 20)
	l.Type = RadialShrink
	l.NodeType = Cusp

	c := NewCurveTo(Pt(100, 0), Pt(120, 60), Pt(150, 40))
	c.Radius = Pt(150, 55)
	c.Strength = Pt(150, 50)
	c.Control1 = 0.1
	c.Control2 = 0.9

	single := NewMoveTo(Pt(-5, 7.25))
	single.Radius = Pt(5, 7.25)
	single.Strength = Pt(15, 7.25)
	single.Type = RadialGrow

	closed := Path{NewMoveTo(Pt(1, 1)), NewLineTo(Pt(2, 2)), &ClosePath{NodeHeader: newHeader()}}

	return Paths{{m, l, c}, {single}, closed}
}
