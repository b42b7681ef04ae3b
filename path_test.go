package liquify

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathsCloneIsDeep(t *testing.T) {
	src := samplePaths()
	dup := src.Clone()

	if diff := cmp.Diff(src, dup); diff != "" {
		t.Fatalf("clone differs (-src +dup):\n%s", diff)
	}
	for i := range src {
		for j := range src[i] {
			assert.NotSame(t, src[i][j], dup[i][j])
		}
	}

	dup[0][0].WarpRef().Point = Pt(-1, -1)
	dup[0][2].(*CurveTo).Ctrl1 = Pt(-2, -2)
	assert.Equal(t, Pt(10, 20), src[0][0].WarpRef().Point)
	assert.Equal(t, Pt(100, 0), src[0][2].(*CurveTo).Ctrl1)
}

func TestPathsNavigation(t *testing.T) {
	ps := samplePaths()
	l := ps[0][1]

	i, j := ps.Find(l)
	assert.Equal(t, 0, i)
	assert.Equal(t, 1, j)
	assert.Same(t, ps[0][0], ps.Prev(l))
	assert.Same(t, ps[0][2], ps.Next(l))
	assert.Nil(t, ps.Prev(ps[0][0]))
	assert.Nil(t, ps.Next(ps[1][0]))

	i, j = ps.Find(NewMoveTo(Pt(0, 0)))
	assert.Equal(t, -1, i)
	assert.Equal(t, -1, j)
}

func TestPathsWarps(t *testing.T) {
	assert.Equal(t, 6, samplePaths().Warps())
	assert.Equal(t, 0, Paths(nil).Warps())
}

func TestWalkPointsOrder(t *testing.T) {
	c := NewCurveTo(Pt(1, 0), Pt(2, 0), Pt(3, 0))
	c.Strength = Pt(4, 0)
	c.Radius = Pt(5, 0)

	var xs []float64
	Paths{{NewMoveTo(Pt(0, 0)), c}}.WalkPoints(func(p *Point) { xs = append(xs, p.X) })
	require.Equal(t, []float64{0, 0, 0, 1, 2, 3, 4, 5}, xs)
}

func TestNewNodeDefaults(t *testing.T) {
	n := NewLineTo(Pt(3, 4))
	assert.Equal(t, Autosmooth, n.NodeType)
	assert.Equal(t, Linear, n.Type)
	assert.Equal(t, DefaultControl1, n.Control1)
	assert.Equal(t, DefaultControl2, n.Control2)
	assert.Equal(t, 0.0, n.EffectiveRadius())
	assert.Equal(t, KindLineTo, n.Kind())
}
