package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/liquify"
	"github.com/gogpu/liquify/surface"
)

func TestDrawPaintsOverlay(t *testing.T) {
	e := newTestEngine()
	loadPaths(e, liquify.Paths{linePath(), {pointAt(liquify.Pt(100, 200))}})

	s := surface.NewImageSurface(300, 300)
	require.NoError(t, e.Draw(s))
	for _, p := range s.Image().Pix {
		require.Zero(t, p, "no tool draws nothing")
	}

	e.SetTool(ToolNode)
	require.NoError(t, e.Draw(s))
	img := s.Image()
	assert.NotZero(t, img.RGBAAt(100, 200).A, "centerpoint gizmo")
	assert.NotZero(t, img.RGBAAt(100, 100).A, "path stroke")
	assert.Zero(t, img.RGBAAt(290, 10).A)
}

func TestDrawWithoutPipeline(t *testing.T) {
	e := NewEngine(&PipelineView{})
	loadPaths(e, liquify.Paths{linePath()})
	e.SetTool(ToolNode)
	assert.ErrorIs(t, e.Draw(surface.NewImageSurface(10, 10)), liquify.ErrNoPipeline)
}

func TestDrawUsesViewCoordinates(t *testing.T) {
	e := NewEngine(&PipelineView{
		Pipeline: liquify.IdentityPipeline{},
		RawScale: 1,
		Zoom:     0.5,
		Offset:   liquify.Pt(10, 20),
	})
	loadPaths(e, liquify.Paths{{pointAt(liquify.Pt(100, 100))}})
	e.SetTool(ToolNode)

	s := surface.NewImageSurface(200, 200)
	require.NoError(t, e.Draw(s))
	assert.NotZero(t, s.Image().RGBAAt(60, 70).A)

	hit := e.HitTest(60, 70)
	assert.Equal(t, LayerCenterpoint, hit.Layer)
}

func TestHitTestFrontToBack(t *testing.T) {
	m := pointAt(liquify.Pt(100, 100))
	// a radius handle on top of the centerpoint wins
	m.Radius = liquify.Pt(101, 100)
	paths := liquify.Paths{{m}}

	at := liquify.Pt(101, 100)
	hit := drawPaths(surface.NewHitSurface(), 1, paths, hitLayers(), &at)
	assert.Equal(t, LayerRadiuspoint, hit.Layer)
	assert.Same(t, m, hit.Node)

	far := liquify.Pt(500, 500)
	assert.Equal(t, Nowhere, drawPaths(surface.NewHitSurface(), 1, paths, hitLayers(), &far))
}

func TestHitTestScale(t *testing.T) {
	paths := liquify.Paths{{pointAt(liquify.Pt(100, 100))}}
	at := liquify.Pt(106, 100)

	assert.Equal(t, Nowhere, drawPaths(surface.NewHitSurface(), 1, paths, hitLayers(), &at))
	hit := drawPaths(surface.NewHitSurface(), 2, paths, hitLayers(), &at)
	assert.Equal(t, LayerCenterpoint, hit.Layer, "gizmos grow with the UI scale")
}

func TestHardnessPointsNeedSelection(t *testing.T) {
	m := pointAt(liquify.Pt(100, 100))
	paths := liquify.Paths{{m}}
	// inside the hardness triangle halfway to the radius handle
	at := liquify.Pt(123, 100)

	assert.Equal(t, Nowhere, drawPaths(surface.NewHitSurface(), 1, paths, hitLayers(), &at))

	m.Selected = int(LayerCenterpoint)
	hit := drawPaths(surface.NewHitSurface(), 1, paths, hitLayers(), &at)
	assert.Equal(t, LayerHardnesspoint1, hit.Layer)
}
