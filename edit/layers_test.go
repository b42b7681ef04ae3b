package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestVisibleLayers(t *testing.T) {
	assert.Empty(t, visibleLayers(ToolNone))

	point := visibleLayers(ToolPoint)
	assert.Equal(t, []Layer{
		LayerRadius, LayerWarps, LayerPath, LayerStrengthpointHandle,
		LayerCenterpoint, LayerStrengthpoint,
	}, point)

	node := visibleLayers(ToolNode)
	assert.Contains(t, node, LayerCtrlpoint1)
	assert.Contains(t, node, LayerHardnesspoint1Handle)
	assert.NotContains(t, node, LayerHardness1)
	for i := 1; i < len(node); i++ {
		assert.Less(t, node[i-1], node[i], "back to front")
	}
}

func TestHitLayers(t *testing.T) {
	layers := hitLayers()
	assert.Equal(t, []Layer{
		LayerStrengthpoint, LayerHardnesspoint2, LayerHardnesspoint1,
		LayerRadiuspoint, LayerCtrlpoint2, LayerCtrlpoint1,
		LayerCenterpoint, LayerPath,
	}, layers)
}

func TestHoverMaster(t *testing.T) {
	assert.Equal(t, LayerRadiuspoint, LayerRadiuspointHandle.Style().HoverMaster)
	assert.Equal(t, LayerStrengthpoint, LayerStrengthpointHandle.Style().HoverMaster)
	assert.Equal(t, LayerCenterpoint, LayerCenterpoint.Style().HoverMaster)
	assert.Equal(t, LayerStyle{}, Layer(-1).Style())
}

func TestLayerString(t *testing.T) {
	assert.Equal(t, "centerpoint", LayerCenterpoint.String())
	assert.Equal(t, "strengthpoint-handle", LayerStrengthpointHandle.String())
	assert.Equal(t, "unknown", layerCount.String())
}

func TestHint(t *testing.T) {
	assert.Equal(t, "drag to adjust warp radius", Hint(LayerRadiuspoint, language.English))
	assert.Equal(t, "ziehen, um den Radius anzupassen", Hint(LayerRadiuspoint, language.German))
	assert.Equal(t, Hint(LayerCtrlpoint1, language.German), Hint(LayerCtrlpoint2, language.German))
	assert.Empty(t, Hint(LayerRadius, language.English))
	assert.Empty(t, Hint(LayerBackground, language.German))

	// unknown languages fall back to English
	assert.Equal(t, "drag to adjust warp radius", Hint(LayerRadiuspoint, language.Japanese))
	assert.Equal(t, []language.Tag{language.English, language.German}, HintLanguages())
}

func TestHintCatalogComplete(t *testing.T) {
	assert.NotPanics(t, func() { buildHintCatalog() })
	for l, key := range hintKeys {
		assert.Equal(t, key, Hint(l, language.English), l.String())
		assert.NotEqual(t, key, Hint(l, language.German), "%s has no German hint", l)
	}
}
