package edit

// Layer identifies one visual element class of the overlay. Layers are
// ordered back to front; hit testing visits the hit-testable ones front to
// back.
type Layer int

const (
	LayerBackground Layer = iota
	LayerRadius
	LayerHardness1
	LayerHardness2
	LayerWarps
	LayerPath
	LayerCtrlpoint1Handle
	LayerCtrlpoint2Handle
	LayerRadiuspointHandle
	LayerHardnesspoint1Handle
	LayerHardnesspoint2Handle
	LayerStrengthpointHandle
	LayerCenterpoint
	LayerCtrlpoint1
	LayerCtrlpoint2
	LayerRadiuspoint
	LayerHardnesspoint1
	LayerHardnesspoint2
	LayerStrengthpoint

	layerCount
)

var layerNames = [layerCount]string{
	"background",
	"radius",
	"hardness1",
	"hardness2",
	"warps",
	"path",
	"ctrlpoint1-handle",
	"ctrlpoint2-handle",
	"radiuspoint-handle",
	"hardnesspoint1-handle",
	"hardnesspoint2-handle",
	"strengthpoint-handle",
	"centerpoint",
	"ctrlpoint1",
	"ctrlpoint2",
	"radiuspoint",
	"hardnesspoint1",
	"hardnesspoint2",
	"strengthpoint",
}

func (l Layer) String() string {
	if l < 0 || l >= layerCount {
		return "unknown"
	}
	return layerNames[l]
}

// LayerFlags control when a layer is drawn and whether it takes part in
// hit testing.
type LayerFlags uint32

const (
	FlagHitTest LayerFlags = 1 << iota
	// FlagPrevSelected shows the layer only if the previous node is selected.
	FlagPrevSelected
	// FlagNodeSelected shows the layer only if the node is selected.
	FlagNodeSelected
	FlagPointTool
	FlagLineTool
	FlagCurveTool
	FlagNodeTool

	FlagAnyTool = FlagPointTool | FlagLineTool | FlagCurveTool | FlagNodeTool
)

// RGBA is a non-premultiplied color with components in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

var (
	colorNull  = RGBA{0, 0, 0, 0.8}
	colorGrey  = RGBA{0.3, 0.3, 0.3, 0.8}
	colorLGrey = RGBA{0.8, 0.8, 0.8, 1}
	colorDebug = RGBA{0.9, 0.9, 0, 1}

	// ColorSelected replaces the foreground of a selected element.
	ColorSelected = RGBA{1, 1, 1, 1}
	// ColorHover replaces the foreground of a hovered element.
	ColorHover = RGBA{1, 1, 1, 0.8}
)

// LayerStyle is the immutable drawing configuration of one layer.
type LayerStyle struct {
	// HoverMaster is the layer whose hover highlights this one, so that
	// hovering a handle point also lights up its outline.
	HoverMaster Layer
	FG, BG      RGBA
	Opacity     float64
	Flags       LayerFlags
}

var layerStyles = [layerCount]LayerStyle{
	LayerBackground:           {LayerBackground, colorNull, colorNull, 0, 0},
	LayerRadius:               {LayerRadius, colorDebug, colorNull, 0.25, FlagAnyTool},
	LayerHardness1:            {LayerHardness1, colorDebug, colorNull, 1, 0},
	LayerHardness2:            {LayerHardness2, colorDebug, colorNull, 1, 0},
	LayerWarps:                {LayerWarps, colorDebug, colorLGrey, 0.5, FlagAnyTool},
	LayerPath:                 {LayerPath, colorGrey, colorLGrey, 1, FlagAnyTool | FlagHitTest},
	LayerCtrlpoint1Handle:     {LayerCtrlpoint1, colorGrey, colorLGrey, 1, FlagNodeTool},
	LayerCtrlpoint2Handle:     {LayerCtrlpoint2, colorGrey, colorLGrey, 1, FlagNodeTool},
	LayerRadiuspointHandle:    {LayerRadiuspoint, colorGrey, colorLGrey, 1, FlagNodeTool},
	LayerHardnesspoint1Handle: {LayerHardnesspoint1, colorGrey, colorLGrey, 1, FlagNodeTool | FlagNodeSelected},
	LayerHardnesspoint2Handle: {LayerHardnesspoint2, colorGrey, colorLGrey, 1, FlagNodeTool | FlagNodeSelected},
	LayerStrengthpointHandle:  {LayerStrengthpoint, colorGrey, colorLGrey, 1, FlagAnyTool},
	LayerCenterpoint:          {LayerCenterpoint, colorGrey, colorLGrey, 1, FlagAnyTool | FlagHitTest},
	LayerCtrlpoint1:           {LayerCtrlpoint1, colorGrey, colorLGrey, 1, FlagNodeTool | FlagHitTest},
	LayerCtrlpoint2:           {LayerCtrlpoint2, colorGrey, colorLGrey, 1, FlagNodeTool | FlagHitTest},
	LayerRadiuspoint:          {LayerRadiuspoint, colorGrey, colorLGrey, 1, FlagNodeTool | FlagHitTest},
	LayerHardnesspoint1:       {LayerHardnesspoint1, colorGrey, colorLGrey, 1, FlagNodeTool | FlagNodeSelected | FlagHitTest},
	LayerHardnesspoint2:       {LayerHardnesspoint2, colorGrey, colorLGrey, 1, FlagNodeTool | FlagNodeSelected | FlagHitTest},
	LayerStrengthpoint:        {LayerStrengthpoint, colorGrey, colorLGrey, 1, FlagAnyTool | FlagHitTest},
}

// Style returns the drawing configuration of l.
func (l Layer) Style() LayerStyle {
	if l < 0 || l >= layerCount {
		return LayerStyle{}
	}
	return layerStyles[l]
}

// visibleLayers returns the layers drawn while tool is active, back to
// front.
func visibleLayers(tool Tool) []Layer {
	flag := tool.flag()
	if flag == 0 {
		return nil
	}
	var out []Layer
	for l := LayerBackground; l < layerCount; l++ {
		if layerStyles[l].Flags&flag != 0 {
			out = append(out, l)
		}
	}
	return out
}

// hitLayers returns the hit-testable layers, front to back.
func hitLayers() []Layer {
	var out []Layer
	for l := layerCount - 1; l >= LayerBackground; l-- {
		if layerStyles[l].Flags&FlagHitTest != 0 {
			out = append(out, l)
		}
	}
	return out
}
