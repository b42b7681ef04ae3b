package edit

// Tool is the active editing tool.
type Tool int

const (
	ToolNone Tool = iota
	ToolPoint
	ToolLine
	ToolCurve
	ToolNode
)

func (t Tool) String() string {
	switch t {
	case ToolNone:
		return "none"
	case ToolPoint:
		return "point"
	case ToolLine:
		return "line"
	case ToolCurve:
		return "curve"
	case ToolNode:
		return "node"
	}
	return "unknown"
}

func (t Tool) flag() LayerFlags {
	switch t {
	case ToolPoint:
		return FlagPointTool
	case ToolLine:
		return FlagLineTool
	case ToolCurve:
		return FlagCurveTool
	case ToolNode:
		return FlagNodeTool
	}
	return 0
}

// Button is a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// Modifier is a set of keyboard modifiers held during an event.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
)

// EventKind distinguishes pointer events.
type EventKind int

const (
	EventPress EventKind = iota
	EventMove
	EventRelease
)

// Event is a pointer event in view coordinates.
type Event struct {
	Kind   EventKind
	X, Y   float64
	Button Button
	Mods   Modifier
}

// Press returns a button press event.
func Press(x, y float64, b Button, mods Modifier) Event {
	return Event{Kind: EventPress, X: x, Y: y, Button: b, Mods: mods}
}

// Move returns a pointer motion event.
func Move(x, y float64) Event {
	return Event{Kind: EventMove, X: x, Y: y}
}

// Release returns a button release event.
func Release(x, y float64, b Button, mods Modifier) Event {
	return Event{Kind: EventRelease, X: x, Y: y, Button: b, Mods: mods}
}

// Result tells the host what an event changed.
type Result int

const (
	// Unhandled means the event was not consumed.
	Unhandled Result = iota
	// Redraw means only the overlay changed.
	Redraw
	// Commit means the parameters changed and the image must be
	// reprocessed.
	Commit
)

func (r Result) String() string {
	switch r {
	case Unhandled:
		return "unhandled"
	case Redraw:
		return "redraw"
	case Commit:
		return "commit"
	}
	return "unknown"
}
