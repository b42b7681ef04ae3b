package edit

import (
	"math"
	"slices"
	"sync"

	"golang.org/x/text/language"

	"github.com/gogpu/liquify"
	"github.com/gogpu/liquify/surface"
)

// RadiusStore persists the radius of the warp edited last. New nodes
// start with it.
type RadiusStore interface {
	Radius() (float64, error)
	SetRadius(r float64) error
}

// Defaults are the sizes of new warps and the drag threshold, in UI
// pixels. DPI converts UI pixels to view pixels.
type Defaults struct {
	DPI      float64
	Radius   float64
	Strength float64
	MinDrag  float64
}

// DefaultDefaults returns the stock sizes.
func DefaultDefaults() Defaults {
	return Defaults{DPI: 1, Radius: 100, Strength: 50, MinDrag: 4}
}

// State is the editor state outside of the paths.
type State struct {
	Tool Tool
	// Dragging holds the elements following the pointer.
	Dragging []Hit
	// LastHit is the element under the pointer at the last press.
	LastHit Hit
	// Pending is the node of a line or curve under construction.
	Pending liquify.Node
	// New is set between the press and release that add a node.
	New bool
	// PressPos is the position of the left button press, nil while the
	// button is up.
	PressPos *liquify.Point
	Mods     Modifier
	LastPos  liquify.Point
}

// Option configures an Engine.
type Option func(*Engine)

// WithRadiusStore persists the last used radius in s.
func WithRadiusStore(s RadiusStore) Option {
	return func(e *Engine) { e.store = s }
}

// WithDefaults sets the sizes of new warps.
func WithDefaults(d Defaults) Option {
	return func(e *Engine) { e.defaults = d }
}

// WithLanguage selects the language of hints.
func WithLanguage(tag language.Tag) Option {
	return func(e *Engine) { e.lang = tag }
}

// Engine is the interactive path editor. Handle is called from the UI
// thread; Snapshot and Params may be called from any goroutine.
type Engine struct {
	mu    sync.Mutex
	paths liquify.Paths
	state State
	hint  string

	view     Viewport
	store    RadiusStore
	defaults Defaults
	lang     language.Tag
}

// NewEngine returns an editor without paths and with no active tool.
func NewEngine(view Viewport, opts ...Option) *Engine {
	e := &Engine{
		view:     view,
		defaults: DefaultDefaults(),
		lang:     language.English,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load replaces the paths with the decoded params blob and resets the
// editor state. The tool is kept.
func (e *Engine) Load(blob []byte) {
	paths := liquify.Decode(blob)
	liquify.SmoothPaths(paths)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.paths = paths
	e.state = State{Tool: e.state.Tool}
}

// Params returns the paths encoded as a params blob.
func (e *Engine) Params() []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	return liquify.Encode(e.paths)
}

// Snapshot returns a deep copy of the paths for processing.
func (e *Engine) Snapshot() liquify.Paths {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paths.Clone()
}

// Count returns the number of paths.
func (e *Engine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.paths)
}

// State returns a copy of the editor state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.state
	s.Dragging = slices.Clone(s.Dragging)
	return s
}

// Hint returns the hint of the element hovered last.
func (e *Engine) Hint() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hint
}

// SetTool activates t. Any drag ends, and a line or curve under
// construction loses its rubber-band node as it would on a right click.
func (e *Engine) SetTool(t Tool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if s := &e.state; s.Pending != nil && !s.New {
		e.paths = deleteNode(e.paths, s.Pending)
		liquify.SmoothPaths(e.paths)
		liquify.Logger().Debug("edit: construction cancelled", "tool", t)
	}
	e.state.Tool = t
	e.state.Dragging = nil
	e.state.Pending = nil
	e.state.New = false
}

// Tool returns the active tool.
func (e *Engine) Tool() Tool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Tool
}

// Draw paints the overlay of the active tool onto s in view coordinates.
func (e *Engine) Draw(s surface.Surface) error {
	e.mu.Lock()
	paths := e.paths.Clone()
	tool := e.state.Tool
	e.mu.Unlock()

	layers := visibleLayers(tool)
	if len(layers) == 0 || len(paths) == 0 {
		return nil
	}
	if err := e.view.RawToDisplay(paths); err != nil {
		return err
	}
	drawPaths(s, e.defaults.DPI, paths, layers, nil)
	return nil
}

// HitTest returns the element under the view position (x, y).
func (e *Engine) HitTest(x, y float64) Hit {
	pt, ok := e.view.ViewToRaw(x, y)
	if !ok {
		return Nowhere
	}
	scale := e.uiScale()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hitTest(scale, pt)
}

func (e *Engine) hitTest(scale float64, pt liquify.Point) Hit {
	return drawPaths(surface.NewHitSurface(), scale, e.paths, hitLayers(), &pt)
}

// uiScale returns the number of stored units per UI pixel.
func (e *Engine) uiScale() float64 {
	return e.view.UIScale() * e.defaults.DPI
}

// newRadius returns the radius of a new warp in stored units.
func (e *Engine) newRadius(scale float64) float64 {
	if e.store != nil {
		r, err := e.store.Radius()
		if err == nil && r > 0 {
			return r
		}
	}
	return scale * e.defaults.Radius
}

// Handle applies one pointer event and reports what changed. Events are
// unhandled while the viewport has no pipeline.
func (e *Engine) Handle(ev Event) Result {
	pt, ok := e.view.ViewToRaw(ev.X, ev.Y)
	if !ok {
		return Unhandled
	}
	t := transition{
		scale:    e.uiScale(),
		pt:       pt,
		ev:       ev,
		radius:   e.newRadius(e.uiScale()),
		strength: e.uiScale() * e.defaults.Strength,
		minDrag:  e.uiScale() * e.defaults.MinDrag,
	}

	e.mu.Lock()
	var res Result
	switch ev.Kind {
	case EventPress:
		res = e.press(&t)
	case EventMove:
		res = e.move(&t)
	case EventRelease:
		res = e.release(&t)
	}
	if res != Unhandled {
		liquify.SmoothPaths(e.paths)
	}
	e.mu.Unlock()

	if t.storeRadius > 0 && e.store != nil {
		if err := e.store.SetRadius(t.storeRadius); err != nil {
			liquify.Logger().Warn("edit: store radius", "err", err)
		}
	}
	return res
}

// transition carries the inputs and side outputs of one event.
type transition struct {
	scale    float64
	pt       liquify.Point
	ev       Event
	radius   float64
	strength float64
	minDrag  float64

	storeRadius float64
}

func (e *Engine) dragged(t *transition) bool {
	p := e.state.PressPos
	return p != nil && t.pt.Distance(*p) >= t.minDrag
}

func (e *Engine) newMoveTo(t *transition) *liquify.MoveTo {
	m := liquify.NewMoveTo(t.pt)
	m.Warp = newWarp(t.pt, t.radius, t.strength)
	return m
}

func (e *Engine) press(t *transition) Result {
	s := &e.state
	s.LastPos = t.pt
	s.Mods = t.ev.Mods
	if t.ev.Button == ButtonLeft {
		p := t.pt
		s.PressPos = &p
	}
	if len(s.Dragging) == 0 {
		s.LastHit = e.hitTest(t.scale, t.pt)
	}
	if t.ev.Button != ButtonLeft {
		return Unhandled
	}

	switch s.Tool {
	case ToolPoint:
		s.Dragging = nil
		m := e.newMoveTo(t)
		e.paths = append(e.paths, liquify.Path{m})
		s.Pending = m
		s.New = true
		s.Dragging = []Hit{{Layer: LayerStrengthpoint, Node: m}}
		s.LastHit = Nowhere
		liquify.Logger().Debug("edit: new point", "x", t.pt.X, "y", t.pt.Y)
		return Commit

	case ToolLine, ToolCurve:
		s.Dragging = nil
		if s.Pending == nil {
			if s.LastHit.Layer == LayerCenterpoint {
				s.Pending = s.LastHit.Node
			} else {
				m := e.newMoveTo(t)
				e.paths = append(e.paths, liquify.Path{m})
				s.Pending = m
				liquify.Logger().Debug("edit: new path", "x", t.pt.X, "y", t.pt.Y)
			}
		}
		s.LastHit = Nowhere
		if s.Tool == ToolCurve {
			s.Dragging = []Hit{{Layer: LayerCtrlpoint1, Node: s.Pending}}
		}
		s.New = true
		return Commit

	case ToolNode:
		if s.Mods != ModCtrl {
			return Unhandled
		}
		switch s.LastHit.Layer {
		case LayerCenterpoint:
			h := s.LastHit.Node.Header()
			h.NodeType = h.NodeType.Next()
			return Commit
		case LayerStrengthpoint:
			if m, ok := s.LastHit.Node.(*liquify.MoveTo); ok {
				m.Type = m.Type.Next()
			}
			return Commit
		}
	}
	return Unhandled
}

func (e *Engine) move(t *transition) Result {
	s := &e.state
	s.LastPos = t.pt

	if len(s.Dragging) == 0 {
		hit := e.hitTest(t.scale, t.pt)
		last := findHovered(e.paths)
		if hit.Node != last || (last != nil && last.Header().Hovered != int(hit.Layer)) {
			if last != nil {
				last.Header().Hovered = 0
			}
			if hit.Node != nil {
				hit.Node.Header().Hovered = int(hit.Layer)
			}
			e.hint = Hint(hit.Layer, e.lang)
			return Redraw
		}
	}

	if len(s.Dragging) == 0 && s.LastHit.Node != nil && e.dragged(t) {
		s.Dragging = append(s.Dragging, s.LastHit)
	}
	if len(s.Dragging) == 0 {
		return Unhandled
	}
	for _, h := range s.Dragging {
		if r := e.drag(h, t.pt); r > 0 {
			t.storeRadius = r
		}
	}
	return Redraw
}

// drag moves the element h to pt. It returns the new radius when a
// radius handle moved.
func (e *Engine) drag(h Hit, pt liquify.Point) float64 {
	w := h.Node.WarpRef()
	if w == nil {
		return 0
	}
	prev, next := e.paths.Prev(h.Node), e.paths.Next(h.Node)
	curve, _ := h.Node.(*liquify.CurveTo)

	switch h.Layer {
	case LayerCenterpoint:
		d := pt.Sub(w.Point)
		if curve != nil {
			curve.Ctrl2 = curve.Ctrl2.Add(d)
		}
		if n, ok := next.(*liquify.CurveTo); ok {
			n.Ctrl1 = n.Ctrl1.Add(d)
		}
		w.Translate(d)

	case LayerCtrlpoint1:
		if curve == nil {
			return 0
		}
		curve.Ctrl1 = pt
		if p, ok := prev.(*liquify.CurveTo); ok {
			p.Ctrl2 = mirror(p.Point, p.Ctrl2, pt, p.NodeType)
		}

	case LayerCtrlpoint2:
		if curve == nil {
			return 0
		}
		curve.Ctrl2 = pt
		if n, ok := next.(*liquify.CurveTo); ok {
			n.Ctrl1 = mirror(curve.Point, n.Ctrl1, pt, curve.NodeType)
		}

	case LayerRadiuspoint:
		w.Radius = pt
		return w.EffectiveRadius()

	case LayerStrengthpoint:
		w.Strength = pt

	case LayerHardnesspoint1:
		if r := w.EffectiveRadius(); r > 0 {
			w.Control1 = math.Min(1, pt.Distance(w.Point)/r)
		}

	case LayerHardnesspoint2:
		if r := w.EffectiveRadius(); r > 0 {
			w.Control2 = math.Min(1, pt.Distance(w.Point)/r)
		}
	}
	return 0
}

// mirror returns the control point opposite to moved across the knot,
// following the knot's node type.
func mirror(knot, opposite, moved liquify.Point, t liquify.NodeType) liquify.Point {
	switch t {
	case liquify.Smooth:
		return knot.Add(liquify.Polar(knot.Distance(opposite), knot.Sub(moved).Angle()))
	case liquify.Symmetrical:
		return knot.Mul(2).Sub(moved)
	}
	return opposite
}

func (e *Engine) release(t *transition) Result {
	s := &e.state
	s.LastPos = t.pt
	dragged := e.dragged(t)
	defer func() {
		if t.ev.Button == ButtonLeft {
			s.PressPos = nil
		}
		s.LastHit = Nowhere
	}()

	if t.ev.Button == ButtonLeft && s.Pending != nil && s.New {
		s.Dragging = nil
		s.New = false
		switch s.Tool {
		case ToolPoint:
			if !dragged {
				w := s.Pending.WarpRef()
				w.Strength = w.Point.Add(liquify.Pt(t.strength, 0))
			}
			s.Pending = nil
			s.Tool = ToolNode

		case ToolLine:
			n := liquify.NewLineTo(t.pt)
			n.Warp = newWarp(t.pt, t.radius, t.strength)
			e.paths = insertAfter(e.paths, s.Pending, n)
			s.Pending = n
			s.Dragging = []Hit{{Layer: LayerCenterpoint, Node: n}}

		case ToolCurve:
			if dragged {
				s.Pending.Header().NodeType = liquify.Symmetrical
			}
			n := liquify.NewCurveTo(t.pt, t.pt, t.pt)
			n.Warp = newWarp(t.pt, t.radius, t.strength)
			e.paths = insertAfter(e.paths, s.Pending, n)
			s.Pending = n
			s.Dragging = []Hit{{Layer: LayerCenterpoint, Node: n}}
		}
		return Redraw
	}

	if t.ev.Button == ButtonLeft && len(s.Dragging) > 0 {
		s.Dragging = nil
		return Commit
	}

	if t.ev.Button == ButtonRight {
		s.Dragging = nil
		if s.Pending != nil {
			e.paths = deleteNode(e.paths, s.Pending)
			s.Pending = nil
			s.New = false
			s.Tool = ToolNode
			return Commit
		}
		switch s.LastHit.Layer {
		case LayerBackground:
			if s.Tool == ToolNode {
				s.Tool = ToolNone
			} else {
				s.Tool = ToolNode
			}
			return Redraw
		case LayerCenterpoint:
			e.paths = deleteNode(e.paths, s.LastHit.Node)
			return Commit
		case LayerPath:
			e.paths = deletePath(e.paths, s.LastHit.Node)
			return Commit
		}
		return Unhandled
	}

	if s.Tool != ToolNode || t.ev.Button != ButtonLeft || dragged {
		return Unhandled
	}

	hit := s.LastHit
	switch s.Mods {
	case 0:
		switch hit.Layer {
		case LayerCenterpoint:
			h := hit.Node.Header()
			selected := h.Selected != 0
			unselectAll(e.paths)
			if !selected {
				h.Selected = int(LayerCenterpoint)
			}
			return Redraw
		case LayerBackground:
			unselectAll(e.paths)
			return Redraw
		}

	case ModShift:
		if hit.Layer == LayerCenterpoint {
			h := hit.Node.Header()
			if h.Selected != 0 {
				h.Selected = 0
			} else {
				h.Selected = int(LayerCenterpoint)
			}
			return Redraw
		}

	case ModCtrl:
		if hit.Layer == LayerPath {
			var ok bool
			if e.paths, ok = splitSegment(e.paths, hit.Node, t.pt); ok {
				return Commit
			}
		}

	case ModCtrl | ModAlt:
		if hit.Layer == LayerPath && convertSegment(e.paths, hit.Node) {
			return Commit
		}
	}
	return Unhandled
}
