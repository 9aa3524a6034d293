package retained

import (
	"strings"

	"github.com/agiangrant/arbor/layout"
	"github.com/gogpu/gg"
)

// ============================================================================
// Dirty Flags
// ============================================================================

// Flags is a bit set of pending work. Each node carries two copies: the
// local flags (work on this node) and the aggregate flags (work anywhere
// in this node's subtree, including itself).
type Flags uint16

const (
	// NeedsRegister: RegisterChildren has not run since the node was
	// inserted or asked to re-register.
	NeedsRegister Flags = 1 << iota
	// NeedsUpdate: lifecycle events are queued for the node.
	NeedsUpdate
	// NeedsLayout: the node's size may be stale.
	NeedsLayout
	// NeedsCompose: the node's window transform may be stale.
	NeedsCompose
	// NeedsPaint: the node's cached layer is stale.
	NeedsPaint
	// NeedsAccessibility: the node's accessibility entry is stale.
	NeedsAccessibility
	// PendingMutation: a deferred mutation targets the node.
	PendingMutation
)

// initialFlags marks a freshly inserted node as needing every pass.
const initialFlags = NeedsRegister | NeedsUpdate | NeedsLayout | NeedsCompose | NeedsPaint | NeedsAccessibility

var flagNames = [...]string{
	"register", "update", "layout", "compose", "paint", "accessibility", "pending-mutation",
}

// Has reports whether every bit of x is set.
func (f Flags) Has(x Flags) bool { return f&x == x }

// Any reports whether any bit of x is set.
func (f Flags) Any(x Flags) bool { return f&x != 0 }

func (f Flags) String() string {
	if f == 0 {
		return "clean"
	}
	var names []string
	for i, name := range flagNames {
		if f&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}

// ============================================================================
// Widget State
// ============================================================================

// WidgetState is the derived, per-node record maintained by the passes.
// Widgets and callers read it; only the pass runner and WidgetMut write it.
type WidgetState struct {
	id WidgetID

	size            layout.Size
	origin          gg.Point
	transform       gg.Matrix
	windowTransform gg.Matrix
	lastBC          layout.BoxConstraints
	hasLastBC       bool

	local     Flags
	aggregate Flags

	disabled          bool // set on this node
	effectiveDisabled bool // set on this node or any ancestor

	// Set by LayoutCtx during the layout pass in which the node was last
	// visited; layoutEpoch identifies that pass.
	layoutEpoch uint64
	placed      bool

	layer   *gg.ImageBuf
	updates []Update
}

func newWidgetState(id WidgetID, opts WidgetOptions) WidgetState {
	return WidgetState{
		id:              id,
		transform:       identityIfZero(opts.Transform),
		windowTransform: gg.Identity(),
		local:           initialFlags,
		aggregate:       initialFlags,
		disabled:        opts.Disabled,
		updates:         []Update{{Kind: UpdateWidgetAdded}},
	}
}

// ID returns the widget's id.
func (s *WidgetState) ID() WidgetID { return s.id }

// Size returns the size computed by the most recent layout pass.
func (s *WidgetState) Size() layout.Size { return s.size }

// Origin returns the position the parent assigned, in parent coordinates.
func (s *WidgetState) Origin() gg.Point { return s.origin }

// Transform returns the widget's own transform, applied after placement.
func (s *WidgetState) Transform() gg.Matrix { return s.transform }

// WindowTransform maps the widget's local coordinates to window
// coordinates as of the last compose.
func (s *WidgetState) WindowTransform() gg.Matrix { return s.windowTransform }

// LastConstraints returns the constraints of the most recent layout, or
// false if the widget has never been laid out.
func (s *WidgetState) LastConstraints() (layout.BoxConstraints, bool) {
	return s.lastBC, s.hasLastBC
}

// Flags returns the work pending on this node alone.
func (s *WidgetState) Flags() Flags { return s.local }

// AggregateFlags returns the work pending anywhere in the subtree.
func (s *WidgetState) AggregateFlags() Flags { return s.aggregate }

// IsDisabled reports whether the widget or any ancestor is disabled, as of
// the last update pass.
func (s *WidgetState) IsDisabled() bool { return s.effectiveDisabled }

// IsExplicitlyDisabled reports whether the widget itself was disabled.
func (s *WidgetState) IsExplicitlyDisabled() bool { return s.disabled }

// Layer returns the cached paint output, or nil if the widget has not
// painted or painted nothing.
func (s *WidgetState) Layer() *gg.ImageBuf { return s.layer }

// WindowBounds returns the axis-aligned window rectangle covering the
// widget's transformed box.
func (s *WidgetState) WindowBounds() Rect {
	return transformRect(s.windowTransform, s.size)
}

// request marks local work. The aggregate is updated too so that the
// invariant holds for this node; ancestors are fixed by merge-up.
func (s *WidgetState) request(f Flags) {
	s.local |= f
	s.aggregate |= f
}

func (s *WidgetState) clear(f Flags) {
	s.local &^= f
}

// Rect is an axis-aligned rectangle in window coordinates.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Width returns X1 - X0.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns Y1 - Y0.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Contains reports whether p lies inside r (edges included).
func (r Rect) Contains(p gg.Point) bool {
	return p.X >= r.X0 && p.X <= r.X1 && p.Y >= r.Y0 && p.Y <= r.Y1
}

func transformRect(m gg.Matrix, size layout.Size) Rect {
	corners := [4]gg.Point{
		m.TransformPoint(gg.Pt(0, 0)),
		m.TransformPoint(gg.Pt(size.Width, 0)),
		m.TransformPoint(gg.Pt(0, size.Height)),
		m.TransformPoint(gg.Pt(size.Width, size.Height)),
	}
	r := Rect{X0: corners[0].X, Y0: corners[0].Y, X1: corners[0].X, Y1: corners[0].Y}
	for _, c := range corners[1:] {
		r.X0 = min(r.X0, c.X)
		r.Y0 = min(r.Y0, c.Y)
		r.X1 = max(r.X1, c.X)
		r.Y1 = max(r.Y1, c.Y)
	}
	return r
}
