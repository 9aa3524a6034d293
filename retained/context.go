package retained

import (
	"slices"

	"github.com/agiangrant/arbor/internal/diag"
	"github.com/agiangrant/arbor/layout"
	"github.com/agiangrant/arbor/properties"
	"github.com/gogpu/gg"
)

// ============================================================================
// Pass Contexts
// ============================================================================

// ctxBase is shared by every pass context. A context is only valid for the
// duration of the callback it was passed to.
type ctxBase struct {
	root *RenderRoot
	n    *node
}

// WidgetID returns the id of the widget being visited.
func (c *ctxBase) WidgetID() WidgetID { return c.n.id }

// Size returns the widget's size from the most recent layout.
func (c *ctxBase) Size() layout.Size { return c.n.state.size }

// IsDisabled reports whether the widget or an ancestor is disabled.
func (c *ctxBase) IsDisabled() bool { return c.n.state.effectiveDisabled }

// State returns the widget's derived state.
func (c *ctxBase) State() *WidgetState { return &c.n.state }

// Props returns the widget's overrides merged with the kind defaults.
func (c *ctxBase) Props() properties.Ref { return c.root.propsOf(c.n) }

// Children returns the widget's children in arena order. The slice must
// not be modified.
func (c *ctxBase) Children() []WidgetID { return c.n.children }

// MutateLater queues fn to run against id in the next mutate pass. This is
// the only way to change another widget while a pass is running.
func (c *ctxBase) MutateLater(id WidgetID, fn func(*WidgetMut)) {
	c.root.MutateLater(id, fn)
}

// RequestLayout marks the widget for layout, paint and accessibility.
func (c *ctxBase) RequestLayout() {
	c.n.state.request(NeedsLayout | NeedsPaint | NeedsAccessibility)
}

// RequestPaint marks the widget's layer as stale.
func (c *ctxBase) RequestPaint() { c.n.state.request(NeedsPaint) }

// RequestAccessibility marks the widget's accessibility entry as stale.
func (c *ctxBase) RequestAccessibility() { c.n.state.request(NeedsAccessibility) }

func (c *ctxBase) directChild(id WidgetID) *node {
	if !slices.Contains(c.n.children, id) {
		diag.Abortf("%v is not a child of %s %v", id, c.n.widget.Kind(), c.n.id)
	}
	return c.root.arena.mustGet(id)
}

// RegisterCtx is passed to Widget.RegisterChildren.
type RegisterCtx struct {
	ctxBase
}

// RegisterChild inserts pod as the widget's last child. Registering a pod
// that is already this widget's child is a no-op, so widgets may register
// every pod they own each time they are asked.
func (c *RegisterCtx) RegisterChild(pod *WidgetPod) {
	if pod.inserted {
		if existing, ok := c.root.arena.get(pod.id); ok && existing.parent == c.n.id {
			return
		}
	}
	c.root.insertPod(c.n.id, len(c.n.children), pod)
}

// UpdateCtx is passed to Widget.Update.
type UpdateCtx struct {
	ctxBase
}

// LayoutCtx is passed to Widget.Layout.
type LayoutCtx struct {
	ctxBase
}

// RunLayout lays out a direct child under bc and returns its size. The
// child's previous size is reused when neither it nor its subtree changed
// and bc equals the constraints of its last layout.
func (c *LayoutCtx) RunLayout(child WidgetID, bc layout.BoxConstraints) layout.Size {
	return c.root.runLayout(c.directChild(child), bc)
}

// PlaceChild sets the position of a child in this widget's coordinates.
// Every child must be placed after RunLayout, in every layout.
func (c *LayoutCtx) PlaceChild(child WidgetID, origin gg.Point) {
	cn := c.directChild(child)
	if cn.state.layoutEpoch != c.root.epoch {
		diag.Defectf("%v placed before RunLayout in this pass", child)
	}
	if cn.state.origin != origin {
		cn.state.origin = origin
		cn.state.request(NeedsCompose)
	}
	cn.state.placed = true
}

// ChildSize returns the size of a child as of its last layout.
func (c *LayoutCtx) ChildSize(child WidgetID) layout.Size {
	return c.directChild(child).state.size
}

// PaintCtx is passed to Widget.Paint.
type PaintCtx struct {
	ctxBase
}

// AccessCtx is passed to Widget.Accessibility.
type AccessCtx struct {
	ctxBase
}
