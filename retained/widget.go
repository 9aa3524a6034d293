// Package retained provides the retained-mode widget tree: an arena of
// widget nodes, the passes that keep their derived state current, and the
// mutation entry points that change the tree between passes.
//
// The tree is owned by a RenderRoot and driven from a single goroutine.
// Widgets never hold pointers to each other; they refer to children by
// WidgetID and reach them through the context handed to each callback.
//
// A frame is one call to RenderRoot.RunCycle:
//
//	register -> update -> mutate -> layout (+compose) -> paint -> accessibility
//
// Each pass only visits nodes whose dirty flag (or whose subtree's
// aggregated flag) is set, and clears the local flag of every node it
// visits even if the widget callback fails.
package retained

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/agiangrant/arbor/layout"
	"github.com/agiangrant/arbor/properties"
	"github.com/gogpu/gg"
)

// WidgetID uniquely identifies a widget in the tree.
// IDs are never reused within a process; 0 means "no widget".
type WidgetID uint64

var nextWidgetID atomic.Uint64

// NewWidgetID reserves a fresh id. Use it with NewPodWithID when a parent
// needs to know a child's id before the child is inserted.
func NewWidgetID() WidgetID {
	return WidgetID(nextWidgetID.Add(1))
}

// IsZero reports whether id is the "no widget" value.
func (id WidgetID) IsZero() bool { return id == 0 }

func (id WidgetID) String() string {
	return "#" + strconv.FormatUint(uint64(id), 10)
}

// WidgetKind names a widget type. It keys the default property table and
// shows up in diagnostics.
type WidgetKind string

// Widget is implemented by every node in the tree. The capability set is
// flat: a widget that has nothing to do for a pass embeds Leaf and
// inherits a no-op.
//
// Widgets hold no derived state of their own. Size, transforms and dirty
// flags live in the node's WidgetState and are reached through contexts.
type Widget interface {
	// Kind returns a constant name for the widget type.
	Kind() WidgetKind

	// RegisterChildren is called once after insertion (and again whenever
	// the node is flagged NeedsRegister) so the widget can hand its child
	// pods to the arena.
	RegisterChildren(ctx *RegisterCtx)

	// Update delivers a lifecycle event.
	Update(ctx *UpdateCtx, u Update) error

	// Layout must lay out and place every child and return a size that
	// satisfies bc.
	Layout(ctx *LayoutCtx, bc layout.BoxConstraints) (layout.Size, error)

	// Paint draws into a surface whose origin is the widget's top-left
	// corner and whose extent is the widget's size.
	Paint(ctx *PaintCtx, dc *gg.Context) error

	// AccessibilityRole is the role reported to assistive technology.
	AccessibilityRole() Role

	// Accessibility fills in metadata beyond role, bounds and children.
	Accessibility(ctx *AccessCtx, node *AccessNode) error

	// ChildrenIDs returns the widget's children in paint order. It must
	// agree, as a set, with the children registered in the arena.
	ChildrenIDs() []WidgetID
}

// Leaf provides no-op implementations of the optional Widget methods.
// Embed it and implement Kind, Layout and Paint.
type Leaf struct{}

func (Leaf) RegisterChildren(*RegisterCtx)               {}
func (Leaf) Update(*UpdateCtx, Update) error             { return nil }
func (Leaf) AccessibilityRole() Role                     { return RoleGenericContainer }
func (Leaf) Accessibility(*AccessCtx, *AccessNode) error { return nil }
func (Leaf) ChildrenIDs() []WidgetID                     { return nil }

// ============================================================================
// Widget Pods
// ============================================================================

// WidgetOptions are the initial node settings applied on insertion.
type WidgetOptions struct {
	// Transform is applied after the parent places the widget. The zero
	// value means identity.
	Transform gg.Matrix
	// Disabled disables the widget and its whole subtree.
	Disabled bool
}

// WidgetPod holds a widget that has not been inserted into a tree yet.
// Parents keep the pod's ID, hand the pod to RegisterCtx.RegisterChild or
// WidgetMut.InsertChild, and from then on address the child by ID only.
type WidgetPod struct {
	id       WidgetID
	widget   Widget
	options  WidgetOptions
	props    properties.Map
	inserted bool
}

// NewPod wraps w with a fresh id.
func NewPod(w Widget) *WidgetPod {
	return NewPodWithID(w, NewWidgetID())
}

// NewPodWithID wraps w with a caller-reserved id.
func NewPodWithID(w Widget, id WidgetID) *WidgetPod {
	if w == nil {
		panic("retained: NewPod called with nil widget")
	}
	if id.IsZero() {
		id = NewWidgetID()
	}
	return &WidgetPod{id: id, widget: w}
}

// NewPodWithOptions wraps w with a fresh id and the given options.
func NewPodWithOptions(w Widget, opts WidgetOptions) *WidgetPod {
	p := NewPod(w)
	p.options = opts
	return p
}

// WithProps attaches initial property overrides.
func (p *WidgetPod) WithProps(props ...properties.Property) *WidgetPod {
	if p.props == nil {
		p.props = make(properties.Map, len(props))
	}
	for _, prop := range props {
		p.props.Set(prop)
	}
	return p
}

// ID returns the id the widget will have in the tree.
func (p *WidgetPod) ID() WidgetID { return p.id }

// Inner returns the wrapped widget. After insertion the widget belongs to
// the tree and should be reached through Mutate instead.
func (p *WidgetPod) Inner() Widget { return p.widget }

func (p *WidgetPod) String() string {
	return fmt.Sprintf("WidgetPod(%s %v)", p.widget.Kind(), p.id)
}

func identityIfZero(m gg.Matrix) gg.Matrix {
	if m == (gg.Matrix{}) {
		return gg.Identity()
	}
	return m
}
