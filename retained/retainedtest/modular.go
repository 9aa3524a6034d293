package retainedtest

import (
	"slices"

	"github.com/agiangrant/arbor/layout"
	"github.com/agiangrant/arbor/retained"
	"github.com/gogpu/gg"
)

// KindModular is the kind reported by a Modular widget with no KindName.
const KindModular retained.WidgetKind = "modular"

// Modular is a widget whose callbacks are plain function fields. Nil
// fields fall back to simple defaults: Layout stacks children vertically
// under loosened constraints, everything else does nothing.
//
// It also records what the passes did to it, for assertions.
type Modular struct {
	KindName retained.WidgetKind
	Role     retained.Role
	Label    string

	// Children are registered in order on the first register pass.
	Children []*retained.WidgetPod

	OnRegister func(ctx *retained.RegisterCtx)
	OnUpdate   func(ctx *retained.UpdateCtx, u retained.Update) error
	OnLayout   func(ctx *retained.LayoutCtx, bc layout.BoxConstraints) (layout.Size, error)
	OnPaint    func(ctx *retained.PaintCtx, dc *gg.Context) error
	OnAccess   func(ctx *retained.AccessCtx, node *retained.AccessNode) error

	Updates     []retained.Update
	LayoutCalls int
	PaintCalls  int
	LastBC      layout.BoxConstraints
}

// NewLeaf returns a childless Modular that wants size.
func NewLeaf(size layout.Size) *Modular {
	return &Modular{
		OnLayout: func(_ *retained.LayoutCtx, bc layout.BoxConstraints) (layout.Size, error) {
			return bc.Constrain(size), nil
		},
	}
}

// NewParent returns a Modular with the given children.
func NewParent(children ...*retained.WidgetPod) *Modular {
	return &Modular{Children: children}
}

func (m *Modular) Kind() retained.WidgetKind {
	if m.KindName == "" {
		return KindModular
	}
	return m.KindName
}

func (m *Modular) RegisterChildren(ctx *retained.RegisterCtx) {
	for _, pod := range m.Children {
		ctx.RegisterChild(pod)
	}
	if m.OnRegister != nil {
		m.OnRegister(ctx)
	}
}

func (m *Modular) Update(ctx *retained.UpdateCtx, u retained.Update) error {
	m.Updates = append(m.Updates, u)
	if m.OnUpdate != nil {
		return m.OnUpdate(ctx, u)
	}
	return nil
}

func (m *Modular) Layout(ctx *retained.LayoutCtx, bc layout.BoxConstraints) (layout.Size, error) {
	m.LayoutCalls++
	m.LastBC = bc
	if m.OnLayout != nil {
		return m.OnLayout(ctx, bc)
	}

	var width, y float64
	for _, id := range m.ChildrenIDs() {
		size := ctx.RunLayout(id, bc.Loosen())
		ctx.PlaceChild(id, gg.Pt(0, y))
		y += size.Height
		width = max(width, size.Width)
	}
	return bc.Constrain(layout.Sz(width, y)), nil
}

func (m *Modular) Paint(ctx *retained.PaintCtx, dc *gg.Context) error {
	m.PaintCalls++
	if m.OnPaint != nil {
		return m.OnPaint(ctx, dc)
	}
	return nil
}

func (m *Modular) AccessibilityRole() retained.Role {
	if m.Role == retained.RoleUnknown {
		return retained.RoleGenericContainer
	}
	return m.Role
}

func (m *Modular) Accessibility(ctx *retained.AccessCtx, node *retained.AccessNode) error {
	node.Label = m.Label
	if m.OnAccess != nil {
		return m.OnAccess(ctx, node)
	}
	return nil
}

func (m *Modular) ChildrenIDs() []retained.WidgetID {
	ids := make([]retained.WidgetID, len(m.Children))
	for i, pod := range m.Children {
		ids[i] = pod.ID()
	}
	return ids
}

// AddChild appends pod to the Modular being mutated by w.
func AddChild(w *retained.WidgetMut, pod *retained.WidgetPod) {
	m := retained.Downcast[*Modular](w)
	m.Children = append(m.Children, pod)
	w.InsertChild(len(w.Children()), pod)
}

// RemoveChild removes child id from the Modular being mutated by w.
func RemoveChild(w *retained.WidgetMut, id retained.WidgetID) {
	m := retained.Downcast[*Modular](w)
	m.Children = slices.DeleteFunc(m.Children, func(p *retained.WidgetPod) bool {
		return p.ID() == id
	})
	w.RemoveChild(id)
}
