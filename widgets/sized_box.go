// Package widgets contains the stock widgets built on the retained tree:
// SizedBox, Flex and Image.
//
// Widgets are configured with builder methods before insertion and changed
// afterwards through the package-level mutators (SetWidth, AddChild, ...),
// which take the *retained.WidgetMut handed out by RenderRoot.Edit.
package widgets

import (
	"math"

	"github.com/agiangrant/arbor/layout"
	"github.com/agiangrant/arbor/properties"
	"github.com/agiangrant/arbor/retained"
	"github.com/gogpu/gg"
)

// Widget kinds, also the keys of the default property table.
const (
	KindSizedBox retained.WidgetKind = "sized_box"
	KindFlex     retained.WidgetKind = "flex"
	KindImage    retained.WidgetKind = "image"
)

// ============================================================================
// SizedBox
// ============================================================================

// SizedBox gives its optional child a fixed width and/or height, and draws
// a box behind it from the Background, BorderColor, BorderWidth,
// CornerRadius and Padding properties.
type SizedBox struct {
	retained.Leaf

	child  *retained.WidgetPod
	width  float64 // NaN when unset
	height float64 // NaN when unset
	label  string
}

// NewSizedBox wraps child. A nil child gives an empty box.
func NewSizedBox(child retained.Widget) *SizedBox {
	b := Empty()
	if child != nil {
		b.child = retained.NewPod(child)
	}
	return b
}

// NewSizedBoxWithPod wraps a pod built by the caller, for example one
// created with retained.NewPodWithOptions.
func NewSizedBoxWithPod(child *retained.WidgetPod) *SizedBox {
	b := Empty()
	b.child = child
	return b
}

// Empty returns a box with no child and no size.
func Empty() *SizedBox {
	return &SizedBox{width: math.NaN(), height: math.NaN()}
}

// Width fixes the width.
func (b *SizedBox) Width(w float64) *SizedBox {
	b.width = w
	return b
}

// Height fixes the height.
func (b *SizedBox) Height(h float64) *SizedBox {
	b.height = h
	return b
}

// Size fixes both dimensions.
func (b *SizedBox) Size(s layout.Size) *SizedBox {
	return b.Width(s.Width).Height(s.Height)
}

// Expand makes the box as large as its constraints allow.
func (b *SizedBox) Expand() *SizedBox {
	return b.Size(layout.Sz(math.Inf(1), math.Inf(1)))
}

// Label sets the accessibility label.
func (b *SizedBox) Label(label string) *SizedBox {
	b.label = label
	return b
}

// ChildID returns the child's id, or zero if the box is empty.
func (b *SizedBox) ChildID() retained.WidgetID {
	if b.child == nil {
		return 0
	}
	return b.child.ID()
}

func (*SizedBox) Kind() retained.WidgetKind { return KindSizedBox }

func (b *SizedBox) RegisterChildren(ctx *retained.RegisterCtx) {
	if b.child != nil {
		ctx.RegisterChild(b.child)
	}
}

func (b *SizedBox) ChildrenIDs() []retained.WidgetID {
	if b.child == nil {
		return nil
	}
	return []retained.WidgetID{b.child.ID()}
}

// constraints narrows bc to the fixed dimensions. Fixed sizes are clamped
// into bc and infinite ones resolve to bc's maximum.
func (b *SizedBox) constraints(bc layout.BoxConstraints) layout.BoxConstraints {
	lo, hi := bc.Min(), bc.Max()
	if !math.IsNaN(b.width) {
		w := b.width
		if math.IsInf(w, 1) && !bc.IsWidthBounded() {
			w = lo.Width
		}
		w = math.Max(lo.Width, math.Min(w, hi.Width))
		lo.Width, hi.Width = w, w
	}
	if !math.IsNaN(b.height) {
		h := b.height
		if math.IsInf(h, 1) && !bc.IsHeightBounded() {
			h = lo.Height
		}
		h = math.Max(lo.Height, math.Min(h, hi.Height))
		lo.Height, hi.Height = h, h
	}
	return layout.NewBoxConstraints(lo, hi)
}

func (b *SizedBox) Layout(ctx *retained.LayoutCtx, bc layout.BoxConstraints) (layout.Size, error) {
	own := b.constraints(bc)
	in := boxInsets(ctx.Props())

	if b.child == nil {
		return own.Constrain(layout.Sz(in.Horizontal(), in.Vertical())), nil
	}
	childBC := own.Shrink(layout.Sz(in.Horizontal(), in.Vertical()))
	cs := ctx.RunLayout(b.child.ID(), childBC)
	ctx.PlaceChild(b.child.ID(), gg.Pt(in.Left, in.Top))
	return own.Constrain(layout.Sz(cs.Width+in.Horizontal(), cs.Height+in.Vertical())), nil
}

func (b *SizedBox) Paint(ctx *retained.PaintCtx, dc *gg.Context) error {
	return paintBox(ctx.Props(), ctx.Size(), dc)
}

func (b *SizedBox) AccessibilityRole() retained.Role {
	if b.child == nil {
		return retained.RoleGenericContainer
	}
	return retained.RoleGroup
}

func (b *SizedBox) Accessibility(_ *retained.AccessCtx, node *retained.AccessNode) error {
	node.Label = b.label
	return nil
}

// SetWidth changes the fixed width of the box being mutated. NaN unsets it.
func SetWidth(w *retained.WidgetMut, width float64) {
	retained.Downcast[*SizedBox](w).width = width
	w.RequestLayout()
}

// SetHeight changes the fixed height of the box being mutated. NaN unsets it.
func SetHeight(w *retained.WidgetMut, height float64) {
	retained.Downcast[*SizedBox](w).height = height
	w.RequestLayout()
}

// ============================================================================
// Box Painting
// ============================================================================

// boxInsets is padding plus border width on every side.
func boxInsets(props properties.Ref) properties.Padding {
	pad := properties.Get[properties.Padding](props)
	bw := properties.Get[properties.BorderWidth](props).Width
	return properties.Padding{
		Top:    pad.Top + bw,
		Right:  pad.Right + bw,
		Bottom: pad.Bottom + bw,
		Left:   pad.Left + bw,
	}
}

// paintBox fills the background and strokes the border, both inside the
// widget's bounds.
func paintBox(props properties.Ref, size layout.Size, dc *gg.Context) error {
	radius := properties.Get[properties.CornerRadius](props).Radius
	if bg, ok := properties.Lookup[properties.Background](props); ok {
		dc.SetRGBA(bg.Color.R, bg.Color.G, bg.Color.B, bg.Color.A)
		boxPath(dc, 0, 0, size.Width, size.Height, radius)
		if err := dc.Fill(); err != nil {
			return err
		}
	}

	bw := properties.Get[properties.BorderWidth](props).Width
	if bw <= 0 {
		return nil
	}
	border, ok := properties.Lookup[properties.BorderColor](props)
	if !ok {
		border = properties.BorderColor{Color: gg.RGBA{A: 1}}
	}
	dc.SetRGBA(border.Color.R, border.Color.G, border.Color.B, border.Color.A)
	dc.SetLineWidth(bw)
	half := bw / 2
	boxPath(dc, half, half, size.Width-bw, size.Height-bw, math.Max(radius-half, 0))
	return dc.Stroke()
}

func boxPath(dc *gg.Context, x, y, w, h, r float64) {
	if r > 0 {
		dc.DrawRoundedRectangle(x, y, w, h, r)
		return
	}
	dc.DrawRectangle(x, y, w, h)
}
