package widgets

import (
	"github.com/agiangrant/arbor/layout"
	"github.com/agiangrant/arbor/retained"
	"github.com/gogpu/gg"
)

// ============================================================================
// Image
// ============================================================================

// Image draws a bitmap, sized and positioned by an ObjectFit policy. The
// default policy is layout.FitFill.
type Image struct {
	retained.Leaf

	img *gg.ImageBuf
	fit layout.ObjectFit
	alt string
}

// NewImage returns an image widget. img may be nil for an empty image.
func NewImage(img *gg.ImageBuf) *Image {
	return &Image{img: img}
}

// LoadImage reads an image file (PNG, JPEG or WebP) into a widget.
func LoadImage(path string) (*Image, error) {
	img, err := gg.LoadImage(path)
	if err != nil {
		return nil, err
	}
	return NewImage(img), nil
}

// Fit sets the object-fit policy.
func (i *Image) Fit(fit layout.ObjectFit) *Image {
	i.fit = fit
	return i
}

// Alt sets the text reported to assistive technology.
func (i *Image) Alt(alt string) *Image {
	i.alt = alt
	return i
}

// ObjectFit returns the current fit policy.
func (i *Image) ObjectFit() layout.ObjectFit { return i.fit }

// NaturalSize returns the bitmap size in pixels.
func (i *Image) NaturalSize() layout.Size {
	if i.img == nil {
		return layout.ZeroSize
	}
	w, h := i.img.Bounds()
	return layout.Sz(float64(w), float64(h))
}

func (*Image) Kind() retained.WidgetKind { return KindImage }

func (*Image) AccessibilityRole() retained.Role { return retained.RoleImage }

func (i *Image) Accessibility(_ *retained.AccessCtx, node *retained.AccessNode) error {
	node.Label = i.alt
	return nil
}

// Layout sizes the widget per the fit policy. Policies that overflow the
// constraints (cover, none, ...) are clamped; the bitmap is then clipped
// by the widget's bounds at paint time.
func (i *Image) Layout(_ *retained.LayoutCtx, bc layout.BoxConstraints) (layout.Size, error) {
	natural := i.NaturalSize()
	size := i.fit.Size(bc, natural)
	if !size.IsFinite() {
		size = natural
	}
	return bc.Constrain(size), nil
}

func (i *Image) Paint(ctx *retained.PaintCtx, dc *gg.Context) error {
	natural := i.NaturalSize()
	if natural.IsZeroArea() {
		return nil
	}
	dc.Push()
	defer dc.Pop()
	dc.Transform(i.fit.AffineToFill(ctx.Size(), natural))
	dc.DrawImage(i.img, 0, 0)
	return nil
}

// SetImage replaces the bitmap of the Image being mutated.
func SetImage(w *retained.WidgetMut, img *gg.ImageBuf) {
	retained.Downcast[*Image](w).img = img
	w.RequestLayout()
}

// SetFit changes the object-fit policy of the Image being mutated.
func SetFit(w *retained.WidgetMut, fit layout.ObjectFit) {
	retained.Downcast[*Image](w).fit = fit
	w.RequestLayout()
}

// SetAlt changes the accessibility text of the Image being mutated.
func SetAlt(w *retained.WidgetMut, alt string) {
	retained.Downcast[*Image](w).alt = alt
	w.RequestAccessibility()
}
