package properties

import "github.com/gogpu/gg"

// Property kinds understood by the loader.
const (
	KindBackground   Kind = "background"
	KindBorderColor  Kind = "border_color"
	KindBorderWidth  Kind = "border_width"
	KindCornerRadius Kind = "corner_radius"
	KindPadding      Kind = "padding"
)

// Background fills the widget's box.
type Background struct {
	Color gg.RGBA
}

func (Background) Kind() Kind { return KindBackground }

// BorderColor is the stroke color of the widget's border.
type BorderColor struct {
	Color gg.RGBA
}

func (BorderColor) Kind() Kind { return KindBorderColor }

// BorderWidth is the border stroke width in logical pixels.
type BorderWidth struct {
	Width float64
}

func (BorderWidth) Kind() Kind { return KindBorderWidth }

// CornerRadius rounds the widget's box.
type CornerRadius struct {
	Radius float64
}

func (CornerRadius) Kind() Kind { return KindCornerRadius }

// Padding insets content from the widget's edges.
type Padding struct {
	Top, Right, Bottom, Left float64
}

func (Padding) Kind() Kind { return KindPadding }

// PaddingAll pads every side by v.
func PaddingAll(v float64) Padding {
	return Padding{Top: v, Right: v, Bottom: v, Left: v}
}

// PaddingXY pads left/right by x and top/bottom by y.
func PaddingXY(x, y float64) Padding {
	return Padding{Top: y, Right: x, Bottom: y, Left: x}
}

// Horizontal returns Left + Right.
func (p Padding) Horizontal() float64 { return p.Left + p.Right }

// Vertical returns Top + Bottom.
func (p Padding) Vertical() float64 { return p.Top + p.Bottom }
