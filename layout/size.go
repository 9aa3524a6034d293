// Package layout holds the size algebra used to negotiate sizes between a
// parent widget and its children: Size, BoxConstraints and ObjectFit.
//
// The layout strategy is Flutter-style box layout. A parent hands each
// child a BoxConstraints, the child answers with a Size that satisfies it,
// and the parent then decides where the child goes.
package layout

import (
	"fmt"
	"math"
)

// Size is a 2D extent in logical pixels.
type Size struct {
	Width  float64
	Height float64
}

// ZeroSize is the empty size.
var ZeroSize = Size{}

// Sz is shorthand for Size{Width: w, Height: h}.
func Sz(w, h float64) Size {
	return Size{Width: w, Height: h}
}

// Expand rounds both components away from zero to the nearest integer.
// Infinities and NaN are returned unchanged.
func (s Size) Expand() Size {
	return Size{Width: expand(s.Width), Height: expand(s.Height)}
}

// Clamp clamps each component into [min, max]. A NaN component clamps to
// the minimum.
func (s Size) Clamp(min, max Size) Size {
	return Size{
		Width:  clamp(s.Width, min.Width, max.Width),
		Height: clamp(s.Height, min.Height, max.Height),
	}
}

// IsZeroArea reports whether either dimension is zero.
func (s Size) IsZeroArea() bool {
	return s.Width == 0 || s.Height == 0
}

// IsFinite reports whether both components are finite.
func (s Size) IsFinite() bool {
	return isFinite(s.Width) && isFinite(s.Height)
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

func expand(v float64) float64 {
	if v < 0 {
		return math.Floor(v)
	}
	return math.Ceil(v)
}

func clamp(v, lo, hi float64) float64 {
	if !(v >= lo) {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
