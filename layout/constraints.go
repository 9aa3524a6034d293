package layout

import (
	"fmt"
	"math"

	"github.com/agiangrant/arbor/internal/diag"
)

// BoxConstraints is the min/max size pair a parent passes to a child during
// layout. A child's Layout must return a size inside the box.
//
// Both bounds are rounded away from zero on construction so layout stays
// pixel aligned. Min must be finite; Max may be +Inf on either axis.
type BoxConstraints struct {
	min Size
	max Size
}

// Unbounded can be satisfied by any non-negative size.
var Unbounded = BoxConstraints{
	min: ZeroSize,
	max: Size{Width: math.Inf(1), Height: math.Inf(1)},
}

// NewBoxConstraints builds constraints from a minimum and maximum size.
// Both are expanded to integers.
func NewBoxConstraints(min, max Size) BoxConstraints {
	return BoxConstraints{min: min.Expand(), max: max.Expand()}
}

// Tight returns constraints that only the given size (expanded) satisfies.
func Tight(size Size) BoxConstraints {
	size = size.Expand()
	return BoxConstraints{min: size, max: size}
}

// Min returns the minimum size.
func (bc BoxConstraints) Min() Size { return bc.min }

// Max returns the maximum size.
func (bc BoxConstraints) Max() Size { return bc.max }

// Loosen keeps the maximum but drops the minimum to zero.
func (bc BoxConstraints) Loosen() BoxConstraints {
	return BoxConstraints{min: ZeroSize, max: bc.max}
}

// Constrain expands size and clamps it into the box.
func (bc BoxConstraints) Constrain(size Size) Size {
	return size.Expand().Clamp(bc.min, bc.max)
}

// IsWidthBounded reports whether max width is finite.
func (bc BoxConstraints) IsWidthBounded() bool {
	return isFinite(bc.max.Width)
}

// IsHeightBounded reports whether max height is finite.
func (bc BoxConstraints) IsHeightBounded() bool {
	return isFinite(bc.max.Height)
}

// BoundedOr returns the max on each bounded axis and the fallback's value
// on each unbounded one.
func (bc BoxConstraints) BoundedOr(fallback Size) Size {
	out := fallback
	if bc.IsWidthBounded() {
		out.Width = bc.max.Width
	}
	if bc.IsHeightBounded() {
		out.Height = bc.max.Height
	}
	return out
}

// Shrink subtracts delta (expanded) from both bounds, flooring at zero.
// Used for padding and border insets.
func (bc BoxConstraints) Shrink(delta Size) BoxConstraints {
	delta = delta.Expand()
	min := Size{
		Width:  math.Max(bc.min.Width-delta.Width, 0),
		Height: math.Max(bc.min.Height-delta.Height, 0),
	}
	max := Size{
		Width:  math.Max(bc.max.Width-delta.Width, 0),
		Height: math.Max(bc.max.Height-delta.Height, 0),
	}
	return NewBoxConstraints(min, max)
}

// Contains reports whether size lies inside the box, bounds included.
func (bc BoxConstraints) Contains(size Size) bool {
	return bc.min.Width <= size.Width && size.Width <= bc.max.Width &&
		bc.min.Height <= size.Height && size.Height <= bc.max.Height
}

// ConstrainAspectRatio finds the size inside the box whose height/width
// ratio is closest to aspectRatio. Among sizes with the optimal ratio, the
// one whose width is nearest to width wins: width 0 picks the smallest
// size and a very large width picks the largest.
//
// It panics if aspectRatio or width is NaN, infinite or negative.
func (bc BoxConstraints) ConstrainAspectRatio(aspectRatio, width float64) Size {
	if !isFinite(aspectRatio) {
		panic("layout: aspectRatio must be a finite value")
	}
	if !isFinite(width) {
		panic("layout: width must be a finite value")
	}
	if aspectRatio < 0 {
		panic("layout: aspectRatio must be 0 or greater")
	}
	if width < 0 {
		panic("layout: width must be 0 or greater")
	}

	ideal := Size{Width: width, Height: width * aspectRatio}
	if bc.Contains(ideal) {
		return ideal
	}

	minWMinH := bc.min.Height / bc.min.Width
	maxWMinH := bc.min.Height / bc.max.Width
	minWMaxH := bc.max.Height / bc.min.Width
	maxWMaxH := bc.max.Height / bc.max.Width

	// Everything is linear, so the answer is either a corner (the ratio line
	// misses the box) or where the line enters or leaves the box.
	switch {
	case aspectRatio > minWMaxH:
		return Size{Width: bc.min.Width, Height: bc.max.Height}
	case aspectRatio < maxWMinH:
		return Size{Width: bc.max.Width, Height: bc.min.Height}
	case aspectRatio > minWMinH:
		// enters through the min width edge
		switch {
		case width < bc.min.Width:
			return Size{Width: bc.min.Width, Height: bc.min.Width * aspectRatio}
		case aspectRatio < maxWMaxH:
			return Size{Width: bc.max.Width, Height: bc.max.Width * aspectRatio}
		default:
			return Size{Width: bc.max.Height / aspectRatio, Height: bc.max.Height}
		}
	default:
		// enters through the min height edge
		switch {
		case width < bc.min.Width:
			return Size{Width: bc.min.Height / aspectRatio, Height: bc.min.Height}
		case aspectRatio > maxWMaxH:
			return Size{Width: bc.max.Height / aspectRatio, Height: bc.max.Height}
		default:
			return Size{Width: bc.max.Width, Height: bc.max.Width * aspectRatio}
		}
	}
}

// DebugCheck audits the constraints and reports NaN bounds, infinite
// minimums, min > max and unrounded values as defects. name identifies the
// receiver of the constraints in the report. It does nothing in release
// builds.
func (bc BoxConstraints) DebugCheck(name string) {
	if !diag.Assertions() {
		return
	}
	switch {
	case math.IsNaN(bc.min.Width):
		diag.Defectf("minimum width constraint passed to %s is NaN", name)
	case math.IsNaN(bc.min.Height):
		diag.Defectf("minimum height constraint passed to %s is NaN", name)
	case math.IsNaN(bc.max.Width):
		diag.Defectf("maximum width constraint passed to %s is NaN", name)
	case math.IsNaN(bc.max.Height):
		diag.Defectf("maximum height constraint passed to %s is NaN", name)
	case math.IsInf(bc.min.Width, 0):
		diag.Defectf("infinite minimum width constraint passed to %s", name)
	case math.IsInf(bc.min.Height, 0):
		diag.Defectf("infinite minimum height constraint passed to %s", name)
	case !(0 <= bc.min.Width && bc.min.Width <= bc.max.Width &&
		0 <= bc.min.Height && bc.min.Height <= bc.max.Height &&
		bc.min.Expand() == bc.min && bc.max.Expand() == bc.max):
		diag.Defectf("bad BoxConstraints passed to %s: %v", name, bc)
	}
}

func (bc BoxConstraints) String() string {
	return fmt.Sprintf("BoxConstraints{min: %v, max: %v}", bc.min, bc.max)
}
