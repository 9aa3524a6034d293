package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/gg"
)

// ObjectFit is the policy that maps a content box with a fixed aspect ratio
// (an image, a video frame) into the size allotted to it.
type ObjectFit uint8

const (
	// FitFill stretches the content to the allotted size, ignoring its
	// aspect ratio. This is the default.
	FitFill ObjectFit = iota
	// FitContain scales the content to fit entirely inside the box.
	FitContain
	// FitCover scales the content to cover the whole box, cropping the
	// overflow.
	FitCover
	// FitHeight scales to match the box height.
	FitHeight
	// FitWidth scales to match the box width.
	FitWidth
	// FitNone keeps the content at its natural size.
	FitNone
	// FitScaleDown behaves like FitNone if the content fits and like
	// FitContain otherwise.
	FitScaleDown
)

var objectFitNames = [...]string{
	FitFill:      "fill",
	FitContain:   "contain",
	FitCover:     "cover",
	FitHeight:    "fit-height",
	FitWidth:     "fit-width",
	FitNone:      "none",
	FitScaleDown: "scale-down",
}

func (f ObjectFit) String() string {
	if int(f) < len(objectFitNames) {
		return objectFitNames[f]
	}
	return fmt.Sprintf("ObjectFit(%d)", uint8(f))
}

// ParseObjectFit parses the names produced by String. Matching ignores
// case and accepts underscores in place of dashes.
func ParseObjectFit(s string) (ObjectFit, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for i, name := range objectFitNames {
		if name == key {
			return ObjectFit(i), nil
		}
	}
	return FitFill, fmt.Errorf("unknown object fit %q", s)
}

// Size picks a layout size for content of the given natural size under bc.
// Content with zero area takes the minimum size.
func (f ObjectFit) Size(bc BoxConstraints, content Size) Size {
	if content.IsZeroArea() {
		return bc.Min()
	}
	ratio := content.Height / content.Width
	max := bc.Max()
	switch f {
	case FitContain:
		return bc.ConstrainAspectRatio(ratio, content.Width)
	case FitCover, FitWidth:
		return Size{Width: max.Width, Height: max.Width * ratio}
	case FitHeight:
		return Size{Width: max.Height / ratio, Height: max.Height}
	case FitNone:
		return content
	case FitScaleDown:
		if bc.Contains(content) {
			return content
		}
		return bc.ConstrainAspectRatio(ratio, content.Width)
	default:
		return max
	}
}

// AffineToFill returns the transform that maps a box of size fitBox into
// parent according to the policy, centering the result. A degenerate
// fitBox yields the identity.
func (f ObjectFit) AffineToFill(parent, fitBox Size) gg.Matrix {
	if fitBox.Width == 0 || fitBox.Height == 0 {
		return gg.Identity()
	}

	rawX := parent.Width / fitBox.Width
	rawY := parent.Height / fitBox.Height

	var sx, sy float64
	switch f {
	case FitContain:
		sx = math.Min(rawX, rawY)
		sy = sx
	case FitCover:
		sx = math.Max(rawX, rawY)
		sy = sx
	case FitHeight:
		sx, sy = rawY, rawY
	case FitWidth:
		sx, sy = rawX, rawX
	case FitScaleDown:
		sx = math.Min(math.Min(rawX, rawY), 1)
		sy = sx
	case FitNone:
		sx, sy = 1, 1
	default:
		sx, sy = rawX, rawY
	}

	ox := (parent.Width - fitBox.Width*sx) / 2
	oy := (parent.Height - fitBox.Height*sy) / 2
	return gg.Matrix{
		A: sx, B: 0, C: ox,
		D: 0, E: sy, F: oy,
	}
}
