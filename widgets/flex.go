package widgets

import (
	"fmt"
	"math"
	"slices"

	"github.com/agiangrant/arbor/layout"
	"github.com/agiangrant/arbor/retained"
	"github.com/gogpu/gg"
)

// ============================================================================
// Flex
// ============================================================================

// Axis is the main axis of a Flex.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// MainAlign distributes leftover space along the main axis.
type MainAlign uint8

const (
	MainStart MainAlign = iota
	MainCenter
	MainEnd
	MainSpaceBetween
)

// CrossAlign positions children on the cross axis.
type CrossAlign uint8

const (
	CrossStart CrossAlign = iota
	CrossCenter
	CrossEnd
	// CrossStretch gives every child the full cross extent.
	CrossStretch
)

var (
	mainAlignNames  = [...]string{"start", "center", "end", "space_between"}
	crossAlignNames = [...]string{"start", "center", "end", "stretch"}
)

func (a MainAlign) String() string {
	if int(a) < len(mainAlignNames) {
		return mainAlignNames[a]
	}
	return fmt.Sprintf("MainAlign(%d)", a)
}

func (a CrossAlign) String() string {
	if int(a) < len(crossAlignNames) {
		return crossAlignNames[a]
	}
	return fmt.Sprintf("CrossAlign(%d)", a)
}

// ParseMainAlign maps a name to a MainAlign. The empty string is MainStart.
func ParseMainAlign(s string) (MainAlign, error) {
	if s == "" {
		return MainStart, nil
	}
	for i, name := range mainAlignNames {
		if name == s {
			return MainAlign(i), nil
		}
	}
	return MainStart, fmt.Errorf("unknown main alignment %q", s)
}

// ParseCrossAlign maps a name to a CrossAlign. The empty string is
// CrossStart.
func ParseCrossAlign(s string) (CrossAlign, error) {
	if s == "" {
		return CrossStart, nil
	}
	for i, name := range crossAlignNames {
		if name == s {
			return CrossAlign(i), nil
		}
	}
	return CrossStart, fmt.Errorf("unknown cross alignment %q", s)
}

type flexChild struct {
	pod  *retained.WidgetPod
	flex float64 // 0 for a child sized by its content
}

// Flex lays its children out in a row or column. Children with a flex
// factor share the main-axis space left over by the others, in proportion
// to their factors.
type Flex struct {
	retained.Leaf

	axis     Axis
	gap      float64
	main     MainAlign
	cross    CrossAlign
	children []flexChild
}

// Row returns a horizontal Flex.
func Row() *Flex { return &Flex{axis: Horizontal} }

// Column returns a vertical Flex.
func Column() *Flex { return &Flex{axis: Vertical} }

// WithChild appends a child sized by its content.
func (f *Flex) WithChild(w retained.Widget) *Flex {
	return f.WithChildPod(retained.NewPod(w))
}

// WithChildPod appends a pre-built pod sized by its content.
func (f *Flex) WithChildPod(pod *retained.WidgetPod) *Flex {
	f.children = append(f.children, flexChild{pod: pod})
	return f
}

// WithFlexChild appends a child that takes a share of the leftover space.
func (f *Flex) WithFlexChild(pod *retained.WidgetPod, flex float64) *Flex {
	f.children = append(f.children, flexChild{pod: pod, flex: flex})
	return f
}

// WithSpacer appends an empty flexible box.
func (f *Flex) WithSpacer(flex float64) *Flex {
	return f.WithFlexChild(retained.NewPod(Empty()), flex)
}

// WithGap sets the space between adjacent children.
func (f *Flex) WithGap(gap float64) *Flex {
	f.gap = gap
	return f
}

// WithMainAlign sets main-axis distribution.
func (f *Flex) WithMainAlign(a MainAlign) *Flex {
	f.main = a
	return f
}

// WithCrossAlign sets cross-axis alignment.
func (f *Flex) WithCrossAlign(a CrossAlign) *Flex {
	f.cross = a
	return f
}

func (*Flex) Kind() retained.WidgetKind { return KindFlex }

func (*Flex) AccessibilityRole() retained.Role { return retained.RoleGroup }

func (f *Flex) RegisterChildren(ctx *retained.RegisterCtx) {
	for _, c := range f.children {
		ctx.RegisterChild(c.pod)
	}
}

func (f *Flex) ChildrenIDs() []retained.WidgetID {
	ids := make([]retained.WidgetID, len(f.children))
	for i, c := range f.children {
		ids[i] = c.pod.ID()
	}
	return ids
}

// major and minor split a size along the axis.
func (a Axis) major(s layout.Size) float64 {
	if a == Horizontal {
		return s.Width
	}
	return s.Height
}

func (a Axis) minor(s layout.Size) float64 {
	if a == Horizontal {
		return s.Height
	}
	return s.Width
}

func (a Axis) pack(major, minor float64) layout.Size {
	if a == Horizontal {
		return layout.Sz(major, minor)
	}
	return layout.Sz(minor, major)
}

func (a Axis) constraints(minMajor, maxMajor, minMinor, maxMinor float64) layout.BoxConstraints {
	return layout.NewBoxConstraints(a.pack(minMajor, minMinor), a.pack(maxMajor, maxMinor))
}

func (f *Flex) Layout(ctx *retained.LayoutCtx, bc layout.BoxConstraints) (layout.Size, error) {
	in := boxInsets(ctx.Props())
	inner := bc.Shrink(layout.Sz(in.Horizontal(), in.Vertical()))
	ax := f.axis

	maxMajor := ax.major(inner.Max())
	mainBounded := !math.IsInf(maxMajor, 1)
	maxMinor := ax.minor(inner.Max())
	minMinor := 0.0
	if f.cross == CrossStretch && !math.IsInf(maxMinor, 1) {
		minMinor = maxMinor
	}

	sizes := make([]layout.Size, len(f.children))
	used := f.gap * float64(max(len(f.children)-1, 0))
	var totalFlex float64

	// Content-sized children first; flexible ones only get what is left.
	for i, c := range f.children {
		if c.flex > 0 && mainBounded {
			totalFlex += c.flex
			continue
		}
		sizes[i] = ctx.RunLayout(c.pod.ID(), ax.constraints(0, math.Inf(1), minMinor, maxMinor))
		used += ax.major(sizes[i])
	}
	if totalFlex > 0 {
		remaining := math.Max(maxMajor-used, 0)
		for i, c := range f.children {
			if c.flex <= 0 {
				continue
			}
			share := math.Floor(remaining * c.flex / totalFlex)
			sizes[i] = ctx.RunLayout(c.pod.ID(), ax.constraints(share, share, minMinor, maxMinor))
			used += ax.major(sizes[i])
		}
	}

	var cross float64
	for _, s := range sizes {
		cross = math.Max(cross, ax.minor(s))
	}
	major := used
	if totalFlex > 0 {
		major = math.Max(used, maxMajor)
	}
	content := inner.Constrain(ax.pack(major, cross))

	// Leftover main-axis space, distributed per MainAlign.
	free := math.Max(ax.major(content)-used, 0)
	pos, spacing := 0.0, f.gap
	switch f.main {
	case MainCenter:
		pos = free / 2
	case MainEnd:
		pos = free
	case MainSpaceBetween:
		if len(f.children) > 1 {
			spacing += free / float64(len(f.children)-1)
		}
	}

	for i, c := range f.children {
		var off float64
		switch f.cross {
		case CrossCenter:
			off = (ax.minor(content) - ax.minor(sizes[i])) / 2
		case CrossEnd:
			off = ax.minor(content) - ax.minor(sizes[i])
		}
		p := ax.pack(pos, off)
		ctx.PlaceChild(c.pod.ID(), gg.Pt(p.Width+in.Left, p.Height+in.Top))
		pos += ax.major(sizes[i]) + spacing
	}

	return bc.Constrain(layout.Sz(content.Width+in.Horizontal(), content.Height+in.Vertical())), nil
}

func (f *Flex) Paint(ctx *retained.PaintCtx, dc *gg.Context) error {
	return paintBox(ctx.Props(), ctx.Size(), dc)
}

// AddChild appends w to the Flex being mutated and returns the new
// child's id.
func AddChild(w *retained.WidgetMut, child retained.Widget) retained.WidgetID {
	return AddFlexChild(w, retained.NewPod(child), 0)
}

// AddFlexChild appends pod with the given flex factor to the Flex being
// mutated.
func AddFlexChild(w *retained.WidgetMut, pod *retained.WidgetPod, flex float64) retained.WidgetID {
	f := retained.Downcast[*Flex](w)
	f.children = append(f.children, flexChild{pod: pod, flex: flex})
	w.InsertChild(len(w.Children()), pod)
	return pod.ID()
}

// RemoveChild removes child id from the Flex being mutated.
func RemoveChild(w *retained.WidgetMut, id retained.WidgetID) {
	f := retained.Downcast[*Flex](w)
	f.children = slices.DeleteFunc(f.children, func(c flexChild) bool {
		return c.pod.ID() == id
	})
	w.RemoveChild(id)
}

// SetGap changes the gap of the Flex being mutated.
func SetGap(w *retained.WidgetMut, gap float64) {
	retained.Downcast[*Flex](w).gap = gap
	w.RequestLayout()
}

// SetCrossAlign changes the cross-axis alignment of the Flex being mutated.
func SetCrossAlign(w *retained.WidgetMut, a CrossAlign) {
	retained.Downcast[*Flex](w).cross = a
	w.RequestLayout()
}
