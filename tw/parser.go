// Package tw turns Tailwind-style utility classes into widget properties.
//
// Supported utilities: bg-*, border, border-*, rounded, rounded-* and the
// padding family (p, px, py, pt, pr, pb, pl). Values come from the default
// palette and spacing scale or from arbitrary values such as bg-[#1da1f2]
// and p-[10px]. Responsive prefixes (sm:, md:, ...) apply mobile-first.
// Classes with state variants (hover:, focus:, dark:, ...) and unknown
// utilities are ignored.
package tw

import (
	"strconv"
	"strings"

	"github.com/agiangrant/arbor/properties"
	"github.com/gogpu/gg"
)

// spacingUnit is the pixel size of one spacing step: p-4 is 16px.
const spacingUnit = 4

var radii = map[string]float64{
	"none": 0,
	"sm":   2,
	"":     4,
	"md":   6,
	"lg":   8,
	"xl":   12,
	"2xl":  16,
	"3xl":  24,
	"full": 9999,
}

// style is one breakpoint's worth of parsed utilities. Nil fields were
// not set by any class.
type style struct {
	background  *gg.RGBA
	borderColor *gg.RGBA
	borderWidth *float64
	radius      *float64
	padding     [4]*float64 // top, right, bottom, left
}

func (s *style) merge(o *style) {
	if o.background != nil {
		s.background = o.background
	}
	if o.borderColor != nil {
		s.borderColor = o.borderColor
	}
	if o.borderWidth != nil {
		s.borderWidth = o.borderWidth
	}
	if o.radius != nil {
		s.radius = o.radius
	}
	for i, v := range o.padding {
		if v != nil {
			s.padding[i] = v
		}
	}
}

// Styles is a parsed class string, bucketed by breakpoint.
type Styles struct {
	levels [numBreakpoints]style
}

// ParsedClass is one class split into its variant and utility.
// "md:p-4" → ParsedClass{Breakpoint: BreakpointMD, BaseClass: "p-4"}
type ParsedClass struct {
	Breakpoint Breakpoint
	// Stateful is set for variants this renderer has no state for.
	Stateful  bool
	BaseClass string
}

// ParseClasses parses a class string. Later classes override earlier ones
// at the same breakpoint.
func ParseClasses(classStr string) Styles {
	var s Styles
	for _, class := range strings.Fields(classStr) {
		pc := parseClass(class)
		if pc.Stateful {
			continue
		}
		applyUtility(&s.levels[pc.Breakpoint], pc.BaseClass)
	}
	return s
}

func parseClass(class string) ParsedClass {
	parts := strings.Split(class, ":")
	pc := ParsedClass{BaseClass: parts[len(parts)-1]}
	for _, v := range parts[:len(parts)-1] {
		if bp, ok := breakpointPrefixes[v]; ok {
			pc.Breakpoint = bp
		} else {
			pc.Stateful = true
		}
	}
	return pc
}

// applyUtility sets the field named by one utility. Unknown utilities and
// unparseable values leave s unchanged.
func applyUtility(s *style, class string) {
	switch {
	case strings.HasPrefix(class, "bg-"):
		if c, ok := color(strings.TrimPrefix(class, "bg-")); ok {
			s.background = &c
		}

	case class == "border":
		s.borderWidth = ptr(1.0)
	case strings.HasPrefix(class, "border-"):
		rest := strings.TrimPrefix(class, "border-")
		if c, ok := color(rest); ok {
			s.borderColor = &c
		} else if w, ok := borderWidth(rest); ok {
			s.borderWidth = &w
		}

	case class == "rounded" || strings.HasPrefix(class, "rounded-"):
		rest := strings.TrimPrefix(strings.TrimPrefix(class, "rounded"), "-")
		if v, ok := arbitrary(rest); ok {
			if d, ok := parseDimension(v); ok {
				s.radius = &d
			}
		} else if r, ok := radii[rest]; ok {
			s.radius = &r
		}

	default:
		side, value, ok := strings.Cut(class, "-")
		if !ok {
			return
		}
		sides, ok := paddingSides[side]
		if !ok {
			return
		}
		v, ok := spacing(value)
		if !ok {
			return
		}
		for _, i := range sides {
			s.padding[i] = &v
		}
	}
}

var paddingSides = map[string][]int{
	"p":  {0, 1, 2, 3},
	"px": {1, 3},
	"py": {0, 2},
	"pt": {0},
	"pr": {1},
	"pb": {2},
	"pl": {3},
}

// ResolveForWidth merges styles from base up through the breakpoint active
// at width and returns the resulting properties.
func (s Styles) ResolveForWidth(width float64, config BreakpointConfig) []properties.Property {
	var out style
	active := config.ActiveBreakpoint(width)
	for bp := BreakpointBase; bp <= active; bp++ {
		out.merge(&s.levels[bp])
	}
	return out.properties()
}

func (s *style) properties() []properties.Property {
	var props []properties.Property
	if s.background != nil {
		props = append(props, properties.Background{Color: *s.background})
	}
	if s.borderColor != nil {
		props = append(props, properties.BorderColor{Color: *s.borderColor})
	}
	if s.borderWidth != nil {
		props = append(props, properties.BorderWidth{Width: *s.borderWidth})
	}
	if s.radius != nil {
		props = append(props, properties.CornerRadius{Radius: *s.radius})
	}
	if s.padding != [4]*float64{} {
		var p [4]float64
		for i, v := range s.padding {
			if v != nil {
				p[i] = *v
			}
		}
		props = append(props, properties.Padding{Top: p[0], Right: p[1], Bottom: p[2], Left: p[3]})
	}
	return props
}

// Properties parses classes and resolves them for a viewport of the given
// width with the default breakpoints.
func Properties(classes string, width float64) []properties.Property {
	return ParseClasses(classes).ResolveForWidth(width, DefaultBreakpoints())
}

// arbitrary extracts the value of "[...]" syntax.
func arbitrary(s string) (string, bool) {
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return s[1 : len(s)-1], true
	}
	return "", false
}

func color(name string) (gg.RGBA, bool) {
	hex, ok := colorHex(name)
	if !ok {
		return gg.RGBA{}, false
	}
	p, err := properties.Decode(properties.KindBackground, hex)
	if err != nil {
		return gg.RGBA{}, false
	}
	return p.(properties.Background).Color, true
}

func borderWidth(s string) (float64, bool) {
	if v, ok := arbitrary(s); ok {
		return parseDimension(v)
	}
	switch s {
	case "0", "2", "4", "8":
		w, _ := strconv.ParseFloat(s, 64)
		return w, true
	}
	return 0, false
}

// spacing resolves "4" (16px), "0.5", "px" (1px) or "[10px]".
func spacing(s string) (float64, bool) {
	if v, ok := arbitrary(s); ok {
		return parseDimension(v)
	}
	if s == "px" {
		return 1, true
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n * spacingUnit, true
}

// parseDimension parses "10px", "1.5rem" or a plain number of pixels.
func parseDimension(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	mult := 1.0
	switch {
	case strings.HasSuffix(value, "px"):
		value = strings.TrimSuffix(value, "px")
	case strings.HasSuffix(value, "rem"):
		value = strings.TrimSuffix(value, "rem")
		mult = 16
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n * mult, true
}

func ptr[T any](v T) *T { return &v }
