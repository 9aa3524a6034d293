package tw

// Breakpoint represents responsive breakpoint
type Breakpoint int

const (
	BreakpointBase Breakpoint = iota
	BreakpointSM              // ≥640px
	BreakpointMD              // ≥768px
	BreakpointLG              // ≥1024px
	BreakpointXL              // ≥1280px
	Breakpoint2XL             // ≥1536px

	numBreakpoints
)

var breakpointPrefixes = map[string]Breakpoint{
	"sm":  BreakpointSM,
	"md":  BreakpointMD,
	"lg":  BreakpointLG,
	"xl":  BreakpointXL,
	"2xl": Breakpoint2XL,
}

// BreakpointConfig holds the pixel thresholds for responsive breakpoints.
// Styles apply at the breakpoint width and above.
type BreakpointConfig struct {
	SM  float64
	MD  float64
	LG  float64
	XL  float64
	XXL float64
}

// DefaultBreakpoints returns the standard Tailwind CSS v4 breakpoint values.
func DefaultBreakpoints() BreakpointConfig {
	return BreakpointConfig{
		SM:  640,
		MD:  768,
		LG:  1024,
		XL:  1280,
		XXL: 1536,
	}
}

// ActiveBreakpoint returns the highest breakpoint that width satisfies.
func (c BreakpointConfig) ActiveBreakpoint(width float64) Breakpoint {
	switch {
	case width >= c.XXL:
		return Breakpoint2XL
	case width >= c.XL:
		return BreakpointXL
	case width >= c.LG:
		return BreakpointLG
	case width >= c.MD:
		return BreakpointMD
	case width >= c.SM:
		return BreakpointSM
	}
	return BreakpointBase
}
