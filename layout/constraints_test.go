package layout

import (
	"math"
	"math/rand"
	"testing"

	"github.com/agiangrant/arbor/internal/diag"
)

func bc(minW, minH, maxW, maxH float64) BoxConstraints {
	return NewBoxConstraints(Sz(minW, minH), Sz(maxW, maxH))
}

func TestConstrainAspectRatio(t *testing.T) {
	inf := math.Inf(1)
	tests := []struct {
		name  string
		bc    BoxConstraints
		ratio float64
		width float64
		want  Size
	}{
		// ideal size already inside the box
		{"ideal inside", bc(0, 0, 100, 100), 1, 50, Sz(50, 50)},
		{"ideal inside with min height", bc(0, 10, 90, 100), 1, 50, Sz(50, 50)},

		// ratio reachable, width is not: min height edge
		{"min height square", bc(10, 10, 100, 100), 1, 5, Sz(10, 10)},
		{"min height tall", bc(40, 90, 60, 100), 2, 30, Sz(45, 90)},
		{"min height wide", bc(10, 10, 100, 100), 0.5, 5, Sz(20, 10)},

		// min width edge
		{"min width tall", bc(10, 10, 100, 100), 2, 5, Sz(10, 20)},
		{"min width wide", bc(90, 40, 100, 60), 0.5, 60, Sz(90, 45)},
		{"fixed width", bc(50, 0, 50, 100), 1, 100, Sz(50, 50)},

		// max edges
		{"max height tall", bc(10, 10, 100, 100), 2, 105, Sz(50, 100)},
		{"max width wide", bc(10, 10, 100, 100), 0.5, 105, Sz(100, 50)},

		// ratio not reachable: nearest corner
		{"too tall", bc(20, 20, 40, 40), 10, 30, Sz(20, 40)},
		{"too wide", bc(20, 20, 40, 40), 0.1, 30, Sz(40, 20)},

		// unbounded height
		{"unbounded height", bc(50, 0, 50, inf), 1, 100, Sz(50, 50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.bc.ConstrainAspectRatio(tt.ratio, tt.width)
			if got != tt.want {
				t.Fatalf("%v.ConstrainAspectRatio(%v, %v) = %v, want %v",
					tt.bc, tt.ratio, tt.width, got, tt.want)
			}
			if !tt.bc.Contains(got) {
				t.Errorf("result %v escapes %v", got, tt.bc)
			}
			again := tt.bc.ConstrainAspectRatio(tt.ratio, got.Width)
			if again != got {
				t.Errorf("re-applying with width %v gave %v, want %v", got.Width, again, got)
			}
		})
	}
}

func TestConstrainAspectRatioPanicsOnBadInput(t *testing.T) {
	tests := []struct {
		name         string
		ratio, width float64
	}{
		{"nan ratio", math.NaN(), 1},
		{"infinite ratio", math.Inf(1), 1},
		{"negative ratio", -1, 1},
		{"nan width", 1, math.NaN()},
		{"infinite width", 1, math.Inf(1)},
		{"negative width", 1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			bc(0, 0, 10, 10).ConstrainAspectRatio(tt.ratio, tt.width)
		})
	}
}

func TestConstrainStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		minW, minH := rng.Float64()*100, rng.Float64()*100
		c := bc(minW, minH, minW+rng.Float64()*100, minH+rng.Float64()*100)
		in := Sz(rng.Float64()*400-100, rng.Float64()*400-100)
		got := c.Constrain(in)
		if !c.Contains(got) {
			t.Fatalf("%v.Constrain(%v) = %v, outside the box", c, in, got)
		}
	}
}

func TestConstrainRoundsBeforeClamping(t *testing.T) {
	c := bc(0, 0, 100, 100)
	if got := c.Constrain(Sz(10.2, 99.1)); got != Sz(11, 100) {
		t.Errorf("Constrain = %v, want 11x100", got)
	}
}

func TestLoosen(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 100; i++ {
		c := bc(rng.Float64()*50, rng.Float64()*50, 50+rng.Float64()*50, 50+rng.Float64()*50)
		l := c.Loosen()
		if l.Min() != ZeroSize {
			t.Fatalf("Loosen().Min() = %v, want zero", l.Min())
		}
		if l.Max() != c.Max() {
			t.Fatalf("Loosen().Max() = %v, want %v", l.Max(), c.Max())
		}
	}
}

func TestTightAndNewExpand(t *testing.T) {
	c := Tight(Sz(10.5, 3.2))
	if c.Min() != Sz(11, 4) || c.Max() != Sz(11, 4) {
		t.Errorf("Tight = %v", c)
	}
	n := NewBoxConstraints(Sz(0.5, 0.5), Sz(9.1, 9.9))
	if n.Min() != Sz(1, 1) || n.Max() != Sz(10, 10) {
		t.Errorf("NewBoxConstraints = %v", n)
	}
}

func TestShrink(t *testing.T) {
	tests := []struct {
		name  string
		in    BoxConstraints
		delta Size
		want  BoxConstraints
	}{
		{"insets", bc(20, 20, 100, 100), Sz(10, 4), bc(10, 16, 90, 96)},
		{"floors at zero", bc(5, 5, 8, 8), Sz(10, 10), bc(0, 0, 0, 0)},
		{"delta is expanded", bc(0, 0, 100, 100), Sz(0.5, 0.5), bc(0, 0, 99, 99)},
		{"unbounded stays unbounded", Unbounded, Sz(10, 10), Unbounded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Shrink(tt.delta); got != tt.want {
				t.Errorf("Shrink(%v) = %v, want %v", tt.delta, got, tt.want)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	if Unbounded.IsWidthBounded() || Unbounded.IsHeightBounded() {
		t.Error("Unbounded reports a bound")
	}
	if Unbounded.Min() != ZeroSize {
		t.Errorf("Unbounded.Min() = %v", Unbounded.Min())
	}

	half := bc(0, 0, 80, math.Inf(1))
	if !half.IsWidthBounded() || half.IsHeightBounded() {
		t.Error("half bounded constraints misreported")
	}
	if got := half.BoundedOr(Sz(10, 30)); got != Sz(80, 30) {
		t.Errorf("BoundedOr = %v, want 80x30", got)
	}
}

func TestDebugCheck(t *testing.T) {
	if !diag.Assertions() {
		t.Skip("assertions disabled")
	}
	tests := []struct {
		name    string
		bc      BoxConstraints
		defects bool
	}{
		{"valid", bc(0, 0, 10, 10), false},
		{"valid unbounded", Unbounded, false},
		{"nan min", BoxConstraints{min: Sz(math.NaN(), 0), max: Sz(10, 10)}, true},
		{"nan max", BoxConstraints{min: Sz(0, 0), max: Sz(10, math.NaN())}, true},
		{"infinite min", BoxConstraints{min: Sz(math.Inf(1), 0), max: Sz(math.Inf(1), 10)}, true},
		{"min above max", bc(20, 0, 10, 10), true},
		{"not rounded", BoxConstraints{min: Sz(0.5, 0), max: Sz(10, 10)}, true},
		{"negative min", BoxConstraints{min: Sz(-1, 0), max: Sz(10, 10)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if got := diag.IsDefect(r); got != tt.defects {
					t.Errorf("DebugCheck defect = %v (%v), want %v", got, r, tt.defects)
				}
			}()
			tt.bc.DebugCheck("test widget")
		})
	}
}
