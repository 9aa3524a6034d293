package layout

import (
	"math"
	"testing"
)

func TestExpand(t *testing.T) {
	inf := math.Inf(1)
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"integer", 1, 1},
		{"small positive", 0.1, 1},
		{"half", 2.5, 3},
		{"almost integer", 2.0000001, 3},
		{"small negative", -0.1, -1},
		{"negative half", -1.5, -2},
		{"negative integer", -3, -3},
		{"positive infinity", inf, inf},
		{"negative infinity", -inf, -inf},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sz(tt.in, tt.in).Expand()
			if got.Width != tt.want || got.Height != tt.want {
				t.Errorf("Sz(%v).Expand() = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandKeepsSignOfNegativeZero(t *testing.T) {
	got := Sz(math.Copysign(0, -1), 0).Expand()
	if !math.Signbit(got.Width) {
		t.Errorf("Expand(-0) lost its sign: %v", got.Width)
	}
}

func TestExpandNaN(t *testing.T) {
	got := Sz(math.NaN(), 1).Expand()
	if !math.IsNaN(got.Width) {
		t.Errorf("Expand(NaN) = %v, want NaN", got.Width)
	}
}

func TestClamp(t *testing.T) {
	min, max := Sz(10, 20), Sz(100, 200)
	tests := []struct {
		name string
		in   Size
		want Size
	}{
		{"inside", Sz(50, 50), Sz(50, 50)},
		{"below", Sz(0, 0), Sz(10, 20)},
		{"above", Sz(500, 500), Sz(100, 200)},
		{"mixed", Sz(5, 500), Sz(10, 200)},
		{"nan clamps to min", Sz(math.NaN(), math.NaN()), Sz(10, 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clamp(min, max); got != tt.want {
				t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSizeHelpers(t *testing.T) {
	if !Sz(0, 10).IsZeroArea() || Sz(1, 1).IsZeroArea() {
		t.Error("IsZeroArea mismatch")
	}
	if Sz(math.Inf(1), 1).IsFinite() || !Sz(3, 4).IsFinite() {
		t.Error("IsFinite mismatch")
	}
	if got := Sz(3, 4.5).String(); got != "3x4.5" {
		t.Errorf("String() = %q", got)
	}
}
