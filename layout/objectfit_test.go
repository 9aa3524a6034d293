package layout

import (
	"testing"

	"github.com/gogpu/gg"
)

func TestObjectFitSize(t *testing.T) {
	box := bc(0, 0, 200, 100)
	content := Sz(50, 100) // tall, ratio 2
	tests := []struct {
		fit  ObjectFit
		want Size
	}{
		{FitFill, Sz(200, 100)},
		{FitContain, Sz(50, 100)},
		{FitCover, Sz(200, 400)},
		{FitWidth, Sz(200, 400)},
		{FitHeight, Sz(50, 100)},
		{FitNone, Sz(50, 100)},
		{FitScaleDown, Sz(50, 100)},
	}
	for _, tt := range tests {
		t.Run(tt.fit.String(), func(t *testing.T) {
			if got := tt.fit.Size(box, content); got != tt.want {
				t.Errorf("%v.Size = %v, want %v", tt.fit, got, tt.want)
			}
		})
	}
}

func TestObjectFitScaleDownShrinksOversizedContent(t *testing.T) {
	got := FitScaleDown.Size(bc(0, 0, 100, 100), Sz(400, 200))
	if got != Sz(100, 50) {
		t.Errorf("ScaleDown = %v, want 100x50", got)
	}
}

func TestObjectFitZeroAreaContentTakesMin(t *testing.T) {
	got := FitContain.Size(bc(7, 9, 100, 100), Sz(0, 0))
	if got != Sz(7, 9) {
		t.Errorf("Size of empty content = %v, want 7x9", got)
	}
}

func TestAffineToFill(t *testing.T) {
	parent := Sz(200, 100)
	fitBox := Sz(100, 100)
	tests := []struct {
		fit  ObjectFit
		want gg.Matrix
	}{
		{FitFill, gg.Matrix{A: 2, E: 1}},
		{FitContain, gg.Matrix{A: 1, E: 1, C: 50}},
		{FitCover, gg.Matrix{A: 2, E: 2, F: -50}},
		{FitWidth, gg.Matrix{A: 2, E: 2, F: -50}},
		{FitHeight, gg.Matrix{A: 1, E: 1, C: 50}},
		{FitNone, gg.Matrix{A: 1, E: 1, C: 50}},
		{FitScaleDown, gg.Matrix{A: 1, E: 1, C: 50}},
	}
	for _, tt := range tests {
		t.Run(tt.fit.String(), func(t *testing.T) {
			if got := tt.fit.AffineToFill(parent, fitBox); got != tt.want {
				t.Errorf("AffineToFill = %+v, want %+v", got, tt.want)
			}
		})
	}

	if got := FitContain.AffineToFill(parent, Sz(0, 10)); !got.IsIdentity() {
		t.Errorf("degenerate fit box should give identity, got %+v", got)
	}
}

func TestParseObjectFit(t *testing.T) {
	for i := range objectFitNames {
		fit := ObjectFit(i)
		got, err := ParseObjectFit(fit.String())
		if err != nil || got != fit {
			t.Errorf("ParseObjectFit(%q) = %v, %v", fit.String(), got, err)
		}
	}
	if got, err := ParseObjectFit(" Scale_Down "); err != nil || got != FitScaleDown {
		t.Errorf("ParseObjectFit(Scale_Down) = %v, %v", got, err)
	}
	if _, err := ParseObjectFit("stretch"); err == nil {
		t.Error("expected error for unknown fit")
	}
}
