package widgets_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/agiangrant/arbor/layout"
	"github.com/agiangrant/arbor/properties"
	"github.com/agiangrant/arbor/retained"
	"github.com/agiangrant/arbor/retained/retainedtest"
	"github.com/agiangrant/arbor/widgets"
	"github.com/gogpu/gg"
)

func solidImage(w, h int, c color.RGBA) *gg.ImageBuf {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return gg.ImageBufFromImage(img)
}

func isRed(img image.Image, x, y int) bool {
	r, g, b, a := img.At(x, y).RGBA()
	return r>>8 == 0xff && g>>8 == 0 && b>>8 == 0 && a>>8 == 0xff
}

func TestSizedBoxFixedSize(t *testing.T) {
	box := retained.NewPod(widgets.Empty().Width(50).Height(20))
	h := retainedtest.NewHarness(t, widgets.Column().WithChildPod(box), retained.WithSize(layout.Sz(200, 100)))

	if got := h.State(box.ID()).Size(); got != layout.Sz(50, 20) {
		t.Errorf("box size = %v, want 50x20", got)
	}

	h.Edit(box.ID(), func(w *retained.WidgetMut) { widgets.SetWidth(w, 500) })
	if got := h.State(box.ID()).Size(); got != layout.Sz(200, 20) {
		t.Errorf("oversized width should clamp to the constraints, got %v", got)
	}
}

func TestSizedBoxInsets(t *testing.T) {
	leaf := retained.NewPod(retainedtest.NewLeaf(layout.Sz(10, 10)))
	box := retained.NewPod(widgets.NewSizedBoxWithPod(leaf)).
		WithProps(properties.PaddingAll(5), properties.BorderWidth{Width: 2})
	h := retainedtest.NewHarness(t, widgets.Column().WithChildPod(box))

	if got := h.State(box.ID()).Size(); got != layout.Sz(24, 24) {
		t.Errorf("box size = %v, want 24x24", got)
	}
	if got := h.State(leaf.ID()).Origin(); got != gg.Pt(7, 7) {
		t.Errorf("child origin = %v, want 7,7", got)
	}
}

func TestSizedBoxPaintsKindDefaults(t *testing.T) {
	defaults := properties.NewTable().
		Set(string(widgets.KindSizedBox), properties.Background{Color: gg.Hex("#ff0000")})
	box := widgets.Empty().Expand()
	h := retainedtest.NewHarness(t, box, retained.WithSize(layout.Sz(40, 30)), retained.WithDefaults(defaults))

	if !isRed(h.Image(), 20, 15) {
		t.Errorf("pixel = %v, want the default background", h.Image().At(20, 15))
	}

	h.Edit(h.RootID(), func(w *retained.WidgetMut) {
		w.InsertProp(properties.Background{Color: gg.Hex("#0000ff")})
	})
	if isRed(h.Image(), 20, 15) {
		t.Error("override did not replace the default background")
	}
}

func TestTransformedBox(t *testing.T) {
	box := retained.NewPodWithOptions(
		widgets.Empty().Width(20).Height(10),
		retained.WidgetOptions{Transform: gg.Translate(100, 50)},
	).WithProps(properties.Background{Color: gg.Hex("#f00")})
	h := retainedtest.NewHarness(t, widgets.Column().WithChildPod(box), retained.WithSize(layout.Sz(200, 100)))

	if !isRed(h.Image(), 110, 55) {
		t.Error("box should be drawn at its transformed position")
	}
	if isRed(h.Image(), 10, 5) {
		t.Error("box drawn at its untransformed position")
	}
	n, _ := h.Access(box.ID())
	if want := (retained.Rect{X0: 100, Y0: 50, X1: 120, Y1: 60}); n.Bounds != want {
		t.Errorf("bounds = %+v, want %+v", n.Bounds, want)
	}
}

func TestFlexRow(t *testing.T) {
	tests := []struct {
		name         string
		main         widgets.MainAlign
		cross        widgets.CrossAlign
		wantA, wantB gg.Point
	}{
		{"start", widgets.MainStart, widgets.CrossStart, gg.Pt(0, 0), gg.Pt(30, 0)},
		{"center", widgets.MainCenter, widgets.CrossCenter, gg.Pt(70, 45), gg.Pt(100, 47.5)},
		{"end", widgets.MainEnd, widgets.CrossEnd, gg.Pt(140, 90), gg.Pt(170, 95)},
		{"space-between", widgets.MainSpaceBetween, widgets.CrossStart, gg.Pt(0, 0), gg.Pt(170, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := retained.NewPod(retainedtest.NewLeaf(layout.Sz(20, 10)))
			b := retained.NewPod(retainedtest.NewLeaf(layout.Sz(30, 5)))
			row := widgets.Row().WithGap(10).WithMainAlign(tt.main).WithCrossAlign(tt.cross).
				WithChildPod(a).WithChildPod(b)
			h := retainedtest.NewHarness(t, row, retained.WithSize(layout.Sz(200, 100)))

			if got := h.State(a.ID()).Origin(); got != tt.wantA {
				t.Errorf("a origin = %v, want %v", got, tt.wantA)
			}
			if got := h.State(b.ID()).Origin(); got != tt.wantB {
				t.Errorf("b origin = %v, want %v", got, tt.wantB)
			}
		})
	}
}

func TestFlexChildrenShareLeftover(t *testing.T) {
	fixed := retained.NewPod(retainedtest.NewLeaf(layout.Sz(50, 10)))
	one := retained.NewPod(retainedtest.NewLeaf(layout.Sz(1, 1)))
	three := retained.NewPod(retainedtest.NewLeaf(layout.Sz(1, 1)))
	row := widgets.Row().
		WithChildPod(fixed).
		WithFlexChild(one, 1).
		WithFlexChild(three, 3).
		WithCrossAlign(widgets.CrossStretch)
	h := retainedtest.NewHarness(t, row, retained.WithSize(layout.Sz(250, 40)))

	tests := []struct {
		id     retained.WidgetID
		size   layout.Size
		origin gg.Point
	}{
		{fixed.ID(), layout.Sz(50, 40), gg.Pt(0, 0)},
		{one.ID(), layout.Sz(50, 40), gg.Pt(50, 0)},
		{three.ID(), layout.Sz(150, 40), gg.Pt(100, 0)},
	}
	for _, tt := range tests {
		s := h.State(tt.id)
		if s.Size() != tt.size || s.Origin() != tt.origin {
			t.Errorf("%v: size %v origin %v, want %v %v", tt.id, s.Size(), s.Origin(), tt.size, tt.origin)
		}
	}
}

func TestFlexAddRemoveChild(t *testing.T) {
	first := retained.NewPod(retainedtest.NewLeaf(layout.Sz(10, 10)))
	col := widgets.Column().WithGap(5).WithChildPod(first)
	h := retainedtest.NewHarness(t, col)

	var added retained.WidgetID
	h.Edit(h.RootID(), func(w *retained.WidgetMut) {
		added = widgets.AddChild(w, widgets.Empty().Size(layout.Sz(10, 20)))
	})
	if got := h.State(added).Origin(); got != gg.Pt(0, 15) {
		t.Errorf("added child origin = %v, want 0,15", got)
	}

	h.Edit(h.RootID(), func(w *retained.WidgetMut) { widgets.RemoveChild(w, first.ID()) })
	if h.Root().Contains(first.ID()) {
		t.Error("removed child still in tree")
	}
	if got := h.State(added).Origin(); got != gg.Pt(0, 0) {
		t.Errorf("remaining child origin = %v, want 0,0", got)
	}
}

// Editing a widget nested several containers deep only touches its own
// path to the root.
func TestEditGrandchild(t *testing.T) {
	target := retained.NewPod(widgets.Empty().Width(10).Height(10).Label("old"))
	sibling := retainedtest.NewLeaf(layout.Sz(5, 5))
	col := widgets.Column().
		WithChild(widgets.Row().WithChild(widgets.Row().WithChildPod(target))).
		WithChildPod(retained.NewPod(sibling)).
		WithSpacer(1)
	h := retainedtest.NewHarness(t, col)
	siblingLayouts := sibling.LayoutCalls

	h.Edit(target.ID(), func(w *retained.WidgetMut) { widgets.SetHeight(w, 30) })

	if got := h.State(target.ID()).Size(); got != layout.Sz(10, 30) {
		t.Errorf("target size = %v", got)
	}
	if sibling.LayoutCalls != siblingLayouts {
		t.Error("sibling was laid out again although its constraints did not change")
	}
	if n, _ := h.Access(target.ID()); n.Label != "old" || n.Role != retained.RoleGenericContainer {
		t.Errorf("target entry = %+v", n)
	}
}

func TestImageLayout(t *testing.T) {
	img := solidImage(8, 8, color.RGBA{R: 255, A: 255})
	tests := []struct {
		fit  layout.ObjectFit
		want layout.Size
	}{
		{layout.FitContain, layout.Sz(8, 8)},
		{layout.FitCover, layout.Sz(100, 50)},
		{layout.FitFill, layout.Sz(100, 50)},
		{layout.FitHeight, layout.Sz(50, 50)},
		{layout.FitWidth, layout.Sz(100, 50)},
		{layout.FitNone, layout.Sz(8, 8)},
		{layout.FitScaleDown, layout.Sz(8, 8)},
	}
	for _, tt := range tests {
		t.Run(tt.fit.String(), func(t *testing.T) {
			pod := retained.NewPod(widgets.NewImage(img).Fit(tt.fit))
			h := retainedtest.NewHarness(t, retainedtest.NewParent(pod), retained.WithSize(layout.Sz(100, 50)))
			if got := h.State(pod.ID()).Size(); got != tt.want {
				t.Errorf("size = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestImagePaintAndMutators(t *testing.T) {
	red := solidImage(8, 8, color.RGBA{R: 255, A: 255})
	h := retainedtest.NewHarness(t, widgets.NewImage(red).Alt("logo"), retained.WithSize(layout.Sz(100, 50)))

	if !isRed(h.Image(), 50, 25) {
		t.Errorf("pixel = %v, want the stretched image", h.Image().At(50, 25))
	}
	n, _ := h.Access(h.RootID())
	if n.Role != retained.RoleImage || n.Label != "logo" {
		t.Errorf("entry = %+v", n)
	}

	h.Edit(h.RootID(), func(w *retained.WidgetMut) {
		widgets.SetFit(w, layout.FitContain)
		widgets.SetAlt(w, "small logo")
	})
	if isRed(h.Image(), 5, 25) {
		t.Error("contain should leave the sides empty")
	}
	if !isRed(h.Image(), 50, 25) {
		t.Error("contain should keep the center covered")
	}
	if n, _ := h.Access(h.RootID()); n.Label != "small logo" {
		t.Errorf("label = %q", n.Label)
	}

	h.Edit(h.RootID(), func(w *retained.WidgetMut) { widgets.SetImage(w, nil) })
	if isRed(h.Image(), 50, 25) {
		t.Error("empty image should paint nothing")
	}
}
