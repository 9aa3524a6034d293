// Package retainedtest drives a retained tree from tests: a Harness that
// owns a RenderRoot plus an offscreen surface, and Modular, a widget whose
// behavior is assembled from function fields.
package retainedtest

import (
	"image"
	"math"
	"testing"

	"github.com/agiangrant/arbor/layout"
	"github.com/agiangrant/arbor/retained"
	"github.com/gogpu/gg"
)

// Harness runs full cycles against a RenderRoot and remembers the latest
// accessibility entry of every widget.
type Harness struct {
	t      testing.TB
	root   *retained.RenderRoot
	dc     *gg.Context
	access map[retained.WidgetID]retained.AccessNode
}

// NewHarness builds a tree around w and renders the first frame.
func NewHarness(t testing.TB, w retained.Widget, opts ...retained.Option) *Harness {
	t.Helper()
	return NewHarnessWithPod(t, retained.NewPod(w), opts...)
}

// NewHarnessWithPod is NewHarness for a pod built by the caller.
func NewHarnessWithPod(t testing.TB, pod *retained.WidgetPod, opts ...retained.Option) *Harness {
	t.Helper()
	h := &Harness{
		t:      t,
		root:   retained.NewRenderRoot(pod, opts...),
		access: make(map[retained.WidgetID]retained.AccessNode),
	}
	h.resetSurface()
	t.Cleanup(func() { _ = h.dc.Close() })
	h.MustRender()
	return h
}

func (h *Harness) resetSurface() {
	if h.dc != nil {
		_ = h.dc.Close()
	}
	size := h.root.Size()
	h.dc = gg.NewContext(int(math.Max(size.Width, 1)), int(math.Max(size.Height, 1)))
}

// Root returns the tree under test.
func (h *Harness) Root() *retained.RenderRoot { return h.root }

// RootID returns the id of the root widget.
func (h *Harness) RootID() retained.WidgetID { return h.root.RootID() }

// State returns the derived state of id.
func (h *Harness) State(id retained.WidgetID) *retained.WidgetState {
	return h.root.WidgetState(id)
}

// Render clears the surface and runs one full cycle.
func (h *Harness) Render() error {
	h.dc.Clear()
	update, err := h.root.RunCycle(h.dc)
	for _, id := range update.Removed {
		delete(h.access, id)
	}
	for _, n := range update.Nodes {
		h.access[n.ID] = n
	}
	return err
}

// MustRender is Render that fails the test on a widget error.
func (h *Harness) MustRender() {
	h.t.Helper()
	if err := h.Render(); err != nil {
		h.t.Fatalf("render: %v", err)
	}
}

// Edit mutates id and renders a frame.
func (h *Harness) Edit(id retained.WidgetID, fn func(*retained.WidgetMut)) {
	h.t.Helper()
	h.root.Edit(id, fn)
	h.MustRender()
}

// Resize changes the window size and renders a frame.
func (h *Harness) Resize(size layout.Size) {
	h.t.Helper()
	h.root.Resize(size)
	h.resetSurface()
	h.MustRender()
}

// Access returns the latest accessibility entry for id.
func (h *Harness) Access(id retained.WidgetID) (retained.AccessNode, bool) {
	n, ok := h.access[id]
	return n, ok
}

// Image returns the last rendered frame.
func (h *Harness) Image() image.Image { return h.dc.Image() }
