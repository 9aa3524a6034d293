package retained

import (
	"math"

	"github.com/agiangrant/arbor/internal/diag"
	"github.com/agiangrant/arbor/layout"
	"github.com/gogpu/gg"
)

// Each pass walks from the root into every subtree whose aggregate flag
// for the pass is set, does the node's own work if its local flag is set,
// clears that flag whatever the widget callback did, and recomputes the
// node's aggregate on the way out.

// ============================================================================
// Register Pass
// ============================================================================

// RunRegisterPass lets newly inserted widgets register their children.
func (r *RenderRoot) RunRegisterPass() error {
	return r.runPass(PassRegister, func() {
		r.registerSubtree(r.arena.mustGet(r.rootID))
	})
}

func (r *RenderRoot) registerSubtree(n *node) {
	if !n.state.aggregate.Any(NeedsRegister) {
		return
	}
	if n.state.local.Any(NeedsRegister) {
		ctx := &RegisterCtx{ctxBase{root: r, n: n}}
		ok := r.call(PassRegister, n, func() error {
			n.widget.RegisterChildren(ctx)
			return nil
		})
		n.state.clear(NeedsRegister)
		if ok {
			r.syncChildren(n)
		}
	}

	ids := childrenSnapshot(n)
	for _, id := range ids {
		if c, ok := r.arena.get(id); ok {
			r.registerSubtree(c)
		}
	}
	releaseIDSlice(ids)
	r.arena.mergeUp(n)
}

// ============================================================================
// Update Pass
// ============================================================================

// RunUpdatePass propagates disabled state and delivers queued lifecycle
// events.
func (r *RenderRoot) RunUpdatePass() error {
	return r.runPass(PassUpdate, func() {
		r.updateSubtree(r.arena.mustGet(r.rootID), false, false)
	})
}

// updateSubtree visits n if it or a descendant has events, or if force is
// set because an ancestor's effective disabled state changed.
func (r *RenderRoot) updateSubtree(n *node, parentDisabled, force bool) {
	if !force && !n.state.aggregate.Any(NeedsUpdate) {
		return
	}

	eff := n.state.disabled || parentDisabled
	changed := eff != n.state.effectiveDisabled
	if changed {
		n.state.effectiveDisabled = eff
		n.state.queueUpdate(Update{Kind: UpdateDisabledChanged, Disabled: eff})
		n.state.request(NeedsPaint | NeedsAccessibility)
	}

	if n.state.local.Any(NeedsUpdate) {
		updates := n.state.updates
		n.state.updates = nil
		n.state.clear(NeedsUpdate)

		ctx := &UpdateCtx{ctxBase{root: r, n: n}}
		for _, u := range updates {
			r.call(PassUpdate, n, func() error {
				return n.widget.Update(ctx, u)
			})
		}
	}

	ids := childrenSnapshot(n)
	for _, id := range ids {
		if c, ok := r.arena.get(id); ok {
			r.updateSubtree(c, eff, changed)
		}
	}
	releaseIDSlice(ids)
	r.arena.mergeUp(n)
}

// ============================================================================
// Layout Pass
// ============================================================================

// RunLayoutPass lays the root out under tight constraints equal to the
// window size, then recomputes window transforms.
func (r *RenderRoot) RunLayoutPass() error {
	return r.runPass(PassLayout, func() {
		r.epoch++
		root := r.arena.mustGet(r.rootID)
		r.runLayout(root, layout.Tight(r.size))
		root.state.origin = gg.Pt(0, 0)
		root.state.placed = true

		r.composeSubtree(root, gg.Identity(), false)
	})
}

// runLayout lays out n under bc, or returns the cached size if n's subtree
// is clean and bc is unchanged.
func (r *RenderRoot) runLayout(n *node, bc layout.BoxConstraints) layout.Size {
	kind := n.widget.Kind()
	bc.DebugCheck(string(kind))

	n.state.layoutEpoch = r.epoch
	n.state.placed = false
	if !n.state.aggregate.Any(NeedsLayout) && n.state.hasLastBC && n.state.lastBC == bc {
		return n.state.size
	}

	prev := n.state.size
	size := bc.Constrain(prev)
	ctx := &LayoutCtx{ctxBase{root: r, n: n}}
	ok := r.call(PassLayout, n, func() error {
		s, err := n.widget.Layout(ctx, bc)
		if err != nil {
			return err
		}
		if !s.IsFinite() || !bc.Contains(s) {
			diag.Defectf("%s %v: Layout returned %v, outside %v", kind, n.id, s, bc)
			if s = bc.Constrain(s); !s.IsFinite() {
				s = bc.Min()
			}
		}
		size = s
		return nil
	})
	if ok {
		r.checkChildrenLaidOut(n)
	}
	r.settleSkippedChildren(n)

	n.state.size = size
	n.state.lastBC = bc
	n.state.hasLastBC = true
	n.state.clear(NeedsLayout)
	if size != prev {
		n.state.request(NeedsPaint | NeedsAccessibility)
	}
	r.arena.mergeUp(n)
	return size
}

func (r *RenderRoot) checkChildrenLaidOut(n *node) {
	for _, id := range n.children {
		c, ok := r.arena.get(id)
		if !ok {
			continue
		}
		switch {
		case c.state.layoutEpoch != r.epoch:
			diag.Defectf("%s %v did not lay out child %v", n.widget.Kind(), n.id, id)
		case !c.state.placed:
			diag.Defectf("%s %v did not place child %v", n.widget.Kind(), n.id, id)
		}
	}
}

// settleSkippedChildren clears NeedsLayout below every child of n that
// n's Layout did not reach this pass, either because Layout failed or
// because it skipped the child. The skipped subtrees also forget their
// cached constraints, so the next Layout that does reach them runs in full.
func (r *RenderRoot) settleSkippedChildren(n *node) {
	order := acquireIDSlice(0)
	for _, id := range n.children {
		if c, ok := r.arena.get(id); ok && c.state.layoutEpoch != r.epoch {
			order = append(order, id)
		}
	}
	if len(order) == 0 {
		releaseIDSlice(order)
		return
	}

	// Preorder, so walking it backwards visits children before parents.
	for i := 0; i < len(order); i++ {
		c := r.arena.mustGet(order[i])
		c.state.clear(NeedsLayout)
		c.state.hasLastBC = false
		for _, id := range c.children {
			if _, ok := r.arena.get(id); ok {
				order = append(order, id)
			}
		}
	}
	for i := len(order) - 1; i >= 0; i-- {
		r.arena.mergeUp(r.arena.mustGet(order[i]))
	}
	releaseIDSlice(order)
}

// composeSubtree recomputes window transforms below n. force is set once
// an ancestor's transform changed, since every descendant moves with it.
func (r *RenderRoot) composeSubtree(n *node, parentWindow gg.Matrix, force bool) {
	if !force && !n.state.aggregate.Any(NeedsCompose) {
		return
	}
	if force || n.state.local.Any(NeedsCompose) {
		w := parentWindow.
			Multiply(gg.Translate(n.state.origin.X, n.state.origin.Y)).
			Multiply(n.state.transform)
		if w != n.state.windowTransform {
			n.state.windowTransform = w
			n.state.request(NeedsAccessibility)
		}
		n.state.clear(NeedsCompose)
		force = true
	}

	for _, id := range n.children {
		if c, ok := r.arena.get(id); ok {
			r.composeSubtree(c, n.state.windowTransform, force)
		}
	}
	r.arena.mergeUp(n)
}

// ============================================================================
// Paint Pass
// ============================================================================

// RunPaintPass repaints stale layers and composites every layer onto dc in
// tree order, each under its widget's window transform.
func (r *RenderRoot) RunPaintPass(dc *gg.Context) error {
	return r.runPass(PassPaint, func() {
		r.restoreSkippedPaint()
		root := r.arena.mustGet(r.rootID)
		r.paintSubtree(root)
		r.composite(dc, root)
	})
}

func (r *RenderRoot) paintSubtree(n *node) {
	if !n.state.aggregate.Any(NeedsPaint) {
		return
	}
	if n.state.local.Any(NeedsPaint) {
		r.paintLayer(n)
		n.state.clear(NeedsPaint)
	}
	for _, id := range n.children {
		if c, ok := r.arena.get(id); ok {
			r.paintSubtree(c)
		}
	}
	r.arena.mergeUp(n)
}

// skipPaint drops every stale layer and settles NeedsPaint without painting,
// for cycles run with no surface. The widgets are remembered and repainted
// by the next paint pass.
func (r *RenderRoot) skipPaint(n *node) {
	if !n.state.aggregate.Any(NeedsPaint) {
		return
	}
	if n.state.local.Any(NeedsPaint) {
		n.state.layer = nil
		n.state.clear(NeedsPaint)
		r.unpainted = append(r.unpainted, n.id)
	}
	for _, id := range n.children {
		if c, ok := r.arena.get(id); ok {
			r.skipPaint(c)
		}
	}
	r.arena.mergeUp(n)
}

// restoreSkippedPaint re-requests paint for widgets whose paint was
// skipped by a headless cycle and that are still in the tree.
func (r *RenderRoot) restoreSkippedPaint() {
	for _, id := range r.unpainted {
		if n, ok := r.arena.get(id); ok {
			n.state.request(NeedsPaint)
			r.arena.mergeUpToRoot(id)
		}
	}
	r.unpainted = r.unpainted[:0]
}

// paintLayer renders n into a fresh surface of n's size. A failed paint
// leaves the widget without a layer rather than with a partial one.
func (r *RenderRoot) paintLayer(n *node) {
	n.state.layer = nil
	size := n.state.size
	if !size.IsFinite() || size.IsZeroArea() {
		return
	}
	w, h := int(math.Ceil(size.Width)), int(math.Ceil(size.Height))

	surface := gg.NewContext(w, h)
	defer surface.Close()

	ctx := &PaintCtx{ctxBase{root: r, n: n}}
	ok := r.call(PassPaint, n, func() error {
		return n.widget.Paint(ctx, surface)
	})
	if ok {
		n.state.layer = gg.ImageBufFromImage(surface.Image())
	}
}

func (r *RenderRoot) composite(dc *gg.Context, n *node) {
	if n.state.layer != nil {
		dc.Push()
		dc.Transform(n.state.windowTransform)
		dc.DrawImage(n.state.layer, 0, 0)
		dc.Pop()
	}
	for _, id := range n.children {
		if c, ok := r.arena.get(id); ok {
			r.composite(dc, c)
		}
	}
}
