package retained

import (
	"slices"

	"github.com/agiangrant/arbor/internal/diag"
	"github.com/agiangrant/arbor/properties"
	"github.com/gogpu/gg"
)

// ============================================================================
// Mutation Entry Points
// ============================================================================

// Mutate runs fn with exclusive access to widget id and returns its
// result. Afterwards the aggregated flags of every ancestor of id are
// recomputed so the tree reflects whatever fn invalidated.
//
// Mutate must be called between passes. From inside a pass, use
// MutateLater. It aborts if id is not in the tree.
func Mutate[R any](r *RenderRoot, id WidgetID, fn func(*WidgetMut) R) R {
	r.checkIdle("Mutate")
	var out R
	r.mutate(id, func(w *WidgetMut) { out = fn(w) })
	return out
}

// Edit is Mutate without a result.
func (r *RenderRoot) Edit(id WidgetID, fn func(*WidgetMut)) {
	r.checkIdle("Edit")
	r.mutate(id, fn)
}

// MutateLater queues fn to run against id during the next mutate pass.
// Queued mutations run in the order they were queued, each exactly once.
// A mutation whose target is removed before it runs is dropped.
func (r *RenderRoot) MutateLater(id WidgetID, fn func(*WidgetMut)) {
	n := r.arena.mustGet(id)
	r.queue = append(r.queue, deferredMutation{id: id, fn: fn})
	n.state.request(PendingMutation)
	r.arena.mergeUpToRoot(n.parent)
}

// PendingMutations returns the number of queued mutations.
func (r *RenderRoot) PendingMutations() int { return len(r.queue) }

func (r *RenderRoot) mutate(id WidgetID, fn func(*WidgetMut)) {
	m := r.arena.borrow(id)
	r.mutating = true
	defer func() {
		r.mutating = false
		m.release()
		r.arena.mergeUpToRoot(m.n.parent)
	}()

	fn(&WidgetMut{root: r, m: m})
	r.syncChildren(m.n)
}

// RunMutatePass drains the deferred mutation queue in FIFO order.
// Mutations queued while draining wait for the next mutate pass.
func (r *RenderRoot) RunMutatePass() error {
	return r.runPass(PassMutate, func() {
		queue := r.queue
		r.queue = nil
		if len(queue) == 0 {
			return
		}

		for _, d := range queue {
			n, ok := r.arena.get(d.id)
			if !ok {
				diag.Logger().Debug("dropping mutation for removed widget", "widget", d.id)
				continue
			}
			n.state.clear(PendingMutation)
			r.call(PassMutate, n, func() error {
				r.mutate(d.id, d.fn)
				return nil
			})
		}

		// Targets of mutations queued during the drain are still pending.
		for _, d := range r.queue {
			if n, ok := r.arena.get(d.id); ok {
				n.state.request(PendingMutation)
				r.arena.mergeUpToRoot(n.parent)
			}
		}
	})
}

// ============================================================================
// Widget Mutation Handle
// ============================================================================

// WidgetMut is exclusive access to one widget for the duration of a
// mutation callback. It must not be retained after the callback returns.
type WidgetMut struct {
	root *RenderRoot
	m    nodeMut
}

// ID returns the widget's id.
func (w *WidgetMut) ID() WidgetID { return w.m.n.id }

// Widget returns the widget instance.
func (w *WidgetMut) Widget() Widget { return w.m.n.widget }

// State returns the widget's derived state.
func (w *WidgetMut) State() *WidgetState { return &w.m.n.state }

// Children returns the widget's children. The slice must not be modified.
func (w *WidgetMut) Children() []WidgetID { return w.m.n.children }

// Props returns the widget's overrides merged with the kind defaults.
func (w *WidgetMut) Props() properties.Ref { return w.root.propsOf(w.m.n) }

func (w *WidgetMut) propsMut() properties.Mut {
	return properties.NewMut(&w.m.n.props, w.root.defaults.For(string(w.m.n.widget.Kind())))
}

// InsertProp sets a property override and requests layout.
func (w *WidgetMut) InsertProp(p properties.Property) (properties.Property, bool) {
	old, ok := w.propsMut().Insert(p)
	w.RequestLayout()
	return old, ok
}

// RemoveProp removes a property override, if present, and requests layout.
func (w *WidgetMut) RemoveProp(k properties.Kind) (properties.Property, bool) {
	old, ok := w.propsMut().Remove(k)
	if ok {
		w.RequestLayout()
	}
	return old, ok
}

// RequestLayout marks the widget for layout, paint and accessibility.
func (w *WidgetMut) RequestLayout() {
	w.m.n.state.request(NeedsLayout | NeedsPaint | NeedsAccessibility)
}

// RequestPaint marks the widget's layer as stale.
func (w *WidgetMut) RequestPaint() { w.m.n.state.request(NeedsPaint) }

// RequestAccessibility marks the widget's accessibility entry as stale.
func (w *WidgetMut) RequestAccessibility() { w.m.n.state.request(NeedsAccessibility) }

// SetTransform replaces the widget's own transform. The zero matrix means
// identity.
func (w *WidgetMut) SetTransform(m gg.Matrix) {
	m = identityIfZero(m)
	if w.m.n.state.transform == m {
		return
	}
	w.m.n.state.transform = m
	w.m.n.state.request(NeedsCompose)
}

// SetDisabled disables or enables the widget and, through inheritance, its
// subtree. The change takes effect in the next update pass.
func (w *WidgetMut) SetDisabled(disabled bool) {
	if w.m.n.state.disabled == disabled {
		return
	}
	w.m.n.state.disabled = disabled
	w.m.n.state.request(NeedsUpdate)
}

// InsertChild adds pod's widget as a child at position pos. The widget
// must also start reporting the child from ChildrenIDs before the
// mutation callback returns.
func (w *WidgetMut) InsertChild(pos int, pod *WidgetPod) {
	n := w.m.n
	w.root.insertPod(n.id, pos, pod)
	n.state.queueUpdate(Update{Kind: UpdateChildrenChanged})
	n.state.request(NeedsLayout | NeedsPaint | NeedsAccessibility)
}

// RemoveChild destroys a direct child and its whole subtree. The widget
// must stop reporting the child from ChildrenIDs before the mutation
// callback returns.
func (w *WidgetMut) RemoveChild(id WidgetID) {
	if !slices.Contains(w.m.n.children, id) {
		diag.Abortf("%v is not a child of %v", id, w.m.n.id)
	}
	w.root.removeChild(w.m.n, id)
}

// ChildMut runs fn with exclusive access to a direct child. The child's
// flags are merged into this widget when fn returns.
func (w *WidgetMut) ChildMut(id WidgetID, fn func(*WidgetMut)) {
	cm, ok := w.m.child(id)
	if !ok {
		diag.Abortf("%v is not a child of %v", id, w.m.n.id)
	}
	defer func() {
		cm.release()
		w.root.arena.mergeUp(w.m.n)
	}()

	fn(&WidgetMut{root: w.root, m: cm})
	w.root.syncChildren(cm.n)
}

// Downcast returns the widget as its concrete type. It aborts if the
// widget is of a different type.
func Downcast[W Widget](w *WidgetMut) W {
	v, ok := w.m.n.widget.(W)
	if !ok {
		diag.Abortf("%s %v is %T, not %T", w.m.n.widget.Kind(), w.m.n.id, w.m.n.widget, v)
	}
	return v
}
