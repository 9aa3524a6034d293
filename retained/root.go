package retained

import (
	"errors"
	"fmt"
	"slices"

	"github.com/agiangrant/arbor/internal/diag"
	"github.com/agiangrant/arbor/layout"
	"github.com/agiangrant/arbor/properties"
	"github.com/gogpu/gg"
)

// DefaultWindowSize is used when no WithSize option is given.
var DefaultWindowSize = layout.Sz(800, 600)

// maxRewriteRounds bounds how often RunCycle repeats the register, update
// and mutate passes before moving on to layout.
const maxRewriteRounds = 8

// ErrWidgetPanicked is wrapped by the PassError produced when a widget
// callback panics with anything other than a defect.
var ErrWidgetPanicked = errors.New("widget panicked")

// Pass identifies one of the tree passes.
type Pass uint8

const (
	PassRegister Pass = iota + 1
	PassUpdate
	PassMutate
	PassLayout
	PassPaint
	PassAccessibility
)

func (p Pass) String() string {
	switch p {
	case PassRegister:
		return "register"
	case PassUpdate:
		return "update"
	case PassMutate:
		return "mutate"
	case PassLayout:
		return "layout"
	case PassPaint:
		return "paint"
	case PassAccessibility:
		return "accessibility"
	default:
		return "none"
	}
}

// PassError reports a widget callback that failed or panicked. The pass
// still ran to completion and cleared the widget's flag.
type PassError struct {
	Pass   Pass
	Widget WidgetID
	Kind   WidgetKind
	Err    error
}

func (e *PassError) Error() string {
	return fmt.Sprintf("%s pass: %s %v: %v", e.Pass, e.Kind, e.Widget, e.Err)
}

func (e *PassError) Unwrap() error { return e.Err }

// ============================================================================
// Options
// ============================================================================

// Option configures a RenderRoot during creation.
//
// Example:
//
//	root := retained.NewRenderRoot(pod,
//	    retained.WithSize(layout.Sz(1280, 720)),
//	    retained.WithDefaults(table),
//	)
type Option func(*rootOptions)

type rootOptions struct {
	size     layout.Size
	defaults *properties.Table
}

func defaultRootOptions() rootOptions {
	return rootOptions{size: DefaultWindowSize}
}

// WithSize sets the initial window size.
func WithSize(size layout.Size) Option {
	return func(o *rootOptions) {
		o.size = size
	}
}

// WithDefaults sets the default property table. Without it the
// process-wide properties.DefaultTable at construction time is used.
func WithDefaults(t *properties.Table) Option {
	return func(o *rootOptions) {
		o.defaults = t
	}
}

// ============================================================================
// Render Root
// ============================================================================

type deferredMutation struct {
	id WidgetID
	fn func(*WidgetMut)
}

// RenderRoot owns one widget tree and drives its passes. It is not safe
// for concurrent use; independent roots may run on separate goroutines.
type RenderRoot struct {
	arena    *arena
	rootID   WidgetID
	size     layout.Size
	defaults *properties.Table

	queue []deferredMutation

	pass     Pass // running pass, 0 between passes
	mutating bool
	errs     []error
	epoch    uint64 // bumped by every layout pass

	accessRemoved []WidgetID
	unpainted     []WidgetID // paint skipped by a headless cycle
}

// NewRenderRoot builds a tree whose root is the widget in pod.
func NewRenderRoot(pod *WidgetPod, opts ...Option) *RenderRoot {
	o := defaultRootOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.defaults == nil {
		o.defaults = properties.DefaultTable()
	}

	r := &RenderRoot{
		arena:    newArena(),
		size:     o.size.Expand(),
		defaults: o.defaults,
	}
	r.insertPod(0, 0, pod)
	r.rootID = pod.id

	diag.Logger().Debug("render root created",
		"root", pod.id, "kind", pod.widget.Kind(), "size", r.size)
	return r
}

// RootID returns the id of the root widget.
func (r *RenderRoot) RootID() WidgetID { return r.rootID }

// Size returns the window size.
func (r *RenderRoot) Size() layout.Size { return r.size }

// Resize changes the window size. The next layout pass lays the root out
// under the new tight constraints.
func (r *RenderRoot) Resize(size layout.Size) {
	r.checkIdle("Resize")
	r.size = size.Expand()
}

// Len returns the number of widgets in the tree.
func (r *RenderRoot) Len() int { return r.arena.len() }

// Contains reports whether id is in the tree.
func (r *RenderRoot) Contains(id WidgetID) bool {
	_, ok := r.arena.get(id)
	return ok
}

// ParentOf returns the parent of id, or false for the root.
// It aborts if id is not in the tree.
func (r *RenderRoot) ParentOf(id WidgetID) (WidgetID, bool) {
	n := r.arena.mustGet(id)
	return n.parent, !n.parent.IsZero()
}

// Children returns a copy of id's children in arena order.
func (r *RenderRoot) Children(id WidgetID) []WidgetID {
	return slices.Clone(r.arena.mustGet(id).children)
}

// WidgetState returns the derived state of id. The returned value is
// owned by the tree and updated in place by later passes.
func (r *RenderRoot) WidgetState(id WidgetID) *WidgetState {
	return &r.arena.mustGet(id).state
}

// Widget returns the widget instance for id. Modify it only through
// Mutate so the tree learns about the change.
func (r *RenderRoot) Widget(id WidgetID) Widget {
	return r.arena.mustGet(id).widget
}

// Defaults returns the default property table used by this tree.
func (r *RenderRoot) Defaults() *properties.Table { return r.defaults }

// NeedsRender reports whether any pass has work or mutations are queued.
func (r *RenderRoot) NeedsRender() bool {
	root := r.arena.mustGet(r.rootID)
	return root.state.aggregate != 0 || len(r.queue) > 0
}

// RunCycle runs one frame: register, update and mutate (repeated while
// they keep producing work, at most maxRewriteRounds times), then layout,
// paint and accessibility. A nil dc skips painting: stale layers are
// dropped and their widgets repaint on the next cycle that has a surface,
// so a headless driver still sees NeedsRender settle.
//
// Widget failures do not stop the cycle; they are returned joined.
func (r *RenderRoot) RunCycle(dc *gg.Context) (*AccessTreeUpdate, error) {
	var errs []error
	for round := 1; ; round++ {
		errs = append(errs, r.RunRegisterPass(), r.RunUpdatePass(), r.RunMutatePass())
		if !r.needsRewrite() {
			break
		}
		if round == maxRewriteRounds {
			diag.Logger().Warn("rewrite passes did not settle", "rounds", round, "queued", len(r.queue))
			break
		}
	}

	errs = append(errs, r.RunLayoutPass())
	if dc != nil {
		errs = append(errs, r.RunPaintPass(dc))
	} else {
		r.skipPaint(r.arena.mustGet(r.rootID))
	}
	update, err := r.RunAccessibilityPass()
	errs = append(errs, err)
	return update, errors.Join(errs...)
}

func (r *RenderRoot) needsRewrite() bool {
	root := r.arena.mustGet(r.rootID)
	return root.state.aggregate.Any(NeedsRegister|NeedsUpdate) || len(r.queue) > 0
}

// ============================================================================
// Pass Plumbing
// ============================================================================

// runPass runs fn as pass p and collects the widget failures it records.
func (r *RenderRoot) runPass(p Pass, fn func()) error {
	r.checkIdle(p.String() + " pass")
	r.pass = p
	r.errs = nil
	defer func() { r.pass = 0 }()

	fn()

	errs := r.errs
	r.errs = nil
	for _, err := range errs {
		diag.Logger().Warn("widget callback failed", "err", err)
	}
	diag.Logger().Debug("pass finished", "pass", p, "widgets", r.arena.len(), "errors", len(errs))
	return errors.Join(errs...)
}

func (r *RenderRoot) checkIdle(what string) {
	if r.pass != 0 {
		diag.Abortf("%s during the %v pass", what, r.pass)
	}
	if r.mutating {
		diag.Abortf("%s from inside a mutation", what)
	}
}

// call runs one widget callback for n. A returned error or a non-defect
// panic is recorded as a PassError; defects propagate. It reports whether
// the callback succeeded.
func (r *RenderRoot) call(p Pass, n *node, fn func() error) (ok bool) {
	defer func() {
		if v := recover(); v != nil {
			if diag.IsDefect(v) {
				panic(v)
			}
			r.fail(p, n, fmt.Errorf("%w: %v", ErrWidgetPanicked, v))
			ok = false
		}
	}()
	if err := fn(); err != nil {
		r.fail(p, n, err)
		return false
	}
	return true
}

func (r *RenderRoot) fail(p Pass, n *node, err error) {
	r.errs = append(r.errs, &PassError{Pass: p, Widget: n.id, Kind: n.widget.Kind(), Err: err})
}

// ============================================================================
// Structure
// ============================================================================

// insertPod adds pod's widget under parent at pos.
func (r *RenderRoot) insertPod(parent WidgetID, pos int, pod *WidgetPod) *node {
	if pod.inserted {
		diag.Abortf("%v inserted twice", pod)
	}
	pod.inserted = true

	n := &node{
		id:     pod.id,
		widget: pod.widget,
		state:  newWidgetState(pod.id, pod.options),
		props:  pod.props,
	}
	r.arena.insert(parent, pos, n)

	inherited := false
	if p, ok := r.arena.get(parent); ok {
		inherited = p.state.effectiveDisabled
	}
	if eff := n.state.disabled || inherited; eff {
		n.state.effectiveDisabled = true
		n.state.queueUpdate(Update{Kind: UpdateDisabledChanged, Disabled: true})
	}
	return n
}

// removeChild destroys child's subtree and tells parent about it.
func (r *RenderRoot) removeChild(parent *node, child WidgetID) {
	c := r.arena.mustGet(child)
	if c.borrowed {
		diag.Abortf("cannot remove %v while it is being mutated", child)
	}
	r.collectSubtree(child, &r.accessRemoved)
	r.arena.remove(child)
	parent.state.queueUpdate(Update{Kind: UpdateChildrenChanged})
	parent.state.request(NeedsLayout | NeedsPaint | NeedsAccessibility)
}

func (r *RenderRoot) collectSubtree(id WidgetID, out *[]WidgetID) {
	stack := acquireIDSlice(0)
	stack = append(stack, id)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		*out = append(*out, cur)
		if n, ok := r.arena.get(cur); ok {
			stack = append(stack, n.children...)
		}
	}
	releaseIDSlice(stack)
}

// syncChildren reorders n's arena children to match the widget's
// ChildrenIDs. The two must agree as sets; a mismatch is a defect and
// leaves the arena order alone.
func (r *RenderRoot) syncChildren(n *node) {
	want := n.widget.ChildrenIDs()
	if slices.Equal(want, n.children) {
		return
	}
	if !sameIDs(want, n.children) {
		diag.Defectf("%s %v: ChildrenIDs %v do not match registered children %v",
			n.widget.Kind(), n.id, want, n.children)
		return
	}
	n.children = slices.Clone(want)
	n.state.request(NeedsAccessibility)
}

func sameIDs(a, b []WidgetID) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[WidgetID]int, len(a))
	for _, id := range a {
		seen[id]++
	}
	for _, id := range b {
		if seen[id] == 0 {
			return false
		}
		seen[id]--
	}
	return true
}

func (r *RenderRoot) propsOf(n *node) properties.Ref {
	return properties.NewRef(n.props, r.defaults.For(string(n.widget.Kind())))
}
