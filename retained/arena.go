package retained

import (
	"errors"
	"slices"

	"github.com/agiangrant/arbor/internal/diag"
	"github.com/agiangrant/arbor/properties"
)

// ErrWidgetNotFound is wrapped by the defect raised when a public entry
// point is given an id that is not in the tree.
var ErrWidgetNotFound = errors.New("widget not found")

// ============================================================================
// Arena
// ============================================================================

// node is one widget in the arena: the widget, its derived state, its
// property overrides and its structural links.
type node struct {
	id       WidgetID
	widget   Widget
	state    WidgetState
	props    properties.Map
	parent   WidgetID
	children []WidgetID

	// borrowed is set while a WidgetMut for this node is live.
	borrowed bool
}

// arena stores every node of one tree in a slice of slots, recycling the
// slots of removed nodes. Nodes are found through index, keyed by
// WidgetID. Ids come from a process-wide counter and are never reissued,
// so removing a node's index entry is enough to make every copy of its id
// stale: a recycled slot is only reachable through its new occupant's id.
type arena struct {
	slots []*node
	free  []int32
	index map[WidgetID]int32
	root  WidgetID
}

func newArena() *arena {
	return &arena{index: make(map[WidgetID]int32)}
}

func (a *arena) len() int { return len(a.index) }

// get returns the node for id, or false if it is not in the arena.
func (a *arena) get(id WidgetID) (*node, bool) {
	i, ok := a.index[id]
	if !ok {
		return nil, false
	}
	return a.slots[i], true
}

// mustGet is get for ids that callers promise are live. A miss means the
// caller held a stale id, so it aborts.
func (a *arena) mustGet(id WidgetID) *node {
	n, ok := a.get(id)
	if !ok {
		diag.Abortf("widget %v: %w", id, ErrWidgetNotFound)
	}
	return n
}

func (a *arena) parentOf(id WidgetID) (WidgetID, bool) {
	n, ok := a.get(id)
	if !ok || n.parent.IsZero() {
		return 0, false
	}
	return n.parent, true
}

// insert attaches n under parent at position pos. A zero parent makes n
// the root, which is only allowed once.
func (a *arena) insert(parent WidgetID, pos int, n *node) {
	if _, dup := a.index[n.id]; dup {
		diag.Abortf("widget %v inserted twice", n.id)
	}
	if parent.IsZero() {
		if !a.root.IsZero() {
			diag.Abortf("tree already has root %v", a.root)
		}
		a.root = n.id
	} else {
		p := a.mustGet(parent)
		if pos < 0 || pos > len(p.children) {
			diag.Abortf("insert position %d out of range [0, %d] for %v", pos, len(p.children), parent)
		}
		p.children = slices.Insert(p.children, pos, n.id)
		n.parent = parent
	}

	var idx int32
	if last := len(a.free) - 1; last >= 0 {
		idx = a.free[last]
		a.free = a.free[:last]
		a.slots[idx] = n
	} else {
		idx = int32(len(a.slots))
		a.slots = append(a.slots, n)
	}
	a.index[n.id] = idx
}

// remove detaches id from its parent and destroys its whole subtree.
// The walk is iterative so deep trees do not grow the stack.
func (a *arena) remove(id WidgetID) {
	n := a.mustGet(id)
	if n.parent.IsZero() {
		a.root = 0
	} else {
		p := a.mustGet(n.parent)
		if i := slices.Index(p.children, id); i >= 0 {
			p.children = slices.Delete(p.children, i, i+1)
		}
	}

	stack := acquireIDSlice(0)
	stack = append(stack, id)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		i, ok := a.index[cur]
		if !ok {
			continue
		}
		stack = append(stack, a.slots[i].children...)
		a.slots[i] = nil
		a.free = append(a.free, i)
		delete(a.index, cur)
	}
	releaseIDSlice(stack)
}

// mergeUp recomputes n's aggregate flags from its local flags and its
// direct children's aggregates.
func (a *arena) mergeUp(n *node) {
	agg := n.state.local
	for _, cid := range n.children {
		if c, ok := a.get(cid); ok {
			agg |= c.state.aggregate
		}
	}
	n.state.aggregate = agg
}

// mergeUpToRoot restores the aggregate invariant on the path from id to
// the root. It is a loop bounded by the depth of id.
func (a *arena) mergeUpToRoot(id WidgetID) {
	for cur := id; !cur.IsZero(); {
		n, ok := a.get(cur)
		if !ok {
			return
		}
		a.mergeUp(n)
		cur = n.parent
	}
}

// ============================================================================
// Split Access
// ============================================================================

// nodeMut is exclusive access to one node. Other nodes are reachable only
// through child, which refuses anything but a direct child that is not
// already borrowed. Two nodeMuts obtained this way never alias, and a
// parent handle plus any number of distinct child handles can be used
// side by side.
//
// The exclusivity is a contract on callers, checked at runtime through the
// borrowed mark; nothing stops Go code from keeping a *node after release.
type nodeMut struct {
	arena *arena
	n     *node
}

// borrow takes exclusive access to id.
func (a *arena) borrow(id WidgetID) nodeMut {
	n := a.mustGet(id)
	if n.borrowed {
		diag.Abortf("widget %v is already being mutated", id)
	}
	n.borrowed = true
	return nodeMut{arena: a, n: n}
}

// child takes exclusive access to a direct child of m.
func (m nodeMut) child(id WidgetID) (nodeMut, bool) {
	if !slices.Contains(m.n.children, id) {
		return nodeMut{}, false
	}
	c, ok := m.arena.get(id)
	if !ok {
		return nodeMut{}, false
	}
	if c.borrowed {
		diag.Abortf("widget %v is already being mutated", id)
	}
	c.borrowed = true
	return nodeMut{arena: m.arena, n: c}, true
}

// release ends the borrow and folds the node's flags into its own
// aggregate. Ancestors are left to the caller.
func (m nodeMut) release() {
	m.n.borrowed = false
	m.arena.mergeUp(m.n)
}
