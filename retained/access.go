package retained

import "slices"

// ============================================================================
// Accessibility
// ============================================================================

// Role is the kind of element reported to assistive technology.
type Role uint8

const (
	RoleUnknown Role = iota
	RoleGenericContainer
	RoleGroup
	RoleImage
	RoleLabel
	RoleButton
	RoleWindow
)

func (r Role) String() string {
	switch r {
	case RoleGenericContainer:
		return "generic-container"
	case RoleGroup:
		return "group"
	case RoleImage:
		return "image"
	case RoleLabel:
		return "label"
	case RoleButton:
		return "button"
	case RoleWindow:
		return "window"
	default:
		return "unknown"
	}
}

// AccessNode is the exported accessibility entry for one widget. The pass
// fills in everything but Label and Description before calling
// Widget.Accessibility.
type AccessNode struct {
	ID          WidgetID
	Role        Role
	Label       string
	Description string
	Bounds      Rect
	Children    []WidgetID
	Disabled    bool
}

// AccessTreeUpdate lists the entries that changed since the previous
// accessibility pass.
type AccessTreeUpdate struct {
	Root    WidgetID
	Nodes   []AccessNode // changed entries, parents before children
	Removed []WidgetID
}

// Node returns the entry for id if it is part of the update.
func (u *AccessTreeUpdate) Node(id WidgetID) (AccessNode, bool) {
	for _, n := range u.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return AccessNode{}, false
}

// IsEmpty reports whether nothing changed.
func (u *AccessTreeUpdate) IsEmpty() bool {
	return len(u.Nodes) == 0 && len(u.Removed) == 0
}

// RunAccessibilityPass rebuilds the entries of widgets flagged
// NeedsAccessibility.
func (r *RenderRoot) RunAccessibilityPass() (*AccessTreeUpdate, error) {
	update := &AccessTreeUpdate{Root: r.rootID}
	err := r.runPass(PassAccessibility, func() {
		update.Removed = r.accessRemoved
		r.accessRemoved = nil
		r.accessSubtree(r.arena.mustGet(r.rootID), update)
	})
	return update, err
}

func (r *RenderRoot) accessSubtree(n *node, update *AccessTreeUpdate) {
	if !n.state.aggregate.Any(NeedsAccessibility) {
		return
	}
	if n.state.local.Any(NeedsAccessibility) {
		entry := AccessNode{
			ID:       n.id,
			Bounds:   n.state.WindowBounds(),
			Children: slices.Clone(n.children),
			Disabled: n.state.effectiveDisabled,
		}
		ctx := &AccessCtx{ctxBase{root: r, n: n}}
		r.call(PassAccessibility, n, func() error {
			entry.Role = n.widget.AccessibilityRole()
			return n.widget.Accessibility(ctx, &entry)
		})
		n.state.clear(NeedsAccessibility)
		update.Nodes = append(update.Nodes, entry)
	}
	for _, id := range n.children {
		if c, ok := r.arena.get(id); ok {
			r.accessSubtree(c, update)
		}
	}
	r.arena.mergeUp(n)
}
