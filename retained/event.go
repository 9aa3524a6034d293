package retained

// ============================================================================
// Lifecycle Updates
// ============================================================================

// UpdateKind identifies a lifecycle event delivered by the update pass.
type UpdateKind uint8

const (
	// UpdateWidgetAdded is the first event every widget receives, after
	// its children have been registered.
	UpdateWidgetAdded UpdateKind = iota + 1

	// UpdateChildrenChanged follows insertion or removal of a direct child.
	UpdateChildrenChanged

	// UpdateDisabledChanged follows a change in the widget's effective
	// disabled state, whether set on the widget or inherited.
	UpdateDisabledChanged
)

func (k UpdateKind) String() string {
	switch k {
	case UpdateWidgetAdded:
		return "widget-added"
	case UpdateChildrenChanged:
		return "children-changed"
	case UpdateDisabledChanged:
		return "disabled-changed"
	default:
		return "unknown"
	}
}

// Update is a lifecycle event.
type Update struct {
	Kind UpdateKind
	// Disabled is the new effective state for UpdateDisabledChanged.
	Disabled bool
}

func (u Update) String() string { return u.Kind.String() }

// queueUpdate appends u to the node's pending events and flags the node.
// Consecutive UpdateChildrenChanged events are coalesced.
func (s *WidgetState) queueUpdate(u Update) {
	if u.Kind == UpdateChildrenChanged {
		if n := len(s.updates); n > 0 && s.updates[n-1].Kind == UpdateChildrenChanged {
			s.request(NeedsUpdate)
			return
		}
	}
	s.updates = append(s.updates, u)
	s.request(NeedsUpdate)
}
