package retained

import "sync"

// ============================================================================
// ID Slice Pooling
// ============================================================================
//
// Passes walk children while the tree underneath them may change (a widget
// can register or remove children mid-pass), so each walk iterates over a
// copy of the child list. These copies are pooled to keep large trees from
// allocating on every frame.
//
// Usage:
//   ids := acquireIDSlice(len(n.children))
//   copy(ids, n.children)
//   ... use ids ...
//   releaseIDSlice(ids)

var idSlicePool = sync.Pool{
	New: func() interface{} {
		return make([]WidgetID, 0, 16)
	},
}

// acquireIDSlice gets a slice from the pool with len == n.
// Caller must call releaseIDSlice when done.
func acquireIDSlice(n int) []WidgetID {
	slice := idSlicePool.Get().([]WidgetID)
	if cap(slice) < n {
		idSlicePool.Put(slice[:0])
		return make([]WidgetID, n, n*2)
	}
	return slice[:n]
}

// releaseIDSlice returns a slice to the pool. The slice must not be used
// afterwards.
func releaseIDSlice(slice []WidgetID) {
	if slice == nil {
		return
	}
	// Only pool slices up to a reasonable size to avoid memory bloat
	if cap(slice) <= 256 {
		idSlicePool.Put(slice[:0])
	}
}

// childrenSnapshot copies n's children into a pooled slice.
func childrenSnapshot(n *node) []WidgetID {
	ids := acquireIDSlice(len(n.children))
	copy(ids, n.children)
	return ids
}
