// Package properties holds per-widget property overrides and the
// process-wide table of defaults keyed by widget kind.
//
// A widget reads a property through a Ref, which looks first at the
// widget's own overrides and then at the defaults for its kind. Overrides
// are owned by a single widget node; the default table is shared and must
// only be changed during setup, never while a pass is running.
package properties

import "sync/atomic"

// Kind names a property type. Each concrete property returns a constant
// Kind from its Kind method.
type Kind string

// Property is a value that can be attached to a widget.
type Property interface {
	Kind() Kind
}

// Map holds at most one property per Kind.
type Map map[Kind]Property

// Set stores p, replacing any property of the same kind.
func (m Map) Set(p Property) {
	m[p.Kind()] = p
}

// Clone returns a shallow copy of m. Cloning a nil map returns nil.
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Ref is a read-only view of one widget's overrides layered over the
// defaults for its kind.
type Ref struct {
	local    Map
	defaults Map
}

// NewRef returns a view over local, falling back to defaults.
func NewRef(local, defaults Map) Ref {
	return Ref{local: local, defaults: defaults}
}

// lookup returns the override for k, then the default.
func (r Ref) lookup(k Kind) (Property, bool) {
	if p, ok := r.local[k]; ok {
		return p, true
	}
	p, ok := r.defaults[k]
	return p, ok
}

// Contains reports whether an override or default of kind k exists.
func (r Ref) Contains(k Kind) bool {
	_, ok := r.lookup(k)
	return ok
}

// Lookup returns the property of type P, or false if neither an override
// nor a default is present.
func Lookup[P Property](r Ref) (P, bool) {
	var zero P
	p, ok := r.lookup(zero.Kind())
	if !ok {
		return zero, false
	}
	v, ok := p.(P)
	return v, ok
}

// Get returns the property of type P, or its zero value.
func Get[P Property](r Ref) P {
	v, _ := Lookup[P](r)
	return v
}

// Mut is a mutable view of one widget's overrides. Changes never touch
// the shared defaults.
type Mut struct {
	local    *Map
	defaults Map
}

// NewMut returns a mutable view over *local. The map is allocated on first
// insert if nil.
func NewMut(local *Map, defaults Map) Mut {
	return Mut{local: local, defaults: defaults}
}

// Ref returns a read-only view.
func (m Mut) Ref() Ref {
	return Ref{local: *m.local, defaults: m.defaults}
}

// Insert sets an override and returns the override it replaced, if any.
func (m Mut) Insert(p Property) (Property, bool) {
	if *m.local == nil {
		*m.local = make(Map)
	}
	old, ok := (*m.local)[p.Kind()]
	(*m.local)[p.Kind()] = p
	return old, ok
}

// Remove deletes the override of kind k. Defaults are unaffected.
func (m Mut) Remove(k Kind) (Property, bool) {
	old, ok := (*m.local)[k]
	if ok {
		delete(*m.local, k)
	}
	return old, ok
}

// Table maps widget kinds to their default properties.
type Table struct {
	byKind map[string]Map
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{byKind: make(map[string]Map)}
}

// Set registers p as a default for widgets of kind widgetKind.
func (t *Table) Set(widgetKind string, p Property) *Table {
	m, ok := t.byKind[widgetKind]
	if !ok {
		m = make(Map)
		t.byKind[widgetKind] = m
	}
	m.Set(p)
	return t
}

// For returns the defaults for widgetKind. The result must not be
// modified. A nil table has no defaults.
func (t *Table) For(widgetKind string) Map {
	if t == nil {
		return nil
	}
	return t.byKind[widgetKind]
}

// Kinds returns the widget kinds with at least one default.
func (t *Table) Kinds() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.byKind))
	for k := range t.byKind {
		out = append(out, k)
	}
	return out
}

var defaultTable atomic.Pointer[Table]

func init() {
	defaultTable.Store(NewTable())
}

// DefaultTable returns the process-wide default table.
func DefaultTable() *Table {
	return defaultTable.Load()
}

// SetDefaultTable replaces the process-wide default table. Call it during
// setup only. Passing nil installs an empty table.
func SetDefaultTable(t *Table) {
	if t == nil {
		t = NewTable()
	}
	defaultTable.Store(t)
}
