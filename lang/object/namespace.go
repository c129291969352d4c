package object

import "github.com/dolthub/swiss"

// slot is one entry of an orderedMap: a name and its current value, kept at
// a stable index so the swiss-table side can point at it by position.
type slot struct {
	name  string
	value Value
}

// orderedMap pairs a swiss-table index (name -> slot index) with an
// append-only slice of slots, giving O(1) average lookup while iteration
// order always matches insertion order. This backs both Namespace (attribute
// maps) and Map (the language-level insertion-ordered map value).
type orderedMap struct {
	index *swiss.Map[string, int]
	slots []slot
}

func newOrderedMap(size int) *orderedMap {
	if size < 4 {
		size = 4
	}
	return &orderedMap{index: swiss.NewMap[string, int](uint32(size))}
}

func (m *orderedMap) get(name string) (Value, bool) {
	i, ok := m.index.Get(name)
	if !ok {
		return nil, false
	}
	return m.slots[i].value, true
}

// insert unconditionally creates or replaces the binding for name.
func (m *orderedMap) insert(name string, v Value) {
	if i, ok := m.index.Get(name); ok {
		m.slots[i].value = v
		return
	}
	m.index.Put(name, len(m.slots))
	m.slots = append(m.slots, slot{name: name, value: v})
}

// set replaces the binding for name only if it already exists, reporting
// whether it did.
func (m *orderedMap) set(name string, v Value) bool {
	i, ok := m.index.Get(name)
	if !ok {
		return false
	}
	m.slots[i].value = v
	return true
}

func (m *orderedMap) delete(name string) bool {
	i, ok := m.index.Get(name)
	if !ok {
		return false
	}
	m.index.Delete(name)
	m.slots = append(m.slots[:i], m.slots[i+1:]...)
	for j := i; j < len(m.slots); j++ {
		m.index.Put(m.slots[j].name, j)
	}
	return true
}

func (m *orderedMap) len() int { return len(m.slots) }

func (m *orderedMap) names() []string {
	names := make([]string, len(m.slots))
	for i, s := range m.slots {
		names[i] = s.name
	}
	return names
}

// equal reports whether two orderedMaps have the same key set and pointwise
// equal values, per Namespace's equality invariant. eq compares two values.
func (m *orderedMap) equal(o *orderedMap, eq func(a, b Value) bool) bool {
	if m.len() != o.len() {
		return false
	}
	for _, s := range m.slots {
		ov, ok := o.get(s.name)
		if !ok || !eq(s.value, ov) {
			return false
		}
	}
	return true
}

// Namespace is an insertion-ordered mapping from names to values, attached
// to every object, module and type descriptor.
type Namespace struct {
	m *orderedMap
}

func NewNamespace(size int) *Namespace {
	return &Namespace{m: newOrderedMap(size)}
}

// Insert unconditionally creates or replaces the binding for name.
func (n *Namespace) Insert(name string, v Value) { n.m.insert(name, v) }

// Set succeeds only if name already exists in the namespace.
func (n *Namespace) Set(name string, v Value) bool { return n.m.set(name, v) }

func (n *Namespace) Get(name string) (Value, bool) { return n.m.get(name) }
func (n *Namespace) Delete(name string) bool       { return n.m.delete(name) }
func (n *Namespace) Len() int                      { return n.m.len() }
func (n *Namespace) Names() []string                { return n.m.names() }

// Equal reports whether two namespaces have the same key set and pointwise
// equal values (by address identity of the underlying value, the cheapest
// notion that the namespace layer itself can offer; structural equality of
// the values themselves is the concern of object.Equals).
func (n *Namespace) Equal(o *Namespace) bool {
	return n.m.equal(o.m, func(a, b Value) bool { return a == b })
}
