package object

import (
	"strings"

	"github.com/feint-lang/feint/lang/token"
)

// Map is FeInt's insertion-ordered mapping from string to value, backed by
// the same swiss-table-plus-slots orderedMap as Namespace.
type Map struct {
	m *orderedMap
}

func NewMap(size int) *Map { return &Map{m: newOrderedMap(size)} }

var (
	_ Value           = (*Map)(nil)
	_ Mapping         = (*Map)(nil)
	_ HasSetKey       = (*Map)(nil)
	_ IterableMapping = (*Map)(nil)
	_ HasBinary       = (*Map)(nil)
)

func (m *Map) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, s := range m.m.slots {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(String(s.name).GoString())
		b.WriteString(": ")
		b.WriteString(s.value.String())
	}
	b.WriteByte('}')
	return b.String()
}

func (m *Map) Type() string { return "map" }
func (m *Map) Truth() bool  { return m.m.len() != 0 }
func (m *Map) Len() int     { return m.m.len() }

func (m *Map) Get(key Value) (Value, bool, error) {
	s, ok := key.(String)
	if !ok {
		return nil, false, wrongType("string key", key)
	}
	v, found := m.m.get(string(s))
	return v, found, nil
}

func (m *Map) SetKey(key, v Value) error {
	s, ok := key.(String)
	if !ok {
		return wrongType("string key", key)
	}
	m.m.insert(string(s), v)
	return nil
}

func (m *Map) Items() []*Tuple {
	items := make([]*Tuple, len(m.m.slots))
	for i, s := range m.m.slots {
		items[i] = NewTuple([]Value{String(s.name), s.value})
	}
	return items
}

func (m *Map) Iterate() Iterator {
	elems := make([]Value, len(m.m.slots))
	for i, s := range m.m.slots {
		elems[i] = String(s.name)
	}
	return &sliceIterator{elems: elems}
}

// Binary implements map "+": a new map with the right-hand entries
// overriding any shared keys, per spec.md §4.4's binary semantics table.
func (m *Map) Binary(op token.Token, y Value, side Side) (Value, error) {
	o, ok := y.(*Map)
	if !ok {
		return nil, nil
	}
	if op != token.PLUS {
		return nil, nil
	}
	left, right := m, o
	if side == Right {
		left, right = right, left
	}
	result := NewMap(left.m.len() + right.m.len())
	for _, s := range left.m.slots {
		result.m.insert(s.name, s.value)
	}
	for _, s := range right.m.slots {
		result.m.insert(s.name, s.value)
	}
	return result, nil
}
