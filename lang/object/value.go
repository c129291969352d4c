// Package object implements the runtime value model shared by the compiler
// and the virtual machine: the tagged value variants, their attribute
// namespaces, and the capability interfaces the machine dispatches through
// for attribute access, indexing and operator application.
package object

import "github.com/feint-lang/feint/lang/token"

// Value is the interface implemented by every value the machine manipulates.
type Value interface {
	// String returns the value's display representation.
	String() string

	// Type returns a short string naming the value's runtime type, e.g. "int"
	// or "closure".
	Type() string

	// Truth returns the value's boolean interpretation, used by conditionals
	// and the unary "not" operator.
	Truth() bool
}

// An Ordered type supports relative comparison (<, <=, >, >=) against values
// of the same kind.
type Ordered interface {
	Value
	// Cmp returns negative if x < y, positive if x > y, and zero if equal.
	// Implementations should return an error rather than panic on
	// uncomparable operands.
	Cmp(y Value) (int, error)
}

// Iterable abstracts a sequence that may be iterated, whose length is not
// necessarily known ahead of time.
type Iterable interface {
	Value
	Iterate() Iterator
}

// Sequence is an Iterable whose length is known.
type Sequence interface {
	Iterable
	Len() int
}

// Indexable is a sequence of known length supporting random access by
// integer index.
type Indexable interface {
	Value
	Index(i int) Value
	Len() int
}

// HasSetIndex is an Indexable whose elements may be reassigned (x[i] = y).
type HasSetIndex interface {
	Indexable
	SetIndex(i int, v Value) error
}

// Iterator yields the successive elements of a Sequence or Mapping. Callers
// must call Done once they stop iterating early.
type Iterator interface {
	Next(p *Value) bool
	Done()
}

// Mapping is a value addressable by arbitrary key, such as Map.
type Mapping interface {
	Value
	Get(key Value) (v Value, found bool, err error)
}

// HasSetKey supports map update using x[k] = v syntax.
type HasSetKey interface {
	Mapping
	SetKey(k, v Value) error
}

// IterableMapping is a Mapping whose entries may also be enumerated in
// insertion order.
type IterableMapping interface {
	Mapping
	Iterate() Iterator
	Items() []*Tuple
}

// HasBinary is implemented by values that may appear as either operand of a
// binary operator. An implementation may decline an operation by returning
// (nil, nil), letting the machine try the other operand or report a
// TypeError. Side records which operand position the receiver occupies.
type HasBinary interface {
	Value
	Binary(op token.Token, y Value, side Side) (Value, error)
}

// Side indicates whether a HasBinary receiver is the left or right operand.
type Side bool

const (
	Left  Side = false
	Right Side = true
)

// HasUnary is implemented by values usable as the operand of a unary
// operator (- or not).
type HasUnary interface {
	Value
	Unary(op token.Token) (Value, error)
}

// HasAttrs is implemented by values whose fields or methods are readable
// through a dot expression (y = x.name). A result of (nil, nil) from Attr
// means "no such attribute".
type HasAttrs interface {
	Value
	Attr(name string) (Value, error)
	AttrNames() []string
}

// HasSetField is a HasAttrs value whose fields may also be written through a
// dot expression (x.name = y).
type HasSetField interface {
	HasAttrs
	SetField(name string, v Value) error
}

// NoSuchAttrError is returned by HasAttrs.Attr or HasSetField.SetField to
// indicate the named attribute does not exist.
type NoSuchAttrError string

func (e NoSuchAttrError) Error() string { return string(e) }

// Callable is implemented by every value that may appear as the callee of a
// Call instruction: Function, Closure, BoundFunc, IntrinsicFunc and type
// descriptors (as constructors).
type Callable interface {
	Value
	Name() string
}
