package object

import "fmt"

// Type is a runtime type descriptor: a type's name, its module-qualified
// full name, and a namespace of class-level attributes (methods, intrinsic
// constructors). Acting as the callee of a Call instruction constructs a new
// CustomObject instance.
type Type struct {
	NameStr    string
	ModuleName string
	Attrs      *Namespace
}

var (
	_ Value    = (*Type)(nil)
	_ Callable = (*Type)(nil)
)

func NewType(name, moduleName string) *Type {
	return &Type{NameStr: name, ModuleName: moduleName, Attrs: NewNamespace(4)}
}

func (t *Type) String() string { return fmt.Sprintf("type(%s)", t.FullName()) }
func (t *Type) Type() string   { return "type" }
func (t *Type) Truth() bool    { return true }
func (t *Type) Name() string   { return t.NameStr }
func (t *Type) FullName() string {
	if t.ModuleName == "" {
		return t.NameStr
	}
	return t.ModuleName + "." + t.NameStr
}

// CustomObject is an instance of a user-defined Type, with its own
// attribute namespace distinct from the type's class-level namespace.
type CustomObject struct {
	TypeDesc *Type
	Attrs    *Namespace
}

var (
	_ Value        = (*CustomObject)(nil)
	_ HasAttrs     = (*CustomObject)(nil)
	_ HasSetField  = (*CustomObject)(nil)
)

func NewCustomObject(t *Type) *CustomObject {
	return &CustomObject{TypeDesc: t, Attrs: NewNamespace(4)}
}

func (o *CustomObject) String() string { return fmt.Sprintf("%s(%p)", o.TypeDesc.NameStr, o) }
func (o *CustomObject) Type() string   { return o.TypeDesc.FullName() }
func (o *CustomObject) Truth() bool    { return true }

func (o *CustomObject) Attr(name string) (Value, error) {
	if v, ok := o.Attrs.Get(name); ok {
		return v, nil
	}
	if v, ok := o.TypeDesc.Attrs.Get(name); ok {
		if fn, ok := v.(Callable); ok {
			return &BoundFunc{Fn: fn, This: o}, nil
		}
		return v, nil
	}
	return nil, nil
}

func (o *CustomObject) AttrNames() []string { return o.Attrs.Names() }

func (o *CustomObject) SetField(name string, v Value) error {
	o.Attrs.Insert(name, v)
	return nil
}
