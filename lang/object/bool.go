package object

// Bool is FeInt's boolean type.
type Bool bool

const (
	False Bool = false
	True  Bool = true
)

var _ Value = False

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (b Bool) Type() string { return "bool" }
func (b Bool) Truth() bool  { return bool(b) }

func (b Bool) Cmp(y Value) (int, error) {
	o, ok := y.(Bool)
	if !ok {
		return 0, wrongType("bool", y)
	}
	return b2i(bool(b)) - b2i(bool(o)), nil
}

var _ Ordered = False

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
