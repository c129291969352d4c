package object

// Cell is a single mutable slot holding a value, used to box variables
// captured by one or more closures so mutation in any closure is observed
// by all of them (spec.md §3's Cell / §9's capture-promotion design note).
type Cell struct {
	V Value
}

var _ Value = (*Cell)(nil)

func (c *Cell) String() string { return "cell(" + c.V.String() + ")" }
func (c *Cell) Type() string   { return "cell" }
func (c *Cell) Truth() bool    { return c.V.Truth() }
