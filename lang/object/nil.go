package object

// Nil is the singleton value of FeInt's nil type.
type Nil struct{}

// NilValue is the sole instance of Nil.
var NilValue = Nil{}

var _ Value = NilValue

func (Nil) String() string { return "nil" }
func (Nil) Type() string    { return "nil" }
func (Nil) Truth() bool     { return false }

// Always is the synthetic "no value produced" sentinel used by the compiler
// for statement contexts that are expressions in FeInt's expression-oriented
// grammar (e.g. the value of a bare import statement). It is falsy-distinct
// from Nil: Always never compares equal to NilValue.
type Always struct{}

var AlwaysValue = Always{}

var _ Value = AlwaysValue

func (Always) String() string { return "always" }
func (Always) Type() string   { return "always" }
func (Always) Truth() bool    { return true }
