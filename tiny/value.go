package tiny

type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindDict
	KindInstance
	KindFunction
	KindClass
	KindBuiltin
)

// Value is the runtime's tagged union. Scalars copy on assignment; lists,
// dicts, and instances hold pointers so every alias shares one container.
type Value struct {
	kind ValueKind
	data any
}

// List is an ordered, growable sequence of values. It is always handled
// through a pointer: growing it through one alias grows it through all.
type List struct {
	Items []Value
}

// Function is a method declared inside a class: the class reference is what
// bare sibling calls resolve against.
type Function struct {
	Name   string
	Params []string
	Body   []Statement
	Class  *Class
	Pos    Position
}

type Builtin struct {
	Name string
	Fn   BuiltinFunc
}

// BuiltinFunc is the signature for host-registered functions exposed to
// scripts as callable globals.
type BuiltinFunc func(exec *Execution, args []Value) (Value, error)
