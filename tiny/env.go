package tiny

// Env is one scope in the chain: a child's parent is the enclosing lexical
// or call scope. Lookups walk innermost-first.
type Env struct {
	parent *Env
	values map[string]Value
}

func newEnv(parent *Env) *Env {
	return &Env{parent: parent, values: make(map[string]Value)}
}

func (e *Env) Get(name string) (Value, bool) {
	if val, ok := e.values[name]; ok {
		return val, true
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Value{}, false
}

// Define binds name in this exact scope. It reports false if the name is
// already bound here; rebinding in the same scope is a redefinition error at
// the call site.
func (e *Env) Define(name string, val Value) bool {
	if _, exists := e.values[name]; exists {
		return false
	}
	e.values[name] = val
	return true
}

// Assign mutates the slot of the nearest scope owning name. It reports false
// when no scope in the chain owns it: assignment never creates a binding.
func (e *Env) Assign(name string, val Value) bool {
	if _, ok := e.values[name]; ok {
		e.values[name] = val
		return true
	}
	if e.parent != nil {
		return e.parent.Assign(name, val)
	}
	return false
}
