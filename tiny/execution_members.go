package tiny

// getMember is the read side of the chained path protocol. Reads walk a path
// left to right; every intermediate must be a dict or an instance, and a
// missing key is an error, never an auto-created container.
//
// Instance lookup order is fields first, then class methods: a method read
// outside a call position yields an unbound function value.
func (exec *Execution) getMember(obj Value, name string, pos Position) (Value, error) {
	switch obj.Kind() {
	case KindDict:
		if val, ok := obj.Dict().Get(name); ok {
			return val, nil
		}
		return NewNull(), exec.failAt(pos, KeyNotFoundError, "key %q not found", name)
	case KindInstance:
		inst := obj.Instance()
		if val, ok := inst.Fields.Get(name); ok {
			return val, nil
		}
		if fn, ok := inst.Class.Method(name); ok {
			return NewFunction(fn), nil
		}
		return NewNull(), exec.failAt(pos, MemberNotFoundError, "%s has no member %q", inst.Class.Name, name)
	case KindClass:
		cl := obj.Class()
		if fn, ok := cl.Method(name); ok {
			return NewFunction(fn), nil
		}
		return NewNull(), exec.failAt(pos, MemberNotFoundError, "class %s has no method %q", cl.Name, name)
	default:
		return NewNull(), exec.failAt(pos, TypeMismatch, "cannot access member %q on %s", name, obj.Kind())
	}
}
