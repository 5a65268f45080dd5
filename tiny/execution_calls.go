package tiny

import "errors"

func (exec *Execution) evalCallExpr(e *CallExpr, env *Env) (Value, error) {
	args, err := exec.evalArgs(e.Args, env)
	if err != nil {
		return NewNull(), err
	}

	switch callee := e.Callee.(type) {
	case *Identifier:
		return exec.callBare(callee.Name, args, e.Pos(), env)
	case *MemberExpr:
		return exec.callMember(callee, args, e.Pos(), env)
	default:
		fn, err := exec.evalExpression(e.Callee, env)
		if err != nil {
			return NewNull(), err
		}
		return exec.invokeValue(fn, "", NewNull(), args, e.Pos())
	}
}

func (exec *Execution) evalArgs(exprs []Expression, env *Env) ([]Value, error) {
	if len(exprs) == 0 {
		return nil, nil
	}
	args := make([]Value, 0, len(exprs))
	for _, arg := range exprs {
		v, err := exec.evalExpression(arg, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

// callBare resolves a bare call name. Inside a method the enclosing class's
// method table wins, so sibling methods are callable without qualification;
// the receiver (if any) carries over. Otherwise the name resolves through
// the environment chain, which also covers registered builtins.
func (exec *Execution) callBare(name string, args []Value, pos Position, env *Env) (Value, error) {
	if fn := exec.currentFunction(); fn != nil && fn.Class != nil {
		if m, ok := fn.Class.Method(name); ok {
			self := NewNull()
			if bound, ok := env.Get("self"); ok {
				self = bound
			}
			return exec.callFunction(m, methodDisplayName(fn.Class, m, self), self, args, pos)
		}
	}

	if v, ok := env.Get(name); ok {
		return exec.invokeValue(v, name, NewNull(), args, pos)
	}
	return NewNull(), exec.failAt(pos, UnboundNameError, "undefined function %s", name)
}

// callMember resolves receiver.name(...) calls. Instances dispatch through
// the class method table before falling back to a callable field; classes
// dispatch through the method table with no receiver bound; dicts treat the
// member as a stored callable.
func (exec *Execution) callMember(e *MemberExpr, args []Value, pos Position, env *Env) (Value, error) {
	object, err := exec.evalExpression(e.Object, env)
	if err != nil {
		return NewNull(), err
	}

	switch object.Kind() {
	case KindInstance:
		inst := object.Instance()
		if m, ok := inst.Class.Method(e.Name); ok {
			return exec.callFunction(m, methodDisplayName(inst.Class, m, object), object, args, pos)
		}
		if field, ok := inst.Fields.Get(e.Name); ok {
			return exec.invokeValue(field, e.Name, NewNull(), args, pos)
		}
		return NewNull(), exec.failAt(pos, MemberNotFoundError, "%s has no member %q", inst.Class.Name, e.Name)
	case KindClass:
		cl := object.Class()
		if m, ok := cl.Method(e.Name); ok {
			return exec.callFunction(m, methodDisplayName(cl, m, NewNull()), NewNull(), args, pos)
		}
		return NewNull(), exec.failAt(pos, MemberNotFoundError, "class %s has no method %q", cl.Name, e.Name)
	case KindDict:
		v, ok := object.Dict().Get(e.Name)
		if !ok {
			return NewNull(), exec.failAt(pos, KeyNotFoundError, "key %q not found", e.Name)
		}
		return exec.invokeValue(v, e.Name, NewNull(), args, pos)
	default:
		return NewNull(), exec.failAt(pos, TypeMismatch, "cannot call member %q on %s", e.Name, object.Kind())
	}
}

// invokeValue calls a first-class callable value. Builtin failures surface
// as host errors unless the builtin already produced a structured runtime
// error of its own.
func (exec *Execution) invokeValue(callee Value, name string, self Value, args []Value, pos Position) (Value, error) {
	switch callee.Kind() {
	case KindFunction:
		fn := callee.Function()
		display := fn.Name
		if fn.Class != nil {
			display = methodDisplayName(fn.Class, fn, self)
		}
		return exec.callFunction(fn, display, self, args, pos)
	case KindBuiltin:
		b := callee.Builtin()
		result, err := b.Fn(exec, args)
		if err != nil {
			var rt *RuntimeError
			if errors.As(err, &rt) {
				return NewNull(), err
			}
			return NewNull(), exec.failAt(pos, HostError, "%s: %v", b.Name, err)
		}
		return result, nil
	default:
		if name != "" {
			return NewNull(), exec.failAt(pos, TypeMismatch, "%s is not callable (%s)", name, callee.Kind())
		}
		return NewNull(), exec.failAt(pos, TypeMismatch, "%s is not callable", callee.Kind())
	}
}

// callFunction runs a user function body in a fresh scope parented at the
// global environment. The receiver, when present, binds as self before the
// parameters. A body that never returns yields null.
func (exec *Execution) callFunction(fn *Function, displayName string, self Value, args []Value, pos Position) (Value, error) {
	if len(args) != len(fn.Params) {
		return NewNull(), exec.failAt(pos, ArityError, "%s expects %d arguments, got %d", displayName, len(fn.Params), len(args))
	}

	if err := exec.pushFrame(fn, displayName, pos); err != nil {
		return NewNull(), err
	}
	defer exec.popFrame()
	exec.debug("call", "fn", displayName, "depth", len(exec.callStack))

	callEnv := newEnv(exec.root)
	if !self.IsNull() {
		callEnv.Define("self", self)
	}
	for i, param := range fn.Params {
		if !callEnv.Define(param, args[i]) {
			return NewNull(), exec.failAt(fn.Pos, RedefinitionError, "duplicate parameter %s", param)
		}
	}

	result, returned, err := exec.evalStatements(fn.Body, callEnv)
	if err != nil {
		return NewNull(), err
	}
	if !returned {
		return NewNull(), nil
	}
	return result, nil
}

// evalNewExpr instantiates a class with an empty field set, then runs its
// constructor method when one is declared. Arguments without a constructor
// to receive them are an arity error.
func (exec *Execution) evalNewExpr(e *NewExpr, env *Env) (Value, error) {
	args, err := exec.evalArgs(e.Args, env)
	if err != nil {
		return NewNull(), err
	}

	cl, ok := exec.script.class(e.Class)
	if !ok {
		return NewNull(), exec.failAt(e.Pos(), UnboundNameError, "undefined class %s", e.Class)
	}

	instance := NewInstance(newInstance(cl))
	if ctor, ok := cl.Method("constructor"); ok {
		if _, err := exec.callFunction(ctor, methodDisplayName(cl, ctor, instance), instance, args, e.Pos()); err != nil {
			return NewNull(), err
		}
	} else if len(args) > 0 {
		return NewNull(), exec.failAt(e.Pos(), ArityError, "class %s has no constructor, got %d arguments", cl.Name, len(args))
	}
	return instance, nil
}

// methodDisplayName renders Class#method for receiver-bound calls and
// Class.method for class-qualified ones. The distinction shows up in stack
// traces.
func methodDisplayName(cl *Class, fn *Function, self Value) string {
	if self.IsNull() {
		return cl.Name + "." + fn.Name
	}
	return cl.Name + "#" + fn.Name
}
