package tiny

// assign is the write side of the path protocol. For a chained target the
// intermediate segments are evaluated as reads, so a missing or mistyped
// segment fails exactly like a read would; only the final key is created or
// overwritten. Plain identifier assignment mutates the nearest owning scope
// and never creates a binding.
func (exec *Execution) assign(target Expression, value Value, env *Env) error {
	switch t := target.(type) {
	case *Identifier:
		if !env.Assign(t.Name, value) {
			return exec.failAt(t.Pos(), UnboundNameError, "cannot assign to undefined name %s", t.Name)
		}
		return nil
	case *MemberExpr:
		obj, err := exec.evalExpression(t.Object, env)
		if err != nil {
			return err
		}
		switch obj.Kind() {
		case KindDict:
			obj.Dict().Set(t.Name, value)
			return nil
		case KindInstance:
			obj.Instance().Fields.Set(t.Name, value)
			return nil
		case KindClass:
			return exec.failAt(t.Pos(), TypeMismatch, "cannot assign member %q on class %s", t.Name, obj.Class().Name)
		default:
			return exec.failAt(t.Pos(), TypeMismatch, "cannot assign member %q on %s", t.Name, obj.Kind())
		}
	case *IndexExpr:
		obj, err := exec.evalExpression(t.Object, env)
		if err != nil {
			return err
		}
		idx, err := exec.evalExpression(t.Index, env)
		if err != nil {
			return err
		}
		switch obj.Kind() {
		case KindList:
			if idx.Kind() != KindInt {
				return exec.failAt(t.Index.Pos(), TypeMismatch, "list index must be int, got %s", idx.Kind())
			}
			items := obj.List().Items
			i := idx.Int()
			if i < 0 || i >= int64(len(items)) {
				return exec.failAt(t.Index.Pos(), KeyNotFoundError, "list index %d out of bounds (len %d)", i, len(items))
			}
			items[i] = value
			return nil
		case KindDict:
			if idx.Kind() != KindString {
				return exec.failAt(t.Index.Pos(), TypeMismatch, "dict key must be string, got %s", idx.Kind())
			}
			obj.Dict().Set(idx.String(), value)
			return nil
		default:
			return exec.failAt(t.Object.Pos(), TypeMismatch, "cannot index %s", obj.Kind())
		}
	default:
		return exec.failAt(target.Pos(), TypeMismatch, "invalid assignment target")
	}
}
