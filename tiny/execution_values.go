package tiny

func (exec *Execution) evalExpression(expr Expression, env *Env) (Value, error) {
	if err := exec.step(expr.Pos()); err != nil {
		return NewNull(), err
	}
	switch e := expr.(type) {
	case *Identifier:
		val, ok := env.Get(e.Name)
		if !ok {
			return NewNull(), exec.failAt(e.Pos(), UnboundNameError, "undefined name %s", e.Name)
		}
		return val, nil
	case *IntegerLiteral:
		return NewInt(e.Value), nil
	case *FloatLiteral:
		return NewFloat(e.Value), nil
	case *StringLiteral:
		return NewString(e.Value), nil
	case *BoolLiteral:
		return NewBool(e.Value), nil
	case *NullLiteral:
		return NewNull(), nil
	case *ListLiteral:
		items := make([]Value, len(e.Elements))
		for i, el := range e.Elements {
			val, err := exec.evalExpression(el, env)
			if err != nil {
				return NewNull(), err
			}
			items[i] = val
		}
		return NewList(&List{Items: items}), nil
	case *DictLiteral:
		d := newDict()
		for _, entry := range e.Entries {
			val, err := exec.evalExpression(entry.Value, env)
			if err != nil {
				return NewNull(), err
			}
			d.Set(entry.Key, val)
		}
		return NewDict(d), nil
	case *MemberExpr:
		obj, err := exec.evalExpression(e.Object, env)
		if err != nil {
			return NewNull(), err
		}
		return exec.getMember(obj, e.Name, e.Pos())
	case *IndexExpr:
		return exec.evalIndexExpr(e, env)
	case *UnaryExpr:
		return exec.evalUnaryExpr(e, env)
	case *BinaryExpr:
		return exec.evalBinaryExpr(e, env)
	case *CallExpr:
		return exec.evalCallExpr(e, env)
	case *NewExpr:
		return exec.evalNewExpr(e, env)
	default:
		return NewNull(), exec.failAt(expr.Pos(), TypeMismatch, "unsupported expression")
	}
}

func (exec *Execution) evalIndexExpr(e *IndexExpr, env *Env) (Value, error) {
	obj, err := exec.evalExpression(e.Object, env)
	if err != nil {
		return NewNull(), err
	}
	idx, err := exec.evalExpression(e.Index, env)
	if err != nil {
		return NewNull(), err
	}
	switch obj.Kind() {
	case KindList:
		items := obj.List().Items
		if idx.Kind() != KindInt {
			return NewNull(), exec.failAt(e.Index.Pos(), TypeMismatch, "list index must be int, got %s", idx.Kind())
		}
		i := idx.Int()
		if i < 0 || i >= int64(len(items)) {
			return NewNull(), exec.failAt(e.Index.Pos(), KeyNotFoundError, "list index %d out of bounds (len %d)", i, len(items))
		}
		return items[i], nil
	case KindDict:
		if idx.Kind() != KindString {
			return NewNull(), exec.failAt(e.Index.Pos(), TypeMismatch, "dict key must be string, got %s", idx.Kind())
		}
		val, ok := obj.Dict().Get(idx.String())
		if !ok {
			return NewNull(), exec.failAt(e.Index.Pos(), KeyNotFoundError, "key %q not found", idx.String())
		}
		return val, nil
	default:
		return NewNull(), exec.failAt(e.Object.Pos(), TypeMismatch, "cannot index %s", obj.Kind())
	}
}
