package tiny

import "fmt"

func (exec *Execution) evalWhileStatement(s *WhileStmt, env *Env) (Value, bool, error) {
	for {
		cond, err := exec.evalExpression(s.Condition, env)
		if err != nil {
			return NewNull(), false, err
		}
		if !cond.Truthy() {
			return NewNull(), false, nil
		}

		result, returned, err := exec.evalStatements(s.Body, newEnv(env))
		if err != nil {
			return NewNull(), false, err
		}
		if returned {
			return result, true, nil
		}
	}
}

// evalForStatement counts over the half-open range [from, to). Bounds are
// evaluated once, before the first iteration, and must both be ints. The
// loop variable lives in one loop scope and is updated in place; the body
// runs in a fresh child scope each pass so its vars do not collide with
// themselves on re-execution.
func (exec *Execution) evalForStatement(s *ForStmt, env *Env) (Value, bool, error) {
	from, err := exec.evalExpression(s.From, env)
	if err != nil {
		return NewNull(), false, err
	}
	to, err := exec.evalExpression(s.To, env)
	if err != nil {
		return NewNull(), false, err
	}
	if from.Kind() != KindInt || to.Kind() != KindInt {
		return NewNull(), false, exec.failAt(s.Pos(), TypeMismatch, "for range bounds must be ints, got %s and %s", from.Kind(), to.Kind())
	}

	loopEnv := newEnv(env)
	loopEnv.Define(s.Name, from)
	for i := from.Int(); i < to.Int(); i++ {
		loopEnv.Assign(s.Name, NewInt(i))

		result, returned, err := exec.evalStatements(s.Body, newEnv(loopEnv))
		if err != nil {
			return NewNull(), false, err
		}
		if returned {
			return result, true, nil
		}
	}
	return NewNull(), false, nil
}

func (exec *Execution) evalPrintStatement(s *PrintStmt, env *Env) error {
	v, err := exec.evalExpression(s.Value, env)
	if err != nil {
		return err
	}
	fmt.Fprintln(exec.out, v.String())
	return nil
}
