package tiny

func (exec *Execution) evalAssertStatement(s *AssertStmt, env *Env) error {
	v, err := exec.evalExpression(s.Cond, env)
	if err != nil {
		return err
	}
	if v.Truthy() {
		exec.debug("assert ok", "expr", s.Source)
		return nil
	}
	exec.debug("assert failed", "expr", s.Source, "was", formatSnapshot(v))
	if s.Source != "" {
		return exec.failAt(s.Pos(), AssertionFailure, "assertion failed: %s (was %s)", s.Source, formatSnapshot(v))
	}
	return exec.failAt(s.Pos(), AssertionFailure, "assertion failed (was %s)", formatSnapshot(v))
}
