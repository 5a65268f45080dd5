package tiny

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// Execution is the per-run state: one entry-point invocation owns one
// Execution, and nothing in it is shared across runs.
type Execution struct {
	engine       *Engine
	script       *Script
	ctx          context.Context
	quota        int
	recursionCap int
	steps        int
	callStack    []callFrame
	root         *Env
	out          io.Writer
	logger       *log.Logger
}

type callFrame struct {
	fn     *Function
	callee string
	pos    Position
}

// Context returns the context the run was started with. Host builtins use it
// to honor cancellation inside long operations.
func (exec *Execution) Context() context.Context {
	if exec.ctx == nil {
		return context.Background()
	}
	return exec.ctx
}

// evalStatements runs stmts in env. The bool result reports that a return
// statement fired and the value should unwind to the nearest call frame;
// otherwise the value is the last statement's result.
func (exec *Execution) evalStatements(stmts []Statement, env *Env) (Value, bool, error) {
	result := NewNull()
	for _, stmt := range stmts {
		if err := exec.step(stmt.Pos()); err != nil {
			return NewNull(), false, err
		}
		val, returned, err := exec.evalStatement(stmt, env)
		if err != nil {
			return NewNull(), false, err
		}
		if returned {
			return val, true, nil
		}
		result = val
	}
	return result, false, nil
}

func (exec *Execution) evalStatement(stmt Statement, env *Env) (Value, bool, error) {
	switch s := stmt.(type) {
	case *VarStmt:
		val, err := exec.evalExpression(s.Value, env)
		if err != nil {
			return NewNull(), false, err
		}
		if !env.Define(s.Name, val) {
			return NewNull(), false, exec.failAt(s.Pos(), RedefinitionError, "name %s already defined in this scope", s.Name)
		}
		return val, false, nil
	case *AssignStmt:
		val, err := exec.evalExpression(s.Value, env)
		if err != nil {
			return NewNull(), false, err
		}
		if err := exec.assign(s.Target, val, env); err != nil {
			return NewNull(), false, err
		}
		return val, false, nil
	case *ExprStmt:
		val, err := exec.evalExpression(s.Expr, env)
		return val, false, err
	case *AssertStmt:
		return NewNull(), false, exec.evalAssertStatement(s, env)
	case *IfStmt:
		cond, err := exec.evalExpression(s.Condition, env)
		if err != nil {
			return NewNull(), false, err
		}
		if cond.Truthy() {
			return exec.evalStatements(s.Consequent, newEnv(env))
		}
		if len(s.Alternate) > 0 {
			return exec.evalStatements(s.Alternate, newEnv(env))
		}
		return NewNull(), false, nil
	case *WhileStmt:
		return exec.evalWhileStatement(s, env)
	case *ForStmt:
		return exec.evalForStatement(s, env)
	case *ReturnStmt:
		if s.Value == nil {
			return NewNull(), true, nil
		}
		val, err := exec.evalExpression(s.Value, env)
		if err != nil {
			return NewNull(), false, err
		}
		return val, true, nil
	case *PrintStmt:
		return NewNull(), false, exec.evalPrintStatement(s, env)
	default:
		return NewNull(), false, exec.failAt(stmt.Pos(), TypeMismatch, "unsupported statement")
	}
}
