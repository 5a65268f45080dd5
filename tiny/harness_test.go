package tiny

import (
	"context"
	"errors"
	"io"
	"testing"
)

// Builders keep test programs readable: the runtime consumes parsed trees,
// so tests construct them directly instead of going through the JSON form.

func prog(classes ...*ClassDecl) *Program { return &Program{Classes: classes} }

func class(name string, methods ...*FunctionDecl) *ClassDecl {
	return &ClassDecl{Name: name, Methods: methods}
}

func method(name string, params []string, body ...Statement) *FunctionDecl {
	return &FunctionDecl{Name: name, Params: params, Body: body}
}

func varS(name string, value Expression) *VarStmt { return &VarStmt{Name: name, Value: value} }

func assignS(target, value Expression) *AssignStmt {
	return &AssignStmt{Target: target, Value: value}
}

func exprS(e Expression) *ExprStmt { return &ExprStmt{Expr: e} }

func assertS(cond Expression, source string) *AssertStmt {
	return &AssertStmt{Cond: cond, Source: source}
}

func ifS(cond Expression, then, alt []Statement) *IfStmt {
	return &IfStmt{Condition: cond, Consequent: then, Alternate: alt}
}

func whileS(cond Expression, body ...Statement) *WhileStmt {
	return &WhileStmt{Condition: cond, Body: body}
}

func forS(name string, from, to Expression, body ...Statement) *ForStmt {
	return &ForStmt{Name: name, From: from, To: to, Body: body}
}

func retS(value Expression) *ReturnStmt { return &ReturnStmt{Value: value} }

func printS(value Expression) *PrintStmt { return &PrintStmt{Value: value} }

func id(name string) *Identifier { return &Identifier{Name: name} }

func intL(v int64) *IntegerLiteral { return &IntegerLiteral{Value: v} }

func floatL(v float64) *FloatLiteral { return &FloatLiteral{Value: v} }

func strL(s string) *StringLiteral { return &StringLiteral{Value: s} }

func boolL(b bool) *BoolLiteral { return &BoolLiteral{Value: b} }

func nullL() *NullLiteral { return &NullLiteral{} }

func listL(elements ...Expression) *ListLiteral { return &ListLiteral{Elements: elements} }

func entry(key string, value Expression) DictEntry { return DictEntry{Key: key, Value: value} }

func dictL(entries ...DictEntry) *DictLiteral { return &DictLiteral{Entries: entries} }

func member(obj Expression, name string) *MemberExpr {
	return &MemberExpr{Object: obj, Name: name}
}

func index(obj, idx Expression) *IndexExpr { return &IndexExpr{Object: obj, Index: idx} }

func callE(callee Expression, args ...Expression) *CallExpr {
	return &CallExpr{Callee: callee, Args: args}
}

func newE(class string, args ...Expression) *NewExpr { return &NewExpr{Class: class, Args: args} }

func unary(op Operator, right Expression) *UnaryExpr {
	return &UnaryExpr{Operator: op, Right: right}
}

func binary(op Operator, left, right Expression) *BinaryExpr {
	return &BinaryExpr{Left: left, Operator: op, Right: right}
}

func mustLoad(t *testing.T, engine *Engine, program *Program) *Script {
	t.Helper()
	script, err := engine.Load(program)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return script
}

func runMain(t *testing.T, program *Program) error {
	t.Helper()
	engine := MustNewEngine(Config{Output: io.Discard})
	script := mustLoad(t, engine, program)
	return script.Run(context.Background())
}

func callMethod(t *testing.T, program *Program, className, methodName string, args ...Value) (Value, error) {
	t.Helper()
	engine := MustNewEngine(Config{Output: io.Discard})
	script := mustLoad(t, engine, program)
	return script.Call(context.Background(), className, methodName, args)
}

// wantKind asserts err is a RuntimeError of the given kind and returns it
// for further message checks.
func wantKind(t *testing.T, err error, kind ErrorKind) *RuntimeError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	var re *RuntimeError
	if !errors.As(err, &re) {
		t.Fatalf("expected RuntimeError, got %T: %v", err, err)
	}
	if re.Kind != kind {
		t.Fatalf("expected kind %s, got %s: %v", kind, re.Kind, err)
	}
	return re
}

func wantInt(t *testing.T, v Value, want int64) {
	t.Helper()
	if v.Kind() != KindInt || v.Int() != want {
		t.Fatalf("expected int %d, got %s %s", want, v.Kind(), v.String())
	}
}
