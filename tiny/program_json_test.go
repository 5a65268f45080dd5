package tiny

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func decodeString(t *testing.T, doc string) *Program {
	t.Helper()
	program, err := DecodeProgram(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return program
}

func TestDecodeProgramBasics(t *testing.T) {
	doc := `{
		"source": "class Test:\n  main():\n    var x = 1",
		"classes": [
			{
				"name": "Test", "line": 1, "col": 1,
				"methods": [
					{
						"name": "main", "params": ["a", "b"], "line": 2, "col": 3,
						"body": [
							{
								"type": "VarStatement", "name": "x", "line": 3, "col": 5,
								"value": {"type": "IntegerLiteral", "value": 1, "line": 3, "col": 13}
							}
						]
					}
				]
			}
		]
	}`

	program := decodeString(t, doc)
	if program.Source == "" || !strings.Contains(program.Source, "var x = 1") {
		t.Fatalf("source = %q", program.Source)
	}
	if len(program.Classes) != 1 {
		t.Fatalf("classes = %d", len(program.Classes))
	}

	decl := program.Classes[0]
	if decl.Name != "Test" || decl.Pos() != (Position{Line: 1, Column: 1}) {
		t.Fatalf("class = %s at %v", decl.Name, decl.Pos())
	}
	if len(decl.Methods) != 1 {
		t.Fatalf("methods = %d", len(decl.Methods))
	}

	m := decl.Methods[0]
	if m.Name != "main" || len(m.Params) != 2 || m.Params[1] != "b" {
		t.Fatalf("method = %s params %v", m.Name, m.Params)
	}
	if len(m.Body) != 1 {
		t.Fatalf("body = %d statements", len(m.Body))
	}

	stmt, ok := m.Body[0].(*VarStmt)
	if !ok {
		t.Fatalf("statement = %T", m.Body[0])
	}
	if stmt.Name != "x" || stmt.Pos() != (Position{Line: 3, Column: 5}) {
		t.Fatalf("var = %s at %v", stmt.Name, stmt.Pos())
	}
	lit, ok := stmt.Value.(*IntegerLiteral)
	if !ok || lit.Value != 1 {
		t.Fatalf("value = %T %v", stmt.Value, stmt.Value)
	}
}

func TestDecodeStatementForms(t *testing.T) {
	doc := `{
		"classes": [{"name": "Test", "methods": [{"name": "main", "body": [
			{"type": "VarStatement", "name": "x", "value": {"type": "IntegerLiteral", "value": 1}},
			{"type": "AssignStatement", "target": {"type": "Identifier", "name": "x"}, "value": {"type": "IntegerLiteral", "value": 2}},
			{"type": "ExpressionStatement", "expression": {"type": "Identifier", "name": "x"}},
			{"type": "AssertStatement", "condition": {"type": "BooleanLiteral", "value": true}, "source": "true"},
			{"type": "IfStatement", "condition": {"type": "BooleanLiteral", "value": true}, "consequent": [], "alternate": []},
			{"type": "WhileStatement", "condition": {"type": "BooleanLiteral", "value": false}, "body": []},
			{"type": "ForStatement", "name": "i", "from": {"type": "IntegerLiteral", "value": 0}, "to": {"type": "IntegerLiteral", "value": 3}, "body": []},
			{"type": "PrintStatement", "value": {"type": "StringLiteral", "value": "hi"}},
			{"type": "ReturnStatement"},
			{"type": "ReturnStatement", "value": {"type": "NullLiteral"}}
		]}]}]
	}`

	program := decodeString(t, doc)
	body := program.Classes[0].Methods[0].Body
	if len(body) != 10 {
		t.Fatalf("decoded %d statements", len(body))
	}

	wantTypes := []string{
		"*tiny.VarStmt", "*tiny.AssignStmt", "*tiny.ExprStmt", "*tiny.AssertStmt",
		"*tiny.IfStmt", "*tiny.WhileStmt", "*tiny.ForStmt", "*tiny.PrintStmt",
		"*tiny.ReturnStmt", "*tiny.ReturnStmt",
	}
	for i, stmt := range body {
		if gotType := typeName(stmt); gotType != wantTypes[i] {
			t.Fatalf("statement %d = %s, want %s", i, gotType, wantTypes[i])
		}
	}

	if assertStmt := body[3].(*AssertStmt); assertStmt.Source != "true" {
		t.Fatalf("assert source = %q", assertStmt.Source)
	}
	if bare := body[8].(*ReturnStmt); bare.Value != nil {
		t.Fatalf("bare return must decode with nil value")
	}
	if ret := body[9].(*ReturnStmt); ret.Value == nil {
		t.Fatalf("valued return must decode its expression")
	}
}

func TestDecodeExpressionForms(t *testing.T) {
	doc := `{
		"classes": [{"name": "Test", "methods": [{"name": "main", "body": [
			{"type": "ExpressionStatement", "expression": {"type": "Identifier", "name": "x"}},
			{"type": "ExpressionStatement", "expression": {"type": "IntegerLiteral", "value": 7}},
			{"type": "ExpressionStatement", "expression": {"type": "FloatLiteral", "value": 2.5}},
			{"type": "ExpressionStatement", "expression": {"type": "StringLiteral", "value": "s"}},
			{"type": "ExpressionStatement", "expression": {"type": "BooleanLiteral", "value": false}},
			{"type": "ExpressionStatement", "expression": {"type": "NullLiteral"}},
			{"type": "ExpressionStatement", "expression": {"type": "ListLiteral", "items": [{"type": "IntegerLiteral", "value": 1}]}},
			{"type": "ExpressionStatement", "expression": {"type": "DictLiteral", "entries": [{"key": "k", "value": {"type": "IntegerLiteral", "value": 1}}]}},
			{"type": "ExpressionStatement", "expression": {"type": "MemberExpression", "object": {"type": "Identifier", "name": "d"}, "name": "k"}},
			{"type": "ExpressionStatement", "expression": {"type": "IndexExpression", "object": {"type": "Identifier", "name": "xs"}, "index": {"type": "IntegerLiteral", "value": 0}}},
			{"type": "ExpressionStatement", "expression": {"type": "CallExpression", "callee": {"type": "Identifier", "name": "f"}, "args": [{"type": "IntegerLiteral", "value": 1}]}},
			{"type": "ExpressionStatement", "expression": {"type": "NewExpression", "class": "Box", "args": []}},
			{"type": "ExpressionStatement", "expression": {"type": "UnaryExpression", "op": "-", "right": {"type": "IntegerLiteral", "value": 1}}},
			{"type": "ExpressionStatement", "expression": {"type": "BinaryExpression", "op": "+", "left": {"type": "IntegerLiteral", "value": 1}, "right": {"type": "IntegerLiteral", "value": 2}}}
		]}]}]
	}`

	program := decodeString(t, doc)
	body := program.Classes[0].Methods[0].Body

	wantTypes := []string{
		"*tiny.Identifier", "*tiny.IntegerLiteral", "*tiny.FloatLiteral", "*tiny.StringLiteral",
		"*tiny.BoolLiteral", "*tiny.NullLiteral", "*tiny.ListLiteral", "*tiny.DictLiteral",
		"*tiny.MemberExpr", "*tiny.IndexExpr", "*tiny.CallExpr", "*tiny.NewExpr",
		"*tiny.UnaryExpr", "*tiny.BinaryExpr",
	}
	if len(body) != len(wantTypes) {
		t.Fatalf("decoded %d statements, want %d", len(body), len(wantTypes))
	}
	for i, stmt := range body {
		expr := stmt.(*ExprStmt).Expr
		if gotType := typeName(expr); gotType != wantTypes[i] {
			t.Fatalf("expression %d = %s, want %s", i, gotType, wantTypes[i])
		}
	}

	bin := body[13].(*ExprStmt).Expr.(*BinaryExpr)
	if bin.Operator != OpAdd {
		t.Fatalf("operator = %q", bin.Operator)
	}
	dict := body[7].(*ExprStmt).Expr.(*DictLiteral)
	if len(dict.Entries) != 1 || dict.Entries[0].Key != "k" {
		t.Fatalf("dict entries = %v", dict.Entries)
	}
}

func typeName(v any) string { return fmt.Sprintf("%T", v) }

func TestDecodePreservesLargeIntegers(t *testing.T) {
	// Above 2^53: a float64 round trip would corrupt it.
	doc := `{
		"classes": [{"name": "Test", "methods": [{"name": "main", "body": [
			{"type": "ExpressionStatement", "expression": {"type": "IntegerLiteral", "value": 9007199254740993}}
		]}]}]
	}`

	program := decodeString(t, doc)
	lit := program.Classes[0].Methods[0].Body[0].(*ExprStmt).Expr.(*IntegerLiteral)
	if lit.Value != 9007199254740993 {
		t.Fatalf("value = %d", lit.Value)
	}
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	_, err := DecodeProgram(strings.NewReader("{not json"))
	if err == nil || !strings.Contains(err.Error(), "decode program") {
		t.Fatalf("err = %v", err)
	}
}

func TestDecodeRejectsMissingClasses(t *testing.T) {
	_, err := DecodeProgram(strings.NewReader("{}"))
	if err == nil || !strings.Contains(err.Error(), "program missing classes list") {
		t.Fatalf("err = %v", err)
	}
}

func TestDecodeRejectsUnknownStatementType(t *testing.T) {
	doc := `{"classes": [{"name": "Test", "methods": [{"name": "main", "body": [
		{"type": "GotoStatement"}
	]}]}]}`

	_, err := DecodeProgram(strings.NewReader(doc))
	if err == nil || !strings.Contains(err.Error(), `unknown statement type "GotoStatement"`) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(err.Error(), "class Test") || !strings.Contains(err.Error(), "method main") {
		t.Fatalf("error should name the enclosing class and method: %v", err)
	}
}

func TestDecodeRejectsUnknownExpressionType(t *testing.T) {
	doc := `{"classes": [{"name": "Test", "methods": [{"name": "main", "body": [
		{"type": "ExpressionStatement", "expression": {"type": "TernaryExpression"}}
	]}]}]}`

	_, err := DecodeProgram(strings.NewReader(doc))
	if err == nil || !strings.Contains(err.Error(), `unknown expression type "TernaryExpression"`) {
		t.Fatalf("err = %v", err)
	}
}

func TestDecodeRejectsUnknownOperator(t *testing.T) {
	doc := `{"classes": [{"name": "Test", "methods": [{"name": "main", "body": [
		{"type": "ExpressionStatement", "expression": {
			"type": "BinaryExpression", "op": "%",
			"left": {"type": "IntegerLiteral", "value": 1},
			"right": {"type": "IntegerLiteral", "value": 2}
		}}
	]}]}]}`

	_, err := DecodeProgram(strings.NewReader(doc))
	if err == nil || !strings.Contains(err.Error(), `unknown operator "%"`) {
		t.Fatalf("err = %v", err)
	}
}

func TestDecodeRejectsMissingChildNode(t *testing.T) {
	doc := `{"classes": [{"name": "Test", "methods": [{"name": "main", "body": [
		{"type": "ExpressionStatement", "expression": {
			"type": "BinaryExpression", "op": "+",
			"right": {"type": "IntegerLiteral", "value": 2}
		}}
	]}]}]}`

	_, err := DecodeProgram(strings.NewReader(doc))
	if err == nil || !strings.Contains(err.Error(), "BinaryExpression node missing left") {
		t.Fatalf("err = %v", err)
	}
}

func TestDecodeRejectsFractionalIntegerLiteral(t *testing.T) {
	doc := `{"classes": [{"name": "Test", "methods": [{"name": "main", "body": [
		{"type": "ExpressionStatement", "expression": {"type": "IntegerLiteral", "value": 1.5}}
	]}]}]}`

	_, err := DecodeProgram(strings.NewReader(doc))
	if err == nil || !strings.Contains(err.Error(), `invalid integer literal "1.5"`) {
		t.Fatalf("err = %v", err)
	}
}

func TestDecodeRejectsClassWithoutName(t *testing.T) {
	doc := `{"classes": [{"methods": []}]}`
	_, err := DecodeProgram(strings.NewReader(doc))
	if err == nil || !strings.Contains(err.Error(), "class missing name") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadJSONRunsDecodedProgram(t *testing.T) {
	doc := `{
		"classes": [{"name": "Test", "methods": [{"name": "main", "params": [], "body": [
			{"type": "VarStatement", "name": "x", "value": {"type": "IntegerLiteral", "value": 21}},
			{"type": "ReturnStatement", "value": {
				"type": "BinaryExpression", "op": "*",
				"left": {"type": "Identifier", "name": "x"},
				"right": {"type": "IntegerLiteral", "value": 2}
			}}
		]}]}]
	}`

	engine := MustNewEngine(Config{})
	script, err := engine.LoadJSON(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	got, err := script.Call(context.Background(), "Test", "main", nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	wantInt(t, got, 42)
}
