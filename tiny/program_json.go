package tiny

import (
	"encoding/json"
	"fmt"
	"io"
)

// DecodeProgram reads a program in the parser's JSON interchange form: a
// top-level object with an optional "source" string and a "classes" list,
// where every statement and expression node is discriminated by its "type"
// field and carries "line"/"col" positions. Malformed input yields an error
// naming the offending node, never a partial program.
func DecodeProgram(r io.Reader) (*Program, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("tiny: decode program: %w", err)
	}

	program := &Program{}
	if src, ok := raw["source"].(string); ok {
		program.Source = src
	}

	classesRaw, ok := raw["classes"].([]any)
	if !ok {
		return nil, fmt.Errorf("tiny: program missing classes list")
	}
	program.Classes = make([]*ClassDecl, 0, len(classesRaw))
	for _, entry := range classesRaw {
		node, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("tiny: invalid class entry %T", entry)
		}
		decl, err := decodeClass(node)
		if err != nil {
			return nil, fmt.Errorf("tiny: %w", err)
		}
		program.Classes = append(program.Classes, decl)
	}
	return program, nil
}

// LoadJSON decodes a program from its JSON interchange form and loads it.
func (e *Engine) LoadJSON(r io.Reader) (*Script, error) {
	program, err := DecodeProgram(r)
	if err != nil {
		return nil, err
	}
	return e.Load(program)
}

func decodeClass(node map[string]any) (*ClassDecl, error) {
	name, ok := node["name"].(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("class missing name")
	}
	decl := &ClassDecl{Name: name, position: decodePos(node)}

	methodsRaw, _ := node["methods"].([]any)
	decl.Methods = make([]*FunctionDecl, 0, len(methodsRaw))
	for _, entry := range methodsRaw {
		m, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("class %s: invalid method entry %T", name, entry)
		}
		fn, err := decodeMethod(m)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", name, err)
		}
		decl.Methods = append(decl.Methods, fn)
	}
	return decl, nil
}

func decodeMethod(node map[string]any) (*FunctionDecl, error) {
	name, ok := node["name"].(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("method missing name")
	}

	var params []string
	if paramsRaw, ok := node["params"].([]any); ok {
		params = make([]string, 0, len(paramsRaw))
		for _, entry := range paramsRaw {
			param, ok := entry.(string)
			if !ok {
				return nil, fmt.Errorf("method %s: invalid parameter %T", name, entry)
			}
			params = append(params, param)
		}
	}

	body, err := decodeStatements(node["body"])
	if err != nil {
		return nil, fmt.Errorf("method %s: %w", name, err)
	}
	return &FunctionDecl{Name: name, Params: params, Body: body, position: decodePos(node)}, nil
}

func decodeStatements(raw any) ([]Statement, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("invalid statement list %T", raw)
	}
	stmts := make([]Statement, 0, len(list))
	for _, entry := range list {
		node, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid statement node %T", entry)
		}
		stmt, err := decodeStatement(node)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func decodeStatement(node map[string]any) (Statement, error) {
	typ, _ := node["type"].(string)
	pos := decodePos(node)
	switch typ {
	case "VarStatement":
		name, ok := node["name"].(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("var statement missing name")
		}
		value, err := decodeChildExpression(node, "value")
		if err != nil {
			return nil, err
		}
		return &VarStmt{Name: name, Value: value, position: pos}, nil
	case "AssignStatement":
		target, err := decodeChildExpression(node, "target")
		if err != nil {
			return nil, err
		}
		value, err := decodeChildExpression(node, "value")
		if err != nil {
			return nil, err
		}
		return &AssignStmt{Target: target, Value: value, position: pos}, nil
	case "ExpressionStatement":
		expr, err := decodeChildExpression(node, "expression")
		if err != nil {
			return nil, err
		}
		return &ExprStmt{Expr: expr, position: pos}, nil
	case "AssertStatement":
		cond, err := decodeChildExpression(node, "condition")
		if err != nil {
			return nil, err
		}
		source, _ := node["source"].(string)
		return &AssertStmt{Cond: cond, Source: source, position: pos}, nil
	case "IfStatement":
		cond, err := decodeChildExpression(node, "condition")
		if err != nil {
			return nil, err
		}
		consequent, err := decodeStatements(node["consequent"])
		if err != nil {
			return nil, err
		}
		alternate, err := decodeStatements(node["alternate"])
		if err != nil {
			return nil, err
		}
		return &IfStmt{Condition: cond, Consequent: consequent, Alternate: alternate, position: pos}, nil
	case "WhileStatement":
		cond, err := decodeChildExpression(node, "condition")
		if err != nil {
			return nil, err
		}
		body, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return &WhileStmt{Condition: cond, Body: body, position: pos}, nil
	case "ForStatement":
		name, ok := node["name"].(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("for statement missing loop variable")
		}
		from, err := decodeChildExpression(node, "from")
		if err != nil {
			return nil, err
		}
		to, err := decodeChildExpression(node, "to")
		if err != nil {
			return nil, err
		}
		body, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return &ForStmt{Name: name, From: from, To: to, Body: body, position: pos}, nil
	case "ReturnStatement":
		stmt := &ReturnStmt{position: pos}
		if _, ok := node["value"]; ok {
			value, err := decodeChildExpression(node, "value")
			if err != nil {
				return nil, err
			}
			stmt.Value = value
		}
		return stmt, nil
	case "PrintStatement":
		value, err := decodeChildExpression(node, "value")
		if err != nil {
			return nil, err
		}
		return &PrintStmt{Value: value, position: pos}, nil
	default:
		return nil, fmt.Errorf("unknown statement type %q", typ)
	}
}

func decodeExpression(node map[string]any) (Expression, error) {
	typ, _ := node["type"].(string)
	pos := decodePos(node)
	switch typ {
	case "Identifier":
		name, ok := node["name"].(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("identifier missing name")
		}
		return &Identifier{Name: name, position: pos}, nil
	case "IntegerLiteral":
		num, ok := node["value"].(json.Number)
		if !ok {
			return nil, fmt.Errorf("integer literal missing value")
		}
		i, err := num.Int64()
		if err != nil {
			return nil, fmt.Errorf("invalid integer literal %q", num.String())
		}
		return &IntegerLiteral{Value: i, position: pos}, nil
	case "FloatLiteral":
		num, ok := node["value"].(json.Number)
		if !ok {
			return nil, fmt.Errorf("float literal missing value")
		}
		f, err := num.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid float literal %q", num.String())
		}
		return &FloatLiteral{Value: f, position: pos}, nil
	case "StringLiteral":
		value, ok := node["value"].(string)
		if !ok {
			return nil, fmt.Errorf("string literal missing value")
		}
		return &StringLiteral{Value: value, position: pos}, nil
	case "BooleanLiteral":
		value, ok := node["value"].(bool)
		if !ok {
			return nil, fmt.Errorf("boolean literal missing value")
		}
		return &BoolLiteral{Value: value, position: pos}, nil
	case "NullLiteral":
		return &NullLiteral{position: pos}, nil
	case "ListLiteral":
		itemsRaw, _ := node["items"].([]any)
		elements := make([]Expression, 0, len(itemsRaw))
		for _, entry := range itemsRaw {
			child, ok := entry.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("invalid list element %T", entry)
			}
			expr, err := decodeExpression(child)
			if err != nil {
				return nil, err
			}
			elements = append(elements, expr)
		}
		return &ListLiteral{Elements: elements, position: pos}, nil
	case "DictLiteral":
		entriesRaw, _ := node["entries"].([]any)
		entries := make([]DictEntry, 0, len(entriesRaw))
		for _, entry := range entriesRaw {
			child, ok := entry.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("invalid dict entry %T", entry)
			}
			key, ok := child["key"].(string)
			if !ok {
				return nil, fmt.Errorf("dict entry missing key")
			}
			value, err := decodeChildExpression(child, "value")
			if err != nil {
				return nil, err
			}
			entries = append(entries, DictEntry{Key: key, Value: value})
		}
		return &DictLiteral{Entries: entries, position: pos}, nil
	case "MemberExpression":
		object, err := decodeChildExpression(node, "object")
		if err != nil {
			return nil, err
		}
		name, ok := node["name"].(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("member expression missing name")
		}
		return &MemberExpr{Object: object, Name: name, position: pos}, nil
	case "IndexExpression":
		object, err := decodeChildExpression(node, "object")
		if err != nil {
			return nil, err
		}
		index, err := decodeChildExpression(node, "index")
		if err != nil {
			return nil, err
		}
		return &IndexExpr{Object: object, Index: index, position: pos}, nil
	case "CallExpression":
		callee, err := decodeChildExpression(node, "callee")
		if err != nil {
			return nil, err
		}
		args, err := decodeExpressionList(node["args"])
		if err != nil {
			return nil, err
		}
		return &CallExpr{Callee: callee, Args: args, position: pos}, nil
	case "NewExpression":
		class, ok := node["class"].(string)
		if !ok || class == "" {
			return nil, fmt.Errorf("new expression missing class")
		}
		args, err := decodeExpressionList(node["args"])
		if err != nil {
			return nil, err
		}
		return &NewExpr{Class: class, Args: args, position: pos}, nil
	case "UnaryExpression":
		op, err := decodeOperator(node["op"])
		if err != nil {
			return nil, err
		}
		right, err := decodeChildExpression(node, "right")
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Operator: op, Right: right, position: pos}, nil
	case "BinaryExpression":
		op, err := decodeOperator(node["op"])
		if err != nil {
			return nil, err
		}
		left, err := decodeChildExpression(node, "left")
		if err != nil {
			return nil, err
		}
		right, err := decodeChildExpression(node, "right")
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Left: left, Operator: op, Right: right, position: pos}, nil
	default:
		return nil, fmt.Errorf("unknown expression type %q", typ)
	}
}

func decodeChildExpression(node map[string]any, field string) (Expression, error) {
	child, ok := node[field].(map[string]any)
	if !ok {
		typ, _ := node["type"].(string)
		return nil, fmt.Errorf("%s node missing %s", typ, field)
	}
	return decodeExpression(child)
}

func decodeExpressionList(raw any) ([]Expression, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("invalid expression list %T", raw)
	}
	exprs := make([]Expression, 0, len(list))
	for _, entry := range list {
		node, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid expression node %T", entry)
		}
		expr, err := decodeExpression(node)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func decodeOperator(raw any) (Operator, error) {
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("missing operator")
	}
	switch op := Operator(s); op {
	case OpAdd, OpSub, OpMul, OpDiv, OpPow,
		OpEQ, OpNotEQ, OpLT, OpLTE, OpGT, OpGTE,
		OpAnd, OpOr, OpNot:
		return op, nil
	default:
		return "", fmt.Errorf("unknown operator %q", s)
	}
}

func decodePos(node map[string]any) Position {
	return Position{Line: decodeInt(node["line"]), Column: decodeInt(node["col"])}
}

func decodeInt(raw any) int {
	switch v := raw.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
	case float64:
		return int(v)
	}
	return 0
}
