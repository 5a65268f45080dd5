package tiny

type Node interface {
	Pos() Position
}

type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	exprNode()
}

// Position identifies a line and column in the original source file.
type Position struct {
	Line   int
	Column int
}

// Program is the parsed form handed to the runtime: an ordered sequence of
// class declarations. Source optionally carries the original script text so
// failures can render caret code frames.
type Program struct {
	Source  string
	Classes []*ClassDecl
}

type ClassDecl struct {
	Name     string
	Methods  []*FunctionDecl
	position Position
}

func (d *ClassDecl) Pos() Position { return d.position }

type FunctionDecl struct {
	Name     string
	Params   []string
	Body     []Statement
	position Position
}

func (d *FunctionDecl) Pos() Position { return d.position }

// Operator names the binary and unary operators the evaluator understands.
type Operator string

const (
	OpAdd   Operator = "+"
	OpSub   Operator = "-"
	OpMul   Operator = "*"
	OpDiv   Operator = "/"
	OpPow   Operator = "^"
	OpEQ    Operator = "=="
	OpNotEQ Operator = "!="
	OpLT    Operator = "<"
	OpLTE   Operator = "<="
	OpGT    Operator = ">"
	OpGTE   Operator = ">="
	OpAnd   Operator = "and"
	OpOr    Operator = "or"
	OpNot   Operator = "!"
)

type Identifier struct {
	Name     string
	position Position
}

func (e *Identifier) exprNode()     {}
func (e *Identifier) Pos() Position { return e.position }

type IntegerLiteral struct {
	Value    int64
	position Position
}

func (e *IntegerLiteral) exprNode()     {}
func (e *IntegerLiteral) Pos() Position { return e.position }

type FloatLiteral struct {
	Value    float64
	position Position
}

func (e *FloatLiteral) exprNode()     {}
func (e *FloatLiteral) Pos() Position { return e.position }

type StringLiteral struct {
	Value    string
	position Position
}

func (e *StringLiteral) exprNode()     {}
func (e *StringLiteral) Pos() Position { return e.position }

type BoolLiteral struct {
	Value    bool
	position Position
}

func (e *BoolLiteral) exprNode()     {}
func (e *BoolLiteral) Pos() Position { return e.position }

type NullLiteral struct {
	position Position
}

func (e *NullLiteral) exprNode()     {}
func (e *NullLiteral) Pos() Position { return e.position }

type ListLiteral struct {
	Elements []Expression
	position Position
}

func (e *ListLiteral) exprNode()     {}
func (e *ListLiteral) Pos() Position { return e.position }

// DictEntry is one key/value pair of a dict literal. Keys are string
// literals in the grammar; dynamic keys go through index assignment.
type DictEntry struct {
	Key   string
	Value Expression
}

type DictLiteral struct {
	Entries  []DictEntry
	position Position
}

func (e *DictLiteral) exprNode()     {}
func (e *DictLiteral) Pos() Position { return e.position }

type MemberExpr struct {
	Object   Expression
	Name     string
	position Position
}

func (e *MemberExpr) exprNode()     {}
func (e *MemberExpr) Pos() Position { return e.position }

type IndexExpr struct {
	Object   Expression
	Index    Expression
	position Position
}

func (e *IndexExpr) exprNode()     {}
func (e *IndexExpr) Pos() Position { return e.position }

type CallExpr struct {
	Callee   Expression
	Args     []Expression
	position Position
}

func (e *CallExpr) exprNode()     {}
func (e *CallExpr) Pos() Position { return e.position }

type NewExpr struct {
	Class    string
	Args     []Expression
	position Position
}

func (e *NewExpr) exprNode()     {}
func (e *NewExpr) Pos() Position { return e.position }

type UnaryExpr struct {
	Operator Operator
	Right    Expression
	position Position
}

func (e *UnaryExpr) exprNode()     {}
func (e *UnaryExpr) Pos() Position { return e.position }

type BinaryExpr struct {
	Left     Expression
	Operator Operator
	Right    Expression
	position Position
}

func (e *BinaryExpr) exprNode()     {}
func (e *BinaryExpr) Pos() Position { return e.position }
