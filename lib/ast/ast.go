package ast

import "github.com/alecthomas/participle/v2/lexer"

// Node is one tagged element of the syntax tree. Nodes are pure data:
// construction only tags and attaches already-built children, so malformed
// shapes (a declaration whose target is not a variable, say) are
// representable and get rejected at execution time instead.
type Node interface {
	Position() lexer.Position
}

// Expr nodes evaluate to an integer.
type Expr interface {
	Node
	exprNode()
}

// Stmt nodes execute for their side effects.
type Stmt interface {
	Node
	stmtNode()
}

// IntLit is an integer literal.
type IntLit struct {
	Pos   lexer.Position
	Value int
}

// VarRef refers to a variable by its scanner-assigned id.
type VarRef struct {
	Pos lexer.Position
	ID  int
}

// BinaryExpr applies an arithmetic or comparison operator to two operands.
type BinaryExpr struct {
	Pos         lexer.Position
	Op          Op
	Left, Right Expr
}

// Decl declares a variable and initializes it. Target must be a VarRef in a
// well-formed tree.
type Decl struct {
	Pos    lexer.Position
	Target Expr
	Value  Expr
}

// Assign stores a value into an already-declared variable.
type Assign struct {
	Pos    lexer.Position
	Target Expr
	Value  Expr
}

// Print evaluates its expression and emits the value.
type Print struct {
	Pos   lexer.Position
	Value Expr
}

// If selects exactly one branch at execution time. Else is nil when the
// source had no else clause.
type If struct {
	Pos  lexer.Position
	Cond Expr
	Then *StmtList
	Else *StmtList
}

// StmtList is a left-leaning chain of statements: Prev is nil for the first
// statement of a block, otherwise the previously built chain. Walking Prev
// first recovers source order.
type StmtList struct {
	Pos  lexer.Position
	Prev *StmtList
	Stmt Stmt
}

func (n *IntLit) Position() lexer.Position     { return n.Pos }
func (n *VarRef) Position() lexer.Position     { return n.Pos }
func (n *BinaryExpr) Position() lexer.Position { return n.Pos }
func (n *Decl) Position() lexer.Position       { return n.Pos }
func (n *Assign) Position() lexer.Position     { return n.Pos }
func (n *Print) Position() lexer.Position      { return n.Pos }
func (n *If) Position() lexer.Position         { return n.Pos }
func (n *StmtList) Position() lexer.Position   { return n.Pos }

func (*IntLit) exprNode()     {}
func (*VarRef) exprNode()     {}
func (*BinaryExpr) exprNode() {}

func (*Decl) stmtNode()     {}
func (*Assign) stmtNode()   {}
func (*Print) stmtNode()    {}
func (*If) stmtNode()       {}
func (*StmtList) stmtNode() {}

func NewIntLit(pos lexer.Position, value int) *IntLit {
	return &IntLit{Pos: pos, Value: value}
}

func NewVarRef(pos lexer.Position, id int) *VarRef {
	return &VarRef{Pos: pos, ID: id}
}

func NewBinaryExpr(pos lexer.Position, op Op, left, right Expr) *BinaryExpr {
	return &BinaryExpr{Pos: pos, Op: op, Left: left, Right: right}
}

func NewDecl(pos lexer.Position, target, value Expr) *Decl {
	return &Decl{Pos: pos, Target: target, Value: value}
}

func NewAssign(pos lexer.Position, target, value Expr) *Assign {
	return &Assign{Pos: pos, Target: target, Value: value}
}

func NewPrint(pos lexer.Position, value Expr) *Print {
	return &Print{Pos: pos, Value: value}
}

func NewIf(pos lexer.Position, cond Expr, then, els *StmtList) *If {
	return &If{Pos: pos, Cond: cond, Then: then, Else: els}
}

// Append extends a statement chain with one more statement. A nil list
// still wraps the statement into a one-element chain.
func Append(list *StmtList, stmt Stmt) *StmtList {
	return &StmtList{Pos: stmt.Position(), Prev: list, Stmt: stmt}
}
