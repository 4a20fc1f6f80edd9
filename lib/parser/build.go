package parser

import (
	"fmt"

	"github.com/espresso-lang/espresso/lib/ast"
)

// Builder lowers the parse tree into the executable syntax tree, one node
// per completed production. Lowering only assembles already-built children;
// it evaluates nothing and touches no store.
type Builder struct {
	symbols *ast.SymbolTable
}

func NewBuilder(symbols *ast.SymbolTable) *Builder {
	if symbols == nil {
		symbols = ast.NewSymbolTable()
	}
	return &Builder{symbols: symbols}
}

// Symbols returns the identifier interner the builder assigns ids from.
func (b *Builder) Symbols() *ast.SymbolTable {
	return b.symbols
}

// Program lowers the top-level statement list. An empty program yields nil.
func (b *Builder) Program(p *Program) (*ast.StmtList, error) {
	return b.statements(p.Statements)
}

func (b *Builder) statements(stmts []*Statement) (*ast.StmtList, error) {
	var list *ast.StmtList
	for _, s := range stmts {
		stmt, err := b.statement(s)
		if err != nil {
			return nil, err
		}
		list = ast.Append(list, stmt)
	}
	return list, nil
}

func (b *Builder) statement(s *Statement) (ast.Stmt, error) {
	switch {
	case s.Declaration != nil:
		value, err := b.expression(s.Declaration.Value)
		if err != nil {
			return nil, err
		}
		target := ast.NewVarRef(s.Declaration.Pos, b.symbols.Intern(s.Declaration.Name))
		return ast.NewDecl(s.Declaration.Pos, target, value), nil
	case s.Assignment != nil:
		value, err := b.expression(s.Assignment.Value)
		if err != nil {
			return nil, err
		}
		target := ast.NewVarRef(s.Assignment.Pos, b.symbols.Intern(s.Assignment.Name))
		return ast.NewAssign(s.Assignment.Pos, target, value), nil
	case s.Print != nil:
		value, err := b.expression(s.Print.Value)
		if err != nil {
			return nil, err
		}
		return ast.NewPrint(s.Print.Pos, value), nil
	case s.If != nil:
		return b.ifStatement(s.If)
	case s.Expression != nil:
		// A bare expression statement prints its value.
		value, err := b.expression(s.Expression.Value)
		if err != nil {
			return nil, err
		}
		return ast.NewPrint(s.Expression.Pos, value), nil
	}
	return nil, fmt.Errorf("unknown statement at %s", s.Pos)
}

func (b *Builder) ifStatement(i *If) (ast.Stmt, error) {
	cond, err := b.condition(i.Condition)
	if err != nil {
		return nil, err
	}
	then, err := b.statements(i.Then)
	if err != nil {
		return nil, err
	}
	var els *ast.StmtList
	if i.Else != nil {
		els, err = b.statements(i.Else.Body)
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIf(i.Pos, cond, then, els), nil
}

func (b *Builder) condition(c *Condition) (ast.Expr, error) {
	left, err := b.expression(c.Left)
	if err != nil {
		return nil, err
	}
	right, err := b.expression(c.Right)
	if err != nil {
		return nil, err
	}
	op, ok := ast.OpForSymbol(c.Op)
	if !ok {
		return nil, fmt.Errorf("unknown operator %q at %s", c.Op, c.Pos)
	}
	return ast.NewBinaryExpr(c.Pos, op, left, right), nil
}

func (b *Builder) expression(e *Expression) (ast.Expr, error) {
	node, err := b.term(e.Left)
	if err != nil {
		return nil, err
	}
	for _, tail := range e.Right {
		right, err := b.term(tail.Term)
		if err != nil {
			return nil, err
		}
		op, ok := ast.OpForSymbol(tail.Op)
		if !ok {
			return nil, fmt.Errorf("unknown operator %q at %s", tail.Op, tail.Term.Pos)
		}
		node = ast.NewBinaryExpr(tail.Term.Pos, op, node, right)
	}
	return node, nil
}

func (b *Builder) term(t *Term) (ast.Expr, error) {
	node, err := b.factor(t.Left)
	if err != nil {
		return nil, err
	}
	for _, tail := range t.Right {
		right, err := b.factor(tail.Factor)
		if err != nil {
			return nil, err
		}
		op, ok := ast.OpForSymbol(tail.Op)
		if !ok {
			return nil, fmt.Errorf("unknown operator %q at %s", tail.Op, tail.Factor.Pos)
		}
		node = ast.NewBinaryExpr(tail.Factor.Pos, op, node, right)
	}
	return node, nil
}

func (b *Builder) factor(f *Factor) (ast.Expr, error) {
	switch {
	case f.Value != nil:
		return ast.NewIntLit(f.Pos, *f.Value), nil
	case f.Sub != nil:
		return b.expression(f.Sub)
	case f.Variable != nil:
		return ast.NewVarRef(f.Pos, b.symbols.Intern(*f.Variable)), nil
	}
	return nil, fmt.Errorf("empty factor at %s", f.Pos)
}
