package interpreter

import (
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/espresso-lang/espresso/lib/ast"
)

// Interpreter executes a fully built syntax tree against a variable store.
// Runtime events, diagnostic trees and faults go to three separate sinks,
// each written strictly in the order operations occur. Faults are reported
// and locally recovered: the offending statement's remaining work is
// abandoned and execution continues with the next statement.
type Interpreter struct {
	store *Store
	out   io.Writer
	tree  *TreePrinter
	errs  io.Writer
}

// New wires an interpreter to its store and sinks. Nil writers discard.
func New(store *Store, out, tree, errs io.Writer) *Interpreter {
	if store == nil {
		store = NewStore()
	}
	if out == nil {
		out = io.Discard
	}
	if errs == nil {
		errs = io.Discard
	}
	return &Interpreter{
		store: store,
		out:   out,
		tree:  NewTreePrinter(tree),
		errs:  errs,
	}
}

// Run executes the statement chain oldest-first. It never fails part-way
// through: every fault is reported on the error sink and recovered.
func (in *Interpreter) Run(program *ast.StmtList) {
	in.execList(program)
}

func (in *Interpreter) execList(list *ast.StmtList) {
	if list == nil {
		return
	}
	in.execList(list.Prev)
	in.execStmt(list.Stmt)
}

func (in *Interpreter) execStmt(s ast.Stmt) {
	if s == nil {
		return
	}

	// A chain reaching here executes element-wise; each element draws its
	// own diagram.
	if list, ok := s.(*ast.StmtList); ok {
		in.execList(list)
		return
	}

	in.tree.PrintStmt(s)

	switch s := s.(type) {
	case *ast.Decl:
		in.storeValue(s, s.Target, s.Value, EventDeclared, "Declaration")
	case *ast.Assign:
		in.storeValue(s, s.Target, s.Value, EventAssigned, "Assignment")
	case *ast.Print:
		val := in.evalExpr(s.Value)
		in.emit(Event{Kind: EventPrint, Value: val})
	case *ast.If:
		if in.evalExpr(s.Cond) != 0 {
			in.execList(s.Then)
		} else if s.Else != nil {
			in.execList(s.Else)
		}
	default:
		in.faultf(s.Position(), "Unknown statement kind")
	}
}

// storeValue is the shared execution path of declarations and assignments:
// the target must be a variable reference, checked before the value is
// evaluated so a malformed statement has no side effects at all.
func (in *Interpreter) storeValue(s ast.Stmt, target, value ast.Expr, kind EventKind, what string) {
	ref, ok := target.(*ast.VarRef)
	if !ok {
		in.faultf(s.Position(), "%s left side is not a variable", what)
		return
	}
	val := in.evalExpr(value)
	if !in.store.Set(ref.ID, val) {
		in.faultf(ref.Pos, "Variable id %d out of range", ref.ID)
		return
	}
	in.emit(Event{Kind: kind, ID: ref.ID, Value: val})
}

func (in *Interpreter) emit(e Event) {
	fmt.Fprintln(in.out, e)
}

func (in *Interpreter) faultf(pos lexer.Position, format string, args ...interface{}) {
	fmt.Fprintf(in.errs, "Error: %s at line %d\n", fmt.Sprintf(format, args...), pos.Line)
}
