package interpreter

import (
	"fmt"
	"io"
	"strings"

	"github.com/espresso-lang/espresso/lib/ast"
)

const indentStep = 5

var separator = strings.Repeat("-", 50)

// TreePrinter renders statement subtrees as rotated vertical diagrams: the
// right subtree prints above the node's own label and the left subtree
// below it, each level indented five spaces further, so the tree reads
// top-to-bottom. Diagnostic only; it never influences evaluation.
type TreePrinter struct {
	w io.Writer
}

func NewTreePrinter(w io.Writer) *TreePrinter {
	if w == nil {
		w = io.Discard
	}
	return &TreePrinter{w: w}
}

// PrintStmt draws one statement's subtree followed by a separator line and
// a blank line. A statement chain is not drawn as a node of its own; each
// chained statement gets its own diagram.
func (p *TreePrinter) PrintStmt(s ast.Stmt) {
	if s == nil {
		return
	}
	if list, ok := s.(*ast.StmtList); ok {
		p.printList(list)
		return
	}
	p.render(viewOf(s), 0)
	fmt.Fprintf(p.w, "\n%s\n\n", separator)
}

func (p *TreePrinter) printList(list *ast.StmtList) {
	if list == nil {
		return
	}
	p.printList(list.Prev)
	p.PrintStmt(list.Stmt)
}

// treeView is the printable projection of a node: a label plus up to two
// children. An if statement projects a synthesized "branches" child so the
// then and else arms show up under one point in the diagram.
type treeView struct {
	label       string
	left, right *treeView
}

func viewOf(n ast.Node) *treeView {
	switch n := n.(type) {
	case nil:
		return nil
	case *ast.IntLit:
		return &treeView{label: fmt.Sprintf("INTEGER(%d)", n.Value)}
	case *ast.VarRef:
		return &treeView{label: fmt.Sprintf("VAR(id=%d)", n.ID)}
	case *ast.BinaryExpr:
		return &treeView{label: n.Op.String(), left: viewOf(n.Left), right: viewOf(n.Right)}
	case *ast.Decl:
		return &treeView{label: "dec", left: viewOf(n.Target), right: viewOf(n.Value)}
	case *ast.Assign:
		return &treeView{label: "assign", left: viewOf(n.Target), right: viewOf(n.Value)}
	case *ast.Print:
		return &treeView{label: "print", left: viewOf(n.Value)}
	case *ast.If:
		branches := &treeView{label: "branches", left: viewOfList(n.Then), right: viewOfList(n.Else)}
		return &treeView{label: "if", left: viewOf(n.Cond), right: branches}
	case *ast.StmtList:
		return viewOfList(n)
	}
	return &treeView{label: "?"}
}

func viewOfList(list *ast.StmtList) *treeView {
	if list == nil {
		return nil
	}
	return &treeView{label: "stmtlist", left: viewOfList(list.Prev), right: viewOf(list.Stmt)}
}

func (p *TreePrinter) render(v *treeView, indent int) {
	if v == nil {
		return
	}
	indent += indentStep
	p.render(v.right, indent)
	fmt.Fprintf(p.w, "\n%s%s\n", strings.Repeat(" ", indent-indentStep), v.label)
	p.render(v.left, indent)
}
