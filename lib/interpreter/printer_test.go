package interpreter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/espresso-lang/espresso/lib/ast"
)

var pos = lexer.Position{Filename: "test.esp", Line: 1}

// diagram joins the expected lines: every label is preceded and followed by
// a blank line, and the whole statement ends with a separator.
func diagram(lines ...string) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString("\n")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n" + strings.Repeat("-", 50) + "\n\n")
	return b.String()
}

func TestPrintDeclaration(t *testing.T) {
	decl := ast.NewDecl(pos, ast.NewVarRef(pos, 0), ast.NewIntLit(pos, 5))

	var buf bytes.Buffer
	NewTreePrinter(&buf).PrintStmt(decl)

	want := diagram(
		"     INTEGER(5)",
		"dec",
		"     VAR(id=0)",
	)
	if buf.String() != want {
		t.Errorf("declaration diagram:\ngot  %q\nwant %q", buf.String(), want)
	}
}

func TestPrintExpressionRightSubtreeAboveLeft(t *testing.T) {
	// print(1 + 2 * 3): the multiplication sits in the right subtree of the
	// sum and so renders above it.
	expr := ast.NewBinaryExpr(pos, ast.OpAdd,
		ast.NewIntLit(pos, 1),
		ast.NewBinaryExpr(pos, ast.OpMul, ast.NewIntLit(pos, 2), ast.NewIntLit(pos, 3)))

	var buf bytes.Buffer
	NewTreePrinter(&buf).PrintStmt(ast.NewPrint(pos, expr))

	want := diagram(
		"print",
		"               INTEGER(3)",
		"          *",
		"               INTEGER(2)",
		"     +",
		"          INTEGER(1)",
	)
	if buf.String() != want {
		t.Errorf("expression diagram:\ngot  %q\nwant %q", buf.String(), want)
	}
}

func TestPrintIfDiagram(t *testing.T) {
	// if (1 > 2): x = 1; end
	then := ast.Append(nil, ast.NewAssign(pos, ast.NewVarRef(pos, 0), ast.NewIntLit(pos, 1)))
	cond := ast.NewBinaryExpr(pos, ast.OpGt, ast.NewIntLit(pos, 1), ast.NewIntLit(pos, 2))

	var buf bytes.Buffer
	NewTreePrinter(&buf).PrintStmt(ast.NewIf(pos, cond, then, nil))

	want := diagram(
		"     branches",
		"                    INTEGER(1)",
		"               assign",
		"                    VAR(id=0)",
		"          stmtlist",
		"if",
		"          INTEGER(2)",
		"     >",
		"          INTEGER(1)",
	)
	if buf.String() != want {
		t.Errorf("if diagram:\ngot  %q\nwant %q", buf.String(), want)
	}
}

func TestPrintChainFlattens(t *testing.T) {
	// A statement chain is not drawn as a node; each element gets its own
	// diagram, oldest first.
	list := ast.Append(nil, ast.NewPrint(pos, ast.NewIntLit(pos, 1)))
	list = ast.Append(list, ast.NewPrint(pos, ast.NewIntLit(pos, 2)))

	var buf bytes.Buffer
	NewTreePrinter(&buf).PrintStmt(list)

	want := diagram("     INTEGER(1)", "print") + diagram("     INTEGER(2)", "print")
	if buf.String() != want {
		t.Errorf("chain diagrams:\ngot  %q\nwant %q", buf.String(), want)
	}
	if strings.Contains(buf.String(), "stmtlist") {
		t.Error("top-level chain should not draw a stmtlist node")
	}
}

func TestPrintNilInputs(t *testing.T) {
	var buf bytes.Buffer
	p := NewTreePrinter(&buf)
	p.PrintStmt(nil)
	p.PrintStmt((*ast.StmtList)(nil))
	if buf.Len() != 0 {
		t.Errorf("nil statements produced output %q", buf.String())
	}
}

func TestPrinterDiscardsWithNilWriter(t *testing.T) {
	p := NewTreePrinter(nil)
	p.PrintStmt(ast.NewPrint(pos, ast.NewIntLit(pos, 1)))
}
