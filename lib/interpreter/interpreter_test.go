package interpreter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/espresso-lang/espresso/lib/ast"
	"github.com/espresso-lang/espresso/lib/parser"
)

// run parses and executes source with fresh everything and returns the
// runtime output and the fault output.
func run(t *testing.T, source string) (out, errs string) {
	t.Helper()
	prog, err := parser.ParseString("test.esp", source)
	if err != nil {
		t.Fatalf("parse failed: %s", err)
	}
	list, err := parser.NewBuilder(ast.NewSymbolTable()).Program(prog)
	if err != nil {
		t.Fatalf("lowering failed: %s", err)
	}

	var outBuf, errBuf bytes.Buffer
	New(NewStore(), &outBuf, nil, &errBuf).Run(list)
	return outBuf.String(), errBuf.String()
}

func TestDeclareThenRead(t *testing.T) {
	out, errs := run(t, "int x = 5;\nprint(x);\n")
	want := "Declared var[0] = 5\nPrint: 5\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
	if errs != "" {
		t.Errorf("unexpected faults: %q", errs)
	}
}

func TestStatementsRunInSourceOrder(t *testing.T) {
	out, _ := run(t, "int x = 1;\nx = 2;\nprint(x);\n")
	want := "Declared var[0] = 1\nAssigned var[0] = 2\nPrint: 2\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestArithmetic(t *testing.T) {
	for _, tc := range []struct {
		source string
		want   string
	}{
		{"print(2 + 3 * 4);", "Print: 14\n"},
		{"print((2 + 3) * 4);", "Print: 20\n"},
		{"print(10 - 4 - 3);", "Print: 3\n"},
		{"print(7 / 2);", "Print: 3\n"},
		{"print(1 - 8 / 2);", "Print: -3\n"},
	} {
		out, errs := run(t, tc.source)
		if out != tc.want {
			t.Errorf("%s: output = %q, want %q", tc.source, out, tc.want)
		}
		if errs != "" {
			t.Errorf("%s: unexpected faults: %q", tc.source, errs)
		}
	}
}

func TestComparisonsYieldZeroOrOne(t *testing.T) {
	out, _ := run(t, "print(1 < 2);\nprint(2 <= 1);\nprint(3 == 3);\nprint(3 != 3);\n")
	want := "Print: 1\nPrint: 0\nPrint: 1\nPrint: 0\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestIfTakesExactlyOneBranch(t *testing.T) {
	out, _ := run(t, "int x = 0;\nif (1 > 0): x = 1; else: x = 2; end\nprint(x);\n")
	if !strings.Contains(out, "Assigned var[0] = 1") {
		t.Errorf("then branch did not run: %q", out)
	}
	if strings.Contains(out, "Assigned var[0] = 2") {
		t.Errorf("else branch ran alongside then: %q", out)
	}
	if !strings.HasSuffix(out, "Print: 1\n") {
		t.Errorf("final value wrong: %q", out)
	}

	out, _ = run(t, "int x = 0;\nif (0 > 1): x = 1; else: x = 2; end\nprint(x);\n")
	if !strings.HasSuffix(out, "Print: 2\n") {
		t.Errorf("else branch result wrong: %q", out)
	}
}

func TestUntakenBranchHasNoEffect(t *testing.T) {
	out, errs := run(t, "int x = 7;\nif (0 != 0): x = 1 / 0; end\nprint(x);\n")
	if !strings.HasSuffix(out, "Print: 7\n") {
		t.Errorf("untaken branch mutated the store: %q", out)
	}
	if errs != "" {
		t.Errorf("untaken branch was evaluated: %q", errs)
	}
}

func TestElseBindsToNearestIfAtRuntime(t *testing.T) {
	// The else belongs to the inner if, so the outer false condition skips
	// everything including it.
	source := "int x = 0;\nif (0 > 1): if (1 > 0): x = 1; else: x = 2; end end\nprint(x);\n"
	out, _ := run(t, source)
	if !strings.HasSuffix(out, "Print: 0\n") {
		t.Errorf("dangling else attached to the wrong if: %q", out)
	}
}

func TestExpressionStatementPrints(t *testing.T) {
	out, _ := run(t, "1 + 2;")
	if out != "Print: 3\n" {
		t.Errorf("output = %q, want %q", out, "Print: 3\n")
	}
}

func TestDivisionByZeroRecovers(t *testing.T) {
	out, errs := run(t, "print(1 / 0);\nprint(9);\n")
	if errs != "Error: Division by zero at line 1\n" {
		t.Errorf("faults = %q", errs)
	}
	// The faulted division contributes 0 and execution continues.
	if out != "Print: 0\nPrint: 9\n" {
		t.Errorf("output = %q", out)
	}
}

func TestUndeclaredVariableReadsZero(t *testing.T) {
	out, errs := run(t, "print(x);")
	if out != "Print: 0\n" {
		t.Errorf("output = %q, want %q", out, "Print: 0\n")
	}
	if errs != "" {
		t.Errorf("reading a fresh variable should not fault: %q", errs)
	}
}

func TestMalformedTargetFaultsWithoutSideEffects(t *testing.T) {
	// Built by hand: the grammar cannot produce a declaration whose target
	// is a literal, but the tree can represent one.
	bad := ast.NewDecl(pos, ast.NewIntLit(pos, 1), ast.NewVarRef(pos, 0))
	list := ast.Append(nil, bad)
	list = ast.Append(list, ast.NewPrint(pos, ast.NewVarRef(pos, 0)))

	var outBuf, errBuf bytes.Buffer
	New(NewStore(), &outBuf, nil, &errBuf).Run(list)

	if errBuf.String() != "Error: Declaration left side is not a variable at line 1\n" {
		t.Errorf("faults = %q", errBuf.String())
	}
	if outBuf.String() != "Print: 0\n" {
		t.Errorf("malformed statement had side effects: %q", outBuf.String())
	}
}

func TestOutOfRangeVariableFaults(t *testing.T) {
	read := ast.NewPrint(pos, ast.NewVarRef(pos, StoreSize))
	write := ast.NewAssign(pos, ast.NewVarRef(pos, StoreSize), ast.NewIntLit(pos, 1))
	list := ast.Append(ast.Append(nil, read), write)

	var outBuf, errBuf bytes.Buffer
	New(NewStore(), &outBuf, nil, &errBuf).Run(list)

	want := "Error: Variable id 256 out of range at line 1\nError: Variable id 256 out of range at line 1\n"
	if errBuf.String() != want {
		t.Errorf("faults = %q, want %q", errBuf.String(), want)
	}
	if outBuf.String() != "Print: 0\n" {
		t.Errorf("output = %q, want only the substituted print", outBuf.String())
	}
}

func TestUnknownOperatorFaults(t *testing.T) {
	expr := ast.NewBinaryExpr(pos, ast.OpInvalid, ast.NewIntLit(pos, 1), ast.NewIntLit(pos, 2))
	list := ast.Append(nil, ast.NewPrint(pos, expr))

	var outBuf, errBuf bytes.Buffer
	New(NewStore(), &outBuf, nil, &errBuf).Run(list)

	if errBuf.String() != "Error: Unknown operator in expression at line 1\n" {
		t.Errorf("faults = %q", errBuf.String())
	}
	if outBuf.String() != "Print: 0\n" {
		t.Errorf("output = %q, want the fallback value", outBuf.String())
	}
}

func TestTreeTracesOnlyExecutedStatements(t *testing.T) {
	// The if statement is traced as one diagram; its untaken branch is part
	// of that diagram, not a separately traced statement.
	prog, err := parser.ParseString("test.esp", "int x = 1;\nif (0 > 1): x = 2; x = 3; end\n")
	if err != nil {
		t.Fatalf("parse failed: %s", err)
	}
	list, err := parser.NewBuilder(ast.NewSymbolTable()).Program(prog)
	if err != nil {
		t.Fatalf("lowering failed: %s", err)
	}

	var treeBuf bytes.Buffer
	New(NewStore(), nil, &treeBuf, nil).Run(list)

	sep := strings.Repeat("-", 50)
	if got := strings.Count(treeBuf.String(), sep); got != 2 {
		t.Errorf("traced %d diagrams, want 2 (declaration and if)", got)
	}
}

func TestRerunWithFreshStoreIsIdempotent(t *testing.T) {
	prog, err := parser.ParseString("test.esp", "int x = 3;\nx = x + 1;\nprint(x);\n")
	if err != nil {
		t.Fatalf("parse failed: %s", err)
	}
	list, err := parser.NewBuilder(ast.NewSymbolTable()).Program(prog)
	if err != nil {
		t.Fatalf("lowering failed: %s", err)
	}

	var first, second bytes.Buffer
	New(NewStore(), &first, nil, nil).Run(list)
	New(NewStore(), &second, nil, nil).Run(list)

	if first.String() != second.String() {
		t.Errorf("reruns diverged:\nfirst  %q\nsecond %q", first.String(), second.String())
	}
	if !strings.HasSuffix(first.String(), "Print: 4\n") {
		t.Errorf("output = %q", first.String())
	}
}

func TestRunEmptyProgram(t *testing.T) {
	var outBuf, errBuf bytes.Buffer
	New(NewStore(), &outBuf, nil, &errBuf).Run(nil)
	if outBuf.Len() != 0 || errBuf.Len() != 0 {
		t.Errorf("empty program produced output %q / faults %q", outBuf.String(), errBuf.String())
	}
}
