package interpreter

import "github.com/espresso-lang/espresso/lib/ast"

// evalExpr evaluates an expression node to an integer. The left operand of
// a binary node is fully evaluated before the right one. Faults yield a
// fallback value of 0 and are reported on the error sink; the result of an
// expression that faulted is not authoritative.
func (in *Interpreter) evalExpr(e ast.Expr) int {
	switch e := e.(type) {
	case nil:
		return 0
	case *ast.IntLit:
		return e.Value
	case *ast.VarRef:
		val, ok := in.store.Get(e.ID)
		if !ok {
			in.faultf(e.Pos, "Variable id %d out of range", e.ID)
			return 0
		}
		return val
	case *ast.BinaryExpr:
		left := in.evalExpr(e.Left)
		right := in.evalExpr(e.Right)
		switch e.Op {
		case ast.OpAdd:
			return left + right
		case ast.OpSub:
			return left - right
		case ast.OpMul:
			return left * right
		case ast.OpDiv:
			if right == 0 {
				// Substitute 0 and let the enclosing statement carry on.
				in.faultf(e.Pos, "Division by zero")
				return 0
			}
			return left / right
		case ast.OpEq:
			return boolInt(left == right)
		case ast.OpNe:
			return boolInt(left != right)
		case ast.OpLt:
			return boolInt(left < right)
		case ast.OpLe:
			return boolInt(left <= right)
		case ast.OpGt:
			return boolInt(left > right)
		case ast.OpGe:
			return boolInt(left >= right)
		}
		in.faultf(e.Pos, "Unknown operator in expression")
		return 0
	}
	in.faultf(e.Position(), "Expected an expression node")
	return 0
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
