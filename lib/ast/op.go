package ast

// Op is the closed set of binary operators. An out-of-range Op reaching the
// evaluator is an internal defect, not user error.
type Op int

const (
	OpInvalid Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

var opSymbols = [...]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpEq:  "==",
	OpNe:  "!=",
	OpLt:  "<",
	OpLe:  "<=",
	OpGt:  ">",
	OpGe:  ">=",
}

func (op Op) String() string {
	if op > OpInvalid && int(op) < len(opSymbols) {
		return opSymbols[op]
	}
	return "?"
}

// Comparison reports whether the operator yields a 0/1 truth value.
func (op Op) Comparison() bool {
	return op >= OpEq && op <= OpGe
}

// OpForSymbol maps an operator's source spelling to its Op.
func OpForSymbol(symbol string) (Op, bool) {
	for op, sym := range opSymbols {
		if sym == symbol && sym != "" {
			return Op(op), true
		}
	}
	return OpInvalid, false
}
