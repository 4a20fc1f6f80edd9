package parser

import "github.com/alecthomas/participle/v2/lexer"

type Program struct {
	Pos lexer.Position

	Statements []*Statement `parser:"@@*"`
}

type Statement struct {
	Pos lexer.Position

	Declaration *Declaration         `parser:"  (?= 'int') @@"`
	Print       *Print               `parser:"| (?= 'print' '(') @@"`
	If          *If                  `parser:"| (?= 'if') @@"`
	Assignment  *Assignment          `parser:"| (?= Ident '=') @@"`
	Expression  *ExpressionStatement `parser:"| (?! 'else' | 'end') @@"`
}

type Declaration struct {
	Pos lexer.Position

	Name  string      `parser:"'int' @Ident"`
	Value *Expression `parser:"'=' @@ ';'"`
}

type Assignment struct {
	Pos lexer.Position

	Name  string      `parser:"@Ident"`
	Value *Expression `parser:"'=' @@ ';'"`
}

type Print struct {
	Pos lexer.Position

	Value *Expression `parser:"'print' '(' @@ ')' ';'"`
}

// If covers both the one- and two-branch forms. Every if is closed by
// 'end', so an else can only attach to the nearest open if; the ambiguity
// is settled by the grammar, not at run time.
type If struct {
	Pos lexer.Position

	Condition *Condition   `parser:"'if' '(' @@ ')' ':'"`
	Then      []*Statement `parser:"@@*"`
	Else      *ElseBlock   `parser:"@@? 'end'"`
}

type ElseBlock struct {
	Pos lexer.Position

	Body []*Statement `parser:"'else' ':' @@*"`
}

// Condition is the comparison form an if requires; it is built as an
// operator node and evaluated at execution time like any other expression.
type Condition struct {
	Pos lexer.Position

	Left  *Expression `parser:"@@"`
	Op    string      `parser:"@('==' | '!=' | '<=' | '>=' | '<' | '>')"`
	Right *Expression `parser:"@@"`
}

// ExpressionStatement is a bare expression terminated by ';'. It executes
// by printing its value.
type ExpressionStatement struct {
	Pos lexer.Position

	Value *Expression `parser:"@@ ';'"`
}

type Expression struct {
	Pos lexer.Position

	Left  *Term     `parser:"@@"`
	Right []*OpTerm `parser:"@@*"`
}

type OpTerm struct {
	Op   string `parser:"@('+' | '-')"`
	Term *Term  `parser:"@@"`
}

type Term struct {
	Pos lexer.Position

	Left  *Factor     `parser:"@@"`
	Right []*OpFactor `parser:"@@*"`
}

type OpFactor struct {
	Op     string  `parser:"@('*' | '/')"`
	Factor *Factor `parser:"@@"`
}

type Factor struct {
	Pos lexer.Position

	Value    *int        `parser:"  @Int"`
	Sub      *Expression `parser:"| '(' @@ ')'"`
	Variable *string     `parser:"| @Ident"`
}
