package parser

import (
	"os"

	"github.com/alecthomas/participle/v2"
	eslex "github.com/espresso-lang/espresso/lib/lexer"
)

var def = participle.MustBuild[Program](
	participle.Lexer(eslex.Definition),
)

// Parser exposes the built grammar; its String method prints the EBNF form.
func Parser() *participle.Parser[Program] {
	return def
}

func ParseFile(filename string) (*Program, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return def.ParseString(filename, string(src))
}

func ParseString(filename, source string) (*Program, error) {
	return def.ParseString(filename, source)
}
