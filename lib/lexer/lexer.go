package eslex

import (
	"io"
	"strings"
	"text/scanner"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Definition is the Espresso token stream: a text/scanner based lexer that
// additionally merges the two-character operators (==, !=, <=, >=) into
// single tokens, since text/scanner would split them apart.
var Definition lexer.Definition = &scannerDefinition{}

type scannerDefinition struct{}

func (d *scannerDefinition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	return Lex(filename, r), nil
}

func (d *scannerDefinition) Symbols() map[string]lexer.TokenType {
	return map[string]lexer.TokenType{
		"EOF":   lexer.EOF,
		"Ident": scanner.Ident,
		"Int":   scanner.Int,
	}
}

type scannerLexer struct {
	scanner  *scanner.Scanner
	filename string
	err      error
}

// Lex wraps an io.Reader in a scanner configured for Espresso source:
// identifiers, integers and punctuation, with Go-style comments skipped.
func Lex(filename string, r io.Reader) lexer.Lexer {
	s := &scanner.Scanner{}
	s.Init(r)
	s.Filename = filename
	s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanComments | scanner.SkipComments
	l := &scannerLexer{scanner: s, filename: filename}
	s.Error = func(s *scanner.Scanner, msg string) {
		l.err = participle.Errorf(lexer.Position(s.Pos()), "%s", msg)
	}
	return l
}

// LexString returns a lexer over a source string.
func LexString(filename, source string) lexer.Lexer {
	return Lex(filename, strings.NewReader(source))
}

func (l *scannerLexer) Next() (lexer.Token, error) {
	typ := l.scanner.Scan()
	text := l.scanner.TokenText()
	pos := lexer.Position(l.scanner.Position)
	pos.Filename = l.filename
	if l.err != nil {
		return lexer.Token{}, l.err
	}
	switch typ {
	case '=', '!', '<', '>':
		if l.scanner.Peek() == '=' {
			l.scanner.Scan()
			text += "="
		}
	}
	return lexer.Token{
		Type:  lexer.TokenType(typ),
		Value: text,
		Pos:   pos,
	}, nil
}
