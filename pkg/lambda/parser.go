package lambda

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenFn
	TokenArrow
	TokenLParen
	TokenRParen
	TokenIllegal
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of input"
	case TokenIdent:
		return "identifier"
	case TokenFn:
		return "fn"
	case TokenArrow:
		return "=>"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	default:
		return "illegal"
	}
}

type Token struct {
	Type    TokenType
	Literal string
	Pos     int
}

// ParseError reports malformed input. Pos is a byte offset into Input.
type ParseError struct {
	Input string
	Pos   int
	Token string
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("parse error at column %d: %s", e.Pos+1, e.Msg)
	}
	return fmt.Sprintf("parse error at column %d: %s near %q", e.Pos+1, e.Msg, e.Token)
}

type Parser struct {
	input   string
	pos     int
	current Token
	arena   *Arena
}

func NewParser(input string, arena *Arena) *Parser {
	if arena == nil {
		arena = NewArena()
	}
	p := &Parser{input: input, arena: arena}
	p.next()
	return p
}

func (p *Parser) next() {
	p.skipWhitespace()
	if p.pos >= len(p.input) {
		p.current = Token{Type: TokenEOF, Pos: p.pos}
		return
	}

	start := p.pos
	ch, size := utf8.DecodeRuneInString(p.input[p.pos:])
	switch {
	case isLetter(ch):
		for p.pos < len(p.input) {
			r, n := utf8.DecodeRuneInString(p.input[p.pos:])
			if !isLetter(r) && !unicode.IsDigit(r) && r != '_' {
				break
			}
			p.pos += n
		}
		lit := p.input[start:p.pos]
		switch {
		case lit == "fn":
			p.current = Token{Type: TokenFn, Literal: lit, Pos: start}
		case utf8.RuneCountInString(lit) == 1:
			p.current = Token{Type: TokenIdent, Literal: lit, Pos: start}
		default:
			p.current = Token{Type: TokenIllegal, Literal: lit, Pos: start}
		}
	case ch == '=' && p.pos+1 < len(p.input) && p.input[p.pos+1] == '>':
		p.current = Token{Type: TokenArrow, Literal: "=>", Pos: start}
		p.pos += 2
	case ch == '(':
		p.current = Token{Type: TokenLParen, Literal: "(", Pos: start}
		p.pos++
	case ch == ')':
		p.current = Token{Type: TokenRParen, Literal: ")", Pos: start}
		p.pos++
	default:
		p.current = Token{Type: TokenIllegal, Literal: p.input[start : start+size], Pos: start}
		p.pos += size
	}
}

// isLetter reports whether r may start an identifier. Identifiers are ASCII
// letters only, so λ never names a variable.
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

// skipWhitespace also skips comments, which run from '#' to end of line.
func (p *Parser) skipWhitespace() {
	for p.pos < len(p.input) {
		ch, size := utf8.DecodeRuneInString(p.input[p.pos:])
		switch {
		case ch == '#':
			for p.pos < len(p.input) && p.input[p.pos] != '\n' {
				p.pos++
			}
		case ch != utf8.RuneError && unicode.IsSpace(ch):
			p.pos += size
		default:
			return
		}
	}
}

func (p *Parser) errorf(format string, args ...interface{}) *ParseError {
	return &ParseError{
		Input: p.input,
		Pos:   p.current.Pos,
		Token: p.current.Literal,
		Msg:   fmt.Sprintf(format, args...),
	}
}

func (p *Parser) unexpected() *ParseError {
	if p.current.Type == TokenIllegal {
		if utf8.RuneCountInString(p.current.Literal) > 1 {
			return p.errorf("identifiers are a single letter")
		}
		return p.errorf("illegal character")
	}
	return p.errorf("unexpected %s", p.current.Type)
}

// Parse parses the whole input as one term.
func (p *Parser) Parse() (Term, error) {
	term, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TokenEOF {
		return nil, p.unexpected()
	}
	return term, nil
}

func (p *Parser) atAtom() bool {
	return p.current.Type == TokenIdent || p.current.Type == TokenLParen
}

// Term ::= Abs | App | Atom
func (p *Parser) parseTerm() (Term, error) {
	if p.current.Type == TokenFn {
		return p.parseAbs()
	}
	return p.parseApp()
}

// Abs ::= "fn" Ident "=>" Term+
func (p *Parser) parseAbs() (Term, error) {
	p.next() // consume 'fn'
	if p.current.Type != TokenIdent {
		return nil, p.errorf("expected identifier after fn")
	}
	param, _ := utf8.DecodeRuneInString(p.current.Literal)
	p.next()

	if p.current.Type != TokenArrow {
		return nil, p.errorf("expected '=>'")
	}
	p.next()

	body, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	// The body is the left fold of every term up to the end of the
	// enclosing group.
	for p.current.Type == TokenFn || p.atAtom() {
		more, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		body = p.arena.App(body, more)
	}
	return p.arena.Abs(param, body), nil
}

// App ::= Atom Atom*
func (p *Parser) parseApp() (Term, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.atAtom() {
		right, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		left = p.arena.App(left, right)
	}
	return left, nil
}

// Atom ::= Ident | "(" Term ")"
func (p *Parser) parseAtom() (Term, error) {
	switch p.current.Type {
	case TokenIdent:
		name, _ := utf8.DecodeRuneInString(p.current.Literal)
		p.next()
		return p.arena.Var(name), nil
	case TokenLParen:
		p.next()
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if p.current.Type != TokenRParen {
			return nil, p.errorf("expected ')'")
		}
		p.next()
		return term, nil
	default:
		return nil, p.unexpected()
	}
}

// Parse parses a lambda term from a string into a new arena.
func Parse(input string) (*Expr, error) {
	arena := NewArena()
	term, err := NewParser(input, arena).Parse()
	if err != nil {
		return nil, err
	}
	return &Expr{Term: term, Arena: arena}, nil
}

// Blank reports whether input holds nothing but whitespace and comments.
func Blank(input string) bool {
	p := &Parser{input: input}
	p.skipWhitespace()
	return p.pos >= len(input)
}
