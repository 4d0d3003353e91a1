package scene

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Sexp is an s-expression node: an Atom or a *List.
type Sexp interface {
	IsLeaf() bool
	Position() Pos
	String() string
}

// Atom is a symbol, number or quoted string.
type Atom struct {
	Value  string
	Quoted bool
	Pos    Pos
}

func (a Atom) IsLeaf() bool  { return true }
func (a Atom) Position() Pos { return a.Pos }

func (a Atom) String() string {
	if a.Quoted {
		return strconv.Quote(a.Value)
	}
	return a.Value
}

// List is a parenthesized sequence of nodes.
type List struct {
	Items []Sexp
	Pos   Pos
}

func (l *List) IsLeaf() bool  { return false }
func (l *List) Position() Pos { return l.Pos }

// Head returns the leading symbol of the list, or "" if the list is empty or
// starts with something else.
func (l *List) Head() string {
	if len(l.Items) == 0 {
		return ""
	}
	if a, ok := l.Items[0].(Atom); ok && !a.Quoted {
		return a.Value
	}
	return ""
}

// Args returns the items after the head.
func (l *List) Args() []Sexp {
	if len(l.Items) <= 1 {
		return nil
	}
	return l.Items[1:]
}

func (l *List) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, elem := range l.Items {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(elem.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// SyntaxError reports malformed s-expression text.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %v: %s", e.Pos, e.Msg)
}

// Parser parses s-expressions from a lexer
type Parser struct {
	lexer   *Lexer
	current Token
}

// NewParser creates a new parser from an io.Reader
func NewParser(r io.Reader) *Parser {
	return &Parser{
		lexer: NewLexer(r),
	}
}

// Read parses all top-level s-expressions from r.
func Read(r io.Reader) ([]Sexp, error) {
	return NewParser(r).ParseAll()
}

// ParseAll parses all top-level s-expressions from the input
func (p *Parser) ParseAll() ([]Sexp, error) {
	var result []Sexp

	if err := p.next(); err != nil {
		return nil, err
	}

	for p.current.Type != TokenEOF {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		result = append(result, expr)

		if err := p.next(); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (p *Parser) next() error {
	tok, err := p.lexer.NextToken()
	if err != nil {
		return err
	}
	p.current = tok
	return nil
}

func (p *Parser) parseExpr() (Sexp, error) {
	switch p.current.Type {
	case TokenLeftParen:
		return p.parseList()

	case TokenSymbol, TokenString:
		return Atom{
			Value:  p.current.Value,
			Quoted: p.current.Type == TokenString,
			Pos:    p.current.Pos,
		}, nil

	case TokenRightParen:
		return nil, &SyntaxError{Pos: p.current.Pos, Msg: "unexpected ')'"}

	default:
		return nil, &SyntaxError{Pos: p.current.Pos, Msg: "unexpected " + p.current.Type.String()}
	}
}

func (p *Parser) parseList() (Sexp, error) {
	list := &List{Pos: p.current.Pos}

	for {
		if err := p.next(); err != nil {
			return nil, err
		}

		if p.current.Type == TokenRightParen {
			break
		}

		if p.current.Type == TokenEOF {
			return nil, &SyntaxError{Pos: list.Pos, Msg: "unclosed '('"}
		}

		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, elem)
	}

	return list, nil
}
