package gravity

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// exprLexer tokenizes gravity expressions such as "top | center_horizontal".
var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[\s]+`},
	{Name: "Ident", Pattern: `[a-zA-Z][a-zA-Z0-9_]*`},
	{Name: "Pipe", Pattern: `\|`},
})

// expression is a pipe-separated list of gravity names.
type expression struct {
	Terms []*term `parser:"@@ ( Pipe @@ )*"`
}

type term struct {
	Pos  lexer.Position
	Name string `parser:"@Ident"`
}

var exprParser = participle.MustBuild[expression](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
)

var names = map[string]Gravity{
	"no_gravity":        NoGravity,
	"left":              Left,
	"start":             Left,
	"right":             Right,
	"end":               Right,
	"top":               Top,
	"bottom":            Bottom,
	"center":            Center,
	"center_horizontal": CenterHorizontal,
	"center_vertical":   CenterVertical,
	"fill":              Fill,
	"fill_horizontal":   FillHorizontal,
	"fill_vertical":     FillVertical,
	"clip_horizontal":   ClipHorizontal,
	"clip_vertical":     ClipVertical,
}

// ParseError reports a malformed gravity expression.
type ParseError struct {
	Input  string
	Offset int
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("gravity %q: offset %d: %s", e.Input, e.Offset, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads a gravity expression. Names are case-insensitive and combined
// with '|'. An empty expression is NoGravity.
func Parse(s string) (Gravity, error) {
	if strings.TrimSpace(s) == "" {
		return NoGravity, nil
	}

	expr, err := exprParser.ParseString("", s)
	if err != nil {
		pe := &ParseError{Input: s, Msg: "syntax error", Err: err}
		if perr, ok := err.(participle.Error); ok {
			pe.Offset = perr.Position().Offset
			pe.Msg = perr.Message()
		}
		return NoGravity, pe
	}

	var g Gravity
	for _, t := range expr.Terms {
		v, ok := names[strings.ToLower(t.Name)]
		if !ok {
			return NoGravity, &ParseError{Input: s, Offset: t.Pos.Offset, Msg: fmt.Sprintf("unknown gravity %q", t.Name)}
		}
		g |= v
	}
	return g, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Gravity {
	g, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return g
}
