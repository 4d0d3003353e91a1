package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/chewxy/sexp"
)

// Check validates the s-expression syntax of r without decoding scenes and
// returns the number of top-level forms.
//
// The text is first read with the scene reader, which checks parentheses and
// strings. The source, with comments blanked out, is then run through
// github.com/chewxy/sexp with an atom reader that rejects tokens the scene
// format does not allow: control characters, brackets, braces, stray quotes
// and atoms that run into a string without a separating space.
func Check(r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("failed to read input: %w", err)
	}

	forms, err := Read(bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	if len(forms) == 0 {
		return 0, nil
	}

	var ac atomChecker
	src := bytes.TrimLeftFunc(stripComments(data), unicode.IsSpace)
	p := sexp.NewParser(bytes.NewReader(append(src, '\n')), false, ac.read)

	done := make(chan struct{})
	go func() {
		for range p.Output {
		}
		close(done)
	}()
	p.Run()
	<-done

	if err := p.Error(); err != nil {
		var ae *atomError
		if !errors.As(err, &ae) {
			return 0, fmt.Errorf("s-expression check failed: %w", err)
		}
		// atoms before the bad one matched the reader's atoms one for one
		atoms := collectAtoms(forms, nil)
		if ac.n < 1 || ac.n > len(atoms) {
			return 0, &SyntaxError{Pos: forms[0].Position(), Msg: ae.msg}
		}
		at := atoms[ac.n-1]
		return 0, &SyntaxError{Pos: at.Pos, Msg: fmt.Sprintf("%s in %s", ae.msg, at)}
	}
	return len(forms), nil
}

type atomError struct {
	msg string
}

func (e *atomError) Error() string { return e.msg }

// atomChecker is a sexp.AtomReader counting the atoms it has seen.
type atomChecker struct {
	n int
}

func (c *atomChecker) read(tok string) (sexp.Atom, error) {
	c.n++
	if msg := checkAtom(tok); msg != "" {
		return nil, &atomError{msg: msg}
	}
	return sexp.Symbol(tok), nil
}

const forbidden = "\"'`{}[]\\"

func checkAtom(tok string) string {
	if strings.HasPrefix(tok, `"`) {
		return checkString(tok)
	}
	for _, r := range tok {
		switch {
		case r == utf8.RuneError:
			return "invalid UTF-8"
		case r == '"':
			return "missing space before string"
		case unicode.IsControl(r):
			return fmt.Sprintf("control character %U", r)
		case strings.ContainsRune(forbidden, r):
			return fmt.Sprintf("invalid character %q", r)
		}
	}
	return ""
}

func checkString(tok string) string {
	escaped := false
	for i, r := range tok {
		if i == 0 {
			continue
		}
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			if i != len(tok)-1 {
				return "missing space after string"
			}
			return ""
		case unicode.IsControl(r):
			return fmt.Sprintf("control character %U", r)
		}
	}
	return "unterminated string"
}

// stripComments blanks comments and, inside string literals, the characters
// that would split an atom, keeping every other byte in place.
func stripComments(data []byte) []byte {
	out := make([]byte, 0, len(data))
	inString, escaped, inComment := false, false, false

	for _, r := range string(data) {
		switch {
		case inComment:
			if r == '\n' {
				inComment = false
				out = append(out, '\n')
				continue
			}
			out = append(out, ' ')
			continue
		case inString:
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			if unicode.IsSpace(r) || r == '(' || r == ')' {
				r = '_'
			}
		case r == '"':
			inString = true
		case r == ';' || r == '#':
			inComment = true
			out = append(out, ' ')
			continue
		}
		out = utf8.AppendRune(out, r)
	}
	return out
}

func collectAtoms(forms []Sexp, atoms []Atom) []Atom {
	for _, f := range forms {
		switch v := f.(type) {
		case Atom:
			atoms = append(atoms, v)
		case *List:
			atoms = collectAtoms(v.Items, atoms)
		}
	}
	return atoms
}
