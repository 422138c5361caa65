package calc

import (
	"strconv"
	"strings"
	"unicode"
)

// Tokenize splits an infix expression into tokens. Adjacent signs are folded
// first, so "2--3" gives the same tokens as "2+3". A sign where an operand is
// expected, i.e. at the start of the input or after an operator or an open
// bracket, joins the number immediately following it: "-4*-2" gives the
// tokens -4, *, -2.
//
// Tokenize does not check that the tokens form a valid expression. Joining
// the result with single spaces and tokenizing again gives the same tokens.
func Tokenize(src string) ([]Token, error) {
	l := lexer{}
	if err := l.fold(src); err != nil {
		return nil, err
	}
	l.split()
	return l.toks, nil
}

// TokenizeAssignment splits an assignment at each = and trims the parts. It
// never fails; the caller decides which shapes are valid. Empty parts become
// malformed tokens.
func TokenizeAssignment(src string) []Token {
	parts := strings.Split(src, "=")
	toks := make([]Token, len(parts))
	for i, p := range parts {
		toks[i] = NewToken(strings.TrimSpace(p))
	}
	return toks
}

type lexer struct {
	src  []rune
	buf  strings.Builder
	toks []Token
}

// fold copies src into l.src, collapsing each pair of adjacent signs into
// one. Whitespace between signs stops folding.
func (l *lexer) fold(src string) error {
	l.src = make([]rune, 0, len(src))
	col := 0
	for _, r := range src {
		col++
		n := len(l.src)
		if n == 0 || !isSign(r) || !isSign(l.src[n-1]) {
			l.src = append(l.src, r)
			continue
		}
		f, ok := foldSign(l.src[n-1], r)
		if !ok {
			return &SignError{Col: col, Text: string(l.src[n-1]) + string(r)}
		}
		// Replacing in place folds longer runs one sign at a time.
		l.src[n-1] = f
	}
	return nil
}

// foldSign combines two consecutive signs.
func foldSign(a, b rune) (rune, bool) {
	switch {
	case a == '-' && b == '-', a == '+' && b == '+':
		return '+', true
	case a == '+' && b == '-', a == '-' && b == '+':
		return '-', true
	default:
		return 0, false
	}
}

// split scans the folded source into tokens.
func (l *lexer) split() {
	for i, r := range l.src {
		switch {
		case unicode.IsSpace(r):
			l.flush()
		case strings.ContainsRune(Operators+OpenBracket+CloseBracket, r):
			if l.buf.Len() == 0 && isSign(r) && l.wantOperand() && i+1 < len(l.src) && startsNumber(l.src[i+1]) {
				l.buf.WriteRune(r)
				continue
			}
			l.flush()
			l.toks = append(l.toks, NewToken(string(r)))
		default:
			l.buf.WriteRune(r)
		}
	}
	l.flush()
}

// flush emits the buffered lexeme, if any.
func (l *lexer) flush() {
	if l.buf.Len() == 0 {
		return
	}
	l.toks = append(l.toks, NewToken(l.buf.String()))
	l.buf.Reset()
}

// wantOperand reports whether the next token is in operand position.
func (l *lexer) wantOperand() bool {
	if len(l.toks) == 0 {
		return true
	}
	last := l.toks[len(l.toks)-1]
	return last.IsOperator() || last.IsLeftBracket()
}

func isSign(r rune) bool {
	return r == '+' || r == '-'
}

func startsNumber(r rune) bool {
	return '0' <= r && r <= '9' || r == '.'
}

// SignError indicates a run of signs that cannot be folded. It implements
// InputError.
type SignError struct {
	// Col is the number of runes up to and including the sign that could not
	// be folded.
	Col int
	// Text is the pair of signs.
	Text string
}

func (err *SignError) Error() string {
	return errpos(err.Col, "cannot fold signs "+strconv.Quote(err.Text))
}

func (err *SignError) Pos() int {
	return err.Col
}

func (err *SignError) Unwrap() error {
	return ErrMalformedSign
}
