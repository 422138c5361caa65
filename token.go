package calc

import (
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// Token is a single lexeme of an expression. Its Kind is decided when the
// token is created, so two tokens are equal exactly when their text is equal
// and a Token can be used as a map key.
type Token struct {
	text string
	kind Kind
}

// Kind is the category of a token.
type Kind int8

const (
	// Malformed is any lexeme that fits no other kind, e.g. a1 or $.
	Malformed Kind = iota
	// Number is a decimal literal with an optional leading sign.
	Number
	// Ident is a variable name made only of letters.
	Ident
	// Operator is one of the binary operators.
	Operator
	// LeftBracket is an opening parenthesis.
	LeftBracket
	// RightBracket is a closing parenthesis.
	RightBracket
)

func (k Kind) String() string {
	switch k {
	case Malformed:
		return "Malformed"
	case Number:
		return "Number"
	case Ident:
		return "Ident"
	case Operator:
		return "Operator"
	case LeftBracket:
		return "LeftBracket"
	case RightBracket:
		return "RightBracket"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/^"

// Signs are the operators which may also be unary.
const Signs = "+-"

// Brackets group subexpressions.
const (
	OpenBracket  = "("
	CloseBracket = ")"
)

// NewToken classifies a lexeme.
func NewToken(text string) Token {
	return Token{text: text, kind: classify(text)}
}

func classify(s string) Kind {
	switch {
	case s == "":
		return Malformed
	case len(s) == 1 && strings.Contains(Operators, s):
		return Operator
	case s == OpenBracket:
		return LeftBracket
	case s == CloseBracket:
		return RightBracket
	case isNumber(s):
		return Number
	case isIdent(s):
		return Ident
	default:
		return Malformed
	}
}

// isNumber reports whether s is an optional sign followed by digits with at
// most one decimal point.
func isNumber(s string) bool {
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	var dig, dot bool
	for _, r := range s {
		switch {
		case '0' <= r && r <= '9':
			dig = true
		case r == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return dig
}

func isIdent(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

// Text returns the lexeme.
func (t Token) Text() string {
	return t.text
}

// Kind returns the token's category.
func (t Token) Kind() Kind {
	return t.kind
}

// IsNumber reports whether t is a numeric literal, possibly signed.
func (t Token) IsNumber() bool { return t.kind == Number }

// IsIdent reports whether t is a variable name.
func (t Token) IsIdent() bool { return t.kind == Ident }

// IsOperator reports whether t is one of the binary operators.
func (t Token) IsOperator() bool { return t.kind == Operator }

// IsLeftBracket reports whether t is an opening bracket.
func (t Token) IsLeftBracket() bool { return t.kind == LeftBracket }

// IsRightBracket reports whether t is a closing bracket.
func (t Token) IsRightBracket() bool { return t.kind == RightBracket }

// IsMalformed reports whether t fits no other kind.
func (t Token) IsMalformed() bool { return t.kind == Malformed }

// IsBracket reports whether t is either bracket.
func (t Token) IsBracket() bool {
	return t.kind == LeftBracket || t.kind == RightBracket
}

// IsOperand reports whether t belongs in operand position, i.e. is not an
// operator or a bracket.
func (t Token) IsOperand() bool {
	return t.kind == Number || t.kind == Ident || t.kind == Malformed
}

// Float parses a Number token at the given precision. The result is nil if t
// is not a Number.
func (t Token) Float(prec uint) *big.Float {
	if t.kind != Number {
		return nil
	}
	r, _, err := new(big.Float).SetPrec(prec).Parse(t.text, 10)
	if err != nil {
		// Number tokens are always valid decimal literals.
		panic("calc: invalid number token " + t.text + " (" + err.Error() + ")")
	}
	return r
}

func (t Token) String() string {
	return t.text
}

// Join writes tokens separated by single spaces.
func Join(tokens []Token) string {
	var b strings.Builder
	for i, t := range tokens {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.text)
	}
	return b.String()
}
