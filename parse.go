package calc

import (
	"sort"

	"github.com/edwingeng/deque"
)

// Expr is a parsed expression that can be evaluated with a context.
type Expr struct {
	// postfix is the expression in reverse Polish order.
	postfix []Token
	// names is the sorted list of variable names used in the expression.
	names []string
}

// Parse tokenizes an infix expression and converts it to postfix form. The
// given options are applied in order.
func Parse(src string, opts ...ParseOption) (*Expr, error) {
	p := parsectx{prec: DefaultPrecedence}
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	post, err := ToPostfix(toks, p.prec)
	if err != nil {
		return nil, err
	}
	return newExpr(post), nil
}

// NewExpr wraps a postfix sequence, e.g. one produced by ToPostfix, so that
// it can be evaluated with a Context.
func NewExpr(postfix []Token) *Expr {
	return newExpr(append([]Token(nil), postfix...))
}

func newExpr(postfix []Token) *Expr {
	seen := make(map[Token]bool)
	ex := Expr{postfix: postfix}
	for _, t := range postfix {
		if t.IsIdent() && !seen[t] {
			seen[t] = true
			ex.names = append(ex.names, t.text)
		}
	}
	sort.Strings(ex.names)
	return &ex
}

// ToPostfix reorders infix tokens into postfix order. Operands keep their
// relative order; each operator moves to just after its right operand. The
// only error is a *BracketError for an unmatched bracket.
//
// Tokens which are neither operators nor brackets are treated as operands,
// including malformed ones. Evaluating the result reports those.
func ToPostfix(tokens []Token, prec Precedence) ([]Token, error) {
	out := make([]Token, 0, len(tokens))
	ops := deque.NewDeque()
	// opened holds token indices of pending open brackets, for errors.
	var opened []int
	for i, tok := range tokens {
		switch tok.kind {
		case Operator:
			for !ops.Empty() {
				top := ops.Back().(Token)
				if top.IsLeftBracket() || !prec.ShouldPop(tok, top) {
					break
				}
				out = append(out, ops.PopBack().(Token))
			}
			ops.PushBack(tok)
		case LeftBracket:
			ops.PushBack(tok)
			opened = append(opened, i+1)
		case RightBracket:
			for {
				if ops.Empty() {
					return nil, &BracketError{Index: i + 1, Bracket: tok.text}
				}
				top := ops.PopBack().(Token)
				if top.IsLeftBracket() {
					opened = opened[:len(opened)-1]
					break
				}
				out = append(out, top)
			}
		default:
			out = append(out, tok)
		}
	}
	if len(opened) != 0 {
		return nil, &BracketError{Index: opened[len(opened)-1], Bracket: OpenBracket}
	}
	for !ops.Empty() {
		out = append(out, ops.PopBack().(Token))
	}
	return out, nil
}

// Postfix returns a copy of the expression's tokens in postfix order.
func (e *Expr) Postfix() []Token {
	return append([]Token(nil), e.postfix...)
}

// Vars returns the variable names used when evaluating the expression.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// String returns the postfix form of the expression with tokens separated by
// spaces.
func (e *Expr) String() string {
	return Join(e.postfix)
}
