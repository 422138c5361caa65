package calc

import (
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// MaxBits bounds the magnitude of every intermediate value: a value of
// 2^MaxBits or more is a *RangeError. Only the leading Prec bits of such a
// value are meaningful anyway.
const MaxBits = 1 << 16

// maxCached is the number of literals a Context remembers between
// evaluations.
const maxCached = 1024

// Context is a context for evaluating expressions. It is not safe to use a
// Context concurrently.
type Context struct {
	stack []*big.Float
	nums  map[Token]*big.Float
	prec  uint
	res   *big.Int
	err   error
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type precopt uint

func (precopt) ctxOption() {}

// Prec sets the precision of calculations in bits.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is 64.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{nums: make(map[Token]*big.Float), prec: 64}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil: // do nothing
		case precopt:
			if opt > 0 {
				ctx.prec = uint(opt)
			}
		default:
			panic("calc: unknown option type")
		}
	}
	return &ctx
}

// Eval evaluates an expression, resolving variables through env, and returns
// the result truncated toward zero. If an error occurs, e.g. a missing
// variable or a division by zero, then the result is nil and ctx.Err returns
// the error. A nil env has no variables.
func (ctx *Context) Eval(e *Expr, env Env) *big.Int {
	ctx.stack = ctx.stack[:0]
	ctx.res = nil
	if len(ctx.nums) > maxCached {
		clear(ctx.nums)
	}
	ctx.err = ctx.reduce(e.postfix, env)
	if ctx.err != nil {
		return nil
	}
	ctx.res, _ = ctx.stack[0].Int(nil)
	return ctx.Result()
}

// Result returns the result obtained after evaluating an expression. Returns
// nil if no expression has been evaluated or an error occurred during
// evaluation.
func (ctx *Context) Result() *big.Int {
	if ctx.res == nil {
		return nil
	}
	return new(big.Int).Set(ctx.res)
}

// Err returns the error from the last evaluation, if any.
func (ctx *Context) Err() error {
	return ctx.err
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// reduce folds a postfix sequence onto the stack. On success, the stack holds
// exactly one value.
func (ctx *Context) reduce(postfix []Token, env Env) error {
	for i, tok := range postfix {
		switch tok.kind {
		case Number:
			ctx.push().Set(ctx.num(tok))
		case Ident:
			v, err := ctx.resolve(tok.text, env, i+1)
			if err != nil {
				return err
			}
			ctx.push().Set(v)
		case Operator:
			if len(ctx.stack) < 2 {
				return &ExprError{Index: i + 1, Token: tok.text, Reason: "missing operand for"}
			}
			// The right operand was pushed last.
			r := ctx.pop()
			l := ctx.top()
			if err := ctx.apply(tok.text, l, r); err != nil {
				return err
			}
		default:
			return &ExprError{Index: i + 1, Token: tok.text, Reason: "invalid token"}
		}
		if v := ctx.top(); v.IsInf() || v.MantExp(nil) > MaxBits {
			return &RangeError{Op: tok.text}
		}
	}
	switch n := len(ctx.stack); n {
	case 0:
		return &ExprError{Index: len(postfix) + 1, Reason: "no expression"}
	case 1:
		return nil
	default:
		return &ExprError{Index: len(postfix) + 1, Reason: strconv.Itoa(n) + " values without operators"}
	}
}

// resolve looks up a variable, following stored names until reaching a
// number.
func (ctx *Context) resolve(name string, env Env, idx int) (*big.Float, error) {
	if env == nil {
		return nil, &NameError{Name: name}
	}
	var seen map[string]bool
	for {
		s, ok := env.Lookup(name)
		if !ok {
			return nil, &NameError{Name: name}
		}
		v := NewToken(s)
		switch v.kind {
		case Number:
			return ctx.num(v), nil
		case Ident:
			if seen == nil {
				seen = make(map[string]bool)
			}
			seen[name] = true
			if seen[v.text] {
				return nil, &NameError{Name: v.text, Cycle: true}
			}
			name = v.text
		default:
			return nil, &ExprError{Index: idx, Token: s, Reason: "variable " + name + " holds"}
		}
	}
}

// apply sets l to l op r.
func (ctx *Context) apply(op string, l, r *big.Float) error {
	switch op {
	case "+":
		l.Add(l, r)
	case "-":
		l.Sub(l, r)
	case "*":
		l.Mul(l, r)
	case "/":
		if r.Sign() == 0 {
			return &DivisionError{X: new(big.Float).Copy(l), Op: op}
		}
		l.Quo(l, r)
	case "^":
		return pow(l, r)
	default:
		panic("calc: unknown operator " + strconv.Quote(op))
	}
	return nil
}

// pow sets x to x^y.
func pow(x, y *big.Float) error {
	if y.IsInt() {
		if n, acc := y.Int64(); acc == big.Exact {
			return powi(x, n)
		}
		return powhuge(x, y)
	}
	switch x.Sign() {
	case 1:
		bigfloat.Pow(x, x, y)
	case 0:
		if y.Signbit() {
			return &DivisionError{X: new(big.Float).Copy(y), Op: "^"}
		}
		x.SetInt64(0)
	default:
		// A negative base has no real power for fractional exponents.
		return &DomainError{X: new(big.Float).Copy(x), Op: "^"}
	}
	return nil
}

// powi sets x to x^n by repeated squaring.
func powi(x *big.Float, n int64) error {
	if n < 0 && x.Sign() == 0 {
		return &DivisionError{X: new(big.Float).SetInt64(n), Op: "^"}
	}
	u := uint64(n)
	if n < 0 {
		u = uint64(-n)
	}
	b := new(big.Float).Copy(x)
	x.SetInt64(1)
	for u > 0 {
		if u&1 != 0 {
			x.Mul(x, b)
		}
		u >>= 1
		if u > 0 {
			b.Mul(b, b)
		}
	}
	if n < 0 {
		one := new(big.Float).SetPrec(x.Prec()).SetInt64(1)
		x.Quo(one, x)
	}
	return nil
}

// powhuge sets x to x^y for integers y too large for int64. Such powers are
// always zero, one, or out of range.
func powhuge(x, y *big.Float) error {
	abs := new(big.Float).Abs(x)
	switch c := abs.Cmp(big.NewFloat(1)); {
	case x.Sign() == 0:
		if y.Signbit() {
			return &DivisionError{X: new(big.Float).Copy(y), Op: "^"}
		}
		x.SetInt64(0)
	case c == 0:
		yi, _ := y.Int(nil)
		if x.Signbit() && yi.Bit(0) == 1 {
			x.SetInt64(-1)
		} else {
			x.SetInt64(1)
		}
	case (c > 0) == (y.Sign() > 0):
		return &RangeError{Op: "^"}
	default:
		x.SetInt64(0)
	}
	return nil
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Float).SetPrec(ctx.prec)
		}
	} else {
		ctx.stack = append(ctx.stack, new(big.Float).SetPrec(ctx.prec))
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future pushes.
func (ctx *Context) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// num gets a possibly cached number from its token.
func (ctx *Context) num(t Token) *big.Float {
	if r := ctx.nums[t]; r != nil {
		return r
	}
	r := t.Float(ctx.prec)
	ctx.nums[t] = r
	return r
}

// Evaluate reduces a postfix token sequence, e.g. from ToPostfix, to its
// value truncated toward zero.
func Evaluate(postfix []Token, env Env, opts ...ContextOption) (*big.Int, error) {
	ctx := NewContext(opts...)
	r := ctx.Eval(&Expr{postfix: postfix}, env)
	return r, ctx.Err()
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, env Env, opts ...ContextOption) (*big.Int, error) {
	e, err := Parse(src)
	if err != nil {
		return nil, err
	}
	ctx := NewContext(opts...)
	r := ctx.Eval(e, env)
	return r, ctx.Err()
}
