package calc

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
)

// Error kinds. Every error returned by this package matches exactly one of
// these with errors.Is.
var (
	ErrMalformedSign       = errors.New("malformed sign")
	ErrUnbalancedBrackets  = errors.New("unbalanced brackets")
	ErrMalformedExpression = errors.New("malformed expression")
	ErrDivisionByZero      = errors.New("division by zero")
	ErrUnknownVariable     = errors.New("unknown variable")
)

// BracketError is an error indicating an unmatched bracket in the input. It
// implements InputError.
type BracketError struct {
	// Index is the 1-based position of the offending token in the token
	// sequence.
	Index int
	// Bracket is the unmatched bracket.
	Bracket string
}

func (err *BracketError) Error() string {
	if err.Bracket == CloseBracket {
		return errpos(err.Index, "close bracket with no open bracket")
	}
	return errpos(err.Index, "open bracket with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Index
}

func (err *BracketError) Unwrap() error {
	return ErrUnbalancedBrackets
}

// ExprError is an error indicating a postfix sequence that does not reduce to
// a single value. It implements InputError.
type ExprError struct {
	// Index is the 1-based position of the postfix token at which the problem
	// was found. It is one past the last token when the problem is the number
	// of values left over.
	Index int
	// Token is the offending token, if there is one.
	Token string
	// Reason describes the problem.
	Reason string
}

func (err *ExprError) Error() string {
	if err.Token == "" {
		return errpos(err.Index, err.Reason)
	}
	return errpos(err.Index, err.Reason+" "+strconv.Quote(err.Token))
}

func (err *ExprError) Pos() int {
	return err.Index
}

func (err *ExprError) Unwrap() error {
	return ErrMalformedExpression
}

// NameError is an error from a lookup for a variable that is missing from the
// environment.
type NameError struct {
	// Name is the name that was missing.
	Name string
	// Cycle is set when the name's stored value refers back to itself through
	// other variables.
	Cycle bool
}

func (err *NameError) Error() string {
	if err.Cycle {
		return "variable refers to itself: " + strconv.Quote(err.Name)
	}
	return "undefined variable: " + strconv.Quote(err.Name)
}

func (err *NameError) Unwrap() error {
	return ErrUnknownVariable
}

// DivisionError is an error from dividing by zero. Evaluation stops at the
// first one.
type DivisionError struct {
	// X is the dividend for /, or the negative exponent for ^.
	X *big.Float
	// Op is the operator that divided, either / or ^.
	Op string
}

func (err *DivisionError) Error() string {
	if err.Op == "^" {
		return "division by zero: 0 ^ " + err.X.String()
	}
	return "division by zero: " + err.X.String() + " " + err.Op + " 0"
}

func (err *DivisionError) Unwrap() error {
	return ErrDivisionByZero
}

// DomainError is an error returned when an operator is applied to arguments
// outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X *big.Float
	// Op is the operator.
	Op string
}

func (err *DomainError) Error() string {
	return err.X.String() + " outside domain of " + err.Op
}

func (err *DomainError) Unwrap() error {
	return ErrMalformedExpression
}

// RangeError is an error returned when a value reaches 2^MaxBits in
// magnitude.
type RangeError struct {
	// Op is the operator that overflowed, or the literal or variable name
	// whose value is too large.
	Op string
}

func (err *RangeError) Error() string {
	if len(err.Op) == 1 && strings.Contains(Operators, err.Op) {
		return "result of " + err.Op + " out of range"
	}
	return strconv.Quote(err.Op) + " out of range"
}

func (err *RangeError) Unwrap() error {
	return ErrMalformedExpression
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information.
type InputError interface {
	error
	// Pos returns the position of the error. For SignError it counts runes
	// of the input; for the others it counts tokens.
	Pos() int
}

var (
	_ InputError = (*SignError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*ExprError)(nil)
)
