// Package repl runs an interactive calculator session on top of package calc.
//
// A session reads one line at a time. Each line is a command like /help, an
// assignment like a = 5, a variable name to print, or an expression to
// evaluate. The session owns the variable environment.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/zephyrtronium/calc"
)

// Status tells the caller whether to keep reading input.
type Status int

const (
	// Continue means the session wants another line.
	Continue Status = iota
	// Exit means the session is over.
	Exit
)

// Messages written for failed input.
const (
	msgInvalidExpr   = "Invalid expression"
	msgInvalidIdent  = "Invalid identifier"
	msgInvalidAssign = "Invalid assignment"
	msgUnknownVar    = "Unknown variable"
	msgUnknownCmd    = "Unknown command"
	msgDivZero       = "Division by zero!"
)

// Options configures a Session.
type Options struct {
	// Out receives results and diagnostics. If nil, output is discarded.
	Out io.Writer
	// Logger receives debug traces of evaluation. The zero Logger discards
	// everything.
	Logger zerolog.Logger
	// Prec is the precision of calculations in bits. Zero means 64.
	Prec uint
	// Color enables coloured diagnostics.
	Color bool
}

// Session is a calculator session. It is not safe for concurrent use.
type Session struct {
	out  io.Writer
	log  zerolog.Logger
	vars calc.Vars
	ctx  *calc.Context
	diag *color.Color
}

// NewSession creates a session with no variables.
func NewSession(opts Options) *Session {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	diag := color.New(color.FgRed)
	if !opts.Color {
		diag.DisableColor()
	}
	return &Session{
		out:  out,
		log:  opts.Logger,
		vars: calc.Vars{},
		ctx:  calc.NewContext(calc.Prec(opts.Prec)),
		diag: diag,
	}
}

// MaxLine is the longest input line Run accepts. Longer lines are reported
// as invalid expressions and skipped.
const MaxLine = 1 << 20

// inputLine is one line read by Run.
type inputLine struct {
	text string
	long bool
}

// Run handles lines from r until the input ends, a line asks to exit, or ctx
// is cancelled. The result is nil at the end of input or on exit. Run returns
// as soon as ctx is cancelled, even while waiting for input.
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := make(chan inputLine)
	errc := make(chan error, 1)
	go readLines(ctx, bufio.NewReader(r), lines, errc)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				return <-errc
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if l.long {
				s.log.Debug().Int("max", MaxLine).Msg("line too long")
				s.fail(msgInvalidExpr)
				continue
			}
			if s.Handle(l.text) == Exit {
				return nil
			}
		}
	}
}

// readLines sends lines from r until the input ends or ctx is done, then
// sends the read error, or nil at the end of input, and closes lines.
func readLines(ctx context.Context, r *bufio.Reader, lines chan<- inputLine, errc chan<- error) {
	defer close(lines)
	for {
		l, err := readLine(r)
		if err != nil {
			if err == io.EOF {
				err = nil
			}
			errc <- err
			return
		}
		select {
		case lines <- l:
		case <-ctx.Done():
			errc <- ctx.Err()
			return
		}
	}
}

// readLine reads one line without its line ending. A line longer than
// MaxLine is consumed and reported as long without its text.
func readLine(r *bufio.Reader) (inputLine, error) {
	var l inputLine
	var b []byte
	for {
		chunk, more, err := r.ReadLine()
		if err != nil {
			return inputLine{}, err
		}
		if len(b)+len(chunk) > MaxLine {
			l.long = true
		}
		if !l.long {
			b = append(b, chunk...)
		}
		if !more {
			break
		}
	}
	if !l.long {
		l.text = string(b)
	}
	return l, nil
}

// Handle processes a single line of input.
func (s *Session) Handle(line string) Status {
	line = strings.TrimSpace(line)
	s.log.Debug().Str("line", line).Msg("input")
	switch {
	case line == "":
		return Continue
	case strings.HasPrefix(line, "/"):
		return s.command(line)
	case strings.Contains(line, "="):
		s.assign(line)
		return Continue
	case calc.NewToken(line).IsIdent():
		s.show(line)
		return Continue
	default:
		s.evaluate(line)
		return Continue
	}
}

// Vars returns a copy of the session's variables.
func (s *Session) Vars() calc.Vars {
	v := make(calc.Vars, len(s.vars))
	for k, x := range s.vars {
		v[k] = x
	}
	return v
}

// Load adds variables to the session, replacing any with the same names.
// Values are stored as given, so a value naming another variable is resolved
// when it is used.
func (s *Session) Load(v calc.Vars) {
	for k, x := range v {
		s.vars[k] = x
	}
}

// show prints the value of a single variable.
func (s *Session) show(name string) {
	v, ok := s.vars.Resolve(name)
	if !ok {
		s.fail(msgUnknownVar)
		return
	}
	fmt.Fprintln(s.out, v)
}

// evaluate prints the result of an expression.
func (s *Session) evaluate(src string) {
	e, err := calc.Parse(src)
	if err != nil {
		s.log.Debug().Err(err).Str("expr", src).Msg("parse failed")
		s.fail(message(err))
		return
	}
	s.log.Debug().Str("expr", src).Stringer("postfix", e).Msg("parsed")
	r := s.ctx.Eval(e, s.vars)
	if err := s.ctx.Err(); err != nil {
		s.log.Debug().Err(err).Str("expr", src).Msg("evaluation failed")
		s.fail(message(err))
		return
	}
	fmt.Fprintln(s.out, r)
}

// fail writes a diagnostic.
func (s *Session) fail(msg string) {
	s.diag.Fprintln(s.out, msg)
}

// message maps an evaluation error to the line shown to the user.
func message(err error) string {
	switch {
	case errors.Is(err, calc.ErrDivisionByZero):
		return msgDivZero
	case errors.Is(err, calc.ErrUnknownVariable):
		return msgUnknownVar
	default:
		return msgInvalidExpr
	}
}
