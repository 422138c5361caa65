package repl

import (
	"github.com/zephyrtronium/calc"
)

// assignRule rejects a malformed assignment. Rules are checked in order and
// the first that fails decides the message.
type assignRule struct {
	msg   string
	fails func(toks []calc.Token, vars calc.Vars) bool
}

var assignRules = []assignRule{
	{
		msg: msgInvalidIdent,
		fails: func(toks []calc.Token, vars calc.Vars) bool {
			return !toks[0].IsIdent()
		},
	},
	{
		msg: msgInvalidAssign,
		fails: func(toks []calc.Token, vars calc.Vars) bool {
			return len(toks) != 2 || !toks[1].IsNumber() && !toks[1].IsIdent()
		},
	},
	{
		msg: msgUnknownVar,
		fails: func(toks []calc.Token, vars calc.Vars) bool {
			_, ok := vars[toks[1].Text()]
			return toks[1].IsIdent() && !ok
		},
	},
}

// checkAssignment returns the message for the first rule toks break, or the
// empty string if toks is a valid assignment.
func checkAssignment(toks []calc.Token, vars calc.Vars) string {
	for _, r := range assignRules {
		if r.fails(toks, vars) {
			return r.msg
		}
	}
	return ""
}

// assign handles a line containing =.
func (s *Session) assign(line string) {
	toks := calc.TokenizeAssignment(line)
	if msg := checkAssignment(toks, s.vars); msg != "" {
		s.log.Debug().Str("line", line).Str("reason", msg).Msg("rejected assignment")
		s.fail(msg)
		return
	}
	name, value := toks[0].Text(), toks[1].Text()
	s.vars.Assign(name, value)
	s.log.Debug().Str("name", name).Str("value", s.vars[name]).Msg("assigned")
}
