package repl

import (
	"fmt"
	"strings"

	"github.com/zephyrtronium/calc"
)

// command is a slash command. Commands are matched by their first word.
type command struct {
	name string
	// arg describes the argument, or is empty if the command takes none.
	arg  string
	help string
	run  func(s *Session, arg string) Status
}

// commands is searched in order. It is filled in init because /help lists
// it.
var commands []command

func init() {
	commands = []command{
		{name: "/exit", help: "quit", run: (*Session).exit},
		{name: "/help", help: "show this help", run: (*Session).help},
		{name: "/vars", help: "list variables", run: (*Session).listVars},
		{name: "/del", arg: "NAME...", help: "delete variables", run: (*Session).del},
		{name: "/postfix", arg: "EXPR", help: "show an expression in postfix order", run: (*Session).postfix},
		{name: "/read", arg: "FILE", help: "load variables from a YAML file", run: (*Session).read},
		{name: "/write", arg: "FILE", help: "save variables to a YAML file", run: (*Session).write},
	}
}

// command runs a line starting with a slash.
func (s *Session) command(line string) Status {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	for _, c := range commands {
		if c.name != name {
			continue
		}
		switch {
		case c.arg == "" && arg != "":
			// Commands without arguments only match exactly.
		case c.arg != "" && arg == "":
			s.fail("Usage: " + c.name + " " + c.arg)
			return Continue
		default:
			s.log.Debug().Str("command", name).Str("arg", arg).Msg("command")
			return c.run(s, arg)
		}
		break
	}
	s.fail(msgUnknownCmd)
	return Continue
}

func (s *Session) exit(string) Status {
	fmt.Fprintln(s.out, "Bye!")
	return Exit
}

func (s *Session) help(string) Status {
	var b strings.Builder
	b.WriteString("The smart calculator\n")
	b.WriteString("Enter an expression like 2 + 3 * (4 - 1) or an assignment like a = 5.\n")
	b.WriteString("Commands:\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "  %-16s %s\n", strings.TrimSpace(c.name+" "+c.arg), c.help)
	}
	fmt.Fprint(s.out, b.String())
	return Continue
}

func (s *Session) listVars(string) Status {
	for _, k := range s.vars.Names() {
		fmt.Fprintf(s.out, "%s = %s\n", k, s.vars[k])
	}
	return Continue
}

func (s *Session) del(arg string) Status {
	for _, k := range strings.Fields(arg) {
		if _, ok := s.vars[k]; !ok {
			s.fail(msgUnknownVar + " " + k)
			continue
		}
		delete(s.vars, k)
	}
	return Continue
}

func (s *Session) postfix(arg string) Status {
	e, err := calc.Parse(arg)
	if err != nil {
		s.log.Debug().Err(err).Str("expr", arg).Msg("parse failed")
		s.fail(message(err))
		return Continue
	}
	fmt.Fprintln(s.out, e)
	return Continue
}

func (s *Session) read(arg string) Status {
	v, err := ReadVarsFile(arg)
	if err != nil {
		s.log.Error().Err(err).Str("file", arg).Msg("reading variables")
		s.fail(err.Error())
		return Continue
	}
	s.Load(v)
	s.log.Info().Str("file", arg).Int("count", len(v)).Msg("loaded variables")
	return Continue
}

func (s *Session) write(arg string) Status {
	if err := WriteVarsFile(arg, s.vars); err != nil {
		s.log.Error().Err(err).Str("file", arg).Msg("writing variables")
		s.fail(err.Error())
		return Continue
	}
	s.log.Info().Str("file", arg).Int("count", len(s.vars)).Msg("saved variables")
	return Continue
}
