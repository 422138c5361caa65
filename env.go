package calc

import "sort"

// Env resolves variable names during evaluation. Values are the text of a
// number, or the name of another variable to be resolved in turn.
type Env interface {
	Lookup(name string) (value string, ok bool)
}

// Vars is a simple Env backed by a map.
type Vars map[string]string

// Lookup returns the stored text of a variable.
func (v Vars) Lookup(name string) (string, bool) {
	s, ok := v[name]
	return s, ok
}

// Assign sets name to value. If value is itself the name of a variable in v,
// name receives that variable's current value rather than a reference to it,
// so later changes to the other variable do not affect name.
func (v Vars) Assign(name, value string) {
	if s, ok := v[value]; ok {
		value = s
	}
	v[name] = value
}

// Resolve follows stored names from name until it reaches a value that is
// not the name of another variable. The result is false if some name along
// the way is missing or the names form a cycle.
func (v Vars) Resolve(name string) (string, bool) {
	seen := map[string]bool{}
	for {
		s, ok := v[name]
		if !ok || seen[name] {
			return "", false
		}
		seen[name] = true
		if !NewToken(s).IsIdent() {
			return s, true
		}
		name = s
	}
}

// Names returns the variable names in sorted order.
func (v Vars) Names() []string {
	names := make([]string, 0, len(v))
	for k := range v {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
