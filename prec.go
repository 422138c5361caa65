package calc

// Precedence ranks operators for ToPostfix. Higher ranks bind more tightly.
type Precedence map[string]int

// DefaultPrecedence is the usual order of operations.
var DefaultPrecedence = Precedence{
	"+": 1,
	"-": 1,
	"*": 2,
	"/": 2,
	"^": 3,
}

// Rank returns the rank of op, or -1 if op is not in the table. Brackets are
// never in the table, so no operator ranks at or below them.
func (p Precedence) Rank(op string) int {
	r, ok := p[op]
	if !ok {
		return -1
	}
	return r
}

// ShouldPop reports whether top must leave the operator stack before
// candidate is pushed. Ties pop, which makes every operator left-associative:
// 2^3^2 is (2^3)^2.
func (p Precedence) ShouldPop(candidate, top Token) bool {
	return p.Rank(candidate.text) <= p.Rank(top.text)
}
