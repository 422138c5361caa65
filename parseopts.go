package calc

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type tableopt Precedence

// parsectx holds general data for parsing.
type parsectx struct {
	// prec ranks operators for the postfix conversion.
	prec Precedence
}

// WithPrecedence replaces the operator precedence table. Operators missing
// from p rank below all others.
func WithPrecedence(p Precedence) ParseOption {
	return tableopt(p)
}

func (o tableopt) parseOption(p parsectx) parsectx {
	p.prec = Precedence(o)
	return p
}
