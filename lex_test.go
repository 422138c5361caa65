package calc

import (
	"errors"
	"testing"
)

func toks(s ...string) []Token {
	if len(s) == 0 {
		return nil
	}
	v := make([]Token, len(s))
	for i, t := range s {
		v[i] = NewToken(t)
	}
	return v
}

func sameTokens(a, b []Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestClassify(t *testing.T) {
	cases := []struct {
		text string
		kind Kind
	}{
		{"0", Number},
		{"9876543210", Number},
		{"-5", Number},
		{"+5", Number},
		{"2.5", Number},
		{".5", Number},
		{"5.", Number},
		{".", Malformed},
		{"-", Operator},
		{"+", Operator},
		{"*", Operator},
		{"/", Operator},
		{"^", Operator},
		{"(", LeftBracket},
		{")", RightBracket},
		{"a", Ident},
		{"abc", Ident},
		{"π", Ident},
		{"a1", Malformed},
		{"1a", Malformed},
		{"1.2.3", Malformed},
		{"--5", Malformed},
		{"$", Malformed},
		{"", Malformed},
		{"_x", Malformed},
	}
	for _, c := range cases {
		tok := NewToken(c.text)
		if tok.Kind() != c.kind {
			t.Errorf("%q classified as %v, want %v", c.text, tok.Kind(), c.kind)
		}
		if tok.Text() != c.text {
			t.Errorf("%q has text %q", c.text, tok.Text())
		}
	}
}

func TestTokenEquality(t *testing.T) {
	m := map[Token]int{NewToken("x"): 1}
	m[NewToken("x")]++
	if m[NewToken("x")] != 2 || len(m) != 1 {
		t.Errorf("tokens with equal text are distinct map keys: %v", m)
	}
	if NewToken("x") == NewToken("y") {
		t.Error("tokens with different text are equal")
	}
}

func TestTokenFloat(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"0", 0},
		{"42", 42},
		{"-42", -42},
		{"+7", 7},
		{"2.5", 2.5},
		{".25", 0.25},
	}
	for _, c := range cases {
		r := NewToken(c.text).Float(64)
		if r == nil {
			t.Errorf("%q gave nil", c.text)
			continue
		}
		if f, _ := r.Float64(); f != c.want {
			t.Errorf("%q gave %g, want %g", c.text, f, c.want)
		}
	}
	if r := NewToken("x").Float(64); r != nil {
		t.Errorf("identifier gave value %v", r)
	}
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []Token
	}{
		{"empty", "", nil},
		{"spaces", " \t \r\n ", nil},
		{"num", "1", toks("1")},
		{"add", "1+2", toks("1", "+", "2")},
		{"spaced", "  12 +   34 ", toks("12", "+", "34")},
		{"neg", "-5", toks("-5")},
		{"plus", "+5", toks("+5")},
		{"neg-neg", "--5", toks("+5")},
		{"plus-neg", "+-3", toks("-3")},
		{"three", "---4", toks("-4")},
		{"plus-plus", "++5", toks("+5")},
		{"fold-binary", "2--3", toks("2", "+", "3")},
		{"fold-run", "1 +++ 2", toks("1", "+", "2")},
		{"fold-mixed", "1 -+-+- 2", toks("1", "-", "2")},
		{"no-fold-across-space", "2 - -3", toks("2", "-", "-3")},
		{"spaced-signs", "1 - - - 2", toks("1", "-", "-", "-", "2")},
		{"after-op", "3*-2", toks("3", "*", "-2")},
		{"after-bracket", "(-2)", toks("(", "-2", ")")},
		{"after-ident", "a-3", toks("a", "-", "3")},
		{"after-num-space", "2 -3", toks("2", "-", "3")},
		{"sign-space", "- 3", toks("-", "3")},
		{"sign-bracket", "-(1)", toks("-", "(", "1", ")")},
		{"decimal", "2.5*x", toks("2.5", "*", "x")},
		{"signed-decimal", "-.5", toks("-.5")},
		{"pow", "2^3^2", toks("2", "^", "3", "^", "2")},
		{"brackets", "(1+2)*3", toks("(", "1", "+", "2", ")", "*", "3")},
		{"malformed", "a1 + $", toks("a1", "+", "$")},
		{"vars", "a + b * c", toks("a", "+", "b", "*", "c")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Tokenize(c.src)
			if err != nil {
				t.Fatalf("%q: unexpected error %v", c.src, err)
			}
			if !sameTokens(got, c.want) {
				t.Errorf("%q: want %q, got %q", c.src, c.want, got)
			}
		})
	}
}

func TestTokenizeSignEquivalence(t *testing.T) {
	cases := [][2]string{
		{"--5", "+5"},
		{"+-3", "-3"},
		{"---4", "-4"},
		{"1--2", "1+2"},
		{"1-+-2", "1+2"},
	}
	for _, c := range cases {
		a, err := Tokenize(c[0])
		if err != nil {
			t.Fatalf("%q: %v", c[0], err)
		}
		b, err := Tokenize(c[1])
		if err != nil {
			t.Fatalf("%q: %v", c[1], err)
		}
		if !sameTokens(a, b) {
			t.Errorf("%q gave %q but %q gave %q", c[0], a, c[1], b)
		}
	}
}

func TestTokenizeRoundTrip(t *testing.T) {
	cases := []string{
		"1+2",
		"--5",
		"2 - -3",
		"(-2)^3",
		"3*-2",
		"- 3",
		"a1+$",
		"(1+2)*(3 - -4)/x",
		"1 -+-+- 2",
		"2.5*-.5",
	}
	for _, src := range cases {
		a, err := Tokenize(src)
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		j := Join(a)
		b, err := Tokenize(j)
		if err != nil {
			t.Fatalf("%q: %v", j, err)
		}
		if !sameTokens(a, b) {
			t.Errorf("%q gave %q, but rejoined %q gave %q", src, a, j, b)
		}
	}
}

func TestTokenizeAssignment(t *testing.T) {
	cases := []struct {
		src  string
		want []Token
	}{
		{"a = 5", toks("a", "5")},
		{"a=b", toks("a", "b")},
		{"  x  =  -3 ", toks("x", "-3")},
		{"a = = b", toks("a", "", "b")},
		{"a1 = 2", toks("a1", "2")},
		{"a =", toks("a", "")},
	}
	for _, c := range cases {
		got := TokenizeAssignment(c.src)
		if !sameTokens(got, c.want) {
			t.Errorf("%q: want %q, got %q", c.src, c.want, got)
		}
	}
}

func TestFoldSign(t *testing.T) {
	cases := []struct {
		a, b rune
		r    rune
		ok   bool
	}{
		{'-', '-', '+', true},
		{'+', '+', '+', true},
		{'+', '-', '-', true},
		{'-', '+', '-', true},
		{'+', '*', 0, false},
		{'^', '-', 0, false},
	}
	for _, c := range cases {
		r, ok := foldSign(c.a, c.b)
		if r != c.r || ok != c.ok {
			t.Errorf("%c%c: want %q %t, got %q %t", c.a, c.b, c.r, c.ok, r, ok)
		}
	}
}

func TestSignError(t *testing.T) {
	var err error = &SignError{Col: 3, Text: "+*"}
	if !errors.Is(err, ErrMalformedSign) {
		t.Errorf("%v does not match ErrMalformedSign", err)
	}
	var ie InputError
	if !errors.As(err, &ie) || ie.Pos() != 3 {
		t.Errorf("%v has wrong position", err)
	}
}
