package calculator_test

import (
	"errors"
	"testing"

	calculator "github.com/jericho066/casio-calculator"
)

func TestParseRPN(t *testing.T) {
	cases := []struct {
		name string
		src  string
		rpn  string
	}{
		{"num", "7", "7"},
		{"precedence", "2+3*4", "2 3 4 × +"},
		{"parens", "(2+3)*4", "2 3 + 4 ×"},
		{"left-assoc", "8-3-2", "8 3 - 2 -"},
		{"left-assoc-div", "8/4/2", "8 4 ÷ 2 ÷"},
		{"right-assoc", "2^3^2", "2 3 2 ^ ^"},
		{"mixed", "2*3^2", "2 3 2 ^ ×"},
		{"unary-minus", "-3+5", "-1 3 × 5 +"},
		{"unary-pow", "-2^2", "-1 2 2 ^ ×"},
		{"func", "sin(30)", "30 sin"},
		{"func-expr", "sin(1+2)", "1 2 + sin"},
		{"func-nested", "sin(cos(1))", "1 cos sin"},
		{"two-arg", "pow(2,10)", "2 10 pow"},
		{"two-arg-exprs", "pow(1+1,3*2)", "1 1 + 3 2 × pow"},
		{"factorial", "3!+1", "3 ! 1 +"},
		{"factorial-group", "(2+3)!", "2 3 + !"},
		{"constant", "2*π", "2 pi ×"},
		{"variable", "X+1", "X 1 +"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := calculator.Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if got := e.String(); got != c.rpn {
				t.Errorf("%q: wrong RPN: want %q, got %q", c.src, c.rpn, got)
			}
		})
	}
}

func TestParseBracketErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"unclosed", "(2+3"},
		{"unopened", "2+3)"},
		{"unclosed-func", "sin(30"},
		{"extra-close", "sin(30))"},
		{"nested", "((1+2)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := calculator.Parse(c.src)
			if err == nil {
				t.Fatalf("%q parsed successfully", c.src)
			}
			var berr *calculator.BracketError
			if !errors.As(err, &berr) {
				t.Fatalf("%q: error is %T, not BracketError: %v", c.src, err, err)
			}
		})
	}
}

func TestParseSeparatorError(t *testing.T) {
	for _, src := range []string{"1,2", ",1"} {
		_, err := calculator.Parse(src)
		if err == nil {
			t.Fatalf("%q parsed successfully", src)
		}
		var serr *calculator.SeparatorError
		if !errors.As(err, &serr) {
			t.Fatalf("%q: error is %T, not SeparatorError: %v", src, err, err)
		}
	}
}

func TestExprVars(t *testing.T) {
	e, err := calculator.Parse("X*Y+X-A")
	if err != nil {
		t.Fatal(err)
	}
	want := []rune{'X', 'Y', 'A'}
	got := e.Vars()
	if len(got) != len(want) {
		t.Fatalf("wrong vars: want %q, got %q", string(want), string(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("wrong vars: want %q, got %q", string(want), string(got))
		}
	}
}
