package calculator_test

import (
	"errors"
	"testing"

	calculator "github.com/jericho066/casio-calculator"
)

func num(v float64) calculator.Token {
	return calculator.Token{Kind: calculator.KindNumber, Num: v}
}

func op(sym string) calculator.Token {
	return calculator.Token{Kind: calculator.KindOperator, Text: sym}
}

func fun(name string) calculator.Token {
	return calculator.Token{Kind: calculator.KindFunction, Text: name}
}

func con(name string) calculator.Token {
	return calculator.Token{Kind: calculator.KindConstant, Text: name}
}

func vr(letter rune) calculator.Token {
	return calculator.Token{Kind: calculator.KindVariable, Letter: letter}
}

var (
	lparen = calculator.Token{Kind: calculator.KindLParen}
	rparen = calculator.Token{Kind: calculator.KindRParen}
	comma  = calculator.Token{Kind: calculator.KindComma}
)

// sameTokens compares kinds and payloads, ignoring positions and scanned
// literal text.
func sameTokens(got, want []calculator.Token) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		g, w := got[i], want[i]
		if g.Kind != w.Kind || g.Num != w.Num || g.Letter != w.Letter {
			return false
		}
		if g.Kind != calculator.KindNumber && g.Text != w.Text {
			return false
		}
	}
	return true
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []calculator.Token
	}{
		{"num", "42", []calculator.Token{num(42)}},
		{"decimal", "3.14", []calculator.Token{num(3.14)}},
		{"trailing-dot", "5.", []calculator.Token{num(5)}},
		{"add", "2+3", []calculator.Token{num(2), op("+"), num(3)}},
		{"ascii-mul", "2*3", []calculator.Token{num(2), op("×"), num(3)}},
		{"ascii-div", "6/2", []calculator.Token{num(6), op("÷"), num(2)}},
		{"unicode-ops", "6÷2×3", []calculator.Token{num(6), op("÷"), num(2), op("×"), num(3)}},
		{"pow", "2^9", []calculator.Token{num(2), op("^"), num(9)}},
		{"factorial", "5!", []calculator.Token{num(5), op("!")}},
		{"whitespace", " 2 + 3 ", []calculator.Token{num(2), op("+"), num(3)}},

		{"leading-minus", "-3+5", []calculator.Token{num(-1), op("×"), num(3), op("+"), num(5)}},
		{"minus-after-op", "5*-2", []calculator.Token{num(5), op("×"), num(-1), op("×"), num(2)}},
		{"minus-after-paren", "(-3)", []calculator.Token{lparen, num(-1), op("×"), num(3), rparen}},
		{"minus-after-comma", "pow(2,-3)", []calculator.Token{
			fun("pow"), lparen, num(2), comma, num(-1), op("×"), num(3), rparen,
		}},
		{"binary-minus", "5-2", []calculator.Token{num(5), op("-"), num(2)}},
		{"minus-after-bang", "3!-2", []calculator.Token{num(3), op("!"), op("-"), num(2)}},

		{"func", "sin(30)", []calculator.Token{fun("sin"), lparen, num(30), rparen}},
		{"func-longest", "sinh(1)", []calculator.Token{fun("sinh"), lparen, num(1), rparen}},
		{"func-inverse", "asinh(1)", []calculator.Token{fun("asinh"), lparen, num(1), rparen}},
		{"root-sign", "√(2)", []calculator.Token{fun("sqrt"), lparen, num(2), rparen}},
		{"cbrt-sign", "∛(8)", []calculator.Token{fun("cbrt"), lparen, num(8), rparen}},
		{"ncr-alias", "nCr(5,2)", []calculator.Token{
			fun("ncr"), lparen, num(5), comma, num(2), rparen,
		}},

		{"pi", "π", []calculator.Token{con("pi")}},
		{"pi-ascii", "pi", []calculator.Token{con("pi")}},
		{"euler", "e", []calculator.Token{con("e")}},

		{"variable", "X", []calculator.Token{vr('X')}},
		{"variables", "A+B", []calculator.Token{vr('A'), op("+"), vr('B')}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := calculator.Tokenize(c.src)
			if err != nil {
				t.Fatalf("%q failed to tokenize: %v", c.src, err)
			}
			if !sameTokens(got, c.want) {
				t.Errorf("%q: wrong tokens:\nwant %v\ngot  %v", c.src, c.want, got)
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		pos  int
	}{
		{"unknown-rune", "2@3", 2},
		{"double-dot", "1..2", 1},
		{"bare-dot", ".", 1},
		{"unknown-late", "sin(30)#", 8},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := calculator.Tokenize(c.src)
			if err == nil {
				t.Fatalf("%q tokenized successfully", c.src)
			}
			var lerr *calculator.LexError
			if !errors.As(err, &lerr) {
				t.Fatalf("%q: error is %T, not LexError: %v", c.src, err, err)
			}
			if lerr.Pos() != c.pos {
				t.Errorf("%q: error at %d, want %d", c.src, lerr.Pos(), c.pos)
			}
		})
	}
}
