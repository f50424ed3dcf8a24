package calculator_test

import (
	"testing"

	calculator "github.com/jericho066/casio-calculator"
)

func FuzzParse(f *testing.F) {
	f.Add("2+3*4")
	f.Add("(2+3)*4")
	f.Add("2^3^2")
	f.Add("-3+5")
	f.Add("sin(30)+cos(60)")
	f.Add("pow(2,-3)")
	f.Add("√(2)×∛(8)")
	f.Add("5!-nCr(5,2)")
	f.Add("π*e")
	f.Add("((((")
	f.Add("))))")
	f.Add("1,,2")
	f.Fuzz(func(t *testing.T, src string) {
		toks, err := calculator.Tokenize(src)
		if err != nil {
			return
		}
		rpn, err := calculator.ParseRPN(toks)
		if err != nil {
			return
		}
		// Whatever parses must contain only evaluable token kinds.
		for _, tok := range rpn {
			switch tok.Kind {
			case calculator.KindNumber, calculator.KindOperator, calculator.KindFunction,
				calculator.KindConstant, calculator.KindVariable:
			default:
				t.Errorf("%q: %v token in RPN output", src, tok.Kind)
			}
		}
	})
}
