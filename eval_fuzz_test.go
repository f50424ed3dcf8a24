package calculator_test

import (
	"math"
	"testing"

	calculator "github.com/jericho066/casio-calculator"
)

func FuzzEval(f *testing.F) {
	f.Add("2+3*4", 1.0)
	f.Add("x*x-4", 2.0)
	f.Add("sin(x)^2+cos(x)^2", 0.25)
	f.Add("ln(x)", -1.0)
	f.Add("x/0", 3.0)
	f.Add("x!", 5.5)
	f.Add("1/(x-1)", 1.0)
	f.Add("√(2)×∛(8)", 0.0)
	f.Fuzz(func(t *testing.T, src string, x float64) {
		e, err := calculator.Parse(src)
		if err != nil {
			return
		}
		ctx := calculator.NewContext(calculator.SetVar('x', x))
		r1, err1 := ctx.Eval(e)
		// Evaluation must be repeatable: the stack resets between calls
		// and nothing leaks from one evaluation into the next.
		r2, err2 := ctx.Eval(e)
		if (err1 == nil) != (err2 == nil) {
			t.Fatalf("%q: inconsistent errors: %v vs %v", src, err1, err2)
		}
		if err1 != nil {
			return
		}
		if r1 != r2 && !(math.IsNaN(r1) && math.IsNaN(r2)) {
			t.Errorf("%q: inconsistent results: %g vs %g", src, r1, r2)
		}
	})
}
