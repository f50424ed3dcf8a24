package calculator_test

import (
	"fmt"

	calculator "github.com/jericho066/casio-calculator"
)

func ExampleEvaluate() {
	ctx := calculator.NewContext(calculator.SetVar('A', 10))
	r, err := calculator.Evaluate("2+3×A", ctx)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(r)
	// Output: 32
}

func ExampleEvalString() {
	r, err := calculator.EvalString("sin(π÷6)", calculator.Angle(calculator.Radians))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%.1f\n", r)
	// Output: 0.5
}

func ExampleSolve() {
	r, err := calculator.Solve("X×X-4", 'X', 1, nil, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%.4f\n", r)
	// Output: 2.0000
}

func ExampleIntegrate() {
	r, err := calculator.Integrate("x^2", 0, 3, nil, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%.1f\n", r)
	// Output: 9.0
}
