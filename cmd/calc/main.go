// Command calc evaluates calculator expressions from the command line.
//
// With no mode flags, each argument (or each stdin line, if no arguments
// are given) is evaluated and printed. -solve treats each expression as
// f = 0 and solves for the given variable; -integrate computes the definite
// integral of each expression over [-from, -to].
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	calculator "github.com/jericho066/casio-calculator"
)

func main() {
	logger := zap.Must(zap.NewDevelopment())
	defer logger.Sync()
	log := logger.Sugar()

	var (
		angle   string
		verb    string
		given   [][2]string
		solve   string
		guess   float64
		method  string
		lo, hi  float64
		bounded bool
		integ   bool
		from    float64
		to      float64
		ivar    string
		tol     float64
		iter    int
		depth   int
	)
	addgiven := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "letter=value", not %q`, s)
		}
		given = append(given, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	setbound := func(p *float64) func(string) error {
		return func(s string) error {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return err
			}
			*p = v
			bounded = true
			return nil
		}
	}
	flag.StringVar(&angle, "angle", "deg", "angle unit: deg, rad, or grad")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.Func("given", "letter=value variable definition (any number of times)", addgiven)
	flag.StringVar(&solve, "solve", "", "solve each expression = 0 for this variable")
	flag.Float64Var(&guess, "guess", 0, "initial guess for -solve")
	flag.StringVar(&method, "method", "brent", "root-finding method: brent, bisection, newton, or secant")
	flag.Func("lo", "lower bracket bound for -solve", setbound(&lo))
	flag.Func("hi", "upper bracket bound for -solve", setbound(&hi))
	flag.BoolVar(&integ, "integrate", false, "integrate each expression over [-from, -to]")
	flag.Float64Var(&from, "from", 0, "lower integration bound")
	flag.Float64Var(&to, "to", 1, "upper integration bound")
	flag.StringVar(&ivar, "var", "x", "integration variable")
	flag.Float64Var(&tol, "tol", 0, "tolerance for -solve and -integrate (default 1e-8)")
	flag.IntVar(&iter, "iter", 0, "iteration budget for -solve (default 100)")
	flag.IntVar(&depth, "depth", 0, "recursion depth budget for -integrate (default 20)")
	flag.Parse()

	unit, err := angleUnit(angle)
	if err != nil {
		log.Fatal(err)
	}
	ctx := calculator.NewContext(calculator.Angle(unit))
	for _, d := range given {
		name := []rune(d[0])
		if len(name) != 1 {
			log.Fatalf("variable names are single letters, not %q", d[0])
		}
		v, err := calculator.Evaluate(d[1], ctx)
		if err != nil {
			log.Fatalf("setting %s: %v", d[0], err)
		}
		ctx.Set(name[0], v)
	}

	exprs := flag.Args()
	if len(exprs) == 0 {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			if s := strings.TrimSpace(sc.Text()); s != "" {
				exprs = append(exprs, s)
			}
		}
		if err := sc.Err(); err != nil {
			log.Fatal(err)
		}
	}

	verb += "\n"
	for _, src := range exprs {
		r, err := run(src, ctx, mode{
			solve: solve, guess: guess, method: method,
			lo: lo, hi: hi, bounded: bounded,
			integ: integ, from: from, to: to, ivar: ivar,
			tol: tol, iter: iter, depth: depth,
		})
		if err != nil {
			log.Errorw("evaluation failed", "expr", src, "error", err)
			continue
		}
		fmt.Printf(verb, r)
	}
}

type mode struct {
	solve       string
	guess       float64
	method      string
	lo, hi      float64
	bounded     bool
	integ       bool
	from, to    float64
	ivar        string
	tol         float64
	iter, depth int
}

func run(src string, ctx *calculator.Context, m mode) (float64, error) {
	switch {
	case m.solve != "":
		name := []rune(m.solve)
		if len(name) != 1 {
			return 0, fmt.Errorf("variable names are single letters, not %q", m.solve)
		}
		mth, err := solveMethod(m.method)
		if err != nil {
			return 0, err
		}
		opt := calculator.SolveOptions{
			Method:        mth,
			Tolerance:     m.tol,
			MaxIterations: m.iter,
		}
		if m.bounded {
			opt.Bounds = &calculator.Interval{A: m.lo, B: m.hi}
		}
		return calculator.Solve(src, name[0], m.guess, ctx, &opt)
	case m.integ:
		name := []rune(m.ivar)
		if len(name) != 1 {
			return 0, fmt.Errorf("variable names are single letters, not %q", m.ivar)
		}
		opt := calculator.IntegrateOptions{
			Tolerance: m.tol,
			MaxDepth:  m.depth,
			Variable:  name[0],
		}
		return calculator.Integrate(src, m.from, m.to, ctx, &opt)
	default:
		return calculator.Evaluate(src, ctx)
	}
}

func angleUnit(s string) (calculator.AngleUnit, error) {
	switch strings.ToLower(s) {
	case "deg", "degrees":
		return calculator.Degrees, nil
	case "rad", "radians":
		return calculator.Radians, nil
	case "grad", "gradians":
		return calculator.Gradians, nil
	default:
		return 0, fmt.Errorf("unknown angle unit %q", s)
	}
}

func solveMethod(s string) (calculator.Method, error) {
	switch strings.ToLower(s) {
	case "brent":
		return calculator.Brent, nil
	case "bisection":
		return calculator.Bisection, nil
	case "newton":
		return calculator.Newton, nil
	case "secant":
		return calculator.Secant, nil
	default:
		return 0, fmt.Errorf("unknown method %q", s)
	}
}
