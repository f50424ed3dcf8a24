package calculator

import (
	"fmt"
	"math"
	"strconv"
)

// Func is a real-valued function of one variable, as the root finders and
// the integrator consume it. Implementations backed by expression
// evaluation report domain and binding failures through the error.
type Func func(x float64) (float64, error)

// Method selects a root-finding algorithm for Solve.
type Method int

const (
	// Brent is the default: bracketed, with inverse quadratic interpolation
	// and a guaranteed bisection fallback.
	Brent Method = iota
	// Bisection halves a sign-change bracket until it is tight enough.
	Bisection
	// Newton iterates x - f(x)/f'(x) from the initial guess.
	Newton
	// Secant is Newton with the derivative estimated from the last two
	// iterates.
	Secant
)

func (m Method) String() string {
	switch m {
	case Brent:
		return "brent"
	case Bisection:
		return "bisection"
	case Newton:
		return "newton"
	case Secant:
		return "secant"
	default:
		return "Method(" + strconv.Itoa(int(m)) + ")"
	}
}

// Interval is a closed interval [A, B].
type Interval struct {
	A, B float64
}

// SolveOptions configures Solve. The zero value selects Brent's method with
// automatic bracket search, tolerance 1e-8, and 100 iterations.
type SolveOptions struct {
	// Method is the root-finding algorithm.
	Method Method
	// Bounds, if non-nil, brackets the search. Brent and Bisection use it
	// as their bracket; Secant takes its two starting points from it.
	Bounds *Interval
	// Tolerance is the convergence tolerance on |f(x)| or the step size.
	// Zero means 1e-8.
	Tolerance float64
	// MaxIterations bounds the iteration count. Zero means 100.
	MaxIterations int
	// Derivative, if non-nil, is used by Newton's method in place of the
	// central-difference estimate.
	Derivative Func
}

const (
	defaultTolerance  = 1e-8
	defaultIterations = 100
	// derivFloor is the smallest |f'(x)| Newton will divide by.
	derivFloor = 1e-12
	// diffStep is the central-difference step.
	diffStep = 1e-7
)

func (opt *SolveOptions) config() SolveOptions {
	cfg := SolveOptions{}
	if opt != nil {
		cfg = *opt
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = defaultTolerance
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = defaultIterations
	}
	return cfg
}

// Solve finds a root of expr = 0 in the named variable, starting from
// guess. The expression is evaluated against ctx with the variable bound to
// each trial value; the caller's binding for the variable is snapshotted
// first and restored before Solve returns, whether it succeeds or fails. A
// nil ctx solves with fresh defaults.
//
// With no explicit bounds, the default Brent path probes symmetric windows
// ±10, ±20, … ±100 around the guess for a sign change and falls back to
// Newton-Raphson from the guess when none is found. That probe is a
// heuristic: a root outside the windows, or one the windows straddle
// without a sign change, is not found by it.
func Solve(expr string, variable rune, guess float64, ctx *Context, opt *SolveOptions) (float64, error) {
	e, err := Parse(expr)
	if err != nil {
		return 0, err
	}
	if ctx == nil {
		ctx = NewContext()
	}
	cfg := opt.config()
	restore := ctx.save(variable)
	defer restore()
	f := func(x float64) (float64, error) {
		ctx.names[variable] = x
		v, err := ctx.Eval(e)
		if err != nil {
			return 0, fmt.Errorf("solve: evaluating at %c = %g: %w", variable, x, err)
		}
		return v, nil
	}
	switch cfg.Method {
	case Bisection:
		a, b, err := solveBracket(f, guess, cfg.Bounds)
		if err != nil {
			return 0, err
		}
		return BisectionRoot(f, a, b, cfg.Tolerance, cfg.MaxIterations)
	case Newton:
		return NewtonRoot(f, cfg.Derivative, guess, cfg.Tolerance, cfg.MaxIterations)
	case Secant:
		x0, x1 := guess, guess+1e-4*(1+math.Abs(guess))
		if cfg.Bounds != nil {
			x0, x1 = cfg.Bounds.A, cfg.Bounds.B
		}
		return SecantRoot(f, x0, x1, cfg.Tolerance, cfg.MaxIterations)
	case Brent:
		if cfg.Bounds != nil {
			return BrentRoot(f, cfg.Bounds.A, cfg.Bounds.B, cfg.Tolerance, cfg.MaxIterations)
		}
		a, b, _, _, ok := expandBracket(f, guess)
		if ok {
			return BrentRoot(f, a, b, cfg.Tolerance, cfg.MaxIterations)
		}
		return NewtonRoot(f, cfg.Derivative, guess, cfg.Tolerance, cfg.MaxIterations)
	default:
		panic("calculator: unknown method " + cfg.Method.String())
	}
}

// solveBracket resolves explicit bounds or searches for a bracket around
// the guess, failing with NoSignChangeError when none exists.
func solveBracket(f Func, guess float64, bounds *Interval) (float64, float64, error) {
	if bounds != nil {
		return bounds.A, bounds.B, nil
	}
	a, b, fa, fb, ok := expandBracket(f, guess)
	if !ok {
		return 0, 0, &NoSignChangeError{A: a, B: b, FA: fa, FB: fb}
	}
	return a, b, nil
}

// expandBracket probes the windows guess±10, ±20, … ±100 for a sign change.
// Evaluation errors while probing only mean that window is unusable, so
// they are skipped, not surfaced. The returned endpoint values are from the
// last window that evaluated, NaN if none did.
func expandBracket(f Func, guess float64) (a, b, fa, fb float64, ok bool) {
	a, b = guess, guess
	fa, fb = math.NaN(), math.NaN()
	for w := 10.0; w <= 100; w += 10 {
		lo, hi := guess-w, guess+w
		flo, err := f(lo)
		if err != nil {
			continue
		}
		fhi, err := f(hi)
		if err != nil {
			continue
		}
		a, b, fa, fb = lo, hi, flo, fhi
		if flo*fhi <= 0 {
			return a, b, fa, fb, true
		}
	}
	return a, b, fa, fb, false
}

// BisectionRoot finds a root of f on [a, b], which must bracket a sign
// change. Each step halves the bracket, keeping the half whose endpoint
// values still differ in sign. Convergence is guaranteed for a valid
// bracket; maxIter only caps pathological tolerances.
func BisectionRoot(f Func, a, b, tol float64, maxIter int) (float64, error) {
	if a > b {
		a, b = b, a
	}
	fa, err := f(a)
	if err != nil {
		return 0, err
	}
	fb, err := f(b)
	if err != nil {
		return 0, err
	}
	if fa*fb > 0 {
		return 0, &NoSignChangeError{A: a, B: b, FA: fa, FB: fb}
	}
	m := a
	for i := 0; i < maxIter; i++ {
		m = (a + b) / 2
		fm, err := f(m)
		if err != nil {
			return 0, err
		}
		if math.Abs(fm) < tol || (b-a)/2 < tol {
			return m, nil
		}
		if fm*fa > 0 {
			a, fa = m, fm
		} else {
			b = m
		}
	}
	return 0, &ConvergenceError{Method: Bisection, Iterations: maxIter, Last: m}
}

// NewtonRoot finds a root of f by Newton-Raphson from x0. df may be nil, in
// which case the derivative is a central difference with step 1e-7. A
// derivative smaller in magnitude than 1e-12 would blow up the step and is
// a DerivativeError.
func NewtonRoot(f, df Func, x0, tol float64, maxIter int) (float64, error) {
	x := x0
	for i := 0; i < maxIter; i++ {
		fx, err := f(x)
		if err != nil {
			return 0, err
		}
		if math.Abs(fx) < tol {
			return x, nil
		}
		var d float64
		if df != nil {
			d, err = df(x)
		} else {
			d, err = centralDiff(f, x)
		}
		if err != nil {
			return 0, err
		}
		if math.Abs(d) < derivFloor {
			return 0, &DerivativeError{X: x, Derivative: d}
		}
		step := fx / d
		x -= step
		if math.Abs(step) < tol {
			return x, nil
		}
	}
	return 0, &ConvergenceError{Method: Newton, Iterations: maxIter, Last: x}
}

// centralDiff estimates f'(x) by central difference.
func centralDiff(f Func, x float64) (float64, error) {
	hi, err := f(x + diffStep)
	if err != nil {
		return 0, err
	}
	lo, err := f(x - diffStep)
	if err != nil {
		return 0, err
	}
	return (hi - lo) / (2 * diffStep), nil
}

// SecantRoot finds a root of f from the two starting points x0 and x1,
// estimating the derivative from the last two iterates. Two numerically
// identical consecutive f-values would divide by zero and are a
// DerivativeError.
func SecantRoot(f Func, x0, x1, tol float64, maxIter int) (float64, error) {
	f0, err := f(x0)
	if err != nil {
		return 0, err
	}
	f1, err := f(x1)
	if err != nil {
		return 0, err
	}
	for i := 0; i < maxIter; i++ {
		if math.Abs(f1) < tol {
			return x1, nil
		}
		if f1 == f0 {
			return 0, &DerivativeError{X: x1, Derivative: 0}
		}
		x2 := x1 - f1*(x1-x0)/(f1-f0)
		x0, f0 = x1, f1
		x1 = x2
		if f1, err = f(x1); err != nil {
			return 0, err
		}
		if math.Abs(x1-x0) < tol {
			return x1, nil
		}
	}
	return 0, &ConvergenceError{Method: Secant, Iterations: maxIter, Last: x1}
}

// BrentRoot finds a root of f on the sign-change bracket [a, b] by Brent's
// method: inverse quadratic interpolation when three distinct function
// values are available, the secant step otherwise, and bisection whenever
// the interpolated step would leave the bracket or fails to shrink it fast
// enough. The bracket is maintained throughout, so it converges whenever
// bisection would.
func BrentRoot(f Func, a, b, tol float64, maxIter int) (float64, error) {
	fa, err := f(a)
	if err != nil {
		return 0, err
	}
	fb, err := f(b)
	if err != nil {
		return 0, err
	}
	if fa*fb > 0 {
		return 0, &NoSignChangeError{A: a, B: b, FA: fa, FB: fb}
	}
	if math.Abs(fa) < math.Abs(fb) {
		a, b, fa, fb = b, a, fb, fa
	}
	c, fc := a, fa
	var d float64
	bisected := true
	for i := 0; i < maxIter; i++ {
		if math.Abs(fb) < tol || math.Abs(b-a) < tol {
			return b, nil
		}
		var s float64
		if fa != fc && fb != fc {
			// Inverse quadratic interpolation.
			s = a*fb*fc/((fa-fb)*(fa-fc)) +
				b*fa*fc/((fb-fa)*(fb-fc)) +
				c*fa*fb/((fc-fa)*(fc-fb))
		} else {
			s = b - fb*(b-a)/(fb-fa)
		}
		lo, hi := (3*a+b)/4, b
		if lo > hi {
			lo, hi = hi, lo
		}
		switch {
		case s < lo || s > hi,
			bisected && math.Abs(s-b) >= math.Abs(b-c)/2,
			!bisected && math.Abs(s-b) >= math.Abs(c-d)/2,
			bisected && math.Abs(b-c) < tol,
			!bisected && math.Abs(c-d) < tol:
			s = (a + b) / 2
			bisected = true
		default:
			bisected = false
		}
		fs, err := f(s)
		if err != nil {
			return 0, err
		}
		d = c
		c, fc = b, fb
		if fa*fs < 0 {
			b, fb = s, fs
		} else {
			a, fa = s, fs
		}
		if math.Abs(fa) < math.Abs(fb) {
			a, b, fa, fb = b, a, fb, fa
		}
	}
	return 0, &ConvergenceError{Method: Brent, Iterations: maxIter, Last: b}
}

// NoSignChangeError is an error from a bracketing method whose interval
// does not straddle a root.
type NoSignChangeError struct {
	// A, B are the interval endpoints.
	A, B float64
	// FA, FB are the function values there; NaN if the endpoint never
	// evaluated.
	FA, FB float64
}

func (err *NoSignChangeError) Error() string {
	return fmt.Sprintf("no sign change on [%g, %g]: f = %g, %g", err.A, err.B, err.FA, err.FB)
}

// DerivativeError is an error from a derivative-driven method whose next
// step would divide by a vanishing derivative.
type DerivativeError struct {
	// X is the iterate where the derivative vanished.
	X float64
	// Derivative is the offending value.
	Derivative float64
}

func (err *DerivativeError) Error() string {
	return fmt.Sprintf("derivative too small at x = %g: %g", err.X, err.Derivative)
}

// ConvergenceError is an error from an iteration budget running out before
// the tolerance was met.
type ConvergenceError struct {
	// Method is the algorithm that failed to converge.
	Method Method
	// Iterations is the budget that was exhausted.
	Iterations int
	// Last is the final iterate.
	Last float64
}

func (err *ConvergenceError) Error() string {
	return fmt.Sprintf("%v did not converge after %d iterations (last x = %g)",
		err.Method, err.Iterations, err.Last)
}
