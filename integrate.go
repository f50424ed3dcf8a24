package calculator

import (
	"fmt"
	"math"
)

// IntegrateOptions configures Integrate and IntegrateFunc. The zero value
// means tolerance 1e-8, depth 20, and integration variable 'x'.
type IntegrateOptions struct {
	// Tolerance is the Richardson error budget for the whole interval; each
	// recursive half inherits half of it. Zero means 1e-8.
	Tolerance float64
	// MaxDepth bounds the bisection recursion. Zero means 20.
	MaxDepth int
	// Variable is the integration variable for the expression form. Zero
	// means 'x'.
	Variable rune
}

const defaultDepth = 20

func (opt *IntegrateOptions) config() IntegrateOptions {
	cfg := IntegrateOptions{}
	if opt != nil {
		cfg = *opt
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = defaultTolerance
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = defaultDepth
	}
	if cfg.Variable == 0 {
		cfg.Variable = 'x'
	}
	return cfg
}

// Integrate computes the definite integral of expr over [a, b] with respect
// to the option's variable. The expression is evaluated against ctx with
// the variable bound to each sample point; the caller's binding is
// snapshotted first and restored before Integrate returns, on success and
// failure alike. A nil ctx integrates with fresh defaults.
func Integrate(expr string, a, b float64, ctx *Context, opt *IntegrateOptions) (float64, error) {
	e, err := Parse(expr)
	if err != nil {
		return 0, err
	}
	if ctx == nil {
		ctx = NewContext()
	}
	cfg := opt.config()
	restore := ctx.save(cfg.Variable)
	defer restore()
	f := func(x float64) (float64, error) {
		ctx.names[cfg.Variable] = x
		v, err := ctx.Eval(e)
		if err != nil {
			return 0, fmt.Errorf("integrate: evaluating at %c = %g: %w", cfg.Variable, x, err)
		}
		return v, nil
	}
	return IntegrateFunc(f, a, b, &cfg)
}

// IntegrateFunc computes the definite integral of f over [a, b] by adaptive
// Simpson quadrature. The interval bisects recursively; a half is accepted
// when its refined estimate agrees with its parent to within 15× the local
// error budget (the Richardson criterion for Simpson's rule) or the depth
// budget runs out, and the accepted value carries the Richardson correction
// (S2-S)/15. Integrating from b down to a negates the result, and a == b is
// exactly 0.
//
// Any sample where f is NaN or infinite, including the bounds and midpoint
// sampled before recursion starts, is a NonFiniteError.
func IntegrateFunc(f Func, a, b float64, opt *IntegrateOptions) (float64, error) {
	cfg := opt.config()
	if a == b {
		return 0, nil
	}
	sign := 1.0
	if a > b {
		a, b = b, a
		sign = -1
	}
	fa, err := sample(f, a)
	if err != nil {
		return 0, err
	}
	fb, err := sample(f, b)
	if err != nil {
		return 0, err
	}
	m := (a + b) / 2
	fm, err := sample(f, m)
	if err != nil {
		return 0, err
	}
	s := simpson(a, b, fa, fm, fb)
	r, err := adaptSimpson(f, a, b, fa, fm, fb, s, cfg.Tolerance, cfg.MaxDepth)
	if err != nil {
		return 0, err
	}
	return sign * r, nil
}

// sample evaluates f and rejects non-finite values.
func sample(f Func, x float64) (float64, error) {
	v, err := f(x)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &NonFiniteError{X: x, Value: v}
	}
	return v, nil
}

// simpson is the three-point Simpson estimate over [a, b].
func simpson(a, b, fa, fm, fb float64) float64 {
	return (b - a) / 6 * (fa + 4*fm + fb)
}

// adaptSimpson refines the parent estimate s over [a, b]. fa, fm, fb are
// the already-sampled endpoint and midpoint values, so each level costs two
// new samples.
func adaptSimpson(f Func, a, b, fa, fm, fb, s, eps float64, depth int) (float64, error) {
	m := (a + b) / 2
	lm, rm := (a+m)/2, (m+b)/2
	flm, err := sample(f, lm)
	if err != nil {
		return 0, err
	}
	frm, err := sample(f, rm)
	if err != nil {
		return 0, err
	}
	sl := simpson(a, m, fa, flm, fm)
	sr := simpson(m, b, fm, frm, fb)
	s2 := sl + sr
	if depth <= 0 || math.Abs(s2-s) <= 15*eps {
		return s2 + (s2-s)/15, nil
	}
	l, err := adaptSimpson(f, a, m, fa, flm, fm, sl, eps/2, depth-1)
	if err != nil {
		return 0, err
	}
	r, err := adaptSimpson(f, m, b, fm, frm, fb, sr, eps/2, depth-1)
	if err != nil {
		return 0, err
	}
	return l + r, nil
}

// NonFiniteError is an error from the integrand returning NaN or an
// infinity at a sample point.
type NonFiniteError struct {
	// X is the sample point.
	X float64
	// Value is the non-finite value of f there.
	Value float64
}

func (err *NonFiniteError) Error() string {
	return fmt.Sprintf("non-finite integrand at x = %g: f(x) = %g", err.X, err.Value)
}
