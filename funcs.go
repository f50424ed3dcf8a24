package calculator

import (
	"math"
	"strconv"
)

// funcAliases maps every accepted function spelling to its canonical name.
// The unicode root signs match the calculator's display forms.
var funcAliases = map[string]string{
	"sin":   "sin",
	"cos":   "cos",
	"tan":   "tan",
	"asin":  "asin",
	"acos":  "acos",
	"atan":  "atan",
	"sinh":  "sinh",
	"cosh":  "cosh",
	"tanh":  "tanh",
	"asinh": "asinh",
	"acosh": "acosh",
	"atanh": "atanh",
	"log":   "log",
	"ln":    "ln",
	"exp":   "exp",
	"sqrt":  "sqrt",
	"cbrt":  "cbrt",
	"qdrt":  "qdrt",
	"abs":   "abs",
	"pow":   "pow",
	"ncr":   "ncr",
	"npr":   "npr",
	"nCr":   "ncr",
	"nPr":   "npr",
	"√":     "sqrt",
	"∛":     "cbrt",
	"∜":     "qdrt",
}

// constAliases maps constant spellings to canonical names.
var constAliases = map[string]string{
	"pi": "pi",
	"π":  "pi",
	"e":  "e",
}

// constants holds the values of the named constants.
var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// fnClass groups functions by how they interact with the angle unit and the
// calculator's hyperbolic-mode suffixing.
type fnClass int

const (
	// fnTrig converts its argument from the context's angle unit to radians.
	fnTrig fnClass = iota
	// fnInverseTrig converts its radian result back to the angle unit.
	fnInverseTrig
	// fnHyperbolic is angle-unit independent.
	fnHyperbolic
	// fnOther is everything else.
	fnOther
)

// function is one entry of the function table.
type function struct {
	arity int
	class fnClass
	call  func(ctx *Context, args []float64) (float64, error)
}

var functions = map[string]function{
	"sin": {1, fnTrig, trig(math.Sin)},
	"cos": {1, fnTrig, trig(math.Cos)},
	"tan": {1, fnTrig, trig(math.Tan)},

	"asin": {1, fnInverseTrig, arc("asin", math.Asin)},
	"acos": {1, fnInverseTrig, arc("acos", math.Acos)},
	"atan": {1, fnInverseTrig, func(ctx *Context, args []float64) (float64, error) {
		return fromRadians(math.Atan(args[0]), ctx.angle), nil
	}},

	"sinh":  {1, fnHyperbolic, plain(math.Sinh)},
	"cosh":  {1, fnHyperbolic, plain(math.Cosh)},
	"tanh":  {1, fnHyperbolic, plain(math.Tanh)},
	"asinh": {1, fnHyperbolic, plain(math.Asinh)},
	"acosh": {1, fnHyperbolic, func(ctx *Context, args []float64) (float64, error) {
		if args[0] < 1 {
			return 0, &DomainError{X: args[0], Func: "acosh"}
		}
		return math.Acosh(args[0]), nil
	}},
	"atanh": {1, fnHyperbolic, func(ctx *Context, args []float64) (float64, error) {
		if args[0] <= -1 || args[0] >= 1 {
			return 0, &DomainError{X: args[0], Func: "atanh"}
		}
		return math.Atanh(args[0]), nil
	}},

	"log": {1, fnOther, positive("log", math.Log10)},
	"ln":  {1, fnOther, positive("ln", math.Log)},
	"exp": {1, fnOther, plain(math.Exp)},

	"sqrt": {1, fnOther, func(ctx *Context, args []float64) (float64, error) {
		if args[0] < 0 {
			return 0, &DomainError{X: args[0], Func: "sqrt"}
		}
		return math.Sqrt(args[0]), nil
	}},
	// The cube root is defined for all reals. The fourth root keeps the
	// calculator's pow(x, 1/4) semantics and yields NaN for negatives
	// without a domain check.
	"cbrt": {1, fnOther, plain(math.Cbrt)},
	"qdrt": {1, fnOther, func(ctx *Context, args []float64) (float64, error) {
		return math.Pow(args[0], 0.25), nil
	}},
	"abs": {1, fnOther, plain(math.Abs)},

	"pow": {2, fnOther, func(ctx *Context, args []float64) (float64, error) {
		r := math.Pow(args[0], args[1])
		if math.IsNaN(r) && !math.IsNaN(args[0]) && !math.IsNaN(args[1]) {
			return 0, &DomainError{X: args[0], Func: "pow"}
		}
		return r, nil
	}},
	"ncr": {2, fnOther, func(ctx *Context, args []float64) (float64, error) {
		return combinatoric("ncr", args[0], args[1])
	}},
	"npr": {2, fnOther, func(ctx *Context, args []float64) (float64, error) {
		return combinatoric("npr", args[0], args[1])
	}},
}

func plain(f func(float64) float64) func(*Context, []float64) (float64, error) {
	return func(ctx *Context, args []float64) (float64, error) {
		return f(args[0]), nil
	}
}

func trig(f func(float64) float64) func(*Context, []float64) (float64, error) {
	return func(ctx *Context, args []float64) (float64, error) {
		return f(toRadians(args[0], ctx.angle)), nil
	}
}

// arc wraps an inverse trig function with its [-1, 1] domain check and the
// radians-to-angle-unit conversion of the result.
func arc(name string, f func(float64) float64) func(*Context, []float64) (float64, error) {
	return func(ctx *Context, args []float64) (float64, error) {
		if args[0] < -1 || args[0] > 1 {
			return 0, &DomainError{X: args[0], Func: name}
		}
		return fromRadians(f(args[0]), ctx.angle), nil
	}
}

// positive wraps a function defined only for positive arguments.
func positive(name string, f func(float64) float64) func(*Context, []float64) (float64, error) {
	return func(ctx *Context, args []float64) (float64, error) {
		if args[0] <= 0 {
			return 0, &DomainError{X: args[0], Func: name}
		}
		return f(args[0]), nil
	}
}

// toRadians converts x from the given angle unit to radians.
func toRadians(x float64, u AngleUnit) float64 {
	switch u {
	case Degrees:
		return x * math.Pi / 180
	case Gradians:
		return x * math.Pi / 200
	default:
		return x
	}
}

// fromRadians converts x from radians to the given angle unit.
func fromRadians(x float64, u AngleUnit) float64 {
	switch u {
	case Degrees:
		return x * 180 / math.Pi
	case Gradians:
		return x * 200 / math.Pi
	default:
		return x
	}
}

// factorial computes x! for a non-negative integer x. Values above 170
// overflow float64, so they saturate to +Inf instead.
func factorial(x float64) (float64, error) {
	if x < 0 || x != math.Trunc(x) || math.IsInf(x, 0) || math.IsNaN(x) {
		return 0, &DomainError{X: x, Func: "!"}
	}
	if x > 170 {
		return math.Inf(1), nil
	}
	r := 1.0
	for k := 2.0; k <= x; k++ {
		r *= k
	}
	return r, nil
}

// combinatoric computes nCr or nPr for non-negative integers with r ≤ n,
// multiplying incrementally so that intermediate values stay small far
// longer than the factorial quotient would.
func combinatoric(name string, n, r float64) (float64, error) {
	bad := func(x float64) bool {
		return x < 0 || x != math.Trunc(x) || math.IsInf(x, 0) || math.IsNaN(x)
	}
	if bad(n) || bad(r) || r > n {
		x := r
		if bad(n) {
			x = n
		}
		return 0, &DomainError{X: x, Func: name}
	}
	v := 1.0
	for k := 0.0; k < r; k++ {
		v *= n - k
		if name == "ncr" {
			v /= k + 1
		}
	}
	return v, nil
}

// DomainError is an error returned when an operator or function is applied
// to an argument outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Func is the name of the function or operator.
	Func string
}

func (err *DomainError) Error() string {
	return strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain of " + err.Func
}
