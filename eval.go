package calculator

import (
	"math"
	"strconv"
)

// AngleUnit is the unit trig functions interpret their arguments in.
type AngleUnit int

const (
	// Degrees is the calculator's power-on default.
	Degrees AngleUnit = iota
	// Radians is the unit of the native math primitives.
	Radians
	// Gradians divides the right angle into 100 units.
	Gradians
)

func (u AngleUnit) String() string {
	switch u {
	case Degrees:
		return "DEG"
	case Radians:
		return "RAD"
	case Gradians:
		return "GRAD"
	default:
		return "AngleUnit(" + strconv.Itoa(int(u)) + ")"
	}
}

// Context is a context for evaluating expressions: the angle unit and the
// single-letter variable bindings shared with the calculator's memory
// registers. It is not safe to use a Context concurrently.
type Context struct {
	angle AngleUnit
	names map[rune]float64
	stack []float64
}

// ContextOption is an option used when creating or cloning a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name rune
		val  float64
	}
	varsopt  map[rune]float64
	angleopt AngleUnit
)

func (varopt) ctxOption()   {}
func (varsopt) ctxOption()  {}
func (angleopt) ctxOption() {}

// SetVar sets the value of a variable in the context.
func SetVar(name rune, val float64) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[rune]float64) ContextOption {
	return varsopt(vars)
}

// Angle sets the angle unit of the context.
func Angle(u AngleUnit) ContextOption {
	return angleopt(u)
}

// NewContext creates a new evaluation context. The default angle unit is
// degrees.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{names: make(map[rune]float64)}
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it. Bindings are
// copied, so evaluations against the clone never touch the original.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		angle: ctx.angle,
		names: make(map[rune]float64, len(ctx.names)),
	}
	for k, v := range ctx.names {
		n.names[k] = v
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.names[opt.name] = opt.val
		case varsopt:
			for k, v := range opt {
				n.names[k] = v
			}
		case angleopt:
			n.angle = AngleUnit(opt)
		default:
			panic("calculator: unknown option type")
		}
	}
	return &n
}

// Set sets the value of a variable. Returns ctx for chaining.
func (ctx *Context) Set(name rune, value float64) *Context {
	ctx.names[name] = value
	return ctx
}

// Lookup returns the value of a variable and whether it is bound.
func (ctx *Context) Lookup(name rune) (float64, bool) {
	v, ok := ctx.names[name]
	return v, ok
}

// Unset removes a variable binding.
func (ctx *Context) Unset(name rune) {
	delete(ctx.names, name)
}

// Angle returns the context's angle unit.
func (ctx *Context) Angle() AngleUnit {
	return ctx.angle
}

// save snapshots the binding of one variable and returns a func restoring
// it. Solve and Integrate defer the restore so the caller's bindings survive
// every exit path, including errors raised mid-evaluation.
func (ctx *Context) save(name rune) func() {
	old, ok := ctx.names[name]
	return func() {
		if ok {
			ctx.names[name] = old
		} else {
			delete(ctx.names, name)
		}
	}
}

func (ctx *Context) push(v float64) {
	ctx.stack = append(ctx.stack, v)
}

func (ctx *Context) pop() float64 {
	v := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return v
}

// Eval evaluates a postfix expression by stack simulation. Exactly one
// value must remain at the end; anything else means the token sequence does
// not form a single expression and is a MalformedError.
func (ctx *Context) Eval(e *Expr) (float64, error) {
	ctx.stack = ctx.stack[:0]
	for _, t := range e.rpn {
		switch t.Kind {
		case KindNumber:
			ctx.push(t.Num)
		case KindConstant:
			ctx.push(constants[t.Text])
		case KindVariable:
			v, ok := ctx.names[t.Letter]
			if !ok {
				return 0, &NameError{Name: t.Letter}
			}
			ctx.push(v)
		case KindOperator:
			spec := operators[t.Text]
			if len(ctx.stack) < spec.arity {
				return 0, &ArityError{Sym: t.Text, Want: spec.arity, Got: len(ctx.stack)}
			}
			args := make([]float64, spec.arity)
			for i := spec.arity - 1; i >= 0; i-- {
				args[i] = ctx.pop()
			}
			r, err := applyOp(t.Text, args)
			if err != nil {
				return 0, err
			}
			ctx.push(r)
		case KindFunction:
			fn, ok := functions[t.Text]
			if !ok {
				panic("calculator: unknown function " + strconv.Quote(t.Text))
			}
			if len(ctx.stack) < fn.arity {
				return 0, &ArityError{Sym: t.Text, Want: fn.arity, Got: len(ctx.stack)}
			}
			// Pop in reverse so args keep their source order.
			args := make([]float64, fn.arity)
			for i := fn.arity - 1; i >= 0; i-- {
				args[i] = ctx.pop()
			}
			r, err := fn.call(ctx, args)
			if err != nil {
				return 0, err
			}
			ctx.push(r)
		default:
			panic("calculator: " + t.Kind.String() + " token in RPN")
		}
	}
	if len(ctx.stack) != 1 {
		return 0, &MalformedError{Values: len(ctx.stack)}
	}
	return ctx.stack[0], nil
}

// applyOp applies a binary operator or the postfix factorial.
func applyOp(sym string, args []float64) (float64, error) {
	switch sym {
	case "+":
		return args[0] + args[1], nil
	case "-":
		return args[0] - args[1], nil
	case "×":
		return args[0] * args[1], nil
	case "÷":
		if args[1] == 0 {
			return 0, &DivisionByZeroError{Dividend: args[0]}
		}
		return args[0] / args[1], nil
	case "^":
		r := math.Pow(args[0], args[1])
		if math.IsNaN(r) && !math.IsNaN(args[0]) && !math.IsNaN(args[1]) {
			return 0, &DomainError{X: args[0], Func: "^"}
		}
		return r, nil
	case "!":
		return factorial(args[0])
	default:
		panic("calculator: unknown operator " + strconv.Quote(sym))
	}
}

// Evaluate parses an expression and evaluates it with the given context. A
// nil context evaluates with fresh defaults.
func Evaluate(src string, ctx *Context) (float64, error) {
	e, err := Parse(src)
	if err != nil {
		return 0, err
	}
	if ctx == nil {
		ctx = NewContext()
	}
	return ctx.Eval(e)
}

// EvalString is a shortcut to evaluate an expression in a new context built
// from the given options.
func EvalString(src string, opts ...ContextOption) (float64, error) {
	return Evaluate(src, NewContext(opts...))
}

// NameError is an error from a lookup for a variable that is missing from
// the evaluation context.
type NameError struct {
	// Name is the letter that was unbound.
	Name rune
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.QuoteRune(err.Name)
}

// ArityError is an error from an operator or function with too few operands
// on the evaluation stack.
type ArityError struct {
	// Sym is the operator symbol or function name.
	Sym string
	// Want and Got are the required and available operand counts.
	Want, Got int
}

func (err *ArityError) Error() string {
	return "not enough operands for " + err.Sym + ": need " +
		strconv.Itoa(err.Want) + ", have " + strconv.Itoa(err.Got)
}

// DivisionByZeroError is an error from dividing by exactly zero.
type DivisionByZeroError struct {
	// Dividend is the value being divided.
	Dividend float64
}

func (err *DivisionByZeroError) Error() string {
	return "division by zero: " + strconv.FormatFloat(err.Dividend, 'g', -1, 64) + " ÷ 0"
}

// MalformedError is an error from a postfix sequence that does not reduce
// to exactly one value.
type MalformedError struct {
	// Values is the number of values left on the stack after evaluation.
	Values int
}

func (err *MalformedError) Error() string {
	if err.Values == 0 {
		return "empty expression"
	}
	return "malformed expression: " + strconv.Itoa(err.Values) + " values remain after evaluation"
}
