// Package calculator implements the expression core of a scientific
// calculator: a tokenizer, a shunting-yard parser producing postfix (RPN)
// form, a stack evaluator, and numerical routines that treat parsed
// expressions as black-box functions of one variable.
//
// The direct path is Tokenize → ParseRPN → Eval. An evaluation Context
// carries the angle unit (degrees, radians, or gradians) and the
// single-letter variable bindings that back the calculator's memory
// registers, so an expression can be parsed once and evaluated for many
// inputs.
//
// On top of the evaluator, Solve finds roots of f(x) = 0 by bisection,
// Newton-Raphson, the secant method, or Brent's method, and Integrate
// computes definite integrals by adaptive Simpson quadrature with
// Richardson error correction. Both bind a trial value into the context's
// variable map before each evaluation and restore the caller's bindings on
// every exit path, so nested calls never observe each other's transients.
package calculator
