package calculator

import "strings"

// operator describes a binary or postfix operator for the parser and the
// evaluator.
type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int
	// right indicates right-associativity.
	right bool
	// arity is the number of operands popped during evaluation.
	arity int
}

// operators is the operator table. ^ is right-associative so that 2^3^2
// parses as 2^(3^2); the postfix factorial never sits on the operator stack
// but still needs an arity for the evaluator.
var operators = map[string]operator{
	"+": {prec: 1, arity: 2},
	"-": {prec: 1, arity: 2},
	"×": {prec: 5, arity: 2},
	"÷": {prec: 5, arity: 2},
	"^": {prec: 15, right: true, arity: 2},
	"!": {prec: 20, arity: 1},
}

// Expr is a parsed expression in postfix form, ready to evaluate with a
// Context.
type Expr struct {
	rpn []Token
	src string
}

// Parse tokenizes an expression and converts it to postfix form.
func Parse(src string) (*Expr, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	rpn, err := ParseRPN(toks)
	if err != nil {
		return nil, err
	}
	return &Expr{rpn: rpn, src: src}, nil
}

// RPN returns a copy of the expression's postfix token sequence.
func (e *Expr) RPN() []Token {
	return append([]Token(nil), e.rpn...)
}

// Vars returns the variable letters the expression refers to, in order of
// first appearance.
func (e *Expr) Vars() []rune {
	var v []rune
	seen := make(map[rune]bool)
	for _, t := range e.rpn {
		if t.Kind == KindVariable && !seen[t.Letter] {
			seen[t.Letter] = true
			v = append(v, t.Letter)
		}
	}
	return v
}

// String renders the postfix sequence with single spaces between tokens.
func (e *Expr) String() string {
	var b strings.Builder
	for i, t := range e.rpn {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
	}
	return b.String()
}

// ParseRPN converts an infix token sequence to postfix order with the
// shunting-yard algorithm. Numbers, constants, and variables pass straight
// to the output; operators wait on a stack until an operator arrives that
// binds less tightly; functions wait on the stack and attach to their
// argument list when its closing parenthesis pops. Unbalanced parentheses in
// either direction are a BracketError.
func ParseRPN(toks []Token) ([]Token, error) {
	out := make([]Token, 0, len(toks))
	var stack []Token
	for _, t := range toks {
		switch t.Kind {
		case KindNumber, KindConstant, KindVariable:
			out = append(out, t)
		case KindFunction:
			stack = append(stack, t)
		case KindOperator:
			if t.Text == "!" {
				// Postfix: applies to the value already in the output.
				out = append(out, t)
				continue
			}
			o1 := operators[t.Text]
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind != KindOperator {
					break
				}
				o2 := operators[top.Text]
				if (!o1.right && o1.prec <= o2.prec) || (o1.right && o1.prec < o2.prec) {
					out = append(out, top)
					stack = stack[:len(stack)-1]
					continue
				}
				break
			}
			stack = append(stack, t)
		case KindComma:
			// Flush the argument accumulated since the opening parenthesis.
			for {
				if len(stack) == 0 {
					return nil, &SeparatorError{Col: t.Pos, Sep: ","}
				}
				top := stack[len(stack)-1]
				if top.Kind == KindLParen {
					break
				}
				out = append(out, top)
				stack = stack[:len(stack)-1]
			}
		case KindLParen:
			stack = append(stack, t)
		case KindRParen:
			for {
				if len(stack) == 0 {
					return nil, &BracketError{Col: t.Pos, Right: ")"}
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.Kind == KindLParen {
					break
				}
				out = append(out, top)
			}
			if len(stack) > 0 && stack[len(stack)-1].Kind == KindFunction {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
		default:
			panic("calculator: unknown token: " + t.Kind.String())
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.Kind == KindLParen {
			return nil, &BracketError{Col: top.Pos, Left: "("}
		}
		out = append(out, top)
	}
	return out, nil
}
