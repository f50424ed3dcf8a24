package calculator

import "strconv"

// TokenKind identifies the kind of a Token. Every stage of the pipeline
// switches exhaustively over these values and panics on a kind it cannot
// occur with, so a new kind left unhandled fails loudly rather than
// silently.
type TokenKind int

const (
	// KindNone is the zero kind; it never appears in a token stream.
	KindNone TokenKind = iota
	// KindNumber is a numeric literal.
	KindNumber
	// KindOperator is a binary operator or the postfix factorial.
	KindOperator
	// KindFunction is a function name, e.g. sin or cbrt.
	KindFunction
	// KindConstant is a named constant, e.g. pi.
	KindConstant
	// KindVariable is a single-letter variable.
	KindVariable
	// KindLParen is an opening parenthesis.
	KindLParen
	// KindRParen is a closing parenthesis.
	KindRParen
	// KindComma separates function arguments.
	KindComma
)

func (k TokenKind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindNumber:
		return "Number"
	case KindOperator:
		return "Operator"
	case KindFunction:
		return "Function"
	case KindConstant:
		return "Constant"
	case KindVariable:
		return "Variable"
	case KindLParen:
		return "LParen"
	case KindRParen:
		return "RParen"
	case KindComma:
		return "Comma"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Token is one element of a tokenized expression. A token is immutable once
// produced; which fields are meaningful depends on Kind:
//
//   - KindNumber: Num holds the value, Text the literal as scanned.
//   - KindOperator: Text holds the canonical operator symbol.
//   - KindFunction, KindConstant: Text holds the canonical name.
//   - KindVariable: Letter holds the variable letter.
//
// Pos is the 1-based rune position in the whitespace-stripped input, for
// error reporting.
type Token struct {
	Kind   TokenKind
	Num    float64
	Text   string
	Letter rune
	Pos    int
}

func (t Token) String() string {
	switch t.Kind {
	case KindNumber:
		return strconv.FormatFloat(t.Num, 'g', -1, 64)
	case KindVariable:
		return string(t.Letter)
	case KindLParen:
		return "("
	case KindRParen:
		return ")"
	case KindComma:
		return ","
	default:
		return t.Text
	}
}
