package calculator

import "strconv"

// BracketError is an error indicating mismatched parentheses in the input.
// It implements InputError.
type BracketError struct {
	// Col is the position of the unmatched parenthesis.
	Col int
	// Left is the opening parenthesis, if that is the unmatched side.
	Left string
	// Right is the closing parenthesis, if that is the unmatched side.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "mismatched parentheses: "+err.Right+" with no opening (")
	}
	return errpos(err.Col, "mismatched parentheses: "+err.Left+" with no closing )")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// SeparatorError is an error indicating a comma outside a function argument
// list. It implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "separator "+strconv.Quote(err.Sep)+" outside function arguments")
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting
// from tokenizing or parsing invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based rune position of the token that caused the
	// error, counted over the whitespace-stripped input.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
)
