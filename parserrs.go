package calculator

import (
	"errors"
	"strconv"
)

// Parse failures. Errors returned by Parse are *ParseError values that unwrap
// to one of these, so callers can test them with errors.Is.
var (
	// ErrMissingFactor means the input ended, or an operator or close bracket
	// appeared, where an operand was expected.
	ErrMissingFactor = errors.New("missing operand")
	// ErrMissingOperator means two operands appeared with no operator between
	// them.
	ErrMissingOperator = errors.New("missing operator")
	// ErrUnknownOperator means a token was neither an operand nor one of the
	// supported operators.
	ErrUnknownOperator = errors.New("unknown operator")
	// ErrInvalidNumber means a numeric token is not a valid number.
	ErrInvalidNumber = errors.New("invalid number")
	// ErrNoPriorResult means ans was used before anything was evaluated.
	ErrNoPriorResult = errors.New("no previous result for ans")
	// ErrMismatchedParentheses means an open or close bracket has no match.
	ErrMismatchedParentheses = errors.New("mismatched parentheses")
	// ErrMalformedExpression means the parser finished without reducing the
	// input to exactly one expression.
	ErrMalformedExpression = errors.New("malformed expression")
)

// ParseError is an error from parsing a token sequence. It implements
// InputError.
type ParseError struct {
	// Err is the kind of failure, one of the Err variables in this package.
	Err error
	// Col is the position of the token that caused the error, or 0 if the
	// error was found at the end of the input.
	Col int
	// Token is the text of the offending token, if any.
	Token string
}

func (err *ParseError) Error() string {
	msg := err.Err.Error()
	if err.Token != "" {
		msg += " " + strconv.Quote(err.Token)
	}
	if err.Col <= 0 {
		return "at end: " + msg
	}
	return errpos(err.Col, msg)
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

func (err *ParseError) Pos() int {
	return err.Col
}

// errat creates a *ParseError for a token. The zero Token means the end of
// the input.
func errat(kind error, tok Token) *ParseError {
	return &ParseError{Err: kind, Col: tok.Pos, Token: tok.Text}
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error. It is 0 for
	// errors found at the end of the input.
	Pos() int
}

var (
	_ InputError = (*ParseError)(nil)
	_ InputError = (*LexError)(nil)
)
