package calculator

import (
	"fmt"
	"strconv"
)

// Operator is a binary arithmetic operator or one of the two bracket markers
// the parser uses for grouping.
type Operator int8

const (
	opNone Operator = iota

	Sum            // a + b
	Subtraction    // a - b
	Multiplication // a * b
	Division       // a / b
	OpenBracket    // (
	ClosedBracket  // )
)

// BuildOperator gets the operator for a symbol. Symbols other than those in
// Operators fail with an error wrapping ErrUnknownOperator. The error has no
// position; Parse reports the token's.
func BuildOperator(symbol string) (Operator, error) {
	switch symbol {
	case "+":
		return Sum, nil
	case "-":
		return Subtraction, nil
	case "*":
		return Multiplication, nil
	case "/":
		return Division, nil
	case "(":
		return OpenBracket, nil
	case ")":
		return ClosedBracket, nil
	default:
		return opNone, fmt.Errorf("%w %q", ErrUnknownOperator, symbol)
	}
}

// PrecedenceAtLeast returns whether op, sitting on the parser's operator
// stack, must be applied before other is pushed. Operators of one tier reduce
// each other, which makes every chain left-associative. Brackets are never
// reduced and never cause a reduction.
func (op Operator) PrecedenceAtLeast(other Operator) bool {
	switch op {
	case Multiplication, Division:
		return other.Arithmetic()
	case Sum, Subtraction:
		return other == Sum || other == Subtraction
	default:
		return false
	}
}

// Arithmetic returns whether op is one of the four binary operators.
func (op Operator) Arithmetic() bool {
	return Sum <= op && op <= Division
}

// Evaluate applies op to a and b. Division follows IEEE-754, so dividing by
// zero gives an infinity or NaN. Panics if op is a bracket; the parser never
// builds an expression around one.
func (op Operator) Evaluate(a, b float64) float64 {
	switch op {
	case Sum:
		return a + b
	case Subtraction:
		return a - b
	case Multiplication:
		return a * b
	case Division:
		return a / b
	default:
		panic("calculator: evaluate non-arithmetic operator " + op.String())
	}
}

// Symbol returns the operator's source text.
func (op Operator) Symbol() string {
	switch op {
	case Sum:
		return "+"
	case Subtraction:
		return "-"
	case Multiplication:
		return "*"
	case Division:
		return "/"
	case OpenBracket:
		return "("
	case ClosedBracket:
		return ")"
	default:
		return "?"
	}
}

func (op Operator) String() string {
	switch op {
	case opNone:
		return "None"
	case Sum:
		return "Sum"
	case Subtraction:
		return "Subtraction"
	case Multiplication:
		return "Multiplication"
	case Division:
		return "Division"
	case OpenBracket:
		return "OpenBracket"
	case ClosedBracket:
		return "ClosedBracket"
	default:
		return "Operator(" + strconv.Itoa(int(op)) + ")"
	}
}
