package calculator

import (
	"strconv"
	"strings"
)

// Factor is an operand in an expression tree: either a Value or an
// *Expression still to be evaluated.
type Factor interface {
	// Evaluate reduces the factor to a number.
	Evaluate() float64

	fmt(b *strings.Builder, square bool)
}

// Value is a resolved operand.
type Value float64

// Expression is an internal node of an expression tree. Op is always one of
// the arithmetic operators, and Left and Right are always non-nil.
type Expression struct {
	Left  Factor
	Right Factor
	Op    Operator
}

// Evaluate returns v.
func (v Value) Evaluate() float64 {
	return float64(v)
}

func (v Value) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64)
}

func (v Value) fmt(b *strings.Builder, square bool) {
	b.WriteString(v.String())
}

// String creates a string representation of the expression, with alternating
// round and square brackets grouping each term.
func (e *Expression) String() string {
	var b strings.Builder
	e.fmt(&b, false)
	return b.String()
}

func (e *Expression) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	e.Left.fmt(b, !square)
	b.WriteByte(' ')
	b.WriteString(e.Op.Symbol())
	b.WriteByte(' ')
	e.Right.fmt(b, !square)
}

// Format renders any factor the way Expression.String does.
func Format(f Factor) string {
	var b strings.Builder
	f.fmt(&b, false)
	return b.String()
}

// build pops the right and then the left operand and pushes the expression
// combining them with op.
func build(operands *Stack[Factor], op Operator, at Token) error {
	right, ok := operands.Pop()
	if !ok {
		return errat(ErrMissingFactor, at)
	}
	left, ok := operands.Pop()
	if !ok {
		return errat(ErrMissingFactor, at)
	}
	operands.Push(&Expression{Left: left, Right: right, Op: op})
	return nil
}
