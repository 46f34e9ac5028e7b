package calculator

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// Ans is the result of the previous successful evaluation, which the word ans
// refers to. The zero Ans holds no result.
type Ans struct {
	v  float64
	ok bool
}

// AnsOf creates an Ans holding v.
func AnsOf(v float64) Ans {
	return Ans{v: v, ok: true}
}

// Value returns the held result and whether there is one.
func (a Ans) Value() (float64, bool) {
	return a.v, a.ok
}

func (a Ans) String() string {
	if !a.ok {
		return "none"
	}
	return strconv.FormatFloat(a.v, 'g', -1, 64)
}

// Evaluate reduces the tree bottom-up: both operands are evaluated, left
// first, and then the operator is applied to them.
func (e *Expression) Evaluate() float64 {
	l := e.Left.Evaluate()
	r := e.Right.Evaluate()
	return e.Op.Evaluate(l, r)
}

// Eval evaluates a parsed expression.
func Eval(f Factor) float64 {
	return f.Evaluate()
}

// ResolveFactor turns an operand token into a Value. The zero Token fails with
// ErrMissingFactor. The word ans, in any case, resolves to ans's value, or
// fails with ErrNoPriorResult if there is none. Anything else must be a
// floating-point literal or it fails with ErrInvalidNumber; literals too large
// for a float64 resolve to an infinity.
func ResolveFactor(tok Token, ans Ans) (Factor, error) {
	if tok.Kind == TokenNone {
		return nil, errat(ErrMissingFactor, tok)
	}
	if tok.is(AnsWord) {
		v, ok := ans.Value()
		if !ok {
			return nil, errat(ErrNoPriorResult, tok)
		}
		return Value(v), nil
	}
	v, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil {
		// ParseFloat sets v to ±Inf on overflow. Underflow to zero is not an
		// error at all.
		if errors.Is(err, strconv.ErrRange) {
			return Value(v), nil
		}
		return nil, errat(ErrInvalidNumber, tok)
	}
	return Value(v), nil
}

// Evaluate is a shortcut to tokenize, parse, and evaluate an expression.
func Evaluate(src io.RuneScanner, ans Ans, opts ...ParseOption) (float64, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return 0, err
	}
	f, err := Parse(toks, ans, opts...)
	if err != nil {
		return 0, err
	}
	return Eval(f), nil
}

// EvalString is a shortcut to evaluate a string expression.
func EvalString(src string, ans Ans, opts ...ParseOption) (float64, error) {
	return Evaluate(strings.NewReader(src), ans, opts...)
}
