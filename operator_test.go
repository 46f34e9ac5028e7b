package calculator

import (
	"errors"
	"math"
	"testing"
)

func TestBuildOperator(t *testing.T) {
	cases := []struct {
		sym string
		op  Operator
	}{
		{"+", Sum},
		{"-", Subtraction},
		{"*", Multiplication},
		{"/", Division},
		{"(", OpenBracket},
		{")", ClosedBracket},
	}
	for _, c := range cases {
		op, err := BuildOperator(c.sym)
		if err != nil {
			t.Errorf("%q: unexpected error %v", c.sym, err)
		}
		if op != c.op {
			t.Errorf("%q: want %v, got %v", c.sym, c.op, op)
		}
		if op.Symbol() != c.sym {
			t.Errorf("%v: want symbol %q, got %q", op, c.sym, op.Symbol())
		}
	}
	for _, sym := range []string{"", "^", "x", "ans", "++", "×", "[", "%"} {
		if _, err := BuildOperator(sym); !errors.Is(err, ErrUnknownOperator) {
			t.Errorf("%q: want ErrUnknownOperator, got %v", sym, err)
		}
	}
	_, err := BuildOperator("^")
	if want := `unknown operator "^"`; err == nil || err.Error() != want {
		t.Errorf("want message %q, got %v", want, err)
	}
}

func TestOperatorsBuild(t *testing.T) {
	for _, r := range Operators {
		if _, err := BuildOperator(string(r)); err != nil {
			t.Errorf("no operator for %c", r)
		}
	}
}

func TestPrecedenceAtLeast(t *testing.T) {
	all := []Operator{Sum, Subtraction, Multiplication, Division, OpenBracket, ClosedBracket}
	want := map[Operator]map[Operator]bool{
		Sum:            {Sum: true, Subtraction: true},
		Subtraction:    {Sum: true, Subtraction: true},
		Multiplication: {Sum: true, Subtraction: true, Multiplication: true, Division: true},
		Division:       {Sum: true, Subtraction: true, Multiplication: true, Division: true},
		OpenBracket:    {},
		ClosedBracket:  {},
	}
	for _, top := range all {
		for _, in := range all {
			if got := top.PrecedenceAtLeast(in); got != want[top][in] {
				t.Errorf("%v.PrecedenceAtLeast(%v): want %t, got %t", top, in, want[top][in], got)
			}
		}
	}
}

func TestOperatorEvaluate(t *testing.T) {
	cases := []struct {
		op   Operator
		a, b float64
		r    float64
	}{
		{Sum, 3, 4, 7},
		{Subtraction, 3, 4, -1},
		{Multiplication, 3, 4, 12},
		{Division, 3, 4, 0.75},
		{Division, 6, 0, math.Inf(1)},
		{Division, -6, 0, math.Inf(-1)},
	}
	for _, c := range cases {
		if got := c.op.Evaluate(c.a, c.b); got != c.r {
			t.Errorf("%g %s %g: want %g, got %g", c.a, c.op.Symbol(), c.b, c.r, got)
		}
	}
	if got := Division.Evaluate(0, 0); !math.IsNaN(got) {
		t.Errorf("0 / 0: want NaN, got %g", got)
	}
}

func TestOperatorEvaluateBracketPanics(t *testing.T) {
	for _, op := range []Operator{OpenBracket, ClosedBracket} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%v: no panic", op)
				}
			}()
			op.Evaluate(1, 2)
		}()
	}
}
