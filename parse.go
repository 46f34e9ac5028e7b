package calculator

import (
	"io"
	"strings"
)

// Expr = num | ans | Expr '+' Expr | Expr '-' Expr | Expr '*' Expr | Expr '/' Expr | '(' Expr ')'
//
// * and / bind tighter than + and -, and all four are left-associative.

// Parse builds an expression tree from a token sequence using the
// shunting-yard algorithm. The word ans resolves to ans. The result is a Value
// if the input is a single operand, otherwise an *Expression. Errors are
// *ParseError values; no input can cause a panic, except a negative
// StackCapacity option.
func Parse(tokens []Token, ans Ans, opts ...ParseOption) (Factor, error) {
	p := newparsectx(ans, opts)
	ops := NewStack[Operator](p.capacity, GrowBy(p.grow))
	operands := NewStack[Factor](p.capacity, GrowBy(p.grow))
	defer ops.Clear()
	defer operands.Clear()
	return p.shunt(tokens, ops, operands)
}

// ParseString is a shortcut to tokenize and parse a string.
func ParseString(src string, ans Ans, opts ...ParseOption) (Factor, error) {
	return ParseFrom(strings.NewReader(src), ans, opts...)
}

// ParseFrom is a shortcut to tokenize and parse an input.
func ParseFrom(src io.RuneScanner, ans Ans, opts ...ParseOption) (Factor, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(toks, ans, opts...)
}

// shunt runs the parse over the tokens. operand tracks whether the next token
// must start an operand, and depth counts the open brackets on ops.
func (p *parsectx) shunt(tokens []Token, ops *Stack[Operator], operands *Stack[Factor]) (Factor, error) {
	operand := true
	depth := 0
	for _, tok := range tokens {
		if tok.Kind == TokenNumber || tok.Kind == TokenNone || tok.is(AnsWord) {
			if !operand {
				return nil, errat(ErrMissingOperator, tok)
			}
			f, err := ResolveFactor(tok, p.ans)
			if err != nil {
				return nil, err
			}
			operands.Push(f)
			operand = false
			continue
		}

		op, err := BuildOperator(tok.Text)
		if err != nil {
			return nil, errat(ErrUnknownOperator, tok)
		}
		switch op {
		case ClosedBracket:
			if depth == 0 {
				return nil, errat(ErrMismatchedParentheses, tok)
			}
			if operand {
				// () or (1 +)
				return nil, errat(ErrMissingFactor, tok)
			}
			for {
				top, ok := ops.Pop()
				if !ok {
					return nil, errat(ErrMismatchedParentheses, tok)
				}
				if top == OpenBracket {
					break
				}
				if err := build(operands, top, tok); err != nil {
					return nil, err
				}
			}
			depth--
			continue
		case OpenBracket:
			if !operand {
				// 2 (3) has no implied multiplication.
				return nil, errat(ErrMissingOperator, tok)
			}
			depth++
		default:
			if operand {
				return nil, errat(ErrMissingFactor, tok)
			}
			operand = true
		}
		if err := reduce(ops, operands, op, tok); err != nil {
			return nil, err
		}
		ops.Push(op)
	}

	if depth > 0 {
		return nil, errat(ErrMismatchedParentheses, Token{Text: OpenBracket.Symbol()})
	}
	if operand {
		return nil, errat(ErrMissingFactor, Token{})
	}
	for {
		op, ok := ops.Pop()
		if !ok {
			break
		}
		if !op.Arithmetic() {
			return nil, errat(ErrMismatchedParentheses, Token{Text: op.Symbol()})
		}
		if err := build(operands, op, Token{}); err != nil {
			return nil, err
		}
	}

	if operands.Len() != 1 {
		return nil, errat(ErrMalformedExpression, Token{})
	}
	f, _ := operands.Pop()
	return f, nil
}

// reduce applies operators from the top of ops for as long as they bind at
// least as tightly as the incoming op, stopping at an open bracket.
func reduce(ops *Stack[Operator], operands *Stack[Factor], op Operator, tok Token) error {
	for {
		top, ok := ops.Peek()
		if !ok || top == OpenBracket || !top.PrecedenceAtLeast(op) {
			return nil
		}
		ops.Pop()
		if err := build(operands, top, tok); err != nil {
			return err
		}
	}
}
