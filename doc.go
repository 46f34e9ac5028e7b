// Package calculator implements a floating-point arithmetic calculator.
//
// Expressions are ordinary infix arithmetic: numbers, the four operators
// + - * / with the usual precedence, and parentheses. "8 - 3 - 2" is 3, and
// "(3 + 4) * 2" is 14. The word ans stands for the result of the previous
// evaluation, which callers pass in explicitly as an Ans; nothing is kept
// between calls.
//
// Parsing uses the shunting-yard algorithm to build a binary expression tree
// whose leaves are values. Division follows IEEE-754, so "6 / 0" is +Inf.
package calculator
