package calc

import (
	"context"
	"strings"

	"github.com/agbru/fraccalc/internal/fraction"
)

type unaryOp struct {
	label string
	apply func(fraction.Fraction) (fraction.Fraction, error)
}

type binaryOp struct {
	label   string
	arith   func(ctx context.Context, x, y fraction.Fraction) (fraction.Fraction, error)
	compare func(x, y fraction.Fraction) bool
}

func pure(fn func(fraction.Fraction) fraction.Fraction) func(fraction.Fraction) (fraction.Fraction, error) {
	return func(x fraction.Fraction) (fraction.Fraction, error) { return fn(x), nil }
}

func pure2(fn func(x, y fraction.Fraction) fraction.Fraction) func(context.Context, fraction.Fraction, fraction.Fraction) (fraction.Fraction, error) {
	return func(_ context.Context, x, y fraction.Fraction) (fraction.Fraction, error) { return fn(x, y), nil }
}

func div(_ context.Context, x, y fraction.Fraction) (fraction.Fraction, error) { return x.Div(y) }

func mod(ctx context.Context, x, y fraction.Fraction) (fraction.Fraction, error) {
	return x.ModContext(ctx, y)
}

var (
	increment = unaryOp{"inc", pure(func(x fraction.Fraction) fraction.Fraction { return x.Inc() })}
	decrement = unaryOp{"dec", pure(func(x fraction.Fraction) fraction.Fraction { return x.Dec() })}
	recip     = unaryOp{"recip", fraction.Fraction.Reciprocal}
)

var unaryOps = map[string]unaryOp{
	"-":     {"neg", pure(fraction.Fraction.Neg)},
	"+":     {"plus", pure(fraction.Fraction.Plus)},
	"!":     recip,
	"recip": recip,
	"++":    increment,
	"inc":   increment,
	"--":    decrement,
	"dec":   decrement,
}

var binaryOps = map[string]binaryOp{
	"+":  {label: "add", arith: pure2(fraction.Add)},
	"-":  {label: "sub", arith: pure2(fraction.Sub)},
	"*":  {label: "mul", arith: pure2(fraction.Mul)},
	"/":  {label: "div", arith: div},
	"%":  {label: "mod", arith: mod},
	"==": {label: "eq", compare: fraction.Fraction.Equal},
	"!=": {label: "ne", compare: fraction.Fraction.NotEqual},
	"<":  {label: "lt", compare: fraction.Fraction.Less},
	"<=": {label: "le", compare: fraction.Fraction.LessEqual},
	">":  {label: "gt", compare: fraction.Fraction.Greater},
	">=": {label: "ge", compare: fraction.Fraction.GreaterEqual},
}

// Operators returns the unary and binary operator tokens, for help output and
// shell completion.
func Operators() (unary, binary []string) {
	unary = []string{"-", "+", "!", "recip", "++", "inc", "--", "dec"}
	binary = []string{"+", "-", "*", "/", "%", "==", "!=", "<", "<=", ">", ">="}
	return unary, binary
}

// Names are the operand keywords understood by the evaluator.
var Names = []string{"unity", "zero", "ans"}

// isOperatorToken reports whether tok is reserved as an operator and cannot
// be an operand.
func isOperatorToken(tok string) bool {
	_, u := unaryOps[strings.ToLower(tok)]
	_, b := binaryOps[tok]
	return u || b
}
