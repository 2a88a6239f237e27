package calc

import (
	"strconv"

	"github.com/agbru/fraccalc/internal/fraction"
)

// Result is the outcome of one evaluated expression. Relational operators
// produce a Bool result; everything else produces a Value.
type Result struct {
	// Expr is the expression as given.
	Expr string
	// Op is the metric label of the operator applied ("value" for a bare operand).
	Op string
	// Value is the fraction produced by arithmetic and unary operators.
	Value fraction.Fraction
	// Bool is the outcome of a relational operator.
	Bool bool
	// IsBool reports whether Bool, rather than Value, holds the result.
	IsBool bool
}

// String renders the result the way the fraction or bool prints.
func (r Result) String() string {
	if r.IsBool {
		return strconv.FormatBool(r.Bool)
	}
	return r.Value.String()
}
