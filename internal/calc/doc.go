// Package calc evaluates single-line fraction expressions.
//
// An expression is one operand, a unary operator followed by an operand, or
// two operands joined by a binary operator, all separated by whitespace:
//
//	3/4
//	! 3/4
//	1/2 + 1/3
//	2/4 == 1/2
//
// Operands are anything fraction.Parse accepts without embedded spaces
// ("p/q", "p", "0.25") plus the names unity, zero and ans.
package calc
