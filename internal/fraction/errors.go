package fraction

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by this package. Use errors.Is to test for them.
var (
	// ErrZeroDenominator is the cause of every construction panic.
	ErrZeroDenominator = errors.New("zero denominator")
	// ErrNotFinite is raised when FromFloat is given NaN or an infinity.
	ErrNotFinite = errors.New("value is not finite")
	// ErrDivideByZero is returned by Div and Mod when the divisor is zero.
	ErrDivideByZero = errors.New("math error: attempted to divide by zero")
	// ErrUndefinedReciprocal is returned by Reciprocal for a zero fraction.
	ErrUndefinedReciprocal = errors.New("reciprocal of zero is undefined")
	// ErrSyntax is returned by Parse for malformed input.
	ErrSyntax = errors.New("invalid fraction syntax")
	// ErrOutOfRange is raised when a float64 value scaled by Precision does
	// not fit in an int64 numerator.
	ErrOutOfRange = errors.New("value out of range")
)

// ConstructionError is the panic value used when a Fraction cannot be built.
// It is not returned as an error by any exported function except TryNew.
type ConstructionError struct {
	// Num and Den are the raw values supplied to the constructor.
	Num, Den int64
	// Value is the floating-point input, set when FromFloat failed.
	Value float64
	// Err is ErrZeroDenominator, ErrNotFinite or ErrOutOfRange.
	Err error
}

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	if errors.Is(e.Err, ErrNotFinite) || errors.Is(e.Err, ErrOutOfRange) {
		return fmt.Sprintf("fraction: cannot construct from %v: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("fraction: cannot construct %d/%d: %v", e.Num, e.Den, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConstructionError) Unwrap() error { return e.Err }

// OpError describes a failed arithmetic operation.
type OpError struct {
	// Op is the operator symbol ("/", "%" or "!").
	Op string
	// X is the left (or only) operand.
	X Fraction
	// Y is the right operand. It is the zero value for unary operators.
	Y Fraction
	// Err is the cause: ErrDivideByZero, ErrUndefinedReciprocal,
	// ErrOutOfRange or a context error.
	Err error
}

// Error implements the error interface.
func (e *OpError) Error() string {
	if e.Op == "!" {
		return fmt.Sprintf("fraction: !(%s): %v", e.X, e.Err)
	}
	return fmt.Sprintf("fraction: (%s) %s (%s): %v", e.X, e.Op, e.Y, e.Err)
}

// Unwrap returns the underlying cause.
func (e *OpError) Unwrap() error { return e.Err }

// ParseError records the input that Parse rejected.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("fraction: parsing %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
