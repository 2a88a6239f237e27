package fraction

import (
	"context"
	"math"
)

// ─────────────────────────────────────────────────────────────────────────────
// Unary operators
// ─────────────────────────────────────────────────────────────────────────────

// Neg returns -x.
func (x Fraction) Neg() Fraction {
	return normalize(-x.p, x.Den())
}

// Plus returns +x, a fraction equal to x.
func (x Fraction) Plus() Fraction {
	return normalize(x.p, x.Den())
}

// Inc adds one to f in place (componendo) and returns the new value.
// Adding the denominator to the numerator keeps the pair reduced.
func (f *Fraction) Inc() Fraction {
	f.p += f.Den()
	return *f
}

// PostInc adds one to f in place and returns the value f had before.
func (f *Fraction) PostInc() Fraction {
	old := *f
	f.p += f.Den()
	return old
}

// Dec subtracts one from f in place (dividendo) and returns the new value.
func (f *Fraction) Dec() Fraction {
	f.p -= f.Den()
	return *f
}

// PostDec subtracts one from f in place and returns the value f had before.
func (f *Fraction) PostDec() Fraction {
	old := *f
	f.p -= f.Den()
	return old
}

// Reciprocal returns 1/x. The reciprocal of zero is undefined and yields an
// *OpError wrapping ErrUndefinedReciprocal.
func (x Fraction) Reciprocal() (Fraction, error) {
	if x.p == 0 {
		return Fraction{}, &OpError{Op: "!", X: x, Err: ErrUndefinedReciprocal}
	}
	return normalize(x.Den(), x.p), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Binary operators
// ─────────────────────────────────────────────────────────────────────────────

// Add returns x + y.
func (x Fraction) Add(y Fraction) Fraction {
	return normalize(x.p*y.Den()+y.p*x.Den(), x.Den()*y.Den())
}

// Sub returns x - y.
func (x Fraction) Sub(y Fraction) Fraction {
	return normalize(x.p*y.Den()-y.p*x.Den(), x.Den()*y.Den())
}

// Mul returns x * y.
func (x Fraction) Mul(y Fraction) Fraction {
	return normalize(x.p*y.p, x.Den()*y.Den())
}

// Div returns x / y. Dividing by zero returns an *OpError wrapping
// ErrDivideByZero and no value.
func (x Fraction) Div(y Fraction) (Fraction, error) {
	if y.p == 0 {
		return Fraction{}, &OpError{Op: "/", X: x, Y: y, Err: ErrDivideByZero}
	}
	return normalize(x.p*y.Den(), x.Den()*y.p), nil
}

// maxModSteps bounds the repeated subtraction in Mod. Larger quotients
// use math.Mod, which is exact for float64 operands.
const maxModSteps = 1 << 24

// modCheckInterval is how many subtractions ModContext performs between
// context checks.
const modCheckInterval = 1 << 16

// Mod returns the remainder of x modulo y carrying the sign of x.
//
// Both operands are converted to float64. The magnitude of y is subtracted
// from the magnitude of x until it is smaller than |y|, and the result is
// converted back with FromFloat, so it shares that constructor's precision
// limit. When the quotient exceeds maxModSteps the remainder is taken with
// math.Mod instead. A remainder too large for FromFloat yields ErrOutOfRange.
func (x Fraction) Mod(y Fraction) (Fraction, error) {
	return x.ModContext(context.Background(), y)
}

// ModContext is Mod with cancellation: ctx is checked before the
// subtraction loop and every modCheckInterval steps, and its error is
// returned wrapped in an *OpError.
func (x Fraction) ModContext(ctx context.Context, y Fraction) (Fraction, error) {
	if y.p == 0 {
		return Fraction{}, &OpError{Op: "%", X: x, Y: y, Err: ErrDivideByZero}
	}
	a := x.Float64()
	b := math.Abs(y.Float64())
	mod := math.Abs(a)
	if mod/b > maxModSteps {
		mod = math.Mod(mod, b)
	}
	for i := 0; mod >= b; i++ {
		if i%modCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Fraction{}, &OpError{Op: "%", X: x, Y: y, Err: err}
			}
		}
		mod -= b
	}
	if a < 0 {
		mod = -mod
	}
	if !fitsScaled(mod) {
		return Fraction{}, &OpError{Op: "%", X: x, Y: y, Err: ErrOutOfRange}
	}
	return FromFloat(mod), nil
}

// Free-function forms of the binary operators, for use as function values.

// Add returns x + y.
func Add(x, y Fraction) Fraction { return x.Add(y) }

// Sub returns x - y.
func Sub(x, y Fraction) Fraction { return x.Sub(y) }

// Mul returns x * y.
func Mul(x, y Fraction) Fraction { return x.Mul(y) }

// Div returns x / y; see Fraction.Div.
func Div(x, y Fraction) (Fraction, error) { return x.Div(y) }

// Mod returns x % y; see Fraction.Mod.
func Mod(x, y Fraction) (Fraction, error) { return x.Mod(y) }
