package fraction

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Precision is the scale used by FromFloat. Floating-point inputs are
// approximated to five decimal digits.
const Precision = 100_000

// Fraction is an exact rational number p/q held in lowest terms.
//
// The denominator is stored biased by one so that the zero value of the type
// is the valid fraction 0/1. Valid values are obtained from the constructors
// in this package, from arithmetic on valid values, or by copying a valid
// value. Fraction has value semantics: assigning it copies it.
//
// The zero value is 0/1, not 1/1. A fraction constructed with no arguments
// is one; use One for that form.
type Fraction struct {
	p   int64 // numerator, carries the sign
	qm1 int64 // denominator minus one, never negative
}

var (
	unity = New(1, 1)
	zero  = New(0, 1)
)

// Unity returns the multiplicative identity 1/1.
func Unity() Fraction { return unity }

// Zero returns the additive identity 0/1.
func Zero() Fraction { return zero }

// New returns the fraction num/den reduced to lowest terms with the sign moved
// to the numerator.
//
// A zero denominator does not describe a value. New treats it as a fatal
// error and panics with a *ConstructionError wrapping ErrZeroDenominator.
// Use TryNew when the denominator comes from untrusted input.
//
// Examples:
//
//	New(6, 8)   → 3 / 4
//	New(3, -4)  → -3 / 4
//	New(0, 7)   → 0
func New(num, den int64) Fraction {
	f, err := TryNew(num, den)
	if err != nil {
		panic(err)
	}
	return f
}

// TryNew is like New but returns the *ConstructionError instead of
// panicking.
func TryNew(num, den int64) (Fraction, error) {
	if den == 0 {
		return Fraction{}, &ConstructionError{Num: num, Den: den, Err: ErrZeroDenominator}
	}
	return normalize(num, den), nil
}

// One returns 1/1, the value of a fraction built without arguments.
func One() Fraction { return New(1, 1) }

// FromInt returns the whole number num/1.
func FromInt(num int64) Fraction { return New(num, 1) }

// FromFloat approximates d by floor(d·Precision)/Precision in lowest terms.
// The conversion is lossy beyond five decimal digits. NaN and infinities
// cannot be approximated and cause a panic with a *ConstructionError
// wrapping ErrNotFinite; so do values whose scaled numerator would not fit
// in an int64 (|d| of about 9.2e13 or more), wrapping ErrOutOfRange.
func FromFloat(d float64) Fraction {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		panic(&ConstructionError{Value: d, Err: ErrNotFinite})
	}
	if !fitsScaled(d) {
		panic(&ConstructionError{Value: d, Err: ErrOutOfRange})
	}
	return normalize(int64(math.Floor(d*Precision)), Precision)
}

// fitsScaled reports whether floor(d·Precision) is representable as an
// int64 other than math.MinInt64.
func fitsScaled(d float64) bool {
	return math.Abs(math.Floor(d*Precision)) < 1<<63
}

// Num returns the numerator. Its sign is the sign of the fraction.
func (f Fraction) Num() int64 { return f.p }

// Den returns the denominator, which is always positive.
func (f Fraction) Den() int64 { return f.qm1 + 1 }

// Set assigns the value of x to f and returns f. Assigning a fraction to
// itself leaves it untouched.
func (f *Fraction) Set(x *Fraction) *Fraction {
	if f != x {
		f.p, f.qm1 = x.p, x.qm1
	}
	return f
}

// IsZero reports whether f is 0/1.
func (f Fraction) IsZero() bool { return f.p == 0 }

// Sign returns -1, 0 or +1 depending on the sign of f.
func (f Fraction) Sign() int {
	switch {
	case f.p < 0:
		return -1
	case f.p > 0:
		return 1
	}
	return 0
}

// Float64 returns the nearest float64 to f.
func (f Fraction) Float64() float64 {
	return float64(f.p) / float64(f.Den())
}

// normalize reduces the raw pair (p, q), q != 0, to its canonical form:
// zero becomes 0/1, a negative denominator moves its sign to the numerator,
// and both terms are divided by their greatest common divisor.
func normalize(p, q int64) Fraction {
	if p == 0 {
		return Fraction{}
	}
	if q < 0 {
		p, q = -p, -q
	}
	g := GCD(abs(p), q)
	return Fraction{p: p / g, qm1: q/g - 1}
}

// GCD returns the greatest common divisor of the non-negative integers a and
// b using Euclid's algorithm. GCD(a, 0) is a.
func GCD[T constraints.Integer](a, b T) T {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of the positive integers a and b,
// computed as (a / GCD(a, b)) * b.
func LCM[T constraints.Integer](a, b T) T {
	return (a / GCD(a, b)) * b
}

func abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
