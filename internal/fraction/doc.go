// Package fraction implements an exact rational number value type.
//
// A Fraction is a numerator/denominator pair of fixed-width signed integers
// that is kept in lowest terms at all times. The sign is carried by the
// numerator, the denominator is always strictly positive, and zero has the
// single representation 0/1. Because every live value is canonical, two
// fractions are equal exactly when their fields are equal, so values can be
// compared with == and used as map keys.
//
// # Error classes
//
// Two failure classes are kept apart:
//
//   - Constructing a fraction with a zero denominator ([New], [Fraction.Scan])
//     is a fatal programming error and panics with a [*ConstructionError].
//     The fraccalc command never recovers from it.
//   - Division, modulo and reciprocal by or of zero return an [*OpError]
//     wrapping [ErrDivideByZero] or [ErrUndefinedReciprocal]. These are
//     ordinary errors the caller is expected to handle.
//
// [TryNew] and [Parse] are the recoverable entry points for untrusted input.
//
// # Overflow
//
// Arithmetic is performed on int64 without overflow detection. Results whose
// intermediate products exceed the int64 range wrap around silently.
package fraction
