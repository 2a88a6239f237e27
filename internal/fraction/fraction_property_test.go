package fraction

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// propertyBound keeps generated terms small enough that cross products and
// LCM scaling stay inside the int64 range.
const propertyBound = 100_000

// defaultTestParameters returns the gopter parameters shared by all property
// tests in this package.
func defaultTestParameters() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	return parameters
}

// genNumerator generates numerators of either sign, including zero.
func genNumerator() gopter.Gen {
	return gen.Int64Range(-propertyBound, propertyBound)
}

// genDenominator generates non-zero denominators of either sign.
func genDenominator() gopter.Gen {
	return gopter.CombineGens(gen.Int64Range(1, propertyBound), gen.Bool()).
		Map(func(values []interface{}) int64 {
			q := values[0].(int64)
			if values[1].(bool) {
				return -q
			}
			return q
		})
}

// genFraction generates arbitrary valid fractions.
func genFraction() gopter.Gen {
	return gopter.CombineGens(genNumerator(), genDenominator()).
		Map(func(values []interface{}) Fraction {
			return New(values[0].(int64), values[1].(int64))
		})
}

// genNonZeroFraction generates valid fractions other than zero.
func genNonZeroFraction() gopter.Gen {
	return genFraction().SuchThat(func(f Fraction) bool { return !f.IsZero() })
}

// TestCanonicalForm_PropertyBased verifies that every constructed fraction
// has a positive denominator and is reduced to lowest terms, with zero
// represented only as 0/1.
func TestCanonicalForm_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(defaultTestParameters())

	properties.Property("New(p, q) is canonical", prop.ForAll(
		func(p, q int64) bool {
			f := New(p, q)
			if f.Den() <= 0 {
				return false
			}
			if f.Num() == 0 {
				return f.Den() == 1
			}
			return GCD(abs(f.Num()), f.Den()) == 1
		},
		genNumerator(),
		genDenominator(),
	))

	properties.Property("New preserves the value p/q", prop.ForAll(
		func(p, q int64) bool {
			f := New(p, q)
			// p/q == n/d  <=>  p*d == n*q
			return p*f.Den() == f.Num()*q
		},
		genNumerator(),
		genDenominator(),
	))

	properties.Property("normalizing a canonical fraction is idempotent", prop.ForAll(
		func(f Fraction) bool {
			return New(f.Num(), f.Den()) == f
		},
		genFraction(),
	))

	properties.Property("sign migrates to the numerator", prop.ForAll(
		func(p, q int64) bool {
			if q < 0 {
				q = -q
			}
			return New(p, -q) == New(-p, q)
		},
		genNumerator(),
		genDenominator(),
	))

	properties.TestingRun(t)
}

// TestArithmeticIdentities_PropertyBased verifies the additive and
// multiplicative identities and the inverse relations between operators.
func TestArithmeticIdentities_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(defaultTestParameters())

	properties.Property("F + 0 == F", prop.ForAll(
		func(f Fraction) bool { return f.Add(Zero()) == f },
		genFraction(),
	))

	properties.Property("F * 1 == F", prop.ForAll(
		func(f Fraction) bool { return f.Mul(Unity()) == f },
		genFraction(),
	))

	properties.Property("F * 0 == 0", prop.ForAll(
		func(f Fraction) bool { return f.Mul(Zero()) == Zero() },
		genFraction(),
	))

	properties.Property("(F + G) - G == F", prop.ForAll(
		func(f, g Fraction) bool { return f.Add(g).Sub(g) == f },
		genFraction(),
		genFraction(),
	))

	properties.Property("addition and multiplication commute", prop.ForAll(
		func(f, g Fraction) bool {
			return f.Add(g) == g.Add(f) && f.Mul(g) == g.Mul(f)
		},
		genFraction(),
		genFraction(),
	))

	properties.Property("(F / G) * G == F for G != 0", prop.ForAll(
		func(f, g Fraction) bool {
			q, err := f.Div(g)
			if err != nil {
				return false
			}
			return q.Mul(g) == f
		},
		genFraction(),
		genNonZeroFraction(),
	))

	properties.Property("F * !F == 1 for F != 0", prop.ForAll(
		func(f Fraction) bool {
			r, err := f.Reciprocal()
			return err == nil && f.Mul(r) == Unity()
		},
		genNonZeroFraction(),
	))

	properties.Property("-(-F) == F and F + (-F) == 0", prop.ForAll(
		func(f Fraction) bool {
			return f.Neg().Neg() == f && f.Add(f.Neg()) == Zero()
		},
		genFraction(),
	))

	properties.Property("Inc then Dec restores F", prop.ForAll(
		func(f Fraction) bool {
			g := f
			g.Inc()
			if g != f.Add(Unity()) {
				return false
			}
			g.Dec()
			return g == f
		},
		genFraction(),
	))

	properties.TestingRun(t)
}

// TestOrdering_PropertyBased verifies that comparisons form a consistent
// total order.
func TestOrdering_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(defaultTestParameters())

	properties.Property("Cmp is antisymmetric", prop.ForAll(
		func(f, g Fraction) bool { return f.Cmp(g) == -g.Cmp(f) },
		genFraction(),
		genFraction(),
	))

	properties.Property("exactly one of <, ==, > holds", prop.ForAll(
		func(f, g Fraction) bool {
			n := 0
			for _, b := range []bool{f.Less(g), f.Equal(g), f.Greater(g)} {
				if b {
					n++
				}
			}
			return n == 1
		},
		genFraction(),
		genFraction(),
	))

	properties.Property("F < F + 1", prop.ForAll(
		func(f Fraction) bool { return f.Less(f.Add(Unity())) },
		genFraction(),
	))

	properties.Property("Cmp agrees with the sign of F - G", prop.ForAll(
		func(f, g Fraction) bool { return f.Cmp(g) == f.Sub(g).Sign() },
		genFraction(),
		genFraction(),
	))

	properties.TestingRun(t)
}

// TestTextRoundTrip_PropertyBased verifies that Parse reads back what String
// writes.
func TestTextRoundTrip_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(defaultTestParameters())

	properties.Property("Parse(String(F)) == F", prop.ForAll(
		func(f Fraction) bool {
			got, err := Parse(f.String())
			return err == nil && got == f
		},
		genFraction(),
	))

	properties.TestingRun(t)
}
