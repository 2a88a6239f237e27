package fraction

// Equal reports whether x and y represent the same number. Canonical form
// makes field equality sufficient.
func (x Fraction) Equal(y Fraction) bool { return x == y }

// NotEqual reports whether x and y differ.
func (x Fraction) NotEqual(y Fraction) bool { return x != y }

// Cmp compares x and y and returns -1, 0 or +1.
//
// Both numerators are scaled to the least common multiple of the
// denominators and compared as integers, so no floating-point error is
// involved.
func (x Fraction) Cmp(y Fraction) int {
	a, b := scaled(x, y)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (x Fraction) Less(y Fraction) bool         { return x.Cmp(y) < 0 }
func (x Fraction) LessEqual(y Fraction) bool    { return x.Cmp(y) <= 0 }
func (x Fraction) Greater(y Fraction) bool      { return x.Cmp(y) > 0 }
func (x Fraction) GreaterEqual(y Fraction) bool { return x.Cmp(y) >= 0 }

// scaled brings x and y to the common denominator LCM(qx, qy) and returns
// the two scaled numerators.
func scaled(x, y Fraction) (int64, int64) {
	qx, qy := x.Den(), y.Den()
	l := LCM(qx, qy)
	return x.p * (l / qx), y.p * (l / qy)
}
