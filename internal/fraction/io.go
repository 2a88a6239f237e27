package fraction

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// String returns "p" when the denominator is 1 and "p / q" otherwise.
func (f Fraction) String() string {
	if f.qm1 == 0 {
		return strconv.FormatInt(f.p, 10)
	}
	return strconv.FormatInt(f.p, 10) + " / " + strconv.FormatInt(f.Den(), 10)
}

// Scan implements fmt.Scanner. It reads two whitespace-separated integers,
// the numerator then the denominator, and stores the reduced fraction in f.
// A zero denominator panics exactly as New does.
func (f *Fraction) Scan(state fmt.ScanState, _ rune) error {
	num, err := scanInt(state)
	if err != nil {
		return err
	}
	den, err := scanInt(state)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	*f = New(num, den)
	return nil
}

func scanInt(state fmt.ScanState) (int64, error) {
	tok, err := state.Token(true, func(r rune) bool {
		return r == '-' || r == '+' || unicode.IsDigit(r)
	})
	if err != nil {
		return 0, err
	}
	if len(tok) == 0 {
		if _, _, err := state.ReadRune(); err != nil {
			return 0, io.EOF
		}
		_ = state.UnreadRune()
		return 0, ErrSyntax
	}
	return strconv.ParseInt(string(tok), 10, 64)
}

// Read reads a numerator and a denominator from r and returns the fraction
// they describe. It returns io.EOF when r is exhausted before the numerator,
// and panics like New on a zero denominator.
//
// Callers reading several fractions from one stream should pass an
// io.RuneScanner such as *bufio.Reader so no input is lost between calls.
func Read(r io.Reader) (Fraction, error) {
	var num, den int64
	if _, err := fmt.Fscan(r, &num, &den); err != nil {
		return Fraction{}, err
	}
	return New(num, den), nil
}

// Parse converts s into a fraction. Accepted forms are "p", "p/q", "p / q",
// "p q" and decimal literals such as "0.25" or "-1e-3", which are converted
// with FromFloat. Errors are reported as *ParseError; a zero denominator is
// reported rather than raised, as are integers outside the int64 range
// (strconv.ErrRange) and decimals too large for FromFloat (ErrOutOfRange).
func Parse(s string) (Fraction, error) {
	input := s
	if strings.Count(s, "/") > 1 {
		return Fraction{}, &ParseError{Input: input, Err: ErrSyntax}
	}
	fields := strings.Fields(strings.Replace(s, "/", " ", 1))
	switch len(fields) {
	case 1:
		num, err := strconv.ParseInt(fields[0], 10, 64)
		if err == nil {
			return FromInt(num), nil
		}
		if errors.Is(err, strconv.ErrRange) {
			return Fraction{}, &ParseError{Input: input, Err: err}
		}
		d, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return Fraction{}, &ParseError{Input: input, Err: ErrSyntax}
		}
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return Fraction{}, &ParseError{Input: input, Err: ErrNotFinite}
		}
		if !fitsScaled(d) {
			return Fraction{}, &ParseError{Input: input, Err: ErrOutOfRange}
		}
		return FromFloat(d), nil
	case 2:
		num, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return Fraction{}, &ParseError{Input: input, Err: err}
		}
		den, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return Fraction{}, &ParseError{Input: input, Err: err}
		}
		f, err := TryNew(num, den)
		if err != nil {
			return Fraction{}, &ParseError{Input: input, Err: err}
		}
		return f, nil
	}
	return Fraction{}, &ParseError{Input: input, Err: ErrSyntax}
}

// MustParse is like Parse but panics on error. It is intended for tests and
// package-level values.
func MustParse(s string) Fraction {
	f, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return f
}

// MarshalText implements encoding.TextMarshaler using the String form.
func (f Fraction) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (f *Fraction) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
