package fraction_test

import (
	"errors"
	"fmt"

	"github.com/agbru/fraccalc/internal/fraction"
)

func ExampleNew() {
	fmt.Println(fraction.New(6, 8))
	fmt.Println(fraction.New(3, -4))
	fmt.Println(fraction.New(0, 7))
	// Output:
	// 3 / 4
	// -3 / 4
	// 0
}

func ExampleFraction_Add() {
	sum := fraction.New(1, 2).Add(fraction.New(1, 3))
	product := fraction.New(2, 3).Mul(fraction.New(3, 4))
	fmt.Println(sum, "|", product)
	// Output:
	// 5 / 6 | 1 / 2
}

func ExampleFraction_Div() {
	_, err := fraction.New(1, 2).Div(fraction.New(0, 5))
	fmt.Println(errors.Is(err, fraction.ErrDivideByZero))
	// Output:
	// true
}

func ExampleFraction_PostInc() {
	f := fraction.New(3, 4)
	before := f.PostInc()
	fmt.Println(before, "->", f)
	// Output:
	// 3 / 4 -> 7 / 4
}

func ExampleParse() {
	for _, s := range []string{"10/4", "-2 6", "0.5", "9"} {
		f, err := fraction.Parse(s)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		fmt.Println(f)
	}
	// Output:
	// 5 / 2
	// -1 / 3
	// 1 / 2
	// 9
}
