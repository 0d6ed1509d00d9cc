package shamir_test

import (
	"fmt"

	"github.com/cryptolab/algebra/cryptolib/shamir"
	"github.com/cryptolab/algebra/field"
)

func ExampleReconstruct() {
	f, err := field.GF(97)
	if err != nil {
		panic(err)
	}

	// Three shares of f(x) = 42 + 7x + 23x² over GF(97).
	shares := []shamir.Share{
		{X: f.FromInt64(1), Y: f.FromInt64(72)},
		{X: f.FromInt64(2), Y: f.FromInt64(51)},
		{X: f.FromInt64(3), Y: f.FromInt64(76)},
	}
	secret, err := shamir.Reconstruct(shares)
	if err != nil {
		panic(err)
	}
	fmt.Println(secret)
	// Output: 42
}
