package rsa_test

import (
	"fmt"
	"math/big"

	"github.com/cryptolab/algebra/cryptolib/rsa"
)

func ExampleGenerateKeyFromPrimes() {
	// The textbook toy key n = 61 · 53 = 3233.
	key, err := rsa.GenerateKeyFromPrimes(big.NewInt(61), big.NewInt(53), nil)
	if err != nil {
		panic(err)
	}

	c, err := key.Encrypt(big.NewInt(42))
	if err != nil {
		panic(err)
	}
	m, err := key.Decrypt(c)
	if err != nil {
		panic(err)
	}
	fmt.Println(m)
	// Output: 42
}
