package arith_test

import (
	"fmt"
	"math/big"

	"github.com/cryptolab/algebra/arith"
)

func ExampleCRT() {
	// Sun Tzu's puzzle: x ≡ 2 (mod 3), x ≡ 3 (mod 5), x ≡ 2 (mod 7).
	x, err := arith.CRT(
		[]*big.Int{big.NewInt(2), big.NewInt(3), big.NewInt(2)},
		[]*big.Int{big.NewInt(3), big.NewInt(5), big.NewInt(7)},
	)
	if err != nil {
		panic(err)
	}
	fmt.Println(x)
	// Output: 23
}
