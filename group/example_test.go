package group_test

import (
	"fmt"
	"math/big"

	"github.com/cryptolab/algebra/group"
)

func ExampleBabyStepGiantStep() {
	units, err := group.Units(23)
	if err != nil {
		panic(err)
	}
	base, err := units.Element(5)
	if err != nil {
		panic(err)
	}
	target, err := units.Element(2)
	if err != nil {
		panic(err)
	}

	// 5 generates all of (Z/23Z)*, so the log is unique mod 22.
	k, err := group.BabyStepGiantStep(base, target, big.NewInt(22))
	if err != nil {
		panic(err)
	}
	fmt.Println(k)
	// Output: 2
}
