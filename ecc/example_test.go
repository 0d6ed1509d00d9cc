package ecc_test

import (
	"fmt"

	"github.com/cryptolab/algebra/ecc"
	"github.com/cryptolab/algebra/field"
)

func ExamplePoint_Double() {
	f, err := field.GF(17)
	if err != nil {
		panic(err)
	}
	curve, err := ecc.NewCurveFromInt64(f, 2, 2)
	if err != nil {
		panic(err)
	}
	p, err := curve.PointFromInt64(5, 1)
	if err != nil {
		panic(err)
	}

	double, err := p.Double()
	if err != nil {
		panic(err)
	}
	fmt.Println(double)
	// Output: (6, 3)
}
