package zmod

import (
	"fmt"
	"math/big"

	"github.com/cryptolab/algebra/arith"
	"github.com/cryptolab/algebra/internal/utils"
)

// enumBound caps the element views; a ring larger than this can still be
// computed in, just not listed.
const enumBound = 1 << 20

// tableBound caps the operation tables, which are quadratic in n.
const tableBound = 1 << 10

// Ring is the ring of integers modulo n. It is immutable and safe to share.
type Ring struct {
	n *big.Int
}

// NewRing returns Z/nZ for n >= 1.
func NewRing(n int64) (*Ring, error) {
	return NewRingBig(big.NewInt(n))
}

// NewRingBig is NewRing for big moduli.
func NewRingBig(n *big.Int) (*Ring, error) {
	if n.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %v", arith.ErrNonPositiveModulus, n)
	}
	return &Ring{n: new(big.Int).Set(n)}, nil
}

// Order returns the number of elements, n.
func (r *Ring) Order() *big.Int { return new(big.Int).Set(r.n) }

// Modulus returns n.
func (r *Ring) Modulus() *big.Int { return new(big.Int).Set(r.n) }

func (r *Ring) String() string {
	return fmt.Sprintf("ring of integers modulo %v", r.n)
}

// Element constructs a ring element from an integer-like value: intXX,
// uintXX, *big.Int, big.Int, string (base-prefixed) or []byte. Panics on
// unsupported types, like any misuse of the API; out-of-range values reduce.
func (r *Ring) Element(v interface{}) Int {
	value := utils.FromInterface(v)
	z, _ := NewBig(&value, r.n)
	return z
}

// Zero returns the additive identity.
func (r *Ring) Zero() Int { return r.Element(0) }

// One returns the multiplicative identity.
func (r *Ring) One() Int { return r.Element(1) }

// Contains reports whether x is an element of this ring.
func (r *Ring) Contains(x Int) bool {
	return x.modulus != nil && x.modulus.Cmp(r.n) == 0
}

// Elements lists 0, 1, ..., n-1 in order. Rings beyond the enumeration
// bound report arith.ErrBoundExceeded.
func (r *Ring) Elements() ([]Int, error) {
	if !r.n.IsInt64() || r.n.Int64() > enumBound {
		return nil, fmt.Errorf("%w: cannot enumerate %v elements", arith.ErrBoundExceeded, r.n)
	}
	n := r.n.Int64()
	out := make([]Int, n)
	for i := int64(0); i < n; i++ {
		out[i] = r.Element(i)
	}
	return out, nil
}

// Units lists the invertible elements in ascending order.
func (r *Ring) Units() ([]Int, error) {
	elems, err := r.Elements()
	if err != nil {
		return nil, err
	}
	one := big.NewInt(1)
	var units []Int
	for _, e := range elems {
		if arith.GCD(e.value, r.n).Cmp(one) == 0 {
			units = append(units, e)
		}
	}
	return units, nil
}

// UnitCount returns phi(n), the size of the unit group. This works for
// rings too large to enumerate.
func (r *Ring) UnitCount() (*big.Int, error) {
	return arith.EulerPhi(r.n)
}

// AdditionTable returns the n-by-n table t[i][j] = (i + j) mod n as plain
// integers, for rendering. Bounded by the quadratic size.
func (r *Ring) AdditionTable() ([][]int64, error) {
	return r.table(func(i, j, n int64) int64 { return (i + j) % n })
}

// MultiplicationTable returns the n-by-n table t[i][j] = (i * j) mod n.
func (r *Ring) MultiplicationTable() ([][]int64, error) {
	return r.table(func(i, j, n int64) int64 { return (i * j) % n })
}

func (r *Ring) table(op func(i, j, n int64) int64) ([][]int64, error) {
	if !r.n.IsInt64() || r.n.Int64() > tableBound {
		return nil, fmt.Errorf("%w: no operation table for modulus %v (limit %d)", arith.ErrBoundExceeded, r.n, tableBound)
	}
	n := r.n.Int64()
	t := make([][]int64, n)
	for i := int64(0); i < n; i++ {
		row := make([]int64, n)
		for j := int64(0); j < n; j++ {
			row[j] = op(i, j, n)
		}
		t[i] = row
	}
	return t, nil
}
