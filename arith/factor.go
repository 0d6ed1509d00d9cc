package arith

import (
	"fmt"
	"math/big"
	"sort"
)

// PrimePower is one term of a prime factorization.
type PrimePower struct {
	Prime *big.Int
	Exp   int
}

// Factor returns the prime factorization of n as prime powers in ascending
// prime order. Factor(1) is empty. Factorization is by trial division
// against the sieve; a remaining cofactor is accepted when prime and
// rejected with ErrBoundExceeded when composite, since finding its factors
// would exceed teaching scale.
func Factor(n *big.Int) ([]PrimePower, error) {
	if n.Sign() <= 0 {
		return nil, fmt.Errorf("cannot factor %v: input must be positive", n)
	}

	m := new(big.Int).Set(n)
	var out []PrimePower
	s := sieve()
	q, r, sq := new(big.Int), new(big.Int), new(big.Int)

	for p := uint(2); p < sieveBound; p++ {
		if s.Test(p) {
			continue
		}
		if m.Cmp(bigOne) == 0 {
			break
		}
		pb := new(big.Int).SetUint64(uint64(p))
		sq.Mul(pb, pb)
		if sq.Cmp(m) > 0 {
			// no factor up to sqrt(m), so m itself is prime
			out = append(out, PrimePower{Prime: new(big.Int).Set(m), Exp: 1})
			m.Set(bigOne)
			break
		}
		exp := 0
		for {
			q.QuoRem(m, pb, r)
			if r.Sign() != 0 {
				break
			}
			m.Set(q)
			exp++
		}
		if exp > 0 {
			out = append(out, PrimePower{Prime: pb, Exp: exp})
		}
	}

	if m.Cmp(bigOne) != 0 {
		if !IsPrime(m) {
			return nil, fmt.Errorf("%w: cofactor %v is composite with no prime factor below %d", ErrBoundExceeded, m, sieveBound)
		}
		out = append(out, PrimePower{Prime: new(big.Int).Set(m), Exp: 1})
	}
	return out, nil
}

// Divisors returns all positive divisors of n in ascending order.
func Divisors(n *big.Int) ([]*big.Int, error) {
	factors, err := Factor(n)
	if err != nil {
		return nil, err
	}
	divs := []*big.Int{big.NewInt(1)}
	for _, pp := range factors {
		cur := len(divs)
		pk := new(big.Int).Set(bigOne)
		for e := 0; e < pp.Exp; e++ {
			pk = new(big.Int).Mul(pk, pp.Prime)
			for i := 0; i < cur; i++ {
				divs = append(divs, new(big.Int).Mul(divs[i], pk))
			}
		}
	}
	sort.Slice(divs, func(i, j int) bool { return divs[i].Cmp(divs[j]) < 0 })
	return divs, nil
}

// EulerPhi returns the number of integers in [1, n] coprime to n, computed
// from the factorization of n.
func EulerPhi(n *big.Int) (*big.Int, error) {
	factors, err := Factor(n)
	if err != nil {
		return nil, err
	}
	phi := big.NewInt(1)
	tmp := new(big.Int)
	for _, pp := range factors {
		// p^(e-1) * (p-1)
		tmp.Sub(pp.Prime, bigOne)
		phi.Mul(phi, tmp)
		for e := 1; e < pp.Exp; e++ {
			phi.Mul(phi, pp.Prime)
		}
	}
	return phi, nil
}
