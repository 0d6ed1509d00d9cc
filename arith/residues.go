package arith

import (
	"fmt"
	"math/big"
)

// Legendre computes the Legendre symbol (a/p) by Euler's criterion: 0 when p
// divides a, 1 when a is a nonzero square modulo p, -1 otherwise. p must be
// an odd prime.
func Legendre(a, p *big.Int) (int, error) {
	if p.Cmp(bigTwo) <= 0 || !IsPrime(p) {
		return 0, fmt.Errorf("%w: %v", ErrNotOddPrime, p)
	}
	v := new(big.Int).Mod(a, p)
	if v.Sign() == 0 {
		return 0, nil
	}
	e := new(big.Int).Sub(p, bigOne)
	e.Rsh(e, 1)
	v.Exp(v, e, p)
	if v.Cmp(bigOne) == 0 {
		return 1, nil
	}
	return -1, nil
}

// Jacobi computes the Jacobi symbol (a/n) for odd positive n, generalizing
// the Legendre symbol, via the binary algorithm.
func Jacobi(a, n *big.Int) (int, error) {
	if n.Sign() <= 0 || n.Bit(0) == 0 {
		return 0, fmt.Errorf("jacobi symbol requires odd positive n, got %v", n)
	}
	x := new(big.Int).Mod(a, n)
	y := new(big.Int).Set(n)
	result := 1
	for x.Sign() != 0 {
		// pull out factors of two; (2/y) = -1 iff y = ±3 (mod 8)
		for x.Bit(0) == 0 {
			x.Rsh(x, 1)
			if r := y.Bits()[0] & 7; r == 3 || r == 5 {
				result = -result
			}
		}
		// quadratic reciprocity flip
		x, y = y, x
		if x.Bits()[0]&3 == 3 && y.Bits()[0]&3 == 3 {
			result = -result
		}
		x.Mod(x, y)
	}
	if y.Cmp(bigOne) == 0 {
		return result, nil
	}
	return 0, nil
}

// SqrtMod returns a square root of a modulo the odd prime p, using the
// direct exponent when p = 3 (mod 4) and Tonelli-Shanks otherwise. The other
// root is p minus the returned one. Fails with ErrNonResidue when a is not a
// square modulo p.
func SqrtMod(a, p *big.Int) (*big.Int, error) {
	sym, err := Legendre(a, p)
	if err != nil {
		return nil, err
	}
	v := new(big.Int).Mod(a, p)
	if sym == 0 {
		return v, nil
	}
	if sym < 0 {
		return nil, fmt.Errorf("%w: legendre(%v, %v) = -1", ErrNonResidue, a, p)
	}

	if p.Bits()[0]&3 == 3 {
		e := new(big.Int).Add(p, bigOne)
		e.Rsh(e, 2)
		return v.Exp(v, e, p), nil
	}

	// Tonelli-Shanks: p-1 = q * 2^s with q odd
	q := new(big.Int).Sub(p, bigOne)
	s := 0
	for q.Bit(0) == 0 {
		q.Rsh(q, 1)
		s++
	}

	// any non-residue serves as the correction generator
	z := big.NewInt(2)
	for {
		if sym, _ := Legendre(z, p); sym == -1 {
			break
		}
		z.Add(z, bigOne)
	}

	m := s
	c := new(big.Int).Exp(z, q, p)
	t := new(big.Int).Exp(v, q, p)
	r := new(big.Int).Exp(v, new(big.Int).Rsh(new(big.Int).Add(q, bigOne), 1), p)

	tmp := new(big.Int)
	for t.Cmp(bigOne) != 0 {
		// least i with t^(2^i) = 1
		i := 0
		tmp.Set(t)
		for tmp.Cmp(bigOne) != 0 {
			tmp.Mul(tmp, tmp)
			tmp.Mod(tmp, p)
			i++
		}

		b := new(big.Int).Set(c)
		for j := 0; j < m-i-1; j++ {
			b.Mul(b, b)
			b.Mod(b, p)
		}
		m = i
		c.Mul(b, b)
		c.Mod(c, p)
		t.Mul(t, c)
		t.Mod(t, p)
		r.Mul(r, b)
		r.Mod(r, p)
	}
	return r, nil
}

// PrimitiveRoot returns the smallest generator of the multiplicative group
// modulo n. Only n in {1, 2, 4, p^k, 2p^k} have one; the scan reports
// ErrNoPrimitiveRoot for the rest. The candidate budget defaults to 2^20
// (override with WithSearchBound) and overrunning it is ErrBoundExceeded.
func PrimitiveRoot(n *big.Int, opts ...Option) (*big.Int, error) {
	if n.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrNonPositiveModulus, n)
	}
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	bound := cfg.searchBound
	if bound == 0 {
		bound = 1 << 20
	}

	if n.Cmp(bigTwo) <= 0 {
		// trivial groups; 0 generates mod 1 conventionally, 1 generates mod 2
		return new(big.Int).Sub(n, bigOne), nil
	}

	phi, err := EulerPhi(n)
	if err != nil {
		return nil, err
	}
	phiFactors, err := Factor(phi)
	if err != nil {
		return nil, err
	}

	e, pow := new(big.Int), new(big.Int)
	g := big.NewInt(1)
	for count := uint64(0); count < bound; count++ {
		g.Add(g, bigOne)
		if g.Cmp(n) >= 0 {
			return nil, fmt.Errorf("%w: modulus %v", ErrNoPrimitiveRoot, n)
		}
		if GCD(g, n).Cmp(bigOne) != 0 {
			continue
		}
		isRoot := true
		for _, pp := range phiFactors {
			e.Div(phi, pp.Prime)
			pow.Exp(g, e, n)
			if pow.Cmp(bigOne) == 0 {
				isRoot = false
				break
			}
		}
		if isRoot {
			return new(big.Int).Set(g), nil
		}
	}
	return nil, fmt.Errorf("%w: no primitive root modulo %v below %d candidates", ErrBoundExceeded, n, bound)
}
