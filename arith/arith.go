// Package arith implements the integer number theory the rest of the module
// is built on: gcd and the extended Euclidean algorithm, modular inverses and
// exponentiation, factorization, primality testing, the Chinese remainder
// theorem and quadratic residues.
//
// Everything is implemented from first principles on *big.Int values. The
// algorithms favour readability over speed and several of them expose a step
// trace so a caller can show their intermediate states.
package arith

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	ErrNonPositiveModulus = errors.New("modulus must be positive")
	ErrNoInverse          = errors.New("no inverse")
	ErrNonCoprimeModuli   = errors.New("moduli are not pairwise coprime")
	ErrLengthMismatch     = errors.New("mismatched input lengths")
	ErrNotOddPrime        = errors.New("modulus is not an odd prime")
	ErrNonResidue         = errors.New("not a quadratic residue")
	ErrRetriesExceeded    = errors.New("retry limit exceeded")
	ErrBoundExceeded      = errors.New("search bound exceeded")
	ErrNoPrimitiveRoot    = errors.New("no primitive root exists")
)

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// GCD returns the greatest common divisor of a and b. The result is always
// non-negative; GCD(0, 0) = 0.
func GCD(a, b *big.Int) *big.Int {
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)
	for y.Sign() != 0 {
		x.Mod(x, y)
		x, y = y, x
	}
	return x
}

// LCM returns the least common multiple of a and b, non-negative.
// LCM(a, 0) = 0.
func LCM(a, b *big.Int) *big.Int {
	if a.Sign() == 0 || b.Sign() == 0 {
		return new(big.Int)
	}
	g := GCD(a, b)
	res := new(big.Int).Abs(a)
	res.Div(res, g)
	res.Mul(res, new(big.Int).Abs(b))
	return res
}

// XGCDStep is one row of the extended Euclidean table.
type XGCDStep struct {
	Quotient  *big.Int
	Remainder *big.Int
	S         *big.Int
	T         *big.Int
}

// XGCD returns g = gcd(a, b) along with Bézout coefficients x, y such that
// a*x + b*y = g.
func XGCD(a, b *big.Int) (g, x, y *big.Int) {
	g, x, y, _ = xgcd(a, b, false)
	return g, x, y
}

// XGCDSteps is XGCD with the intermediate table rows, one per division step.
func XGCDSteps(a, b *big.Int) (g, x, y *big.Int, steps []XGCDStep) {
	g, x, y, steps = xgcd(a, b, true)
	return g, x, y, steps
}

func xgcd(a, b *big.Int, trace bool) (*big.Int, *big.Int, *big.Int, []XGCDStep) {
	oldR, r := new(big.Int).Abs(a), new(big.Int).Abs(b)
	oldS, s := big.NewInt(1), new(big.Int)
	oldT, t := new(big.Int), big.NewInt(1)

	var steps []XGCDStep
	q, tmp := new(big.Int), new(big.Int)
	for r.Sign() != 0 {
		q.Div(oldR, r)

		tmp.Mul(q, r)
		oldR.Sub(oldR, tmp)
		oldR, r = r, oldR

		tmp.Mul(q, s)
		oldS.Sub(oldS, tmp)
		oldS, s = s, oldS

		tmp.Mul(q, t)
		oldT.Sub(oldT, tmp)
		oldT, t = t, oldT

		if trace {
			steps = append(steps, XGCDStep{
				Quotient:  new(big.Int).Set(q),
				Remainder: new(big.Int).Set(r),
				S:         new(big.Int).Set(s),
				T:         new(big.Int).Set(t),
			})
		}
	}

	x := oldS
	y := oldT
	if a.Sign() < 0 {
		x.Neg(x)
	}
	if b.Sign() < 0 {
		y.Neg(y)
	}
	return oldR, x, y, steps
}

// Inverse returns the multiplicative inverse of a modulo n, reduced to
// [0, n). It fails with ErrNoInverse when gcd(a, n) != 1.
func Inverse(a, n *big.Int) (*big.Int, error) {
	if n.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrNonPositiveModulus, n)
	}
	g, x, _ := XGCD(a, n)
	if g.Cmp(bigOne) != 0 {
		return nil, fmt.Errorf("%w of %v modulo %v (gcd = %v)", ErrNoInverse, a, n, g)
	}
	return x.Mod(x, n), nil
}

// PowStep records one iteration of square-and-multiply exponentiation. Bits
// are examined least significant first; Acc is the accumulator after the
// optional multiply and Square the running power of the base entering the
// next iteration.
type PowStep struct {
	Index  int
	Bit    uint
	Acc    *big.Int
	Square *big.Int
}

// PowMod returns base^exp modulo n using square-and-multiply. Negative
// exponents are handled by inverting the base first, which fails with
// ErrNoInverse when base is not a unit modulo n.
func PowMod(base, exp, n *big.Int) (*big.Int, error) {
	res, _, err := powMod(base, exp, n, false)
	return res, err
}

// PowModSteps is PowMod with the per-bit trace of the computation.
func PowModSteps(base, exp, n *big.Int) ([]PowStep, *big.Int, error) {
	res, steps, err := powMod(base, exp, n, true)
	return steps, res, err
}

func powMod(base, exp, n *big.Int, trace bool) (*big.Int, []PowStep, error) {
	if n.Sign() <= 0 {
		return nil, nil, fmt.Errorf("%w: %v", ErrNonPositiveModulus, n)
	}

	b := new(big.Int).Mod(base, n)
	e := exp
	if exp.Sign() < 0 {
		inv, err := Inverse(b, n)
		if err != nil {
			return nil, nil, err
		}
		b = inv
		e = new(big.Int).Neg(exp)
	}

	acc := new(big.Int).Mod(bigOne, n)
	sq := b
	var steps []PowStep
	for i := 0; i < e.BitLen(); i++ {
		bit := e.Bit(i)
		if bit == 1 {
			acc.Mul(acc, sq)
			acc.Mod(acc, n)
		}
		next := new(big.Int).Mul(sq, sq)
		next.Mod(next, n)
		if trace {
			steps = append(steps, PowStep{
				Index:  i,
				Bit:    bit,
				Acc:    new(big.Int).Set(acc),
				Square: new(big.Int).Set(next),
			})
		}
		sq = next
	}
	return acc, steps, nil
}
