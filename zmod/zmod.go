// Package zmod implements arithmetic in Z/nZ with an explicit ring object.
//
// An Int carries its modulus and is canonicalized to [0, n) at construction,
// so two values compare equal exactly when they are the same residue.
// Operations never mutate their operands; combining values under different
// moduli is an error, not a coercion.
package zmod

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/cryptolab/algebra/arith"
)

var (
	ErrMismatchedModuli = errors.New("mismatched moduli")
	ErrNotUnit          = errors.New("not a unit")
)

// Int is an integer modulo n. The zero value is unusable; construct with
// New, NewBig or Ring.Element.
type Int struct {
	value   *big.Int
	modulus *big.Int
}

// New returns value modulo modulus, canonicalized to [0, modulus).
func New(value, modulus int64) (Int, error) {
	return NewBig(big.NewInt(value), big.NewInt(modulus))
}

// NewBig is New for big operands. The inputs are copied.
func NewBig(value, modulus *big.Int) (Int, error) {
	if modulus.Sign() <= 0 {
		return Int{}, fmt.Errorf("%w: %v", arith.ErrNonPositiveModulus, modulus)
	}
	m := new(big.Int).Set(modulus)
	return Int{value: new(big.Int).Mod(value, m), modulus: m}, nil
}

// Value returns the canonical representative in [0, n).
func (z Int) Value() *big.Int { return new(big.Int).Set(z.value) }

// Modulus returns n.
func (z Int) Modulus() *big.Int { return new(big.Int).Set(z.modulus) }

func (z Int) String() string { return z.value.String() }

// IsZero reports whether z is the additive identity.
func (z Int) IsZero() bool { return z.value.Sign() == 0 }

// IsOne reports whether z is the multiplicative identity. In Z/1Z that is
// the zero residue.
func (z Int) IsOne() bool {
	if z.modulus.Cmp(big.NewInt(1)) == 0 {
		return true
	}
	return z.value.Cmp(big.NewInt(1)) == 0
}

// Equal reports whether both the modulus and the residue match.
func (z Int) Equal(o Int) bool {
	return z.modulus.Cmp(o.modulus) == 0 && z.value.Cmp(o.value) == 0
}

// Cmp orders residues by canonical value, ignoring the modulus.
func (z Int) Cmp(o Int) int { return z.value.Cmp(o.value) }

func (z Int) check(o Int) error {
	if z.modulus.Cmp(o.modulus) != 0 {
		return fmt.Errorf("%w: cannot combine values modulo %v and %v", ErrMismatchedModuli, z.modulus, o.modulus)
	}
	return nil
}

// Add returns z + o.
func (z Int) Add(o Int) (Int, error) {
	if err := z.check(o); err != nil {
		return Int{}, err
	}
	v := new(big.Int).Add(z.value, o.value)
	return Int{value: v.Mod(v, z.modulus), modulus: z.modulus}, nil
}

// Sub returns z - o.
func (z Int) Sub(o Int) (Int, error) {
	if err := z.check(o); err != nil {
		return Int{}, err
	}
	v := new(big.Int).Sub(z.value, o.value)
	return Int{value: v.Mod(v, z.modulus), modulus: z.modulus}, nil
}

// Mul returns z * o.
func (z Int) Mul(o Int) (Int, error) {
	if err := z.check(o); err != nil {
		return Int{}, err
	}
	v := new(big.Int).Mul(z.value, o.value)
	return Int{value: v.Mod(v, z.modulus), modulus: z.modulus}, nil
}

// Neg returns the additive inverse.
func (z Int) Neg() Int {
	v := new(big.Int).Neg(z.value)
	return Int{value: v.Mod(v, z.modulus), modulus: z.modulus}
}

// Inverse returns the multiplicative inverse, failing with
// arith.ErrNoInverse when gcd(z, n) != 1.
func (z Int) Inverse() (Int, error) {
	inv, err := arith.Inverse(z.value, z.modulus)
	if err != nil {
		return Int{}, err
	}
	return Int{value: inv, modulus: z.modulus}, nil
}

// Div returns z * o^-1.
func (z Int) Div(o Int) (Int, error) {
	if err := z.check(o); err != nil {
		return Int{}, err
	}
	inv, err := o.Inverse()
	if err != nil {
		return Int{}, err
	}
	return z.Mul(inv)
}

// Pow returns z^e by square-and-multiply. Negative exponents require z to
// be a unit.
func (z Int) Pow(e *big.Int) (Int, error) {
	v, err := arith.PowMod(z.value, e, z.modulus)
	if err != nil {
		return Int{}, err
	}
	return Int{value: v, modulus: z.modulus}, nil
}

// PowSteps is Pow together with the square-and-multiply trace, one record
// per exponent bit.
func (z Int) PowSteps(e *big.Int) ([]arith.PowStep, Int, error) {
	steps, v, err := arith.PowModSteps(z.value, e, z.modulus)
	if err != nil {
		return nil, Int{}, err
	}
	return steps, Int{value: v, modulus: z.modulus}, nil
}

// AdditiveOrder returns the order of z in the additive group, n / gcd(z, n).
func (z Int) AdditiveOrder() *big.Int {
	g := arith.GCD(z.value, z.modulus)
	return new(big.Int).Div(z.modulus, g)
}

// MultiplicativeOrder returns the order of z in the unit group: the least
// k > 0 with z^k = 1. Found by trying the divisors of phi(n) in ascending
// order. Fails with ErrNotUnit when gcd(z, n) != 1.
func (z Int) MultiplicativeOrder() (*big.Int, error) {
	one := big.NewInt(1)
	if z.modulus.Cmp(one) == 0 {
		return big.NewInt(1), nil
	}
	if arith.GCD(z.value, z.modulus).Cmp(one) != 0 {
		return nil, fmt.Errorf("%w: %v modulo %v", ErrNotUnit, z.value, z.modulus)
	}
	phi, err := arith.EulerPhi(z.modulus)
	if err != nil {
		return nil, err
	}
	divs, err := arith.Divisors(phi)
	if err != nil {
		return nil, err
	}
	pow := new(big.Int)
	for _, d := range divs {
		pow.Exp(z.value, d, z.modulus)
		if pow.Cmp(one) == 0 {
			return new(big.Int).Set(d), nil
		}
	}
	// unreachable: the order of a unit divides phi(n)
	return nil, fmt.Errorf("order of %v modulo %v not found among divisors of %v", z.value, z.modulus, phi)
}
