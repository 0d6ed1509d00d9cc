// Package dh simulates finite-field Diffie-Hellman key exchanges over
// (Z/pZ)* at teaching scale.
package dh

import (
	"fmt"
	"math/big"

	"github.com/cryptolab/algebra/arith"
	"github.com/cryptolab/algebra/field"
	"github.com/cryptolab/algebra/logger"
)

// Params is a validated generator and prime modulus pair.
type Params struct {
	g *big.Int
	p *big.Int
}

// NewParams checks that p is prime and g lies in [2, p-2]. A modulus
// that is not a safe prime is only warned about, since weak parameters
// are part of break exercises.
func NewParams(g, p *big.Int) (*Params, error) {
	if p == nil || !arith.IsPrime(p) {
		return nil, fmt.Errorf("%w: %v", field.ErrNotPrime, p)
	}
	two := big.NewInt(2)
	pm2 := new(big.Int).Sub(p, two)
	if g == nil || g.Cmp(two) < 0 || g.Cmp(pm2) > 0 {
		return nil, fmt.Errorf("invalid parametrization: generator %v is outside [2, %v]", g, pm2)
	}
	if !arith.IsSafePrime(p) {
		logger.Component("dh").Warn().Str("p", p.String()).
			Msg("modulus is not a safe prime, the subgroup structure admits Pohlig-Hellman")
	}
	return &Params{g: new(big.Int).Set(g), p: new(big.Int).Set(p)}, nil
}

// Generator returns a copy of g.
func (pr *Params) Generator() *big.Int { return new(big.Int).Set(pr.g) }

// Modulus returns a copy of p.
func (pr *Params) Modulus() *big.Int { return new(big.Int).Set(pr.p) }

func (pr *Params) String() string {
	return fmt.Sprintf("DH(g = %v, p = %v)", pr.g, pr.p)
}

// PublicKey computes g^secret mod p for a positive secret.
func (pr *Params) PublicKey(secret *big.Int) (*big.Int, error) {
	if err := checkExponent("secret", secret); err != nil {
		return nil, err
	}
	return arith.PowMod(pr.g, secret, pr.p)
}

// SharedSecret computes otherPublic^secret mod p.
func (pr *Params) SharedSecret(secret, otherPublic *big.Int) (*big.Int, error) {
	if err := checkExponent("secret", secret); err != nil {
		return nil, err
	}
	if otherPublic == nil || otherPublic.Sign() <= 0 || otherPublic.Cmp(pr.p) >= 0 {
		return nil, fmt.Errorf("invalid parametrization: public value %v is outside [1, %v)", otherPublic, pr.p)
	}
	return arith.PowMod(otherPublic, secret, pr.p)
}

// Exchange runs both sides of the protocol with secrets a and b and
// returns the public values A = g^a, B = g^b and the shared secret
// g^(ab) mod p.
func Exchange(params *Params, a, b *big.Int) (bigA, bigB, shared *big.Int, err error) {
	bigA, err = params.PublicKey(a)
	if err != nil {
		return nil, nil, nil, err
	}
	bigB, err = params.PublicKey(b)
	if err != nil {
		return nil, nil, nil, err
	}
	shared, err = params.SharedSecret(a, bigB)
	if err != nil {
		return nil, nil, nil, err
	}
	return bigA, bigB, shared, nil
}

func checkExponent(name string, v *big.Int) error {
	if v == nil || v.Sign() <= 0 {
		return fmt.Errorf("invalid parametrization: %s must be positive, got %v", name, v)
	}
	return nil
}
