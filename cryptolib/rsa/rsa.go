// Package rsa implements textbook RSA at teaching scale: raw modular
// exponentiation without padding, so every intermediate value can be
// inspected. It is deliberately insecure for real use.
package rsa

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/cryptolab/algebra/arith"
)

// DefaultExponent is the conventional public exponent 65537.
var DefaultExponent = big.NewInt(65537)

// PublicKey holds the modulus and the public exponent.
type PublicKey struct {
	N *big.Int
	E *big.Int
}

// PrivateKey carries the public half, the private exponent and the
// factorization it was built from.
type PrivateKey struct {
	PublicKey
	D      *big.Int
	Primes [2]*big.Int
}

// GenerateKeyFromPrimes builds a key pair from two distinct primes. A nil
// e selects DefaultExponent. The exponent must be a unit modulo
// φ(n) = (p-1)(q-1); otherwise the error wraps arith.ErrNoInverse.
func GenerateKeyFromPrimes(p, q, e *big.Int) (*PrivateKey, error) {
	for _, v := range []*big.Int{p, q} {
		if !arith.IsPrime(v) {
			return nil, fmt.Errorf("invalid parametrization: %v is not prime", v)
		}
	}
	if p.Cmp(q) == 0 {
		return nil, fmt.Errorf("invalid parametrization: the primes must be distinct, got %v twice", p)
	}
	if e == nil {
		e = DefaultExponent
	}
	if e.Cmp(big.NewInt(2)) < 0 {
		return nil, fmt.Errorf("invalid parametrization: public exponent must be at least 2, got %v", e)
	}

	one := big.NewInt(1)
	n := new(big.Int).Mul(p, q)
	phi := new(big.Int).Mul(new(big.Int).Sub(p, one), new(big.Int).Sub(q, one))
	d, err := arith.Inverse(e, phi)
	if err != nil {
		return nil, fmt.Errorf("public exponent %v is not a unit mod φ(n): %w", e, err)
	}

	return &PrivateKey{
		PublicKey: PublicKey{N: n, E: new(big.Int).Set(e)},
		D:         d,
		Primes:    [2]*big.Int{new(big.Int).Set(p), new(big.Int).Set(q)},
	}, nil
}

// GenerateKey draws two random primes of half the requested modulus
// length and assembles a key with DefaultExponent, redrawing when the
// exponent is not a unit mod φ(n). Randomness and retry budgets come
// from the arith options.
func GenerateKey(bits int, opts ...arith.Option) (*PrivateKey, error) {
	if bits < 6 {
		return nil, fmt.Errorf("invalid parametrization: modulus length must be at least 6 bits, got %d", bits)
	}

	const attempts = 16
	for i := 0; i < attempts; i++ {
		p, err := arith.RandomPrime((bits+1)/2, opts...)
		if err != nil {
			return nil, err
		}
		q, err := arith.RandomPrime(bits/2, opts...)
		if err != nil {
			return nil, err
		}
		if p.Cmp(q) == 0 {
			continue
		}
		key, err := GenerateKeyFromPrimes(p, q, nil)
		if errors.Is(err, arith.ErrNoInverse) {
			continue
		}
		return key, err
	}
	return nil, fmt.Errorf("%w: no usable prime pair in %d draws", arith.ErrRetriesExceeded, attempts)
}

// Encrypt computes m^e mod n for m in [0, n).
func (pub *PublicKey) Encrypt(m *big.Int) (*big.Int, error) {
	if err := pub.checkRange(m); err != nil {
		return nil, err
	}
	return arith.PowMod(m, pub.E, pub.N)
}

// Decrypt computes c^d mod n for c in [0, n).
func (priv *PrivateKey) Decrypt(c *big.Int) (*big.Int, error) {
	if err := priv.checkRange(c); err != nil {
		return nil, err
	}
	return arith.PowMod(c, priv.D, priv.N)
}

func (pub *PublicKey) checkRange(v *big.Int) error {
	if v == nil || v.Sign() < 0 || v.Cmp(pub.N) >= 0 {
		return fmt.Errorf("invalid parametrization: value %v is outside [0, %v)", v, pub.N)
	}
	return nil
}
