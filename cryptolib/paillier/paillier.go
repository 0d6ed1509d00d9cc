// Package paillier implements the Paillier cryptosystem at teaching
// scale: additively homomorphic encryption over Z/n²Z with g = n + 1.
// Ciphertexts of m1 and m2 multiply into a ciphertext of m1 + m2, and
// raising a ciphertext to k scales the plaintext by k.
package paillier

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/cryptolab/algebra/arith"
)

var bigOne = big.NewInt(1)

// PublicKey holds the encryption parameters n, n² and the generator
// g = n + 1.
type PublicKey struct {
	N        *big.Int
	NSquared *big.Int
	G        *big.Int
}

// PrivateKey adds the decryption trapdoor λ = lcm(p-1, q-1) and
// μ = L(g^λ mod n²)^-1 mod n.
type PrivateKey struct {
	PublicKey
	Lambda *big.Int
	Mu     *big.Int
}

// GenerateKeyFromPrimes builds a key pair from two distinct primes.
func GenerateKeyFromPrimes(p, q *big.Int) (*PrivateKey, error) {
	for _, v := range []*big.Int{p, q} {
		if !arith.IsPrime(v) {
			return nil, fmt.Errorf("invalid parametrization: %v is not prime", v)
		}
	}
	if p.Cmp(q) == 0 {
		return nil, fmt.Errorf("invalid parametrization: the primes must be distinct, got %v twice", p)
	}

	n := new(big.Int).Mul(p, q)
	nSquared := new(big.Int).Mul(n, n)
	g := new(big.Int).Add(n, bigOne)

	pMinus := new(big.Int).Sub(p, bigOne)
	qMinus := new(big.Int).Sub(q, bigOne)
	lambda := arith.LCM(pMinus, qMinus)

	gLambda, err := arith.PowMod(g, lambda, nSquared)
	if err != nil {
		return nil, err
	}
	l, err := residueQuotient(gLambda, n)
	if err != nil {
		return nil, err
	}
	mu, err := arith.Inverse(l, n)
	if err != nil {
		return nil, fmt.Errorf("λ is not a unit mod n, pick primes with p ∤ q-1 and q ∤ p-1: %w", err)
	}

	return &PrivateKey{
		PublicKey: PublicKey{N: n, NSquared: nSquared, G: g},
		Lambda:    lambda,
		Mu:        mu,
	}, nil
}

// GenerateKey draws two random primes of half the requested modulus
// length, redrawing when the pair collides or λ is not invertible.
// Randomness and retry budgets come from the arith options.
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
		key, err := GenerateKeyFromPrimes(p, q)
		if errors.Is(err, arith.ErrNoInverse) {
			continue
		}
		return key, err
	}
	return nil, fmt.Errorf("%w: no usable prime pair in %d draws", arith.ErrRetriesExceeded, attempts)
}

// Encrypt computes g^m · r^n mod n² for m in [0, n). A nil blinding is
// drawn uniformly from the units mod n; a supplied one must be a unit.
func (pub *PublicKey) Encrypt(m, r *big.Int) (*big.Int, error) {
	if err := pub.checkMessage(m); err != nil {
		return nil, err
	}
	if r == nil {
		var err error
		if r, err = pub.randomUnit(); err != nil {
			return nil, err
		}
	} else if _, err := arith.Inverse(r, pub.N); err != nil {
		return nil, fmt.Errorf("blinding rejected: %w", err)
	}

	gm, err := arith.PowMod(pub.G, m, pub.NSquared)
	if err != nil {
		return nil, err
	}
	rn, err := arith.PowMod(r, pub.N, pub.NSquared)
	if err != nil {
		return nil, err
	}
	c := new(big.Int).Mul(gm, rn)
	return c.Mod(c, pub.NSquared), nil
}

// Decrypt computes L(c^λ mod n²) · μ mod n.
func (priv *PrivateKey) Decrypt(c *big.Int) (*big.Int, error) {
	if err := priv.checkCiphertext(c); err != nil {
		return nil, err
	}
	cLambda, err := arith.PowMod(c, priv.Lambda, priv.NSquared)
	if err != nil {
		return nil, err
	}
	l, err := residueQuotient(cLambda, priv.N)
	if err != nil {
		return nil, err
	}
	m := new(big.Int).Mul(l, priv.Mu)
	return m.Mod(m, priv.N), nil
}

// AddCiphertexts multiplies two ciphertexts, which adds the underlying
// plaintexts mod n.
func (pub *PublicKey) AddCiphertexts(c1, c2 *big.Int) (*big.Int, error) {
	if err := pub.checkCiphertext(c1); err != nil {
		return nil, err
	}
	if err := pub.checkCiphertext(c2); err != nil {
		return nil, err
	}
	c := new(big.Int).Mul(c1, c2)
	return c.Mod(c, pub.NSquared), nil
}

// MulPlaintext raises a ciphertext to k, which multiplies the
// underlying plaintext by k mod n.
func (pub *PublicKey) MulPlaintext(c, k *big.Int) (*big.Int, error) {
	if err := pub.checkCiphertext(c); err != nil {
		return nil, err
	}
	if k == nil {
		return nil, fmt.Errorf("invalid parametrization: scalar must not be nil")
	}
	return arith.PowMod(c, k, pub.NSquared)
}

// residueQuotient is Paillier's L(x) = (x - 1) / n, defined only on the
// coset 1 + nZ.
func residueQuotient(x, n *big.Int) (*big.Int, error) {
	q, rem := new(big.Int).QuoRem(new(big.Int).Sub(x, bigOne), n, new(big.Int))
	if rem.Sign() != 0 {
		return nil, fmt.Errorf("L is undefined at %v: expected x ≡ 1 (mod %v)", x, n)
	}
	return q, nil
}

func (pub *PublicKey) randomUnit() (*big.Int, error) {
	const attempts = 64
	span := new(big.Int).Sub(pub.N, bigOne)
	for i := 0; i < attempts; i++ {
		r, err := rand.Int(rand.Reader, span)
		if err != nil {
			return nil, err
		}
		r.Add(r, bigOne)
		if arith.GCD(r, pub.N).Cmp(bigOne) == 0 {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: no unit mod %v in %d draws", arith.ErrRetriesExceeded, pub.N, attempts)
}

func (pub *PublicKey) checkMessage(m *big.Int) error {
	if m == nil || m.Sign() < 0 || m.Cmp(pub.N) >= 0 {
		return fmt.Errorf("invalid parametrization: message %v is outside [0, %v)", m, pub.N)
	}
	return nil
}

func (pub *PublicKey) checkCiphertext(c *big.Int) error {
	if c == nil || c.Sign() < 0 || c.Cmp(pub.NSquared) >= 0 {
		return fmt.Errorf("invalid parametrization: ciphertext %v is outside [0, %v)", c, pub.NSquared)
	}
	return nil
}
