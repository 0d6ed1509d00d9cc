// Package lwe implements a bit-level learning-with-errors cryptosystem
// and the two-dimensional lattice routines behind its hardness story.
// Parameters are plain int64 at teaching scale: a public matrix A with
// b = As + e for small noise e, and ciphertexts that decode as long as
// the accumulated noise stays below a quarter of the modulus.
package lwe

import (
	"crypto/rand"
	"fmt"
	"io"
	"math"
	"math/big"

	"github.com/cryptolab/algebra/arith"
	"github.com/cryptolab/algebra/internal/utils"
	"github.com/cryptolab/algebra/logger"
)

// PublicKey is the LWE instance (A, b = As + e) over Z/qZ.
type PublicKey struct {
	A [][]int64
	B []int64
	Q int64
}

// PrivateKey adds the secret vector s.
type PrivateKey struct {
	PublicKey
	S []int64
}

// Ciphertext encrypts one bit: u selects a subset sum of A's rows, v
// carries the matching subset sum of b plus the bit scaled to q/2.
type Ciphertext struct {
	U []int64
	V int64
}

type config struct {
	rand       io.Reader
	noiseBound int64
}

// Option configures key generation.
type Option func(*config) error

// WithRandom sets the randomness source. The default is crypto/rand.
func WithRandom(r io.Reader) Option {
	return func(c *config) error {
		if r == nil {
			return fmt.Errorf("invalid parametrization: nil reader")
		}
		c.rand = r
		return nil
	}
}

// WithNoiseBound sets the half-width of the noise interval [-b, b].
// The default is 1; zero turns the instance into plain linear algebra.
func WithNoiseBound(b int64) Option {
	return func(c *config) error {
		if b < 0 {
			return fmt.Errorf("invalid parametrization: noise bound must be non-negative, got %d", b)
		}
		c.noiseBound = b
		return nil
	}
}

// GenerateKey samples a secret s in (Z/qZ)^n and an m-row public
// instance (A, As + e) with noise drawn from [-bound, bound]. Decoding
// needs m·bound < q/4; thinner margins are warned about, since broken
// parameter sets are part of break exercises.
func GenerateKey(n, m int, q int64, opts ...Option) (*PrivateKey, error) {
	if n < 1 || m < 1 {
		return nil, fmt.Errorf("invalid parametrization: dimensions must be at least 1, got n = %d, m = %d", n, m)
	}
	if q < 2 {
		return nil, fmt.Errorf("invalid parametrization: modulus must be at least 2, got %d", q)
	}
	if q > math.MaxInt32 {
		return nil, fmt.Errorf("invalid parametrization: modulus %d does not fit 32 bits", q)
	}

	cfg := config{rand: rand.Reader, noiseBound: 1}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if 4*float64(m)*float64(cfg.noiseBound) >= float64(q) {
		logger.Component("lwe").Warn().
			Int64("q", q).
			Int("m", m).
			Int64("noiseBound", cfg.noiseBound).
			Msg("noise can exceed q/4, decryption may flip bits")
	}

	s, err := uniformVector(cfg.rand, n, q)
	if err != nil {
		return nil, err
	}
	a := make([][]int64, m)
	b := make([]int64, m)
	for i := range a {
		if a[i], err = uniformVector(cfg.rand, n, q); err != nil {
			return nil, err
		}
		e, err := uniformInt(cfg.rand, 2*cfg.noiseBound+1)
		if err != nil {
			return nil, err
		}
		e -= cfg.noiseBound
		b[i] = mod(dotMod(a[i], s, q)+e, q)
	}

	return &PrivateKey{
		PublicKey: PublicKey{A: a, B: b, Q: q},
		S:         s,
	}, nil
}

// EncryptBit hides bit in a random subset sum of the instance rows. The
// reader defaults to crypto/rand.
func (pub *PublicKey) EncryptBit(bit int64, rnd io.Reader) (Ciphertext, error) {
	if bit != 0 && bit != 1 {
		return Ciphertext{}, fmt.Errorf("invalid parametrization: plaintext must be a bit, got %d", bit)
	}
	if len(pub.A) == 0 || len(pub.B) != len(pub.A) || pub.Q < 2 {
		return Ciphertext{}, fmt.Errorf("invalid parametrization: malformed public key")
	}
	if rnd == nil {
		rnd = rand.Reader
	}

	u := make([]int64, len(pub.A[0]))
	v := bit * (pub.Q / 2)
	for i, row := range pub.A {
		coin, err := uniformInt(rnd, 2)
		if err != nil {
			return Ciphertext{}, err
		}
		if coin == 0 {
			continue
		}
		for j := range u {
			u[j] = mod(u[j]+row[j], pub.Q)
		}
		v = mod(v+pub.B[i], pub.Q)
	}
	return Ciphertext{U: u, V: mod(v, pub.Q)}, nil
}

// DecryptBit recovers the bit by checking whether v - <u, s> sits
// closer to 0 or to q/2.
func (priv *PrivateKey) DecryptBit(ct Ciphertext) (int64, error) {
	if len(ct.U) != len(priv.S) {
		return 0, fmt.Errorf("%w: ciphertext has %d coordinates, the secret %d", arith.ErrLengthMismatch, len(ct.U), len(priv.S))
	}
	d := mod(ct.V-dotMod(ct.U, priv.S, priv.Q), priv.Q)
	distZero := min(d, priv.Q-d)
	distHalf := utils.Abs(d - priv.Q/2)
	if distHalf < distZero {
		return 1, nil
	}
	return 0, nil
}

// GramSchmidt2D orthogonalizes b2 against b1, returning
// b2* = b2 - mu·b1 and the projection coefficient
// mu = <b2, b1> / <b1, b1>.
func GramSchmidt2D(b1, b2 [2]int64) ([2]float64, float64, error) {
	if b1 == [2]int64{} {
		return [2]float64{}, 0, fmt.Errorf("invalid parametrization: cannot project onto the zero vector")
	}
	mu := float64(dot2(b2, b1)) / float64(dot2(b1, b1))
	star := [2]float64{
		float64(b2[0]) - mu*float64(b1[0]),
		float64(b2[1]) - mu*float64(b1[1]),
	}
	return star, mu, nil
}

// Reduce2D runs Gauss-Lagrange reduction on a planar basis: order by
// length, subtract the rounded projection, repeat until the projection
// rounds to zero. The result is a shortest basis of the lattice.
func Reduce2D(b1, b2 [2]int64) ([2]int64, [2]int64, error) {
	if b1 == [2]int64{} || b2 == [2]int64{} {
		return [2]int64{}, [2]int64{}, fmt.Errorf("invalid parametrization: basis vectors must be nonzero")
	}
	for {
		if dot2(b2, b2) < dot2(b1, b1) {
			b1, b2 = b2, b1
		}
		m := int64(math.Round(float64(dot2(b1, b2)) / float64(dot2(b1, b1))))
		if m == 0 {
			return b1, b2, nil
		}
		next := [2]int64{b2[0] - m*b1[0], b2[1] - m*b1[1]}
		if next == ([2]int64{}) {
			return [2]int64{}, [2]int64{}, fmt.Errorf("invalid parametrization: the basis vectors are linearly dependent")
		}
		// A projection of exactly ±1/2 rounds to ±1 without shortening
		// anything; the basis is already reduced then.
		if dot2(next, next) >= dot2(b2, b2) {
			return b1, b2, nil
		}
		b2 = next
	}
}

func uniformInt(rnd io.Reader, bound int64) (int64, error) {
	v, err := rand.Int(rnd, big.NewInt(bound))
	if err != nil {
		return 0, err
	}
	return v.Int64(), nil
}

func uniformVector(rnd io.Reader, n int, q int64) ([]int64, error) {
	out := make([]int64, n)
	for i := range out {
		var err error
		if out[i], err = uniformInt(rnd, q); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// dotMod reduces after every term: entries are below q < 2³², so the
// products and partial sums stay well inside int64.
func dotMod(a, b []int64, q int64) int64 {
	var sum int64
	for i := range a {
		sum = mod(sum+mod(a[i]*b[i], q), q)
	}
	return sum
}

func dot2(a, b [2]int64) int64 {
	return a[0]*b[0] + a[1]*b[1]
}

func mod(v, q int64) int64 {
	v %= q
	if v < 0 {
		v += q
	}
	return v
}

