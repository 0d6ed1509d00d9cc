package ecc

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/cryptolab/algebra/arith"
)

const defaultNonceRetries = 64

// Signature is an ECDSA signature pair.
type Signature struct {
	R, S *big.Int
}

func (s Signature) String() string {
	return fmt.Sprintf("(r = %v, s = %v)", s.R, s.S)
}

// NonceSource yields the per-signature secret for a given attempt.
// Attempts advance when a nonce produces r = 0 or s = 0.
type NonceSource func(priv, hash, n *big.Int, attempt int) (*big.Int, error)

type ecdsaConfig struct {
	nonce   NonceSource
	retries int
}

// ECDSAOption configures signing behavior.
type ECDSAOption func(*ecdsaConfig) error

// WithRandomNonce draws nonces from r instead of deriving them
// deterministically. The reader defaults to crypto/rand.
func WithRandomNonce(r io.Reader) ECDSAOption {
	return func(cfg *ecdsaConfig) error {
		if r == nil {
			r = rand.Reader
		}
		cfg.nonce = func(_, _, n *big.Int, _ int) (*big.Int, error) {
			k, err := rand.Int(r, new(big.Int).Sub(n, big.NewInt(1)))
			if err != nil {
				return nil, err
			}
			return k.Add(k, big.NewInt(1)), nil
		}
		return nil
	}
}

// WithNonceSource installs a caller-controlled nonce derivation.
func WithNonceSource(src NonceSource) ECDSAOption {
	return func(cfg *ecdsaConfig) error {
		if src == nil {
			return fmt.Errorf("nonce source must not be nil")
		}
		cfg.nonce = src
		return nil
	}
}

// WithNonceRetries overrides the zero-r/zero-s retry budget.
func WithNonceRetries(k int) ECDSAOption {
	return func(cfg *ecdsaConfig) error {
		if k < 1 {
			return fmt.Errorf("retry budget must be positive, got %d", k)
		}
		cfg.retries = k
		return nil
	}
}

// ECDSA signs and verifies against a fixed generator of order n. The
// default nonce derivation is deterministic (SHA3 over the key, the
// message hash and the attempt counter), so fixed inputs reproduce the
// same signature run after run; WithRandomNonce switches to drawn
// nonces.
type ECDSA struct {
	gen Point
	n   *big.Int
	cfg ecdsaConfig
}

// NewECDSA fixes the generator and its order. The curve must be defined
// over a prime field, since r and s are integers built from x
// coordinates.
func NewECDSA(gen Point, n *big.Int, opts ...ECDSAOption) (*ECDSA, error) {
	if gen.IsInfinity() {
		return nil, fmt.Errorf("the generator cannot be the identity")
	}
	if _, ok := gen.x.(integerValued); !ok {
		return nil, fmt.Errorf("ecdsa needs a curve over a prime field, got one over %v", gen.curve.f)
	}
	if n == nil || n.Cmp(big.NewInt(2)) < 0 {
		return nil, fmt.Errorf("generator order must be at least 2, got %v", n)
	}

	cfg := ecdsaConfig{nonce: deterministicNonce, retries: defaultNonceRetries}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &ECDSA{gen: gen, n: new(big.Int).Set(n), cfg: cfg}, nil
}

// Generator returns the signing base point.
func (e *ECDSA) Generator() Point { return e.gen }

// Order returns the generator order n.
func (e *ECDSA) Order() *big.Int { return new(big.Int).Set(e.n) }

// PublicKey returns priv·G.
func (e *ECDSA) PublicKey(priv *big.Int) (Point, error) {
	return e.gen.ScalarMul(priv)
}

// Sign produces (r, s) for a message hash already reduced to an integer
// (HashToInt). Nonces that yield r = 0 or s = 0 are discarded and
// redrawn until the retry budget is spent.
func (e *ECDSA) Sign(priv, hash *big.Int) (Signature, error) {
	for attempt := 0; attempt < e.cfg.retries; attempt++ {
		k, err := e.cfg.nonce(priv, hash, e.n, attempt)
		if err != nil {
			return Signature{}, err
		}

		rp, err := e.gen.ScalarMul(k)
		if err != nil {
			return Signature{}, err
		}
		if rp.IsInfinity() {
			continue
		}
		r := xInt(rp)
		r.Mod(r, e.n)
		if r.Sign() == 0 {
			continue
		}

		kInv, err := arith.Inverse(k, e.n)
		if err != nil {
			continue
		}
		s := new(big.Int).Mul(priv, r)
		s.Add(s, hash)
		s.Mul(s, kInv)
		s.Mod(s, e.n)
		if s.Sign() == 0 {
			continue
		}
		return Signature{R: r, S: s}, nil
	}
	return Signature{}, fmt.Errorf("%w: no usable nonce in %d draws", arith.ErrRetriesExceeded, e.cfg.retries)
}

// Verify checks (r, s) against pub. Signature values outside [1, n-1]
// make it return false without an error; errors are reserved for points
// that do not belong to the generator's curve.
func (e *ECDSA) Verify(pub Point, hash *big.Int, sig Signature) (bool, error) {
	if err := e.gen.peer(pub); err != nil {
		return false, err
	}
	if sig.R == nil || sig.S == nil {
		return false, nil
	}
	one := big.NewInt(1)
	top := new(big.Int).Sub(e.n, one)
	if sig.R.Cmp(one) < 0 || sig.R.Cmp(top) > 0 {
		return false, nil
	}
	if sig.S.Cmp(one) < 0 || sig.S.Cmp(top) > 0 {
		return false, nil
	}

	w, err := arith.Inverse(sig.S, e.n)
	if err != nil {
		return false, nil
	}
	u1 := new(big.Int).Mul(hash, w)
	u1.Mod(u1, e.n)
	u2 := new(big.Int).Mul(sig.R, w)
	u2.Mod(u2, e.n)

	a, err := e.gen.ScalarMul(u1)
	if err != nil {
		return false, err
	}
	b, err := pub.ScalarMul(u2)
	if err != nil {
		return false, err
	}
	x, err := a.Add(b)
	if err != nil {
		return false, err
	}
	if x.IsInfinity() {
		return false, nil
	}
	v := xInt(x)
	v.Mod(v, e.n)
	return v.Cmp(sig.R) == 0, nil
}

// HashToInt hashes msg with SHA3-256 and reduces it modulo n, preparing
// a message for Sign and Verify.
func HashToInt(msg []byte, n *big.Int) *big.Int {
	sum := sha3.Sum256(msg)
	return new(big.Int).Mod(new(big.Int).SetBytes(sum[:]), n)
}

// deterministicNonce derives the attempt's nonce from SHA3-256 over the
// private key, the message hash and the counter, reduced into [1, n-1].
func deterministicNonce(priv, hash, n *big.Int, attempt int) (*big.Int, error) {
	h := sha3.New256()
	h.Write(priv.Bytes())
	h.Write(hash.Bytes())
	var ctr [8]byte
	binary.BigEndian.PutUint64(ctr[:], uint64(attempt))
	h.Write(ctr[:])

	k := new(big.Int).SetBytes(h.Sum(nil))
	k.Mod(k, new(big.Int).Sub(n, big.NewInt(1)))
	return k.Add(k, big.NewInt(1)), nil
}

// integerValued marks field elements whose value is a plain integer.
type integerValued interface {
	Value() *big.Int
}

// xInt reads an affine x coordinate as an integer. NewECDSA rules out
// fields whose elements carry no integer value.
func xInt(p Point) *big.Int {
	return p.x.(integerValued).Value()
}
