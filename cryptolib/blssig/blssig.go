// Package blssig implements BLS signatures over a toy pairing setup:
// signatures are curve points in one torsion subgroup, public keys live
// in an independent one, and verification compares two Weil pairings.
// Signature aggregation folds many signatures into a single point.
package blssig

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/cryptolab/algebra/arith"
	"github.com/cryptolab/algebra/ecc"
	"github.com/cryptolab/algebra/field"
	"github.com/cryptolab/algebra/pairing"
)

// Params fixes the two generators and their common prime order n.
// Signatures are multiples of g1, public keys multiples of g2.
type Params struct {
	g1    ecc.Point
	g2    ecc.Point
	order *big.Int
}

// NewParams checks that both generators are n-torsion points of the
// same curve for a prime n, and that they pair nondegenerately, which
// rules out picking g2 inside the subgroup generated by g1.
func NewParams(g1, g2 ecc.Point, order *big.Int) (*Params, error) {
	if !g1.Curve().Equal(g2.Curve()) {
		return nil, fmt.Errorf("%w: cannot pair generators of %v and %v", ecc.ErrMismatchedCurves, g1.Curve(), g2.Curve())
	}
	if g1.IsInfinity() || g2.IsInfinity() {
		return nil, fmt.Errorf("invalid parametrization: the generators cannot be the identity")
	}
	if order == nil || !arith.IsPrime(order) {
		return nil, fmt.Errorf("%w: group order %v", field.ErrNotPrime, order)
	}
	for _, g := range []ecc.Point{g1, g2} {
		ng, err := g.ScalarMul(order)
		if err != nil {
			return nil, err
		}
		if !ng.IsInfinity() {
			return nil, fmt.Errorf("invalid parametrization: generator %v is not %v-torsion", g, order)
		}
	}

	errDegenerate := fmt.Errorf("invalid parametrization: the generators pair degenerately, pick independent torsion points")
	e, err := pairing.WeilPairing(g1, g2, order)
	switch {
	case errors.Is(err, field.ErrDivisionByZero):
		return nil, errDegenerate
	case err != nil:
		return nil, err
	case e.IsZero() || e.IsOne():
		return nil, errDegenerate
	}

	return &Params{g1: g1, g2: g2, order: new(big.Int).Set(order)}, nil
}

// G1 returns the signature group generator.
func (pr *Params) G1() ecc.Point { return pr.g1 }

// G2 returns the key group generator.
func (pr *Params) G2() ecc.Point { return pr.g2 }

// Order returns the common order of the two generators.
func (pr *Params) Order() *big.Int { return new(big.Int).Set(pr.order) }

func (pr *Params) String() string {
	return fmt.Sprintf("BLS(g1 = %v, g2 = %v, n = %v)", pr.g1, pr.g2, pr.order)
}

// HashToPoint maps msg to a nonzero multiple of g1. A hash scalar of
// zero is bumped to 1: the identity point would verify under every key.
func (pr *Params) HashToPoint(msg []byte) (ecc.Point, error) {
	h := ecc.HashToInt(msg, pr.order)
	if h.Sign() == 0 {
		h.SetInt64(1)
	}
	return pr.g1.ScalarMul(h)
}

// GenerateKey draws a secret scalar from [1, n-1] and pairs it with the
// public point sk·g2. The reader defaults to crypto/rand.
func (pr *Params) GenerateKey(r io.Reader) (ecc.KeyPair, error) {
	return ecc.GenerateKey(pr.g2, pr.order, r)
}

// Sign returns sk·H(msg).
func (pr *Params) Sign(sk *big.Int, msg []byte) (ecc.Point, error) {
	if sk == nil || sk.Sign() <= 0 || sk.Cmp(pr.order) >= 0 {
		return ecc.Point{}, fmt.Errorf("invalid parametrization: secret key %v is outside [1, %v)", sk, pr.order)
	}
	h, err := pr.HashToPoint(msg)
	if err != nil {
		return ecc.Point{}, err
	}
	return h.ScalarMul(sk)
}

// Verify checks e(sig, g2) = e(H(msg), pk): both sides equal
// e(H(msg), g2) raised to the secret key when the signature is honest.
// Pairing errors from points outside the torsion subgroups propagate.
func (pr *Params) Verify(pk ecc.Point, msg []byte, sig ecc.Point) (bool, error) {
	lhs, err := pairing.WeilPairing(sig, pr.g2, pr.order)
	if err != nil {
		return false, err
	}
	h, err := pr.HashToPoint(msg)
	if err != nil {
		return false, err
	}
	rhs, err := pairing.WeilPairing(h, pk, pr.order)
	if err != nil {
		return false, err
	}
	return lhs.Equal(rhs), nil
}

// Aggregate folds signatures into their sum.
func (pr *Params) Aggregate(sigs ...ecc.Point) (ecc.Point, error) {
	if len(sigs) == 0 {
		return ecc.Point{}, fmt.Errorf("invalid parametrization: nothing to aggregate")
	}
	agg := sigs[0]
	for _, s := range sigs[1:] {
		var err error
		if agg, err = agg.Add(s); err != nil {
			return ecc.Point{}, err
		}
	}
	return agg, nil
}

// AggregateVerify checks an aggregate signature against per-signer keys
// and messages: e(sig, g2) must equal the product of e(H(msg_i), pk_i).
func (pr *Params) AggregateVerify(pks []ecc.Point, msgs [][]byte, sig ecc.Point) (bool, error) {
	if len(pks) != len(msgs) {
		return false, fmt.Errorf("%w: %d keys against %d messages", arith.ErrLengthMismatch, len(pks), len(msgs))
	}
	if len(pks) == 0 {
		return false, fmt.Errorf("invalid parametrization: nothing to verify")
	}

	lhs, err := pairing.WeilPairing(sig, pr.g2, pr.order)
	if err != nil {
		return false, err
	}
	rhs := pr.g1.Curve().Field().One()
	for i := range pks {
		h, err := pr.HashToPoint(msgs[i])
		if err != nil {
			return false, err
		}
		e, err := pairing.WeilPairing(h, pks[i], pr.order)
		if err != nil {
			return false, err
		}
		if rhs, err = rhs.Mul(e); err != nil {
			return false, err
		}
	}
	return lhs.Equal(rhs), nil
}
