// Package commit implements Pedersen commitments and Schnorr proofs of
// knowledge over (Z/pZ)*, with a Fiat-Shamir transform for the
// non-interactive variant.
package commit

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/cryptolab/algebra/arith"
	"github.com/cryptolab/algebra/field"
)

// PedersenCommit returns C = g^m · h^r mod p. The binding of the
// commitment rests on the discrete log of h to base g being unknown.
func PedersenCommit(g, h, p, m, r *big.Int) (*big.Int, error) {
	if err := checkGroup(p, g, h); err != nil {
		return nil, err
	}
	if err := checkScalar("message", m); err != nil {
		return nil, err
	}
	if err := checkScalar("blinding", r); err != nil {
		return nil, err
	}

	gm, err := arith.PowMod(g, m, p)
	if err != nil {
		return nil, err
	}
	hr, err := arith.PowMod(h, r, p)
	if err != nil {
		return nil, err
	}
	c := new(big.Int).Mul(gm, hr)
	return c.Mod(c, p), nil
}

// PedersenVerify reports whether the opening (m, r) matches commitment.
func PedersenVerify(g, h, p, m, r, commitment *big.Int) (bool, error) {
	c, err := PedersenCommit(g, h, p, m, r)
	if err != nil {
		return false, err
	}
	return commitment != nil && c.Cmp(commitment) == 0, nil
}

// SchnorrProof is one transcript of the sigma protocol for knowledge of
// x with pk = g^x mod p.
type SchnorrProof struct {
	Commitment *big.Int
	Challenge  *big.Int
	Response   *big.Int
}

func (pr SchnorrProof) String() string {
	return fmt.Sprintf("(commitment = %v, challenge = %v, response = %v)", pr.Commitment, pr.Challenge, pr.Response)
}

// SchnorrProve answers a challenge with the nonce k: the commitment is
// g^k mod p and the response is k - x·challenge mod (p-1).
func SchnorrProve(g, p, x, k, challenge *big.Int) (SchnorrProof, error) {
	if err := checkGroup(p, g); err != nil {
		return SchnorrProof{}, err
	}
	if err := checkScalar("secret", x); err != nil {
		return SchnorrProof{}, err
	}
	if err := checkScalar("nonce", k); err != nil {
		return SchnorrProof{}, err
	}
	if err := checkScalar("challenge", challenge); err != nil {
		return SchnorrProof{}, err
	}

	commitment, err := arith.PowMod(g, k, p)
	if err != nil {
		return SchnorrProof{}, err
	}
	order := new(big.Int).Sub(p, big.NewInt(1))
	response := new(big.Int).Mul(x, challenge)
	response.Sub(k, response)
	response.Mod(response, order)

	return SchnorrProof{
		Commitment: commitment,
		Challenge:  new(big.Int).Set(challenge),
		Response:   response,
	}, nil
}

// SchnorrVerify checks g^response · pk^challenge ≡ commitment (mod p).
func SchnorrVerify(g, p, pk *big.Int, proof SchnorrProof) (bool, error) {
	if err := checkGroup(p, g); err != nil {
		return false, err
	}
	if pk == nil || proof.Commitment == nil || proof.Challenge == nil || proof.Response == nil {
		return false, nil
	}

	gr, err := arith.PowMod(g, proof.Response, p)
	if err != nil {
		return false, err
	}
	pc, err := arith.PowMod(pk, proof.Challenge, p)
	if err != nil {
		return false, err
	}
	lhs := new(big.Int).Mul(gr, pc)
	lhs.Mod(lhs, p)
	return lhs.Cmp(proof.Commitment) == 0, nil
}

// FiatShamir hashes a transcript into a challenge in [0, mod). Parts are
// length-prefixed before hashing so transcript boundaries cannot be
// shifted.
func FiatShamir(mod *big.Int, parts ...[]byte) (*big.Int, error) {
	if mod == nil || mod.Cmp(big.NewInt(2)) < 0 {
		return nil, fmt.Errorf("invalid parametrization: challenge modulus must be at least 2, got %v", mod)
	}
	h := sha3.New256()
	var size [8]byte
	for _, part := range parts {
		binary.BigEndian.PutUint64(size[:], uint64(len(part)))
		h.Write(size[:])
		h.Write(part)
	}
	c := new(big.Int).SetBytes(h.Sum(nil))
	return c.Mod(c, mod), nil
}

// SchnorrProveFS runs the prover non-interactively, deriving the
// challenge from (g, pk, commitment, msg) with FiatShamir.
func SchnorrProveFS(g, p, x, k *big.Int, msg []byte) (SchnorrProof, error) {
	if err := checkGroup(p, g); err != nil {
		return SchnorrProof{}, err
	}
	if err := checkScalar("secret", x); err != nil {
		return SchnorrProof{}, err
	}
	if err := checkScalar("nonce", k); err != nil {
		return SchnorrProof{}, err
	}

	pk, err := arith.PowMod(g, x, p)
	if err != nil {
		return SchnorrProof{}, err
	}
	commitment, err := arith.PowMod(g, k, p)
	if err != nil {
		return SchnorrProof{}, err
	}
	challenge, err := fsChallenge(g, p, pk, commitment, msg)
	if err != nil {
		return SchnorrProof{}, err
	}
	return SchnorrProve(g, p, x, k, challenge)
}

// SchnorrVerifyFS recomputes the Fiat-Shamir challenge from the
// transcript and then checks the proof equation.
func SchnorrVerifyFS(g, p, pk *big.Int, msg []byte, proof SchnorrProof) (bool, error) {
	if err := checkGroup(p, g); err != nil {
		return false, err
	}
	if pk == nil || proof.Commitment == nil || proof.Challenge == nil {
		return false, nil
	}
	challenge, err := fsChallenge(g, p, pk, proof.Commitment, msg)
	if err != nil {
		return false, err
	}
	if challenge.Cmp(proof.Challenge) != 0 {
		return false, nil
	}
	return SchnorrVerify(g, p, pk, proof)
}

func fsChallenge(g, p, pk, commitment *big.Int, msg []byte) (*big.Int, error) {
	order := new(big.Int).Sub(p, big.NewInt(1))
	return FiatShamir(order, g.Bytes(), pk.Bytes(), commitment.Bytes(), msg)
}

func checkGroup(p *big.Int, generators ...*big.Int) error {
	if !arith.IsPrime(p) {
		return fmt.Errorf("%w: %v", field.ErrNotPrime, p)
	}
	for _, g := range generators {
		if g == nil || g.Cmp(big.NewInt(2)) < 0 || g.Cmp(p) >= 0 {
			return fmt.Errorf("invalid parametrization: generator %v is outside [2, %v)", g, p)
		}
	}
	return nil
}

func checkScalar(name string, v *big.Int) error {
	if v == nil || v.Sign() < 0 {
		return fmt.Errorf("invalid parametrization: %s must be non-negative, got %v", name, v)
	}
	return nil
}
