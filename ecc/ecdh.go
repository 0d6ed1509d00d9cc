package ecc

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// KeyPair is a Diffie-Hellman key: a secret scalar and the matching
// public point.
type KeyPair struct {
	Priv *big.Int
	Pub  Point
}

// GenerateKey draws a scalar from [1, n-1], where n is the order of gen,
// and pairs it with priv·gen. The reader defaults to crypto/rand.
func GenerateKey(gen Point, n *big.Int, r io.Reader) (KeyPair, error) {
	if gen.IsInfinity() {
		return KeyPair{}, fmt.Errorf("the generator cannot be the identity")
	}
	if n == nil || n.Cmp(big.NewInt(2)) < 0 {
		return KeyPair{}, fmt.Errorf("generator order must be at least 2, got %v", n)
	}
	if r == nil {
		r = rand.Reader
	}
	k, err := rand.Int(r, new(big.Int).Sub(n, big.NewInt(1)))
	if err != nil {
		return KeyPair{}, err
	}
	k.Add(k, big.NewInt(1))
	pub, err := gen.ScalarMul(k)
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{Priv: k, Pub: pub}, nil
}

// SharedSecret returns priv·pub, the full Diffie-Hellman point. Both
// parties land on the same point; protocols usually keep only its x
// coordinate.
func SharedSecret(priv *big.Int, pub Point) (Point, error) {
	return pub.ScalarMul(priv)
}
