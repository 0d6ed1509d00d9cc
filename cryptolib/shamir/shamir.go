// Package shamir implements Shamir secret sharing over a finite field,
// together with the plain additive sharing and the Beaver triple step
// used in toy multiparty computation walkthroughs.
//
// A secret s is hidden as the constant term of a random polynomial of
// degree t-1; shares are evaluations at x = 1..n. Any t shares
// interpolate the polynomial, fewer reveal nothing.
package shamir

import (
	"fmt"
	"io"
	"math/big"

	"github.com/cryptolab/algebra/field"
	"github.com/cryptolab/algebra/poly"
)

// Share is one evaluation point (x, f(x)) handed to a participant.
type Share struct {
	X field.Element
	Y field.Element
}

func (s Share) String() string {
	return fmt.Sprintf("(%v, %v)", s.X, s.Y)
}

// Split hides secret in a random polynomial of degree t-1 and returns n
// shares, evaluated at x = 1..n. Randomness comes from rnd (crypto/rand
// when nil). The field must have at least n nonzero points.
func Split(secret field.Element, t, n int, rnd io.Reader) ([]Share, error) {
	if secret == nil {
		return nil, fmt.Errorf("invalid parametrization: secret must not be nil")
	}
	if t < 1 {
		return nil, fmt.Errorf("invalid parametrization: threshold must be at least 1, got %d", t)
	}
	if n < t {
		return nil, fmt.Errorf("invalid parametrization: need at least threshold many shares, got n = %d < t = %d", n, t)
	}
	f := secret.Field()
	if big.NewInt(int64(n)).Cmp(f.Order()) >= 0 {
		return nil, fmt.Errorf("invalid parametrization: %v has fewer than %d nonzero evaluation points", f, n)
	}

	coeffs := make([]field.Element, t)
	coeffs[0] = secret
	for i := 1; i < t; i++ {
		c, err := f.Random(rnd)
		if err != nil {
			return nil, err
		}
		coeffs[i] = c
	}
	p, err := poly.NewRing(f).FromElements(coeffs)
	if err != nil {
		return nil, err
	}

	shares := make([]Share, n)
	for i := range shares {
		x := f.FromInt64(int64(i + 1))
		y, err := p.Eval(x)
		if err != nil {
			return nil, err
		}
		shares[i] = Share{X: x, Y: y}
	}
	return shares, nil
}

// Reconstruct interpolates the sharing polynomial through the given
// shares and returns its value at zero. With at least threshold many
// honest shares this is the secret; with fewer it is garbage, not an
// error.
func Reconstruct(shares []Share) (field.Element, error) {
	if len(shares) == 0 {
		return nil, fmt.Errorf("invalid parametrization: no shares to reconstruct from")
	}
	f := shares[0].X.Field()
	xs := make([]field.Element, len(shares))
	ys := make([]field.Element, len(shares))
	for i, s := range shares {
		if s.X == nil || s.Y == nil || !s.X.Field().Equal(f) || !s.Y.Field().Equal(f) {
			return nil, fmt.Errorf("%w: share %d does not live in %v", field.ErrMismatchedFields, i, f)
		}
		xs[i], ys[i] = s.X, s.Y
	}

	p, err := poly.NewRing(f).Interpolate(xs, ys)
	if err != nil {
		return nil, err
	}
	return p.Eval(f.Zero())
}

// SplitAdditive writes secret as a sum of n uniformly random summands.
func SplitAdditive(secret field.Element, n int, rnd io.Reader) ([]field.Element, error) {
	if secret == nil {
		return nil, fmt.Errorf("invalid parametrization: secret must not be nil")
	}
	if n < 1 {
		return nil, fmt.Errorf("invalid parametrization: need at least one share, got %d", n)
	}
	f := secret.Field()

	shares := make([]field.Element, n)
	rest := secret
	for i := 0; i < n-1; i++ {
		c, err := f.Random(rnd)
		if err != nil {
			return nil, err
		}
		shares[i] = c
		if rest, err = rest.Sub(c); err != nil {
			return nil, err
		}
	}
	shares[n-1] = rest
	return shares, nil
}

// ReconstructAdditive sums the shares back into the secret.
func ReconstructAdditive(shares []field.Element) (field.Element, error) {
	if len(shares) == 0 {
		return nil, fmt.Errorf("invalid parametrization: no shares to reconstruct from")
	}
	for i, s := range shares {
		if s == nil {
			return nil, fmt.Errorf("invalid parametrization: share %d is nil", i)
		}
	}
	sum := shares[0]
	for _, s := range shares[1:] {
		var err error
		if sum, err = sum.Add(s); err != nil {
			return nil, err
		}
	}
	return sum, nil
}

// BeaverMulShare computes one party's share of a·b from its shares of a
// Beaver triple (u, v, w) with w = u·v, after the differences d = a - u
// and e = b - v have been opened: the share is w + e·u + d·v, and the
// lead party additionally adds the public product d·e.
func BeaverMulShare(w, u, v, d, e field.Element, lead bool) (field.Element, error) {
	for _, el := range []field.Element{w, u, v, d, e} {
		if el == nil {
			return nil, fmt.Errorf("invalid parametrization: nil share")
		}
	}
	eu, err := e.Mul(u)
	if err != nil {
		return nil, err
	}
	dv, err := d.Mul(v)
	if err != nil {
		return nil, err
	}
	z, err := w.Add(eu)
	if err != nil {
		return nil, err
	}
	if z, err = z.Add(dv); err != nil {
		return nil, err
	}
	if !lead {
		return z, nil
	}
	de, err := d.Mul(e)
	if err != nil {
		return nil, err
	}
	return z.Add(de)
}
