package ecc

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/cryptolab/algebra/arith"
	"github.com/cryptolab/algebra/field"
)

// hasseBudget caps the interval walk in hasseOrder.
const hasseBudget = 1 << 20

// squareRootField is the square-root capability prime fields provide.
type squareRootField interface {
	IsSquare(field.Element) (bool, error)
	Sqrt(field.Element) (field.Element, error)
}

// Points enumerates E(F), the identity first and affine points in the
// field's element order. Fields with square roots are scanned per x
// coordinate; other fields check every coordinate pair. The field's
// enumeration bound applies, so large fields report an error instead of
// looping.
func (c *Curve) Points() ([]Point, error) {
	xs, err := c.f.Elements()
	if err != nil {
		return nil, err
	}
	pts := []Point{c.Infinity()}

	if sr, ok := c.f.(squareRootField); ok {
		for _, x := range xs {
			t, err := c.rhs(x)
			if err != nil {
				return nil, err
			}
			if t.IsZero() {
				pts = append(pts, Point{curve: c, x: x, y: c.f.Zero()})
				continue
			}
			square, err := sr.IsSquare(t)
			if err != nil {
				return nil, err
			}
			if !square {
				continue
			}
			y, err := sr.Sqrt(t)
			if err != nil {
				return nil, err
			}
			pts = append(pts, Point{curve: c, x: x, y: y}, Point{curve: c, x: x, y: y.Neg()})
		}
		return pts, nil
	}

	for _, x := range xs {
		t, err := c.rhs(x)
		if err != nil {
			return nil, err
		}
		for _, y := range xs {
			y2, err := y.Mul(y)
			if err != nil {
				return nil, err
			}
			if y2.Equal(t) {
				pts = append(pts, Point{curve: c, x: x, y: y})
			}
		}
	}
	return pts, nil
}

// NumPoints counts |E(F)| including the identity. Prime fields use a
// residue scan (x contributes 2, 1 or 0 points as x³ + ax + b is a
// nonzero square, zero, or a non-residue); other fields enumerate. The
// count is memoized on the curve.
func (c *Curve) NumPoints() (*big.Int, error) {
	c.countOnce.Do(func() {
		c.count, c.countErr = c.countPoints()
	})
	if c.countErr != nil {
		return nil, c.countErr
	}
	return new(big.Int).Set(c.count), nil
}

func (c *Curve) countPoints() (*big.Int, error) {
	sr, ok := c.f.(squareRootField)
	if !ok {
		pts, err := c.Points()
		if err != nil {
			return nil, err
		}
		return big.NewInt(int64(len(pts))), nil
	}

	xs, err := c.f.Elements()
	if err != nil {
		return nil, err
	}
	n := big.NewInt(1)
	for _, x := range xs {
		t, err := c.rhs(x)
		if err != nil {
			return nil, err
		}
		if t.IsZero() {
			n.Add(n, big.NewInt(1))
			continue
		}
		square, err := sr.IsSquare(t)
		if err != nil {
			return nil, err
		}
		if square {
			n.Add(n, big.NewInt(2))
		}
	}
	return n, nil
}

// Order returns the order of p in the curve group. Enumerable fields
// count the curve and try the divisors of |E(F)| ascending; beyond the
// enumeration bound the order is located by a Hasse-interval search and
// reduced prime by prime. Without Schoof-style counting the search walks
// O(√|F|) multiples, which is the documented teaching-scale limit.
func (p Point) Order() (*big.Int, error) {
	if p.inf {
		return big.NewInt(1), nil
	}

	n, err := p.curve.NumPoints()
	switch {
	case err == nil:
		divs, err := arith.Divisors(n)
		if err != nil {
			return nil, err
		}
		for _, d := range divs {
			m, err := p.ScalarMul(d)
			if err != nil {
				return nil, err
			}
			if m.IsInfinity() {
				return new(big.Int).Set(d), nil
			}
		}
		// Lagrange guarantees a divisor annihilates
		return nil, fmt.Errorf("order of %v not found among divisors of %v", p, n)
	case errors.Is(err, arith.ErrBoundExceeded):
		return p.hasseOrder()
	default:
		return nil, err
	}
}

// hasseOrder finds an annihilating multiple inside the Hasse interval
// [q+1-2√q, q+1+2√q] and strips every removable prime factor, leaving
// the exact order.
func (p Point) hasseOrder() (*big.Int, error) {
	q := p.curve.f.Order()
	half := new(big.Int).Sqrt(q)
	half.Lsh(half, 1)
	half.Add(half, big.NewInt(2)) // cover the sqrt truncation
	span := new(big.Int).Lsh(half, 1)
	if span.Cmp(big.NewInt(hasseBudget)) > 0 {
		return nil, fmt.Errorf("%w: Hasse interval spans %v multiples of %v, budget is %d", arith.ErrBoundExceeded, span, p, hasseBudget)
	}

	start := new(big.Int).Add(q, big.NewInt(1))
	start.Sub(start, half)
	if start.Sign() <= 0 {
		start = big.NewInt(1)
	}

	r, err := p.ScalarMul(start)
	if err != nil {
		return nil, err
	}
	m := new(big.Int).Set(start)
	var multiple *big.Int
	for i := int64(0); i <= span.Int64(); i++ {
		if r.IsInfinity() {
			multiple = new(big.Int).Set(m)
			break
		}
		if r, err = r.Add(p); err != nil {
			return nil, err
		}
		m.Add(m, big.NewInt(1))
	}
	if multiple == nil {
		return nil, fmt.Errorf("no multiple of %v vanishes in the Hasse interval around %v", p, q)
	}

	factors, err := arith.Factor(multiple)
	if err != nil {
		return nil, err
	}
	for _, pp := range factors {
		for i := 0; i < pp.Exp; i++ {
			candidate := new(big.Int).Quo(multiple, pp.Prime)
			if candidate.Sign() == 0 {
				break
			}
			mp, err := p.ScalarMul(candidate)
			if err != nil {
				return nil, err
			}
			if !mp.IsInfinity() {
				break
			}
			multiple = candidate
		}
	}
	return multiple, nil
}
