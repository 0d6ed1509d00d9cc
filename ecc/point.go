package ecc

import (
	"fmt"
	"math/big"

	"github.com/cryptolab/algebra/field"
)

// Point is an immutable point on a Curve, either affine or the point at
// infinity. The zero value is not usable; points come from a Curve.
type Point struct {
	curve *Curve
	x, y  field.Element
	inf   bool
}

// Curve returns the owning curve.
func (p Point) Curve() *Curve { return p.curve }

// X returns the x coordinate, nil for the point at infinity.
func (p Point) X() field.Element {
	if p.inf {
		return nil
	}
	return p.x
}

// Y returns the y coordinate, nil for the point at infinity.
func (p Point) Y() field.Element {
	if p.inf {
		return nil
	}
	return p.y
}

// IsInfinity reports whether p is the group identity.
func (p Point) IsInfinity() bool { return p.inf }

func (p Point) String() string {
	if p.inf {
		return "O"
	}
	return fmt.Sprintf("(%v, %v)", p.x, p.y)
}

// Equal reports whether both points are the same point of the same curve.
func (p Point) Equal(q Point) bool {
	if !p.curve.Equal(q.curve) {
		return false
	}
	if p.inf || q.inf {
		return p.inf && q.inf
	}
	return p.x.Equal(q.x) && p.y.Equal(q.y)
}

// Neg returns the reflection -p, sharing x and negating y.
func (p Point) Neg() Point {
	if p.inf {
		return p
	}
	return Point{curve: p.curve, x: p.x, y: p.y.Neg()}
}

func (p Point) peer(q Point) error {
	if !p.curve.Equal(q.curve) {
		return fmt.Errorf("%w: cannot combine points of %v and %v", ErrMismatchedCurves, p.curve, q.curve)
	}
	return nil
}

// Add applies the chord-and-tangent law. The identity absorbs, a point
// plus its reflection gives the identity, equal points dispatch to
// Double, and distinct x coordinates use the chord slope
// λ = (y₂ - y₁)/(x₂ - x₁) with x_r = λ² - x₁ - x₂ and
// y_r = λ(x₁ - x_r) - y₁.
func (p Point) Add(q Point) (Point, error) {
	if err := p.peer(q); err != nil {
		return Point{}, err
	}
	if p.inf {
		return q, nil
	}
	if q.inf {
		return p, nil
	}
	if p.x.Equal(q.x) {
		ysum, err := p.y.Add(q.y)
		if err != nil {
			return Point{}, err
		}
		if ysum.IsZero() {
			return p.curve.Infinity(), nil
		}
		return p.Double()
	}

	dy, err := q.y.Sub(p.y)
	if err != nil {
		return Point{}, err
	}
	dx, err := q.x.Sub(p.x)
	if err != nil {
		return Point{}, err
	}
	lambda, err := dy.Div(dx)
	if err != nil {
		return Point{}, err
	}
	return p.chord(q, lambda)
}

// Double applies the tangent law: λ = (3x² + a)/(2y), with the vertical
// tangent at y = 0 giving the identity.
func (p Point) Double() (Point, error) {
	if p.inf {
		return p, nil
	}
	if p.y.IsZero() {
		return p.curve.Infinity(), nil
	}

	f := p.curve.f
	x2, err := p.x.Mul(p.x)
	if err != nil {
		return Point{}, err
	}
	num, err := f.FromInt64(3).Mul(x2)
	if err != nil {
		return Point{}, err
	}
	if num, err = num.Add(p.curve.a); err != nil {
		return Point{}, err
	}
	den, err := f.FromInt64(2).Mul(p.y)
	if err != nil {
		return Point{}, err
	}
	lambda, err := num.Div(den)
	if err != nil {
		return Point{}, err
	}
	return p.chord(p, lambda)
}

// chord finishes the law shared by addition and doubling once the slope
// is known.
func (p Point) chord(q Point, lambda field.Element) (Point, error) {
	l2, err := lambda.Mul(lambda)
	if err != nil {
		return Point{}, err
	}
	xr, err := l2.Sub(p.x)
	if err != nil {
		return Point{}, err
	}
	if xr, err = xr.Sub(q.x); err != nil {
		return Point{}, err
	}
	dx, err := p.x.Sub(xr)
	if err != nil {
		return Point{}, err
	}
	yr, err := lambda.Mul(dx)
	if err != nil {
		return Point{}, err
	}
	if yr, err = yr.Sub(p.y); err != nil {
		return Point{}, err
	}
	return Point{curve: p.curve, x: xr, y: yr}, nil
}

// ScalarMul returns k·p by double-and-add over the bits of k. Negative k
// multiplies the reflection, and k = 0 gives the identity.
func (p Point) ScalarMul(k *big.Int) (Point, error) {
	res, _, err := p.scalarMul(k, false)
	return res, err
}

// ScalarStep records one iteration of double-and-add. Bits are taken
// least significant first; Acc is the accumulator after the conditional
// addition and Double the running point after doubling.
type ScalarStep struct {
	Index  int
	Bit    uint
	Acc    Point
	Double Point
}

// ScalarMulSteps is ScalarMul with the full double-and-add trace.
func (p Point) ScalarMulSteps(k *big.Int) ([]ScalarStep, Point, error) {
	res, steps, err := p.scalarMul(k, true)
	return steps, res, err
}

func (p Point) scalarMul(k *big.Int, trace bool) (Point, []ScalarStep, error) {
	base := p
	e := k
	if k.Sign() < 0 {
		base = p.Neg()
		e = new(big.Int).Neg(k)
	}

	acc := p.curve.Infinity()
	dbl := base
	var steps []ScalarStep
	var err error
	for i := 0; i < e.BitLen(); i++ {
		bit := e.Bit(i)
		if bit == 1 {
			if acc, err = acc.Add(dbl); err != nil {
				return Point{}, nil, err
			}
		}
		next, err := dbl.Double()
		if err != nil {
			return Point{}, nil, err
		}
		if trace {
			steps = append(steps, ScalarStep{Index: i, Bit: bit, Acc: acc, Double: next})
		}
		dbl = next
	}
	return acc, steps, nil
}
