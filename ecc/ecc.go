// Package ecc implements short Weierstrass elliptic curves over finite
// fields at teaching scale.
//
// A curve y² = x³ + ax + b is defined over any field.Field of
// characteristic above 3, and construction rejects singular parameter
// choices. Points are immutable values owned by their curve: the chord
// and tangent group law, scalar multiplication with a steppable trace,
// point enumeration and the ECDH/ECDSA primitives all operate on them,
// and Group exposes the points to the cyclic-group engine.
//
// Point counting is enumeration grade: a square-residue scan over prime
// fields, full enumeration elsewhere, and a Hasse-interval search when
// the field is too large to enumerate. Schoof's algorithm is out of
// scope.
package ecc

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/cryptolab/algebra/field"
	"github.com/cryptolab/algebra/logger"
)

var (
	ErrSingularCurve    = errors.New("invalid parametrization: singular curve")
	ErrNotOnCurve       = errors.New("point is not on the curve")
	ErrMismatchedCurves = errors.New("mismatched curves")
)

// Curve is the short Weierstrass curve y² = x³ + ax + b over a finite
// field. Curves are immutable and safe to share; the point count is
// memoized per instance.
type Curve struct {
	f    field.Field
	a, b field.Element

	countOnce sync.Once
	count     *big.Int
	countErr  error
}

// NewCurve builds y² = x³ + ax + b over f. It fails when a or b lives in
// another field, when the characteristic is 2 or 3 (the short Weierstrass
// form degenerates there), and with ErrSingularCurve when the
// discriminant term 4a³ + 27b² vanishes.
func NewCurve(f field.Field, a, b field.Element) (*Curve, error) {
	if !a.Field().Equal(f) {
		return nil, fmt.Errorf("%w: coefficient a lies in %v, not %v", field.ErrMismatchedFields, a.Field(), f)
	}
	if !b.Field().Equal(f) {
		return nil, fmt.Errorf("%w: coefficient b lies in %v, not %v", field.ErrMismatchedFields, b.Field(), f)
	}
	if f.Char().Cmp(big.NewInt(3)) <= 0 {
		return nil, fmt.Errorf("invalid parametrization: the short Weierstrass form needs characteristic > 3, %v has characteristic %v", f, f.Char())
	}

	disc, err := discriminantTerm(f, a, b)
	if err != nil {
		return nil, err
	}
	if disc.IsZero() {
		return nil, fmt.Errorf("%w: 4a³ + 27b² = 0 for a = %v, b = %v over %v", ErrSingularCurve, a, b, f)
	}

	c := &Curve{f: f, a: a, b: b}
	logger.Component("ecc").Debug().Str("curve", c.String()).Msg("constructed curve")
	return c, nil
}

// NewCurveFromInt64 is NewCurve with coefficients embedded from integers.
func NewCurveFromInt64(f field.Field, a, b int64) (*Curve, error) {
	return NewCurve(f, f.FromInt64(a), f.FromInt64(b))
}

// discriminantTerm computes 4a³ + 27b², the factor of the discriminant
// that decides singularity.
func discriminantTerm(f field.Field, a, b field.Element) (field.Element, error) {
	a3, err := a.Pow(big.NewInt(3))
	if err != nil {
		return nil, err
	}
	left, err := f.FromInt64(4).Mul(a3)
	if err != nil {
		return nil, err
	}
	b2, err := b.Mul(b)
	if err != nil {
		return nil, err
	}
	right, err := f.FromInt64(27).Mul(b2)
	if err != nil {
		return nil, err
	}
	return left.Add(right)
}

// Field returns the field the curve is defined over.
func (c *Curve) Field() field.Field { return c.f }

// A returns the x coefficient.
func (c *Curve) A() field.Element { return c.a }

// B returns the constant coefficient.
func (c *Curve) B() field.Element { return c.b }

// Equal reports whether both curves have the same field and coefficients.
func (c *Curve) Equal(o *Curve) bool {
	if c == o {
		return true
	}
	if c == nil || o == nil {
		return false
	}
	return c.f.Equal(o.f) && c.a.Equal(o.a) && c.b.Equal(o.b)
}

func (c *Curve) String() string {
	rhs := "x³"
	if !c.a.IsZero() {
		rhs += " + " + coeffText(c.a) + "x"
	}
	if !c.b.IsZero() {
		rhs += " + " + coeffText(c.b)
	}
	return fmt.Sprintf("y² = %s over %v", rhs, c.f)
}

// coeffText parenthesizes coefficients whose display is more than a
// plain number, so extension coefficients like x + 1 stay readable.
func coeffText(e field.Element) string {
	s := e.String()
	if strings.ContainsAny(s, " +-*") {
		return "(" + s + ")"
	}
	return s
}

// rhs evaluates x³ + ax + b.
func (c *Curve) rhs(x field.Element) (field.Element, error) {
	x3, err := x.Pow(big.NewInt(3))
	if err != nil {
		return nil, err
	}
	ax, err := c.a.Mul(x)
	if err != nil {
		return nil, err
	}
	sum, err := x3.Add(ax)
	if err != nil {
		return nil, err
	}
	return sum.Add(c.b)
}

// IsOnCurve reports whether (x, y) satisfies the curve equation.
func (c *Curve) IsOnCurve(x, y field.Element) (bool, error) {
	if !x.Field().Equal(c.f) || !y.Field().Equal(c.f) {
		return false, fmt.Errorf("%w: coordinates must lie in %v", field.ErrMismatchedFields, c.f)
	}
	rhs, err := c.rhs(x)
	if err != nil {
		return false, err
	}
	y2, err := y.Mul(y)
	if err != nil {
		return false, err
	}
	return y2.Equal(rhs), nil
}

// Infinity returns the point at infinity, the group identity.
func (c *Curve) Infinity() Point {
	return Point{curve: c, inf: true}
}

// Point builds the affine point (x, y), failing with ErrNotOnCurve when
// the coordinates do not satisfy the curve equation.
func (c *Curve) Point(x, y field.Element) (Point, error) {
	on, err := c.IsOnCurve(x, y)
	if err != nil {
		return Point{}, err
	}
	if !on {
		return Point{}, fmt.Errorf("%w: (%v, %v) fails %v", ErrNotOnCurve, x, y, c)
	}
	return Point{curve: c, x: x, y: y}, nil
}

// PointFromInt64 is Point with coordinates embedded from integers.
func (c *Curve) PointFromInt64(x, y int64) (Point, error) {
	return c.Point(c.f.FromInt64(x), c.f.FromInt64(y))
}
