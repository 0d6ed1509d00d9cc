package ecc

import (
	"fmt"
	"math/big"

	"github.com/cryptolab/algebra/group"
)

// PointGroup presents the points of a curve as a group.Group, so the
// cyclic-group engine's order, generator and discrete-log machinery
// works on curves unchanged.
type PointGroup struct {
	curve *Curve
}

// Group returns the curve's point-group view.
func (c *Curve) Group() *PointGroup {
	return &PointGroup{curve: c}
}

// Curve returns the underlying curve.
func (g *PointGroup) Curve() *Curve { return g.curve }

func (g *PointGroup) Identity() group.Element {
	return PointElement{g: g, p: g.curve.Infinity()}
}

// Order returns |E(F)|, or nil when the field is too large to count.
func (g *PointGroup) Order() *big.Int {
	n, err := g.curve.NumPoints()
	if err != nil {
		return nil
	}
	return n
}

func (g *PointGroup) Elements() ([]group.Element, error) {
	pts, err := g.curve.Points()
	if err != nil {
		return nil, err
	}
	out := make([]group.Element, len(pts))
	for i, p := range pts {
		out[i] = PointElement{g: g, p: p}
	}
	return out, nil
}

func (g *PointGroup) String() string {
	return fmt.Sprintf("E(%v)", g.curve)
}

// Element wraps a point of the group's curve for the engine.
func (g *PointGroup) Element(p Point) (group.Element, error) {
	if !p.curve.Equal(g.curve) {
		return nil, fmt.Errorf("%w: %v lies on %v, not %v", group.ErrMismatchedGroups, p, p.curve, g.curve)
	}
	return PointElement{g: g, p: p}, nil
}

// PointElement is a curve point in its group.Element role.
type PointElement struct {
	g *PointGroup
	p Point
}

func (e PointElement) Group() group.Group { return e.g }

// Point returns the wrapped point.
func (e PointElement) Point() Point { return e.p }

func (e PointElement) Combine(o group.Element) (group.Element, error) {
	oe, ok := o.(PointElement)
	if !ok {
		return nil, fmt.Errorf("%w: cannot combine elements of %v and %v", group.ErrMismatchedGroups, e.g, o.Group())
	}
	sum, err := e.p.Add(oe.p)
	if err != nil {
		return nil, err
	}
	return PointElement{g: e.g, p: sum}, nil
}

func (e PointElement) Inverse() (group.Element, error) {
	return PointElement{g: e.g, p: e.p.Neg()}, nil
}

func (e PointElement) IsIdentity() bool { return e.p.IsInfinity() }

func (e PointElement) Equal(o group.Element) bool {
	oe, ok := o.(PointElement)
	return ok && e.p.Equal(oe.p)
}

func (e PointElement) String() string { return e.p.String() }
