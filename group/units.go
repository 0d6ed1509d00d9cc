package group

import (
	"fmt"
	"math/big"

	"github.com/cryptolab/algebra/zmod"
)

// UnitsGroup is the multiplicative group (Z/nZ)* of residues coprime to n.
type UnitsGroup struct {
	ring  *zmod.Ring
	order *big.Int
}

// Units returns (Z/nZ)*. The order phi(n) is computed up front, so n must
// be factorable within the arith bounds.
func Units(n int64) (*UnitsGroup, error) {
	return UnitsBig(big.NewInt(n))
}

// UnitsBig is Units for large moduli.
func UnitsBig(n *big.Int) (*UnitsGroup, error) {
	ring, err := zmod.NewRingBig(n)
	if err != nil {
		return nil, err
	}
	phi, err := ring.UnitCount()
	if err != nil {
		return nil, err
	}
	return &UnitsGroup{ring: ring, order: phi}, nil
}

// Ring returns the underlying residue ring.
func (g *UnitsGroup) Ring() *zmod.Ring { return g.ring }

func (g *UnitsGroup) Identity() Element {
	return unitElement{g: g, v: g.ring.One()}
}

// Order returns phi(n).
func (g *UnitsGroup) Order() *big.Int { return new(big.Int).Set(g.order) }

// Elements lists the units ascending, inheriting the ring's enumeration
// bound.
func (g *UnitsGroup) Elements() ([]Element, error) {
	units, err := g.ring.Units()
	if err != nil {
		return nil, err
	}
	out := make([]Element, len(units))
	for i, u := range units {
		out[i] = unitElement{g: g, v: u}
	}
	return out, nil
}

// Element wraps v as a group element, failing with zmod.ErrNotUnit when
// gcd(v, n) != 1.
func (g *UnitsGroup) Element(v int64) (Element, error) {
	x := g.ring.Element(v)
	if _, err := x.Inverse(); err != nil {
		return nil, fmt.Errorf("%w: %v modulo %v", zmod.ErrNotUnit, x, g.ring.Modulus())
	}
	return unitElement{g: g, v: x}, nil
}

func (g *UnitsGroup) String() string {
	return fmt.Sprintf("(Z/%vZ)*", g.ring.Modulus())
}

type unitElement struct {
	g *UnitsGroup
	v zmod.Int
}

func (e unitElement) Group() Group { return e.g }

// Value returns the underlying residue.
func (e unitElement) Value() zmod.Int { return e.v }

func (e unitElement) Combine(o Element) (Element, error) {
	oe, ok := o.(unitElement)
	if !ok || e.g.ring.Modulus().Cmp(oe.g.ring.Modulus()) != 0 {
		return nil, fmt.Errorf("%w: cannot combine elements of %v and %v", ErrMismatchedGroups, e.g, o.Group())
	}
	prod, err := e.v.Mul(oe.v)
	if err != nil {
		return nil, err
	}
	return unitElement{g: e.g, v: prod}, nil
}

func (e unitElement) Inverse() (Element, error) {
	inv, err := e.v.Inverse()
	if err != nil {
		return nil, err
	}
	return unitElement{g: e.g, v: inv}, nil
}

func (e unitElement) IsIdentity() bool { return e.v.IsOne() }

func (e unitElement) Equal(o Element) bool {
	oe, ok := o.(unitElement)
	return ok && e.v.Equal(oe.v)
}

func (e unitElement) String() string { return e.v.String() }
