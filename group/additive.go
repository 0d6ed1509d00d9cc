package group

import (
	"fmt"
	"math/big"

	"github.com/cryptolab/algebra/zmod"
)

// AdditiveGroup is Z/nZ under addition, cyclic of order n with 1 as an
// obvious generator.
type AdditiveGroup struct {
	ring *zmod.Ring
}

// Additive returns the additive group Z/nZ.
func Additive(n int64) (*AdditiveGroup, error) {
	return AdditiveBig(big.NewInt(n))
}

// AdditiveBig is Additive for large moduli.
func AdditiveBig(n *big.Int) (*AdditiveGroup, error) {
	ring, err := zmod.NewRingBig(n)
	if err != nil {
		return nil, err
	}
	return &AdditiveGroup{ring: ring}, nil
}

// Ring returns the underlying residue ring.
func (g *AdditiveGroup) Ring() *zmod.Ring { return g.ring }

func (g *AdditiveGroup) Identity() Element {
	return additiveElement{g: g, v: g.ring.Zero()}
}

// Order returns n.
func (g *AdditiveGroup) Order() *big.Int { return g.ring.Modulus() }

// Elements lists 0..n-1, inheriting the ring's enumeration bound.
func (g *AdditiveGroup) Elements() ([]Element, error) {
	residues, err := g.ring.Elements()
	if err != nil {
		return nil, err
	}
	out := make([]Element, len(residues))
	for i, r := range residues {
		out[i] = additiveElement{g: g, v: r}
	}
	return out, nil
}

// Element wraps v, reduced mod n, as a group element.
func (g *AdditiveGroup) Element(v int64) Element {
	return additiveElement{g: g, v: g.ring.Element(v)}
}

func (g *AdditiveGroup) String() string {
	return fmt.Sprintf("Z/%vZ", g.ring.Modulus())
}

type additiveElement struct {
	g *AdditiveGroup
	v zmod.Int
}

func (e additiveElement) Group() Group { return e.g }

// Value returns the underlying residue.
func (e additiveElement) Value() zmod.Int { return e.v }

func (e additiveElement) Combine(o Element) (Element, error) {
	oe, ok := o.(additiveElement)
	if !ok || e.g.ring.Modulus().Cmp(oe.g.ring.Modulus()) != 0 {
		return nil, fmt.Errorf("%w: cannot combine elements of %v and %v", ErrMismatchedGroups, e.g, o.Group())
	}
	sum, err := e.v.Add(oe.v)
	if err != nil {
		return nil, err
	}
	return additiveElement{g: e.g, v: sum}, nil
}

func (e additiveElement) Inverse() (Element, error) {
	return additiveElement{g: e.g, v: e.v.Neg()}, nil
}

func (e additiveElement) IsIdentity() bool { return e.v.IsZero() }

func (e additiveElement) Equal(o Element) bool {
	oe, ok := o.(additiveElement)
	return ok && e.v.Equal(oe.v)
}

func (e additiveElement) String() string { return e.v.String() }
