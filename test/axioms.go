package test

import (
	"github.com/cryptolab/algebra/field"
	"github.com/cryptolab/algebra/group"
)

// FieldAxioms sweeps the field axioms over elems: identities, inverses,
// commutativity, associativity and distributivity. Meant for fully
// enumerated small fields; the triple loops grow cubically.
func (a *Assert) FieldAxioms(f field.Field, elems []field.Element) {
	a.t.Helper()

	add := func(x, y field.Element) field.Element {
		z, err := x.Add(y)
		a.NoError(err)
		return z
	}
	mul := func(x, y field.Element) field.Element {
		z, err := x.Mul(y)
		a.NoError(err)
		return z
	}

	for _, x := range elems {
		a.EqualElement(x, add(x, f.Zero()))
		a.EqualElement(x, mul(x, f.One()))
		a.EqualElement(f.Zero(), add(x, x.Neg()))
		if !x.IsZero() {
			inv, err := x.Inverse()
			a.NoError(err)
			a.EqualElement(f.One(), mul(x, inv))
		}
	}

	for _, x := range elems {
		for _, y := range elems {
			a.EqualElement(add(x, y), add(y, x))
			a.EqualElement(mul(x, y), mul(y, x))
		}
	}

	for _, x := range elems {
		for _, y := range elems {
			for _, z := range elems {
				a.EqualElement(add(add(x, y), z), add(x, add(y, z)))
				a.EqualElement(mul(mul(x, y), z), mul(x, mul(y, z)))
				a.EqualElement(add(mul(x, y), mul(x, z)), mul(x, add(y, z)))
			}
		}
	}
}

// GroupLaws enumerates g and checks closure, associativity, the identity
// and an inverse for every element.
func (a *Assert) GroupLaws(g group.Group) {
	a.t.Helper()

	elems, err := g.Elements()
	a.NoError(err)
	id := g.Identity()
	a.True(id.IsIdentity())

	combine := func(x, y group.Element) group.Element {
		z, err := x.Combine(y)
		a.NoError(err)
		return z
	}
	contains := func(x group.Element) bool {
		for _, e := range elems {
			if e.Equal(x) {
				return true
			}
		}
		return false
	}

	for _, x := range elems {
		a.True(x.Equal(combine(x, id)))
		a.True(x.Equal(combine(id, x)))
		inv, err := x.Inverse()
		a.NoError(err)
		a.True(combine(x, inv).IsIdentity(), "%v has no working inverse", x)
	}

	for _, x := range elems {
		for _, y := range elems {
			a.True(contains(combine(x, y)), "%v · %v leaves the group", x, y)
		}
	}

	for _, x := range elems {
		for _, y := range elems {
			for _, z := range elems {
				a.True(combine(combine(x, y), z).Equal(combine(x, combine(y, z))))
			}
		}
	}
}
