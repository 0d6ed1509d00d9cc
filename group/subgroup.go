package group

import (
	"fmt"
	"math/big"
)

// Subgroup is the cyclic subgroup generated by one element, carrying its
// ordered orbit: the identity first, then ascending powers of the
// generator.
type Subgroup struct {
	generator Element
	elements  []Element
}

// Generator returns the element whose orbit the subgroup is.
func (s *Subgroup) Generator() Element { return s.generator }

// Order returns the number of elements.
func (s *Subgroup) Order() *big.Int { return big.NewInt(int64(len(s.elements))) }

// Elements returns a copy of the orbit in visiting order.
func (s *Subgroup) Elements() []Element {
	out := make([]Element, len(s.elements))
	copy(out, s.elements)
	return out
}

// Contains reports whether x lies in the subgroup.
func (s *Subgroup) Contains(x Element) bool {
	for _, e := range s.elements {
		if e.Equal(x) {
			return true
		}
	}
	return false
}

func (s *Subgroup) String() string {
	return fmt.Sprintf("subgroup of order %d generated by %v", len(s.elements), s.generator)
}

// Coset returns {a ∘ h : h in sub}, preserving the subgroup's element
// order. For a in the subgroup this is the subgroup itself, permuted.
func Coset(a Element, sub *Subgroup) ([]Element, error) {
	out := make([]Element, len(sub.elements))
	for i, h := range sub.elements {
		c, err := a.Combine(h)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}
