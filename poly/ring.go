package poly

import (
	"fmt"
	"io"

	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog"

	"github.com/cryptolab/algebra/field"
	"github.com/cryptolab/algebra/logger"
)

// irreducibleCacheSize bounds the per-ring cache of found irreducible
// polynomials, keyed by degree.
const irreducibleCacheSize = 32

// Ring is the ring F[x] of polynomials over a finite field. Each ring owns
// its own cache of irreducible polynomials, so independently constructed
// rings never share state.
type Ring struct {
	f            field.Field
	irreducibles *lru.Cache
	log          zerolog.Logger
}

// NewRing returns F[x] for the given coefficient field.
func NewRing(f field.Field) *Ring {
	cache, _ := lru.New(irreducibleCacheSize)
	return &Ring{
		f:            f,
		irreducibles: cache,
		log:          logger.Logger().With().Str("ring", f.String()+"[x]").Logger(),
	}
}

// Field returns the coefficient field.
func (r *Ring) Field() field.Field { return r.f }

// Equal reports whether both rings have the same coefficient field.
func (r *Ring) Equal(o *Ring) bool { return r.f.Equal(o.f) }

func (r *Ring) String() string { return r.f.String() + "[x]" }

// Zero returns the zero polynomial.
func (r *Ring) Zero() Polynomial { return Polynomial{ring: r} }

// One returns the constant one.
func (r *Ring) One() Polynomial {
	return Polynomial{ring: r, coeffs: []field.Element{r.f.One()}}
}

// X returns the monomial x.
func (r *Ring) X() Polynomial {
	return Polynomial{ring: r, coeffs: []field.Element{r.f.Zero(), r.f.One()}}
}

// Constant returns the constant polynomial c.
func (r *Ring) Constant(c field.Element) (Polynomial, error) {
	return r.FromElements([]field.Element{c})
}

// Monomial returns c * x^deg.
func (r *Ring) Monomial(c field.Element, deg int) (Polynomial, error) {
	if deg < 0 {
		return Polynomial{}, fmt.Errorf("monomial degree must be non-negative, got %d", deg)
	}
	coeffs := make([]field.Element, deg+1)
	for i := 0; i < deg; i++ {
		coeffs[i] = r.f.Zero()
	}
	coeffs[deg] = c
	return r.FromElements(coeffs)
}

// FromElements builds the polynomial with the given coefficients, constant
// term first. Every coefficient must come from the ring's field.
func (r *Ring) FromElements(coeffs []field.Element) (Polynomial, error) {
	out := make([]field.Element, len(coeffs))
	for i, c := range coeffs {
		if !c.Field().Equal(r.f) {
			return Polynomial{}, fmt.Errorf("%w: coefficient %d lies in %v, not %v", field.ErrMismatchedFields, i, c.Field(), r.f)
		}
		out[i] = c
	}
	return r.trim(out), nil
}

// FromInt64s builds a polynomial from small integer coefficients, constant
// term first, each reduced into the field.
func (r *Ring) FromInt64s(coeffs []int64) Polynomial {
	out := make([]field.Element, len(coeffs))
	for i, c := range coeffs {
		out[i] = r.f.FromInt64(c)
	}
	return r.trim(out)
}

// linear returns the monic linear polynomial x - a.
func (r *Ring) linear(a field.Element) (Polynomial, error) {
	return r.FromElements([]field.Element{a.Neg(), r.f.One()})
}

// Random returns a polynomial of degree at most deg with uniform
// coefficients drawn from rnd (crypto/rand when nil).
func (r *Ring) Random(deg int, rnd io.Reader) (Polynomial, error) {
	if deg < 0 {
		return r.Zero(), nil
	}
	coeffs := make([]field.Element, deg+1)
	for i := range coeffs {
		c, err := r.f.Random(rnd)
		if err != nil {
			return Polynomial{}, err
		}
		coeffs[i] = c
	}
	return r.trim(coeffs), nil
}

// Interpolate returns the unique polynomial of degree < len(xs) through the
// points (xs[i], ys[i]), by the Lagrange construction. The nodes must be
// distinct.
func (r *Ring) Interpolate(xs, ys []field.Element) (Polynomial, error) {
	if len(xs) != len(ys) {
		return Polynomial{}, fmt.Errorf("interpolation needs as many values as nodes: %d != %d", len(xs), len(ys))
	}
	for i := 0; i < len(xs); i++ {
		for j := i + 1; j < len(xs); j++ {
			if xs[i].Equal(xs[j]) {
				return Polynomial{}, fmt.Errorf("interpolation nodes must be distinct: node %v repeats", xs[i])
			}
		}
	}

	res := r.Zero()
	for i := range xs {
		// basis polynomial L_i scaled by ys[i]
		basis, err := r.Constant(ys[i])
		if err != nil {
			return Polynomial{}, err
		}
		for j := range xs {
			if j == i {
				continue
			}
			num, err := r.linear(xs[j])
			if err != nil {
				return Polynomial{}, err
			}
			den, err := xs[i].Sub(xs[j])
			if err != nil {
				return Polynomial{}, err
			}
			denInv, err := den.Inverse()
			if err != nil {
				return Polynomial{}, err
			}
			if num, err = num.Scale(denInv); err != nil {
				return Polynomial{}, err
			}
			if basis, err = basis.Mul(num); err != nil {
				return Polynomial{}, err
			}
		}
		if res, err = res.Add(basis); err != nil {
			return Polynomial{}, err
		}
	}
	return res, nil
}

// FindIrreducible returns the first monic irreducible polynomial of the
// given degree, in ascending order of the integer encoding of the
// coefficient tuple (constant term least significant). Results are cached
// per ring.
func (r *Ring) FindIrreducible(degree int) (Polynomial, error) {
	if degree < 1 {
		return Polynomial{}, fmt.Errorf("irreducible degree must be at least 1, got %d", degree)
	}
	if cached, ok := r.irreducibles.Get(degree); ok {
		return cached.(Polynomial), nil
	}

	elems, err := r.f.Elements()
	if err != nil {
		return Polynomial{}, err
	}
	q := len(elems)

	coeffs := make([]field.Element, degree+1)
	coeffs[degree] = r.f.One()
	digits := make([]int, degree)

	searched := 0
	for {
		for i, d := range digits {
			coeffs[i] = elems[d]
		}
		candidate, err := r.FromElements(coeffs)
		if err != nil {
			return Polynomial{}, err
		}
		irreducible, err := candidate.IsIrreducible()
		if err != nil {
			return Polynomial{}, err
		}
		searched++
		if irreducible {
			r.log.Debug().Int("degree", degree).Int("candidates", searched).
				Str("polynomial", candidate.String()).Msg("found irreducible")
			r.irreducibles.Add(degree, candidate)
			return candidate, nil
		}

		// advance the base-q odometer
		i := 0
		for ; i < degree; i++ {
			digits[i]++
			if digits[i] < q {
				break
			}
			digits[i] = 0
		}
		if i == degree {
			// exhausted every monic polynomial of this degree
			return Polynomial{}, fmt.Errorf("%w: no irreducible of degree %d over %v", ErrBoundExceeded, degree, r.f)
		}
	}
}

func (r *Ring) trim(coeffs []field.Element) Polynomial {
	end := len(coeffs)
	for end > 0 && coeffs[end-1].IsZero() {
		end--
	}
	return Polynomial{ring: r, coeffs: coeffs[:end]}
}
