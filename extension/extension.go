// Package extension constructs GF(q^k) as the quotient F[x]/(m) of a
// polynomial ring by a monic irreducible modulus m of degree k. Elements
// are reduced polynomials and satisfy the same field contract as
// prime-field elements, so curves, groups and pairings work over either
// representation. Bases may themselves be extensions, giving towers.
package extension

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/cryptolab/algebra/arith"
	"github.com/cryptolab/algebra/field"
	"github.com/cryptolab/algebra/logger"
	"github.com/cryptolab/algebra/poly"
)

// ErrNotIrreducible rejects a reducible quotient modulus.
var ErrNotIrreducible = errors.New("invalid parametrization: modulus polynomial is not irreducible")

// enumBound caps element enumeration, matching the prime-field bound.
const enumBound = 1 << 20

// Field is the extension field GF(q^k) over a base field of order q. The
// zero value is unusable; construct with New. A Field is immutable and safe
// for concurrent use.
type Field struct {
	base    field.Field
	k       int
	ring    *poly.Ring
	modulus poly.Polynomial
	order   *big.Int
	zero    field.Element
	one     field.Element
}

type config struct {
	modulus *poly.Polynomial
}

// Option configures extension construction.
type Option func(*config) error

// WithModulus selects the quotient modulus instead of the default
// first-in-ascending-order irreducible of the requested degree.
func WithModulus(m poly.Polynomial) Option {
	return func(cfg *config) error {
		cfg.modulus = &m
		return nil
	}
}

// New constructs GF(q^k) over the base field. Without options the modulus
// is the first monic irreducible of degree k in ascending coefficient-tuple
// encoding, so independently constructed fields agree on the
// representation. A supplied modulus must be a degree-k irreducible over
// the base; it is normalized to monic form.
func New(base field.Field, k int, opts ...Option) (*Field, error) {
	if k < 1 {
		return nil, fmt.Errorf("extension degree must be at least 1, got %d", k)
	}
	var cfg config
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	var (
		ring    *poly.Ring
		modulus poly.Polynomial
		err     error
	)
	if cfg.modulus == nil {
		ring = poly.NewRing(base)
		if modulus, err = ring.FindIrreducible(k); err != nil {
			return nil, err
		}
	} else {
		modulus = *cfg.modulus
		ring = modulus.Ring()
		if ring == nil {
			return nil, fmt.Errorf("modulus is the zero value, construct it through a polynomial ring")
		}
		if !ring.Field().Equal(base) {
			return nil, fmt.Errorf("%w: modulus over %v, base field is %v", field.ErrMismatchedFields, ring.Field(), base)
		}
		if modulus.Degree() != k {
			return nil, fmt.Errorf("modulus %v has degree %d, want %d", modulus, modulus.Degree(), k)
		}
		irreducible, err := modulus.IsIrreducible()
		if err != nil {
			return nil, err
		}
		if !irreducible {
			return nil, fmt.Errorf("%w: %v over %v", ErrNotIrreducible, modulus, base)
		}
		if modulus, err = modulus.Monic(); err != nil {
			return nil, err
		}
	}

	f := &Field{
		base:    base,
		k:       k,
		ring:    ring,
		modulus: modulus,
		order:   new(big.Int).Exp(base.Order(), big.NewInt(int64(k)), nil),
	}
	f.zero = extElement{field: f, rep: ring.Zero()}
	f.one = extElement{field: f, rep: ring.One()}

	logger.Component("extension").Debug().Str("field", f.String()).
		Str("modulus", modulus.String()).Msg("constructed extension field")
	return f, nil
}

// Base returns the coefficient field.
func (f *Field) Base() field.Field { return f.base }

// Modulus returns the monic quotient modulus.
func (f *Field) Modulus() poly.Polynomial { return f.modulus }

// Ring returns the representation ring F[x].
func (f *Field) Ring() *poly.Ring { return f.ring }

func (f *Field) Char() *big.Int { return f.base.Char() }

// Degree returns the absolute degree over the prime subfield, so towers
// report their total degree.
func (f *Field) Degree() int { return f.base.Degree() * f.k }

// ExtensionDegree returns k, the degree over the base field.
func (f *Field) ExtensionDegree() int { return f.k }

func (f *Field) Order() *big.Int { return new(big.Int).Set(f.order) }

func (f *Field) Zero() field.Element { return f.zero }
func (f *Field) One() field.Element  { return f.one }

// FromInt64 embeds v, reduced into the base field, as a constant.
func (f *Field) FromInt64(v int64) field.Element {
	return extElement{field: f, rep: f.ring.FromInt64s([]int64{v})}
}

// FromBig embeds v, reduced into the base field, as a constant.
func (f *Field) FromBig(v *big.Int) field.Element {
	return f.embed(f.base.FromBig(v))
}

// Embed lifts a base-field element to its constant representative.
func (f *Field) Embed(c field.Element) (field.Element, error) {
	if !c.Field().Equal(f.base) {
		return nil, fmt.Errorf("%w: element of %v is not in %v", field.ErrMismatchedFields, c.Field(), f.base)
	}
	return f.embed(c), nil
}

func (f *Field) embed(c field.Element) field.Element {
	rep, err := f.ring.Constant(c)
	if err != nil {
		panic(err) // c is from the ring's own field
	}
	return extElement{field: f, rep: rep}
}

// FromPoly reduces a polynomial over the base field into the quotient.
func (f *Field) FromPoly(p poly.Polynomial) (field.Element, error) {
	if p.Ring() == nil || !p.Ring().Equal(f.ring) {
		return nil, fmt.Errorf("%w: polynomial over %v is not in %v", field.ErrMismatchedFields, p.Ring(), f)
	}
	rep, err := p.Mod(f.modulus)
	if err != nil {
		return nil, err
	}
	return extElement{field: f, rep: rep}, nil
}

// FromInt64s builds an element from representation coefficients, constant
// term first, each reduced into the base field.
func (f *Field) FromInt64s(coeffs []int64) field.Element {
	rep, err := f.ring.FromInt64s(coeffs).Mod(f.modulus)
	if err != nil {
		panic(err) // the modulus is never zero
	}
	return extElement{field: f, rep: rep}
}

// Elements enumerates the field in ascending coefficient-tuple encoding,
// constant term fastest. Fields beyond the enumeration bound report
// arith.ErrBoundExceeded.
func (f *Field) Elements() ([]field.Element, error) {
	if !f.order.IsInt64() || f.order.Int64() > enumBound {
		return nil, fmt.Errorf("%w: cannot enumerate %v elements", arith.ErrBoundExceeded, f.order)
	}
	baseElems, err := f.base.Elements()
	if err != nil {
		return nil, err
	}
	q := len(baseElems)

	out := make([]field.Element, 0, f.order.Int64())
	digits := make([]int, f.k)
	coeffs := make([]field.Element, f.k)
	for {
		for i, d := range digits {
			coeffs[i] = baseElems[d]
		}
		rep, err := f.ring.FromElements(coeffs)
		if err != nil {
			return nil, err
		}
		out = append(out, extElement{field: f, rep: rep})

		i := 0
		for ; i < f.k; i++ {
			digits[i]++
			if digits[i] < q {
				break
			}
			digits[i] = 0
		}
		if i == f.k {
			return out, nil
		}
	}
}

// Random draws a uniform element from r, defaulting to crypto/rand.
func (f *Field) Random(r io.Reader) (field.Element, error) {
	rep, err := f.ring.Random(f.k-1, r)
	if err != nil {
		return nil, err
	}
	return extElement{field: f, rep: rep}, nil
}

// Equal reports whether o is the same extension: equal base field, degree
// and modulus.
func (f *Field) Equal(o field.Field) bool {
	of, ok := o.(*Field)
	return ok && f.k == of.k && f.base.Equal(of.base) && f.modulus.Equal(of.modulus)
}

func (f *Field) String() string {
	return fmt.Sprintf("GF(%v^%d)", f.Char(), f.Degree())
}

func (f *Field) mulMod(a, b poly.Polynomial) (poly.Polynomial, error) {
	prod, err := a.Mul(b)
	if err != nil {
		return poly.Polynomial{}, err
	}
	return prod.Mod(f.modulus)
}
