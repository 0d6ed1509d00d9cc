// Package poly implements univariate polynomials over any finite field from
// the field package: ring arithmetic, Euclidean division and gcd,
// evaluation, interpolation, root finding and irreducibility testing. The
// extension field construction quotients by the irreducible polynomials
// found here.
package poly

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/consensys/gnark-crypto/utils"

	"github.com/cryptolab/algebra/field"
)

var (
	ErrMismatchedRings = errors.New("mismatched polynomial rings")
	ErrZeroDivisor     = errors.New("division by the zero polynomial")
	ErrBoundExceeded   = errors.New("polynomial search bound exceeded")
)

// Polynomial is an immutable polynomial with coefficients in a finite
// field. coeffs[i] is the coefficient of x^i and trailing zeros are
// trimmed, so the zero polynomial has no coefficients at all. The zero
// value is unusable; construct through a Ring.
type Polynomial struct {
	ring   *Ring
	coeffs []field.Element
}

// Ring returns the owning polynomial ring.
func (p Polynomial) Ring() *Ring { return p.ring }

// Degree returns the degree of p, with -1 for the zero polynomial.
func (p Polynomial) Degree() int { return len(p.coeffs) - 1 }

// IsZero reports whether p is the zero polynomial.
func (p Polynomial) IsZero() bool { return len(p.coeffs) == 0 }

// IsOne reports whether p is the constant one.
func (p Polynomial) IsOne() bool {
	return len(p.coeffs) == 1 && p.coeffs[0].IsOne()
}

// Coeff returns the coefficient of x^i, zero beyond the degree.
func (p Polynomial) Coeff(i int) field.Element {
	if i < 0 || i >= len(p.coeffs) {
		return p.ring.f.Zero()
	}
	return p.coeffs[i]
}

// Coeffs returns a copy of the coefficient slice, constant term first.
func (p Polynomial) Coeffs() []field.Element {
	out := make([]field.Element, len(p.coeffs))
	copy(out, p.coeffs)
	return out
}

// LeadingCoeff returns the coefficient of the highest-degree term, zero for
// the zero polynomial.
func (p Polynomial) LeadingCoeff() field.Element {
	if len(p.coeffs) == 0 {
		return p.ring.f.Zero()
	}
	return p.coeffs[len(p.coeffs)-1]
}

// Equal reports coefficient-wise equality over the same ring.
func (p Polynomial) Equal(q Polynomial) bool {
	if !p.ring.Equal(q.ring) || len(p.coeffs) != len(q.coeffs) {
		return false
	}
	for i := range p.coeffs {
		if !p.coeffs[i].Equal(q.coeffs[i]) {
			return false
		}
	}
	return true
}

func (p Polynomial) check(q Polynomial) error {
	if !p.ring.Equal(q.ring) {
		return fmt.Errorf("%w: %v and %v", ErrMismatchedRings, p.ring, q.ring)
	}
	return nil
}

// Add returns p + q.
func (p Polynomial) Add(q Polynomial) (Polynomial, error) {
	if err := p.check(q); err != nil {
		return Polynomial{}, err
	}
	n := len(p.coeffs)
	if len(q.coeffs) > n {
		n = len(q.coeffs)
	}
	coeffs := make([]field.Element, n)
	for i := 0; i < n; i++ {
		c, err := p.Coeff(i).Add(q.Coeff(i))
		if err != nil {
			return Polynomial{}, err
		}
		coeffs[i] = c
	}
	return p.ring.trim(coeffs), nil
}

// Sub returns p - q.
func (p Polynomial) Sub(q Polynomial) (Polynomial, error) {
	return p.Add(q.Neg())
}

// Neg returns -p.
func (p Polynomial) Neg() Polynomial {
	coeffs := make([]field.Element, len(p.coeffs))
	for i, c := range p.coeffs {
		coeffs[i] = c.Neg()
	}
	return Polynomial{ring: p.ring, coeffs: coeffs}
}

// Mul returns p * q by schoolbook convolution.
func (p Polynomial) Mul(q Polynomial) (Polynomial, error) {
	if err := p.check(q); err != nil {
		return Polynomial{}, err
	}
	if p.IsZero() || q.IsZero() {
		return p.ring.Zero(), nil
	}
	coeffs := make([]field.Element, len(p.coeffs)+len(q.coeffs)-1)
	for i := range coeffs {
		coeffs[i] = p.ring.f.Zero()
	}
	for i, a := range p.coeffs {
		if a.IsZero() {
			continue
		}
		for j, b := range q.coeffs {
			ab, err := a.Mul(b)
			if err != nil {
				return Polynomial{}, err
			}
			s, err := coeffs[i+j].Add(ab)
			if err != nil {
				return Polynomial{}, err
			}
			coeffs[i+j] = s
		}
	}
	return p.ring.trim(coeffs), nil
}

// Scale returns c * p.
func (p Polynomial) Scale(c field.Element) (Polynomial, error) {
	coeffs := make([]field.Element, len(p.coeffs))
	for i, a := range p.coeffs {
		ac, err := a.Mul(c)
		if err != nil {
			return Polynomial{}, err
		}
		coeffs[i] = ac
	}
	return p.ring.trim(coeffs), nil
}

// Eval evaluates p at x by Horner's rule.
func (p Polynomial) Eval(x field.Element) (field.Element, error) {
	if len(p.coeffs) == 0 {
		return p.ring.f.Zero(), nil
	}
	res := p.coeffs[len(p.coeffs)-1]
	for i := len(p.coeffs) - 2; i >= 0; i-- {
		rx, err := res.Mul(x)
		if err != nil {
			return nil, err
		}
		res, err = rx.Add(p.coeffs[i])
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// DivRem returns the quotient and remainder of p divided by q, with
// deg rem < deg q. Fails with ErrZeroDivisor when q is zero.
func (p Polynomial) DivRem(q Polynomial) (Polynomial, Polynomial, error) {
	if err := p.check(q); err != nil {
		return Polynomial{}, Polynomial{}, err
	}
	if q.IsZero() {
		return Polynomial{}, Polynomial{}, fmt.Errorf("%w: %v / 0", ErrZeroDivisor, p)
	}
	if p.Degree() < q.Degree() {
		return p.ring.Zero(), p, nil
	}

	leadInv, err := q.LeadingCoeff().Inverse()
	if err != nil {
		return Polynomial{}, Polynomial{}, err
	}

	rem := p.Coeffs()
	quot := make([]field.Element, p.Degree()-q.Degree()+1)
	for i := range quot {
		quot[i] = p.ring.f.Zero()
	}

	for d := len(rem) - 1; d >= q.Degree(); d-- {
		if rem[d].IsZero() {
			continue
		}
		factor, err := rem[d].Mul(leadInv)
		if err != nil {
			return Polynomial{}, Polynomial{}, err
		}
		quot[d-q.Degree()] = factor
		for j, qc := range q.coeffs {
			fq, err := factor.Mul(qc)
			if err != nil {
				return Polynomial{}, Polynomial{}, err
			}
			rem[d-q.Degree()+j], err = rem[d-q.Degree()+j].Sub(fq)
			if err != nil {
				return Polynomial{}, Polynomial{}, err
			}
		}
	}
	return p.ring.trim(quot), p.ring.trim(rem), nil
}

// Mod returns the remainder of p divided by q.
func (p Polynomial) Mod(q Polynomial) (Polynomial, error) {
	_, rem, err := p.DivRem(q)
	return rem, err
}

// Monic returns p scaled so its leading coefficient is one. The zero
// polynomial is returned unchanged.
func (p Polynomial) Monic() (Polynomial, error) {
	if p.IsZero() || p.LeadingCoeff().IsOne() {
		return p, nil
	}
	inv, err := p.LeadingCoeff().Inverse()
	if err != nil {
		return Polynomial{}, err
	}
	return p.Scale(inv)
}

// GCD returns the monic greatest common divisor of p and q.
func (p Polynomial) GCD(q Polynomial) (Polynomial, error) {
	if err := p.check(q); err != nil {
		return Polynomial{}, err
	}
	a, b := p, q
	for !b.IsZero() {
		r, err := a.Mod(b)
		if err != nil {
			return Polynomial{}, err
		}
		a, b = b, r
	}
	return a.Monic()
}

// XGCD returns the monic g = gcd(p, q) along with s, t such that
// p*s + q*t = g.
func (p Polynomial) XGCD(q Polynomial) (g, s, t Polynomial, err error) {
	if err := p.check(q); err != nil {
		return Polynomial{}, Polynomial{}, Polynomial{}, err
	}
	oldR, r := p, q
	oldS, s := p.ring.One(), p.ring.Zero()
	oldT, t := p.ring.Zero(), p.ring.One()

	for !r.IsZero() {
		quot, rem, err := oldR.DivRem(r)
		if err != nil {
			return Polynomial{}, Polynomial{}, Polynomial{}, err
		}
		oldR, r = r, rem

		qs, err := quot.Mul(s)
		if err != nil {
			return Polynomial{}, Polynomial{}, Polynomial{}, err
		}
		ns, err := oldS.Sub(qs)
		if err != nil {
			return Polynomial{}, Polynomial{}, Polynomial{}, err
		}
		oldS, s = s, ns

		qt, err := quot.Mul(t)
		if err != nil {
			return Polynomial{}, Polynomial{}, Polynomial{}, err
		}
		nt, err := oldT.Sub(qt)
		if err != nil {
			return Polynomial{}, Polynomial{}, Polynomial{}, err
		}
		oldT, t = t, nt
	}

	// normalize so the gcd is monic
	if !oldR.IsZero() && !oldR.LeadingCoeff().IsOne() {
		inv, err := oldR.LeadingCoeff().Inverse()
		if err != nil {
			return Polynomial{}, Polynomial{}, Polynomial{}, err
		}
		if oldR, err = oldR.Scale(inv); err != nil {
			return Polynomial{}, Polynomial{}, Polynomial{}, err
		}
		if oldS, err = oldS.Scale(inv); err != nil {
			return Polynomial{}, Polynomial{}, Polynomial{}, err
		}
		if oldT, err = oldT.Scale(inv); err != nil {
			return Polynomial{}, Polynomial{}, Polynomial{}, err
		}
	}
	return oldR, oldS, oldT, nil
}

// Pow returns p^e for a small non-negative exponent.
func (p Polynomial) Pow(e int) (Polynomial, error) {
	if e < 0 {
		return Polynomial{}, fmt.Errorf("polynomial exponent must be non-negative, got %d", e)
	}
	res := p.ring.One()
	for i := 0; i < e; i++ {
		var err error
		res, err = res.Mul(p)
		if err != nil {
			return Polynomial{}, err
		}
	}
	return res, nil
}

// PowMod returns p^e modulo m by square-and-multiply, keeping every
// intermediate reduced.
func (p Polynomial) PowMod(e *big.Int, m Polynomial) (Polynomial, error) {
	if err := p.check(m); err != nil {
		return Polynomial{}, err
	}
	if e.Sign() < 0 {
		return Polynomial{}, fmt.Errorf("polynomial exponent must be non-negative, got %v", e)
	}
	if m.IsZero() {
		return Polynomial{}, fmt.Errorf("%w: reduction modulus is zero", ErrZeroDivisor)
	}

	res, err := p.ring.One().Mod(m)
	if err != nil {
		return Polynomial{}, err
	}
	sq, err := p.Mod(m)
	if err != nil {
		return Polynomial{}, err
	}
	for i := 0; i < e.BitLen(); i++ {
		if e.Bit(i) == 1 {
			if res, err = res.Mul(sq); err != nil {
				return Polynomial{}, err
			}
			if res, err = res.Mod(m); err != nil {
				return Polynomial{}, err
			}
		}
		if sq, err = sq.Mul(sq); err != nil {
			return Polynomial{}, err
		}
		if sq, err = sq.Mod(m); err != nil {
			return Polynomial{}, err
		}
	}
	return res, nil
}

// Derivative returns the formal derivative of p.
func (p Polynomial) Derivative() (Polynomial, error) {
	if len(p.coeffs) <= 1 {
		return p.ring.Zero(), nil
	}
	coeffs := make([]field.Element, len(p.coeffs)-1)
	for i := 1; i < len(p.coeffs); i++ {
		c, err := p.coeffs[i].Mul(p.ring.f.FromInt64(int64(i)))
		if err != nil {
			return Polynomial{}, err
		}
		coeffs[i-1] = c
	}
	return p.ring.trim(coeffs), nil
}

// Fold combines the even and odd parts of p into a half-degree polynomial:
// writing p(x) = e(x^2) + x*o(x^2), the result is e + beta*o. This is the
// folding step of FRI-style low-degree protocols.
func (p Polynomial) Fold(beta field.Element) (Polynomial, error) {
	if p.IsZero() {
		return p, nil
	}
	n := (len(p.coeffs) + 1) / 2
	coeffs := make([]field.Element, n)
	for i := 0; i < n; i++ {
		even := p.Coeff(2 * i)
		odd, err := p.Coeff(2*i + 1).Mul(beta)
		if err != nil {
			return Polynomial{}, err
		}
		coeffs[i], err = even.Add(odd)
		if err != nil {
			return Polynomial{}, err
		}
	}
	return p.ring.trim(coeffs), nil
}

// Root is a root of a polynomial together with its multiplicity.
type Root struct {
	Value        field.Element
	Multiplicity int
}

// Roots finds all roots in the coefficient field by exhaustive evaluation,
// in the field's enumeration order. The field must be enumerable.
func (p Polynomial) Roots() ([]Root, error) {
	if p.IsZero() {
		return nil, fmt.Errorf("the zero polynomial vanishes everywhere")
	}
	elems, err := p.ring.f.Elements()
	if err != nil {
		return nil, err
	}
	var roots []Root
	for _, x := range elems {
		v, err := p.Eval(x)
		if err != nil {
			return nil, err
		}
		if !v.IsZero() {
			continue
		}
		m, err := p.RootMultiplicity(x)
		if err != nil {
			return nil, err
		}
		roots = append(roots, Root{Value: x, Multiplicity: m})
	}
	return roots, nil
}

// RootMultiplicity returns how many times (x - r) divides p, zero when r is
// not a root.
func (p Polynomial) RootMultiplicity(r field.Element) (int, error) {
	if p.IsZero() {
		return 0, fmt.Errorf("the zero polynomial vanishes everywhere")
	}
	linear, err := p.ring.linear(r)
	if err != nil {
		return 0, err
	}
	m := 0
	cur := p
	for {
		quot, rem, err := cur.DivRem(linear)
		if err != nil {
			return 0, err
		}
		if !rem.IsZero() {
			return m, nil
		}
		m++
		cur = quot
		if cur.IsZero() {
			return m, nil
		}
	}
}

func (p Polynomial) String() string {
	var builder strings.Builder

	first := true
	for d := len(p.coeffs) - 1; d >= 0; d-- {
		if p.coeffs[d].IsZero() {
			continue
		}

		cText := p.coeffs[d].String()
		if strings.IndexFunc(cText, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
			cText = "(" + cText + ")"
		}

		if !first {
			builder.WriteString(" + ")
		}
		first = false

		initialLen := builder.Len()
		if !p.coeffs[d].IsOne() || d == 0 {
			builder.WriteString(cText)
		}
		if builder.Len()-initialLen > 10 {
			builder.WriteString("×")
		}

		if d != 0 {
			builder.WriteString("x")
		}
		if d > 1 {
			builder.WriteString(
				utils.ToSuperscript(strconv.Itoa(d)),
			)
		}
	}

	if first {
		return "0"
	}
	return builder.String()
}
