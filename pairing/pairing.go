// Package pairing implements teaching-grade bilinear pairings on small
// pairing-friendly curves.
//
// The Miller loop accumulates explicit line and vertical evaluations, so
// every intermediate function value can be inspected. WeilPairing takes
// the classic two-loop ratio with the (-1)^n sign and TatePairing
// reduces a single loop by the final exponentiation (|F|-1)/n.
//
// The evaluations are only defined when the supports stay apart: both
// arguments should be n-torsion points of independent subgroups, the
// shape of every toy curve supplied in exercises. Dependent arguments
// can run into a zero or a pole of the Miller function, which surfaces
// as a division-by-zero error rather than a wrong value. Torsion and
// degeneracy checks are advisory and only log warnings, since break
// exercises feed deliberately broken parameters.
package pairing

import (
	"fmt"
	"math/big"

	"github.com/cryptolab/algebra/ecc"
	"github.com/cryptolab/algebra/field"
	"github.com/cryptolab/algebra/logger"
)

// MillerLoop evaluates the Miller function f_{n,P} at Q by double-and-add
// over the bits of n, most significant first. Each doubling contributes
// the tangent line at the running point divided by the vertical at its
// double; each addition contributes the chord through the running point
// and P divided by the vertical at their sum. An infinite argument gives
// the constant function 1.
func MillerLoop(p, q ecc.Point, n *big.Int) (field.Element, error) {
	if err := sameCurve(p, q); err != nil {
		return nil, err
	}
	if n == nil || n.Sign() <= 0 {
		return nil, fmt.Errorf("the loop order must be positive, got %v", n)
	}
	f := p.Curve().Field()
	if p.IsInfinity() || q.IsInfinity() {
		return f.One(), nil
	}

	acc := f.One()
	t := p
	for i := n.BitLen() - 2; i >= 0; i-- {
		l, err := lineEval(t, t, q)
		if err != nil {
			return nil, err
		}
		d, err := t.Double()
		if err != nil {
			return nil, err
		}
		v, err := verticalEval(d, q)
		if err != nil {
			return nil, err
		}
		if acc, err = acc.Mul(acc); err != nil {
			return nil, err
		}
		if acc, err = acc.Mul(l); err != nil {
			return nil, err
		}
		if acc, err = acc.Div(v); err != nil {
			return nil, err
		}
		t = d

		if n.Bit(i) == 1 {
			l, err := lineEval(t, p, q)
			if err != nil {
				return nil, err
			}
			s, err := t.Add(p)
			if err != nil {
				return nil, err
			}
			v, err := verticalEval(s, q)
			if err != nil {
				return nil, err
			}
			if acc, err = acc.Mul(l); err != nil {
				return nil, err
			}
			if acc, err = acc.Div(v); err != nil {
				return nil, err
			}
			t = s
		}
	}
	return acc, nil
}

// WeilPairing returns e_n(P, Q) = (-1)^n · f_{n,P}(Q) / f_{n,Q}(P). For
// independent n-torsion points the value is a primitive n-th root of
// unity; e(P, Q) = 1 exactly when the points are dependent.
func WeilPairing(p, q ecc.Point, n *big.Int) (field.Element, error) {
	if err := sameCurve(p, q); err != nil {
		return nil, err
	}
	if n == nil || n.Sign() <= 0 {
		return nil, fmt.Errorf("the pairing order must be positive, got %v", n)
	}
	adviseTorsion(p, n)
	adviseTorsion(q, n)

	// e(O, Q) = e(P, O) = 1; the sign correction only applies to the
	// generic ratio.
	w := p.Curve().Field().One()
	if !p.IsInfinity() && !q.IsInfinity() {
		fp, err := MillerLoop(p, q, n)
		if err != nil {
			return nil, err
		}
		fq, err := MillerLoop(q, p, n)
		if err != nil {
			return nil, err
		}
		if w, err = fp.Div(fq); err != nil {
			return nil, err
		}
		if n.Bit(0) == 1 {
			w = w.Neg()
		}
	}

	adviseValue(w, n, "weil")
	return w, nil
}

// TatePairing returns the reduced Tate pairing f_{n,P}(Q)^((|F|-1)/n).
// The exponent must be integral, so n has to divide |F|-1; toy pairing
// curves are chosen with embedding degree 1 to make that hold over the
// base field.
func TatePairing(p, q ecc.Point, n *big.Int) (field.Element, error) {
	if err := sameCurve(p, q); err != nil {
		return nil, err
	}
	if n == nil || n.Sign() <= 0 {
		return nil, fmt.Errorf("the pairing order must be positive, got %v", n)
	}

	f := p.Curve().Field()
	exp := new(big.Int).Sub(f.Order(), big.NewInt(1))
	exp, rem := exp.QuoRem(exp, n, new(big.Int))
	if rem.Sign() != 0 {
		return nil, fmt.Errorf("the reduced Tate pairing needs %v to divide %v - 1", n, f.Order())
	}
	adviseTorsion(p, n)

	fp, err := MillerLoop(p, q, n)
	if err != nil {
		return nil, err
	}
	t, err := fp.Pow(exp)
	if err != nil {
		return nil, err
	}

	adviseValue(t, n, "tate")
	return t, nil
}

func sameCurve(p, q ecc.Point) error {
	if !p.Curve().Equal(q.Curve()) {
		return fmt.Errorf("%w: cannot pair points of %v and %v", ecc.ErrMismatchedCurves, p.Curve(), q.Curve())
	}
	return nil
}

// adviseTorsion warns when an argument is not n-torsion. Break exercises
// pass such points on purpose, so the computation continues.
func adviseTorsion(p ecc.Point, n *big.Int) {
	m, err := p.ScalarMul(n)
	if err != nil || !m.IsInfinity() {
		logger.Component("pairing").Warn().Str("point", p.String()).Str("n", n.String()).
			Msg("pairing argument is not n-torsion")
	}
}

// adviseValue warns about zero or degenerate pairing values.
func adviseValue(v field.Element, n *big.Int, kind string) {
	log := logger.Component("pairing")
	switch {
	case v.IsZero():
		log.Warn().Str("pairing", kind).
			Msg("pairing value is zero, evaluation hit a zero or pole of the Miller function")
	case v.IsOne():
		log.Warn().Str("pairing", kind).
			Msg("degenerate pairing value 1, the arguments are dependent")
	default:
		pw, err := v.Pow(n)
		if err != nil || !pw.IsOne() {
			log.Warn().Str("pairing", kind).Str("n", n.String()).
				Msg("pairing value is not an n-th root of unity, the curve is not pairing-friendly for n")
		}
	}
}

// lineEval evaluates the line through a and b at q: the tangent when
// a = b, the vertical x - a.x when the chord is vertical, and
// (q.y - a.y) - λ(q.x - a.x) otherwise.
func lineEval(a, b, q ecc.Point) (field.Element, error) {
	if a.IsInfinity() {
		return verticalEval(b, q)
	}
	if b.IsInfinity() {
		return verticalEval(a, q)
	}

	f := a.Curve().Field()
	var lambda field.Element
	if a.Equal(b) {
		if a.Y().IsZero() {
			return verticalEval(a, q)
		}
		x2, err := a.X().Mul(a.X())
		if err != nil {
			return nil, err
		}
		num, err := f.FromInt64(3).Mul(x2)
		if err != nil {
			return nil, err
		}
		if num, err = num.Add(a.Curve().A()); err != nil {
			return nil, err
		}
		den, err := f.FromInt64(2).Mul(a.Y())
		if err != nil {
			return nil, err
		}
		if lambda, err = num.Div(den); err != nil {
			return nil, err
		}
	} else {
		if a.X().Equal(b.X()) {
			return verticalEval(a, q)
		}
		dy, err := b.Y().Sub(a.Y())
		if err != nil {
			return nil, err
		}
		dx, err := b.X().Sub(a.X())
		if err != nil {
			return nil, err
		}
		if lambda, err = dy.Div(dx); err != nil {
			return nil, err
		}
	}

	left, err := q.Y().Sub(a.Y())
	if err != nil {
		return nil, err
	}
	dx, err := q.X().Sub(a.X())
	if err != nil {
		return nil, err
	}
	right, err := lambda.Mul(dx)
	if err != nil {
		return nil, err
	}
	return left.Sub(right)
}

// verticalEval evaluates the vertical line through r at q; the vertical
// through the identity is the constant 1.
func verticalEval(r, q ecc.Point) (field.Element, error) {
	if r.IsInfinity() {
		return q.Curve().Field().One(), nil
	}
	return q.X().Sub(r.X())
}
