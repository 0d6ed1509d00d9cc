package extension

import (
	"fmt"
	"math/big"

	"github.com/cryptolab/algebra/arith"
	"github.com/cryptolab/algebra/field"
	"github.com/cryptolab/algebra/poly"
)

// extElement represents a residue class by its reduced polynomial, degree
// below the modulus degree. Values are immutable.
type extElement struct {
	field *Field
	rep   poly.Polynomial
}

func (e extElement) Field() field.Field { return e.field }

// Poly returns the representative polynomial.
func (e extElement) Poly() poly.Polynomial { return e.rep }

// Coeffs returns the representation coefficients padded to the extension
// degree, constant term first.
func (e extElement) Coeffs() []field.Element {
	out := make([]field.Element, e.field.k)
	for i := range out {
		out[i] = e.rep.Coeff(i)
	}
	return out
}

func (e extElement) peer(o field.Element) (extElement, error) {
	oe, ok := o.(extElement)
	if !ok || !e.field.Equal(oe.field) {
		return extElement{}, fmt.Errorf("%w: cannot combine elements of %v and %v", field.ErrMismatchedFields, e.field, o.Field())
	}
	return oe, nil
}

func (e extElement) Add(o field.Element) (field.Element, error) {
	oe, err := e.peer(o)
	if err != nil {
		return nil, err
	}
	rep, err := e.rep.Add(oe.rep)
	if err != nil {
		return nil, err
	}
	return extElement{field: e.field, rep: rep}, nil
}

func (e extElement) Sub(o field.Element) (field.Element, error) {
	oe, err := e.peer(o)
	if err != nil {
		return nil, err
	}
	rep, err := e.rep.Sub(oe.rep)
	if err != nil {
		return nil, err
	}
	return extElement{field: e.field, rep: rep}, nil
}

func (e extElement) Neg() field.Element {
	return extElement{field: e.field, rep: e.rep.Neg()}
}

func (e extElement) Mul(o field.Element) (field.Element, error) {
	oe, err := e.peer(o)
	if err != nil {
		return nil, err
	}
	rep, err := e.field.mulMod(e.rep, oe.rep)
	if err != nil {
		return nil, err
	}
	return extElement{field: e.field, rep: rep}, nil
}

func (e extElement) Div(o field.Element) (field.Element, error) {
	oe, err := e.peer(o)
	if err != nil {
		return nil, err
	}
	inv, err := oe.Inverse()
	if err != nil {
		return nil, err
	}
	return e.Mul(inv)
}

// Inverse inverts through the extended Euclidean algorithm: the modulus is
// irreducible, so gcd(rep, modulus) = 1 and the Bezout coefficient of rep
// is the inverse.
func (e extElement) Inverse() (field.Element, error) {
	if e.IsZero() {
		return nil, fmt.Errorf("%w: zero has no inverse in %v", field.ErrDivisionByZero, e.field)
	}
	_, s, _, err := e.rep.XGCD(e.field.modulus)
	if err != nil {
		return nil, err
	}
	rep, err := s.Mod(e.field.modulus)
	if err != nil {
		return nil, err
	}
	return extElement{field: e.field, rep: rep}, nil
}

func (e extElement) Pow(exp *big.Int) (field.Element, error) {
	if exp.Sign() < 0 {
		inv, err := e.Inverse()
		if err != nil {
			return nil, err
		}
		return inv.Pow(new(big.Int).Neg(exp))
	}
	rep, err := e.rep.PowMod(exp, e.field.modulus)
	if err != nil {
		return nil, err
	}
	return extElement{field: e.field, rep: rep}, nil
}

// PowStep records one bit of a square-and-multiply exponentiation, least
// significant bit first, in the shape of the integer trace.
type PowStep struct {
	Index  int
	Bit    uint
	Acc    field.Element
	Square field.Element
}

// PowSteps is Pow with the square-and-multiply trace.
func (e extElement) PowSteps(exp *big.Int) ([]PowStep, field.Element, error) {
	if exp.Sign() < 0 {
		inv, err := e.Inverse()
		if err != nil {
			return nil, nil, err
		}
		return inv.(extElement).PowSteps(new(big.Int).Neg(exp))
	}

	acc := e.field.ring.One()
	sq := e.rep
	steps := make([]PowStep, 0, exp.BitLen())
	var err error
	for i := 0; i < exp.BitLen(); i++ {
		bit := exp.Bit(i)
		if bit == 1 {
			if acc, err = e.field.mulMod(acc, sq); err != nil {
				return nil, nil, err
			}
		}
		if sq, err = e.field.mulMod(sq, sq); err != nil {
			return nil, nil, err
		}
		steps = append(steps, PowStep{
			Index:  i,
			Bit:    bit,
			Acc:    extElement{field: e.field, rep: acc},
			Square: extElement{field: e.field, rep: sq},
		})
	}
	return steps, extElement{field: e.field, rep: acc}, nil
}

// MultiplicativeOrder returns the least k > 0 with e^k = 1, by trying the
// divisors of q^k - 1 in ascending order. The zero element has no order.
func (e extElement) MultiplicativeOrder() (*big.Int, error) {
	if e.IsZero() {
		return nil, fmt.Errorf("%w: zero has no multiplicative order", field.ErrDivisionByZero)
	}
	groupOrder := new(big.Int).Sub(e.field.order, big.NewInt(1))
	divs, err := arith.Divisors(groupOrder)
	if err != nil {
		return nil, err
	}
	for _, d := range divs {
		v, err := e.Pow(d)
		if err != nil {
			return nil, err
		}
		if v.IsOne() {
			return new(big.Int).Set(d), nil
		}
	}
	return nil, fmt.Errorf("order of %v in %v not found among divisors of %v", e, e.field, groupOrder)
}

func (e extElement) IsZero() bool { return e.rep.IsZero() }
func (e extElement) IsOne() bool  { return e.rep.IsOne() }

func (e extElement) Equal(o field.Element) bool {
	oe, ok := o.(extElement)
	return ok && e.field.Equal(oe.field) && e.rep.Equal(oe.rep)
}

func (e extElement) String() string { return e.rep.String() }
