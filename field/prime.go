package field

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/cryptolab/algebra/arith"
	"github.com/cryptolab/algebra/internal/utils"
)

// enumBound caps Elements.
const enumBound = 1 << 20

// Prime is the prime field GF(p).
type Prime struct {
	p    *big.Int
	zero Element
	one  Element
}

// NewPrime returns GF(p). The modulus is checked for primality.
func NewPrime(p *big.Int) (*Prime, error) {
	if !arith.IsPrime(p) {
		return nil, fmt.Errorf("%w: %v", ErrNotPrime, p)
	}
	f := &Prime{p: new(big.Int).Set(p)}
	f.zero = &primeElement{field: f, value: new(big.Int)}
	f.one = &primeElement{field: f, value: new(big.Int).Mod(big.NewInt(1), f.p)}
	return f, nil
}

// GF is NewPrime for small moduli.
func GF(p int64) (*Prime, error) {
	return NewPrime(big.NewInt(p))
}

func (f *Prime) Char() *big.Int  { return new(big.Int).Set(f.p) }
func (f *Prime) Degree() int     { return 1 }
func (f *Prime) Order() *big.Int { return new(big.Int).Set(f.p) }

func (f *Prime) Zero() Element { return f.zero }
func (f *Prime) One() Element  { return f.one }

func (f *Prime) FromInt64(v int64) Element {
	return f.FromBig(big.NewInt(v))
}

// FromBig returns the element v mod p. The input is copied.
func (f *Prime) FromBig(v *big.Int) Element {
	return &primeElement{field: f, value: new(big.Int).Mod(v, f.p)}
}

// Element constructs an element from an integer-like value (intXX, uintXX,
// *big.Int, string, []byte), panicking on unsupported types.
func (f *Prime) Element(v interface{}) Element {
	value := utils.FromInterface(v)
	return f.FromBig(&value)
}

// Elements lists 0, 1, ..., p-1. Fields beyond the enumeration bound report
// arith.ErrBoundExceeded.
func (f *Prime) Elements() ([]Element, error) {
	if !f.p.IsInt64() || f.p.Int64() > enumBound {
		return nil, fmt.Errorf("%w: cannot enumerate %v elements", arith.ErrBoundExceeded, f.p)
	}
	n := f.p.Int64()
	out := make([]Element, n)
	for i := int64(0); i < n; i++ {
		out[i] = f.FromInt64(i)
	}
	return out, nil
}

// Random draws a uniform element from r, defaulting to crypto/rand.
func (f *Prime) Random(r io.Reader) (Element, error) {
	if r == nil {
		r = rand.Reader
	}
	v, err := rand.Int(r, f.p)
	if err != nil {
		return nil, err
	}
	return &primeElement{field: f, value: v}, nil
}

// Equal reports whether o is GF(p) with the same modulus.
func (f *Prime) Equal(o Field) bool {
	of, ok := o.(*Prime)
	return ok && f.p.Cmp(of.p) == 0
}

func (f *Prime) String() string {
	return fmt.Sprintf("GF(%v)", f.p)
}

// IsSquare reports whether e is a square in GF(p). Zero counts as a square.
func (f *Prime) IsSquare(e Element) (bool, error) {
	pe, err := f.own(e)
	if err != nil {
		return false, err
	}
	if pe.value.Sign() == 0 || f.p.Cmp(big.NewInt(2)) == 0 {
		return true, nil
	}
	sym, err := arith.Legendre(pe.value, f.p)
	if err != nil {
		return false, err
	}
	return sym >= 0, nil
}

// Sqrt returns a square root of e, the other root being its negation. Fails
// with arith.ErrNonResidue when e is not a square.
func (f *Prime) Sqrt(e Element) (Element, error) {
	pe, err := f.own(e)
	if err != nil {
		return nil, err
	}
	if f.p.Cmp(big.NewInt(2)) == 0 {
		return pe, nil
	}
	r, err := arith.SqrtMod(pe.value, f.p)
	if err != nil {
		return nil, err
	}
	return &primeElement{field: f, value: r}, nil
}

func (f *Prime) own(e Element) (*primeElement, error) {
	pe, ok := e.(*primeElement)
	if !ok || pe.field.p.Cmp(f.p) != 0 {
		return nil, fmt.Errorf("%w: element of %v is not in %v", ErrMismatchedFields, e.Field(), f)
	}
	return pe, nil
}

type primeElement struct {
	field *Prime
	value *big.Int
}

func (e *primeElement) Field() Field { return e.field }

// Value returns the canonical representative in [0, p).
func (e *primeElement) Value() *big.Int { return new(big.Int).Set(e.value) }

func (e *primeElement) String() string { return e.value.String() }

func (e *primeElement) IsZero() bool { return e.value.Sign() == 0 }

func (e *primeElement) IsOne() bool { return e.value.Cmp(big.NewInt(1)) == 0 }

func (e *primeElement) Equal(o Element) bool {
	oe, ok := o.(*primeElement)
	return ok && e.field.p.Cmp(oe.field.p) == 0 && e.value.Cmp(oe.value) == 0
}

func (e *primeElement) peer(o Element) (*primeElement, error) {
	oe, ok := o.(*primeElement)
	if !ok || e.field.p.Cmp(oe.field.p) != 0 {
		return nil, fmt.Errorf("%w: cannot combine elements of %v and %v", ErrMismatchedFields, e.field, o.Field())
	}
	return oe, nil
}

func (e *primeElement) Add(o Element) (Element, error) {
	oe, err := e.peer(o)
	if err != nil {
		return nil, err
	}
	v := new(big.Int).Add(e.value, oe.value)
	return &primeElement{field: e.field, value: v.Mod(v, e.field.p)}, nil
}

func (e *primeElement) Sub(o Element) (Element, error) {
	oe, err := e.peer(o)
	if err != nil {
		return nil, err
	}
	v := new(big.Int).Sub(e.value, oe.value)
	return &primeElement{field: e.field, value: v.Mod(v, e.field.p)}, nil
}

func (e *primeElement) Mul(o Element) (Element, error) {
	oe, err := e.peer(o)
	if err != nil {
		return nil, err
	}
	v := new(big.Int).Mul(e.value, oe.value)
	return &primeElement{field: e.field, value: v.Mod(v, e.field.p)}, nil
}

func (e *primeElement) Div(o Element) (Element, error) {
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

func (e *primeElement) Neg() Element {
	v := new(big.Int).Neg(e.value)
	return &primeElement{field: e.field, value: v.Mod(v, e.field.p)}
}

func (e *primeElement) Inverse() (Element, error) {
	if e.value.Sign() == 0 {
		return nil, fmt.Errorf("%w: zero has no inverse in %v", ErrDivisionByZero, e.field)
	}
	inv, err := arith.Inverse(e.value, e.field.p)
	if err != nil {
		return nil, err
	}
	return &primeElement{field: e.field, value: inv}, nil
}

func (e *primeElement) Pow(exp *big.Int) (Element, error) {
	if exp.Sign() < 0 && e.value.Sign() == 0 {
		return nil, fmt.Errorf("%w: zero has no inverse in %v", ErrDivisionByZero, e.field)
	}
	v, err := arith.PowMod(e.value, exp, e.field.p)
	if err != nil {
		return nil, err
	}
	return &primeElement{field: e.field, value: v}, nil
}

// PowSteps is Pow with the square-and-multiply trace.
func (e *primeElement) PowSteps(exp *big.Int) ([]arith.PowStep, Element, error) {
	if exp.Sign() < 0 && e.value.Sign() == 0 {
		return nil, nil, fmt.Errorf("%w: zero has no inverse in %v", ErrDivisionByZero, e.field)
	}
	steps, v, err := arith.PowModSteps(e.value, exp, e.field.p)
	if err != nil {
		return nil, nil, err
	}
	return steps, &primeElement{field: e.field, value: v}, nil
}

// MultiplicativeOrder returns the least k > 0 with e^k = 1, by trying the
// divisors of p-1 in ascending order. The zero element has no order.
func (e *primeElement) MultiplicativeOrder() (*big.Int, error) {
	if e.value.Sign() == 0 {
		return nil, fmt.Errorf("%w: zero has no multiplicative order", ErrDivisionByZero)
	}
	groupOrder := new(big.Int).Sub(e.field.p, big.NewInt(1))
	divs, err := arith.Divisors(groupOrder)
	if err != nil {
		return nil, err
	}
	one := big.NewInt(1)
	pow := new(big.Int)
	for _, d := range divs {
		pow.Exp(e.value, d, e.field.p)
		if pow.Cmp(one) == 0 {
			return new(big.Int).Set(d), nil
		}
	}
	return nil, fmt.Errorf("order of %v in %v not found among divisors of %v", e.value, e.field, groupOrder)
}
