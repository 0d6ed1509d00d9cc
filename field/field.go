// Package field defines the finite field abstraction shared by the prime
// and extension field implementations, together with GF(p) itself.
//
// Fields and their elements are immutable: operations return new values and
// a constructed field can be shared between goroutines. Binary operations
// require both operands to come from the same field and fail with
// ErrMismatchedFields otherwise.
package field

import (
	"errors"
	"io"
	"math/big"
)

var (
	ErrNotPrime         = errors.New("invalid parametrization: modulus is not prime")
	ErrDivisionByZero   = errors.New("division by zero")
	ErrMismatchedFields = errors.New("mismatched fields")
)

// Element is an immutable element of a finite field.
type Element interface {
	// Field returns the owning field.
	Field() Field

	Add(Element) (Element, error)
	Sub(Element) (Element, error)
	Mul(Element) (Element, error)
	// Div returns the quotient, failing with ErrDivisionByZero on a zero
	// divisor.
	Div(Element) (Element, error)
	Neg() Element
	// Inverse fails with ErrDivisionByZero on the zero element.
	Inverse() (Element, error)
	// Pow raises to an integer power; negative exponents invert first.
	Pow(e *big.Int) (Element, error)

	IsZero() bool
	IsOne() bool
	// Equal reports value equality; elements of different fields are never
	// equal.
	Equal(Element) bool
	String() string
}

// Field is a finite field of order p^k.
type Field interface {
	// Char returns the characteristic p.
	Char() *big.Int
	// Degree returns the extension degree k over the prime field.
	Degree() int
	// Order returns the number of elements, p^k.
	Order() *big.Int

	Zero() Element
	One() Element
	FromInt64(int64) Element
	FromBig(*big.Int) Element

	// Elements enumerates the field in a fixed order; fields beyond the
	// enumeration bound report an error.
	Elements() ([]Element, error)
	// Random draws a uniform element from r, or crypto/rand when r is nil.
	Random(r io.Reader) (Element, error)

	// Equal reports whether both fields are the same algebraic object.
	Equal(Field) bool
	String() string
}
