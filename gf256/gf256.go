// Package gf256 exposes the AES byte field GF(2⁸) built on the generic
// extension machinery, with the Rijndael reduction polynomial
// x⁸ + x⁴ + x³ + x + 1.
//
// Bytes encode field elements bit-by-coefficient, constant term in the
// least significant bit, so 0x57 is x⁶ + x⁴ + x² + x + 1. Every byte
// operation routes through the shared package field, which is
// constructed once and safe to share across goroutines.
package gf256

import (
	"fmt"
	"math/bits"
	"sync"

	"github.com/cryptolab/algebra/extension"
	"github.com/cryptolab/algebra/field"
	"github.com/cryptolab/algebra/poly"
)

var (
	buildOnce sync.Once
	aes       *extension.Field
)

// Field returns the shared GF(2⁸) instance.
func Field() *extension.Field {
	buildOnce.Do(func() {
		base, err := field.GF(2)
		if err != nil {
			panic(err) // 2 is prime
		}
		m := poly.NewRing(base).FromInt64s([]int64{1, 1, 0, 1, 1, 0, 0, 0, 1})
		aes, err = extension.New(base, 8, extension.WithModulus(m))
		if err != nil {
			panic(err) // the AES modulus is irreducible over GF(2)
		}
	})
	return aes
}

// Modulus returns the reduction polynomial x⁸ + x⁴ + x³ + x + 1.
func Modulus() poly.Polynomial { return Field().Modulus() }

// FromByte lifts a byte to its field element.
func FromByte(b byte) field.Element {
	coeffs := make([]int64, 8)
	for i := range coeffs {
		coeffs[i] = int64(b >> i & 1)
	}
	return Field().FromInt64s(coeffs)
}

type coeffCarrier interface {
	Coeffs() []field.Element
}

// ToByte packs an element of the package field back into a byte.
func ToByte(e field.Element) (byte, error) {
	if !Field().Equal(e.Field()) {
		return 0, fmt.Errorf("%w: %v is not an element of %v", field.ErrMismatchedFields, e, Field())
	}
	var b byte
	for i, c := range e.(coeffCarrier).Coeffs() {
		if c.IsOne() {
			b |= 1 << i
		}
	}
	return b, nil
}

// mustByte is ToByte for elements the package itself produced.
func mustByte(e field.Element) byte {
	b, err := ToByte(e)
	if err != nil {
		panic(err)
	}
	return b
}

// Add returns a + b, which over GF(2⁸) is the bitwise XOR.
func Add(a, b byte) byte {
	s, err := FromByte(a).Add(FromByte(b))
	if err != nil {
		panic(err) // both operands live in the package field
	}
	return mustByte(s)
}

// Mul returns a · b reduced by the AES modulus.
func Mul(a, b byte) byte {
	p, err := FromByte(a).Mul(FromByte(b))
	if err != nil {
		panic(err) // both operands live in the package field
	}
	return mustByte(p)
}

// Inv returns the multiplicative inverse of b, failing with
// field.ErrDivisionByZero for b = 0.
func Inv(b byte) (byte, error) {
	inv, err := FromByte(b).Inverse()
	if err != nil {
		return 0, err
	}
	return mustByte(inv), nil
}

// SBox applies the AES substitution box: the multiplicative inverse with
// 0 fixed, followed by the affine transform s ⊕ (s⋘1) ⊕ (s⋘2) ⊕ (s⋘3)
// ⊕ (s⋘4) ⊕ 0x63.
func SBox(b byte) byte {
	if b != 0 {
		inv, err := Inv(b)
		if err != nil {
			panic(err) // nonzero bytes are units
		}
		b = inv
	}
	return b ^
		bits.RotateLeft8(b, 1) ^
		bits.RotateLeft8(b, 2) ^
		bits.RotateLeft8(b, 3) ^
		bits.RotateLeft8(b, 4) ^
		0x63
}

// mixMatrix is the MixColumns circulant from FIPS 197 §5.1.3.
var mixMatrix = [4][4]byte{
	{0x02, 0x03, 0x01, 0x01},
	{0x01, 0x02, 0x03, 0x01},
	{0x01, 0x01, 0x02, 0x03},
	{0x03, 0x01, 0x01, 0x02},
}

// MixColumn multiplies one state column by the MixColumns matrix, every
// product taken in the byte field.
func MixColumn(col [4]byte) [4]byte {
	var out [4]byte
	for i, row := range mixMatrix {
		var acc byte
		for j, m := range row {
			acc = Add(acc, Mul(m, col[j]))
		}
		out[i] = acc
	}
	return out
}
