package gf256

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/cryptolab/algebra/field"
	"github.com/cryptolab/algebra/poly"
)

func TestFieldShape(t *testing.T) {
	f := Field()
	require.Same(t, f, Field())

	require.Equal(t, int64(2), f.Char().Int64())
	require.Equal(t, 8, f.ExtensionDegree())
	require.Equal(t, int64(256), f.Order().Int64())

	base, err := field.GF(2)
	require.NoError(t, err)
	want := poly.NewRing(base).FromInt64s([]int64{1, 1, 0, 1, 1, 0, 0, 0, 1})
	require.Equal(t, 8, Modulus().Degree())
	require.True(t, Modulus().Equal(want))
}

func TestByteRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 60
	properties := gopter.NewProperties(parameters)

	properties.Property("ToByte inverts FromByte", prop.ForAll(
		func(v int) bool {
			b := byte(v)
			back, err := ToByte(FromByte(b))
			return err == nil && back == b
		},
		gen.IntRange(0, 255),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))

	f3, err := field.GF(3)
	require.NoError(t, err)
	_, err = ToByte(f3.FromInt64(1))
	require.ErrorIs(t, err, field.ErrMismatchedFields)
}

func TestAdd(t *testing.T) {
	require.Equal(t, byte(0xd4), Add(0x57, 0x83))
	require.Equal(t, byte(0x57), Add(0x57, 0x00))
	require.Equal(t, byte(0x00), Add(0x83, 0x83))
}

func TestMul(t *testing.T) {
	// FIPS 197 §4.2 worked examples.
	require.Equal(t, byte(0xc1), Mul(0x57, 0x83))
	require.Equal(t, byte(0xfe), Mul(0x57, 0x13))

	require.Equal(t, byte(0x00), Mul(0x7a, 0x00))
	require.Equal(t, byte(0x7a), Mul(0x7a, 0x01))
}

func TestInv(t *testing.T) {
	_, err := Inv(0)
	require.ErrorIs(t, err, field.ErrDivisionByZero)

	one, err := Inv(1)
	require.NoError(t, err)
	require.Equal(t, byte(1), one)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 60
	properties := gopter.NewProperties(parameters)

	properties.Property("b · b⁻¹ = 1", prop.ForAll(
		func(v int) bool {
			b := byte(v)
			inv, err := Inv(b)
			return err == nil && Mul(b, inv) == 1
		},
		gen.IntRange(1, 255),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestSBox(t *testing.T) {
	cases := []struct{ in, out byte }{
		{0x00, 0x63},
		{0x01, 0x7c},
		{0x02, 0x77},
		{0x53, 0xed},
	}
	for _, c := range cases {
		require.Equal(t, c.out, SBox(c.in), "SBox(%#02x)", c.in)
	}
}

func TestMixColumn(t *testing.T) {
	// FIPS 197 MixColumns example column.
	got := MixColumn([4]byte{0xdb, 0x13, 0x53, 0x45})
	require.Equal(t, [4]byte{0x8e, 0x4d, 0xa1, 0xbc}, got)

	// Constant columns are fixed because 02 ⊕ 03 ⊕ 01 ⊕ 01 = 01.
	require.Equal(t, [4]byte{0x01, 0x01, 0x01, 0x01}, MixColumn([4]byte{0x01, 0x01, 0x01, 0x01}))
}

func TestFieldElementBridge(t *testing.T) {
	// Byte helpers agree with direct element arithmetic.
	a, b := FromByte(0x57), FromByte(0x83)
	p, err := a.Mul(b)
	require.NoError(t, err)
	require.Equal(t, byte(0xc1), mustByte(p))

	pw, err := a.Pow(big.NewInt(255))
	require.NoError(t, err)
	require.True(t, pw.IsOne())
}
