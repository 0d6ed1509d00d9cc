package group

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cryptolab/algebra/arith"
	"github.com/cryptolab/algebra/zmod"
)

func TestUnitsGroup(t *testing.T) {
	require := require.New(t)

	u12 := units(t, 12)
	require.Equal("(Z/12Z)*", u12.String())
	require.Equal(int64(4), u12.Order().Int64()) // phi(12)

	elems, err := u12.Elements()
	require.NoError(err)
	require.Len(elems, 4)
	for i, want := range []string{"1", "5", "7", "11"} {
		require.Equal(want, elems[i].String())
	}

	// 5 * 7 = 35 = 11 mod 12
	p, err := unit(t, u12, 5).Combine(unit(t, u12, 7))
	require.NoError(err)
	require.Equal("11", p.String())

	// 5 is its own inverse mod 12
	inv, err := unit(t, u12, 5).Inverse()
	require.NoError(err)
	require.Equal("5", inv.String())

	require.True(u12.Identity().IsIdentity())
	require.False(unit(t, u12, 7).IsIdentity())
	require.Equal(u12, unit(t, u12, 7).Group())

	// values normalize into the residue range
	require.Equal("11", unit(t, u12, -1).String())
}

func TestUnitsGroupRejectsNonUnits(t *testing.T) {
	require := require.New(t)

	u12 := units(t, 12)
	_, err := u12.Element(6)
	require.True(errors.Is(err, zmod.ErrNotUnit))
	_, err = u12.Element(0)
	require.True(errors.Is(err, zmod.ErrNotUnit))

	_, err = Units(0)
	require.True(errors.Is(err, arith.ErrNonPositiveModulus))
	_, err = Units(-5)
	require.True(errors.Is(err, arith.ErrNonPositiveModulus))
}

func TestAdditiveGroup(t *testing.T) {
	require := require.New(t)

	z12, err := Additive(12)
	require.NoError(err)
	require.Equal("Z/12Z", z12.String())
	require.Equal(int64(12), z12.Order().Int64())

	elems, err := z12.Elements()
	require.NoError(err)
	require.Len(elems, 12)
	require.Equal("0", elems[0].String())
	require.Equal("11", elems[11].String())

	// 7 + 8 = 3 mod 12
	s, err := z12.Element(7).Combine(z12.Element(8))
	require.NoError(err)
	require.Equal("3", s.String())

	inv, err := z12.Element(5).Inverse()
	require.NoError(err)
	require.Equal("7", inv.String())

	require.True(z12.Identity().IsIdentity())
	require.Equal("11", z12.Element(-1).String())

	_, err = Additive(0)
	require.True(errors.Is(err, arith.ErrNonPositiveModulus))
}

func TestUnitsValueRoundTrip(t *testing.T) {
	require := require.New(t)

	u7 := units(t, 7)
	v := unit(t, u7, 3).(unitElement).Value()
	require.Equal(int64(3), v.Value().Int64())
	require.Equal(int64(7), u7.Ring().Modulus().Int64())

	z12, err := Additive(12)
	require.NoError(err)
	w := z12.Element(9).(additiveElement).Value()
	require.Equal(int64(9), w.Value().Int64())
}
