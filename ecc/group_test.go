package ecc

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cryptolab/algebra/group"
)

func TestPointGroupBasics(t *testing.T) {
	require := require.New(t)

	c := testCurve(t)
	g := c.Group()

	require.True(g.Identity().IsIdentity())
	require.Equal(c, g.Curve())
	require.Equal(int64(22), g.Order().Int64())
	require.Equal("E(y² = x³ + 2x + 3 over GF(17))", g.String())

	elems, err := g.Elements()
	require.NoError(err)
	require.Len(elems, 22)

	pe, err := g.Element(pt(t, c, 3, 6))
	require.NoError(err)
	require.Equal("(3, 6)", pe.String())
	require.Equal(pt(t, c, 3, 6), pe.(PointElement).Point())

	// points of another curve do not wrap
	c2, err := NewCurveFromInt64(gf(t, 17), 2, 4)
	require.NoError(err)
	_, err = g.Element(pt(t, c2, 0, 2))
	require.True(errors.Is(err, group.ErrMismatchedGroups))
}

func TestEngineOnCurve(t *testing.T) {
	require := require.New(t)

	c := testCurve(t)
	g := c.Group()
	e, err := group.NewEngine()
	require.NoError(err)

	base, err := g.Element(pt(t, c, 3, 6))
	require.NoError(err)

	// the engine's order agrees with the curve's own
	ord, err := e.Order(base, g.Order())
	require.NoError(err)
	require.Equal(int64(11), ord.Int64())

	// 7·(3,6) = (14, 15)
	target, err := g.Element(pt(t, c, 14, 15))
	require.NoError(err)
	k, err := e.BabyStepGiantStep(base, target, big.NewInt(11))
	require.NoError(err)
	require.Equal(int64(7), k.Int64())

	// generator count is phi(22)
	gens, err := e.Generators(g)
	require.NoError(err)
	require.Len(gens, 10)

	// Pohlig-Hellman round-trips against a full generator
	full, err := g.Element(pt(t, c, 2, 7))
	require.NoError(err)
	pw, err := e.Pow(full, big.NewInt(13))
	require.NoError(err)
	k, err = e.PohligHellman(full, pw, big.NewInt(22))
	require.NoError(err)
	require.Equal(int64(13), k.Int64())
}

func TestCurveSubgroups(t *testing.T) {
	require := require.New(t)

	c := testCurve(t)
	g := c.Group()
	e, err := group.NewEngine()
	require.NoError(err)

	two, err := g.Element(pt(t, c, 16, 0))
	require.NoError(err)
	sub, err := e.SubgroupGeneratedBy(two)
	require.NoError(err)
	require.Equal(int64(2), sub.Order().Int64())
	require.True(sub.Elements()[0].IsIdentity())
	require.Equal("(16, 0)", sub.Elements()[1].String())

	// one subgroup per divisor of 22
	subs, err := e.AllSubgroups(g)
	require.NoError(err)
	require.Len(subs, 4)
	orders := make([]int64, len(subs))
	for i, s := range subs {
		orders[i] = s.Order().Int64()
	}
	require.Equal([]int64{1, 2, 11, 22}, orders)
}
