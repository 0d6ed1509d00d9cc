package zmod

import (
	"errors"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptolab/algebra/arith"
)

func TestNewCanonicalizes(t *testing.T) {
	assert := assert.New(t)

	z, err := New(37, 7)
	assert.NoError(err)
	assert.Equal("2", z.String())

	z, err = New(-3, 7)
	assert.NoError(err)
	assert.Equal(int64(4), z.Value().Int64())

	_, err = New(5, 0)
	assert.True(errors.Is(err, arith.ErrNonPositiveModulus))
	_, err = New(5, -7)
	assert.Error(err)
}

func TestArithmetic(t *testing.T) {
	require := require.New(t)

	a, _ := New(3, 7)
	b, _ := New(5, 7)

	sum, err := a.Add(b)
	require.NoError(err)
	require.Equal(int64(1), sum.Value().Int64())

	diff, err := a.Sub(b)
	require.NoError(err)
	require.Equal(int64(5), diff.Value().Int64())

	c, _ := New(4, 7)
	prod, err := c.Mul(a)
	require.NoError(err)
	require.Equal(int64(5), prod.Value().Int64())

	require.Equal(int64(4), a.Neg().Value().Int64())

	inv, err := a.Inverse()
	require.NoError(err)
	require.Equal(int64(5), inv.Value().Int64())

	quot, err := b.Div(a)
	require.NoError(err)
	require.Equal(int64(4), quot.Value().Int64()) // 5 * 3^-1 = 5 * 5 = 25 = 4
}

func TestZeroDivisorsAndNoInverse(t *testing.T) {
	require := require.New(t)

	a, _ := New(3, 12)
	b, _ := New(4, 12)

	prod, err := a.Mul(b)
	require.NoError(err)
	require.True(prod.IsZero())

	_, err = a.Inverse()
	require.True(errors.Is(err, arith.ErrNoInverse))
	require.ErrorContains(err, "gcd = 3")
}

func TestMismatchedModuli(t *testing.T) {
	require := require.New(t)

	a, _ := New(3, 7)
	b, _ := New(3, 12)

	_, err := a.Add(b)
	require.True(errors.Is(err, ErrMismatchedModuli))
	_, err = a.Mul(b)
	require.True(errors.Is(err, ErrMismatchedModuli))
	_, err = a.Div(b)
	require.True(errors.Is(err, ErrMismatchedModuli))

	require.False(a.Equal(b))
}

func TestEqualIgnoresRepresentative(t *testing.T) {
	assert := assert.New(t)

	a, _ := New(37, 7)
	b, _ := New(2, 7)
	assert.True(a.Equal(b))

	c, _ := New(3, 7)
	assert.False(a.Equal(c))
	assert.True(b.Cmp(c) < 0)
}

func TestPow(t *testing.T) {
	require := require.New(t)

	a, _ := New(3, 17)
	p, err := a.Pow(big.NewInt(13))
	require.NoError(err)
	require.Equal(int64(12), p.Value().Int64())

	steps, p2, err := a.PowSteps(big.NewInt(13))
	require.NoError(err)
	require.True(p.Equal(p2))
	require.Len(steps, 4)
	require.Equal(int64(12), steps[3].Acc.Int64())

	// negative exponent via the inverse
	inv2, err := a.Pow(big.NewInt(-1))
	require.NoError(err)
	require.Equal(int64(6), inv2.Value().Int64())

	z, _ := New(4, 12)
	_, err = z.Pow(big.NewInt(-1))
	require.True(errors.Is(err, arith.ErrNoInverse))
}

func TestAdditiveOrder(t *testing.T) {
	assert := assert.New(t)

	cases := []struct{ v, n, want int64 }{
		{0, 12, 1},
		{1, 12, 12},
		{4, 12, 3},
		{5, 12, 12},
		{6, 12, 2},
		{8, 12, 3},
	}
	for _, c := range cases {
		z, _ := New(c.v, c.n)
		assert.Equal(c.want, z.AdditiveOrder().Int64(), "order of %d in Z/%d", c.v, c.n)
	}
}

func TestMultiplicativeOrder(t *testing.T) {
	require := require.New(t)

	cases := []struct{ v, n, want int64 }{
		{3, 7, 6},
		{2, 7, 3},
		{6, 7, 2},
		{1, 7, 1},
		{5, 23, 22},
	}
	for _, c := range cases {
		z, _ := New(c.v, c.n)
		ord, err := z.MultiplicativeOrder()
		require.NoError(err)
		require.Equal(c.want, ord.Int64(), "order of %d mod %d", c.v, c.n)
	}

	z, _ := New(4, 8)
	_, err := z.MultiplicativeOrder()
	require.True(errors.Is(err, ErrNotUnit))
}

func TestOperationsAreImmutable(t *testing.T) {
	require := require.New(t)

	a, _ := New(3, 7)
	b, _ := New(5, 7)
	_, err := a.Add(b)
	require.NoError(err)
	_, err = a.Pow(big.NewInt(100))
	require.NoError(err)
	require.Equal(int64(3), a.Value().Int64())
	require.Equal(int64(5), b.Value().Int64())

	// accessors hand out copies
	a.Value().SetInt64(99)
	a.Modulus().SetInt64(99)
	require.Equal(int64(3), a.Value().Int64())
	require.Equal(int64(7), a.Modulus().Int64())
}

func TestRingAxiomsProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("(a + b) - b == a", prop.ForAll(
		func(a, b int64, n int64) bool {
			x, err := New(a, n)
			if err != nil {
				return false
			}
			y, _ := New(b, n)
			s, _ := x.Add(y)
			back, _ := s.Sub(y)
			return back.Equal(x)
		},
		gen.Int64Range(-1<<40, 1<<40),
		gen.Int64Range(-1<<40, 1<<40),
		gen.Int64Range(1, 1<<30),
	))

	properties.Property("a * a^-1 == 1 for nonzero a mod prime", prop.ForAll(
		func(a int64) bool {
			x, err := New(a, 1_000_003)
			if err != nil || x.IsZero() {
				return true
			}
			inv, err := x.Inverse()
			if err != nil {
				return false
			}
			prod, _ := x.Mul(inv)
			return prod.IsOne()
		},
		gen.Int64Range(1, 1<<40),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
