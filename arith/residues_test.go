package arith

import (
	"errors"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegendre(t *testing.T) {
	assert := assert.New(t)

	// squares mod 7 are {1, 2, 4}
	want := map[int64]int{0: 0, 1: 1, 2: 1, 3: -1, 4: 1, 5: -1, 6: -1}
	for a, sym := range want {
		got, err := Legendre(big.NewInt(a), big.NewInt(7))
		assert.NoError(err)
		assert.Equal(sym, got, "legendre(%d, 7)", a)
	}

	_, err := Legendre(big.NewInt(3), big.NewInt(2))
	assert.True(errors.Is(err, ErrNotOddPrime))
	_, err = Legendre(big.NewInt(3), big.NewInt(15))
	assert.True(errors.Is(err, ErrNotOddPrime))
}

func TestJacobiAgainstStdlib(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("agrees with big.Jacobi", prop.ForAll(
		func(a, n int64) bool {
			bn := big.NewInt(2*n + 1) // odd
			got, err := Jacobi(big.NewInt(a), bn)
			if err != nil {
				return false
			}
			return got == big.Jacobi(big.NewInt(a), bn)
		},
		gen.Int64Range(-1<<40, 1<<40),
		gen.Int64Range(0, 1<<40),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestSqrtMod(t *testing.T) {
	require := require.New(t)

	// p = 3 (mod 4) shortcut path
	r, err := SqrtMod(big.NewInt(2), big.NewInt(7))
	require.NoError(err)
	require.Contains([]int64{3, 4}, r.Int64())

	// Tonelli-Shanks path, p = 1 (mod 4)
	r, err = SqrtMod(big.NewInt(10), big.NewInt(13))
	require.NoError(err)
	sq := new(big.Int).Mul(r, r)
	require.Equal(int64(10), sq.Mod(sq, big.NewInt(13)).Int64())

	r, err = SqrtMod(big.NewInt(0), big.NewInt(13))
	require.NoError(err)
	require.Equal(int64(0), r.Int64())

	_, err = SqrtMod(big.NewInt(5), big.NewInt(13))
	require.True(errors.Is(err, ErrNonResidue))
}

func TestSqrtModProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	primes := []int64{7, 13, 17, 41, 97, 101, 1009, 65537, 1_000_000_007}

	properties.Property("sqrt of a square is a root", prop.ForAll(
		func(x int64, pi int) bool {
			p := big.NewInt(primes[pi])
			a := big.NewInt(x)
			a.Mul(a, a)
			a.Mod(a, p)
			r, err := SqrtMod(a, p)
			if err != nil {
				return false
			}
			r.Mul(r, r)
			r.Mod(r, p)
			return r.Cmp(a) == 0
		},
		gen.Int64Range(0, 1<<40),
		gen.IntRange(0, len(primes)-1),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestPrimitiveRoot(t *testing.T) {
	require := require.New(t)

	g, err := PrimitiveRoot(big.NewInt(7))
	require.NoError(err)
	require.Equal(int64(3), g.Int64())

	g, err = PrimitiveRoot(big.NewInt(23))
	require.NoError(err)
	require.Equal(int64(5), g.Int64())

	g, err = PrimitiveRoot(big.NewInt(4))
	require.NoError(err)
	require.Equal(int64(3), g.Int64())

	g, err = PrimitiveRoot(big.NewInt(2))
	require.NoError(err)
	require.Equal(int64(1), g.Int64())

	// 8 has no primitive root
	_, err = PrimitiveRoot(big.NewInt(8))
	require.True(errors.Is(err, ErrNoPrimitiveRoot))

	_, err = PrimitiveRoot(big.NewInt(1<<21), WithSearchBound(1))
	require.True(errors.Is(err, ErrBoundExceeded))
}

func TestPrimitiveRootGenerates(t *testing.T) {
	require := require.New(t)

	for _, p := range []int64{5, 11, 13, 101} {
		g, err := PrimitiveRoot(big.NewInt(p))
		require.NoError(err)
		seen := map[int64]bool{}
		x := big.NewInt(1)
		for i := int64(0); i < p-1; i++ {
			seen[x.Int64()] = true
			x.Mul(x, g)
			x.Mod(x, big.NewInt(p))
		}
		require.Len(seen, int(p-1), "root %v of %d", g, p)
	}
}
