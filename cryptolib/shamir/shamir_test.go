package shamir

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/cryptolab/algebra/field"
	"github.com/cryptolab/algebra/poly"
)

func gf97(t *testing.T) *field.Prime {
	t.Helper()
	f, err := field.GF(97)
	require.NoError(t, err)
	return f
}

// fixedShares evaluates f(x) = 42 + 7x + 23x² at x = 1..5.
func fixedShares(t *testing.T, f field.Field) []Share {
	t.Helper()
	p := poly.NewRing(f).FromInt64s([]int64{42, 7, 23})
	want := []int64{72, 51, 76, 50, 70}
	shares := make([]Share, 5)
	for i := range shares {
		x := f.FromInt64(int64(i + 1))
		y, err := p.Eval(x)
		require.NoError(t, err)
		require.True(t, f.FromInt64(want[i]).Equal(y), "f(%d)", i+1)
		shares[i] = Share{X: x, Y: y}
	}
	return shares
}

func TestReconstruct(t *testing.T) {
	f := gf97(t)
	shares := fixedShares(t, f)
	secret := f.FromInt64(42)

	for _, subset := range [][]Share{
		{shares[0], shares[1], shares[2]},
		{shares[2], shares[3], shares[4]},
		{shares[0], shares[2], shares[4]},
		shares,
	} {
		got, err := Reconstruct(subset)
		require.NoError(t, err)
		require.True(t, secret.Equal(got), "subset %v", subset)
	}
}

func TestReconstructBelowThreshold(t *testing.T) {
	f := gf97(t)
	shares := fixedShares(t, f)

	// The line through (1, 72) and (2, 51) has value 93 at zero. Two
	// shares of a quadratic reconstruct garbage, not an error.
	got, err := Reconstruct(shares[:2])
	require.NoError(t, err)
	require.True(t, f.FromInt64(93).Equal(got))
}

func TestSplit(t *testing.T) {
	f := gf97(t)
	secret := f.FromInt64(42)

	shares, err := Split(secret, 3, 5, nil)
	require.NoError(t, err)
	require.Len(t, shares, 5)
	for i, s := range shares {
		require.True(t, f.FromInt64(int64(i+1)).Equal(s.X))
	}

	for _, subset := range [][]Share{
		shares[:3],
		shares[2:],
		{shares[4], shares[0], shares[2]},
	} {
		got, err := Reconstruct(subset)
		require.NoError(t, err)
		require.True(t, secret.Equal(got))
	}
}

func TestSplitThresholdOne(t *testing.T) {
	f := gf97(t)
	secret := f.FromInt64(13)

	// t = 1 shares the constant polynomial: every share opens the secret.
	shares, err := Split(secret, 1, 4, nil)
	require.NoError(t, err)
	for _, s := range shares {
		require.True(t, secret.Equal(s.Y))
	}
}

func TestSplitAllSharesNeeded(t *testing.T) {
	f := gf97(t)
	secret := f.FromInt64(61)

	shares, err := Split(secret, 5, 5, nil)
	require.NoError(t, err)
	got, err := Reconstruct(shares)
	require.NoError(t, err)
	require.True(t, secret.Equal(got))
}

func TestSplitReconstructProperty(t *testing.T) {
	f := gf97(t)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 60

	properties := gopter.NewProperties(parameters)

	properties.Property("any threshold-sized subset opens the secret", prop.ForAll(
		func(s int64) bool {
			secret := f.FromInt64(s)
			shares, err := Split(secret, 3, 6, nil)
			if err != nil {
				return false
			}
			got, err := Reconstruct([]Share{shares[5], shares[1], shares[3]})
			return err == nil && secret.Equal(got)
		},
		gen.Int64Range(0, 96),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestSplitValidation(t *testing.T) {
	f := gf97(t)
	secret := f.FromInt64(42)

	_, err := Split(nil, 3, 5, nil)
	require.ErrorContains(t, err, "nil")

	_, err = Split(secret, 0, 5, nil)
	require.ErrorContains(t, err, "threshold must be at least 1")

	_, err = Split(secret, 3, 2, nil)
	require.ErrorContains(t, err, "threshold many shares")

	// GF(5) has only 4 nonzero evaluation points.
	tiny, err := field.GF(5)
	require.NoError(t, err)
	_, err = Split(tiny.FromInt64(3), 2, 5, nil)
	require.ErrorContains(t, err, "nonzero evaluation points")
}

func TestReconstructValidation(t *testing.T) {
	f := gf97(t)
	shares := fixedShares(t, f)

	_, err := Reconstruct(nil)
	require.ErrorContains(t, err, "no shares")

	_, err = Reconstruct([]Share{shares[0], shares[1], shares[0]})
	require.ErrorContains(t, err, "distinct")

	other, err := field.GF(101)
	require.NoError(t, err)
	mixed := []Share{shares[0], {X: other.FromInt64(2), Y: other.FromInt64(3)}}
	_, err = Reconstruct(mixed)
	require.ErrorIs(t, err, field.ErrMismatchedFields)

	_, err = Reconstruct([]Share{{X: shares[0].X, Y: nil}})
	require.ErrorIs(t, err, field.ErrMismatchedFields)
}

func TestAdditiveSharing(t *testing.T) {
	f := gf97(t)
	secret := f.FromInt64(42)

	shares, err := SplitAdditive(secret, 3, nil)
	require.NoError(t, err)
	require.Len(t, shares, 3)
	got, err := ReconstructAdditive(shares)
	require.NoError(t, err)
	require.True(t, secret.Equal(got))

	// A single share is the secret itself.
	shares, err = SplitAdditive(secret, 1, nil)
	require.NoError(t, err)
	require.True(t, secret.Equal(shares[0]))

	_, err = SplitAdditive(secret, 0, nil)
	require.ErrorContains(t, err, "at least one share")
	_, err = SplitAdditive(nil, 3, nil)
	require.ErrorContains(t, err, "nil")
	_, err = ReconstructAdditive(nil)
	require.ErrorContains(t, err, "no shares")
	_, err = ReconstructAdditive([]field.Element{secret, nil})
	require.ErrorContains(t, err, "nil")
}

func TestBeaverMulShare(t *testing.T) {
	f := gf97(t)

	// a = 7, b = 9 with triple u = 3, v = 5, w = 15: the opened
	// differences are d = 4, e = 4, and 15 + 4·3 + 4·5 + 4·4 = 63 = 7·9.
	d, e := f.FromInt64(4), f.FromInt64(4)
	z, err := BeaverMulShare(f.FromInt64(15), f.FromInt64(3), f.FromInt64(5), d, e, true)
	require.NoError(t, err)
	require.True(t, f.FromInt64(63).Equal(z))

	// Two-party run: u = 1+2, v = 2+3, w = 7+8. Only the lead share
	// carries the public d·e term.
	z0, err := BeaverMulShare(f.FromInt64(7), f.FromInt64(1), f.FromInt64(2), d, e, true)
	require.NoError(t, err)
	require.True(t, f.FromInt64(35).Equal(z0))

	z1, err := BeaverMulShare(f.FromInt64(8), f.FromInt64(2), f.FromInt64(3), d, e, false)
	require.NoError(t, err)
	require.True(t, f.FromInt64(28).Equal(z1))

	got, err := ReconstructAdditive([]field.Element{z0, z1})
	require.NoError(t, err)
	require.True(t, f.FromInt64(63).Equal(got))

	_, err = BeaverMulShare(nil, d, e, d, e, true)
	require.ErrorContains(t, err, "nil share")
}

func TestBeaverIdentityProperty(t *testing.T) {
	f := gf97(t)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 60

	properties := gopter.NewProperties(parameters)

	properties.Property("w + e·u + d·v + d·e = a·b", prop.ForAll(
		func(a, b, u, v int64) bool {
			ae, be := f.FromInt64(a), f.FromInt64(b)
			ue, ve := f.FromInt64(u), f.FromInt64(v)
			we, err := ue.Mul(ve)
			if err != nil {
				return false
			}
			d, err := ae.Sub(ue)
			if err != nil {
				return false
			}
			e, err := be.Sub(ve)
			if err != nil {
				return false
			}
			z, err := BeaverMulShare(we, ue, ve, d, e, true)
			if err != nil {
				return false
			}
			ab, err := ae.Mul(be)
			return err == nil && ab.Equal(z)
		},
		gen.Int64Range(0, 96),
		gen.Int64Range(0, 96),
		gen.Int64Range(0, 96),
		gen.Int64Range(0, 96),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
