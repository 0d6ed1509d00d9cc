package dh

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/cryptolab/algebra/field"
)

func params23(t *testing.T) *Params {
	t.Helper()
	p, err := NewParams(big.NewInt(5), big.NewInt(23))
	require.NoError(t, err)
	return p
}

func TestExchange(t *testing.T) {
	pr := params23(t)

	bigA, bigB, shared, err := Exchange(pr, big.NewInt(6), big.NewInt(15))
	require.NoError(t, err)
	require.Equal(t, int64(8), bigA.Int64())
	require.Equal(t, int64(19), bigB.Int64())
	require.Equal(t, int64(2), shared.Int64())
}

func TestSharedSecretAgreesProperty(t *testing.T) {
	pr := params23(t)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 60
	properties := gopter.NewProperties(parameters)

	properties.Property("both sides derive the same secret", prop.ForAll(
		func(a, b int64) bool {
			bigA, err := pr.PublicKey(big.NewInt(a))
			if err != nil {
				return false
			}
			bigB, err := pr.PublicKey(big.NewInt(b))
			if err != nil {
				return false
			}
			sa, err := pr.SharedSecret(big.NewInt(a), bigB)
			if err != nil {
				return false
			}
			sb, err := pr.SharedSecret(big.NewInt(b), bigA)
			return err == nil && sa.Cmp(sb) == 0
		},
		gen.Int64Range(1, 40),
		gen.Int64Range(1, 40),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestParamsValidation(t *testing.T) {
	_, err := NewParams(big.NewInt(5), big.NewInt(24))
	require.ErrorIs(t, err, field.ErrNotPrime)

	_, err = NewParams(big.NewInt(1), big.NewInt(23))
	require.ErrorContains(t, err, "outside")
	_, err = NewParams(big.NewInt(22), big.NewInt(23))
	require.ErrorContains(t, err, "outside")
	_, err = NewParams(nil, big.NewInt(23))
	require.ErrorContains(t, err, "outside")

	// 37 is prime but 18 is not, which only warns.
	pr, err := NewParams(big.NewInt(2), big.NewInt(37))
	require.NoError(t, err)
	require.Equal(t, int64(2), pr.Generator().Int64())
	require.Equal(t, int64(37), pr.Modulus().Int64())
}

func TestExchangeValidation(t *testing.T) {
	pr := params23(t)

	_, _, _, err := Exchange(pr, big.NewInt(0), big.NewInt(3))
	require.ErrorContains(t, err, "positive")
	_, _, _, err = Exchange(pr, big.NewInt(3), nil)
	require.ErrorContains(t, err, "positive")

	_, err = pr.SharedSecret(big.NewInt(3), big.NewInt(23))
	require.ErrorContains(t, err, "outside")
	_, err = pr.SharedSecret(big.NewInt(3), big.NewInt(0))
	require.ErrorContains(t, err, "outside")
}

func TestParamsString(t *testing.T) {
	require.Equal(t, "DH(g = 5, p = 23)", params23(t).String())
}
