package lwe

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/cryptolab/algebra/arith"
	"github.com/cryptolab/algebra/internal/utils"
)

// The stock test instance keeps m·noiseBound = 8 well under q/4 = 24,
// so decryption can never flip a bit.
func testKey(t *testing.T) *PrivateKey {
	t.Helper()
	key, err := GenerateKey(4, 8, 97)
	require.NoError(t, err)
	return key
}

func TestRoundTrip(t *testing.T) {
	key := testKey(t)

	for _, bit := range []int64{0, 1} {
		for i := 0; i < 20; i++ {
			ct, err := key.EncryptBit(bit, nil)
			require.NoError(t, err)
			got, err := key.DecryptBit(ct)
			require.NoError(t, err)
			require.Equal(t, bit, got)
		}
	}
}

func TestNoiselessInstance(t *testing.T) {
	key, err := GenerateKey(3, 5, 31, WithNoiseBound(0))
	require.NoError(t, err)

	// With zero noise b is exactly As.
	for i, row := range key.A {
		require.Equal(t, dotMod(row, key.S, key.Q), key.B[i])
	}

	ct, err := key.EncryptBit(1, nil)
	require.NoError(t, err)
	got, err := key.DecryptBit(ct)
	require.NoError(t, err)
	require.Equal(t, int64(1), got)
}

func TestGenerateKeyShapes(t *testing.T) {
	key := testKey(t)

	require.Len(t, key.S, 4)
	require.Len(t, key.A, 8)
	require.Len(t, key.B, 8)
	for _, row := range key.A {
		require.Len(t, row, 4)
		for _, v := range row {
			require.True(t, v >= 0 && v < key.Q)
		}
	}
	for _, v := range append(append([]int64{}, key.B...), key.S...) {
		require.True(t, v >= 0 && v < key.Q)
	}
}

func TestThinMarginStillGeneratesKeys(t *testing.T) {
	// 4·m·noiseBound = 120 exceeds q = 11; generation only warns.
	key, err := GenerateKey(2, 30, 11)
	require.NoError(t, err)
	require.Len(t, key.A, 30)
}

func TestGenerateKeyValidation(t *testing.T) {
	_, err := GenerateKey(0, 8, 97)
	require.ErrorContains(t, err, "dimensions")
	_, err = GenerateKey(4, 0, 97)
	require.ErrorContains(t, err, "dimensions")
	_, err = GenerateKey(4, 8, 1)
	require.ErrorContains(t, err, "at least 2")
	_, err = GenerateKey(4, 8, 1<<33)
	require.ErrorContains(t, err, "32 bits")
	_, err = GenerateKey(4, 8, 97, WithNoiseBound(-1))
	require.ErrorContains(t, err, "non-negative")
	_, err = GenerateKey(4, 8, 97, WithRandom(nil))
	require.ErrorContains(t, err, "nil reader")
}

func TestCiphertextValidation(t *testing.T) {
	key := testKey(t)

	_, err := key.EncryptBit(2, nil)
	require.ErrorContains(t, err, "must be a bit")

	var empty PublicKey
	_, err = empty.EncryptBit(0, nil)
	require.ErrorContains(t, err, "malformed")

	ct, err := key.EncryptBit(0, nil)
	require.NoError(t, err)
	ct.U = ct.U[:2]
	_, err = key.DecryptBit(ct)
	require.ErrorIs(t, err, arith.ErrLengthMismatch)
}

func TestGramSchmidt2D(t *testing.T) {
	star, mu, err := GramSchmidt2D([2]int64{3, 1}, [2]int64{2, 2})
	require.NoError(t, err)
	require.InDelta(t, 0.8, mu, 1e-12)
	require.InDelta(t, -0.4, star[0], 1e-12)
	require.InDelta(t, 1.2, star[1], 1e-12)

	// b2* is orthogonal to b1.
	require.InDelta(t, 0, 3*star[0]+1*star[1], 1e-12)

	_, _, err = GramSchmidt2D([2]int64{0, 0}, [2]int64{2, 2})
	require.ErrorContains(t, err, "zero vector")
}

func TestReduce2D(t *testing.T) {
	b1, b2, err := Reduce2D([2]int64{1, 0}, [2]int64{100, 1})
	require.NoError(t, err)
	require.Equal(t, [2]int64{1, 0}, b1)
	require.Equal(t, [2]int64{0, 1}, b2)

	b1, b2, err = Reduce2D([2]int64{3, 1}, [2]int64{2, 2})
	require.NoError(t, err)
	require.Equal(t, [2]int64{1, -1}, b1)
	require.Equal(t, [2]int64{2, 2}, b2)

	// A projection of exactly 1/2 must terminate, not oscillate.
	b1, b2, err = Reduce2D([2]int64{2, 0}, [2]int64{1, 2})
	require.NoError(t, err)
	require.Equal(t, [2]int64{2, 0}, b1)
	require.Equal(t, [2]int64{1, 2}, b2)

	_, _, err = Reduce2D([2]int64{2, 4}, [2]int64{1, 2})
	require.ErrorContains(t, err, "linearly dependent")

	_, _, err = Reduce2D([2]int64{0, 0}, [2]int64{1, 2})
	require.ErrorContains(t, err, "nonzero")
}

func TestReduce2DProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("reduction shortens and preserves the lattice", prop.ForAll(
		func(x1, y1, x2, y2 int64) bool {
			in1, in2 := [2]int64{x1, y1}, [2]int64{x2, y2}
			det := in1[0]*in2[1] - in1[1]*in2[0]

			b1, b2, err := Reduce2D(in1, in2)
			if in1 == ([2]int64{}) || in2 == ([2]int64{}) || det == 0 {
				return err != nil
			}
			if err != nil {
				return false
			}
			// Ordered, nearly orthogonal, same lattice volume.
			if dot2(b1, b1) > dot2(b2, b2) {
				return false
			}
			if 2*utils.Abs(dot2(b1, b2)) > dot2(b1, b1) {
				return false
			}
			outDet := b1[0]*b2[1] - b1[1]*b2[0]
			return utils.Abs(outDet) == utils.Abs(det)
		},
		gen.Int64Range(-20, 20),
		gen.Int64Range(-20, 20),
		gen.Int64Range(-20, 20),
		gen.Int64Range(-20, 20),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
