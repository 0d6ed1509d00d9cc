package r1cs

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/cryptolab/algebra/arith"
	"github.com/cryptolab/algebra/field"
)

func gf97(t *testing.T) *field.Prime {
	t.Helper()
	f, err := field.GF(97)
	require.NoError(t, err)
	return f
}

func elems(f field.Field, vs ...int64) []field.Element {
	out := make([]field.Element, len(vs))
	for i, v := range vs {
		out[i] = f.FromInt64(v)
	}
	return out
}

func bigRows(rows ...[]int64) [][]*big.Int {
	out := make([][]*big.Int, len(rows))
	for i, r := range rows {
		out[i] = make([]*big.Int, len(r))
		for j, v := range r {
			out[i][j] = big.NewInt(v)
		}
	}
	return out
}

// cubicGates computes x³ + x + 5 from the single input x.
func cubicGates() []Gate {
	return []Gate{
		Mul(0, 0), // w2 = x²
		Mul(1, 0), // w3 = x³
		Add(2, 0), // w4 = x³ + x
		Const(5),  // w5 = 5
		Add(3, 4), // w6 = x³ + x + 5
	}
}

func TestEvaluate(t *testing.T) {
	f := gf97(t)

	// c = a·b + a on inputs (3, 5).
	gates := []Gate{Mul(0, 1), Add(2, 0)}
	wires, err := Evaluate(gates, elems(f, 3, 5), f)
	require.NoError(t, err)
	require.Len(t, wires, 4)
	require.Equal(t, "15", wires[2].String())
	require.Equal(t, "18", wires[3].String())
}

func TestEvaluateValidation(t *testing.T) {
	f := gf97(t)

	// Gate 0 may only read the two input wires.
	_, err := Evaluate([]Gate{Mul(0, 2)}, elems(f, 3, 5), f)
	require.ErrorIs(t, err, ErrUndefinedWire)

	_, err = Evaluate([]Gate{Add(-1, 0)}, elems(f, 3), f)
	require.ErrorIs(t, err, ErrUndefinedWire)

	_, err = Evaluate([]Gate{{Kind: GateConst}}, elems(f, 3), f)
	require.ErrorContains(t, err, "no value")

	other, err := field.GF(101)
	require.NoError(t, err)
	_, err = Evaluate(nil, []field.Element{other.FromInt64(1)}, f)
	require.ErrorIs(t, err, field.ErrMismatchedFields)
}

func TestCheckWitnessHandBuilt(t *testing.T) {
	f := gf97(t)

	// Single constraint a·b = c over the witness [1, a, b, c].
	a := bigRows([]int64{0, 1, 0, 0})
	b := bigRows([]int64{0, 0, 1, 0})
	c := bigRows([]int64{0, 0, 0, 1})

	ok, err := CheckWitness(a, b, c, elems(f, 1, 3, 5, 15))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = CheckWitness(a, b, c, elems(f, 1, 3, 5, 16))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCompile(t *testing.T) {
	a, b, c, err := Compile(cubicGates(), 1)
	require.NoError(t, err)
	require.Len(t, a, 5)
	for _, m := range [][][]*big.Int{a, b, c} {
		for _, row := range m {
			require.Len(t, row, 7)
		}
	}

	// w2 = x·x selects the input wire on both sides.
	require.Equal(t, int64(1), a[0][1].Int64())
	require.Equal(t, int64(1), b[0][1].Int64())
	require.Equal(t, int64(1), c[0][2].Int64())

	// w4 = w3 + x sums in A against the constant wire in B.
	require.Equal(t, int64(1), a[2][3].Int64())
	require.Equal(t, int64(1), a[2][1].Int64())
	require.Equal(t, int64(1), b[2][0].Int64())
	require.Equal(t, int64(1), c[2][4].Int64())

	// w5 = 5 puts the value against the constant wire.
	require.Equal(t, int64(5), a[3][0].Int64())
	require.Equal(t, int64(1), b[3][0].Int64())
	require.Equal(t, int64(1), c[3][5].Int64())
}

func TestCompileDoubledOperand(t *testing.T) {
	// w1 + w1 accumulates coefficient 2.
	a, b, c, err := Compile([]Gate{Add(0, 0)}, 1)
	require.NoError(t, err)
	require.Equal(t, int64(2), a[0][1].Int64())
	require.Equal(t, int64(1), b[0][0].Int64())
	require.Equal(t, int64(1), c[0][2].Int64())

	f := gf97(t)
	w, err := Witness([]Gate{Add(0, 0)}, elems(f, 3), f)
	require.NoError(t, err)
	require.Equal(t, "6", w[2].String())
	ok, err := CheckWitness(a, b, c, w)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCubicPipeline(t *testing.T) {
	f := gf97(t)
	gates := cubicGates()

	wires, err := Evaluate(gates, elems(f, 3), f)
	require.NoError(t, err)
	require.Equal(t, "35", wires[len(wires)-1].String())

	w, err := Witness(gates, elems(f, 3), f)
	require.NoError(t, err)
	require.Len(t, w, 7)
	require.True(t, w[0].IsOne())

	a, b, c, err := Compile(gates, 1)
	require.NoError(t, err)
	ok, err := CheckWitness(a, b, c, w)
	require.NoError(t, err)
	require.True(t, ok)

	// A tampered output wire breaks the last constraint.
	w[6] = f.FromInt64(34)
	ok, err = CheckWitness(a, b, c, w)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestWitnessSatisfiesCompilationProperty(t *testing.T) {
	f := gf97(t)
	gates := cubicGates()
	a, b, c, err := Compile(gates, 1)
	require.NoError(t, err)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 60
	properties := gopter.NewProperties(parameters)

	properties.Property("evaluated witnesses satisfy the compiled system", prop.ForAll(
		func(x int64) bool {
			w, err := Witness(gates, elems(f, x), f)
			if err != nil {
				return false
			}
			ok, err := CheckWitness(a, b, c, w)
			return err == nil && ok
		},
		gen.Int64Range(0, 96),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestCheckWitnessValidation(t *testing.T) {
	f := gf97(t)

	_, err := CheckWitness(bigRows([]int64{0, 1}), bigRows(), bigRows(), elems(f, 1, 2))
	require.ErrorIs(t, err, arith.ErrLengthMismatch)

	_, err = CheckWitness(
		bigRows([]int64{0, 1, 0}),
		bigRows([]int64{0, 0, 1}),
		bigRows([]int64{0, 0, 1}),
		elems(f, 1, 2),
	)
	require.ErrorIs(t, err, arith.ErrLengthMismatch)

	_, err = CheckWitness(nil, nil, nil, nil)
	require.ErrorContains(t, err, "empty witness")
}

func TestGateString(t *testing.T) {
	require.Equal(t, "mul(w0, w1)", Mul(0, 1).String())
	require.Equal(t, "add(w2, w0)", Add(2, 0).String())
	require.Equal(t, "const(5)", Const(5).String())
	require.Equal(t, "const(12)", ConstBig(big.NewInt(12)).String())
}
