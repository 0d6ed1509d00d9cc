// Package r1cs flattens teaching-grade arithmetic circuits into rank-1
// constraint systems.
//
// A circuit is a list of gates over numbered wires. The first wires are
// the inputs; each gate appends one output wire. Compile turns the
// circuit into matrices A, B, C over the integers such that a witness
// vector w = [1, inputs, gate outputs] satisfies the circuit exactly
// when (A·w) ∘ (B·w) = C·w row by row in the chosen field.
package r1cs

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/cryptolab/algebra/arith"
	"github.com/cryptolab/algebra/field"
)

var ErrUndefinedWire = errors.New("invalid parametrization: gate references an undefined wire")

// GateKind discriminates the gate variants.
type GateKind uint8

const (
	GateAdd GateKind = iota
	GateMul
	GateConst
)

func (k GateKind) String() string {
	switch k {
	case GateAdd:
		return "add"
	case GateMul:
		return "mul"
	case GateConst:
		return "const"
	}
	return fmt.Sprintf("gate(%d)", uint8(k))
}

// Gate is one circuit gate. Add and Mul read the wires Left and Right;
// Const ignores them and produces Value.
type Gate struct {
	Kind  GateKind
	Left  int
	Right int
	Value *big.Int
}

// Add returns a gate computing wire l + wire r.
func Add(l, r int) Gate { return Gate{Kind: GateAdd, Left: l, Right: r} }

// Mul returns a gate computing wire l · wire r.
func Mul(l, r int) Gate { return Gate{Kind: GateMul, Left: l, Right: r} }

// Const returns a gate producing the constant v.
func Const(v int64) Gate { return Gate{Kind: GateConst, Value: big.NewInt(v)} }

// ConstBig is Const for large values. The input is copied.
func ConstBig(v *big.Int) Gate {
	return Gate{Kind: GateConst, Value: new(big.Int).Set(v)}
}

func (g Gate) String() string {
	if g.Kind == GateConst {
		return fmt.Sprintf("const(%v)", g.Value)
	}
	return fmt.Sprintf("%v(w%d, w%d)", g.Kind, g.Left, g.Right)
}

// Evaluate runs the circuit on the given input wires and returns the
// values of all wires, inputs first, one more per gate. Gates may only
// read wires that already exist.
func Evaluate(gates []Gate, inputs []field.Element, f field.Field) ([]field.Element, error) {
	wires := make([]field.Element, 0, len(inputs)+len(gates))
	for i, in := range inputs {
		if !f.Equal(in.Field()) {
			return nil, fmt.Errorf("%w: input %d lives in %v, not %v", field.ErrMismatchedFields, i, in.Field(), f)
		}
		wires = append(wires, in)
	}

	for i, g := range gates {
		var out field.Element
		var err error
		switch g.Kind {
		case GateAdd, GateMul:
			if err := checkWires(i, g, len(wires)); err != nil {
				return nil, err
			}
			if g.Kind == GateAdd {
				out, err = wires[g.Left].Add(wires[g.Right])
			} else {
				out, err = wires[g.Left].Mul(wires[g.Right])
			}
			if err != nil {
				return nil, err
			}
		case GateConst:
			if g.Value == nil {
				return nil, fmt.Errorf("invalid parametrization: constant gate %d has no value", i)
			}
			out = f.FromBig(g.Value)
		default:
			return nil, fmt.Errorf("invalid parametrization: gate %d has unknown kind %d", i, g.Kind)
		}
		wires = append(wires, out)
	}
	return wires, nil
}

// Witness evaluates the circuit and prepends the constant wire, giving
// the vector CheckWitness expects.
func Witness(gates []Gate, inputs []field.Element, f field.Field) ([]field.Element, error) {
	wires, err := Evaluate(gates, inputs, f)
	if err != nil {
		return nil, err
	}
	w := make([]field.Element, 0, 1+len(wires))
	w = append(w, f.One())
	return append(w, wires...), nil
}

// Compile flattens the circuit into R1CS matrices with one row per gate
// and one column per witness entry: the constant wire, numInputs input
// wires, then one output wire per gate.
//
// Multiplication rows select the factors in A and B. Addition rows put
// the sum of the operands in A against the constant wire in B. Constant
// rows put the value itself against the constant wire.
func Compile(gates []Gate, numInputs int) (a, b, c [][]*big.Int, err error) {
	if numInputs < 0 {
		return nil, nil, nil, fmt.Errorf("invalid parametrization: negative input count %d", numInputs)
	}
	cols := 1 + numInputs + len(gates)
	a = zeroMatrix(len(gates), cols)
	b = zeroMatrix(len(gates), cols)
	c = zeroMatrix(len(gates), cols)

	one := big.NewInt(1)
	for i, g := range gates {
		out := 1 + numInputs + i
		switch g.Kind {
		case GateAdd:
			if err := checkWires(i, g, numInputs+i); err != nil {
				return nil, nil, nil, err
			}
			// Left may equal Right, so accumulate.
			a[i][1+g.Left].Add(a[i][1+g.Left], one)
			a[i][1+g.Right].Add(a[i][1+g.Right], one)
			b[i][0].SetInt64(1)
			c[i][out].SetInt64(1)
		case GateMul:
			if err := checkWires(i, g, numInputs+i); err != nil {
				return nil, nil, nil, err
			}
			a[i][1+g.Left].SetInt64(1)
			b[i][1+g.Right].SetInt64(1)
			c[i][out].SetInt64(1)
		case GateConst:
			if g.Value == nil {
				return nil, nil, nil, fmt.Errorf("invalid parametrization: constant gate %d has no value", i)
			}
			a[i][0].Set(g.Value)
			b[i][0].SetInt64(1)
			c[i][out].SetInt64(1)
		default:
			return nil, nil, nil, fmt.Errorf("invalid parametrization: gate %d has unknown kind %d", i, g.Kind)
		}
	}
	return a, b, c, nil
}

// CheckWitness reports whether (A·w) ∘ (B·w) = C·w holds row by row in
// the field of the witness entries.
func CheckWitness(a, b, c [][]*big.Int, w []field.Element) (bool, error) {
	if len(a) != len(b) || len(b) != len(c) {
		return false, fmt.Errorf("%w: %d, %d and %d constraint rows", arith.ErrLengthMismatch, len(a), len(b), len(c))
	}
	if len(w) == 0 {
		return false, errors.New("invalid parametrization: empty witness")
	}
	f := w[0].Field()

	for i := range a {
		av, err := dot(a[i], w, f)
		if err != nil {
			return false, err
		}
		bv, err := dot(b[i], w, f)
		if err != nil {
			return false, err
		}
		cv, err := dot(c[i], w, f)
		if err != nil {
			return false, err
		}
		lhs, err := av.Mul(bv)
		if err != nil {
			return false, err
		}
		if !lhs.Equal(cv) {
			return false, nil
		}
	}
	return true, nil
}

func dot(row []*big.Int, w []field.Element, f field.Field) (field.Element, error) {
	if len(row) != len(w) {
		return nil, fmt.Errorf("%w: row has %d columns, witness has %d entries", arith.ErrLengthMismatch, len(row), len(w))
	}
	acc := f.Zero()
	for j, coeff := range row {
		if coeff == nil || coeff.Sign() == 0 {
			continue
		}
		term, err := f.FromBig(coeff).Mul(w[j])
		if err != nil {
			return nil, err
		}
		if acc, err = acc.Add(term); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func checkWires(i int, g Gate, defined int) error {
	for _, idx := range []int{g.Left, g.Right} {
		if idx < 0 || idx >= defined {
			return fmt.Errorf("%w: gate %d reads wire %d, only %d wires defined", ErrUndefinedWire, i, idx, defined)
		}
	}
	return nil
}

func zeroMatrix(rows, cols int) [][]*big.Int {
	m := make([][]*big.Int, rows)
	for i := range m {
		m[i] = make([]*big.Int, cols)
		for j := range m[i] {
			m[i][j] = new(big.Int)
		}
	}
	return m
}
