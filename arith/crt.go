package arith

import (
	"fmt"
	"math/big"
)

// CRT solves the system x = residues[i] (mod moduli[i]) and returns the
// unique solution modulo the product of the moduli. The moduli must be
// pairwise coprime; otherwise the call fails with ErrNonCoprimeModuli naming
// the offending pair.
func CRT(residues, moduli []*big.Int) (*big.Int, error) {
	if len(residues) != len(moduli) {
		return nil, fmt.Errorf("%w: %d residues, %d moduli", ErrLengthMismatch, len(residues), len(moduli))
	}
	if len(moduli) == 0 {
		return nil, fmt.Errorf("at least one congruence is required")
	}
	for _, m := range moduli {
		if m.Sign() <= 0 {
			return nil, fmt.Errorf("%w: %v", ErrNonPositiveModulus, m)
		}
	}
	for i := 0; i < len(moduli); i++ {
		for j := i + 1; j < len(moduli); j++ {
			if g := GCD(moduli[i], moduli[j]); g.Cmp(bigOne) != 0 {
				return nil, fmt.Errorf("%w: gcd(%v, %v) = %v", ErrNonCoprimeModuli, moduli[i], moduli[j], g)
			}
		}
	}

	x := new(big.Int).Mod(residues[0], moduli[0])
	m := new(big.Int).Set(moduli[0])
	t := new(big.Int)
	for i := 1; i < len(moduli); i++ {
		inv, err := Inverse(m, moduli[i])
		if err != nil {
			return nil, err
		}
		// x + m*t = residues[i] (mod moduli[i])
		t.Sub(residues[i], x)
		t.Mul(t, inv)
		t.Mod(t, moduli[i])

		t.Mul(t, m)
		x.Add(x, t)
		m.Mul(m, moduli[i])
		x.Mod(x, m)
	}
	return x, nil
}
