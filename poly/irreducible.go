package poly

import (
	"math/big"

	"github.com/cryptolab/algebra/arith"
	"github.com/cryptolab/algebra/field"
)

// trialBudget is the largest divisor-candidate count for which
// irreducibility testing exhaustively trial-divides; beyond it the Rabin
// test takes over.
const trialBudget = 1 << 16

// IsIrreducible reports whether p is irreducible over its coefficient
// field. Constants and the zero polynomial are not irreducible; linear
// polynomials always are. Scaling does not change the answer, so the test
// runs on the monic normalization.
//
// Over small fields the test trial-divides against every monic polynomial
// of degree up to deg(p)/2. When that candidate space outgrows the budget
// the Rabin irreducibility test is used instead: p of degree n is
// irreducible iff x^(q^n) = x (mod p) and gcd(x^(q^(n/t)) - x, p) = 1 for
// every prime t dividing n. Both strategies are deterministic.
func (p Polynomial) IsIrreducible() (bool, error) {
	deg := p.Degree()
	if deg <= 0 {
		return false, nil
	}
	if deg == 1 {
		return true, nil
	}
	monic, err := p.Monic()
	if err != nil {
		return false, err
	}

	q := p.ring.f.Order()
	half := deg / 2
	total := new(big.Int)
	qd := new(big.Int).Set(q)
	budget := big.NewInt(trialBudget)
	withinBudget := true
	for d := 1; d <= half; d++ {
		total.Add(total, qd)
		if total.Cmp(budget) > 0 {
			withinBudget = false
			break
		}
		qd = new(big.Int).Mul(qd, q)
	}

	if withinBudget {
		return monic.irreducibleByTrialDivision(half)
	}
	return monic.irreducibleByRabin()
}

func (p Polynomial) irreducibleByTrialDivision(half int) (bool, error) {
	elems, err := p.ring.f.Elements()
	if err != nil {
		return false, err
	}
	q := len(elems)

	for d := 1; d <= half; d++ {
		digits := make([]int, d)
		coeffs := make([]field.Element, d+1)
		coeffs[d] = p.ring.f.One()
		for {
			for i, idx := range digits {
				coeffs[i] = elems[idx]
			}
			candidate, err := p.ring.FromElements(coeffs)
			if err != nil {
				return false, err
			}
			rem, err := p.Mod(candidate)
			if err != nil {
				return false, err
			}
			if rem.IsZero() {
				return false, nil
			}

			i := 0
			for ; i < d; i++ {
				digits[i]++
				if digits[i] < q {
					break
				}
				digits[i] = 0
			}
			if i == d {
				break
			}
		}
	}
	return true, nil
}

func (p Polynomial) irreducibleByRabin() (bool, error) {
	n := p.Degree()
	q := p.ring.f.Order()
	x := p.ring.X()

	factors, err := arith.Factor(big.NewInt(int64(n)))
	if err != nil {
		return false, err
	}
	checkpoints := make(map[int]bool, len(factors))
	for _, pp := range factors {
		checkpoints[n/int(pp.Prime.Int64())] = true
	}

	h := x
	for i := 1; i <= n; i++ {
		if h, err = h.PowMod(q, p); err != nil {
			return false, err
		}
		if !checkpoints[i] {
			continue
		}
		diff, err := h.Sub(x)
		if err != nil {
			return false, err
		}
		g, err := diff.GCD(p)
		if err != nil {
			return false, err
		}
		if g.Degree() > 0 {
			return false, nil
		}
	}
	return h.Equal(x), nil
}
