package group

import (
	"fmt"
	"math/big"

	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog"

	"github.com/cryptolab/algebra/arith"
	"github.com/cryptolab/algebra/logger"
)

const (
	// defaultIterationCap bounds exhaustive walks: order searches, orbits,
	// brute-force logs and baby-step tables.
	defaultIterationCap = 1 << 20

	// defaultCacheSize is the number of baby-step tables kept per engine.
	defaultCacheSize = 16
)

type config struct {
	iterationCap uint64
	cacheSize    int
}

// Option configures an Engine.
type Option func(*config) error

// WithIterationCap overrides the exhaustive-search bound.
func WithIterationCap(n uint64) Option {
	return func(cfg *config) error {
		if n == 0 {
			return fmt.Errorf("iteration cap must be positive")
		}
		cfg.iterationCap = n
		return nil
	}
}

// WithCacheSize overrides how many baby-step tables the engine retains.
func WithCacheSize(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return fmt.Errorf("cache size must be positive, got %d", n)
		}
		cfg.cacheSize = n
		return nil
	}
}

// Engine runs order and discrete-logarithm computations over any Element
// implementation. Memoized baby-step tables are engine-local, so
// independently constructed engines never share state. An Engine is safe
// for concurrent use.
type Engine struct {
	cap    uint64
	babies *lru.Cache
	log    zerolog.Logger
}

// NewEngine returns an engine with the given options applied.
func NewEngine(opts ...Option) (*Engine, error) {
	cfg := config{
		iterationCap: defaultIterationCap,
		cacheSize:    defaultCacheSize,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	cache, err := lru.New(cfg.cacheSize)
	if err != nil {
		return nil, err
	}
	return &Engine{
		cap:    cfg.iterationCap,
		babies: cache,
		log:    logger.Component("group"),
	}, nil
}

// Pow combines g with itself k times by square-and-multiply: the identity
// for k = 0, the inverse chain for k < 0.
func (e *Engine) Pow(g Element, k *big.Int) (Element, error) {
	if k.Sign() < 0 {
		inv, err := g.Inverse()
		if err != nil {
			return nil, err
		}
		return e.Pow(inv, new(big.Int).Neg(k))
	}
	acc := g.Group().Identity()
	sq := g
	var err error
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			if acc, err = acc.Combine(sq); err != nil {
				return nil, err
			}
		}
		if sq, err = sq.Combine(sq); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// Order returns the least k > 0 with g^k equal to the identity. With a
// known group order the divisors are tried in ascending order; without one
// the element is combined with itself until the identity appears, capped by
// the engine's iteration limit.
func (e *Engine) Order(g Element, groupOrder *big.Int) (*big.Int, error) {
	if groupOrder != nil {
		if groupOrder.Sign() <= 0 {
			return nil, fmt.Errorf("group order must be positive, got %v", groupOrder)
		}
		divs, err := arith.Divisors(groupOrder)
		if err != nil {
			return nil, err
		}
		for _, d := range divs {
			p, err := e.Pow(g, d)
			if err != nil {
				return nil, err
			}
			if p.IsIdentity() {
				return new(big.Int).Set(d), nil
			}
		}
		return nil, fmt.Errorf("%w for %v among divisors of %v", ErrOrderNotFound, g, groupOrder)
	}

	if g.IsIdentity() {
		return big.NewInt(1), nil
	}
	acc := g
	var err error
	for k := uint64(1); k <= e.cap; k++ {
		if acc.IsIdentity() {
			return new(big.Int).SetUint64(k), nil
		}
		if acc, err = acc.Combine(g); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w for %v within %d combinations", ErrOrderNotFound, g, e.cap)
}

// IsGenerator reports whether g generates the whole group of the given
// order.
func (e *Engine) IsGenerator(g Element, groupOrder *big.Int) (bool, error) {
	ord, err := e.Order(g, groupOrder)
	if err != nil {
		return false, err
	}
	return ord.Cmp(groupOrder) == 0, nil
}

// Generators enumerates the group and returns every generator, in
// enumeration order. For a cyclic group the count equals phi of the group
// order.
func (e *Engine) Generators(grp Group) ([]Element, error) {
	n := grp.Order()
	if n == nil {
		return nil, fmt.Errorf("generator search needs a known group order for %v", grp)
	}
	elems, err := grp.Elements()
	if err != nil {
		return nil, err
	}
	var gens []Element
	for _, g := range elems {
		ok, err := e.IsGenerator(g, n)
		if err != nil {
			return nil, err
		}
		if ok {
			gens = append(gens, g)
		}
	}
	return gens, nil
}

func (e *Engine) firstGenerator(grp Group, n *big.Int) (Element, error) {
	elems, err := grp.Elements()
	if err != nil {
		return nil, err
	}
	for _, g := range elems {
		ok, err := e.IsGenerator(g, n)
		if err != nil {
			return nil, err
		}
		if ok {
			return g, nil
		}
	}
	return nil, fmt.Errorf("%v has no generator, it is not cyclic", grp)
}

func sameGroup(a, b Element) error {
	if a.Group().String() != b.Group().String() {
		return fmt.Errorf("%w: %v and %v", ErrMismatchedGroups, a.Group(), b.Group())
	}
	return nil
}

// BruteLog finds the least k in [0, order) with base^k = target by
// sequential search. The walk is additionally capped by the engine's
// iteration limit, reporting arith.ErrBoundExceeded when the cap cuts the
// range short.
func (e *Engine) BruteLog(base, target Element, order *big.Int) (*big.Int, error) {
	if err := sameGroup(base, target); err != nil {
		return nil, err
	}
	if order == nil || order.Sign() <= 0 {
		return nil, fmt.Errorf("group order must be positive, got %v", order)
	}

	limit := e.cap
	capped := true
	if order.IsUint64() && order.Uint64() <= e.cap {
		limit = order.Uint64()
		capped = false
	}

	acc := base.Group().Identity()
	var err error
	for k := uint64(0); k < limit; k++ {
		if acc.Equal(target) {
			return new(big.Int).SetUint64(k), nil
		}
		if acc, err = acc.Combine(base); err != nil {
			return nil, err
		}
	}
	if capped {
		return nil, fmt.Errorf("%w: brute-force log searched %d of %v exponents", arith.ErrBoundExceeded, limit, order)
	}
	return nil, fmt.Errorf("%w: no k below %v with %v^k = %v", ErrNotFound, order, base, target)
}

type babyTable struct {
	m     uint64
	steps map[string]uint64
}

// BabyStepGiantStep solves base^k = target in O(sqrt(order)) time and
// space, returning the least non-negative solution below order. The
// baby-step table is cached per (group, base, order), so repeated lookups
// against the same base cost only the giant steps.
func (e *Engine) BabyStepGiantStep(base, target Element, order *big.Int) (*big.Int, error) {
	if err := sameGroup(base, target); err != nil {
		return nil, err
	}
	if order == nil || order.Sign() <= 0 {
		return nil, fmt.Errorf("group order must be positive, got %v", order)
	}

	root := new(big.Int).Sqrt(order)
	if new(big.Int).Mul(root, root).Cmp(order) < 0 {
		root.Add(root, big.NewInt(1))
	}
	if !root.IsUint64() || root.Uint64() > e.cap {
		return nil, fmt.Errorf("%w: baby-step table needs %v entries, cap is %d", arith.ErrBoundExceeded, root, e.cap)
	}
	m := root.Uint64()

	key := base.Group().String() + "|" + base.String() + "|" + order.String()
	var tbl babyTable
	if cached, ok := e.babies.Get(key); ok {
		tbl = cached.(babyTable)
	} else {
		tbl = babyTable{m: m, steps: make(map[string]uint64, m)}
		acc := base.Group().Identity()
		var err error
		for j := uint64(0); j < m; j++ {
			if _, seen := tbl.steps[acc.String()]; !seen {
				tbl.steps[acc.String()] = j
			}
			if acc, err = acc.Combine(base); err != nil {
				return nil, err
			}
		}
		e.babies.Add(key, tbl)
		e.log.Debug().Str("base", base.String()).Uint64("entries", m).
			Msg("built baby-step table")
	}

	inv, err := base.Inverse()
	if err != nil {
		return nil, err
	}
	stride, err := e.Pow(inv, new(big.Int).SetUint64(m))
	if err != nil {
		return nil, err
	}

	gamma := target
	for i := uint64(0); i < m; i++ {
		if j, ok := tbl.steps[gamma.String()]; ok {
			k := new(big.Int).SetUint64(i*m + j)
			if k.Cmp(order) < 0 {
				return k, nil
			}
		}
		if gamma, err = gamma.Combine(stride); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: no k below %v with %v^k = %v", ErrNotFound, order, base, target)
}

// PohligHellman solves base^k = target by factoring the group order,
// solving the sub-logarithm in each prime-power component with baby-step
// giant-step, and recombining with the Chinese remainder theorem.
func (e *Engine) PohligHellman(base, target Element, order *big.Int) (*big.Int, error) {
	if order == nil || order.Sign() <= 0 {
		return nil, fmt.Errorf("group order must be positive, got %v", order)
	}
	factors, err := arith.Factor(order)
	if err != nil {
		return nil, err
	}
	return e.PohligHellmanWithFactors(base, target, order, factors)
}

// PohligHellmanWithFactors is PohligHellman with a caller-supplied
// factorization of the group order.
func (e *Engine) PohligHellmanWithFactors(base, target Element, order *big.Int, factors []arith.PrimePower) (*big.Int, error) {
	residues := make([]*big.Int, 0, len(factors))
	moduli := make([]*big.Int, 0, len(factors))

	for _, pp := range factors {
		pe := new(big.Int).Exp(pp.Prime, big.NewInt(int64(pp.Exp)), nil)
		cofactor := new(big.Int).Quo(order, pe)

		gi, err := e.Pow(base, cofactor)
		if err != nil {
			return nil, err
		}
		hi, err := e.Pow(target, cofactor)
		if err != nil {
			return nil, err
		}
		xi, err := e.BabyStepGiantStep(gi, hi, pe)
		if err != nil {
			return nil, err
		}
		e.log.Debug().Str("prime", pp.Prime.String()).Int("exp", pp.Exp).
			Str("residue", xi.String()).Msg("solved prime-power component")

		residues = append(residues, xi)
		moduli = append(moduli, pe)
	}

	return arith.CRT(residues, moduli)
}

// SubgroupGeneratedBy walks the orbit of g, returning the cyclic subgroup
// with its elements in visiting order: the identity first, then ascending
// powers of g. The walk is capped by the engine's iteration limit.
func (e *Engine) SubgroupGeneratedBy(g Element) (*Subgroup, error) {
	elements := []Element{g.Group().Identity()}
	acc := g
	var err error
	for !acc.IsIdentity() {
		elements = append(elements, acc)
		if uint64(len(elements)) > e.cap {
			return nil, fmt.Errorf("%w: orbit of %v exceeds %d elements", ErrOrderNotFound, g, e.cap)
		}
		if acc, err = acc.Combine(g); err != nil {
			return nil, err
		}
	}
	return &Subgroup{generator: g, elements: elements}, nil
}

// AllSubgroups returns one subgroup per divisor of the group order in
// ascending order of divisor, using the fact that a cyclic group of order
// n has exactly one subgroup of order d per divisor d, generated by
// g^(n/d) for any generator g.
func (e *Engine) AllSubgroups(grp Group) ([]*Subgroup, error) {
	n := grp.Order()
	if n == nil {
		return nil, fmt.Errorf("subgroup enumeration needs a known group order for %v", grp)
	}
	g, err := e.firstGenerator(grp, n)
	if err != nil {
		return nil, err
	}
	divs, err := arith.Divisors(n)
	if err != nil {
		return nil, err
	}

	subs := make([]*Subgroup, 0, len(divs))
	for _, d := range divs {
		h, err := e.Pow(g, new(big.Int).Quo(n, d))
		if err != nil {
			return nil, err
		}
		sub, err := e.SubgroupGeneratedBy(h)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}
