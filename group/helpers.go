package group

import "math/big"

// The package-level helpers run one computation on a fresh default engine,
// so nothing is memoized across calls. Construct an Engine directly to
// reuse baby-step tables or to override iteration caps.

// Order is Engine.Order on a fresh engine.
func Order(g Element, groupOrder *big.Int) (*big.Int, error) {
	e, err := NewEngine()
	if err != nil {
		return nil, err
	}
	return e.Order(g, groupOrder)
}

// IsGenerator is Engine.IsGenerator on a fresh engine.
func IsGenerator(g Element, groupOrder *big.Int) (bool, error) {
	e, err := NewEngine()
	if err != nil {
		return false, err
	}
	return e.IsGenerator(g, groupOrder)
}

// Generators is Engine.Generators on a fresh engine.
func Generators(grp Group) ([]Element, error) {
	e, err := NewEngine()
	if err != nil {
		return nil, err
	}
	return e.Generators(grp)
}

// BruteLog is Engine.BruteLog on a fresh engine.
func BruteLog(base, target Element, order *big.Int) (*big.Int, error) {
	e, err := NewEngine()
	if err != nil {
		return nil, err
	}
	return e.BruteLog(base, target, order)
}

// BabyStepGiantStep is Engine.BabyStepGiantStep on a fresh engine.
func BabyStepGiantStep(base, target Element, order *big.Int) (*big.Int, error) {
	e, err := NewEngine()
	if err != nil {
		return nil, err
	}
	return e.BabyStepGiantStep(base, target, order)
}

// PohligHellman is Engine.PohligHellman on a fresh engine.
func PohligHellman(base, target Element, order *big.Int) (*big.Int, error) {
	e, err := NewEngine()
	if err != nil {
		return nil, err
	}
	return e.PohligHellman(base, target, order)
}

// SubgroupGeneratedBy is Engine.SubgroupGeneratedBy on a fresh engine.
func SubgroupGeneratedBy(g Element) (*Subgroup, error) {
	e, err := NewEngine()
	if err != nil {
		return nil, err
	}
	return e.SubgroupGeneratedBy(g)
}

// AllSubgroups is Engine.AllSubgroups on a fresh engine.
func AllSubgroups(grp Group) ([]*Subgroup, error) {
	e, err := NewEngine()
	if err != nil {
		return nil, err
	}
	return e.AllSubgroups(grp)
}
