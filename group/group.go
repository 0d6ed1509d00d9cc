// Package group implements a generic engine over finite cyclic groups:
// element orders, generator search, subgroups and cosets, and the discrete
// logarithm algorithms (exhaustive search, baby-step giant-step,
// Pohlig-Hellman). The engine is written once against a small capability
// interface, so modular unit groups, additive groups and elliptic curve
// points all share it.
package group

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/cryptolab/algebra/arith"
)

var (
	// ErrNotFound reports an exhausted discrete-logarithm search: no
	// exponent in the requested range satisfies the equation.
	ErrNotFound = errors.New("discrete logarithm not found")

	// ErrOrderNotFound reports an order search that hit its iteration cap,
	// a bound-exceeded condition rather than a proof of non-existence.
	ErrOrderNotFound = fmt.Errorf("%w: element order not found", arith.ErrBoundExceeded)

	// ErrMismatchedGroups rejects combining elements of different groups.
	ErrMismatchedGroups = errors.New("mismatched groups")
)

// Element is one group element. Implementations must be immutable, and
// String must be a stable canonical representation: equal elements render
// identically, since the engine keys lookup tables on it.
type Element interface {
	// Group returns the owning group.
	Group() Group

	// Combine applies the group operation to the receiver and o.
	Combine(o Element) (Element, error)

	// Inverse returns the group inverse.
	Inverse() (Element, error)

	// IsIdentity reports whether the element is the identity.
	IsIdentity() bool

	Equal(o Element) bool
	String() string
}

// Group is a finite group representation. String must distinguish groups
// with different structure (it participates in engine cache keys).
type Group interface {
	// Identity returns the identity element.
	Identity() Element

	// Order returns the number of elements, or nil when unknown.
	Order() *big.Int

	// Elements enumerates the group when tractable, reporting
	// arith.ErrBoundExceeded beyond the enumeration bound.
	Elements() ([]Element, error)

	String() string
}
