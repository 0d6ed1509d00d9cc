// Package test provides assertion helpers shared by the package tests:
// a testify wrapper that understands field elements and curve points.
package test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cryptolab/algebra/ecc"
	"github.com/cryptolab/algebra/field"
)

// Assert embeds a testify/require object and adds algebra-aware checks
// on top of it.
type Assert struct {
	t *testing.T
	*require.Assertions
}

// NewAssert returns an Assert helper embedding a testify/require object
// for convenience.
func NewAssert(t *testing.T) *Assert {
	return &Assert{t: t, Assertions: require.New(t)}
}

// Run runs the test function fn as a subtest. The subtest is
// parametrized by the description strings descs.
func (a *Assert) Run(fn func(assert *Assert), descs ...string) {
	desc := strings.Join(descs, "/")
	a.t.Run(desc, func(t *testing.T) {
		fn(NewAssert(t))
	})
}

// Log logs using the test instance logger.
func (a *Assert) Log(v ...interface{}) {
	a.t.Log(v...)
}

// EqualElement fails the test unless both field elements are equal.
func (a *Assert) EqualElement(want, got field.Element, msgAndArgs ...interface{}) {
	a.t.Helper()
	if len(msgAndArgs) == 0 {
		msgAndArgs = []interface{}{"want %v, got %v", want, got}
	}
	a.True(want.Equal(got), msgAndArgs...)
}

// EqualPoint fails the test unless both points coincide on the same
// curve.
func (a *Assert) EqualPoint(want, got ecc.Point, msgAndArgs ...interface{}) {
	a.t.Helper()
	if len(msgAndArgs) == 0 {
		msgAndArgs = []interface{}{"want %v, got %v", want, got}
	}
	a.True(want.Equal(got), msgAndArgs...)
}

// OnCurve fails the test unless p satisfies its curve equation. The
// point at infinity passes.
func (a *Assert) OnCurve(p ecc.Point) {
	a.t.Helper()
	if p.IsInfinity() {
		return
	}
	ok, err := p.Curve().IsOnCurve(p.X(), p.Y())
	a.NoError(err)
	a.True(ok, "%v is not on %v", p, p.Curve())
}
