// Package contrast_test exercises the density surrogates via the public API.
// Focus: enum dispatch, analytic derivatives vs finite differences, and
// overflow safety of the logcosh evaluation.
package contrast_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/unmix/contrast"
)

// probePoints covers both tails, the near-linear region and zero.
var probePoints = []float64{-3.7, -1.2, -0.3, 0, 0.25, 0.9, 2.1, 4.4}

// centralDiff approximates df/dy at y with a symmetric step.
func centralDiff(f func(float64) float64, y, h float64) float64 {
	return (f(y+h) - f(y-h)) / (2 * h)
}

// TestNew_Dispatch verifies every declared Fun constructs and unknown values fail.
func TestNew_Dispatch(t *testing.T) {
	for _, f := range []contrast.Fun{contrast.Logcosh, contrast.Quartic, contrast.Abs} {
		c, err := contrast.New(f)
		require.NoError(t, err, "New(%s) must succeed", f)
		require.NotNil(t, c)
	}

	_, err := contrast.New(contrast.Fun(99))
	assert.ErrorIs(t, err, contrast.ErrUnknownFun, "out-of-range Fun must be rejected")
}

// TestFun_String covers the diagnostic names.
func TestFun_String(t *testing.T) {
	assert.Equal(t, "logcosh", contrast.Logcosh.String())
	assert.Equal(t, "quartic", contrast.Quartic.String())
	assert.Equal(t, "abs", contrast.Abs.String())
	assert.Equal(t, "unknown", contrast.Fun(-1).String())
}

// TestLogcosh_DerivativesMatchFiniteDifferences checks Score against dEval/dy
// and ScoreDeriv against dScore/dy on smooth probe points.
func TestLogcosh_DerivativesMatchFiniteDifferences(t *testing.T) {
	c, err := contrast.New(contrast.Logcosh)
	require.NoError(t, err)

	const h = 1e-5
	for _, y := range probePoints {
		assert.InDelta(t, centralDiff(c.Eval, y, h), c.Score(y), 1e-6,
			"Score(%v) must match dEval/dy", y)
		assert.InDelta(t, centralDiff(c.Score, y, h), c.ScoreDeriv(y), 1e-6,
			"ScoreDeriv(%v) must match dScore/dy", y)
	}
}

// TestQuartic_DerivativesMatchFiniteDifferences does the same for the
// sub-Gaussian surrogate, plus exact spot values.
func TestQuartic_DerivativesMatchFiniteDifferences(t *testing.T) {
	c, err := contrast.New(contrast.Quartic)
	require.NoError(t, err)

	const h = 1e-5
	for _, y := range probePoints {
		assert.InDelta(t, centralDiff(c.Eval, y, h), c.Score(y), 1e-5,
			"Score(%v) must match dEval/dy", y)
		assert.InDelta(t, centralDiff(c.Score, y, h), c.ScoreDeriv(y), 1e-4,
			"ScoreDeriv(%v) must match dScore/dy", y)
	}

	assert.InDelta(t, 4.0, c.Eval(2), 1e-12)
	assert.InDelta(t, 8.0, c.Score(2), 1e-12)
	assert.InDelta(t, 12.0, c.ScoreDeriv(2), 1e-12)
}

// TestAbs_PiecewiseValues verifies the Laplace surrogate's piecewise contract,
// including the subgradient midpoint at zero.
func TestAbs_PiecewiseValues(t *testing.T) {
	c, err := contrast.New(contrast.Abs)
	require.NoError(t, err)

	assert.Equal(t, 3.0, c.Eval(-3))
	assert.Equal(t, 2.5, c.Eval(2.5))
	assert.Equal(t, -1.0, c.Score(-0.001))
	assert.Equal(t, 1.0, c.Score(7))
	assert.Equal(t, 0.0, c.Score(0), "Score(0) is the subgradient midpoint")
	assert.Equal(t, 0.0, c.ScoreDeriv(-4))
	assert.Equal(t, 0.0, c.ScoreDeriv(12))
}

// TestLogcosh_LargeArgumentStable ensures Eval stays finite where the naive
// log(cosh(y)) overflows, and agrees with the asymptote |y| - log 2.
func TestLogcosh_LargeArgumentStable(t *testing.T) {
	c, err := contrast.New(contrast.Logcosh)
	require.NoError(t, err)

	for _, y := range []float64{710, 5e4, -3e7} {
		v := c.Eval(y)
		require.False(t, math.IsInf(v, 0), "Eval(%v) must stay finite", y)
		require.False(t, math.IsNaN(v))
		assert.InDelta(t, math.Abs(y)-math.Ln2, v, 1e-9,
			"Eval(%v) must follow the |y|-log2 asymptote", y)
	}

	// Symmetry holds at every scale.
	for _, y := range probePoints {
		assert.InDelta(t, c.Eval(y), c.Eval(-y), 1e-15)
	}
}
