// Package multiview_test checks how the density surrogate steers the
// joint refinement: a prior matching the source tails separates, a
// mismatched one must not, and Gaussian sources stay numerically sane.
package multiview_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/unmix/contrast"
	"github.com/katalvlaran/unmix/multiview"
)

// randomStarts builds one Gaussian (non-orthogonal) p×p matrix per view,
// shared across subtests so every density starts from the same point.
func randomStarts(n, p int, seed uint64) []*mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	ws := make([]*mat.Dense, n)
	for i := range ws {
		ws[i] = gaussianDense(p, p, rng)
	}

	return ws
}

// densityChannels keeps every view square: no information lost to
// reduction, so the density term alone decides the outcome.
func densityChannels() []int {
	ch := make([]int, densityViews)
	for i := range ch {
		ch[i] = densityComponents
	}

	return ch
}

// runDensity performs one MultiViewICA run from shared random starts.
func runDensity(t *testing.T, views []*mat.Dense, fun contrast.Fun, starts []*mat.Dense) *multiview.Result {
	t.Helper()
	opts := multiview.DefaultOptions()
	opts.Components = densityComponents
	opts.Fun = fun
	opts.Init = multiview.InitCustom
	opts.InitW = starts
	opts.Seed = seedRun

	res, err := multiview.MultiViewICA(views, opts)
	requireUsable(t, res, err)

	return res
}

// TestDensity_SuperGaussianSources plants heavy-tailed Laplace sources.
// The heavy-tailed priors (logcosh, abs) must separate from a random
// start; the light-tailed quartic prior must stay mixed on every view.
func TestDensity_SuperGaussianSources(t *testing.T) {
	s := laplaceSources(densityComponents, densitySamples, seedSources+2)
	views, mixings := mixedViews(t, s, densityChannels(), recoveryNoise, seedMixing+2)
	starts := randomStarts(densityViews, densityComponents, seedRun+2)

	cases := []struct {
		name      string
		fun       contrast.Fun
		separates bool
	}{
		{"Logcosh separates", contrast.Logcosh, true},
		{"Abs separates", contrast.Abs, true},
		{"Quartic stays mixed", contrast.Quartic, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := runDensity(t, views, tc.fun, starts)
			worst := sourceError(t, res.S, s)
			for i := range views {
				d := viewAmari(t, res, mixings, i)
				if tc.separates {
					assert.Lessf(t, d, 0.3, "view %d: Amari distance %.4f, matched prior should separate", i, d)
				} else {
					assert.Greaterf(t, d, 0.2, "view %d: Amari distance %.4f, mismatched prior must not separate", i, d)
				}
			}
			if tc.separates {
				assert.Lessf(t, worst, 0.1, "matched prior: correlation error %.4f too high", worst)
			} else {
				assert.Greaterf(t, worst, 0.2, "mismatched prior: correlation error %.4f suspiciously low", worst)
			}
		})
	}
}

// TestDensity_SubGaussianSources plants light-tailed uniform sources; the
// quartic prior matches them and must separate from a random start.
func TestDensity_SubGaussianSources(t *testing.T) {
	s := uniformSources(densityComponents, densitySamples, seedSources+3)
	views, mixings := mixedViews(t, s, densityChannels(), recoveryNoise, seedMixing+3)
	starts := randomStarts(densityViews, densityComponents, seedRun+3)

	res := runDensity(t, views, contrast.Quartic, starts)

	for i := range views {
		d := viewAmari(t, res, mixings, i)
		assert.Lessf(t, d, 0.3, "view %d: Amari distance %.4f, quartic should separate sub-Gaussian sources", i, d)
	}
	worst := sourceError(t, res.S, s)
	assert.Lessf(t, worst, 0.1, "quartic on sub-Gaussian sources: correlation error %.4f too high", worst)
}

// TestDensity_GaussianSourcesStaySane plants Gaussian sources, which no
// density can separate in principle; the run must still finish without a
// fatal error and return finite estimates.
func TestDensity_GaussianSourcesStaySane(t *testing.T) {
	s := gaussianSources(densityComponents, densitySamples, seedSources+4)
	views, _ := mixedViews(t, s, densityChannels(), recoveryNoise, seedMixing+4)

	opts := multiview.DefaultOptions()
	opts.Components = densityComponents
	opts.Seed = seedRun

	res, err := multiview.MultiViewICA(views, opts)
	requireUsable(t, res, err)

	require.True(t, allFinite(res.S), "shared sources must stay finite on Gaussian data")
	for i, w := range res.W {
		assert.Truef(t, allFinite(w), "view %d: unmixing must stay finite on Gaussian data", i)
	}
}
