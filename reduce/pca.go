// Package reduce: per-view PCA whitening strategy.
package reduce

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// pcaReduce whitens each centered view independently: thin SVD, keep the
// top-p left singular directions, scale each kept direction by
// sqrt(samples-1)/σ_k so the reduced components carry unit sample variance.
//
// Contracts:
//   - K rows are mutually orthogonal (orthonormal up to the whitening
//     scale); reduced rows are uncorrelated with variance 1.
//   - Deterministic: no random stage.
func pcaReduce(centered []*mat.Dense, p int) ([]*mat.Dense, []*mat.Dense, error) {
	n := len(centered)
	ks := make([]*mat.Dense, n)
	reduced := make([]*mat.Dense, n)

	var svd mat.SVD
	for i, xc := range centered {
		channels, samples := xc.Dims()
		if !svd.Factorize(xc, mat.SVDThin) {
			return nil, nil, ErrFactorize
		}
		vals := svd.Values(nil)
		if len(vals) < p || vals[0] == 0 || vals[p-1] <= relRankTol*vals[0] {
			return nil, nil, ErrRankDeficient
		}
		var u mat.Dense
		svd.UTo(&u)

		k := mat.NewDense(p, channels, nil)
		for comp := 0; comp < p; comp++ {
			scale := math.Sqrt(float64(samples-1)) / vals[comp]
			for ch := 0; ch < channels; ch++ {
				k.Set(comp, ch, u.At(ch, comp)*scale)
			}
		}

		red := mat.NewDense(p, samples, nil)
		red.Mul(k, xc)
		ks[i] = k
		reduced[i] = red
	}

	return ks, reduced, nil
}
