// Package reduce: deterministic shared response model (SRM) strategy.
//
// Model: X_i ≈ B_i · R with per-view orthonormal bases B_i
// (channels_i × p) and one shared response R (p × samples), fit by
// alternating least squares:
//
// Stage 1 - shared update: R = mean_i(B_iᵀ · X_i).
// Stage 2 - per-view update: B_i = orthogonal Procrustes solution of
// min ‖X_i − B_i R‖_F, i.e. U·Vᵀ from the thin SVD of X_i · Rᵀ.
//
// The bases start from seeded random orthonormal matrices (QR of a
// Gaussian draw), so the whole fit is reproducible from Options.Seed.
package reduce

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// defaultSRMSeed is used when Options.Seed == 0, keeping the zero-value
// configuration deterministic.
const defaultSRMSeed uint64 = 1

// srmReduce fits the shared response model and returns K_i = B_iᵀ
// (orthonormal rows) plus the co-registered reduced views B_iᵀ · X_i.
func srmReduce(centered []*mat.Dense, p int, opts Options) ([]*mat.Dense, []*mat.Dense, error) {
	n := len(centered)
	_, samples := centered[0].Dims()
	sweeps := opts.SRMIter
	if sweeps == 0 {
		sweeps = DefaultSRMIter
	}
	seed := opts.Seed
	if seed == 0 {
		seed = defaultSRMSeed
	}
	rng := rand.New(rand.NewSource(seed))

	// Seeded random orthonormal bases.
	bases := make([]*mat.Dense, n)
	for i, xc := range centered {
		channels, _ := xc.Dims()
		bases[i] = randomOrthonormal(channels, p, rng)
	}

	shared := mat.NewDense(p, samples, nil)
	proj := mat.NewDense(p, samples, nil)
	var svd mat.SVD
	for sweep := 0; sweep < sweeps; sweep++ {
		// Stage 1 - shared response from the current bases.
		shared.Zero()
		for i, xc := range centered {
			proj.Mul(bases[i].T(), xc)
			shared.Add(shared, proj)
		}
		shared.Scale(1/float64(n), shared)

		// Stage 2 - Procrustes refit of every basis.
		// Scratch matrices are per view: channel counts differ across views.
		for i, xc := range centered {
			var corr, u, v mat.Dense
			corr.Mul(xc, shared.T())
			if !svd.Factorize(&corr, mat.SVDThin) {
				return nil, nil, ErrFactorize
			}
			svd.UTo(&u)
			svd.VTo(&v)
			bases[i].Mul(&u, v.T())
		}
	}

	ks := make([]*mat.Dense, n)
	reduced := make([]*mat.Dense, n)
	for i, xc := range centered {
		channels, _ := xc.Dims()
		k := mat.NewDense(p, channels, nil)
		k.Copy(bases[i].T())
		red := mat.NewDense(p, samples, nil)
		red.Mul(k, xc)
		ks[i] = k
		reduced[i] = red
	}

	return ks, reduced, nil
}

// randomOrthonormal draws a channels × p matrix with orthonormal columns:
// QR of a Gaussian matrix, keeping the first p columns of Q.
func randomOrthonormal(channels, p int, rng *rand.Rand) *mat.Dense {
	g := mat.NewDense(channels, p, nil)
	for i := 0; i < channels; i++ {
		for j := 0; j < p; j++ {
			g.Set(i, j, rng.NormFloat64())
		}
	}

	var qr mat.QR
	qr.Factorize(g)
	var q mat.Dense
	qr.QTo(&q)

	out := mat.NewDense(channels, p, nil)
	out.Copy(q.Slice(0, channels, 0, p))

	return out
}
