// Package fastica: the symmetric fixed-point estimator.
//
// Stage 0 - validate input and options (eager, allocation-free).
// Stage 1 - center rows and whiten: Z = C^{-1/2} · x_centered with C the
// sample covariance of the rows; Z has identity covariance.
// Stage 2 - fixed point: from a seeded random orthonormal rotation R,
// repeat R ← decorrelate(E[g(RZ)Zᵀ] − diag(E[g'(RZ)])·R) until the largest
// per-component movement ||⟨r_k', r_k⟩| − 1| drops below Tol.
// Stage 3 - fold the whitening into the result: W = R · C^{-1/2}.
//
// Contracts:
//   - Deterministic for a fixed Options.Seed.
//   - S rows have unit sample variance (whitened data, orthonormal R).
//   - Non-convergence is a warning, not a failure: the caller receives the
//     last iterate together with ErrNoConvergence.
package fastica

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/unmix/contrast"
)

// relEigFloor is the relative eigenvalue threshold under which a
// covariance or decorrelation matrix counts as singular.
const relEigFloor = 1e-12

// Estimate runs the fixed-point separation on one view (p × samples).
//
// Errors: ErrNilInput, ErrNonFinite, ErrBadIter, ErrBadTol,
// contrast.ErrUnknownFun, ErrDegenerate (all fatal, nil result);
// ErrNoConvergence (warning, result returned).
func Estimate(x *mat.Dense, opts Options) (*Result, error) {
	if err := validate(x, opts); err != nil {
		return nil, err
	}
	score, err := contrast.New(opts.Fun)
	if err != nil {
		return nil, err
	}
	seed := opts.Seed
	if seed == 0 {
		seed = DefaultSeed
	}

	p, samples := x.Dims()
	xc := centerRows(x)

	// Stage 1 - whiten.
	whiten, err := invSqrtCov(xc)
	if err != nil {
		return nil, err
	}
	z := mat.NewDense(p, samples, nil)
	z.Mul(whiten, xc)

	// Stage 2 - seeded random rotation, then the fixed point.
	rng := rand.New(rand.NewSource(seed))
	rot := mat.NewDense(p, p, nil)
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			rot.Set(i, j, rng.NormFloat64())
		}
	}
	if rot, err = decorrelate(rot); err != nil {
		return nil, err
	}

	var (
		y     = mat.NewDense(p, samples, nil)
		g     = mat.NewDense(p, samples, nil)
		gz    = mat.NewDense(p, p, nil)
		next  *mat.Dense
		conv  float64
		it    int
		done  bool
		invT  = 1 / float64(samples)
		yRow  = make([]float64, samples)
		dMean = make([]float64, p)
	)
	for it = 1; it <= opts.MaxIter; it++ {
		y.Mul(rot, z)

		// E[g(y)zᵀ] and the per-component mean score derivative.
		for k := 0; k < p; k++ {
			mat.Row(yRow, k, y)
			sum := 0.0
			for t, v := range yRow {
				g.Set(k, t, score.Score(v))
				sum += score.ScoreDeriv(v)
			}
			dMean[k] = sum * invT
		}
		gz.Mul(g, z.T())
		gz.Scale(invT, gz)

		next = mat.NewDense(p, p, nil)
		for k := 0; k < p; k++ {
			for j := 0; j < p; j++ {
				next.Set(k, j, gz.At(k, j)-dMean[k]*rot.At(k, j))
			}
		}
		if next, err = decorrelate(next); err != nil {
			return nil, err
		}

		// Movement of each component direction; rows are unit vectors.
		conv = 0
		for k := 0; k < p; k++ {
			d := math.Abs(math.Abs(floats.Dot(next.RawRowView(k), rot.RawRowView(k))) - 1)
			if d > conv {
				conv = d
			}
		}
		rot = next
		if conv < opts.Tol {
			done = true

			break
		}
	}
	if it > opts.MaxIter {
		it = opts.MaxIter
	}

	// Stage 3 - fold whitening into the unmixing matrix.
	w := mat.NewDense(p, p, nil)
	w.Mul(rot, whiten)
	s := mat.NewDense(p, samples, nil)
	s.Mul(rot, z)

	res := &Result{W: w, S: s, Iterations: it, Converged: done}
	if !done {
		return res, ErrNoConvergence
	}

	return res, nil
}

// validate runs the eager checks: input → finiteness → options.
func validate(x *mat.Dense, opts Options) error {
	if x == nil {
		return ErrNilInput
	}
	r, c := x.Dims()
	if r == 0 || c == 0 {
		return ErrNilInput
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := x.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return ErrNonFinite
			}
		}
	}
	if opts.MaxIter < 1 {
		return ErrBadIter
	}
	if opts.Tol <= 0 {
		return ErrBadTol
	}

	return nil
}

// centerRows returns a copy of x with each row's mean removed.
func centerRows(x *mat.Dense) *mat.Dense {
	r, c := x.Dims()
	out := mat.NewDense(r, c, nil)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, x)
		mean := stat.Mean(row, nil)
		for j, v := range row {
			out.Set(i, j, v-mean)
		}
	}

	return out
}

// invSqrtCov returns C^{-1/2} for the row covariance of the centered xc.
func invSqrtCov(xc *mat.Dense) (*mat.Dense, error) {
	p, samples := xc.Dims()
	rows := make([][]float64, p)
	for i := range rows {
		rows[i] = make([]float64, samples)
		mat.Row(rows[i], i, xc)
	}

	denom := float64(samples - 1)
	if samples < 2 {
		denom = 1
	}
	cov := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			cov.SetSym(i, j, floats.Dot(rows[i], rows[j])/denom)
		}
	}

	return invSqrtSym(cov)
}

// decorrelate replaces w by (w·wᵀ)^{-1/2}·w, making its rows orthonormal.
func decorrelate(w *mat.Dense) (*mat.Dense, error) {
	p, _ := w.Dims()
	prod := mat.NewDense(p, p, nil)
	prod.Mul(w, w.T())
	sym := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			sym.SetSym(i, j, 0.5*(prod.At(i, j)+prod.At(j, i)))
		}
	}

	inv, err := invSqrtSym(sym)
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(p, p, nil)
	out.Mul(inv, w)

	return out, nil
}

// invSqrtSym returns A^{-1/2} via the symmetric eigendecomposition,
// rejecting spectra that cannot support the inverse square root.
func invSqrtSym(a *mat.SymDense) (*mat.Dense, error) {
	var es mat.EigenSym
	if !es.Factorize(a, true) {
		return nil, ErrDegenerate
	}
	vals := es.Values(nil) // ascending
	p := len(vals)
	if vals[p-1] <= 0 || vals[0] <= relEigFloor*vals[p-1] {
		return nil, ErrDegenerate
	}
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	scaled := mat.NewDense(p, p, nil) // E · Λ^{-1/2}
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			scaled.Set(i, j, vecs.At(i, j)/math.Sqrt(vals[j]))
		}
	}
	out := mat.NewDense(p, p, nil)
	out.Mul(scaled, vecs.T())

	return out, nil
}
