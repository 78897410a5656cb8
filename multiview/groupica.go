// Package multiview - GroupICA: pooled separation with back-projection.
//
// Pipeline:
//
//	Stage 1 - reduce every view to the shared dimension p.
//	Stage 2 - stack the reduced views vertically and take a thin SVD;
//	          the pooled dataset keeps the top p right-singular directions
//	          scaled by their singular values.
//	Stage 3 - separate the pooled dataset once with the backend.
//	Stage 4 - back out per-view unmixings through the per-view p×p blocks
//	          of the left singular factor: x_i ≈ U_i·pooled, so
//	          W_i = W_pool·U_i⁺.
//
// Components come out aligned across views for free since every view maps
// onto the same pooled sources.
package multiview

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/unmix/reduce"
)

// relSpectrumTol is the relative cutoff under which singular values of
// pooled data count as numerically zero.
const relSpectrumTol = 1e-12

// GroupICA pools all reduced views into one dataset, separates it once,
// and back-projects the result into per-view unmixing matrices.
//
// Contracts:
//   - views: one channels_i × samples matrix per view, equal sample counts.
//   - opts: see Options; Algo, Init, InitW, Noise and Workers are not
//     consulted but still validated.
//
// Errors:
//   - reduce sentinels for group-shape and rank failures,
//   - option sentinels for out-of-range knobs,
//   - ErrNumerical when the pooled spectrum collapses below p directions,
//   - backend errors verbatim,
//   - ErrNoConvergence (warning, Result valid) when the pooled backend run
//     stops at its iteration cap.
//
// Complexity: one reduction pass, one (n·p)×samples thin SVD, one backend
// run, n pseudo-inversions of p×p blocks.
// Determinism: fixed by (views, opts).
func GroupICA(views []*mat.Dense, opts Options) (*Result, error) {
	p, err := resolveComponents(views, opts.Components)
	if err != nil {
		return nil, err
	}
	if err = validateOptions(opts, len(views), p); err != nil {
		return nil, err
	}

	seed := seedOrDefault(opts.Seed)
	ropts := reduce.DefaultOptions()
	ropts.Method = opts.Reduction
	ropts.Seed = deriveSeed(seed, streamReduce)
	ks, red, err := reduce.Reduce(views, p, ropts)
	if err != nil {
		return nil, err
	}

	ws, s, converged, err := groupicaCore(red, newBackend(opts), seed)
	if err != nil {
		return nil, err
	}

	res := &Result{K: ks, W: ws, S: s, Converged: converged}
	if !converged {
		return res, ErrNoConvergence
	}

	return res, nil
}

// groupicaCore pools already-reduced views, separates once and
// back-projects. Shared by GroupICA and the MultiViewICA warm start.
func groupicaCore(red []*mat.Dense, backend Backend, seed uint64) ([]*mat.Dense, *mat.Dense, bool, error) {
	n := len(red)
	p, samples := red[0].Dims()

	// Vertical stack of all reduced views: (n·p) × samples.
	stack := mat.NewDense(n*p, samples, nil)
	for i, x := range red {
		for r := 0; r < p; r++ {
			copy(stack.RawRowView(i*p+r), x.RawRowView(r))
		}
	}

	var svd mat.SVD
	if !svd.Factorize(stack, mat.SVDThin) {
		return nil, nil, false, ErrNumerical
	}
	vals := svd.Values(nil)
	if len(vals) < p || vals[0] <= 0 || vals[p-1] <= relSpectrumTol*vals[0] {
		return nil, nil, false, ErrNumerical
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// Pooled dataset: row k is the k-th right-singular direction scaled by
	// its singular value.
	pooled := mat.NewDense(p, samples, nil)
	for k := 0; k < p; k++ {
		row := pooled.RawRowView(k)
		mat.Col(row, k, &v)
		floats.Scale(vals[k], row)
	}

	wPool, s, converged, err := backend.Estimate(pooled, deriveSeed(seed, streamPooled))
	if err != nil {
		return nil, nil, false, err
	}

	// Back-projection through each view's block of the left factor.
	ws := make([]*mat.Dense, n)
	for i := 0; i < n; i++ {
		block := u.Slice(i*p, (i+1)*p, 0, p).(*mat.Dense)
		inv, pErr := pinvSquare(block)
		if pErr != nil {
			return nil, nil, false, pErr
		}
		w := mat.NewDense(p, p, nil)
		w.Mul(wPool, inv)
		ws[i] = w
	}

	return ws, s, converged, nil
}

// pinvSquare returns the Moore-Penrose pseudoinverse of a square matrix,
// zeroing singular values below relSpectrumTol relative to the largest.
func pinvSquare(a *mat.Dense) (*mat.Dense, error) {
	p, _ := a.Dims()

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, ErrNumerical
	}
	vals := svd.Values(nil)
	if len(vals) == 0 || vals[0] <= 0 || math.IsNaN(vals[0]) {
		return nil, ErrNumerical
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	sigInv := mat.NewDense(p, p, nil)
	floor := relSpectrumTol * vals[0]
	for k := 0; k < len(vals); k++ {
		if vals[k] > floor {
			sigInv.Set(k, k, 1/vals[k])
		}
	}

	var tmp mat.Dense
	tmp.Mul(&v, sigInv)
	out := mat.NewDense(p, p, nil)
	out.Mul(&tmp, u.T())

	return out, nil
}
