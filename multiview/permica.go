// Package multiview - PermICA: independent estimation plus exact alignment.
//
// Pipeline:
//
//	Stage 1 - reduce every view to the shared dimension p.
//	Stage 2 - separate each reduced view independently with the backend,
//	          each run on its own derived seed.
//	Stage 3 - align components across views: Hungarian matching on source
//	          correlations with sign resolution and consensus sweeps.
//	Stage 4 - average the aligned sources into the shared estimate.
//
// PermICA carries no noise model; it is the fast baseline and the default
// warm start of MultiViewICA.
package multiview

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/unmix/reduce"
)

// PermICA separates each view independently and aligns the results into a
// shared component order.
//
// Contracts:
//   - views: one channels_i × samples matrix per view, equal sample counts.
//   - opts: see Options; Algo, Init, InitW, Noise and Workers are not
//     consulted but still validated.
//
// Errors:
//   - reduce sentinels for group-shape and rank failures,
//   - option sentinels for out-of-range knobs,
//   - backend errors verbatim (fastica sentinels for the default backend),
//   - ErrNoConvergence (warning, Result valid) when any backend run stops
//     at its iteration cap.
//
// Complexity: one reduction pass plus n backend runs plus O(p³) matching
// per alignment sweep.
// Determinism: fixed by (views, opts); every view runs on a seed derived
// from Options.Seed.
func PermICA(views []*mat.Dense, opts Options) (*Result, error) {
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

	ws, s, converged, err := permicaCore(red, newBackend(opts), seed)
	if err != nil {
		return nil, err
	}

	res := &Result{K: ks, W: ws, S: s, Converged: converged}
	if !converged {
		return res, ErrNoConvergence
	}

	return res, nil
}

// permicaCore runs the backend per reduced view and aligns the estimates.
// Shared by PermICA and the MultiViewICA warm start, so it works strictly
// on already-reduced data.
func permicaCore(red []*mat.Dense, backend Backend, seed uint64) (ws []*mat.Dense, s *mat.Dense, converged bool, err error) {
	n := len(red)
	ws = make([]*mat.Dense, n)
	sources := make([]*mat.Dense, n)
	converged = true
	for i, x := range red {
		w, src, ok, bErr := backend.Estimate(x, deriveSeed(seed, streamViewBase+uint64(i)))
		if bErr != nil {
			return nil, nil, false, bErr
		}
		ws[i], sources[i] = w, src
		converged = converged && ok
	}

	orders, signs, aErr := alignGroup(sources)
	if aErr != nil {
		return nil, nil, false, aErr
	}

	alignedW, alignedS := applyAlignment(ws, sources, orders, signs)

	return alignedW, meanSources(alignedS), converged, nil
}
