// Package multiview - default single-view backend.
//
// The in-house backend wraps fastica.Estimate, forwarding the caller's
// iteration cap and tolerance plus a derived per-call seed. The joint
// density (Options.Fun) never reaches the backend: per-view estimation
// always runs the logcosh score, the robust general-purpose choice for
// baselines and warm starts.
package multiview

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/unmix/fastica"
)

// icaBackend adapts fastica.Estimate to the Backend contract.
type icaBackend struct {
	maxIter int
	tol     float64
}

// newBackend returns opts.Backend when supplied, otherwise the in-house
// fastica backend configured from opts.
func newBackend(opts Options) Backend {
	if opts.Backend != nil {
		return opts.Backend
	}

	return icaBackend{maxIter: opts.MaxIter, tol: opts.Tol}
}

// Estimate implements Backend. Non-convergence surfaces through the flag,
// not the error: a nil error with converged=false is a usable estimate.
func (b icaBackend) Estimate(x *mat.Dense, seed uint64) (*mat.Dense, *mat.Dense, bool, error) {
	fopts := fastica.DefaultOptions()
	fopts.MaxIter = b.maxIter
	fopts.Tol = b.tol
	fopts.Seed = seed

	res, err := fastica.Estimate(x, fopts)
	switch {
	case errors.Is(err, fastica.ErrNoConvergence):
		return res.W, res.S, false, nil
	case err != nil:
		return nil, nil, false, err
	}

	return res.W, res.S, res.Converged, nil
}
