// Package fastica: options, result and sentinel errors.
package fastica

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/unmix/contrast"
)

// Defaults - single source of truth for the zero-value behavior.
const (
	// DefaultMaxIter caps the fixed-point iteration count.
	DefaultMaxIter = 200

	// DefaultTol is the rotation-movement threshold: the iteration stops
	// when every component direction moves by less than this amount.
	DefaultTol = 1e-4

	// DefaultSeed is used when Options.Seed == 0, keeping the zero-value
	// configuration deterministic.
	DefaultSeed uint64 = 1
)

// Options configures Estimate.
//
// Fields:
//   - Fun     — contrast selecting the score nonlinearity (default Logcosh).
//   - MaxIter — iteration cap; reaching it yields ErrNoConvergence (warning).
//   - Tol     — convergence threshold on the rotation movement
//     max_k ||⟨w_k', w_k⟩| − 1|.
//   - Seed    — initialization seed; 0 selects DefaultSeed.
type Options struct {
	Fun     contrast.Fun
	MaxIter int
	Tol     float64
	Seed    uint64
}

// DefaultOptions returns the canonical configuration: logcosh score,
// DefaultMaxIter iterations, DefaultTol threshold, default seed.
func DefaultOptions() Options {
	return Options{
		Fun:     contrast.Logcosh,
		MaxIter: DefaultMaxIter,
		Tol:     DefaultTol,
		Seed:    DefaultSeed,
	}
}

// Result carries the estimate for one view.
//
// Fields:
//   - W — unmixing matrix (p × p), whitening folded in: S = W · x_centered.
//   - S — estimated sources (p × samples), unit sample variance per row.
//   - Iterations — fixed-point iterations actually run.
//   - Converged  — whether the rotation movement fell below Tol.
type Result struct {
	W          *mat.Dense
	S          *mat.Dense
	Iterations int
	Converged  bool
}

// ErrNilInput is returned when the input matrix is nil or empty.
var ErrNilInput = errors.New("fastica: nil or empty input")

// ErrNonFinite is returned when the input carries NaN or ±Inf entries.
var ErrNonFinite = errors.New("fastica: non-finite input")

// ErrBadIter is returned when Options.MaxIter is not positive.
var ErrBadIter = errors.New("fastica: non-positive iteration cap")

// ErrBadTol is returned when Options.Tol is not positive.
var ErrBadTol = errors.New("fastica: non-positive tolerance")

// ErrDegenerate is returned when whitening or decorrelation meets a
// numerically singular matrix (zero-variance or linearly dependent rows).
// Fatal: no usable result.
var ErrDegenerate = errors.New("fastica: degenerate covariance")

// ErrNoConvergence is returned when MaxIter is exhausted before the
// rotation settles. Warning-level: the Result is still returned and the
// last iterate is usually usable; re-run with a different seed or a larger
// cap for a certificate.
var ErrNoConvergence = errors.New("fastica: no convergence within iteration cap")
