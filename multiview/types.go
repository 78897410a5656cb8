// Package multiview - core types, enums, options and sentinel errors.
//
// This file defines the shared vocabulary of the package:
//
//   - Algo / InitMethod enums with readable String() forms,
//   - Options with conservative defaults (DefaultOptions),
//   - Result, the uniform output of every separator,
//   - Backend, the pluggable single-view separator contract,
//   - sentinel errors for strict, wrap-free failure signaling.
//
// Conventions:
//   - Views are row-major matrices: one row per channel, one column per
//     sample; every view shares the same sample count.
//   - Warning-level sentinels (ErrNoConvergence) accompany a non-nil,
//     fully-populated Result. Fatal sentinels return a nil Result.
package multiview

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/unmix/contrast"
	"github.com/katalvlaran/unmix/reduce"
)

// Algo selects the separator executed by Solve.
type Algo int

const (
	// AlgoMultiViewICA runs the joint noisy-ICA refinement (the default).
	AlgoMultiViewICA Algo = iota
	// AlgoPermICA runs per-view estimation followed by cross-view alignment.
	AlgoPermICA
	// AlgoGroupICA pools reduced views and separates the pooled data once.
	AlgoGroupICA
)

// String returns a human-readable algorithm name.
func (a Algo) String() string {
	switch a {
	case AlgoMultiViewICA:
		return "MultiViewICA"
	case AlgoPermICA:
		return "PermICA"
	case AlgoGroupICA:
		return "GroupICA"
	default:
		return "UnknownAlgo"
	}
}

// InitMethod selects how MultiViewICA obtains its initial unmixing matrices.
type InitMethod int

const (
	// InitPermICA warm-starts from a PermICA pass on the reduced views (default).
	InitPermICA InitMethod = iota
	// InitGroupICA warm-starts from a GroupICA pass on the reduced views.
	InitGroupICA
	// InitRandom draws one random orthogonal matrix per view from the seed.
	InitRandom
	// InitCustom uses caller-supplied matrices from Options.InitW verbatim.
	InitCustom
)

// String returns a human-readable initialization name.
func (im InitMethod) String() string {
	switch im {
	case InitPermICA:
		return "PermICA"
	case InitGroupICA:
		return "GroupICA"
	case InitRandom:
		return "Random"
	case InitCustom:
		return "Custom"
	default:
		return "UnknownInit"
	}
}

// Default knobs. Values mirror the package's reference configuration and
// favor robustness over speed.
const (
	// DefaultMaxIter caps the outer block-coordinate iterations.
	DefaultMaxIter = 1000
	// DefaultTol stops the joint loop once the largest relative-gradient
	// entry across views drops below it.
	DefaultTol = 1e-3
	// DefaultNoise is the initial per-view per-component noise variance.
	DefaultNoise = 1.0
)

// Backend is a single-view separator: given one reduced view x (components
// × samples) and a derived seed it returns the unmixing matrix w, sources
// s = w·x, and whether its own iteration converged. Implementations must be
// deterministic in (x, seed).
//
// The package default wraps fastica.Estimate; supply a custom Backend to
// swap the per-view separator inside PermICA, GroupICA and warm starts.
type Backend interface {
	Estimate(x *mat.Dense, seed uint64) (w, s *mat.Dense, converged bool, err error)
}

// Options configures every separator in the package. The zero value of
// each field is replaced by the documented default where one exists;
// validation rejects values that are out of range rather than silently
// clamping them.
type Options struct {
	// Algo picks the separator when calling Solve. Direct entry points
	// (PermICA, GroupICA, MultiViewICA) ignore it.
	Algo Algo

	// Components is the shared dimension p. 0 means the smallest channel
	// count across views; otherwise 1 ≤ Components ≤ min channel count.
	Components int

	// Reduction selects the per-view dimension reduction (PCA or SRM).
	Reduction reduce.Method

	// Fun selects the density surrogate of the joint objective.
	// The default backend always separates with Logcosh regardless of Fun;
	// Fun shapes only the MultiViewICA refinement.
	Fun contrast.Fun

	// Init selects the warm-start strategy for MultiViewICA.
	Init InitMethod

	// InitW supplies one p×p unmixing matrix per view when Init is
	// InitCustom. It must be nil for every other InitMethod.
	InitW []*mat.Dense

	// Tol is the convergence threshold on the largest relative-gradient
	// entry. Must be > 0.
	Tol float64

	// MaxIter caps outer iterations of the joint loop. Must be ≥ 1.
	MaxIter int

	// Noise is the initial noise variance of every view component.
	// Must be > 0.
	Noise float64

	// Seed drives all randomness (reduction, initialization, backends).
	// 0 selects the fixed package default; results are reproducible for
	// any value.
	Seed uint64

	// Workers bounds concurrent per-view updates inside MultiViewICA.
	// 0 or 1 means serial; results do not depend on Workers.
	Workers int

	// Backend overrides the single-view separator. nil selects the
	// in-house fastica backend.
	Backend Backend
}

// DefaultOptions returns the canonical configuration: MultiViewICA with
// PCA reduction, Logcosh density, PermICA warm start and serial execution.
func DefaultOptions() Options {
	return Options{
		Algo:      AlgoMultiViewICA,
		Reduction: reduce.PCA,
		Fun:       contrast.Logcosh,
		Init:      InitPermICA,
		Tol:       DefaultTol,
		MaxIter:   DefaultMaxIter,
		Noise:     DefaultNoise,
	}
}

// Result is the uniform output of every separator.
//
// The separation contract: for each view i,
//
//	W[i] · K[i] · X[i] ≈ S
//
// up to the permutation/sign/scale ambiguity inherent to blind separation
// (components are aligned across views, so the ambiguity is shared).
type Result struct {
	// K holds per-view reduction matrices (p × channels_i).
	K []*mat.Dense

	// W holds per-view unmixing matrices (p × p) acting on reduced data.
	W []*mat.Dense

	// S is the shared source estimate (p × samples).
	S *mat.Dense

	// NoiseScales holds per-view per-component noise variances estimated
	// by MultiViewICA; nil for the baselines, which carry no noise model.
	NoiseScales [][]float64

	// Iterations counts outer joint iterations. Baselines report 0.
	Iterations int

	// Converged reports whether the stopping criterion was met before the
	// iteration cap (for baselines: whether every backend run converged).
	Converged bool
}

// Sentinel errors. Fatal conditions return a nil Result; ErrNoConvergence
// is a warning and accompanies a complete Result. Shape and rank failures
// detected during reduction surface as the reduce package sentinels.
var (
	// ErrBadAlgo - Options.Algo is not a recognized enum value.
	ErrBadAlgo = errors.New("multiview: unknown algorithm")
	// ErrBadInit - Options.Init is not a recognized enum value, or InitW
	// was supplied without InitCustom.
	ErrBadInit = errors.New("multiview: invalid initialization request")
	// ErrInitShape - Options.InitW does not provide one non-nil p×p matrix
	// per view.
	ErrInitShape = errors.New("multiview: init matrices disagree with views or components")
	// ErrBadTol - Options.Tol is not strictly positive.
	ErrBadTol = errors.New("multiview: tolerance must be > 0")
	// ErrBadIter - Options.MaxIter is below 1.
	ErrBadIter = errors.New("multiview: MaxIter must be ≥ 1")
	// ErrBadNoise - Options.Noise is not strictly positive.
	ErrBadNoise = errors.New("multiview: initial noise must be > 0")
	// ErrBadWorkers - Options.Workers is negative.
	ErrBadWorkers = errors.New("multiview: Workers must be ≥ 0")
	// ErrNoConvergence - the iteration cap was reached before the gradient
	// criterion; the accompanying Result is still usable.
	ErrNoConvergence = errors.New("multiview: no convergence within iteration cap")
	// ErrNumerical - the objective or an unmixing matrix degenerated
	// (non-finite values, singular matrix, collapsed pooled spectrum).
	ErrNumerical = errors.New("multiview: numerical degeneracy")
)
