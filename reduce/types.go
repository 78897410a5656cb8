// Package reduce: method selector, options and sentinel errors.
package reduce

import "errors"

// Method selects the reduction strategy.
//
//   - PCA — per-view principal-component whitening. Independent across
//     views; reduced components have unit sample variance.
//   - SRM — shared response model across all views jointly; reduced views
//     are co-registered component by component. K rows are orthonormal.
type Method int

const (
	// PCA selects per-view principal-component whitening (default).
	PCA Method = iota

	// SRM selects the joint shared-response reduction.
	SRM
)

// String returns the selector name used in diagnostics.
func (m Method) String() string {
	switch m {
	case PCA:
		return "pca"
	case SRM:
		return "srm"
	default:
		return "unknown"
	}
}

// DefaultSRMIter is the number of alternating least-squares sweeps used by
// the SRM strategy when Options.SRMIter is zero.
const DefaultSRMIter = 10

// Options configures Reduce.
//
// Fields:
//   - Method  — PCA or SRM.
//   - SRMIter — alternating sweeps for SRM; 0 means DefaultSRMIter.
//     Ignored by PCA.
//   - Seed    — seed for the SRM basis initialization; 0 selects the fixed
//     package default so that the zero value stays deterministic.
//     Ignored by PCA, which has no random stage.
type Options struct {
	Method  Method
	SRMIter int
	Seed    uint64
}

// DefaultOptions returns the canonical configuration: PCA, DefaultSRMIter
// sweeps if SRM is selected later, default seed.
func DefaultOptions() Options {
	return Options{Method: PCA, SRMIter: DefaultSRMIter, Seed: 0}
}

// ErrNoViews is returned when the group contains no views.
var ErrNoViews = errors.New("reduce: empty view group")

// ErrNilView is returned when any view in the group is nil.
var ErrNilView = errors.New("reduce: nil view")

// ErrComponents is returned when the component count is not positive or
// exceeds the channel count of some view.
var ErrComponents = errors.New("reduce: component count out of range")

// ErrSampleCount is returned when views disagree on the sample count; all
// views must observe the same time axis.
var ErrSampleCount = errors.New("reduce: views disagree on sample count")

// ErrBadMethod is returned when Options.Method is not a declared Method.
var ErrBadMethod = errors.New("reduce: unknown reduction method")

// ErrBadIter is returned when Options.SRMIter is negative.
var ErrBadIter = errors.New("reduce: negative SRM sweep count")

// ErrRankDeficient is returned when a view's spectrum cannot support the
// requested component count (trailing singular value numerically zero);
// whitening such a view would amplify noise unboundedly.
var ErrRankDeficient = errors.New("reduce: view rank below component count")

// ErrFactorize is returned when an SVD fails to converge. This indicates
// pathological input (denormals, extreme dynamic range), not a bug in the
// caller's shapes.
var ErrFactorize = errors.New("reduce: factorization failed")
