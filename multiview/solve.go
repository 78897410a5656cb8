// Package multiview - unified dispatch over the three separators.
//
// Design principles:
//   - Deterministic: behavior is fully determined by (views, Options).
//   - Strict sentinels: an unknown algorithm fails with ErrBadAlgo before
//     any numerical work.
//   - Single contract: every branch returns the same Result shape, so
//     callers can swap separators by flipping one enum.
package multiview

import "gonum.org/v1/gonum/mat"

// Solve routes the view group to the separator selected by opts.Algo:
// AlgoMultiViewICA (default), AlgoPermICA or AlgoGroupICA.
//
// Contracts:
//   - views: one channels_i × samples matrix per view, equal sample counts.
//   - opts: see Options; DefaultOptions() is a safe starting point.
//
// Errors: ErrBadAlgo for an unrecognized Algo, otherwise exactly the
// errors of the selected separator.
//
// Complexity: that of the selected separator.
func Solve(views []*mat.Dense, opts Options) (*Result, error) {
	switch opts.Algo {
	case AlgoMultiViewICA:
		return MultiViewICA(views, opts)
	case AlgoPermICA:
		return PermICA(views, opts)
	case AlgoGroupICA:
		return GroupICA(views, opts)
	default:
		return nil, ErrBadAlgo
	}
}
