// Package multiview - eager validation of view groups and options.
//
// Every public entry point validates before any numerical work: group
// shape first, then option ranges, then warm-start coherence. Group-shape
// failures reuse the reduce sentinels (one taxonomy for one pipeline);
// sample-count agreement across views is enforced by the reduction stage
// itself. All other failures map to multiview sentinels.
package multiview

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/unmix/contrast"
	"github.com/katalvlaran/unmix/reduce"
)

// resolveComponents inspects the view group and resolves the shared
// component count p: Options.Components when positive, otherwise the
// smallest channel count across views.
//
// Errors: reduce.ErrNoViews, reduce.ErrNilView, reduce.ErrComponents.
func resolveComponents(views []*mat.Dense, components int) (int, error) {
	// Stage 1 - the group must be non-empty.
	if len(views) == 0 {
		return 0, reduce.ErrNoViews
	}

	// Stage 2 - every view must be present; track the smallest channel count.
	minChannels := math.MaxInt
	for _, x := range views {
		if x == nil {
			return 0, reduce.ErrNilView
		}
		channels, _ := x.Dims()
		if channels < minChannels {
			minChannels = channels
		}
	}

	// Stage 3 - resolve the default and range-check the result.
	p := components
	if p == 0 {
		p = minChannels
	}
	if p < 1 || p > minChannels {
		return 0, reduce.ErrComponents
	}

	return p, nil
}

// validateOptions range-checks every knob shared by the separators.
// The comparisons are written so that NaN fails them.
//
// Errors: ErrBadAlgo, ErrBadInit, ErrInitShape, ErrBadTol, ErrBadIter,
// ErrBadNoise, ErrBadWorkers, contrast.ErrUnknownFun.
func validateOptions(opts Options, viewCount, p int) error {
	// Stage 1 - enum membership.
	switch opts.Algo {
	case AlgoMultiViewICA, AlgoPermICA, AlgoGroupICA:
	default:
		return ErrBadAlgo
	}
	switch opts.Init {
	case InitPermICA, InitGroupICA, InitRandom, InitCustom:
	default:
		return ErrBadInit
	}
	if _, err := contrast.New(opts.Fun); err != nil {
		return err
	}

	// Stage 2 - numeric ranges.
	if !(opts.Tol > 0) {
		return ErrBadTol
	}
	if opts.MaxIter < 1 {
		return ErrBadIter
	}
	if !(opts.Noise > 0) || math.IsInf(opts.Noise, 1) {
		return ErrBadNoise
	}
	if opts.Workers < 0 {
		return ErrBadWorkers
	}

	// Stage 3 - warm-start coherence: InitW exactly when InitCustom,
	// one p×p matrix per view.
	if opts.Init == InitCustom {
		if len(opts.InitW) != viewCount {
			return ErrInitShape
		}
		for _, w := range opts.InitW {
			if w == nil {
				return ErrInitShape
			}
			r, c := w.Dims()
			if r != p || c != p {
				return ErrInitShape
			}
		}
	} else if opts.InitW != nil {
		return ErrBadInit
	}

	return nil
}
