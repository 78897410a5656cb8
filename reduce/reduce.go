// Package reduce: public entry point and staged validation.
//
// Stage 0 - validate group shapes and options (cheap, allocation-free).
// Stage 1 - center every view's channels (shared by both strategies).
// Stage 2 - dispatch on Options.Method to the strategy implementation.
package reduce

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// relRankTol is the relative spectral threshold under which a kept
// component is considered numerically absent.
const relRankTol = 1e-12

// Reduce projects every view of the group onto p components.
//
// Inputs: views (each channels × samples; channel counts may differ,
// sample counts may not), target component count p, options.
// Returns: per-view reduction matrices K (p × channels) and reduced views
// (p × samples), index-aligned with the input group.
//
// Errors: ErrNoViews, ErrNilView, ErrComponents, ErrSampleCount,
// ErrBadMethod, ErrBadIter, ErrRankDeficient, ErrFactorize.
func Reduce(views []*mat.Dense, p int, opts Options) ([]*mat.Dense, []*mat.Dense, error) {
	if err := validateAll(views, p, opts); err != nil {
		return nil, nil, err
	}

	centered := make([]*mat.Dense, len(views))
	for i, x := range views {
		centered[i] = centerRows(x)
	}

	switch opts.Method {
	case PCA:
		return pcaReduce(centered, p)
	case SRM:
		return srmReduce(centered, p, opts)
	default:
		// Unreachable: validateAll rejected unknown methods.
		return nil, nil, ErrBadMethod
	}
}

// validateAll runs every eager input check in a fixed order:
// group → per-view nil/shape → component budget → options.
func validateAll(views []*mat.Dense, p int, opts Options) error {
	if len(views) == 0 {
		return ErrNoViews
	}

	samples := -1
	for _, x := range views {
		if x == nil {
			return ErrNilView
		}
		r, c := x.Dims()
		if r == 0 || c == 0 {
			return ErrNilView
		}
		if samples < 0 {
			samples = c
		} else if c != samples {
			return ErrSampleCount
		}
		if p < 1 || p > r {
			return ErrComponents
		}
	}

	if opts.Method != PCA && opts.Method != SRM {
		return ErrBadMethod
	}
	if opts.SRMIter < 0 {
		return ErrBadIter
	}

	return nil
}

// centerRows returns a copy of x with each channel's mean removed.
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
