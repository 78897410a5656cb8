// Package multiview - cross-view component alignment.
//
// Independent per-view separation recovers the same sources in a
// view-specific order with view-specific signs. Alignment resolves both
// ambiguities: components are matched to a shared reference by an exact
// assignment solver on the row-correlation profile, signs flip so every
// match correlates positively, and the reference is re-estimated from the
// aligned group over a fixed number of consensus sweeps.
package multiview

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/unmix/assign"
)

// alignSweeps is the number of consensus passes: the first matches every
// view against view 0, later ones against the running group mean.
const alignSweeps = 3

// alignGroup computes per-view component orders and signs registering all
// source estimates onto a shared reference seeded by view 0. View 0 keeps
// the identity order; order[i][r] names the component of view i matched
// to reference row r and sign[i][r] ∈ {−1, +1} makes that match
// positively correlated.
//
// All sources must share the p×samples shape of view 0.
func alignGroup(sources []*mat.Dense) (orders [][]int, signs [][]float64, err error) {
	n := len(sources)
	p, _ := sources[0].Dims()

	// Normalized copies: centered rows of unit norm, so the correlation
	// between two rows is a plain dot product.
	norm := make([]*mat.Dense, n)
	for i, s := range sources {
		norm[i] = normalizedRows(s)
	}

	orders = make([][]int, n)
	signs = make([][]float64, n)
	orders[0] = make([]int, p)
	signs[0] = make([]float64, p)
	for r := 0; r < p; r++ {
		orders[0][r] = r
		signs[0][r] = 1
	}

	ref := mat.DenseCopyOf(norm[0])
	corr := mat.NewDense(p, p, nil)
	for sweep := 0; sweep < alignSweeps; sweep++ {
		for i := 1; i < n; i++ {
			corr.Mul(ref, norm[i].T())
			order, sign, mErr := assign.MatchSigned(corr)
			if mErr != nil {
				return nil, nil, mErr
			}
			orders[i], signs[i] = order, sign
		}

		// Consensus reference: mean of the aligned normalized sources.
		ref.Zero()
		for i := 0; i < n; i++ {
			for r := 0; r < p; r++ {
				floats.AddScaled(ref.RawRowView(r), signs[i][r]/float64(n), norm[i].RawRowView(orders[i][r]))
			}
		}
		scaleRowsToUnitNorm(ref)
	}

	return orders, signs, nil
}

// applyAlignment materializes aligned copies of per-view unmixing
// matrices and sources: row r of view i becomes sign[i][r] times row
// order[i][r] of the original.
func applyAlignment(ws, sources []*mat.Dense, orders [][]int, signs [][]float64) (alignedW, alignedS []*mat.Dense) {
	n := len(ws)
	alignedW = make([]*mat.Dense, n)
	alignedS = make([]*mat.Dense, n)
	for i := 0; i < n; i++ {
		p, pc := ws[i].Dims()
		_, samples := sources[i].Dims()
		aw := mat.NewDense(p, pc, nil)
		as := mat.NewDense(p, samples, nil)
		for r := 0; r < p; r++ {
			src := orders[i][r]
			floats.AddScaled(aw.RawRowView(r), signs[i][r], ws[i].RawRowView(src))
			floats.AddScaled(as.RawRowView(r), signs[i][r], sources[i].RawRowView(src))
		}
		alignedW[i], alignedS[i] = aw, as
	}

	return alignedW, alignedS
}

// meanSources averages a group of equally-shaped source matrices.
func meanSources(sources []*mat.Dense) *mat.Dense {
	p, samples := sources[0].Dims()
	out := mat.NewDense(p, samples, nil)
	w := 1 / float64(len(sources))
	for _, s := range sources {
		for r := 0; r < p; r++ {
			floats.AddScaled(out.RawRowView(r), w, s.RawRowView(r))
		}
	}

	return out
}

// normalizedRows returns a copy with centered, unit-norm rows. Rows that
// are constant stay all-zero instead of dividing by a zero norm.
func normalizedRows(m *mat.Dense) *mat.Dense {
	out := mat.DenseCopyOf(m)
	r, cols := out.Dims()
	for k := 0; k < r; k++ {
		row := out.RawRowView(k)
		mean := floats.Sum(row) / float64(cols)
		for t := range row {
			row[t] -= mean
		}
		if n := floats.Norm(row, 2); n > 0 {
			floats.Scale(1/n, row)
		}
	}

	return out
}

// scaleRowsToUnitNorm rescales every non-zero row to unit Euclidean norm
// in place.
func scaleRowsToUnitNorm(m *mat.Dense) {
	r, _ := m.Dims()
	for k := 0; k < r; k++ {
		row := m.RawRowView(k)
		if n := floats.Norm(row, 2); n > 0 {
			floats.Scale(1/n, row)
		}
	}
}
