// Package multiview internal tests: cross-view component alignment.
package multiview

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// TestNormalizedRows_CenteredUnitNorm checks that every row comes out
// centered with unit Euclidean norm and that constant rows collapse to
// zeros instead of dividing by a zero norm.
func TestNormalizedRows_CenteredUnitNorm(t *testing.T) {
	m := mat.NewDense(3, 4, []float64{
		1, 2, 3, 4,
		-5, 0, 5, 10,
		7, 7, 7, 7, // constant row
	})

	n := normalizedRows(m)
	for r := 0; r < 2; r++ {
		row := n.RawRowView(r)
		if s := floats.Sum(row); math.Abs(s) > 1e-12 {
			t.Fatalf("row %d: sum %g after centering; want 0", r, s)
		}
		if norm := floats.Norm(row, 2); math.Abs(norm-1) > 1e-12 {
			t.Fatalf("row %d: norm %g; want 1", r, norm)
		}
	}
	for _, v := range n.RawRowView(2) {
		if v != 0 {
			t.Fatalf("constant row must normalize to zeros, got %v", n.RawRowView(2))
		}
	}
	if m.At(0, 0) != 1 {
		t.Fatal("normalizedRows must not mutate its input")
	}
}

// TestAlignGroup_RecoversPlantedPermutation shuffles and re-signs the
// rows of a base source matrix and expects alignment to undo both.
func TestAlignGroup_RecoversPlantedPermutation(t *testing.T) {
	const (
		p       = 4
		samples = 200
	)
	rng := rngFromSeed(3)
	base := mat.NewDense(p, samples, nil)
	for r := 0; r < p; r++ {
		row := base.RawRowView(r)
		for c := range row {
			row[c] = rng.NormFloat64()
		}
	}

	perm := []int{2, 0, 3, 1}
	sgn := []float64{-1, 1, 1, -1}
	shuffled := mat.NewDense(p, samples, nil)
	for q := 0; q < p; q++ {
		floats.AddScaled(shuffled.RawRowView(q), sgn[q], base.RawRowView(perm[q]))
	}

	sources := []*mat.Dense{base, shuffled}
	orders, signs, err := alignGroup(sources)
	if err != nil {
		t.Fatalf("alignGroup failed: %v", err)
	}

	for r := 0; r < p; r++ {
		if orders[0][r] != r || signs[0][r] != 1 {
			t.Fatalf("view 0 must keep the identity alignment, got order=%v signs=%v", orders[0], signs[0])
		}
	}

	eye := identityDense(p)
	ws := []*mat.Dense{eye, identityDense(p)}
	_, alignedS := applyAlignment(ws, sources, orders, signs)
	if !mat.EqualApprox(alignedS[1], base, 1e-12) {
		t.Fatal("aligned shuffled view must reproduce the base sources")
	}
}

// TestApplyAlignment_ReordersRows checks the row bookkeeping on a tiny
// hand-built case: order {1,0} with signs {−1,+1}.
func TestApplyAlignment_ReordersRows(t *testing.T) {
	w := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	src := mat.NewDense(2, 3, []float64{10, 20, 30, 40, 50, 60})
	orders := [][]int{{1, 0}}
	signs := [][]float64{{-1, 1}}

	alignedW, alignedS := applyAlignment([]*mat.Dense{w}, []*mat.Dense{src}, orders, signs)

	wantW := mat.NewDense(2, 2, []float64{-3, -4, 1, 2})
	wantS := mat.NewDense(2, 3, []float64{-40, -50, -60, 10, 20, 30})
	if !mat.Equal(alignedW[0], wantW) {
		t.Fatalf("aligned unmixing:\n got %v\nwant %v", mat.Formatted(alignedW[0]), mat.Formatted(wantW))
	}
	if !mat.Equal(alignedS[0], wantS) {
		t.Fatalf("aligned sources:\n got %v\nwant %v", mat.Formatted(alignedS[0]), mat.Formatted(wantS))
	}
}

// TestMeanSources_Averages averages two small matrices exactly.
func TestMeanSources_Averages(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 3, 5, 7})
	b := mat.NewDense(2, 2, []float64{3, 5, 7, 9})

	got := meanSources([]*mat.Dense{a, b})
	want := mat.NewDense(2, 2, []float64{2, 4, 6, 8})
	if !mat.Equal(got, want) {
		t.Fatalf("mean:\n got %v\nwant %v", mat.Formatted(got), mat.Formatted(want))
	}
}

// identityDense builds a p×p identity matrix.
func identityDense(p int) *mat.Dense {
	eye := mat.NewDense(p, p, nil)
	for k := 0; k < p; k++ {
		eye.Set(k, k, 1)
	}

	return eye
}
