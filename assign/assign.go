// SPDX-License-Identifier: MIT

// Package assign: exact Hungarian (Kuhn–Munkres) kernel and its public
// MinSum / MaxSum / MatchSigned facades.
//
// Implementation:
//   - Potential-based Hungarian with shortest augmenting paths, one row
//     inserted per phase; 1-based internal indexing with column 0 as the
//     virtual free column.
//   - Scores are prefetched into a flat row-major []float64 so that the
//     O(p³) inner scans run on contiguous memory, independent of the
//     mat.Matrix implementation behind the interface.
//
// Contracts:
//   - Returned order is always a permutation of 0..p-1.
//   - Total matched score is the exact optimum (verified against brute
//     force in the tests for small p).
//
// Complexity: O(p³) time, O(p²) memory. Deterministic for fixed input.
package assign

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// MinSum returns the permutation minimizing the total matched score:
// order[i] is the column assigned to row i, minimizing Σ m[i, order[i]].
//
// Errors: ErrNilMatrix, ErrEmpty, ErrNotSquare, ErrNonFinite.
func MinSum(m mat.Matrix) ([]int, error) {
	cost, p, err := fetchSquare(m)
	if err != nil {
		return nil, err
	}

	return hungarianMin(cost, p), nil
}

// MaxSum returns the permutation maximizing the total matched score:
// order[i] is the column assigned to row i, maximizing Σ m[i, order[i]].
//
// Errors: ErrNilMatrix, ErrEmpty, ErrNotSquare, ErrNonFinite.
func MaxSum(m mat.Matrix) ([]int, error) {
	cost, p, err := fetchSquare(m)
	if err != nil {
		return nil, err
	}
	// Negate once; the kernel minimizes.
	for i := range cost {
		cost[i] = -cost[i]
	}

	return hungarianMin(cost, p), nil
}

// MatchSigned matches on absolute scores and reports the sign of each
// matched original entry: order maximizes Σ |m[i, order[i]]| and
// signs[i] is +1 when m[i, order[i]] ≥ 0, -1 otherwise.
//
// This is the alignment contract: component correspondence is strongest
// in |correlation|, and the sign flip restores a positive match.
//
// Errors: ErrNilMatrix, ErrEmpty, ErrNotSquare, ErrNonFinite.
func MatchSigned(m mat.Matrix) ([]int, []float64, error) {
	cost, p, err := fetchSquare(m)
	if err != nil {
		return nil, nil, err
	}
	// Negated absolute scores; the kernel minimizes.
	neg := make([]float64, len(cost))
	for i, v := range cost {
		neg[i] = -math.Abs(v)
	}

	order := hungarianMin(neg, p)
	signs := make([]float64, p)
	for i, j := range order {
		if cost[i*p+j] < 0 {
			signs[i] = -1
		} else {
			signs[i] = 1
		}
	}

	return order, signs, nil
}

// fetchSquare validates m and prefetches it into a flat row-major slice.
// Validation order: nil → shape → emptiness → finiteness.
func fetchSquare(m mat.Matrix) ([]float64, int, error) {
	if m == nil {
		return nil, 0, ErrNilMatrix
	}
	r, c := m.Dims()
	if r != c {
		return nil, 0, ErrNotSquare
	}
	if r == 0 {
		return nil, 0, ErrEmpty
	}

	flat := make([]float64, r*c)
	var v float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v = m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, 0, ErrNonFinite
			}
			flat[i*c+j] = v
		}
	}

	return flat, r, nil
}

// hungarianMin solves the min-sum assignment on a flat p×p cost slice,
// returning order[i] = column matched to row i.
//
// Stage 1 - insert rows one at a time, each phase growing the matching by
// exactly one augmenting path of minimal reduced cost.
// Stage 2 - unwind the recorded path, flipping assignments along it.
// Potentials u, v keep every reduced cost non-negative, which is the
// optimality certificate on termination.
func hungarianMin(cost []float64, p int) []int {
	inf := math.Inf(1)
	u := make([]float64, p+1)    // row potentials, 1-based
	v := make([]float64, p+1)    // column potentials, 1-based
	link := make([]int, p+1)     // link[j]: row matched to column j, 0 = free
	way := make([]int, p+1)      // way[j]: previous column on the alternating path
	minv := make([]float64, p+1) // minimal reduced cost seen per column
	used := make([]bool, p+1)    // columns already in the alternating tree

	var (
		i0, j0, j1, j int
		cur, delta    float64
	)
	for i := 1; i <= p; i++ {
		// Stage 1 - grow the alternating tree from the virtual column.
		link[0] = i
		j0 = 0
		for j = 0; j <= p; j++ {
			minv[j] = inf
			used[j] = false
		}
		for {
			used[j0] = true
			i0 = link[j0]
			delta = inf
			j1 = 0
			for j = 1; j <= p; j++ {
				if used[j] {
					continue
				}
				cur = cost[(i0-1)*p+(j-1)] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j = 0; j <= p; j++ {
				if used[j] {
					u[link[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if link[j0] == 0 {
				break
			}
		}
		// Stage 2 - augment: flip assignments along the recorded path.
		for j0 != 0 {
			j1 = way[j0]
			link[j0] = link[j1]
			j0 = j1
		}
	}

	order := make([]int, p)
	for j = 1; j <= p; j++ {
		order[link[j]-1] = j - 1
	}

	return order
}
