// Package multiview internal tests: pooled back-projection math.
package multiview

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// TestPinvSquare_InvertsNonsingular checks that the pseudoinverse of a
// well-conditioned matrix is its plain inverse.
func TestPinvSquare_InvertsNonsingular(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{2, 1, 1, 3})

	inv, err := pinvSquare(a)
	if err != nil {
		t.Fatalf("pinvSquare failed: %v", err)
	}

	var prod mat.Dense
	prod.Mul(inv, a)
	if !mat.EqualApprox(&prod, identityDense(2), 1e-12) {
		t.Fatalf("A⁺·A deviates from identity:\n%v", mat.Formatted(&prod))
	}
}

// TestPinvSquare_RankDeficient checks the Moore-Penrose property
// A·A⁺·A = A on a rank-1 matrix, where a plain inverse does not exist.
func TestPinvSquare_RankDeficient(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 2, 2, 4})

	inv, err := pinvSquare(a)
	if err != nil {
		t.Fatalf("pinvSquare failed: %v", err)
	}

	var tmp, back mat.Dense
	tmp.Mul(a, inv)
	back.Mul(&tmp, a)
	if !mat.EqualApprox(&back, a, 1e-12) {
		t.Fatalf("A·A⁺·A deviates from A:\n%v", mat.Formatted(&back))
	}
}

// TestPinvSquare_ZeroMatrix checks that an all-zero block is rejected as
// a numerical degeneracy rather than silently pseudo-inverted to zero.
func TestPinvSquare_ZeroMatrix(t *testing.T) {
	if _, err := pinvSquare(mat.NewDense(3, 3, nil)); !errors.Is(err, ErrNumerical) {
		t.Fatalf("pinvSquare(0) error = %v; want ErrNumerical", err)
	}
}
