// SPDX-License-Identifier: MIT

// Package assign: sentinel errors.
//
// Policy (single source of truth):
//   - Entry points return these sentinels directly; callers test with
//     errors.Is. No wrapping at the public boundary.
//   - All input violations are detected eagerly, before any allocation of
//     the solver state.
package assign

import "errors"

// ErrNilMatrix is returned when the score matrix is nil.
var ErrNilMatrix = errors.New("assign: nil score matrix")

// ErrEmpty is returned when the score matrix has zero rows.
var ErrEmpty = errors.New("assign: empty score matrix")

// ErrNotSquare is returned when the score matrix is not square; the
// assignment problem is defined on equal-sized row and column sets.
var ErrNotSquare = errors.New("assign: score matrix is not square")

// ErrNonFinite is returned when any score is NaN or ±Inf; potentials and
// augmenting-path deltas are undefined on non-finite scores.
var ErrNonFinite = errors.New("assign: non-finite score")
