// SPDX-License-Identifier: MIT

// Package assign solves the linear assignment problem exactly: given a
// square score matrix, find the one-to-one matching between rows and
// columns with optimal total score.
//
// 🚀 What is assignment here?
//
//	Independent-component estimation is blind to component order and sign.
//	Comparing two decompositions therefore requires the best one-to-one
//	matching between their components — a bipartite assignment on the
//	matrix of pairwise similarities. Greedy matching systematically
//	under-matches on correlation matrices; this package implements the
//	exact Hungarian (Kuhn–Munkres) method instead.
//
// ✨ Key features:
//   - exact optimum, never a heuristic: potentials + shortest augmenting paths
//   - MinSum and MaxSum variants over any gonum mat.Matrix
//   - MatchSigned: match on |scores| and report the sign of each matched
//     entry — the contract component alignment needs
//   - O(p³) time, O(p²) memory; p is the component count (tens at most)
//
// ⚙️ Usage:
//
//	order, err := assign.MaxSum(similarity)      // order[i] = column for row i
//	order, signs, err := assign.MatchSigned(sim) // alignment with sign flips
//
// Determinism: the augmenting scan visits rows and columns in natural
// order, so exact ties resolve row-major; real-valued scores almost never
// tie exactly.
package assign
