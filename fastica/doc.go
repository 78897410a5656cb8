// Package fastica estimates an unmixing matrix and independent sources for
// a single view: the in-house fixed-point separator behind unmix's
// pluggable single-view backend.
//
// 🚀 What is FastICA?
//
//	Given one observation matrix x (components × samples), FastICA finds a
//	square unmixing matrix W whose output S = W·x has maximally
//	non-Gaussian, mutually independent rows. It is the classic fixed-point
//	iteration: whiten, rotate, re-estimate the rotation from the score of
//	the current sources, and re-orthonormalize until the rotation stops
//	moving.
//
// ✨ Key features:
//   - symmetric (parallel) fixed-point updates over all components at once
//   - internal whitening folded into the returned W, so S = W·x holds for
//     raw (centered) input regardless of the input's conditioning
//   - nonlinearity from the contrast package (logcosh by default)
//   - seeded initialization: identical seeds reproduce identical results
//   - warning-level non-convergence — the last iterate is still returned
//
// ⚙️ Usage:
//
//	res, err := fastica.Estimate(x, fastica.DefaultOptions())
//	switch {
//	case errors.Is(err, fastica.ErrNoConvergence):
//	    // res is usable; inspect res.Iterations
//	case err != nil:
//	    // fatal: validation or numerical degeneracy
//	}
//	// res.S = res.W · x (up to the removed channel means)
//
// Complexity: O(MaxIter · p² · samples) time, O(p · samples) memory.
package fastica
