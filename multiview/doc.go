// Package multiview recovers shared latent sources from several noisy,
// linearly-mixed observations of the same process: joint blind source
// separation across views.
//
// 🚀 What is multi-view separation?
//
//	Each view i observes X_i ≈ A_i·(S + N_i): the same p sources S mixed
//	by a per-view matrix A_i plus per-view noise. Given n such views the
//	package estimates per-view unmixing matrices W_i ≈ A_i⁻¹ and one
//	shared source matrix S consistent across all views. Three separators
//	share one contract:
//	  • PermICA      — independent per-view estimation, then optimal
//	    permutation/sign alignment of components across views (fast baseline).
//	  • GroupICA     — pool all reduced views into one dataset, separate
//	    once, back-project per view (fast baseline, shared ordering for free).
//	  • MultiViewICA — the central algorithm: block-coordinate descent on a
//	    joint noisy-ICA objective, alternating a precision-weighted shared
//	    source estimate, per-view quasi-Newton unmixing updates with a
//	    constrained line search, and per-component noise re-estimation.
//
// ✨ Key features:
//   - one call contract for all three: views in, Result{K, W, S, …} out,
//     with W[i]·K[i]·X[i] ≈ S up to the inherent permutation/sign/scale
//     ambiguity
//   - dimension reduction (PCA whitening or SRM) built into the pipeline
//   - warm starts: MultiViewICA initializes from PermICA (default),
//     GroupICA, seeded random orthogonal matrices, or caller matrices
//   - per-view per-component noise scales, estimated and returned
//   - pluggable single-view backend (fastica in-house by default)
//   - optional data-parallel per-view updates (Options.Workers), results
//     identical to serial execution
//   - strict error taxonomy: eager shape validation, warning-level
//     non-convergence with a usable result, fatal numerical degeneracy
//
// ⚙️ Usage:
//
//	opts := multiview.DefaultOptions()
//	opts.Components = 5
//	opts.Seed = 42
//	res, err := multiview.MultiViewICA(views, opts)
//	if errors.Is(err, multiview.ErrNoConvergence) {
//	    // res is still usable; inspect res.Iterations
//	} else if err != nil {
//	    // fatal
//	}
//
// Or route through the unified dispatcher:
//
//	opts.Algo = multiview.AlgoGroupICA
//	res, err := multiview.Solve(views, opts)
//
// Determinism: every random stage derives from Options.Seed; identical
// seeds and inputs reproduce identical results bit for bit, regardless of
// Workers.
//
// Complexity: reduction plus O(MaxIter · n · p² · samples) for the joint
// loop; the baselines cost one backend run per view (PermICA) or one run
// total (GroupICA).
package multiview
