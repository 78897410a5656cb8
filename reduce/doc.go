// Package reduce projects each view of a multi-view dataset from its raw
// channel space down to a common number of components, the preprocessing
// step in front of every separator in unmix.
//
// 🚀 What does reduction do?
//
//	A view is a channels × samples matrix. Reduce maps it to a
//	p × samples matrix through a per-view reduction matrix K:
//	  • PCA — per-view whitening: top-p principal directions of the
//	    centered view, scaled so every reduced component has unit sample
//	    variance. Views are reduced independently.
//	  • SRM — deterministic shared response model: a joint alternating
//	    least-squares fit of orthonormal per-view bases against one shared
//	    response, so the reduced views land co-registered in the same
//	    p-dimensional space. Views may have different channel counts.
//
// ✨ Key features:
//   - closed Method enum dispatching to fixed strategies (no stringly typing)
//   - eager shape validation with plain sentinel errors
//   - explicit seed for the SRM initialization; identical seeds reproduce
//     identical bases bit for bit
//   - rank guard: a view whose spectrum cannot support p components is
//     rejected instead of silently amplifying noise
//
// ⚙️ Usage:
//
//	ks, reduced, err := reduce.Reduce(views, 5, reduce.DefaultOptions())
//
// Reduction operates on row-centered data: centering is part of the
// transform, so K applied to a raw view reproduces the reduced view up to
// the removed channel means.
//
// Complexity: PCA is one thin SVD per view; SRM is SRMIter sweeps of one
// thin SVD per view. Both are deterministic given Options.Seed.
package reduce
