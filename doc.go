// Package unmix is your toolkit for blind source separation across
// multiple views — from single-dataset FastICA to joint noisy-ICA over
// many simultaneous recordings of the same process.
//
// 🚀 What is unmix?
//
//	A deterministic, numerics-first library that brings together:
//		• Dimension reduction: per-view PCA whitening & shared response model (SRM)
//		• Single-view separation: FastICA with symmetric decorrelation
//		• Source densities: logcosh, quartic, abs surrogates
//		• Exact assignment: Hungarian matching with sign resolution
//		• Multi-view separators: PermICA, GroupICA, MultiViewICA
//		• Joint noise model: per-view per-component variance estimation
//
// ✨ Why choose unmix?
//
//   - Reproducible – every random stage derives from one caller seed
//   - Strict contracts – sentinel errors, eager validation, no silent clamps
//   - Warning-aware – iteration caps return usable results, not failures
//   - Extensible – swap the per-view backend or the source density
//
// Under the hood, everything is organized under five subpackages:
//
//	contrast/  — density surrogates: value, score and score derivative
//	assign/    — exact min/max-sum assignment + signed matching
//	reduce/    — per-view dimension reduction (PCA, SRM)
//	fastica/   — single-view FastICA, whitening folded into the unmixing
//	multiview/ — PermICA, GroupICA, MultiViewICA and the Solve dispatcher
//
// Quick sketch:
//
//	X₁ ≈ A₁·(S + N₁)      several sensor arrays observe
//	X₂ ≈ A₂·(S + N₂)  →   the same hidden sources S
//	X₃ ≈ A₃·(S + N₃)      through different mixings
//
//	res, err := multiview.Solve([]*mat.Dense{x1, x2, x3}, multiview.DefaultOptions())
//	// res.W[i]·res.K[i]·X[i] ≈ res.S for every view
//
// Dive into the package docs for the algorithmic contracts, and into
// examples/ for end-to-end scenarios.
//
//	go get github.com/katalvlaran/unmix
package unmix
