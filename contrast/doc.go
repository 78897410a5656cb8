// Package contrast provides the source-density surrogates ("contrast
// functions") that shape the independence criterion of every separator in
// unmix.
//
// 🚀 What is a contrast function?
//
//	Independent-component estimation never sees the true source density.
//	Instead it optimizes a surrogate f(y) whose gradient f'(y) (the score)
//	pulls estimated sources toward a density class:
//	  • Logcosh — smooth heavy-tailed prior, the classic super-Gaussian choice
//	  • Quartic — kurtosis-style prior for sub-Gaussian (e.g. uniform) sources
//	  • Abs     — Laplace prior, sparse and strongly super-Gaussian
//
// ✨ Key features:
//   - closed Fun enum, validated at construction (no silent fallback)
//   - one strategy type per density behind the Contrast interface
//   - value, score and score-derivative in one contract (quasi-Newton ready)
//   - overflow-safe logcosh evaluation for |y| far beyond floating range
//
// ⚙️ Usage:
//
//	c, err := contrast.New(contrast.Logcosh)
//	if err != nil { ... }
//	v := c.Eval(y)       // f(y), the negative log-density up to a constant
//	g := c.Score(y)      // f'(y)
//	h := c.ScoreDeriv(y) // f''(y)
//
// Choosing a density that does not match the data is not an error: it is a
// model mismatch, and separation quality degrades measurably (see the
// density-matching tests in the multiview package).
//
// Complexity: all methods are O(1), allocation-free, and deterministic.
package contrast
