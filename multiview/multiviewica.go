// Package multiview - MultiViewICA: joint noisy-ICA refinement.
//
// Model: every reduced view observes the shared sources through its own
// unmixing, Y_i = W_i·X_i = S + noise, with per-view per-component noise
// variances σ²_{i,k}. Up to additive constants the negative
// log-likelihood reads
//
//	L = Σ_i −log|det W_i|
//	  + Σ_i Σ_k λ_{i,k}/2 · mean_t (Y_i[k,t] − S[k,t])²
//	  + Σ_k mean_t f(S[k,t])
//	  + ½ Σ_i Σ_k log σ²_{i,k}
//
// with precisions λ = 1/σ² and the shared sources at their analytic
// optimum, the precision-weighted mean
//
//	S[k,t] = Σ_i λ_{i,k}·Y_i[k,t] / Σ_i λ_{i,k}.
//
// Block-coordinate descent alternates three exact stages per iteration:
//
//	Stage A - shared sources: refresh S, total precisions and the mixing
//	          weights c_{i,k} = λ_{i,k}/Σ_j λ_{j,k}.
//	Stage B - per-view unmixing: one quasi-Newton step on the relative
//	          gradient of L restricted to view i (the shared sources move
//	          with the view through the weights c), using a pairwise
//	          curvature surrogate kept positive definite by an eigenvalue
//	          floor, then a halving line search on the exact view-local
//	          objective. Candidate steps with a vanished determinant or a
//	          non-finite objective are rejected; if no step improves, the
//	          view keeps its unmixing, so the objective never increases.
//	Stage C - noise: per-component residual mean squares against the
//	          shared sources, floored away from zero.
//
// Stage B touches only view-local state plus read-only shared quantities,
// so views update independently (Options.Workers) with results identical
// to the serial schedule.
package multiview

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/unmix/contrast"
	"github.com/katalvlaran/unmix/reduce"
)

const (
	// hessFloor keeps the smallest eigenvalue of every 2×2 curvature block
	// at or above this value.
	hessFloor = 1e-3
	// noiseFloor bounds estimated noise variances away from zero.
	noiseFloor = 1e-10
	// lineSearchTries caps step halvings per view update.
	lineSearchTries = 30
)

// MultiViewICA refines per-view unmixing matrices and shared sources by
// block-coordinate descent on the joint noisy-ICA objective, starting
// from the warm start selected by opts.Init.
//
// Contracts:
//   - views: one channels_i × samples matrix per view, equal sample counts.
//   - opts: see Options; opts.Fun shapes the source density of the joint
//     objective, opts.Noise seeds the noise variances.
//
// Errors:
//   - reduce sentinels for group-shape and rank failures,
//   - option sentinels for out-of-range knobs,
//   - warm-start errors verbatim,
//   - ErrNumerical (fatal, nil Result) when the objective or an unmixing
//     matrix degenerates,
//   - ErrNoConvergence (warning, Result valid) when MaxIter passes before
//     the gradient criterion is met.
//
// Complexity: reduction and warm start, then O(MaxIter·n·p²·samples).
// Determinism: fixed by (views, opts), independent of Workers.
func MultiViewICA(views []*mat.Dense, opts Options) (*Result, error) {
	p, err := resolveComponents(views, opts.Components)
	if err != nil {
		return nil, err
	}
	if err = validateOptions(opts, len(views), p); err != nil {
		return nil, err
	}

	seed := seedOrDefault(opts.Seed)
	ropts := reduce.DefaultOptions()
	ropts.Method = opts.Reduction
	ropts.Seed = deriveSeed(seed, streamReduce)
	ks, red, err := reduce.Reduce(views, p, ropts)
	if err != nil {
		return nil, err
	}

	ws, err := initialUnmixings(red, opts, seed)
	if err != nil {
		return nil, err
	}

	st, err := newJointState(red, ws, opts)
	if err != nil {
		return nil, err
	}

	iterations, converged, err := st.run(opts.MaxIter, opts.Workers)
	if err != nil {
		return nil, err
	}

	res := &Result{
		K:           ks,
		W:           st.ws,
		S:           st.s,
		NoiseScales: st.noiseScales(),
		Iterations:  iterations,
		Converged:   converged,
	}
	if !converged {
		return res, ErrNoConvergence
	}

	return res, nil
}

// initialUnmixings builds one p×p unmixing per view according to Init.
// Warm starts run on the already-reduced views; their own non-convergence
// is acceptable for a starting point and is not propagated.
func initialUnmixings(red []*mat.Dense, opts Options, seed uint64) ([]*mat.Dense, error) {
	switch opts.Init {
	case InitPermICA:
		ws, _, _, err := permicaCore(red, newBackend(opts), seed)

		return ws, err
	case InitGroupICA:
		ws, _, _, err := groupicaCore(red, newBackend(opts), seed)

		return ws, err
	case InitRandom:
		rng := rngFromSeed(deriveSeed(seed, streamInit))
		p, _ := red[0].Dims()
		ws := make([]*mat.Dense, len(red))
		for i := range ws {
			ws[i] = randomOrthogonal(p, rng)
		}

		return ws, nil
	case InitCustom:
		ws := make([]*mat.Dense, len(opts.InitW))
		for i, w := range opts.InitW {
			ws[i] = mat.DenseCopyOf(w)
		}

		return ws, nil
	default:
		return nil, ErrBadInit
	}
}

// jointState carries the loop state of the refinement. Per-view slices
// are indexed alike; s, tot and cw form one consistent snapshot refreshed
// at the top of each iteration.
type jointState struct {
	p, samples int
	fun        contrast.Contrast
	tol        float64

	xs  []*mat.Dense // reduced views, read-only
	ws  []*mat.Dense // per-view unmixing matrices, p×p
	ys  []*mat.Dense // ws[i]·xs[i], kept in sync with ws
	s   *mat.Dense   // shared sources, p×samples
	lam [][]float64  // per-view per-component precisions 1/σ²
	tot []float64    // per-component total precision
	cw  [][]float64  // per-view mixing weights λ/tot

	scratch []*viewScratch
}

// viewScratch holds per-view work buffers so parallel updates never share
// writable memory.
type viewScratch struct {
	resid *mat.Dense // Y − S
	comb  *mat.Dense // gradient row factor λ·resid + c·f'(S)
	curve *mat.Dense // curvature row factor λ(1−c) + c²·f''(S)
	ysq   *mat.Dense // squared source rows
	dy    *mat.Dense // direction applied to sources, D·Y
	g     *mat.Dense // relative gradient, p×p
	h     *mat.Dense // curvature surrogate, p×p
	d     *mat.Dense // quasi-Newton direction, p×p
	dw    *mat.Dense // direction applied to the unmixing, D·W
	wTry  *mat.Dense // line-search candidate
	a1    []float64  // mean(resid·DY) per component
	a2    []float64  // mean((DY)²) per component
}

func newViewScratch(p, samples int) *viewScratch {
	return &viewScratch{
		resid: mat.NewDense(p, samples, nil),
		comb:  mat.NewDense(p, samples, nil),
		curve: mat.NewDense(p, samples, nil),
		ysq:   mat.NewDense(p, samples, nil),
		dy:    mat.NewDense(p, samples, nil),
		g:     mat.NewDense(p, p, nil),
		h:     mat.NewDense(p, p, nil),
		d:     mat.NewDense(p, p, nil),
		dw:    mat.NewDense(p, p, nil),
		wTry:  mat.NewDense(p, p, nil),
		a1:    make([]float64, p),
		a2:    make([]float64, p),
	}
}

func newJointState(red []*mat.Dense, ws []*mat.Dense, opts Options) (*jointState, error) {
	fun, err := contrast.New(opts.Fun)
	if err != nil {
		return nil, err
	}
	n := len(red)
	p, samples := red[0].Dims()

	st := &jointState{
		p:       p,
		samples: samples,
		fun:     fun,
		tol:     opts.Tol,
		xs:      red,
		ws:      ws,
		ys:      make([]*mat.Dense, n),
		lam:     make([][]float64, n),
		tot:     make([]float64, p),
		cw:      make([][]float64, n),
		scratch: make([]*viewScratch, n),
	}
	st.s = mat.NewDense(p, samples, nil)
	for i := 0; i < n; i++ {
		y := mat.NewDense(p, samples, nil)
		y.Mul(ws[i], red[i])
		st.ys[i] = y

		st.lam[i] = make([]float64, p)
		for k := range st.lam[i] {
			st.lam[i][k] = 1 / opts.Noise
		}
		st.cw[i] = make([]float64, p)
		st.scratch[i] = newViewScratch(p, samples)
	}

	return st, nil
}

// run executes the outer loop and reports iterations used plus whether
// the gradient criterion was met before maxIter.
func (st *jointState) run(maxIter, workers int) (int, bool, error) {
	n := len(st.xs)
	gnorms := make([]float64, n)
	errs := make([]error, n)

	for iter := 1; iter <= maxIter; iter++ {
		st.refreshShared()

		if workers > 1 {
			st.updateViewsParallel(workers, gnorms, errs)
		} else {
			for i := 0; i < n; i++ {
				gnorms[i], errs[i] = st.updateView(i)
			}
		}
		for _, uErr := range errs {
			if uErr != nil {
				return iter, false, uErr
			}
		}

		st.refreshNoise()

		gMax := 0.0
		for _, g := range gnorms {
			if g > gMax {
				gMax = g
			}
		}
		if gMax < st.tol {
			st.refreshShared()

			return iter, true, nil
		}
	}

	st.refreshShared()

	return maxIter, false, nil
}

// updateViewsParallel fans per-view updates over at most workers
// goroutines. Views share only read-only state, so results match the
// serial schedule exactly.
func (st *jointState) updateViewsParallel(workers int, gnorms []float64, errs []error) {
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := range st.xs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			gnorms[i], errs[i] = st.updateView(i)
		}(i)
	}
	wg.Wait()
}

// refreshShared recomputes total precisions, mixing weights and the
// precision-weighted shared sources from the current ys and lam.
func (st *jointState) refreshShared() {
	for k := 0; k < st.p; k++ {
		total := 0.0
		for i := range st.lam {
			total += st.lam[i][k]
		}
		st.tot[k] = total

		row := st.s.RawRowView(k)
		for t := range row {
			row[t] = 0
		}
		for i := range st.ys {
			w := st.lam[i][k] / total
			st.cw[i][k] = w
			floats.AddScaled(row, w, st.ys[i].RawRowView(k))
		}
	}
}

// refreshNoise re-estimates per-view per-component noise variances from
// the residual against the shared sources, floored away from zero.
func (st *jointState) refreshNoise() {
	for i := range st.ys {
		for k := 0; k < st.p; k++ {
			y := st.ys[i].RawRowView(k)
			s := st.s.RawRowView(k)
			ss := 0.0
			for t, v := range y {
				d := v - s[t]
				ss += d * d
			}
			variance := ss / float64(st.samples)
			if variance < noiseFloor {
				variance = noiseFloor
			}
			st.lam[i][k] = 1 / variance
		}
	}
}

// noiseScales exports σ² = 1/λ per view and component.
func (st *jointState) noiseScales() [][]float64 {
	out := make([][]float64, len(st.lam))
	for i, row := range st.lam {
		out[i] = make([]float64, len(row))
		for k, l := range row {
			out[i][k] = 1 / l
		}
	}

	return out
}

// updateView performs one quasi-Newton step on view i against the current
// shared snapshot and returns the ∞-norm of the relative gradient before
// the step (the convergence gauge).
func (st *jointState) updateView(i int) (float64, error) {
	p := st.p
	inv := 1 / float64(st.samples)
	w, y, x := st.ws[i], st.ys[i], st.xs[i]
	lam, c := st.lam[i], st.cw[i]
	sc := st.scratch[i]

	// Row factors of the gradient and of the curvature surrogate.
	for k := 0; k < p; k++ {
		yRow := y.RawRowView(k)
		sRow := st.s.RawRowView(k)
		residRow := sc.resid.RawRowView(k)
		combRow := sc.comb.RawRowView(k)
		curveRow := sc.curve.RawRowView(k)
		ysqRow := sc.ysq.RawRowView(k)
		base := lam[k] * (1 - c[k])
		for t, v := range yRow {
			r := v - sRow[t]
			residRow[t] = r
			combRow[t] = lam[k]*r + c[k]*st.fun.Score(sRow[t])
			curveRow[t] = base + c[k]*c[k]*st.fun.ScoreDeriv(sRow[t])
			ysqRow[t] = v * v
		}
	}

	// Relative gradient G = comb·Yᵀ/samples − I; curvature surrogate
	// h = curve·(Y²)ᵀ/samples.
	gMax := 0.0
	for k := 0; k < p; k++ {
		combRow := sc.comb.RawRowView(k)
		curveRow := sc.curve.RawRowView(k)
		for l := 0; l < p; l++ {
			g := floats.Dot(combRow, y.RawRowView(l)) * inv
			if l == k {
				g--
			}
			if math.IsNaN(g) || math.IsInf(g, 0) {
				return 0, ErrNumerical
			}
			sc.g.Set(k, l, g)
			if a := math.Abs(g); a > gMax {
				gMax = a
			}
			sc.h.Set(k, l, floats.Dot(curveRow, sc.ysq.RawRowView(l))*inv)
		}
	}

	// Pairwise regularization: shift each 2×2 block [h_kl 1; 1 h_lk] so
	// its smallest eigenvalue stays at or above hessFloor.
	for k := 0; k < p; k++ {
		for l := k + 1; l < p; l++ {
			a, b := sc.h.At(k, l), sc.h.At(l, k)
			d := a - b
			small := 0.5 * (a + b - math.Sqrt(d*d+4))
			if small < hessFloor {
				shift := hessFloor - small
				sc.h.Set(k, l, a+shift)
				sc.h.Set(l, k, b+shift)
			}
		}
	}

	// Quasi-Newton direction: each off-diagonal pair solves
	// [h_kl 1; 1 h_lk]·[D_kl D_lk]ᵀ = [G_kl G_lk]ᵀ; the diagonal is the
	// scalar case with the +1 log-det curvature.
	for k := 0; k < p; k++ {
		sc.d.Set(k, k, sc.g.At(k, k)/(sc.h.At(k, k)+1))
		for l := k + 1; l < p; l++ {
			hkl, hlk := sc.h.At(k, l), sc.h.At(l, k)
			gkl, glk := sc.g.At(k, l), sc.g.At(l, k)
			det := hkl*hlk - 1
			sc.d.Set(k, l, (hlk*gkl-glk)/det)
			sc.d.Set(l, k, (hkl*glk-gkl)/det)
		}
	}

	// Line search on the exact view-local objective. With Δ = −step·D·Y
	// and the shared sources tracking the view through the weights c:
	//
	//	L(step) − L(0) = log|det W| − log|det W_try|
	//	  + Σ_k (−step·λ_k·a1_k + step²·λ_k(1−c_k)/2·a2_k)
	//	  + Σ_k mean_t [f(S_k − step·c_k·(DY)_k) − f(S_k)]
	sc.dw.Mul(sc.d, w)
	sc.dy.Mul(sc.d, y)

	logdet0, sign0 := mat.LogDet(w)
	if sign0 == 0 || math.IsNaN(logdet0) || math.IsInf(logdet0, 0) {
		return 0, ErrNumerical
	}
	loss0 := -logdet0
	for k := 0; k < p; k++ {
		sRow := st.s.RawRowView(k)
		sum := 0.0
		for _, v := range sRow {
			sum += st.fun.Eval(v)
		}
		loss0 += sum * inv
	}
	if math.IsNaN(loss0) || math.IsInf(loss0, 0) {
		return 0, ErrNumerical
	}

	for k := 0; k < p; k++ {
		dyRow := sc.dy.RawRowView(k)
		sc.a1[k] = floats.Dot(sc.resid.RawRowView(k), dyRow) * inv
		sc.a2[k] = floats.Dot(dyRow, dyRow) * inv
	}

	step := 1.0
	accepted := false
	for try := 0; try < lineSearchTries; try++ {
		sc.wTry.Scale(-step, sc.dw)
		sc.wTry.Add(sc.wTry, w)

		ld, sign := mat.LogDet(sc.wTry)
		if sign != 0 && !math.IsNaN(ld) && !math.IsInf(ld, 0) {
			loss := -ld
			for k := 0; k < p; k++ {
				loss += -step*lam[k]*sc.a1[k] + 0.5*step*step*lam[k]*(1-c[k])*sc.a2[k]
			}
			for k := 0; k < p; k++ {
				sRow := st.s.RawRowView(k)
				dyRow := sc.dy.RawRowView(k)
				shift := step * c[k]
				sum := 0.0
				for t, v := range sRow {
					sum += st.fun.Eval(v - shift*dyRow[t])
				}
				loss += sum * inv
			}
			if !math.IsNaN(loss) && loss < loss0 {
				accepted = true
				break
			}
		}
		step *= 0.5
	}

	// No improving step: keep the current unmixing (monotone descent).
	if accepted {
		w.Copy(sc.wTry)
		y.Mul(w, x)
	}

	return gMax, nil
}
