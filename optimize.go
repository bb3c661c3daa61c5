package abcd

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/maseology/abcd/forcing"
	"github.com/maseology/glbopt"
	mrg63k3a "github.com/maseology/pnrg/MRG63k3a"
)

// Optimizer is any bounded global minimizer over the ndim unit hypercube
type Optimizer func(fun func(u []float64) float64, ndim int) (ubest []float64, fbest float64)

// SCE shuffled complex evolution with ncomplex complexes
func SCE(ncomplex int, rng *rand.Rand) Optimizer {
	return func(fun func([]float64) float64, ndim int) ([]float64, float64) {
		return glbopt.SCE(ncomplex, ndim, rng, fun, true)
	}
}

// SurrogateRBF radial-basis-function surrogate search limited to niter evaluations
func SurrogateRBF(niter int, rng *rand.Rand) Optimizer {
	return func(fun func([]float64) float64, ndim int) ([]float64, float64) {
		return glbopt.SurrogateRBF(niter, ndim, rng, fun)
	}
}

// NewRNG MRG63k3a-backed generator
func NewRNG(seed int64) *rand.Rand {
	rng := rand.New(mrg63k3a.New())
	rng.Seed(seed)
	return rng
}

// Calibration outcome of a single optimizer run
type Calibration struct {
	ID      string
	Par     Parameters
	Loss    float64 // sum of squared errors
	Traj    *Trajectory
	Scores  Scores
	Evals   int64
	Elapsed time.Duration
}

// Calibrate searches bnds for the parameter set minimizing the squared error against obs,
// then re-simulates the best set and scores it. mon may be nil.
func Calibrate(opt Optimizer, frc *forcing.Forcing, s0 State, obs []float64, bnds Bounds, mon *Monitor) (*Calibration, error) {
	if err := bnds.Validate(); err != nil {
		return nil, err
	}
	of, err := NewObjective(frc, s0, obs, SSE)
	if err != nil {
		return nil, err
	}
	if len(obs) == 0 {
		return nil, fmt.Errorf("%w: nothing to calibrate against", ErrEmptySeries)
	}

	var nevals atomic.Int64
	gen := func(u []float64) float64 {
		f := of(bnds.Transform(u))
		nevals.Add(1)
		mon.observe(f)
		return f
	}

	tt := time.Now()
	ufinal, _ := opt(gen, NumParams)
	cal := Calibration{
		ID:      uuid.New().String(),
		Par:     bnds.Transform(ufinal),
		Evals:   nevals.Load(),
		Elapsed: time.Since(tt),
	}
	cal.Loss = of(cal.Par)
	mon.done(cal.Elapsed, cal.Loss)
	if cal.Loss >= Penalty {
		return nil, fmt.Errorf("%w: no valid parameter set found after %d evaluations", ErrNumericDomain, cal.Evals)
	}

	if cal.Traj, err = Simulate(cal.Par, frc, s0); err != nil {
		return nil, err
	}
	if cal.Scores, err = Evaluate(obs, cal.Traj.Q()); err != nil {
		return nil, err
	}
	return &cal, nil
}

func (c *Calibration) Print() {
	fmt.Printf("\nfinal parameters:\n")
	for i, v := range c.Par.Slice() {
		fmt.Printf("\t%s:=\t%v\n", ParameterNames[i], v)
	}
	fmt.Printf("  SSE: %.4f  (%d evaluations in %v)\n", c.Loss, c.Evals, c.Elapsed)
	fmt.Printf("  %v\n", c.Scores)
}

// SplitSample calibrates on the first n months, then carries the calibrated model's final state
// through the remaining months and scores it against the held-out observations.
func SplitSample(opt Optimizer, frc *forcing.Forcing, s0 State, obs []float64, n int, bnds Bounds, mon *Monitor) (*Calibration, Scores, error) {
	nt := nsteps(frc)
	if len(obs) != nt {
		return nil, Scores{}, fmt.Errorf("%w: %d forcing months, %d observations", ErrLengthMismatch, nt, len(obs))
	}
	if n < 1 || n > nt-2 {
		return nil, Scores{}, fmt.Errorf("%w: cannot split %d months at %d", ErrEmptySeries, nt, n)
	}
	fcal, fval := frc.Subset(0, n), frc.Subset(n, nt)
	cal, err := Calibrate(opt, &fcal, s0, obs[:n], bnds, mon)
	if err != nil {
		return nil, Scores{}, err
	}
	tr, err := Simulate(cal.Par, &fval, cal.Traj.Final())
	if err != nil {
		return cal, Scores{}, err
	}
	sc, err := Evaluate(obs[n:], tr.Q())
	return cal, sc, err
}
