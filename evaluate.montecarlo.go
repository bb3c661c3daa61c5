package abcd

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/maseology/abcd/forcing"
	"github.com/maseology/goHydro/glue"
	"github.com/maseology/montecarlo/smpln"
)

// Sampled a single Monte Carlo realization
type Sampled struct {
	K    int       // sample index in the sampling plan
	U    []float64 // unit-hypercube coordinates
	Par  Parameters
	Loss float64 // sum of squared errors, Penalty if out of domain
	NSE  float64 // NaN when the realization is out of domain
}

// Sample evaluates n Latin-hypercube samples of bnds using nwrkrs concurrent workers and
// returns them ranked from best to worst loss. mon may be nil.
func Sample(frc *forcing.Forcing, s0 State, obs []float64, bnds Bounds, n, nwrkrs int, rng *rand.Rand, mon *Monitor, print bool) ([]Sampled, error) {
	if err := bnds.Validate(); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d samples requested", ErrEmptySeries, n)
	}
	if nwrkrs < 1 {
		nwrkrs = 1
	}
	of, err := NewObjective(frc, s0, obs, SSE)
	if err != nil {
		return nil, err
	}

	sp := smpln.NewLHC(rng, n, NumParams, false)
	out := make([]Sampled, n)
	for k := 0; k < n; k++ {
		u := make([]float64, NumParams)
		for j := 0; j < NumParams; j++ {
			u[j] = sp.U[j][k]
		}
		out[k] = Sampled{K: k, U: u, Par: bnds.Transform(u)}
	}

	var bar *uiprogress.Bar
	if print {
		uiprogress.Start()
		bar = uiprogress.AddBar(n).AppendCompleted().PrependElapsed()
	}

	tt := time.Now()
	var wg sync.WaitGroup
	ks := make(chan int, nwrkrs)
	for w := 0; w < nwrkrs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range ks {
				s := &out[k]
				s.Loss = of(s.Par)
				s.NSE = math.NaN()
				if s.Loss < Penalty && len(obs) > 1 {
					if tr, err := Simulate(s.Par, frc, s0); err == nil {
						if nse, err := NSE(obs, tr.Q()); err == nil {
							s.NSE = nse
						}
					}
				}
				mon.observe(s.Loss)
				if bar != nil {
					bar.Incr()
				}
			}
		}()
	}
	for k := 0; k < n; k++ {
		ks <- k
	}
	close(ks)
	wg.Wait()
	if print {
		uiprogress.Stop()
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Loss < out[j].Loss })
	mon.done(time.Since(tt), out[0].Loss)
	return out, nil
}

// Behavioural returns, in rank order, the samples whose NSE meets minNSE
func Behavioural(ranked []Sampled, minNSE float64) []Sampled {
	var o []Sampled
	for _, s := range ranked {
		if !math.IsNaN(s.NSE) && s.NSE >= minNSE {
			o = append(o, s)
		}
	}
	return o
}

// Uncertainty returns the likelihood-weighted 5th and 95th percentile of monthly runoff over
// the behavioural set, using each realization's NSE as its likelihood.
func Uncertainty(frc *forcing.Forcing, s0 State, behavioural []Sampled) (p5, p95 []float64, err error) {
	if len(behavioural) == 0 {
		return nil, nil, fmt.Errorf("%w: no behavioural realizations", ErrEmptySeries)
	}
	nt := nsteps(frc)
	gQ := make([]glue.GLUE, nt)
	for j := range gQ {
		gQ[j] = make(glue.GLUE, len(behavioural))
	}
	for i, s := range behavioural {
		if math.IsNaN(s.NSE) {
			return nil, nil, fmt.Errorf("abcd.Uncertainty: sample %d has no likelihood", s.K)
		}
		tr, err := Simulate(s.Par, frc, s0)
		if err != nil {
			return nil, nil, fmt.Errorf("abcd.Uncertainty: sample %d: %w", s.K, err)
		}
		for j, q := range tr.Q() {
			gQ[j][i] = glue.GLUEi{Likelihood: s.NSE, Value: q}
		}
	}

	p5, p95 = make([]float64, nt), make([]float64, nt)
	for j := range gQ {
		sort.Sort(gQ[j])
		p5[j], p95[j] = gQ[j].P5o95()
	}
	return p5, p95, nil
}
