package abcd

import (
	"fmt"
	"math"

	"github.com/maseology/abcd/forcing"
)

// Penalty loss returned for parameter sets that drive the model out of its numeric domain
const Penalty = 1e30

// Loss reduces paired observed and simulated flows to a scalar
type Loss int

const (
	SSE    Loss = iota // Σ(obs-sim)²
	LogSSE             // Σ(ln(obs+1)-ln(sim+1))², kept for comparison; not used by default
)

func (l Loss) residual(o, s float64) float64 {
	switch l {
	case LogSSE:
		d := math.Log(o+1.) - math.Log(s+1.)
		return d * d
	default:
		d := o - s
		return d * d
	}
}

// Objective sums squared residuals between obs and the simulated runoff.
// A discriminant failure (or any non-finite state) yields Penalty with a nil error.
func Objective(p Parameters, frc *forcing.Forcing, s0 State, obs []float64) (float64, error) {
	f, err := NewObjective(frc, s0, obs, SSE)
	if err != nil {
		return 0., err
	}
	if err := p.Validate(); err != nil {
		return 0., err
	}
	return f(p), nil
}

// NewObjective validates the inputs once and returns a reentrant loss function.
// Calls share no mutable state and may run concurrently.
func NewObjective(frc *forcing.Forcing, s0 State, obs []float64, loss Loss) (func(Parameters) float64, error) {
	if n := nsteps(frc); len(obs) != n {
		return nil, fmt.Errorf("%w: %d forcing months, %d observations", ErrLengthMismatch, n, len(obs))
	}
	if err := checkForcing(frc); err != nil {
		return nil, err
	}
	for j, v := range obs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("abcd: observation %d (%v) is not finite", j, v)
		}
	}
	return func(p Parameters) float64 {
		if p.Validate() != nil {
			return Penalty
		}
		of := 0.
		if err := fold(p, frc, s0, func(j int, s *Step) {
			of += loss.residual(obs[j], s.Q)
		}); err != nil {
			return Penalty
		}
		if math.IsNaN(of) || math.IsInf(of, 0) || of > Penalty {
			return Penalty
		}
		return of
	}, nil
}
