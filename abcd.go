package abcd

import (
	"math"
	"strconv"

	"github.com/maseology/abcd/forcing"
)

// Simulate runs the ABCD model month-by-month over frc starting from s0.
// A zero-length forcing returns the initial record only. Should the ET-opportunity
// quadratic fail at some step, the trajectory up to the preceding step is returned
// together with a *DomainError.
func Simulate(p Parameters, frc *forcing.Forcing, s0 State) (*Trajectory, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := checkForcing(frc); err != nil {
		return nil, err
	}
	tr := Trajectory{Steps: make([]Step, 1, nsteps(frc)+1)}
	tr.Steps[0] = Step{S: s0.S, G: s0.G, A: s0.A}
	err := fold(p, frc, s0, func(_ int, s *Step) {
		tr.Steps = append(tr.Steps, *s)
	})
	return &tr, err
}

func nsteps(frc *forcing.Forcing) int {
	if frc == nil {
		return 0
	}
	return frc.Len()
}

func checkForcing(frc *forcing.Forcing) error {
	if frc == nil {
		return nil
	}
	return frc.Check()
}

// fold streams the recursion without retaining history; fn receives each month in forcing order
func fold(p Parameters, frc *forcing.Forcing, s0 State, fn func(j int, s *Step)) error {
	st := s0
	for j := 0; j < nsteps(frc); j++ {
		s, err := step(p, st, frc.P[j], frc.Ta[j], frc.PET[j])
		if err != nil {
			err.Step = j + 1
			return err
		}
		fn(j, &s)
		st = s.State()
	}
	return nil
}

// step advances state x by one month given precipitation, air temperature and PET
func step(p Parameters, x State, pre, tmp, pet float64) (Step, *DomainError) {
	var s Step
	s.Mt, s.Pe, s.PETe, s.A = partition(p, pre, tmp, pet, x.A)

	s.W = s.Pe + x.S
	y, disc, ok := opportunity(s.W, p.A, p.B)
	if !ok {
		return s, &DomainError{Var: "disc", Value: disc}
	}
	s.Y = y

	f := math.Exp(-s.PETe / p.B)
	s.S = s.Y * f
	s.E = s.Y * (1. - f)

	excess := round2(s.W - s.Y)
	s.G = (x.G + p.C*excess) / (1. + p.D)
	s.Q = (1.-p.C)*excess + p.D*s.G

	for _, v := range [...]struct {
		n string
		v float64
	}{{"Y", s.Y}, {"S", s.S}, {"E", s.E}, {"G", s.G}, {"Q", s.Q}, {"A", s.A}} {
		if math.IsNaN(v.v) || math.IsInf(v.v, 0) {
			return s, &DomainError{Var: v.n, Value: v.v}
		}
	}
	return s, nil
}

// partition splits the month into melt or accumulation regimes on temperature alone
func partition(p Parameters, pre, tmp, pet, a0 float64) (mt, pe, pete, a float64) {
	if tmp > p.Tm { // melt
		mt = math.Min(p.E*(tmp-p.Tm)*a0, a0)
		return mt, pre + mt, pet, a0 - mt
	}
	return 0., 0., 0., a0 + pre // accumulate: all precipitation held as frozen storage
}

// opportunity solves the ABCD quadratic for the smaller root Y, bounded by [0, W]
func opportunity(w, a, b float64) (y, disc float64, ok bool) {
	w1 := (w + b) / (2. * a)
	w2 := w * b / a
	disc = w1*w1 - w2
	if !(disc >= 0.) || math.IsInf(disc, 0) { // also catches NaN
		return 0., disc, false
	}
	return w1 - math.Sqrt(disc), disc, true
}

// round2 rounds to two decimals on the exact decimal value of x (ties to even)
func round2(x float64) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	return v
}
