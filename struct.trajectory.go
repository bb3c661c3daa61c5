package abcd

import "fmt"

// Step all fluxes and storages of a single month [mm]
type Step struct {
	Mt, Pe, PETe float64 // melt, effective precipitation, effective PET
	W, Y, E, Q   float64 // available water, ET opportunity, actual ET, runoff
	S, G, A      float64 // storages at the end of the month
}

func (s Step) State() State { return State{S: s.S, G: s.G, A: s.A} }

// Trajectory of a simulation. Steps[0] holds the initial state only; Steps[i] results from forcing record i-1.
type Trajectory struct {
	Steps []Step
}

// Columns variable names available through Column
var Columns = []string{"mt", "Pe", "PETe", "W", "Y", "E", "Q", "S", "G", "A"}

func (tr *Trajectory) Len() int { return len(tr.Steps) }

// Q simulated runoff, excluding the initial record
func (tr *Trajectory) Q() []float64 {
	o, _ := tr.column("Q", 1)
	return o
}

// Final state at the end of the simulation
func (tr *Trajectory) Final() State {
	return tr.Steps[len(tr.Steps)-1].State()
}

// Column returns the named variable for every record, including the initial one
func (tr *Trajectory) Column(name string) ([]float64, error) {
	return tr.column(name, 0)
}

func (tr *Trajectory) column(name string, i0 int) ([]float64, error) {
	var get func(s *Step) float64
	switch name {
	case "mt":
		get = func(s *Step) float64 { return s.Mt }
	case "Pe":
		get = func(s *Step) float64 { return s.Pe }
	case "PETe":
		get = func(s *Step) float64 { return s.PETe }
	case "W":
		get = func(s *Step) float64 { return s.W }
	case "Y":
		get = func(s *Step) float64 { return s.Y }
	case "E":
		get = func(s *Step) float64 { return s.E }
	case "Q":
		get = func(s *Step) float64 { return s.Q }
	case "S":
		get = func(s *Step) float64 { return s.S }
	case "G":
		get = func(s *Step) float64 { return s.G }
	case "A":
		get = func(s *Step) float64 { return s.A }
	default:
		return nil, fmt.Errorf("abcd: unknown trajectory variable %q", name)
	}
	if i0 > len(tr.Steps) {
		i0 = len(tr.Steps)
	}
	o := make([]float64, len(tr.Steps)-i0)
	for i := range o {
		o[i] = get(&tr.Steps[i+i0])
	}
	return o, nil
}
