package abcd

import (
	"fmt"
	"math"

	"github.com/maseology/mmaths"
)

const NumParams = 6

var ParameterNames = [NumParams]string{"a", "b", "c", "d", "e", "Tm"}

// Parameters of the ABCD model with frozen-storage extension
type Parameters struct {
	A  float64 // ET/recharge vs. runoff propensity (0,1]
	B  float64 // soil moisture storage capacity [mm]
	C  float64 // fraction of excess routed to groundwater [0,1]
	D  float64 // groundwater recession rate [0,1]
	E  float64 // degree-month melt coefficient [0,1]
	Tm float64 // melt threshold temperature [°C]
}

func (p Parameters) Slice() []float64 {
	return []float64{p.A, p.B, p.C, p.D, p.E, p.Tm}
}

func ParametersFromSlice(x []float64) (Parameters, error) {
	if len(x) != NumParams {
		return Parameters{}, fmt.Errorf("%w: expecting %d values, got %d", ErrInvalidParameter, NumParams, len(x))
	}
	return Parameters{A: x[0], B: x[1], C: x[2], D: x[3], E: x[4], Tm: x[5]}, nil
}

// Validate rejects parameter sets the simulator cannot evaluate. Box bounds are not enforced here.
func (p Parameters) Validate() error {
	for i, v := range p.Slice() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s=%v", ErrInvalidParameter, ParameterNames[i], v)
		}
	}
	if p.B <= 0. {
		return fmt.Errorf("%w: b=%v must be positive", ErrInvalidParameter, p.B)
	}
	return nil
}

func (p Parameters) String() string {
	return fmt.Sprintf("a=%.5f b=%.3f c=%.5f d=%.5f e=%.5f Tm=%.3f", p.A, p.B, p.C, p.D, p.E, p.Tm)
}

// Range closed interval [Lo, Hi]
type Range struct{ Lo, Hi float64 }

// Bounds box constraints in ParameterNames order
type Bounds [NumParams]Range

// DefaultBounds generous calibration box
var DefaultBounds = Bounds{
	{0.1, 1.},    // a
	{10., 1000.}, // b
	{0., 1.},     // c
	{0., 1.},     // d
	{0., 1.},     // e
	{-5., 5.},    // Tm
}

func (bnds Bounds) Validate() error {
	for i, r := range bnds {
		if math.IsNaN(r.Lo) || math.IsNaN(r.Hi) || math.IsInf(r.Lo, 0) || math.IsInf(r.Hi, 0) {
			return fmt.Errorf("%w: %s bounds [%v, %v] not finite", ErrInvalidParameter, ParameterNames[i], r.Lo, r.Hi)
		}
		if r.Lo > r.Hi {
			return fmt.Errorf("%w: %s lower bound %v exceeds upper bound %v", ErrInvalidParameter, ParameterNames[i], r.Lo, r.Hi)
		}
	}
	if bnds[1].Lo <= 0. {
		return fmt.Errorf("%w: b lower bound %v must be positive", ErrInvalidParameter, bnds[1].Lo)
	}
	return nil
}

// Transform maps a sample from the unit hypercube onto the box
func (bnds Bounds) Transform(u []float64) Parameters {
	x := make([]float64, NumParams)
	for i, r := range bnds {
		x[i] = mmaths.LinearTransform(r.Lo, r.Hi, u[i])
	}
	p, _ := ParametersFromSlice(x)
	return p
}

func (bnds Bounds) Contains(p Parameters) bool {
	for i, v := range p.Slice() {
		if v < bnds[i].Lo || v > bnds[i].Hi {
			return false
		}
	}
	return true
}
