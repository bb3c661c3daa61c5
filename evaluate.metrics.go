package abcd

import (
	"fmt"

	"github.com/maseology/objfunc"
)

// Scores goodness-of-fit summary of a simulated/observed pair
type Scores struct {
	RMSE, NSE, KGE, Bias float64
}

func checkPair(obs, sim []float64, nmin int) error {
	if len(obs) != len(sim) {
		return fmt.Errorf("%w: %d observed, %d simulated", ErrLengthMismatch, len(obs), len(sim))
	}
	if len(obs) < nmin {
		return fmt.Errorf("%w: %d values, need at least %d", ErrEmptySeries, len(obs), nmin)
	}
	return nil
}

// RMSE root-mean-square error
func RMSE(obs, sim []float64) (float64, error) {
	if err := checkPair(obs, sim, 1); err != nil {
		return 0., err
	}
	return objfunc.RMSE(obs, sim), nil
}

// NSE Nash-Sutcliffe efficiency; observed flows must vary
func NSE(obs, sim []float64) (float64, error) {
	if err := checkPair(obs, sim, 2); err != nil {
		return 0., err
	}
	m := 0.
	for _, v := range obs {
		m += v
	}
	m /= float64(len(obs))
	for _, v := range obs {
		if v != m {
			return objfunc.NSE(obs, sim), nil
		}
	}
	return 0., fmt.Errorf("abcd.NSE: observed series has zero variance")
}

// Evaluate computes all reporting scores
func Evaluate(obs, sim []float64) (Scores, error) {
	var sc Scores
	var err error
	if sc.RMSE, err = RMSE(obs, sim); err != nil {
		return sc, err
	}
	if sc.NSE, err = NSE(obs, sim); err != nil {
		return sc, err
	}
	sc.KGE = objfunc.KGE(obs, sim)
	sc.Bias = objfunc.Bias(obs, sim)
	return sc, nil
}

func (sc Scores) String() string {
	return fmt.Sprintf("KGE: %.3f  NSE: %.3f  RMSE: %.3f  Bias: %.3f", sc.KGE, sc.NSE, sc.RMSE, sc.Bias)
}
