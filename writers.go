package abcd

import (
	"fmt"
	"strings"
	"time"

	"github.com/maseology/abcd/forcing"
	"github.com/maseology/mmio"
)

// WriteTrajectory saves the trajectory as a table keyed by month (rows) and variable (columns).
// The first row is the initial state, dated one month before the forcing. obs may be nil.
func WriteTrajectory(fp string, frc *forcing.Forcing, tr *Trajectory, obs []float64) error {
	if tr.Len() != frc.Len()+1 {
		return fmt.Errorf("%w: %d forcing months, %d trajectory records", ErrLengthMismatch, frc.Len(), tr.Len())
	}
	if obs != nil && len(obs) != frc.Len() {
		return fmt.Errorf("%w: %d forcing months, %d observations", ErrLengthMismatch, frc.Len(), len(obs))
	}

	cols := make([][]float64, len(Columns))
	for k, c := range Columns {
		cols[k], _ = tr.Column(c)
	}

	hdr := "date,step," + strings.Join(Columns, ",")
	if obs != nil {
		hdr += ",obs"
	}
	csvw := mmio.NewCSVwriter(fp)
	defer csvw.Close()
	if err := csvw.WriteHead(hdr); err != nil {
		return fmt.Errorf("abcd.WriteTrajectory: %v", err)
	}
	for i := range tr.Steps {
		var dt time.Time
		if i == 0 {
			if frc.Len() > 0 {
				dt = frc.T[0].AddDate(0, -1, 0)
			}
		} else {
			dt = frc.T[i-1]
		}
		ln := make([]interface{}, 0, len(Columns)+3)
		ln = append(ln, dt.Format("2006-01-02"), i)
		for k := range Columns {
			ln = append(ln, cols[k][i])
		}
		if obs != nil {
			if i == 0 {
				ln = append(ln, "")
			} else {
				ln = append(ln, obs[i-1])
			}
		}
		csvw.WriteLine(ln...)
	}
	return nil
}

// WriteParams saves the calibrated parameter set and its scores
func WriteParams(fp string, c *Calibration) error {
	tw, err := mmio.NewTXTwriter(fp)
	if err != nil {
		return fmt.Errorf("abcd.WriteParams: %v", err)
	}
	defer tw.Close()
	tw.WriteLine(mmio.MMtime(time.Now()))
	tw.WriteLine(c.ID)
	for i, v := range c.Par.Slice() {
		tw.WriteLine(fmt.Sprintf("%s\t%f", ParameterNames[i], v))
	}
	tw.WriteLine(fmt.Sprintf("SSE\t%f", c.Loss))
	tw.WriteLine(fmt.Sprintf("RMSE\t%f", c.Scores.RMSE))
	tw.WriteLine(fmt.Sprintf("NSE\t%f", c.Scores.NSE))
	tw.WriteLine(fmt.Sprintf("KGE\t%f", c.Scores.KGE))
	tw.WriteLine(fmt.Sprintf("Bias\t%f", c.Scores.Bias))
	return nil
}

// WriteSamples saves ranked Monte Carlo realizations
func WriteSamples(fp string, ranked []Sampled) error {
	csvw := mmio.NewCSVwriter(fp)
	defer csvw.Close()
	if err := csvw.WriteHead("rank,sample,sse,nse," + strings.Join(ParameterNames[:], ",")); err != nil {
		return fmt.Errorf("abcd.WriteSamples: %v", err)
	}
	for i, s := range ranked {
		csvw.WriteLine(i+1, s.K, s.Loss, s.NSE, s.Par.A, s.Par.B, s.Par.C, s.Par.D, s.Par.E, s.Par.Tm)
	}
	return nil
}

// WriteUncertainty saves the GLUE runoff bounds alongside observations: date,q,p5,p95
func WriteUncertainty(fp string, frc *forcing.Forcing, obs, p5, p95 []float64) error {
	n := frc.Len()
	if len(obs) != n || len(p5) != n || len(p95) != n {
		return fmt.Errorf("%w: %d forcing months, %d observations, %d/%d bounds", ErrLengthMismatch, n, len(obs), len(p5), len(p95))
	}
	csvw := mmio.NewCSVwriter(fp)
	defer csvw.Close()
	if err := csvw.WriteHead("date,q,p5,p95"); err != nil {
		return fmt.Errorf("abcd.WriteUncertainty: %v", err)
	}
	for j, t := range frc.T {
		csvw.WriteLine(t.Format("2006-01-02"), obs[j], p5[j], p95[j])
	}
	return nil
}

// PlotObsSim renders an observed vs. simulated hydrograph
func PlotObsSim(fp string, obs, sim []float64) {
	mmio.ObsSim(fp, obs, sim)
}
