package forcing

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrGap       = errors.New("forcing: non-sequential months")
	ErrAlign     = errors.New("forcing: series lengths differ")
	ErrNotFinite = errors.New("forcing: non-finite value")
)

// Check verifies the series is aligned, strictly monthly with no gaps or repeated periods, and finite
func (frc *Forcing) Check() error {
	nt := len(frc.T)
	if len(frc.P) != nt || len(frc.Ta) != nt || len(frc.PET) != nt {
		return fmt.Errorf("%w: T=%d P=%d Ta=%d PET=%d", ErrAlign, nt, len(frc.P), len(frc.Ta), len(frc.PET))
	}
	for j, t := range frc.T {
		if j > 0 {
			want := MonthStart(frc.T[j-1]).AddDate(0, 1, 0)
			if !MonthStart(t).Equal(want) {
				return fmt.Errorf("%w: %s follows %s", ErrGap, t.Format("2006-01"), frc.T[j-1].Format("2006-01"))
			}
		}
		for _, v := range [3]float64{frc.P[j], frc.Ta[j], frc.PET[j]} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w at %s", ErrNotFinite, t.Format("2006-01"))
			}
		}
	}
	return nil
}

func (frc *Forcing) CheckAndPrint() {
	fmt.Println("Forcing summary:")
	nt := len(frc.T)
	if nt == 0 {
		fmt.Println(" empty")
		return
	}
	fmt.Printf(" %s to %s, monthly (%d timesteps)\n", frc.T[0].Format("2006-01"), frc.T[nt-1].Format("2006-01"), nt)

	sp, se, st := 0., 0., 0.
	for j := range frc.T {
		sp += frc.P[j]
		se += frc.PET[j]
		st += frc.Ta[j]
	}
	sp *= 12. / float64(nt)
	se *= 12. / float64(nt)
	st /= float64(nt)
	fmt.Printf(" totals (mm/yr): P: %.1f   PET: %.1f   mean T: %.2f°C\n", sp, se, st)
}
