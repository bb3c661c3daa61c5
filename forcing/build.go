package forcing

import (
	"fmt"
	"math"
	"time"
)

// Daily station record set: precipitation (mm/d), mean air temperature (°C) and discharge (ft³/s, NaN if unmeasured)
type Daily struct {
	T        []time.Time
	P, Ta, Q []float64
}

// ReadDaily loads a daily station table: date,P,T,Q
func ReadDaily(fp string) (*Daily, error) {
	ts, vs, err := readTable(fp, 3)
	if err != nil {
		return nil, fmt.Errorf("forcing.ReadDaily%v", err)
	}
	return &Daily{T: ts, P: vs[0], Ta: vs[1], Q: vs[2]}, nil
}

// Build aggregates daily station data to a monthly forcing with PET computed at latitude latDeg,
// along with the observed monthly flow depth [mm/mon] over a catchment of areaKm2.
// Partial months at either end are dropped; incomplete months in between are an error.
func Build(d *Daily, latDeg, areaKm2 float64) (*Forcing, []float64, error) {
	if len(d.T) == 0 {
		return nil, nil, fmt.Errorf("forcing.Build: no daily records")
	}
	if areaKm2 <= 0. {
		return nil, nil, fmt.Errorf("forcing.Build: invalid catchment area %f", areaKm2)
	}
	mts, mp, np := Monthly(d.T, d.P, Sum)
	_, mt, nt := Monthly(d.T, d.Ta, Mean)
	_, mq, nq := Monthly(d.T, d.Q, Mean)

	complete := func(k int) bool {
		nd := DaysIn(mts[k])
		return np[k] == nd && nt[k] == nd
	}

	i0, i1 := 0, len(mts)
	for i0 < i1 && !complete(i0) {
		i0++
	}
	for i1 > i0 && !complete(i1-1) {
		i1--
	}
	if i0 == i1 {
		return nil, nil, fmt.Errorf("forcing.Build: no complete months")
	}

	cmis := 0
	frc := Forcing{}
	obs := make([]float64, 0, i1-i0)
	for k := i0; k < i1; k++ {
		if !complete(k) {
			fmt.Println(incomplete(mts[k], np[k], nt[k]))
			cmis++
			continue
		}
		frc.T = append(frc.T, mts[k])
		frc.P = append(frc.P, mp[k])
		frc.Ta = append(frc.Ta, mt[k])
		if nq[k] > 0 {
			obs = append(obs, CfsToMM(mq[k], DaysIn(mts[k]), areaKm2))
		} else {
			obs = append(obs, math.NaN())
		}
	}
	if cmis > 0 {
		return nil, nil, fmt.Errorf("forcing.Build: %w (%d incomplete months)", ErrGap, cmis)
	}
	frc.SetPET(latDeg)
	fmt.Printf("  Months available: %s to %s in %d steps\n", frc.T[0].Format("2006-01"), frc.T[len(frc.T)-1].Format("2006-01"), len(frc.T))
	return &frc, obs, frc.Check()
}

// incomplete reports a month by the shorter of its precipitation and temperature records
func incomplete(mt time.Time, np, nt int) string {
	return fmt.Sprintf("   > incomplete month %s (%d of %d days)", mt.Format("2006-01"), min(np, nt), DaysIn(mt))
}
