package forcing

import "time"

// Forcing holds an ordered, gap-free monthly climate series
type Forcing struct {
	T          []time.Time // [month ID] first day of month
	P, Ta, PET []float64   // [month ID] precipitation (mm/mon), mean air temperature (°C), potential evapotranspiration (mm/mon)
}

func (frc *Forcing) Len() int { return len(frc.T) }

// Subset returns a copy of the forcing between months i0 and i1 (exclusive)
func (frc *Forcing) Subset(i0, i1 int) Forcing {
	cp := func(v []float64) []float64 {
		o := make([]float64, i1-i0)
		copy(o, v[i0:i1])
		return o
	}
	t := make([]time.Time, i1-i0)
	copy(t, frc.T[i0:i1])
	return Forcing{
		T:   t,
		P:   cp(frc.P),
		Ta:  cp(frc.Ta),
		PET: cp(frc.PET),
	}
}

// MonthStart truncates t to the first instant of its calendar month (UTC)
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days in the month of t
func DaysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
