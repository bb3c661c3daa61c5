package forcing

import (
	"math"
	"time"
)

const cfs2cms = 0.028316846592 // [ft³/s] to [m³/s]

// Agg monthly aggregation method
type Agg int

const (
	Sum Agg = iota
	Mean
)

// CfsToHm3 converts a monthly-mean discharge [ft³/s] to a monthly volume [hm³]
func CfsToHm3(q float64, days int) float64 {
	return q * cfs2cms * 86400. * float64(days) / 1e6
}

// Hm3ToMM converts a volume [hm³] to an areal depth [mm] over a catchment area [km²]
func Hm3ToMM(v, areaKm2 float64) float64 {
	return v * 1000. / areaKm2
}

// CfsToMM converts a monthly-mean discharge [ft³/s] to a monthly depth [mm/mon]
func CfsToMM(q float64, days int, areaKm2 float64) float64 {
	return Hm3ToMM(CfsToHm3(q, days), areaKm2)
}

// Monthly aggregates a daily series into calendar months spanning the first to the last date.
// Months with no data are returned as NaN; n holds the count of daily values in each month.
func Monthly(dts []time.Time, v []float64, agg Agg) (mts []time.Time, mv []float64, n []int) {
	if len(dts) == 0 {
		return
	}
	m0, m1 := MonthStart(dts[0]), MonthStart(dts[len(dts)-1])
	for _, t := range dts {
		mt := MonthStart(t)
		if mt.Before(m0) {
			m0 = mt
		}
		if mt.After(m1) {
			m1 = mt
		}
	}
	xr := make(map[int64]int)
	for t := m0; !t.After(m1); t = t.AddDate(0, 1, 0) {
		xr[t.Unix()] = len(mts)
		mts = append(mts, t)
	}
	mv, n = make([]float64, len(mts)), make([]int, len(mts))
	for i, t := range dts {
		if math.IsNaN(v[i]) {
			continue
		}
		k := xr[MonthStart(t).Unix()]
		mv[k] += v[i]
		n[k]++
	}
	for k := range mv {
		switch {
		case n[k] == 0:
			mv[k] = math.NaN()
		case agg == Mean:
			mv[k] /= float64(n[k])
		}
	}
	return
}
