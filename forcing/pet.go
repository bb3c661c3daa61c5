package forcing

import (
	"fmt"
	"math"
	"time"

	"github.com/im7mortal/UTM"
	"github.com/maseology/goHydro/pet"
	"github.com/maseology/goHydro/solirrad"
)

const (
	pAtm = 101300. // [Pa]

	// Prescott-type coefficients (Novák, 2012, pg.232)
	prescottA = .27
	prescottB = .52
	nN        = .5 // mean ratio of sunshine hours to total possible over a month
)

func etRadToGlobal(Ke float64) float64 {
	return Ke * (prescottA + prescottB*nN)
}

// dailyPET Makkink potential evaporation [mm/d] on a horizontal surface
func dailyPET(si solirrad.SolIrad, doy int, tC float64) float64 {
	Kg := etRadToGlobal(si.PSIdaily(doy))
	ep := pet.Makkink(Kg, tC, pAtm) * 1000. // [m/d] to [mm/d]
	if math.IsNaN(ep) || ep < 0. {
		return 0.
	}
	return ep
}

// MonthlyPET sums daily PET [mm/mon] over the calendar month of mt, holding the monthly mean temperature
func MonthlyPET(latDeg float64, mt time.Time, tC float64) float64 {
	return monthlyPET(solirrad.New(latDeg, 0., 0.), mt, tC)
}

func monthlyPET(si solirrad.SolIrad, mt time.Time, tC float64) float64 {
	s := 0.
	d0 := MonthStart(mt)
	for d := 0; d < DaysIn(d0); d++ {
		s += dailyPET(si, d0.AddDate(0, 0, d).YearDay(), tC)
	}
	return s
}

// LatitudeFromUTM converts a northern hemisphere UTM coordinate to latitude [deg]
func LatitudeFromUTM(easting, northing float64, zone int) (float64, error) {
	lat, _, err := UTM.ToLatLon(easting, northing, zone, "", true)
	if err != nil {
		return 0., fmt.Errorf("forcing.LatitudeFromUTM: %v", err)
	}
	return lat, nil
}

// SetPET fills the PET series from temperature for the given latitude
func (frc *Forcing) SetPET(latDeg float64) {
	si := solirrad.New(latDeg, 0., 0.)
	frc.PET = make([]float64, len(frc.T))
	for j, t := range frc.T {
		frc.PET[j] = monthlyPET(si, t, frc.Ta[j])
	}
}
