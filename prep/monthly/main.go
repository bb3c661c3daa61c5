package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/maseology/abcd/forcing"
	"github.com/maseology/mmio"
)

// builds a monthly forcing table (date,P,T,PET) and observed flow depths (date,Q) from daily station data (date,P,T,Q[cfs])
func main() {
	o, err := loadOptions(os.Args[1:])
	if err != nil {
		log.Fatalf(" %v", err)
	}

	tt := mmio.NewTimer()
	defer tt.Print("monthly forcing complete")

	latitude := o.lat
	if math.IsNaN(latitude) {
		sp := strings.Split(o.utm, ",")
		if len(sp) != 3 {
			log.Fatalf(" either -lat or -utm easting,northing,zone is required")
		}
		e, err1 := strconv.ParseFloat(sp[0], 64)
		n, err2 := strconv.ParseFloat(sp[1], 64)
		z, err3 := strconv.Atoi(sp[2])
		if err1 != nil || err2 != nil || err3 != nil {
			log.Fatalf(" invalid -utm %q", o.utm)
		}
		if latitude, err = forcing.LatitudeFromUTM(e, n, z); err != nil {
			log.Fatalf("%v", err)
		}
	}
	fmt.Printf(" catchment latitude: %.4f°  area: %.1f km²\n", latitude, o.area)

	d, err := forcing.ReadDaily(o.dailyfp)
	if err != nil {
		log.Fatalf("%v", err)
	}
	frc, obs, err := forcing.Build(d, latitude, o.area)
	if err != nil {
		log.Fatalf("%v", err)
	}
	frc.CheckAndPrint()

	if err := frc.WriteCSV(o.prfx + "forcing.csv"); err != nil {
		log.Fatalf("%v", err)
	}
	csvw := mmio.NewCSVwriter(o.prfx + "obs.csv")
	defer csvw.Close()
	if err := csvw.WriteHead("date,Q"); err != nil {
		log.Fatalf("%v", err)
	}
	nobs := 0
	for j, t := range frc.T {
		if math.IsNaN(obs[j]) {
			continue
		}
		csvw.WriteLine(t.Format("2006-01-02"), obs[j])
		nobs++
	}
	fmt.Printf(" %d of %d months with observed flow\n", nobs, frc.Len())
}
