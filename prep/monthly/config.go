package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type options struct {
	dailyfp string
	lat     float64 // NaN when derived from utm
	utm     string
	area    float64
	prfx    string
}

func env(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envFloat(key string, def float64) (float64, error) {
	v, ok := os.LookupEnv(key)
	if !ok || len(v) == 0 {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, fmt.Errorf("%s: %v", key, err)
	}
	return f, nil
}

// loadOptions layers .env, ABCD_* environment variables and then command-line flags
func loadOptions(args []string) (*options, error) {
	_ = godotenv.Load(".env")

	lat0, err := envFloat("ABCD_LAT", math.NaN())
	if err != nil {
		return nil, err
	}
	area0, err := envFloat("ABCD_AREA", 0.)
	if err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("monthly", flag.ContinueOnError)
	dailyfp := fs.String("daily", env("ABCD_DAILY", ""), "daily station csv: date,P[mm],T[°C],Q[cfs]")
	lat := fs.Float64("lat", lat0, "catchment latitude [deg]")
	utm := fs.String("utm", env("ABCD_UTM", ""), "outlet easting,northing,zone (UTM, northern hemisphere); used when -lat is not given")
	area := fs.Float64("area", area0, "catchment area [km²]")
	prfx := fs.String("out", env("ABCD_PREFIX", ""), "output prefix")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	o := options{dailyfp: *dailyfp, lat: *lat, utm: *utm, area: *area, prfx: *prfx}
	if len(o.dailyfp) == 0 {
		return nil, fmt.Errorf("no daily station file given (-daily or ABCD_DAILY)")
	}
	if math.IsNaN(o.lat) && len(o.utm) == 0 {
		return nil, fmt.Errorf("either -lat or -utm easting,northing,zone is required")
	}
	if o.area <= 0. {
		return nil, fmt.Errorf("catchment area must be positive (-area or ABCD_AREA)")
	}
	return &o, nil
}
