package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/maseology/abcd"
)

type config struct {
	mode            string // calibrate, simulate or sample
	frcfp, obsfp    string
	outdir          string
	s0              abcd.State
	par             abcd.Parameters
	bnds            abcd.Bounds
	seed            int64
	ncomplex, nsmpl int
	nwrkrs          int
	rbf             int // >0 replaces SCE with a surrogate search of this many evaluations
	split           int     // >0 calibrates on this many leading months and validates on the rest
	minNSE          float64 // behavioural threshold (sample mode)
	metricsAddr     string
}

func env(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func parseFloats(s string, n int) ([]float64, error) {
	sp := strings.Split(s, ",")
	if len(sp) != n {
		return nil, fmt.Errorf("expecting %d comma-separated values, got %q", n, s)
	}
	o := make([]float64, n)
	for i, v := range sp {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, err
		}
		o[i] = f
	}
	return o, nil
}

// loadConfig layers .env, ABCD_* environment variables and then command-line flags
func loadConfig(args []string) (*config, error) {
	_ = godotenv.Load(".env")

	fs := flag.NewFlagSet("abcd", flag.ContinueOnError)
	mode := fs.String("mode", env("ABCD_MODE", "calibrate"), "calibrate, simulate or sample")
	frcfp := fs.String("forcing", env("ABCD_FORCING", ""), "monthly forcing csv (date,P,T,PET)")
	obsfp := fs.String("obs", env("ABCD_OBS", ""), "monthly observed flow csv (date,Q) in mm/mon")
	outdir := fs.String("out", env("ABCD_OUTDIR", "out/"), "output directory")
	s0 := fs.String("s0", env("ABCD_S0", "100,10,0"), "initial state S,G,A [mm]")
	par := fs.String("par", env("ABCD_PAR", ""), "parameters a,b,c,d,e,Tm (simulate mode)")
	lo := fs.String("lower", env("ABCD_LOWER", ""), "lower bounds a,b,c,d,e,Tm")
	hi := fs.String("upper", env("ABCD_UPPER", ""), "upper bounds a,b,c,d,e,Tm")
	seed := fs.Int64("seed", 0, "random seed (0: clock)")
	ncomplex := fs.Int("complexes", 16, "number of SCE complexes")
	nsmpl := fs.Int("samples", 1000, "Monte Carlo samples (sample mode)")
	nwrkrs := fs.Int("workers", 4, "concurrent Monte Carlo workers")
	rbf := fs.Int("rbf", 0, "use a surrogate RBF search of n evaluations instead of SCE")
	split := fs.Int("split", 0, "calibrate on the first n months, validate on the remainder")
	minNSE := fs.Float64("behavioural", .5, "minimum NSE of a behavioural sample")
	maddr := fs.String("metrics", env("ABCD_METRICS", ""), "serve Prometheus metrics on this address")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := config{
		mode:        *mode,
		frcfp:       *frcfp,
		obsfp:       *obsfp,
		outdir:      *outdir,
		bnds:        abcd.DefaultBounds,
		seed:        *seed,
		ncomplex:    *ncomplex,
		nsmpl:       *nsmpl,
		nwrkrs:      *nwrkrs,
		rbf:         *rbf,
		split:       *split,
		minNSE:      *minNSE,
		metricsAddr: *maddr,
	}
	if cfg.seed == 0 {
		if s, err := strconv.ParseInt(env("ABCD_SEED", "0"), 10, 64); err == nil && s != 0 {
			cfg.seed = s
		} else {
			cfg.seed = time.Now().UnixNano()
		}
	}
	if len(cfg.frcfp) == 0 {
		return nil, fmt.Errorf("no forcing file given (-forcing or ABCD_FORCING)")
	}
	if !strings.HasSuffix(cfg.outdir, "/") {
		cfg.outdir += "/"
	}

	x, err := parseFloats(*s0, 3)
	if err != nil {
		return nil, fmt.Errorf("initial state: %v", err)
	}
	cfg.s0 = abcd.State{S: x[0], G: x[1], A: x[2]}

	if len(*par) > 0 {
		x, err := parseFloats(*par, abcd.NumParams)
		if err != nil {
			return nil, fmt.Errorf("parameters: %v", err)
		}
		if cfg.par, err = abcd.ParametersFromSlice(x); err != nil {
			return nil, err
		}
	} else if cfg.mode == "simulate" {
		return nil, fmt.Errorf("simulate mode requires -par")
	}

	for k, s := range []string{*lo, *hi} {
		if len(s) == 0 {
			continue
		}
		x, err := parseFloats(s, abcd.NumParams)
		if err != nil {
			return nil, fmt.Errorf("bounds: %v", err)
		}
		for i := range x {
			if k == 0 {
				cfg.bnds[i].Lo = x[i]
			} else {
				cfg.bnds[i].Hi = x[i]
			}
		}
	}
	return &cfg, nil
}
