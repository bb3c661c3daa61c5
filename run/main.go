package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/maseology/abcd"
	"github.com/maseology/abcd/forcing"
	"github.com/maseology/mmio"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf(" abcd config error: %v", err)
	}

	fmt.Println("")
	tt := mmio.NewTimer()
	defer tt.Lap("\nRun complete.")

	// load data
	frc, err := forcing.ReadCSV(cfg.frcfp)
	if err != nil {
		log.Fatalf("%v", err)
	}
	frc.CheckAndPrint()

	var obs []float64
	if len(cfg.obsfp) > 0 {
		q, err := forcing.ReadObs(cfg.obsfp)
		if err != nil {
			log.Fatalf("%v", err)
		}
		if obs, err = frc.Align(q); err != nil {
			log.Fatalf("%v", err)
		}
	} else if cfg.mode != "simulate" {
		log.Fatalf(" %s mode requires observations (-obs or ABCD_OBS)", cfg.mode)
	}
	tt.Print("data load complete")

	mon, err := abcd.NewMonitor(nil)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if len(cfg.metricsAddr) > 0 {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.metricsAddr, nil); err != nil {
				log.Printf(" metrics server stopped: %v", err)
			}
		}()
	}

	mmio.MakeDir(cfg.outdir)
	rng := abcd.NewRNG(cfg.seed)

	switch cfg.mode {
	case "simulate":
		if !cfg.bnds.Contains(cfg.par) {
			fmt.Printf(" warning: %v lies outside the parameter bounds\n", cfg.par)
		}
		tr, err := abcd.Simulate(cfg.par, frc, cfg.s0)
		if err != nil {
			log.Fatalf("%v", err)
		}
		if obs != nil {
			sc, err := abcd.Evaluate(obs, tr.Q())
			if err != nil {
				log.Fatalf("%v", err)
			}
			fmt.Printf("  %v\n", sc)
			abcd.PlotObsSim(cfg.outdir+"hyd.png", obs, tr.Q())
		}
		if err := abcd.WriteTrajectory(cfg.outdir+"trajectory.csv", frc, tr, obs); err != nil {
			log.Fatalf("%v", err)
		}

	case "calibrate":
		opt := abcd.SCE(cfg.ncomplex, rng)
		if cfg.rbf > 0 {
			opt = abcd.SurrogateRBF(cfg.rbf, rng)
		}
		fmt.Println(" optimizing..")
		var cal *abcd.Calibration
		if cfg.split > 0 {
			var val abcd.Scores
			cal, val, err = abcd.SplitSample(opt, frc, cfg.s0, obs, cfg.split, cfg.bnds, mon)
			if err != nil {
				log.Fatalf("%v", err)
			}
			cal.Print()
			fmt.Printf(" validation (%d months):\n  %v\n", frc.Len()-cfg.split, val)
		} else {
			if cal, err = abcd.Calibrate(opt, frc, cfg.s0, obs, cfg.bnds, mon); err != nil {
				log.Fatalf("%v", err)
			}
			cal.Print()
		}

		// full-period trajectory from the calibrated set
		tr, err := abcd.Simulate(cal.Par, frc, cfg.s0)
		if err != nil {
			log.Fatalf("%v", err)
		}
		prfx := cfg.outdir + cal.ID + "."
		if err := abcd.WriteParams(prfx+"params.txt", cal); err != nil {
			log.Fatalf("%v", err)
		}
		if err := abcd.WriteTrajectory(prfx+"trajectory.csv", frc, tr, obs); err != nil {
			log.Fatalf("%v", err)
		}
		abcd.PlotObsSim(prfx+"hyd.png", obs, tr.Q())

	case "sample":
		fmt.Printf(" running %d samples from %d dimensions..\n", cfg.nsmpl, abcd.NumParams)
		ranked, err := abcd.Sample(frc, cfg.s0, obs, cfg.bnds, cfg.nsmpl, cfg.nwrkrs, rng, mon, true)
		if err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Printf(" best: %v  SSE: %.4f  NSE: %.3f\n", ranked[0].Par, ranked[0].Loss, ranked[0].NSE)
		bhv := abcd.Behavioural(ranked, cfg.minNSE)
		fmt.Printf(" %d behavioural (NSE>=%.2f) of %d\n", len(bhv), cfg.minNSE, len(ranked))
		if err := abcd.WriteSamples(cfg.outdir+"samples.csv", ranked); err != nil {
			log.Fatalf("%v", err)
		}
		if len(bhv) > 0 {
			p5, p95, err := abcd.Uncertainty(frc, cfg.s0, bhv)
			if err != nil {
				log.Fatalf("%v", err)
			}
			if err := abcd.WriteUncertainty(cfg.outdir+"glue.csv", frc, obs, p5, p95); err != nil {
				log.Fatalf("%v", err)
			}
		}

	default:
		log.Fatalf(" unknown mode %q", cfg.mode)
	}
}
