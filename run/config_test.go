package main

import (
	"testing"

	"github.com/maseology/abcd"
)

func TestLoadConfigFlags(t *testing.T) {
	t.Setenv("ABCD_FORCING", "env.csv")
	t.Setenv("ABCD_SEED", "7")
	cfg, err := loadConfig([]string{
		"-mode", "simulate",
		"-par", "0.98,500,0.5,0.5,0.5,0",
		"-s0", "350,0.5,0",
		"-lower", "0.5,100,0,0,0,-2",
		"-out", "results",
	})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.frcfp != "env.csv" {
		t.Errorf("forcing = %q, want env.csv", cfg.frcfp)
	}
	if cfg.seed != 7 {
		t.Errorf("seed = %d, want 7", cfg.seed)
	}
	if cfg.outdir != "results/" {
		t.Errorf("outdir = %q, want results/", cfg.outdir)
	}
	want := abcd.Parameters{A: .98, B: 500, C: .5, D: .5, E: .5, Tm: 0}
	if cfg.par != want {
		t.Errorf("par = %+v, want %+v", cfg.par, want)
	}
	if cfg.s0 != (abcd.State{S: 350, G: .5, A: 0}) {
		t.Errorf("s0 = %+v", cfg.s0)
	}
	if cfg.bnds[1].Lo != 100 || cfg.bnds[1].Hi != abcd.DefaultBounds[1].Hi {
		t.Errorf("b bounds = %+v", cfg.bnds[1])
	}
}

func TestLoadConfigErrors(t *testing.T) {
	t.Setenv("ABCD_FORCING", "")
	if _, err := loadConfig(nil); err == nil {
		t.Fatalf("expected an error without a forcing file")
	}
	if _, err := loadConfig([]string{"-forcing", "f.csv", "-mode", "simulate"}); err == nil {
		t.Fatalf("expected an error for simulate mode without parameters")
	}
	if _, err := loadConfig([]string{"-forcing", "f.csv", "-s0", "1,2"}); err == nil {
		t.Fatalf("expected an error for a short initial state")
	}
}

func TestLoadConfigSplit(t *testing.T) {
	t.Setenv("ABCD_FORCING", "f.csv")
	cfg, err := loadConfig([]string{"-split", "120", "-behavioural", "0.6"})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.split != 120 || cfg.minNSE != .6 || cfg.mode != "calibrate" {
		t.Fatalf("config = %+v", cfg)
	}
}
