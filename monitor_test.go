package abcd

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestMonitor(t *testing.T) {
	reg := prometheus.NewRegistry()
	mon, err := NewMonitor(reg)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range []float64{3., Penalty, 1., Penalty} {
		mon.observe(f)
	}
	mon.done(250*time.Millisecond, 1.)

	if got := testutil.ToFloat64(mon.Evaluations); got != 4 {
		t.Errorf("evaluations = %v, want 4", got)
	}
	if got := testutil.ToFloat64(mon.Penalties); got != 2 {
		t.Errorf("penalties = %v, want 2", got)
	}
	if got := testutil.ToFloat64(mon.BestLoss); got != 1 {
		t.Errorf("best loss = %v, want 1", got)
	}
	var m dto.Metric
	if err := mon.Duration.Write(&m); err != nil {
		t.Fatal(err)
	}
	if c := m.GetHistogram().GetSampleCount(); c != 1 {
		t.Errorf("duration sample count = %d, want 1", c)
	}
	if n := testutil.CollectAndCount(reg); n != 4 {
		t.Errorf("registry holds %d metrics, want 4", n)
	}
}

func TestMonitorReregister(t *testing.T) {
	reg := prometheus.NewRegistry()
	m1, err := NewMonitor(reg)
	if err != nil {
		t.Fatal(err)
	}
	m2, err := NewMonitor(reg)
	if err != nil {
		t.Fatalf("second NewMonitor: %v", err)
	}
	m1.observe(1.)
	m2.observe(1.)
	if got := testutil.ToFloat64(m1.Evaluations); got != 2 {
		t.Fatalf("shared counter = %v, want 2", got)
	}
}

func TestNilMonitor(t *testing.T) {
	var mon *Monitor
	mon.observe(Penalty)
	mon.done(time.Second, 0)
}
