package abcd

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Monitor exposes calibration progress as Prometheus metrics. A nil *Monitor records nothing.
type Monitor struct {
	Evaluations prometheus.Counter
	Penalties   prometheus.Counter
	BestLoss    prometheus.Gauge
	Duration    prometheus.Histogram
}

// NewMonitor registers the collectors with reg, defaulting to the global registry when nil
func NewMonitor(reg prometheus.Registerer) (*Monitor, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	evals, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "abcd_objective_evaluations_total",
		Help: "Number of objective function evaluations.",
	}))
	if err != nil {
		return nil, err
	}
	pens, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "abcd_objective_penalties_total",
		Help: "Number of evaluations returning the out-of-domain penalty.",
	}))
	if err != nil {
		return nil, err
	}
	best, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "abcd_best_loss",
		Help: "Loss of the last completed calibration or best Monte Carlo sample.",
	}))
	if err != nil {
		return nil, err
	}
	dur, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "abcd_calibration_duration_seconds",
		Help:    "Wall time of completed calibrations and sampling runs.",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
	}))
	if err != nil {
		return nil, err
	}
	return &Monitor{
		Evaluations: evals,
		Penalties:   pens,
		BestLoss:    best,
		Duration:    dur,
	}, nil
}

// register returns the already-registered collector of the same type when there is one
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			return c, fmt.Errorf("collector already registered with incompatible type: %w", err)
		}
		return c, err
	}
	return c, nil
}

func (m *Monitor) observe(f float64) {
	if m == nil {
		return
	}
	m.Evaluations.Inc()
	if f >= Penalty {
		m.Penalties.Inc()
	}
}

func (m *Monitor) done(d time.Duration, best float64) {
	if m == nil {
		return
	}
	m.Duration.Observe(d.Seconds())
	m.BestLoss.Set(best)
}
