package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var _ Collector = (*Prometheus)(nil)

// Prometheus exports engine measurements as prometheus collectors.
// Label values are bounded by the Outcome and CastResult constants.
type Prometheus struct {
	ticks        *prometheus.CounterVec
	casts        *prometheus.CounterVec
	tickDuration prometheus.Histogram
}

// NewPrometheus creates the collectors and registers them on reg.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		ticks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "raysense_ticks_total",
			Help: "Engine ticks by outcome",
		}, []string{"outcome"}),
		casts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "raysense_raycasts_total",
			Help: "Physics ray casts by result",
		}, []string{"result"}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "raysense_tick_duration_seconds",
			Help:    "Time spent in a probed engine tick",
			Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005},
		}),
	}

	for _, c := range []prometheus.Collector{p.ticks, p.casts, p.tickDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Prometheus) TickOutcome(outcome Outcome) {
	p.ticks.WithLabelValues(string(outcome)).Inc()
}

func (p *Prometheus) RayCast(result CastResult) {
	p.casts.WithLabelValues(string(result)).Inc()
}

func (p *Prometheus) TickDuration(d time.Duration) {
	p.tickDuration.Observe(d.Seconds())
}
