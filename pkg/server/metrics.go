package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors the server records into.
type Metrics struct {
	renders     *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	submissions *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compositor_renders_total",
				Help: "Total number of rendered views",
			},
			[]string{"table", "view", "renderer"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "compositor_render_duration_seconds",
				Help: "Duration of view generation and rendering",
			},
			[]string{"view"},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compositor_submissions_total",
				Help: "Total number of form submissions by outcome",
			},
			[]string{"table", "outcome"},
		),
	}
	for _, collector := range []prometheus.Collector{m.renders, m.duration, m.submissions} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return m, nil
}
