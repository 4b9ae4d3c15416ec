package mbevts

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	EventsTotal        *prometheus.CounterVec
	WindowsTotal       prometheus.Counter
	WindowMultiplicity prometheus.Histogram
}

// NewMetrics creates the window metrics and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "miniball_events_total",
				Help: "Total number of events written, by kind",
			},
			[]string{"kind"},
		),
		WindowsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "miniball_windows_total",
				Help: "Total number of event windows written",
			},
		),
		WindowMultiplicity: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "miniball_window_multiplicity",
				Help:    "Number of events per window, all kinds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
	}
	reg.MustRegister(m.EventsTotal, m.WindowsTotal, m.WindowMultiplicity)
	return m
}

func (m *Metrics) ObserveWindow(evts *MiniballEvts) {
	for _, kind := range Kinds() {
		m.EventsTotal.WithLabelValues(kind.String()).Add(float64(evts.Multiplicity(kind)))
	}
	m.WindowsTotal.Inc()
	m.WindowMultiplicity.Observe(float64(evts.Len()))
}
