package numbers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are lifetime totals, unlike Counters which reset every report.
type Metrics struct {
	Registry *prometheus.Registry

	Uniques      prometheus.Counter
	Duplicates   prometheus.Counter
	InvalidLines prometheus.Counter
	SinkErrors   prometheus.Counter
	Connections  prometheus.Gauge
}

func newMetrics(s *Server) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Uniques: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "uniquenumbers_unique_total",
			Help: "Numbers accepted for the first time",
		}),
		Duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "uniquenumbers_duplicate_total",
			Help: "Numbers already present in the seen set",
		}),
		InvalidLines: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "uniquenumbers_invalid_lines_total",
			Help: "Malformed lines; each one dropped its connection",
		}),
		SinkErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "uniquenumbers_sink_errors_total",
			Help: "Failed appends to the number log",
		}),
		Connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "uniquenumbers_connections",
			Help: "Open client connections",
		}),
	}

	m.Registry.MustRegister(
		m.Uniques, m.Duplicates, m.InvalidLines, m.SinkErrors, m.Connections,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "uniquenumbers_seen_total",
			Help: "Distinct numbers seen since startup",
		}, func() float64 { return float64(s.seen.Len()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "uniquenumbers_ingest_queue_depth",
			Help: "Numbers waiting for the dedup stage",
		}, func() float64 { return float64(s.ingest.Len()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "uniquenumbers_log_queue_depth",
			Help: "Numbers waiting to be written to the log",
		}, func() float64 { return float64(s.logq.Len()) }),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
