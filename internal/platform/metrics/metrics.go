package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "roster"

var (
	DefaultResolveBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
	DefaultCountBuckets   = []float64{0, 1, 5, 10, 25, 50, 100, 250, 500}
)

// Roster agrupa las métricas del resolver de pacientes.
type Roster struct {
	registry *prometheus.Registry

	Resolutions    *prometheus.CounterVec
	ResolveSeconds *prometheus.HistogramVec
	Entries        *prometheus.HistogramVec
	SkippedRecords *prometheus.CounterVec
	StoreFetches   *prometheus.CounterVec
}

// New registra las métricas en un registry propio (más runtime/process).
func New() *Roster {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return NewWithRegistry(reg)
}

// NewWithRegistry permite aislar registries en tests.
func NewWithRegistry(reg *prometheus.Registry) *Roster {
	m := &Roster{
		registry: reg,
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Roster resolutions by role and outcome.",
		}, []string{"role", "outcome"}),
		ResolveSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolve_duration_seconds",
			Help:      "Wall time of a roster resolution, including every store fetch.",
			Buckets:   DefaultResolveBuckets,
		}, []string{"role"}),
		Entries: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "entries_returned",
			Help:      "Roster entries returned per successful resolution.",
			Buckets:   DefaultCountBuckets,
		}, []string{"role"}),
		SkippedRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_records_total",
			Help:      "Pet records dropped because required identity fields were missing.",
		}, []string{"reason"}),
		StoreFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_fetches_total",
			Help:      "Remote record store calls by operation and outcome.",
		}, []string{"op", "outcome"}),
	}

	reg.MustRegister(m.Resolutions, m.ResolveSeconds, m.Entries, m.SkippedRecords, m.StoreFetches)
	return m
}

// Handler expone /metrics.
func (m *Roster) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry se usa en tests para leer valores.
func (m *Roster) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Roster) ObserveResolve(role string, err error, d time.Duration, entries int) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Resolutions.WithLabelValues(role, outcome).Inc()
	m.ResolveSeconds.WithLabelValues(role).Observe(d.Seconds())
	if err == nil {
		m.Entries.WithLabelValues(role).Observe(float64(entries))
	}
}

func (m *Roster) RecordSkipped(reason string) {
	if m == nil {
		return
	}
	m.SkippedRecords.WithLabelValues(reason).Inc()
}

func (m *Roster) RecordFetch(op string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.StoreFetches.WithLabelValues(op, outcome).Inc()
}
