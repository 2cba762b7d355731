// Package metrics exposes Pokédex activity counters in Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/K4zzu/Nfc-PokeDex/internal/model"
)

// Scan event results.
const (
	ScanCaptured     = "captured"
	ScanUnrecognized = "unrecognized"
	ScanReadError    = "read_error"
)

// Recorder holds the counters on a private registry.
type Recorder struct {
	registry      *prometheus.Registry
	captures      *prometheus.CounterVec
	scanEvents    *prometheus.CounterVec
	fetchFailures prometheus.Counter
	detailOpens   prometheus.Counter
}

// New creates a Recorder with all counters registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		captures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pokedex",
			Name:      "captures_total",
			Help:      "Capture notifications by origin, including re-captures of owned species.",
		}, []string{"origin"}),
		scanEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pokedex",
			Name:      "scan_events_total",
			Help:      "Tag reads by result.",
		}, []string{"result"}),
		fetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pokedex",
			Name:      "fetch_failures_total",
			Help:      "Failed species fetch attempts.",
		}),
		detailOpens: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pokedex",
			Name:      "detail_opens_total",
			Help:      "Detail views opened.",
		}),
	}
	r.registry.MustRegister(r.captures, r.scanEvents, r.fetchFailures, r.detailOpens)
	return r
}

// Captured counts a capture with the given origin.
func (r *Recorder) Captured(origin model.Origin) {
	r.captures.WithLabelValues(origin.String()).Inc()
}

// ScanEvent counts a tag read with one of the Scan* results.
func (r *Recorder) ScanEvent(result string) {
	r.scanEvents.WithLabelValues(result).Inc()
}

// FetchFailed counts a failed fetch attempt.
func (r *Recorder) FetchFailed() {
	r.fetchFailures.Inc()
}

// DetailOpened counts an opened detail view.
func (r *Recorder) DetailOpened() {
	r.detailOpens.Inc()
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
