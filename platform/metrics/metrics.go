// Package metrics holds the Prometheus collectors exported by the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	registry        *prometheus.Registry
	Validations     *prometheus.CounterVec
	Searches        prometheus.Counter
	RegistrySize    prometheus.Gauge
	RegistryVersion prometheus.Gauge
}

// New creates and registers all metrics on a dedicated registry, together
// with the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Validations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "numbering_validations_total",
			Help: "Number validations by mode and outcome",
		}, []string{"mode", "outcome"}),
		Searches: factory.NewCounter(prometheus.CounterOpts{
			Name: "numbering_territory_searches_total",
			Help: "Territory picker searches served",
		}),
		RegistrySize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "numbering_registry_territories",
			Help: "Territories in the current registry snapshot",
		}),
		RegistryVersion: factory.NewGauge(prometheus.GaugeOpts{
			Name: "numbering_registry_version",
			Help: "Version of the current registry snapshot",
		}),
	}
}

// ObserveValidation counts one validation. outcome is "valid" or the failure kind.
func (m *Metrics) ObserveValidation(mode, outcome string) {
	m.Validations.WithLabelValues(mode, outcome).Inc()
}

// ObserveSearch counts one search.
func (m *Metrics) ObserveSearch() {
	m.Searches.Inc()
}

// SetRegistry records the size and version of the published snapshot.
func (m *Metrics) SetRegistry(size int, version int64) {
	m.RegistrySize.Set(float64(size))
	m.RegistryVersion.Set(float64(version))
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
