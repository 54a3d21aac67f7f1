package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts proxied requests and upstream failures. Each Metrics owns
// its registry so tests can build isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal    *prometheus.CounterVec
	upstreamFailures *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "codelab_proxy_requests_total",
				Help: "Total number of proxied requests by route and reply status",
			},
			[]string{"route", "status"},
		),

		upstreamFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "codelab_upstream_failures_total",
				Help: "Total number of failed upstream calls by upstream name",
			},
			[]string{"upstream"},
		),
	}
}

// RecordRequest counts one completed request on a route.
func (m *Metrics) RecordRequest(route string, status int) {
	m.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// RecordUpstreamFailure counts one failed upstream call.
func (m *Metrics) RecordUpstreamFailure(upstream string) {
	m.upstreamFailures.WithLabelValues(upstream).Inc()
}

// Handler exposes the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}
