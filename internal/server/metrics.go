package server

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsNamespace prefixes every folio metric.
const MetricsNamespace = "folio"

// Metrics holds the Prometheus collectors exported on /metrics.
type Metrics struct {
	RenderTotal      *prometheus.CounterVec
	MediumFetchTotal *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
}

// NewMetrics creates and registers folio's metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		RenderTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Name:      "markdown_render_total",
				Help:      "Total number of markdown documents rendered",
			},
			[]string{"engine", "mode"},
		),
		MediumFetchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Name:      "medium_fetch_total",
				Help:      "Total number of upstream Medium feed fetch attempts",
			},
			[]string{"result"},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"route", "code"},
		),
	}
}

// ObserveFetch records one upstream fetch attempt. It matches the
// medium.WithObserver callback signature.
func (m *Metrics) ObserveFetch(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.MediumFetchTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) observeRequest(route string, code int) {
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}
