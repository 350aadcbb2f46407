package prommetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics implements qondesk.Metrics using Prometheus.
type Metrics struct {
	apiCallsTotal       *prometheus.CounterVec
	apiCallDuration     *prometheus.HistogramVec
	lookupsTotal        *prometheus.CounterVec
	lookupDuration      prometheus.Histogram
	sidebarRendersTotal *prometheus.CounterVec
}

// NewMetrics creates a new Prometheus metrics implementation for the
// Qonversion integration.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		apiCallsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "qonversion",
			Name:      "api_calls_total",
			Help:      "Total number of API calls to Qonversion.",
		}, []string{"endpoint", "status"}),

		apiCallDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "qonversion",
			Name:      "api_call_duration_seconds",
			Help:      "Duration of API calls to Qonversion in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),

		lookupsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "qonversion",
			Name:      "lookups_total",
			Help:      "Total number of customer lookups.",
		}, []string{"outcome"}),

		lookupDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "qonversion",
			Name:      "lookup_duration_seconds",
			Help:      "Duration of full customer lookups in seconds.",
			Buckets:   prometheus.DefBuckets,
		}),

		sidebarRendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "qonversion",
			Name:      "sidebar_renders_total",
			Help:      "Total number of sidebar render decisions.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) RecordAPICall(endpoint, status string) {
	m.apiCallsTotal.WithLabelValues(endpoint, status).Inc()
}

func (m *Metrics) RecordAPICallDuration(endpoint string, duration time.Duration) {
	m.apiCallDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *Metrics) RecordLookup(outcome string) {
	m.lookupsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordLookupDuration(duration time.Duration) {
	m.lookupDuration.Observe(duration.Seconds())
}

func (m *Metrics) RecordSidebarRender(outcome string) {
	m.sidebarRendersTotal.WithLabelValues(outcome).Inc()
}
