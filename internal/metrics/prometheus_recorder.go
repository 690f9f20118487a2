package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	requestDuration *prom.HistogramVec
	requests        *prom.CounterVec
	cacheMutations  *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		requestDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "mashup",
			Name:      "api_request_duration_seconds",
			Help:      "Duration of platform API requests",
			Buckets:   prom.DefBuckets,
		}, []string{"op", "code"}),
		requests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mashup",
			Name:      "api_requests_total",
			Help:      "Platform API requests by operation and status code",
		}, []string{"op", "code"}),
		cacheMutations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mashup",
			Name:      "cache_mutations_total",
			Help:      "Workspace cache mutations by kind",
		}, []string{"kind"}),
	}
	reg.MustRegister(pr.requestDuration, pr.requests, pr.cacheMutations)
	return pr
}

func (p *PrometheusRecorder) ObserveRequest(op, code string, d time.Duration) {
	p.requestDuration.WithLabelValues(op, code).Observe(d.Seconds())
	p.requests.WithLabelValues(op, code).Inc()
}

func (p *PrometheusRecorder) IncCacheMutation(kind CacheMutation) {
	p.cacheMutations.WithLabelValues(string(kind)).Inc()
}

var _ Recorder = (*PrometheusRecorder)(nil)
