package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors shared across the service.
type Metrics struct {
	HTTPRequests   *prometheus.CounterVec
	HTTPLatency    *prometheus.HistogramVec
	GuardRedirects *prometheus.CounterVec
	AuthEvents     *prometheus.CounterVec
	CacheLookups   *prometheus.CounterVec
}

var (
	regOnce         sync.Once
	metricsInstance *Metrics
)

// Registry builds and registers the metrics singleton.
func Registry(namespace string) *Metrics {
	regOnce.Do(func() {
		metricsInstance = &Metrics{
			HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route pattern and status.",
			}, []string{"method", "route", "status"}),
			HTTPLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route pattern.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"method", "route"}),
			GuardRedirects: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "guard_redirects_total",
				Help:      "Access guard redirects by target path.",
			}, []string{"target"}),
			AuthEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_events_total",
				Help:      "Sign-up, sign-in and password reset attempts by outcome.",
			}, []string{"event", "outcome"}),
			CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Dashboard metric cache lookups by result.",
			}, []string{"result"}),
		}

		prometheus.MustRegister(
			metricsInstance.HTTPRequests,
			metricsInstance.HTTPLatency,
			metricsInstance.GuardRedirects,
			metricsInstance.AuthEvents,
			metricsInstance.CacheLookups,
		)
	})
	return metricsInstance
}

// Default returns the process-wide collectors.
func Default() *Metrics { return Registry("ezzleads") }
