package internal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var SeatsRequests *prometheus.CounterVec = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "copilot_seats_requests_total",
	Help: "Number of seats requests served, by scope and response code",
}, []string{"scope", "code"})

var UpstreamRequests *prometheus.CounterVec = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "copilot_seats_upstream_requests_total",
	Help: "Number of requests sent to GitHub, by endpoint kind and response code",
}, []string{"endpoint", "code"})

var SeatsReturned *prometheus.GaugeVec = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "copilot_seats_returned",
	Help: "Number of seats in the last successful response, by scope",
}, []string{"scope"})

var EnrichmentFailures prometheus.Counter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "copilot_seats_enrichment_failures_total",
	Help: "Number of member email lookups that failed and were served without emails",
})

var RateLimitRemaining prometheus.Gauge = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "github_rate_limit_remaining",
	Help: "Last X-RateLimit-Remaining value reported by GitHub",
})
