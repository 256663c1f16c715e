// Package metrics defines the Prometheus collectors for the service.
// Everything registers against the default registry and is exposed by the
// /metrics endpoint in cmd/server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, route pattern and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moneycircles_http_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// RequestDuration observes HTTP request latency in seconds.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "moneycircles_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// CirclesCreated counts successfully created circles.
	CirclesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moneycircles_circles_created_total",
		Help: "Total money circles created.",
	})

	// ContributionsTotal counts recorded contributions.
	ContributionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moneycircles_contributions_total",
		Help: "Total contributions recorded.",
	})

	// ContributedAmount accumulates the contributed currency amount.
	ContributedAmount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moneycircles_contributed_amount_total",
		Help: "Total currency amount contributed across all circles.",
	})

	// MilestonesReached counts milestone activities by threshold.
	MilestonesReached = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moneycircles_milestones_reached_total",
		Help: "Milestone crossings recorded, by threshold percentage.",
	}, []string{"threshold"})
)
