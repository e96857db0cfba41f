package apiclient

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess        = "success"
	outcomeHTTPError      = "http_error"
	outcomeTransportError = "transport_error"
	outcomeRequestError   = "request_error"
)

var (
	_ = promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "catalogadmin_client",
			Name:      "inflight_requests",
			Help:      "Requests dispatched through the process-wide tracker and not yet resolved.",
		},
		func() float64 { return float64(defaultTracker.InFlight()) },
	)

	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catalogadmin_client",
			Name:      "requests_total",
			Help:      "Resolved requests by method and outcome.",
		},
		[]string{"method", "outcome"},
	)

	tokenLookupFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "catalogadmin_client",
			Name:      "token_lookup_failures_total",
			Help:      "Token store reads that failed; the request was sent without credentials.",
		},
	)
)
