package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	ApplicationsApproved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "applications_approved_total",
		Help: "Applications transitioned into Approved",
	})

	ClaimsApproved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "claims_approved_total",
		Help: "Claims transitioned into Approved",
	})

	PaymentsReconciled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payments_reconciled_total",
		Help: "Successful payment reconciliations",
	})
)

func ObserveRequest(method, route string, status int, d time.Duration) {
	requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
