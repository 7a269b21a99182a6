// Package metrics implements prometheus collectors for the API client.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mempoolapi",
		Subsystem: "api_client",
		Name:      "operations_total",
		Help:      "Count of mempool API operations.",
	}, []string{"operation", "network", "status"})
	apiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mempoolapi",
		Subsystem: "api_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of mempool API operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "network", "status"})
)

// APIClient tracks metrics for calls against the mempool API.
type APIClient struct {
	network string
}

// NewAPIClient constructs a metrics collector for API calls.
func NewAPIClient(network string) *APIClient {
	if network == "" {
		network = "unknown"
	}
	return &APIClient{network: network}
}

// Observe records a single API call outcome and duration.
func (m APIClient) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	apiRequestsTotal.WithLabelValues(operation, m.network, status).Inc()
	apiRequestDuration.WithLabelValues(operation, m.network, status).Observe(time.Since(started).Seconds())
}
