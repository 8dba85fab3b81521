package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Gateway transaction metrics
	transactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_transactions_total",
			Help: "Total number of gateway transactions by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	transactionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_transaction_duration_seconds",
			Help:    "Duration of gateway transactions in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"action"},
	)

	transactionsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gateway_transactions_in_flight",
			Help: "Number of gateway transactions currently being processed",
		},
	)
)

// RecordTransaction records a completed submission. Outcomes: approved,
// declined, no_response, build_error. Recording is a side effect only and
// must never influence submit control flow.
func RecordTransaction(action, outcome string, elapsed time.Duration) {
	transactionsTotal.WithLabelValues(action, outcome).Inc()
	transactionDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}

// TrackInFlight marks a submission as started and returns a done func
func TrackInFlight() func() {
	transactionsInFlight.Inc()
	return transactionsInFlight.Dec
}
