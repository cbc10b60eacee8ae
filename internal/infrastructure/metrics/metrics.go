package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the transaction core.
type Metrics struct {
	// Transaction metrics
	TransactionsTotal   *prometheus.CounterVec
	TransactionErrors   *prometheus.CounterVec
	TransactionDuration *prometheus.HistogramVec
	TransactionAmount   *prometheus.HistogramVec

	// Idempotency metrics
	IdempotencyReplays  prometheus.Counter
	IdempotencyInFlight prometheus.Gauge
	RecoveryCompleted   prometheus.Counter
	RecoveryReleased    prometheus.Counter

	// Notification metrics
	NotificationsPublished prometheus.Counter
	NotificationFailures   prometheus.Counter

	// Projection metrics
	ProjectionEvents     *prometheus.CounterVec
	ProjectionRetries    prometheus.Counter
	ProjectionDeadLetter prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransactionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_transactions_total",
				Help: "Total number of committed transactions by kind",
			},
			[]string{"kind"},
		),
		TransactionErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_transaction_errors_total",
				Help: "Total number of rejected transactions by error type",
			},
			[]string{"kind", "error_type"},
		),
		TransactionDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "corebank_transaction_duration_seconds",
				Help:    "Duration of transaction operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		TransactionAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "corebank_transaction_amount",
				Help:    "Transaction amounts",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"kind"},
		),

		IdempotencyReplays: promauto.NewCounter(prometheus.CounterOpts{
			Name: "corebank_idempotency_replays_total",
			Help: "Total number of transfers answered from a stored result",
		}),
		IdempotencyInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "corebank_idempotency_in_flight",
			Help: "Idempotency records currently in flight",
		}),
		RecoveryCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "corebank_recovery_completed_total",
			Help: "In-flight idempotency records completed from the ledger at startup",
		}),
		RecoveryReleased: promauto.NewCounter(prometheus.CounterOpts{
			Name: "corebank_recovery_released_total",
			Help: "In-flight idempotency records released at startup",
		}),

		NotificationsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "corebank_notifications_published_total",
			Help: "Total number of transaction events published",
		}),
		NotificationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "corebank_notification_failures_total",
			Help: "Total number of transaction events that failed to publish",
		}),

		ProjectionEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_projection_events_total",
				Help: "Total number of projection events consumed by type",
			},
			[]string{"event_type"},
		),
		ProjectionRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "corebank_projection_retries_total",
			Help: "Total number of projection events requeued for retry",
		}),
		ProjectionDeadLetter: promauto.NewCounter(prometheus.CounterOpts{
			Name: "corebank_projection_dead_letter_total",
			Help: "Total number of projection events dead-lettered",
		}),
	}
}
