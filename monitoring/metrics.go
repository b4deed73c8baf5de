package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ResponseTimeHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_time_seconds",
			Help:    "Histogram of response times",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	CommissionsDistributed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "referral_commissions_distributed_total",
			Help: "Commission records created by the distributor",
		},
	)

	CommissionAmountTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "referral_commission_amount_total",
			Help: "Total commission amount credited, in INR",
		},
	)

	DistributionFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "referral_distribution_failures_total",
			Help: "Distribution runs that aborted with an error",
		},
	)

	PaymentsVerified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upi_payments_processed_total",
			Help: "Manually processed UPI payment requests",
		},
		[]string{"outcome"}, // verified | rejected
	)
)
