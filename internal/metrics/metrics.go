package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledgerdash_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledgerdash_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	GatewayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledgerdash_gateway_requests_total",
			Help: "Requests forwarded to the API gateway",
		},
		[]string{"method", "status"},
	)

	GatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledgerdash_gateway_request_duration_seconds",
			Help:    "API gateway round trip in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	WalletTopUpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledgerdash_wallet_topups_total",
			Help: "Top-up requests by outcome",
		},
		[]string{"outcome"},
	)

	TransactionsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledgerdash_transactions_created_total",
			Help: "Transactions created through the dashboard",
		},
		[]string{"type"},
	)

	ReportRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledgerdash_report_requests_total",
			Help: "Report requests by outcome",
		},
		[]string{"outcome"},
	)

	InFlightRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledgerdash_inflight_rejections_total",
			Help: "Submissions rejected because the same form was still pending",
		},
		[]string{"path"},
	)

	DashboardOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledgerdash_dashboard_operations_total",
			Help: "Dashboard controller operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	AdminOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledgerdash_admin_operations_total",
			Help: "Admin user, notification and sync operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	ToastsShownTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledgerdash_toasts_shown_total",
			Help: "Toast notifications shown",
		},
		[]string{"variant"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordGatewayRequest(method, status string, duration float64) {
	GatewayRequestsTotal.WithLabelValues(method, status).Inc()
	GatewayRequestDuration.WithLabelValues(method).Observe(duration)
}

func RecordWalletTopUp(outcome string) {
	WalletTopUpsTotal.WithLabelValues(outcome).Inc()
}

func RecordTransactionCreated(txType string) {
	TransactionsCreatedTotal.WithLabelValues(txType).Inc()
}

func RecordReportRequest(outcome string) {
	ReportRequestsTotal.WithLabelValues(outcome).Inc()
}

func RecordInFlightRejection(path string) {
	InFlightRejectionsTotal.WithLabelValues(path).Inc()
}

func RecordDashboardOperation(operation, outcome string) {
	DashboardOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

func RecordAdminOperation(operation, outcome string) {
	AdminOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

func RecordToast(success bool) {
	variant := "danger"
	if success {
		variant = "success"
	}
	ToastsShownTotal.WithLabelValues(variant).Inc()
}

// Outcome maps a boolean result to the label value used across counters.
func Outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
