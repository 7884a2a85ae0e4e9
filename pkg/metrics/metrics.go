package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	ledgerOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "taskpay",
			Subsystem: "ledger",
			Name:      "operations_total",
			Help:      "Total number of ledger credit/debit operations.",
		},
		[]string{"op", "status"},
	)

	approvals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "taskpay",
			Subsystem: "workflow",
			Name:      "approvals_total",
			Help:      "Total number of approval-workflow decisions.",
		},
		[]string{"request", "outcome"},
	)

	auditDrift = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "taskpay",
			Subsystem: "audit",
			Name:      "balance_drift_accounts",
			Help:      "Number of accounts whose balance diverged from the transaction replay at the last audit run.",
		},
	)
)

func init() {
	Registry.MustRegister(
		ledgerOps,
		approvals,
		auditDrift,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RecordLedgerOp(op, status string) {
	ledgerOps.WithLabelValues(op, status).Inc()
}

func RecordApproval(request, outcome string) {
	approvals.WithLabelValues(request, outcome).Inc()
}

func SetAuditDrift(accounts int) {
	auditDrift.Set(float64(accounts))
}
