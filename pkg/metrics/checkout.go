package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records checkout and reconciliation outcomes.
type CheckoutMetrics struct {
	outcomes        *prometheus.CounterVec
	reconcileStatus *prometheus.CounterVec
	reconcileFailed prometheus.Counter
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_outcomes_total",
		Help: "Checkout submissions by terminal state.",
	}, []string{"outcome"})
	reconcileStatus := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_reconcile_runs_total",
		Help: "Cart reconciliation runs by status.",
	}, []string{"status"})
	reconcileFailed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_reconcile_failed_products_total",
		Help: "Products whose reconciliation calls failed.",
	})
	reg.MustRegister(outcomes, reconcileStatus, reconcileFailed)
	return &CheckoutMetrics{
		outcomes:        outcomes,
		reconcileStatus: reconcileStatus,
		reconcileFailed: reconcileFailed,
	}
}

// IncOutcome increments the counter for a checkout terminal state.
func (c *CheckoutMetrics) IncOutcome(outcome string) {
	if c == nil || c.outcomes == nil {
		return
	}
	c.outcomes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncReconcileStatus increments the counter for a reconciliation run status.
func (c *CheckoutMetrics) IncReconcileStatus(status string) {
	if c == nil || c.reconcileStatus == nil {
		return
	}
	c.reconcileStatus.WithLabelValues(normalizeLabel(status)).Inc()
}

// AddReconcileFailures records per-product reconciliation failures.
func (c *CheckoutMetrics) AddReconcileFailures(count int) {
	if c == nil || c.reconcileFailed == nil || count <= 0 {
		return
	}
	c.reconcileFailed.Add(float64(count))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
