package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics 定义业务监控指标
type BusinessMetrics struct {
	TxSubmittedTotal     *prometheus.CounterVec
	TxConfirmedTotal     *prometheus.CounterVec
	TxConfirmDuration    *prometheus.HistogramVec
	WalletConnectTotal   *prometheus.CounterVec
	ReconcileSettleTotal *prometheus.CounterVec
}

// Business 是全局业务指标实例。
// 包加载时即注册，服务和测试都直接可用。
var Business = newBusinessMetrics()

func newBusinessMetrics() *BusinessMetrics {
	return &BusinessMetrics{
		TxSubmittedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "boundless_tx_submitted_total",
			Help: "The total number of transactions submitted to the ledger",
		}, []string{"function"}),
		TxConfirmedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "boundless_tx_confirmed_total",
			Help: "The total number of confirm loops reaching a terminal status",
		}, []string{"status"}),
		TxConfirmDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "boundless_tx_confirm_duration_seconds",
			Help:    "Duration of the submit-to-terminal confirmation window",
			Buckets: prometheus.DefBuckets,
		}, []string{"network"}),
		WalletConnectTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "boundless_wallet_connect_total",
			Help: "Total number of wallet connect attempts",
		}, []string{"result"}),
		ReconcileSettleTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "boundless_reconcile_settled_total",
			Help: "Total number of in-flight transactions settled by the reconciler",
		}, []string{"status"}),
	}
}
