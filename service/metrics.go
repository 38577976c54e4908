package service

import "github.com/prometheus/client_golang/prometheus"

var (
	// 积分变动，按流水类型统计
	creditEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clipchain_credit_events_total",
			Help: "Credit ledger mutations by transaction type",
		},
		[]string{"type"},
	)

	// 生成结果，按支付路径和结果统计
	generationOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clipchain_generation_outcomes_total",
			Help: "Generation attempts by payment path and result",
		},
		[]string{"path", "result"},
	)

	refundRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clipchain_refund_requests_total",
			Help: "Refund obligations by status transition",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(creditEvents, generationOutcomes, refundRequests)
}
