package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// 未匹配路由统一成一个标签值，避免扫描请求把 path 标签撑爆
const unmatchedRoute = "not_found"

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clipchain_http_requests_total",
			Help: "Total number of HTTP requests by route template",
		},
		[]string{"method", "route", "status"},
	)

	// /generate 会同步等待上游，桶要覆盖到分钟级
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clipchain_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 30, 120},
		},
		[]string{"method", "route"},
	)

	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "clipchain_http_requests_in_flight",
		Help: "Requests currently being served",
	})
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, httpInFlight)
}

// PrometheusMiddleware 按路由模板统计，skip 中的路由（如 /metrics、/healthz）不计入
func PrometheusMiddleware(skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}
	return func(c *gin.Context) {
		route := routeLabel(c)
		if _, ok := skipped[route]; ok {
			c.Next()
			return
		}

		httpInFlight.Inc()
		start := time.Now()
		c.Next()
		httpInFlight.Dec()

		status := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func routeLabel(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return unmatchedRoute
}
