package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestCount(t *testing.T, method, route, status string) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, httpRequestsTotal.WithLabelValues(method, route, status).Write(&m))
	return m.GetCounter().GetValue()
}

func TestPrometheusMiddleware_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(PrometheusMiddleware("/healthz"))
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/v1/templates/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := requestCount(t, http.MethodGet, "/v1/templates/:id", "200")
	missing := requestCount(t, http.MethodGet, unmatchedRoute, "404")
	health := requestCount(t, http.MethodGet, "/healthz", "200")

	for _, path := range []string{"/v1/templates/a", "/v1/templates/b", "/wp-login.php", "/healthz"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	// 按路由模板聚合，未匹配路由归到一个标签
	assert.Equal(t, before+2, requestCount(t, http.MethodGet, "/v1/templates/:id", "200"))
	assert.Equal(t, missing+1, requestCount(t, http.MethodGet, unmatchedRoute, "404"))
	assert.Equal(t, health, requestCount(t, http.MethodGet, "/healthz", "200"))
}
